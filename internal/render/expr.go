package render

import (
	"fmt"
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
	"caspiler/internal/types"
)

// Expression folds an expression tree into target-source text.
// It is total: every recognised IR variant has a rendering, and every
// unrecognised one is a diagnostic that yields the placeholder literal
// "unknown_expresson" rather than aborting. The expression-level fatal
// conditions are an unsupported Keccak256 arity and an out-of-range local
// variable index (a malformed CFG).
func Expression(e ir.Expr, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	switch v := e.(type) {
	case ir.BoolLiteral:
		if v.Value {
			return "true", nil
		}
		return "false", nil

	case ir.NumberLiteral:
		return v.Value.Dec(), nil

	case ir.BytesLiteral:
		return renderBytesLiteral(v.Value), nil

	case ir.ArrayLiteral:
		return renderArrayLiteral(v, cfg, contract, diags)

	case ir.FunctionArg:
		return LocalVar(v.Pos, cfg)

	case ir.Variable:
		return LocalVar(v.Index, cfg)

	case ir.Add:
		return binary(v.L, v.R, "+", cfg, contract, diags)
	case ir.Subtract:
		return binary(v.L, v.R, "-", cfg, contract, diags)
	case ir.Multiply:
		return binary(v.L, v.R, "*", cfg, contract, diags)
	case ir.UDivide:
		return binary(v.L, v.R, "/", cfg, contract, diags)
	case ir.SDivide:
		return binary(v.L, v.R, "/", cfg, contract, diags)
	case ir.UModulo:
		return binary(v.L, v.R, "%", cfg, contract, diags)
	case ir.SModulo:
		return binary(v.L, v.R, "%", cfg, contract, diags)

	case ir.Power:
		l, err := Expression(v.L, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		r, err := Expression(v.R, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.pow(%s)", l, r), nil

	case ir.BitwiseOr:
		return zipBitwise(v.L, v.R, "|", cfg, contract, diags)
	case ir.BitwiseAnd:
		return zipBitwise(v.L, v.R, "&", cfg, contract, diags)
	case ir.BitwiseXor:
		return zipBitwise(v.L, v.R, "^", cfg, contract, diags)

	case ir.SMore:
		return binary(v.L, v.R, ">", cfg, contract, diags)
	case ir.SLess:
		return binary(v.L, v.R, "<", cfg, contract, diags)
	case ir.SMoreEqual:
		return binary(v.L, v.R, ">=", cfg, contract, diags)
	case ir.SLessEqual:
		return binary(v.L, v.R, "<=", cfg, contract, diags)
	case ir.UMore:
		return binary(v.L, v.R, ">", cfg, contract, diags)
	case ir.ULess:
		return binary(v.L, v.R, "<", cfg, contract, diags)
	case ir.UMoreEqual:
		return binary(v.L, v.R, ">=", cfg, contract, diags)
	case ir.ULessEqual:
		return binary(v.L, v.R, "<=", cfg, contract, diags)
	case ir.Equal:
		return binary(v.L, v.R, "==", cfg, contract, diags)
	case ir.NotEqual:
		return binary(v.L, v.R, "!=", cfg, contract, diags)

	case ir.Not:
		inner, err := Expression(v.Expr, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("!(%s)", inner), nil

	case ir.UnaryMinus:
		inner, err := Expression(v.Expr, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("-(%s)", inner), nil

	case ir.Ternary:
		cond, err := Expression(v.Cond, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		then, err := Expression(v.Then, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		els, err := Expression(v.Else, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("if %s { %s } else { %s }", cond, then, els), nil

	case ir.ZeroExt:
		return Expression(v.Expr, cfg, contract, diags)

	case ir.ArraySubscript:
		array, err := Expression(v.Array, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		index, err := Expression(v.Index, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s as usize]", array, index), nil

	case ir.StorageLoad:
		return renderStorageLoad(v, cfg, contract, diags)

	case ir.Keccak256:
		return renderKeccak256(v, cfg, contract, diags)

	default:
		if diags != nil {
			diags.Report(errors.DiagUnknownExpr, fmt.Sprintf("unknown expression %T", e))
		}
		return "unknown_expresson", nil
	}
}

func binary(l, r ir.Expr, op string, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	lhs, err := Expression(l, cfg, contract, diags)
	if err != nil {
		return "", err
	}
	rhs, err := Expression(r, cfg, contract, diags)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", lhs, op, rhs), nil
}

// zipBitwise renders an element-wise byte-sequence bitwise op: the
// target has no native operator over Vec<u8>, so the rendering zips the two
// sequences and maps the scalar operator across pairs.
func zipBitwise(l, r ir.Expr, op string, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	lhs, err := Expression(l, cfg, contract, diags)
	if err != nil {
		return "", err
	}
	rhs, err := Expression(r, cfg, contract, diags)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s.iter().zip(%s.iter()).map(|e| e.0 %s e.1).collect::<Vec<u8>>())", lhs, rhs, op), nil
}

func renderBytesLiteral(b []byte) string {
	parts := make([]string, len(b))
	for i, by := range b {
		parts[i] = fmt.Sprintf("%d", by)
	}
	return fmt.Sprintf("vec![%s]", strings.Join(parts, ", "))
}

// renderArrayLiteral folds the flat element list into nested bracketed
// groups, one fold per dimension in Dims order: the first dimension sizes
// the innermost groups.
func renderArrayLiteral(v ir.ArrayLiteral, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	rendered := make([]string, len(v.Elems))
	for i, elem := range v.Elems {
		s, err := Expression(elem, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		rendered[i] = s
	}
	for _, dim := range v.Dims {
		if dim <= 0 {
			continue
		}
		var grouped []string
		for i := 0; i < len(rendered); i += dim {
			end := i + dim
			if end > len(rendered) {
				end = len(rendered)
			}
			grouped = append(grouped, fmt.Sprintf("[%s]", strings.Join(rendered[i:end], ", ")))
		}
		rendered = grouped
	}
	return strings.Join(rendered, ","), nil
}

// renderStorageLoad compares the *rendered text* of the key against the
// caller-accessor text, not the semantic shape of the key expression: a
// key that resolves to the caller is used directly, anything else goes
// through get_key. The textual comparison matters because
// VarNameOrDefault's fallback expression path can produce caller text
// where the key expression itself is not a bare msg_sender index (for
// example a one-argument Keccak256 over msg_sender's index). The
// arithmetic-stringification path always yields a format! call and never
// matches.
func renderStorageLoad(v ir.StorageLoad, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	key, err := VarNameOrDefault(v.Key, cfg, contract, diags)
	if err != nil {
		return "", err
	}
	if key == GetCallerExpr {
		return GetCallerExpr, nil
	}
	ty := types.Render(v.Type, diags)
	return fmt.Sprintf("get_key::<%s>(%s)", ty, key), nil
}

// renderKeccak256 treats Keccak256 as a storage-key constructor: arity 1
// addresses a single storage slot, arity 2 a mapping slot plus key; any
// other arity is fatal.
func renderKeccak256(v ir.Keccak256, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	switch len(v.Args) {
	case 1:
		return VarNameOrDefault(v.Args[0], cfg, contract, diags)
	case 2:
		base, err := VarNameOrDefault(v.Args[0], cfg, contract, diags)
		if err != nil {
			return "", err
		}
		key, err := Expression(v.Args[1], cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("&new_key(%s, %s)", base, key), nil
	default:
		return "", errors.KeccakArity(len(v.Args))
	}
}
