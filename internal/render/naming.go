// Package render implements the back half of the transpiler: variable naming,
// expression lowering, instruction lowering, CFG structuring, and the
// function/module emitters that together turn a resolved ir.Contract into
// CasperLabs target source.
package render

import (
	"fmt"
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

// LocalVar renders a CFG-local variable reference by index. The IR
// uses dotted temporary names such as "or.temp.2"; the target disallows
// "." in identifiers, so dots are stripped.
func LocalVar(idx int, cfg *ir.ControlFlowGraph) (string, error) {
	if idx < 0 || idx >= len(cfg.Vars) {
		return "", errors.MalformedCFG(fmt.Sprintf("local variable index %d out of range (%d vars)", idx, len(cfg.Vars)))
	}
	return strings.ReplaceAll(cfg.Vars[idx].Name, ".", ""), nil
}

// VariableName renders a contract-storage variable by index. The
// distinguished name "msg_sender" becomes a runtime caller-accessor call;
// every other name becomes a quoted storage-key string literal.
func VariableName(idx int, contract *ir.Contract) (string, error) {
	if idx < 0 || idx >= len(contract.Variables) {
		return "", errors.MalformedCFG(fmt.Sprintf("storage variable index %d out of range (%d variables)", idx, len(contract.Variables)))
	}
	name := contract.Variables[idx].Name
	if name == ir.MsgSender {
		return GetCallerExpr, nil
	}
	return fmt.Sprintf("%q", name), nil
}

// GetCallerExpr is the rendered call that resolves the IR's msg_sender
// alias to the host runtime's caller accessor.
const GetCallerExpr = "runtime::get_caller()"

// VarNameOrDefault renders a storage-key expression. A NumberLiteral
// key is treated as a storage-variable index and delegated to
// VariableName. An Add/Multiply key is an arithmetic-keyed mapping slot:
// the target storage layer keys by string, so the expression is wrapped in
// a string-formatting call. Anything else falls back to plain
// expression rendering.
func VarNameOrDefault(expr ir.Expr, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	switch e := expr.(type) {
	case ir.NumberLiteral:
		idx := int(e.Value.Uint64())
		name, err := VariableName(idx, contract)
		if err != nil {
			return fmt.Sprintf("%q", fmt.Sprint(idx)), nil
		}
		return name, nil
	case ir.Add, ir.Multiply:
		rendered, err := Expression(expr, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("&format!(\"{}\", %s)", rendered), nil
	default:
		return Expression(expr, cfg, contract, diags)
	}
}
