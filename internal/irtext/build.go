package irtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/holiman/uint256"

	"caspiler/internal/ir"
)

// BuildError is a dump-interpretation error: the text parsed, but a term
// does not describe a valid IR construct (bad arity, non-numeric index,
// unknown instruction name). It carries the offending term's position.
type BuildError struct {
	Pos     lexer.Position
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

func buildErrf(pos lexer.Position, format string, args ...any) *BuildError {
	return &BuildError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Build interprets a parsed dump into resolved contracts, in file order.
func Build(file *File) ([]*ir.Contract, error) {
	contracts := make([]*ir.Contract, 0, len(file.Contracts))
	for _, decl := range file.Contracts {
		contract, err := buildContract(decl)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

func buildContract(decl *ContractDecl) (*ir.Contract, error) {
	contract := &ir.Contract{Name: decl.Name}

	for _, v := range decl.Variables {
		contract.Variables = append(contract.Variables, &ir.ContractVariable{
			Name: v.Name,
			Type: buildType(v.Type),
		})
	}

	for _, f := range decl.Functions {
		fn, err := buildFunction(f)
		if err != nil {
			return nil, err
		}
		contract.Functions = append(contract.Functions, fn)
	}
	return contract, nil
}

func buildFunction(decl *FuncDecl) (*ir.FunctionDecl, error) {
	fn := &ir.FunctionDecl{
		Name:          decl.Name,
		IsConstructor: decl.Constructor,
		IsPublic:      decl.Public,
		CFG:           &ir.ControlFlowGraph{},
	}

	for _, p := range decl.Params {
		fn.Params = append(fn.Params, &ir.Parameter{
			Name: p.Name,
			Type: buildType(p.Type),
		})
	}

	if decl.Signature != nil {
		sig, err := strconv.Unquote(*decl.Signature)
		if err != nil {
			sig = strings.Trim(*decl.Signature, `"`)
		}
		fn.Signature = sig
	} else {
		fn.Signature = synthesizeSignature(fn)
	}

	for _, l := range decl.Locals {
		fn.CFG.Vars = append(fn.CFG.Vars, &ir.VarDecl{
			Name: l.Name,
			Type: buildType(l.Type),
		})
	}

	for _, b := range decl.Blocks {
		block := &ir.BasicBlock{Name: b.Label}
		for _, stmt := range b.Instr {
			instr, err := buildInstr(stmt.Term)
			if err != nil {
				return nil, err
			}
			block.Instr = append(block.Instr, instr)
		}
		fn.CFG.BB = append(fn.CFG.BB, block)
	}
	return fn, nil
}

// synthesizeSignature composes the textual "name(type,...)" form from the
// declared parameter types when the dump omits an explicit signature.
// Blacklist signatures use Solidity spelling, so dumps that want blacklist
// filtering should spell the signature out; this fallback only keeps
// unannotated dumps loadable.
func synthesizeSignature(fn *ir.FunctionDecl) string {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		parts[i] = strings.ToLower(p.Type.String())
	}
	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(parts, ","))
}

// buildInstr interprets a term as one IR instruction. The instruction sum
// type is closed: a call name outside it is a dump error, not a diagnostic.
func buildInstr(t *Term) (ir.Instr, error) {
	call := t.Call
	if call == nil {
		return nil, buildErrf(t.Pos, "expected an instruction, got %s", termKind(t))
	}

	switch call.Name {
	case "Eval":
		expr, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		e, err := buildExpr(expr[0])
		if err != nil {
			return nil, err
		}
		return ir.Eval{Expr: e}, nil

	case "Return":
		values := make([]ir.Expr, 0, len(call.Args))
		for _, a := range call.Args {
			e, err := buildExpr(a)
			if err != nil {
				return nil, err
			}
			values = append(values, e)
		}
		return ir.Return{Values: values}, nil

	case "Set":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		res, err := intArg(args[0])
		if err != nil {
			return nil, err
		}
		e, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		return ir.Set{Res: res, Expr: e}, nil

	case "SetStorage":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, err
		}
		local, err := intArg(args[1])
		if err != nil {
			return nil, err
		}
		storage, err := buildExpr(args[2])
		if err != nil {
			return nil, err
		}
		return ir.SetStorage{Type: buildType(args[0]), Local: local, Storage: storage}, nil

	case "Call":
		if len(call.Args) < 2 {
			return nil, buildErrf(t.Pos, "Call needs a result index and a function index")
		}
		res, err := intArg(call.Args[0])
		if err != nil {
			return nil, err
		}
		fn, err := intArg(call.Args[1])
		if err != nil {
			return nil, err
		}
		callArgs := make([]ir.Expr, 0, len(call.Args)-2)
		for _, a := range call.Args[2:] {
			e, err := buildExpr(a)
			if err != nil {
				return nil, err
			}
			callArgs = append(callArgs, e)
		}
		return ir.Call{Res: res, Func: fn, Args: callArgs}, nil

	case "BranchCond":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, err
		}
		cond, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		trueBB, err := intArg(args[1])
		if err != nil {
			return nil, err
		}
		falseBB, err := intArg(args[2])
		if err != nil {
			return nil, err
		}
		return ir.BranchCond{Cond: cond, True: trueBB, False: falseBB}, nil

	case "Branch":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		bb, err := intArg(args[0])
		if err != nil {
			return nil, err
		}
		return ir.Branch{BB: bb}, nil

	case "Store":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		dest, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		pos, err := intArg(args[1])
		if err != nil {
			return nil, err
		}
		return ir.Store{Dest: dest, Pos: pos}, nil

	case "AssertFailure":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		e, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		return ir.AssertFailure{Expr: e}, nil

	case "Unreachable":
		if _, err := exactArgs(t, 0); err != nil {
			return nil, err
		}
		return ir.Unreachable{}, nil
	}

	// Fatal-only variants are constructible from dumps so the renderer's
	// unsupported-instruction path is reachable end-to-end. Their operand
	// shapes are interpreted loosely: rendering aborts on the variant name
	// before looking at operands.
	if instr, ok, err := buildFatalOnlyInstr(t); ok || err != nil {
		return instr, err
	}

	return nil, buildErrf(t.Pos, "unknown instruction %s", call.Name)
}

func buildFatalOnlyInstr(t *Term) (ir.Instr, bool, error) {
	call := t.Call
	switch call.Name {
	case "ClearStorage":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, true, err
		}
		storage, err := buildExpr(args[1])
		if err != nil {
			return nil, true, err
		}
		return ir.ClearStorage{Type: buildType(args[0]), Storage: storage}, true, nil
	case "Constant":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, true, err
		}
		res, err := intArg(args[0])
		if err != nil {
			return nil, true, err
		}
		return ir.Constant{Res: res}, true, nil
	case "Constructor":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, true, err
		}
		res, err := intArg(args[0])
		if err != nil {
			return nil, true, err
		}
		contractNo, err := intArg(args[1])
		if err != nil {
			return nil, true, err
		}
		constructorNo, err := intArg(args[2])
		if err != nil {
			return nil, true, err
		}
		return ir.ConstructorCall{Res: res, ContractNo: contractNo, ConstructorNo: constructorNo}, true, nil
	case "ExternalCall":
		if len(call.Args) < 2 {
			return nil, true, buildErrf(t.Pos, "ExternalCall needs a result index and an address")
		}
		res, err := intArg(call.Args[0])
		if err != nil {
			return nil, true, err
		}
		addr, err := buildExpr(call.Args[1])
		if err != nil {
			return nil, true, err
		}
		callArgs := make([]ir.Expr, 0, len(call.Args)-2)
		for _, a := range call.Args[2:] {
			e, err := buildExpr(a)
			if err != nil {
				return nil, true, err
			}
			callArgs = append(callArgs, e)
		}
		return ir.ExternalCall{Res: res, Address: addr, Args: callArgs}, true, nil
	case "AbiDecode":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, true, err
		}
		res, err := intArg(args[0])
		if err != nil {
			return nil, true, err
		}
		data, err := buildExpr(args[1])
		if err != nil {
			return nil, true, err
		}
		return ir.AbiDecode{Res: res, Data: data}, true, nil
	case "SelfDestruct":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, true, err
		}
		recipient, err := buildExpr(args[0])
		if err != nil {
			return nil, true, err
		}
		return ir.SelfDestruct{Recipient: recipient}, true, nil
	case "Hash":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, true, err
		}
		res, err := intArg(args[0])
		if err != nil {
			return nil, true, err
		}
		kind, err := stringArg(args[1])
		if err != nil {
			return nil, true, err
		}
		e, err := buildExpr(args[2])
		if err != nil {
			return nil, true, err
		}
		return ir.Hash{Res: res, Kind: kind, Expr: e}, true, nil
	case "Print":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, true, err
		}
		e, err := buildExpr(args[0])
		if err != nil {
			return nil, true, err
		}
		return ir.Print{Expr: e}, true, nil
	case "SetStorageBytes":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, true, err
		}
		local, err := intArg(args[0])
		if err != nil {
			return nil, true, err
		}
		storage, err := buildExpr(args[1])
		if err != nil {
			return nil, true, err
		}
		offset, err := buildExpr(args[2])
		if err != nil {
			return nil, true, err
		}
		return ir.SetStorageBytes{Local: local, Storage: storage, Offset: offset}, true, nil
	}
	return nil, false, nil
}

// buildExpr interprets a term as an IR expression. Unlike instructions, the
// expression algebra is open at this boundary: an unrecognised call name
// becomes ir.UnknownExpr, which the renderer turns into a placeholder plus
// a diagnostic rather than an abort.
func buildExpr(t *Term) (ir.Expr, error) {
	switch {
	case t.Number != nil:
		n, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		return ir.NumberLiteral{Value: n}, nil

	case t.Ident != nil:
		switch *t.Ident {
		case "true":
			return ir.BoolLiteral{Value: true}, nil
		case "false":
			return ir.BoolLiteral{Value: false}, nil
		}
		return nil, buildErrf(t.Pos, "bare identifier %s is not an expression", *t.Ident)

	case t.Call != nil:
		return buildCallExpr(t)

	default:
		return nil, buildErrf(t.Pos, "expected an expression, got %s", termKind(t))
	}
}

func buildCallExpr(t *Term) (ir.Expr, error) {
	call := t.Call

	if builder, ok := binaryExprs[call.Name]; ok {
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		l, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		r, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		return builder(l, r), nil
	}

	switch call.Name {
	case "BoolLiteral":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		if args[0].Ident != nil && *args[0].Ident == "true" {
			return ir.BoolLiteral{Value: true}, nil
		}
		if args[0].Ident != nil && *args[0].Ident == "false" {
			return ir.BoolLiteral{Value: false}, nil
		}
		return nil, buildErrf(args[0].Pos, "BoolLiteral takes true or false")

	case "NumberLiteral":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		n, err := parseNumber(args[0])
		if err != nil {
			return nil, err
		}
		return ir.NumberLiteral{Value: n}, nil

	case "BytesLiteral":
		bytes := make([]byte, 0, len(call.Args))
		for _, a := range call.Args {
			b, err := intArg(a)
			if err != nil {
				return nil, err
			}
			if b < 0 || b > 255 {
				return nil, buildErrf(a.Pos, "byte value %d out of range", b)
			}
			bytes = append(bytes, byte(b))
		}
		return ir.BytesLiteral{Value: bytes}, nil

	case "ArrayLiteral":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, err
		}
		dims, err := intList(args[1])
		if err != nil {
			return nil, err
		}
		if args[2].List == nil {
			return nil, buildErrf(args[2].Pos, "ArrayLiteral elements must be a [...] list")
		}
		elems := make([]ir.Expr, 0, len(args[2].List.Elems))
		for _, e := range args[2].List.Elems {
			expr, err := buildExpr(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, expr)
		}
		return ir.ArrayLiteral{ElemType: buildType(args[0]), Dims: dims, Elems: elems}, nil

	case "Not", "UnaryMinus":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		inner, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		if call.Name == "Not" {
			return ir.Not{Expr: inner}, nil
		}
		return ir.UnaryMinus{Expr: inner}, nil

	case "Ternary":
		args, err := exactArgs(t, 3)
		if err != nil {
			return nil, err
		}
		cond, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		then, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		els, err := buildExpr(args[2])
		if err != nil {
			return nil, err
		}
		return ir.Ternary{Cond: cond, Then: then, Else: els}, nil

	case "Variable":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		idx, err := intArg(args[0])
		if err != nil {
			return nil, err
		}
		return ir.Variable{Index: idx}, nil

	case "FunctionArg":
		args, err := exactArgs(t, 1)
		if err != nil {
			return nil, err
		}
		pos, err := intArg(args[0])
		if err != nil {
			return nil, err
		}
		return ir.FunctionArg{Pos: pos}, nil

	case "StorageLoad":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		key, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		return ir.StorageLoad{Type: buildType(args[0]), Key: key}, nil

	case "ZeroExt":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		inner, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		return ir.ZeroExt{Type: buildType(args[0]), Expr: inner}, nil

	case "ArraySubscript":
		args, err := exactArgs(t, 2)
		if err != nil {
			return nil, err
		}
		array, err := buildExpr(args[0])
		if err != nil {
			return nil, err
		}
		index, err := buildExpr(args[1])
		if err != nil {
			return nil, err
		}
		return ir.ArraySubscript{Array: array, Index: index}, nil

	case "Keccak256":
		keccakArgs := make([]ir.Expr, 0, len(call.Args))
		for _, a := range call.Args {
			e, err := buildExpr(a)
			if err != nil {
				return nil, err
			}
			keccakArgs = append(keccakArgs, e)
		}
		return ir.Keccak256{Args: keccakArgs}, nil

	default:
		return ir.UnknownExpr{Kind: call.Name}, nil
	}
}

var binaryExprs = map[string]func(l, r ir.Expr) ir.Expr{
	"Add":        func(l, r ir.Expr) ir.Expr { return ir.Add{L: l, R: r} },
	"Subtract":   func(l, r ir.Expr) ir.Expr { return ir.Subtract{L: l, R: r} },
	"Multiply":   func(l, r ir.Expr) ir.Expr { return ir.Multiply{L: l, R: r} },
	"UDivide":    func(l, r ir.Expr) ir.Expr { return ir.UDivide{L: l, R: r} },
	"SDivide":    func(l, r ir.Expr) ir.Expr { return ir.SDivide{L: l, R: r} },
	"UModulo":    func(l, r ir.Expr) ir.Expr { return ir.UModulo{L: l, R: r} },
	"SModulo":    func(l, r ir.Expr) ir.Expr { return ir.SModulo{L: l, R: r} },
	"Power":      func(l, r ir.Expr) ir.Expr { return ir.Power{L: l, R: r} },
	"BitwiseOr":  func(l, r ir.Expr) ir.Expr { return ir.BitwiseOr{L: l, R: r} },
	"BitwiseAnd": func(l, r ir.Expr) ir.Expr { return ir.BitwiseAnd{L: l, R: r} },
	"BitwiseXor": func(l, r ir.Expr) ir.Expr { return ir.BitwiseXor{L: l, R: r} },
	"SMore":      func(l, r ir.Expr) ir.Expr { return ir.SMore{L: l, R: r} },
	"SLess":      func(l, r ir.Expr) ir.Expr { return ir.SLess{L: l, R: r} },
	"SMoreEqual": func(l, r ir.Expr) ir.Expr { return ir.SMoreEqual{L: l, R: r} },
	"SLessEqual": func(l, r ir.Expr) ir.Expr { return ir.SLessEqual{L: l, R: r} },
	"UMore":      func(l, r ir.Expr) ir.Expr { return ir.UMore{L: l, R: r} },
	"ULess":      func(l, r ir.Expr) ir.Expr { return ir.ULess{L: l, R: r} },
	"UMoreEqual": func(l, r ir.Expr) ir.Expr { return ir.UMoreEqual{L: l, R: r} },
	"ULessEqual": func(l, r ir.Expr) ir.Expr { return ir.ULessEqual{L: l, R: r} },
	"Equal":      func(l, r ir.Expr) ir.Expr { return ir.Equal{L: l, R: r} },
	"NotEqual":   func(l, r ir.Expr) ir.Expr { return ir.NotEqual{L: l, R: r} },
}

// buildType interprets a term as an IR type. Unrecognised names map to
// ir.UnknownType: the type printer turns those into the placeholder literal
// plus a diagnostic, so a dump with an exotic type still loads.
func buildType(t *Term) ir.Type {
	switch {
	case t.Ident != nil:
		switch *t.Ident {
		case "Bool":
			return ir.BoolType{}
		case "String":
			return ir.StringType{}
		case "Address":
			return ir.AddressType{}
		case "Bytes":
			return ir.BytesType{}
		}
		return ir.UnknownType{Name: *t.Ident}

	case t.Call != nil:
		return buildCallType(t)

	default:
		return ir.UnknownType{Name: termKind(t)}
	}
}

func buildCallType(t *Term) ir.Type {
	call := t.Call
	switch call.Name {
	case "Uint":
		if bits, ok := singleIntArg(call); ok {
			return ir.UintType{Bits: bits}
		}
	case "Int":
		if bits, ok := singleIntArg(call); ok {
			return ir.IntType{Bits: bits}
		}
	case "Bytes":
		if size, ok := singleIntArg(call); ok {
			return ir.BytesType{Size: &size}
		}
	case "Address":
		if len(call.Args) == 1 && call.Args[0].Ident != nil {
			return ir.AddressType{External: *call.Args[0].Ident == "true"}
		}
	case "Ref":
		if len(call.Args) == 1 {
			return ir.RefType{Inner: buildType(call.Args[0])}
		}
	case "StorageRef":
		if len(call.Args) == 1 {
			return ir.StorageRefType{Inner: buildType(call.Args[0])}
		}
	case "Array":
		if len(call.Args) == 2 && call.Args[1].List != nil {
			dims := make([]ir.ArrayDim, 0, len(call.Args[1].List.Elems))
			for _, d := range call.Args[1].List.Elems {
				if d.Ident != nil && *d.Ident == "_" {
					dims = append(dims, ir.ArrayDim{})
					continue
				}
				if n, err := intArg(d); err == nil {
					dims = append(dims, ir.ArrayDim{N: &n})
					continue
				}
				return ir.UnknownType{Name: call.Name}
			}
			return ir.ArrayType{Elem: buildType(call.Args[0]), Dims: dims}
		}
	}
	return ir.UnknownType{Name: call.Name}
}

func singleIntArg(call *CallTerm) (int, bool) {
	if len(call.Args) != 1 {
		return 0, false
	}
	n, err := intArg(call.Args[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func exactArgs(t *Term, n int) ([]*Term, error) {
	if len(t.Call.Args) != n {
		return nil, buildErrf(t.Pos, "%s takes %d arguments, got %d", t.Call.Name, n, len(t.Call.Args))
	}
	return t.Call.Args, nil
}

func intArg(t *Term) (int, error) {
	if t.Number == nil {
		return 0, buildErrf(t.Pos, "expected an integer, got %s", termKind(t))
	}
	n, err := strconv.ParseInt(*t.Number, 0, 64)
	if err != nil {
		return 0, buildErrf(t.Pos, "bad integer %s", *t.Number)
	}
	return int(n), nil
}

func stringArg(t *Term) (string, error) {
	if t.Str == nil {
		return "", buildErrf(t.Pos, "expected a string, got %s", termKind(t))
	}
	s, err := strconv.Unquote(*t.Str)
	if err != nil {
		return strings.Trim(*t.Str, `"`), nil
	}
	return s, nil
}

func intList(t *Term) ([]int, error) {
	if t.List == nil {
		return nil, buildErrf(t.Pos, "expected a [...] list, got %s", termKind(t))
	}
	out := make([]int, 0, len(t.List.Elems))
	for _, e := range t.List.Elems {
		n, err := intArg(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseNumber(t *Term) (*uint256.Int, error) {
	if t.Number == nil {
		return nil, buildErrf(t.Pos, "expected a number, got %s", termKind(t))
	}
	s := *t.Number
	var n *uint256.Int
	var err error
	if strings.HasPrefix(s, "0x") {
		n, err = uint256.FromHex(s)
	} else {
		n, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, buildErrf(t.Pos, "bad number %s: %v", s, err)
	}
	return n, nil
}

func termKind(t *Term) string {
	switch {
	case t.Call != nil:
		return "a call"
	case t.List != nil:
		return "a list"
	case t.Number != nil:
		return "a number"
	case t.Str != nil:
		return "a string"
	case t.Ident != nil:
		return "an identifier"
	default:
		return "nothing"
	}
}
