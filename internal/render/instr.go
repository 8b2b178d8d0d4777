package render

import (
	"fmt"
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
	"caspiler/internal/types"
)

// simpleInstr renders one non-control-flow instruction into at
// most one target-source statement. BranchCond and Branch are control-flow
// instructions and belong to CFG structuring (cfg.go); they are never
// passed here.
func simpleInstr(instr ir.Instr, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	switch v := instr.(type) {
	case ir.Eval:
		// Pure expressions never have side effects in this IR; silent.
		return "", nil

	case ir.Return:
		if len(v.Values) == 0 {
			return "", nil
		}
		expr, err := Expression(v.Values[0], cfg, contract, diags)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ret(%s);", expr), nil

	case ir.Set:
		left, err := LocalVar(v.Res, cfg)
		if err != nil {
			return "", err
		}
		right, err := Expression(v.Expr, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		if left == right {
			// Self-move: rebinding a variable to itself has no effect.
			return "", nil
		}
		if v.Res < 0 || v.Res >= len(cfg.Vars) {
			return "", errors.MalformedCFG(fmt.Sprintf("Set result index %d out of range", v.Res))
		}
		ty := types.Render(cfg.Vars[v.Res].Type, diags)
		return fmt.Sprintf("let %s: %s = %s;", left, ty, right), nil

	case ir.SetStorage:
		key, err := VarNameOrDefault(v.Storage, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		local, err := LocalVar(v.Local, cfg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("set_key(%s, %s);", key, local), nil

	case ir.Call:
		if v.Func < 0 || v.Func >= len(contract.Functions) {
			return "", errors.MalformedCFG(fmt.Sprintf("call target index %d out of range", v.Func))
		}
		name := contract.Functions[v.Func].Name
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			s, err := Expression(a, cfg, contract, diags)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s);", name, strings.Join(args, ", ")), nil

	case ir.Store:
		dest, err := VarNameOrDefault(v.Dest, cfg, contract, diags)
		if err != nil {
			return "", err
		}
		pos, err := LocalVar(v.Pos, cfg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", dest, pos), nil

	case ir.AssertFailure:
		return "assert(false);", nil

	case ir.Unreachable:
		return "assert(false);", nil

	default:
		return "", errors.Unsupported(ir.Name(instr))
	}
}
