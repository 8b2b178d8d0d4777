package render

import (
	"fmt"
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

// Block labels that the upstream CFG builder attaches to synthesised
// loop-exit and if/else-join blocks. CFG structuring inspects these
// to decide whether a BranchCond reconstructs a `while` or an `if`/`else`.
const (
	labelEndWhile = "endwhile"
	labelEndFor   = "endfor"
	labelEndIf    = "endif"
	labelElse     = "else"
)

// FunctionCFG renders a whole function body starting at block 0 (the
// function entry) with an empty visited-block list.
func FunctionCFG(cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	if len(cfg.BB) == 0 {
		return "", errors.MalformedCFG("function has no basic blocks")
	}
	return renderBlock(0, cfg, contract, diags, nil)
}

// renderBlock renders cfg.BB[id] and, via control-flow instructions within
// it, its structurally-nested descendants. visited is passed by value (a
// fresh slice per call) so that a block visited along one sibling path does
// not silence its appearance on another.
func renderBlock(id int, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics, visited []int) (string, error) {
	if id < 0 || id >= len(cfg.BB) {
		return "", errors.MalformedCFG(fmt.Sprintf("block index %d out of range (%d blocks)", id, len(cfg.BB)))
	}
	visited = appendVisited(visited, id)
	block := cfg.BB[id]

	var out strings.Builder
	for _, instr := range block.Instr {
		s, err := renderInstrInBlock(instr, cfg, contract, diags, visited)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

// appendVisited returns a copy of visited with id appended, never mutating
// the caller's backing array.
func appendVisited(visited []int, id int) []int {
	next := make([]int, len(visited), len(visited)+1)
	copy(next, visited)
	return append(next, id)
}

func contains(visited []int, id int) bool {
	for _, v := range visited {
		if v == id {
			return true
		}
	}
	return false
}

// renderInstrInBlock dispatches between CFG structuring (control-flow
// instructions) and plain instruction lowering (everything else).
func renderInstrInBlock(instr ir.Instr, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics, visited []int) (string, error) {
	switch v := instr.(type) {
	case ir.BranchCond:
		return renderBranchCond(v, cfg, contract, diags, visited)
	case ir.Branch:
		return renderBranch(v, cfg, contract, diags, visited)
	default:
		return simpleInstr(instr, cfg, contract, diags)
	}
}

// renderBranchCond is the label-driven structuring rule. The
// false target's block label decides the shape: endwhile/endfor reconstructs
// a `while` loop (false branch is the exit, true branch is the body);
// endif/else reconstructs an `if`/`else` (the `else` clause is dropped when
// its rendering is empty); any other label is silent. The structurer never
// invents control flow it wasn't told to reconstruct.
func renderBranchCond(v ir.BranchCond, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics, visited []int) (string, error) {
	if v.False < 0 || v.False >= len(cfg.BB) {
		return "", errors.MalformedCFG(fmt.Sprintf("branch false-target index %d out of range", v.False))
	}
	falseLabel := cfg.BB[v.False].Name

	cond, err := Expression(v.Cond, cfg, contract, diags)
	if err != nil {
		return "", err
	}

	switch falseLabel {
	case labelEndWhile, labelEndFor:
		body, err := renderBlock(v.True, cfg, contract, diags, visited)
		if err != nil {
			return "", err
		}
		tail, err := renderBlock(v.False, cfg, contract, diags, visited)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("while %s { %s } %s", cond, body, tail), nil

	case labelEndIf, labelElse:
		then, err := renderBlock(v.True, cfg, contract, diags, visited)
		if err != nil {
			return "", err
		}
		els, err := renderBlock(v.False, cfg, contract, diags, visited)
		if err != nil {
			return "", err
		}
		elseClause := ""
		if strings.TrimSpace(els) != "" {
			elseClause = fmt.Sprintf("else { %s }", els)
		}
		return fmt.Sprintf("if %s { %s } %s", cond, then, elseClause), nil

	default:
		// Defensive: an unlabelled join point means the upstream CFG
		// builder violated the labelling contract. Degrade to silence
		// rather than invent structure or emit syntactic corruption.
		return "", nil
	}
}

// renderBranch is the back-edge rule: a branch to an
// already-visited block is a loop back-edge already accounted for by the
// header's `while`, so it renders nothing; otherwise it's a straight-line
// fall-through and its target is inlined.
func renderBranch(v ir.Branch, cfg *ir.ControlFlowGraph, contract *ir.Contract, diags *errors.Diagnostics, visited []int) (string, error) {
	if contains(visited, v.BB) {
		return "", nil
	}
	return renderBlock(v.BB, cfg, contract, diags, visited)
}
