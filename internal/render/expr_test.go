package render

import (
	"testing"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

func TestExpressionNot(t *testing.T) {
	// not(a: bool): Not(FunctionArg(a)) renders as !(a).
	cfg := &ir.ControlFlowGraph{Vars: []*ir.VarDecl{{Name: "a", Type: ir.BoolType{}}}}
	diags := &errors.Diagnostics{}
	got, err := Expression(ir.Not{Expr: ir.FunctionArg{Pos: 0}}, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "!(a)" {
		t.Errorf("Expression(Not(a)) = %q, want %q", got, "!(a)")
	}
}

func TestExpressionArithmetic(t *testing.T) {
	cfg := &ir.ControlFlowGraph{Vars: []*ir.VarDecl{
		{Name: "a", Type: ir.UintType{Bits: 256}},
		{Name: "b", Type: ir.UintType{Bits: 256}},
	}}
	diags := &errors.Diagnostics{}
	add := ir.Add{L: ir.Variable{Index: 0}, R: ir.Variable{Index: 1}}
	got, err := Expression(add, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(a + b)" {
		t.Errorf("Expression(a+b) = %q, want %q", got, "(a + b)")
	}
}

func TestExpressionPower(t *testing.T) {
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	pow := ir.Power{L: ir.NumberLiteral{Value: u256(2)}, R: ir.NumberLiteral{Value: u256(8)}}
	got, err := Expression(pow, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2.pow(8)" {
		t.Errorf("Expression(2.pow(8)) = %q, want %q", got, "2.pow(8)")
	}
}

func TestExpressionBitwiseOrZipsByteSequences(t *testing.T) {
	cfg := &ir.ControlFlowGraph{Vars: []*ir.VarDecl{
		{Name: "a", Type: ir.BytesType{}},
		{Name: "b", Type: ir.BytesType{}},
	}}
	diags := &errors.Diagnostics{}
	or := ir.BitwiseOr{L: ir.Variable{Index: 0}, R: ir.Variable{Index: 1}}
	got, err := Expression(or, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "(a.iter().zip(b.iter()).map(|e| e.0 | e.1).collect::<Vec<u8>>())"
	if got != want {
		t.Errorf("Expression(a|b) = %q, want %q", got, want)
	}
}

func TestExpressionTernary(t *testing.T) {
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	tern := ir.Ternary{Cond: ir.BoolLiteral{Value: true}, Then: ir.NumberLiteral{Value: u256(1)}, Else: ir.NumberLiteral{Value: u256(0)}}
	got, err := Expression(tern, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "if true { 1 } else { 0 }" {
		t.Errorf("Expression(ternary) = %q, want %q", got, "if true { 1 } else { 0 }")
	}
}

func TestExpressionArraySubscript(t *testing.T) {
	cfg := &ir.ControlFlowGraph{Vars: []*ir.VarDecl{{Name: "arr", Type: ir.ArrayType{}}}}
	diags := &errors.Diagnostics{}
	sub := ir.ArraySubscript{Array: ir.Variable{Index: 0}, Index: ir.NumberLiteral{Value: u256(3)}}
	got, err := Expression(sub, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "arr[3 as usize]" {
		t.Errorf("Expression(arr[3]) = %q, want %q", got, "arr[3 as usize]")
	}
}

func TestExpressionArrayLiteralFoldsDimensions(t *testing.T) {
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	lit := ir.ArrayLiteral{
		Dims: []int{2},
		Elems: []ir.Expr{
			ir.NumberLiteral{Value: u256(1)},
			ir.NumberLiteral{Value: u256(2)},
			ir.NumberLiteral{Value: u256(3)},
			ir.NumberLiteral{Value: u256(4)},
		},
	}
	got, err := Expression(lit, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "[1, 2],[3, 4]"
	if got != want {
		t.Errorf("Expression(array literal) = %q, want %q", got, want)
	}
}

func TestExpressionUnknownIsDiagnosticNotFatal(t *testing.T) {
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	got, err := Expression(ir.UnknownExpr{Kind: "StructMember"}, cfg, &ir.Contract{}, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "unknown_expresson" {
		t.Errorf("Expression(unknown) = %q, want %q", got, "unknown_expresson")
	}
	if diags.Empty() {
		t.Fatal("expected a diagnostic to be recorded")
	}
}

// Mapping load via the Keccak256 two-argument form.
func TestExpressionMappingStorageLoad(t *testing.T) {
	contract := &ir.Contract{Variables: []*ir.ContractVariable{
		{Name: "balances", Type: ir.UintType{Bits: 256}},
	}}
	cfg := &ir.ControlFlowGraph{Vars: []*ir.VarDecl{{Name: "owner", Type: ir.AddressType{}}}}
	diags := &errors.Diagnostics{}

	key := ir.Keccak256{Args: []ir.Expr{
		ir.NumberLiteral{Value: u256(0)}, // storage-variable index 0 == "balances"
		ir.FunctionArg{Pos: 0},           // owner
	}}
	load := ir.StorageLoad{Type: ir.UintType{Bits: 256}, Key: key}

	got, err := Expression(load, cfg, contract, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `get_key::<U256>(&new_key("balances", owner))`
	if got != want {
		t.Errorf("Expression(mapping load) = %q, want %q", got, want)
	}
}

func TestExpressionStorageLoadMsgSenderSkipsGetKey(t *testing.T) {
	contract := &ir.Contract{Variables: []*ir.ContractVariable{
		{Name: "msg_sender", Type: ir.AddressType{}},
	}}
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	load := ir.StorageLoad{Type: ir.AddressType{}, Key: ir.NumberLiteral{Value: u256(0)}}
	got, err := Expression(load, cfg, contract, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != GetCallerExpr {
		t.Errorf("Expression(storage load of msg_sender) = %q, want %q", got, GetCallerExpr)
	}
}

func TestExpressionKeccakArityOneIsSingleVariableAddress(t *testing.T) {
	contract := &ir.Contract{Variables: []*ir.ContractVariable{
		{Name: "owner", Type: ir.AddressType{}},
	}}
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	got, err := Expression(ir.Keccak256{Args: []ir.Expr{ir.NumberLiteral{Value: u256(0)}}}, cfg, contract, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `"owner"` {
		t.Errorf("Expression(keccak/1) = %q, want %q", got, `"owner"`)
	}
}

func TestExpressionKeccakArityOtherIsFatal(t *testing.T) {
	cfg := &ir.ControlFlowGraph{}
	diags := &errors.Diagnostics{}
	_, err := Expression(ir.Keccak256{Args: []ir.Expr{
		ir.NumberLiteral{Value: u256(0)},
		ir.NumberLiteral{Value: u256(1)},
		ir.NumberLiteral{Value: u256(2)},
	}}, cfg, &ir.Contract{}, diags)
	if err == nil {
		t.Fatal("expected a fatal error for keccak256 with 3 arguments")
	}
	var te *errors.TranspileError
	if !asTranspileError(err, &te) {
		t.Fatalf("expected a *errors.TranspileError, got %T", err)
	}
	if te.Code != errors.ErrKeccakArity {
		t.Errorf("error code = %s, want %s", te.Code, errors.ErrKeccakArity)
	}
}

func asTranspileError(err error, out **errors.TranspileError) bool {
	te, ok := err.(*errors.TranspileError)
	if ok {
		*out = te
	}
	return ok
}
