package render

import (
	"strings"
	"testing"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

func TestModuleFunctionsDropsBlacklistedSignatures(t *testing.T) {
	contract := &ir.Contract{
		Functions: []*ir.FunctionDecl{
			{Name: "require", Signature: "require(bool)"},
			{Name: "transfer", Signature: "transfer(address,uint256)"},
			{Name: "revert", Signature: "revert()"},
		},
	}
	got := ModuleFunctions(contract)
	if len(got) != 1 || got[0].Name != "transfer" {
		t.Errorf("ModuleFunctions = %+v, want only transfer", got)
	}
}

func TestModuleFunctionsPreservesDeclaredOrder(t *testing.T) {
	contract := &ir.Contract{
		Functions: []*ir.FunctionDecl{
			{Name: "c", Signature: "c()"},
			{Name: "a", Signature: "a()"},
			{Name: "b", Signature: "b()"},
		},
	}
	got := ModuleFunctions(contract)
	order := []string{got[0].Name, got[1].Name, got[2].Name}
	want := []string{"c", "a", "b"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("ModuleFunctions order = %v, want %v", order, want)
		}
	}
}

func TestModuleHeaderAndFooterPresent(t *testing.T) {
	contract := &ir.Contract{Name: "Token"}
	diags := &errors.Diagnostics{}
	got, err := Module(contract, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"#![no_main]",
		"#[casperlabs_contract]\nmod Token {",
		"fn get_key<T: FromBytes + CLTyped + Default>(name: &str) -> T {",
		"fn new_key(a: &str, b: AccountHash) -> String {",
		"fn ret<T: CLTyped + ToBytes>(value: T) {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Module output missing %q", want)
		}
	}
}

// A full contract with a mapping-backed storage load
// renders the function body embedded inside the module.
func TestModuleRendersFullContract(t *testing.T) {
	contract := &ir.Contract{
		Name:      "Token",
		Variables: []*ir.ContractVariable{{Name: "balances", Type: ir.UintType{Bits: 256}}},
		Functions: []*ir.FunctionDecl{
			{
				Name:     "balanceOf",
				IsPublic: true,
				Params:   []*ir.Parameter{{Name: "owner", Type: ir.AddressType{}}},
				CFG: &ir.ControlFlowGraph{
					Vars: []*ir.VarDecl{{Name: "owner", Type: ir.AddressType{}}},
					BB: []*ir.BasicBlock{{Name: "entry", Instr: []ir.Instr{
						ir.Return{Values: []ir.Expr{ir.StorageLoad{
							Type: ir.UintType{Bits: 256},
							Key: ir.Keccak256{Args: []ir.Expr{
								ir.NumberLiteral{Value: u256(0)},
								ir.FunctionArg{Pos: 0},
							}},
						}}},
					}}},
				},
			},
		},
	}
	diags := &errors.Diagnostics{}
	got, err := Module(contract, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "#[casperlabs_method]") {
		t.Errorf("expected balanceOf to carry the method annotation, got %q", got)
	}
	want := `ret(get_key::<U256>(&new_key("balances", owner)));`
	if !strings.Contains(normalize(got), normalize(want)) {
		t.Errorf("Module output = %q, want substring %q", got, want)
	}
}

func TestModulePropagatesFatalErrorFromFunction(t *testing.T) {
	contract := &ir.Contract{
		Name: "Broken",
		Functions: []*ir.FunctionDecl{
			{Name: "broken", Signature: "broken()"},
		},
	}
	diags := &errors.Diagnostics{}
	if _, err := Module(contract, diags); err == nil {
		t.Fatal("expected a fatal error propagated from a function with no CFG")
	}
}
