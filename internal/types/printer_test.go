package types

import (
	"testing"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

func intp(n int) *int { return &n }

func TestRenderPrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   ir.Type
		want string
	}{
		{"bool", ir.BoolType{}, "bool"},
		{"string", ir.StringType{}, "String"},
		{"uint8", ir.UintType{Bits: 8}, "u8"},
		{"uint256", ir.UintType{Bits: 256}, "U256"},
		{"int128", ir.IntType{Bits: 128}, "i128"},
		{"address", ir.AddressType{}, "AccountHash"},
		{"bytes", ir.BytesType{}, "Vec<u8>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := &errors.Diagnostics{}
			got := Render(tc.in, diags)
			if got != tc.want {
				t.Errorf("Render(%v) = %q, want %q", tc.in, got, tc.want)
			}
			if !diags.Empty() {
				t.Errorf("unexpected diagnostics: %v", diags.Items())
			}
		})
	}
}

func TestRenderArrayFixed(t *testing.T) {
	diags := &errors.Diagnostics{}
	ty := ir.ArrayType{Elem: ir.UintType{Bits: 8}, Dims: []ir.ArrayDim{{N: intp(4)}}}
	got := Render(ty, diags)
	want := "[u8; 4]"
	if got != want {
		t.Errorf("Render(%v) = %q, want %q", ty, got, want)
	}
}

func TestRenderArrayDynamic(t *testing.T) {
	diags := &errors.Diagnostics{}
	ty := ir.ArrayType{Elem: ir.UintType{Bits: 256}, Dims: []ir.ArrayDim{{N: nil}}}
	got := Render(ty, diags)
	want := "Vec<U256>"
	if got != want {
		t.Errorf("Render(%v) = %q, want %q", ty, got, want)
	}
}

func TestRenderNestedArray(t *testing.T) {
	diags := &errors.Diagnostics{}
	// Array(Array(U8, [2]), [3]) folds outer->inner.
	inner := ir.ArrayType{Elem: ir.UintType{Bits: 8}, Dims: []ir.ArrayDim{{N: intp(2)}}}
	outer := ir.ArrayType{Elem: inner, Dims: []ir.ArrayDim{{N: intp(3)}}}
	got := Render(outer, diags)
	want := "[[u8; 2]; 3]"
	if got != want {
		t.Errorf("Render(%v) = %q, want %q", outer, got, want)
	}
}

func TestRenderReferencesAreTransparent(t *testing.T) {
	diags := &errors.Diagnostics{}
	ty := ir.RefType{Inner: ir.StorageRefType{Inner: ir.BoolType{}}}
	got := Render(ty, diags)
	if got != "bool" {
		t.Errorf("Render(%v) = %q, want %q", ty, got, "bool")
	}
}

func TestRenderUnknownTypeIsDiagnosticNotFatal(t *testing.T) {
	diags := &errors.Diagnostics{}
	got := Render(ir.UnknownType{Name: "Fixed128x18"}, diags)
	if got != "unknown_type" {
		t.Errorf("Render(unknown) = %q, want %q", got, "unknown_type")
	}
	if diags.Empty() {
		t.Fatal("expected a diagnostic to be recorded")
	}
	if diags.Items()[0].Code != errors.DiagUnknownType {
		t.Errorf("diagnostic code = %s, want %s", diags.Items()[0].Code, errors.DiagUnknownType)
	}
}

func TestRenderUnsupportedIntWidthIsDiagnostic(t *testing.T) {
	diags := &errors.Diagnostics{}
	got := Render(ir.UintType{Bits: 24}, diags)
	if got != "unknown_type" {
		t.Errorf("Render(Uint24) = %q, want unknown_type", got)
	}
	if diags.Empty() {
		t.Fatal("expected a diagnostic for an unsupported width")
	}
}
