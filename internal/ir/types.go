// Package ir defines the resolved contract intermediate representation
// consumed by the transpiler: a contract's storage layout, its functions,
// and the typed, block-structured control-flow graph of each function.
//
// Construction of this IR (Solidity lexing, name resolution, type checking,
// CFG building) is an upstream responsibility; this package only describes
// the shape the upstream pipeline hands to the transpiler.
package ir

import "fmt"

// Type is the IR type algebra. Concrete types implement String() the way
// they are written in IR dumps and diagnostics; rendering into target-source
// type syntax is a separate concern (internal/types).
type Type interface {
	String() string
}

// BoolType is the IR boolean type.
type BoolType struct{}

func (BoolType) String() string { return "Bool" }

// StringType is the IR owning-string type.
type StringType struct{}

func (StringType) String() string { return "String" }

// UintType is a fixed-width unsigned integer, widths {8,16,32,64,128,256}.
type UintType struct {
	Bits int
}

func (t UintType) String() string { return fmt.Sprintf("Uint%d", t.Bits) }

// IntType is a fixed-width signed integer, widths {8,16,32,64,128}.
type IntType struct {
	Bits int
}

func (t IntType) String() string { return fmt.Sprintf("Int%d", t.Bits) }

// AddressType is the account/contract address type. External distinguishes
// an externally-owned account from a contract address at the IR level; the
// target type printer does not currently distinguish them.
type AddressType struct {
	External bool
}

func (t AddressType) String() string { return "Address" }

// BytesType is a byte sequence; Size, when non-nil, fixes its length.
type BytesType struct {
	Size *int
}

func (t BytesType) String() string {
	if t.Size != nil {
		return fmt.Sprintf("Bytes(%d)", *t.Size)
	}
	return "Bytes"
}

// ArrayDim is one dimension of an array type: Some(n) is a fixed length,
// None is a dynamic (growable) dimension.
type ArrayDim struct {
	N *int
}

func (d ArrayDim) String() string {
	if d.N != nil {
		return fmt.Sprintf("%d", *d.N)
	}
	return "_"
}

// ArrayType folds a base element type over a sequence of dimensions,
// innermost first: Dims[0] wraps Elem directly.
type ArrayType struct {
	Elem Type
	Dims []ArrayDim
}

func (t ArrayType) String() string {
	s := t.Elem.String()
	for _, d := range t.Dims {
		s = fmt.Sprintf("Array(%s, %s)", s, d.String())
	}
	return s
}

// RefType is a transparent reference: render_type strips it.
type RefType struct {
	Inner Type
}

func (t RefType) String() string { return "Ref(" + t.Inner.String() + ")" }

// StorageRefType is a transparent storage reference: render_type strips it.
type StorageRefType struct {
	Inner Type
}

func (t StorageRefType) String() string { return "StorageRef(" + t.Inner.String() + ")" }

// UnknownType is any IR type variant the transpiler does not recognise. It
// is a diagnostic condition, not a fatal one: render_type emits the
// placeholder literal "unknown_type" for it and the transpiler continues.
type UnknownType struct {
	Name string
}

func (t UnknownType) String() string {
	if t.Name != "" {
		return "Unknown(" + t.Name + ")"
	}
	return "Unknown"
}
