// Package types implements the type printer: it maps internal/ir types
// onto CasperLabs target-source type syntax.
package types

import (
	"fmt"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

// Render maps an IR type to its target-language type name. Unknown type
// variants are a diagnostic condition, not fatal: the placeholder
// literal "unknown_type" is emitted and recorded in diags.
func Render(t ir.Type, diags *errors.Diagnostics) string {
	switch v := t.(type) {
	case ir.BoolType:
		return "bool"
	case ir.StringType:
		return "String"
	case ir.UintType:
		return renderUint(v.Bits, diags)
	case ir.IntType:
		return renderInt(v.Bits, diags)
	case ir.AddressType:
		return "AccountHash"
	case ir.BytesType:
		return "Vec<u8>"
	case ir.ArrayType:
		return renderArray(v, diags)
	case ir.RefType:
		return Render(v.Inner, diags)
	case ir.StorageRefType:
		return Render(v.Inner, diags)
	default:
		reportUnknown(diags, t)
		return "unknown_type"
	}
}

func renderUint(bits int, diags *errors.Diagnostics) string {
	switch bits {
	case 8:
		return "u8"
	case 16:
		return "u16"
	case 32:
		return "u32"
	case 64:
		return "u64"
	case 128:
		return "u128"
	case 256:
		return "U256"
	default:
		reportUnknown(diags, ir.UintType{Bits: bits})
		return "unknown_type"
	}
}

func renderInt(bits int, diags *errors.Diagnostics) string {
	switch bits {
	case 8:
		return "i8"
	case 16:
		return "i16"
	case 32:
		return "i32"
	case 64:
		return "i64"
	case 128:
		return "i128"
	default:
		reportUnknown(diags, ir.IntType{Bits: bits})
		return "unknown_type"
	}
}

// renderArray folds Dims in order, each dimension wrapping the result so
// far (so Dims[0] is the innermost): Some(n) yields a fixed-size array,
// None yields a dynamic (Vec) sequence.
func renderArray(a ir.ArrayType, diags *errors.Diagnostics) string {
	result := Render(a.Elem, diags)
	for _, dim := range a.Dims {
		if dim.N != nil {
			result = fmt.Sprintf("[%s; %d]", result, *dim.N)
		} else {
			result = fmt.Sprintf("Vec<%s>", result)
		}
	}
	return result
}

func reportUnknown(diags *errors.Diagnostics, t ir.Type) {
	if diags == nil {
		return
	}
	diags.Report(errors.DiagUnknownType, fmt.Sprintf("unknown type %s", t.String()))
}
