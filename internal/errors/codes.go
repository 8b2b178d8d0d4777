// Package errors carries the transpiler's error-code taxonomy and the
// distinction between fatal conditions (the process aborts) and diagnostics
// (a placeholder is emitted and transpilation continues).
//
// Error code ranges:
// T0001-T0099: unsupported-instruction errors (fatal)
// T0100-T0199: malformed-CFG errors (fatal)
// T0200-T0299: expression-lowering errors (fatal, e.g. Keccak256 arity)
// D0001-D0099: diagnostics (non-fatal placeholders)
package errors

const (
	// T0001: an IR instruction variant with no target-source rendering was
	// encountered (ClearStorage, Constant, Constructor, ExternalCall,
	// AbiDecode, SelfDestruct, Hash, Print, SetStorageBytes).
	ErrUnsupportedInstruction = "T0001"

	// T0101: a block or variable index referenced by an instruction is out
	// of range of the owning CFG.
	ErrMalformedCFG = "T0101"

	// T0201: Keccak256 was applied to an argument list of arity other than
	// 1 or 2.
	ErrKeccakArity = "T0201"

	// D0001: an IR type variant was not recognised by the type printer; the
	// placeholder literal "unknown_type" was emitted.
	DiagUnknownType = "D0001"

	// D0002: an IR expression variant was not recognised by expression
	// lowering; the placeholder literal "unknown_expresson" was emitted.
	DiagUnknownExpr = "D0002"
)

// Description returns a human-readable description of an error/diagnostic
// code, used in CLI output.
func Description(code string) string {
	switch code {
	case ErrUnsupportedInstruction:
		return "instruction has no target-source rendering"
	case ErrMalformedCFG:
		return "block or variable index out of range"
	case ErrKeccakArity:
		return "keccak256 storage-key constructor used with unsupported arity"
	case DiagUnknownType:
		return "unrecognised IR type; emitted as unknown_type"
	case DiagUnknownExpr:
		return "unrecognised IR expression; emitted as unknown_expresson"
	default:
		return "unknown code"
	}
}
