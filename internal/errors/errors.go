package errors

import "fmt"

// TranspileError is a fatal transpile-time error: unsupported
// instruction, malformed CFG, or an unsupported Keccak256 arity. The core
// never panics on these; it returns a TranspileError up the call stack and
// lets the caller decide how to report it and what exit code to use.
type TranspileError struct {
	Code    string
	Message string
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unsupported builds the fatal error for an IR instruction variant with no
// target-source rendering.
func Unsupported(instrName string) *TranspileError {
	return &TranspileError{
		Code:    ErrUnsupportedInstruction,
		Message: fmt.Sprintf("unsupported instruction %s: %s", instrName, Description(ErrUnsupportedInstruction)),
	}
}

// MalformedCFG builds the fatal error for an out-of-range block/variable
// index.
func MalformedCFG(detail string) *TranspileError {
	return &TranspileError{
		Code:    ErrMalformedCFG,
		Message: fmt.Sprintf("malformed CFG: %s", detail),
	}
}

// KeccakArity builds the fatal error for an unsupported Keccak256 arity.
func KeccakArity(n int) *TranspileError {
	return &TranspileError{
		Code:    ErrKeccakArity,
		Message: fmt.Sprintf("keccak256 called with %d arguments, only 1 or 2 are supported", n),
	}
}

// Diagnostic is a non-fatal note recorded while rendering: an unknown type
// or expression variant was substituted with a placeholder literal.
type Diagnostic struct {
	Code    string
	Message string
}

// Diagnostics collects diagnostics raised over the course of rendering one
// module. It is owned by a single render call and is never shared across
// concurrent renders (the transpiler has no concurrency).
type Diagnostics struct {
	items []Diagnostic
}

// Report records a diagnostic.
func (d *Diagnostics) Report(code, message string) {
	d.items = append(d.items, Diagnostic{Code: code, Message: message})
}

// Items returns the diagnostics recorded so far, in emission order.
func (d *Diagnostics) Items() []Diagnostic {
	return d.items
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.items) == 0
}
