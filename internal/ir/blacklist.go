package ir

// Blacklist is the set of Solidity intrinsic signatures the CasperLabs host
// runtime provides natively. The function emitter must not shadow
// them with a user-code definition.
var Blacklist = map[string]bool{
	"print(string)":         true,
	"revert(string)":        true,
	"assert(bool)":          true,
	"revert()":              true,
	"require(bool)":         true,
	"require(bool,string)":  true,
	"selfdestruct(address)": true,
	"keccak256(bytes)":      true,
	"ripemd160(bytes)":      true,
	"sha256(bytes)":         true,
	"blake2_128(bytes)":     true,
	"blake2_256(bytes)":     true,
}

// IsBlacklisted reports whether a function's declared signature names a
// host-native intrinsic that must not be emitted.
func IsBlacklisted(signature string) bool {
	return Blacklist[signature]
}
