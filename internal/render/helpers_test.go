package render

import "github.com/holiman/uint256"

// u256 builds a *uint256.Int from a small literal, for test fixtures that
// mirror NumberLiteral nodes in IR fixtures.
func u256(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}
