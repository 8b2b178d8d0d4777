package irtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyContract(t *testing.T) {
	source := `contract Empty {
}`

	file, err := ParseString("test.ir", source)
	require.NoError(t, err)
	require.Len(t, file.Contracts, 1)
	assert.Equal(t, "Empty", file.Contracts[0].Name)
	assert.Empty(t, file.Contracts[0].Variables)
	assert.Empty(t, file.Contracts[0].Functions)
}

func TestParseContractWithVariablesAndFunction(t *testing.T) {
	source := `// a token
contract Token {
    variable balances: Uint(256);
    variable msg_sender: Address;

    public function balanceOf "balanceOf(address)" (owner: Address) {
        var owner: Address;
        var x: Uint(256);
        block entry {
            Set(1, StorageLoad(Uint(256), Keccak256(NumberLiteral(0), FunctionArg(0))));
            Return(Variable(1));
        }
    }
}`

	file, err := ParseString("test.ir", source)
	require.NoError(t, err)
	require.Len(t, file.Contracts, 1)

	contract := file.Contracts[0]
	assert.Equal(t, "Token", contract.Name)
	require.Len(t, contract.Variables, 2)
	assert.Equal(t, "balances", contract.Variables[0].Name)
	assert.Equal(t, "msg_sender", contract.Variables[1].Name)

	require.Len(t, contract.Functions, 1)
	fn := contract.Functions[0]
	assert.True(t, fn.Public)
	assert.False(t, fn.Constructor)
	assert.Equal(t, "balanceOf", fn.Name)
	require.NotNil(t, fn.Signature)
	assert.Equal(t, `"balanceOf(address)"`, *fn.Signature)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "owner", fn.Params[0].Name)
	require.Len(t, fn.Locals, 2)
	require.Len(t, fn.Blocks, 1)
	assert.Equal(t, "entry", fn.Blocks[0].Label)
	assert.Len(t, fn.Blocks[0].Instr, 2)
}

func TestParseConstructorFlags(t *testing.T) {
	source := `contract C {
    constructor public function init() {
        block entry {
            Unreachable();
        }
    }
}`

	file, err := ParseString("test.ir", source)
	require.NoError(t, err)
	fn := file.Contracts[0].Functions[0]
	assert.True(t, fn.Constructor)
	assert.True(t, fn.Public)
	assert.Nil(t, fn.Signature)
}

func TestParseNestedTermsAndLists(t *testing.T) {
	source := `contract C {
    function f() {
        var a: Array(Uint(8), [2, _]);
        block entry {
            Set(0, ArrayLiteral(Uint(8), [2], [NumberLiteral(1), NumberLiteral(2)]));
        }
    }
}`

	file, err := ParseString("test.ir", source)
	require.NoError(t, err)

	fn := file.Contracts[0].Functions[0]
	local := fn.Locals[0]
	require.NotNil(t, local.Type.Call)
	assert.Equal(t, "Array", local.Type.Call.Name)
	require.Len(t, local.Type.Call.Args, 2)
	assert.NotNil(t, local.Type.Call.Args[1].List)

	set := fn.Blocks[0].Instr[0].Term
	require.NotNil(t, set.Call)
	assert.Equal(t, "Set", set.Call.Name)
	require.Len(t, set.Call.Args, 2)
	assert.Equal(t, "ArrayLiteral", set.Call.Args[1].Call.Name)
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	source := `contract Broken {
    variable balances Uint(256);
}`

	_, err := ParseString("test.ir", source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.ir:2")
}

func TestParseMultipleContracts(t *testing.T) {
	source := `contract A {
}
contract B {
}`

	file, err := ParseString("test.ir", source)
	require.NoError(t, err)
	require.Len(t, file.Contracts, 2)
	assert.Equal(t, "A", file.Contracts[0].Name)
	assert.Equal(t, "B", file.Contracts[1].Name)
}
