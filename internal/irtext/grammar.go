package irtext

import "github.com/alecthomas/participle/v2/lexer"

// The textual IR dump format, one contract block per contract. Instructions,
// expressions and types all share the same prefix-call term syntax
// (`Set(3, Add(Variable(0), NumberLiteral(1)))`), mirroring the IR variant
// names directly, so the grammar stays a single uniform Term shape and the
// interpretation lives in build.go.

type File struct {
	Contracts []*ContractDecl `@@*`
}

type ContractDecl struct {
	Name      string      `"contract" @Ident "{"`
	Variables []*VarDecl  `@@*`
	Functions []*FuncDecl `@@* "}"`
}

// VarDecl is a contract-storage variable. Its position within the contract
// block is its storage index.
type VarDecl struct {
	Name string `"variable" @Ident ":"`
	Type *Term  `@@ ";"`
}

type FuncDecl struct {
	Constructor bool         `[ @"constructor" ]`
	Public      bool         `[ @"public" ]`
	Name        string       `"function" @Ident`
	Signature   *string      `[ @String ]`
	Params      []*ParamDecl `"(" [ @@ { "," @@ } ] ")" "{"`
	Locals      []*LocalDecl `@@*`
	Blocks      []*BlockDecl `@@* "}"`
}

type ParamDecl struct {
	Name string `@Ident ":"`
	Type *Term  `@@`
}

// LocalDecl is one CFG-local variable. Its position within the function
// block is its index in the CFG's variable table.
type LocalDecl struct {
	Name string `"var" @Ident ":"`
	Type *Term  `@@ ";"`
}

type BlockDecl struct {
	Label string       `"block" @Ident "{"`
	Instr []*InstrStmt `@@* "}"`
}

type InstrStmt struct {
	Term *Term `@@ ";"`
}

// Term is the uniform prefix-call syntax shared by instructions,
// expressions and types.
type Term struct {
	Pos lexer.Position

	Call   *CallTerm `  @@`
	List   *ListTerm `| @@`
	Number *string   `| @Integer`
	Str    *string   `| @String`
	Ident  *string   `| @Ident`
}

type CallTerm struct {
	Name string  `@Ident "("`
	Args []*Term `[ @@ { "," @@ } ] ")"`
}

// ListTerm carries array dimensions and array-literal element lists.
type ListTerm struct {
	Elems []*Term `"[" [ @@ { "," @@ } ] "]"`
}
