package ir

// Contract is the top-level resolved unit handed to the transpiler.
type Contract struct {
	Name      string
	Functions []*FunctionDecl
	Variables []*ContractVariable
}

// ContractVariable is a contract-level persistent slot. Its index within
// Contract.Variables is its storage identity. The distinguished name
// "msg_sender" is never materialised in storage: it resolves to the host
// runtime's caller accessor instead (internal/render.VariableName).
type ContractVariable struct {
	Name string
	Type Type
}

// MsgSender is the distinguished contract-variable name that denotes the
// transaction's invoking account.
const MsgSender = "msg_sender"

// Parameter is one formal parameter of a function.
type Parameter struct {
	Name string
	Type Type
}

// FunctionDecl is one function of a contract.
type FunctionDecl struct {
	Name          string
	Signature     string // textual "name(type,...)", used for blacklist lookup
	Params        []*Parameter
	IsConstructor bool
	IsPublic      bool
	CFG           *ControlFlowGraph
}

// VarDecl is one CFG-local variable (a parameter, a temporary, or a
// user-declared local), indexed by position within ControlFlowGraph.Vars.
type VarDecl struct {
	Name string
	Type Type
}

// BasicBlock is a label plus a straight-line instruction sequence. The
// label drives CFG structuring: synthesised join/header blocks carry
// labels such as "then", "else", "endif", "cond", "body", "endwhile",
// "endfor" that the structurer uses to reconstruct if/else/while.
type BasicBlock struct {
	Name  string
	Instr []Instr
}

// ControlFlowGraph is a function's flat basic-block graph plus its local
// variable table. Block 0 is always the function's unique entry block.
type ControlFlowGraph struct {
	BB   []*BasicBlock
	Vars []*VarDecl
}
