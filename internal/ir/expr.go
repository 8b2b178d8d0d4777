package ir

import "github.com/holiman/uint256"

// Expr is the expression-tree algebra. Folding an Expr into
// target-source text is internal/render's job; this package only
// carries the shape.
type Expr interface {
	exprNode()
}

// --- Literals ---

type BoolLiteral struct{ Value bool }

type NumberLiteral struct{ Value *uint256.Int }

type BytesLiteral struct{ Value []byte }

// ArrayLiteral carries its folding dimensions innermost-first, mirroring
// ArrayType.Dims, plus the flat list of element expressions.
type ArrayLiteral struct {
	ElemType Type
	Dims     []int
	Elems    []Expr
}

// --- Arithmetic ---

type Add struct{ L, R Expr }
type Subtract struct{ L, R Expr }
type Multiply struct{ L, R Expr }
type UDivide struct{ L, R Expr }
type SDivide struct{ L, R Expr }
type UModulo struct{ L, R Expr }
type SModulo struct{ L, R Expr }
type Power struct{ L, R Expr }

// --- Bitwise ---

type BitwiseOr struct{ L, R Expr }
type BitwiseAnd struct{ L, R Expr }
type BitwiseXor struct{ L, R Expr }

// --- Comparison ---

type SMore struct{ L, R Expr }
type SLess struct{ L, R Expr }
type SMoreEqual struct{ L, R Expr }
type SLessEqual struct{ L, R Expr }
type UMore struct{ L, R Expr }
type ULess struct{ L, R Expr }
type UMoreEqual struct{ L, R Expr }
type ULessEqual struct{ L, R Expr }
type Equal struct{ L, R Expr }
type NotEqual struct{ L, R Expr }

// --- Unary / ternary ---

type Not struct{ Expr Expr }
type UnaryMinus struct{ Expr Expr }
type Ternary struct{ Cond, Then, Else Expr }

// --- Data ---

// Variable references an entry of ControlFlowGraph.Vars by index.
type Variable struct{ Index int }

// FunctionArg references a function parameter by position.
type FunctionArg struct{ Pos int }

// StorageLoad reads a contract-storage slot. Key, when a NumberLiteral,
// encodes a storage-variable index; otherwise it is a computed
// mapping-slot address (typically a Keccak256 node).
type StorageLoad struct {
	Type Type
	Key  Expr
}

// ZeroExt is a width-widening conversion; the target's integer promotion
// makes the rendering a no-op.
type ZeroExt struct {
	Type Type
	Expr Expr
}

type ArraySubscript struct{ Array, Index Expr }

// Keccak256 is a storage-key constructor: one argument
// addresses a storage slot directly, two address a mapping slot plus key.
// Any other arity is fatal at render time.
type Keccak256 struct{ Args []Expr }

// UnknownExpr is any IR expression variant the transpiler does not
// recognise. Diagnostic, not fatal: render emits "unknown_expresson".
type UnknownExpr struct{ Kind string }

func (BoolLiteral) exprNode()    {}
func (NumberLiteral) exprNode()  {}
func (BytesLiteral) exprNode()   {}
func (ArrayLiteral) exprNode()   {}
func (Add) exprNode()            {}
func (Subtract) exprNode()       {}
func (Multiply) exprNode()       {}
func (UDivide) exprNode()        {}
func (SDivide) exprNode()        {}
func (UModulo) exprNode()        {}
func (SModulo) exprNode()        {}
func (Power) exprNode()          {}
func (BitwiseOr) exprNode()      {}
func (BitwiseAnd) exprNode()     {}
func (BitwiseXor) exprNode()     {}
func (SMore) exprNode()          {}
func (SLess) exprNode()          {}
func (SMoreEqual) exprNode()     {}
func (SLessEqual) exprNode()     {}
func (UMore) exprNode()          {}
func (ULess) exprNode()          {}
func (UMoreEqual) exprNode()     {}
func (ULessEqual) exprNode()     {}
func (Equal) exprNode()          {}
func (NotEqual) exprNode()       {}
func (Not) exprNode()            {}
func (UnaryMinus) exprNode()     {}
func (Ternary) exprNode()        {}
func (Variable) exprNode()       {}
func (FunctionArg) exprNode()    {}
func (StorageLoad) exprNode()    {}
func (ZeroExt) exprNode()        {}
func (ArraySubscript) exprNode() {}
func (Keccak256) exprNode()      {}
func (UnknownExpr) exprNode()    {}
