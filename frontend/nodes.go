package frontend

import "github.com/sagarpatel/slanguage/source"

// Node is a generic node in the abstract syntax tree
type Node interface {
	Pos() source.Pos
}

// Expr is a Node that yields a value when evaluated
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Node that does not necessarily yield a value
type Stmt interface {
	Node
	stmtNode()
}

// IntegerExpr is an integer literal
type IntegerExpr struct {
	Lexeme string
	Value  int32
	At     source.Pos
}

func (n *IntegerExpr) Pos() source.Pos { return n.At }
func (n *IntegerExpr) exprNode()       {}

// FloatExpr is a floating point literal
type FloatExpr struct {
	Lexeme string
	Value  float64
	At     source.Pos
}

func (n *FloatExpr) Pos() source.Pos { return n.At }
func (n *FloatExpr) exprNode()       {}

// BoolExpr is a boolean literal ("facts" or "cap")
type BoolExpr struct {
	Value bool
	At    source.Pos
}

func (n *BoolExpr) Pos() source.Pos { return n.At }
func (n *BoolExpr) exprNode()       {}

// CharExpr is a single-character literal
type CharExpr struct {
	Value byte
	At    source.Pos
}

func (n *CharExpr) Pos() source.Pos { return n.At }
func (n *CharExpr) exprNode()       {}

// StringExpr is a string literal, lexeme already stripped of its quotes
type StringExpr struct {
	Value string
	At    source.Pos
}

func (n *StringExpr) Pos() source.Pos { return n.At }
func (n *StringExpr) exprNode()       {}

// VarExpr is a reference to a named variable
type VarExpr struct {
	Name string
	At   source.Pos
}

func (n *VarExpr) Pos() source.Pos { return n.At }
func (n *VarExpr) exprNode()       {}

// UnaryExpr applies a prefix operator ('+', '-', '!') to an operand
type UnaryExpr struct {
	Operator string
	Operand  Expr
	At       source.Pos
}

func (n *UnaryExpr) Pos() source.Pos { return n.At }
func (n *UnaryExpr) exprNode()       {}

// BinaryExpr applies an infix operator to a left and right operand
type BinaryExpr struct {
	Operator string
	Left     Expr
	Right    Expr
}

func (n *BinaryExpr) Pos() source.Pos { return n.Left.Pos() }
func (n *BinaryExpr) exprNode()       {}

// CallExpr invokes a named function with an ordered argument list
type CallExpr struct {
	Callee string
	Args   []Expr
	At     source.Pos
}

func (n *CallExpr) Pos() source.Pos { return n.At }
func (n *CallExpr) exprNode()       {}
func (n *CallExpr) stmtNode()       {} // a call may also stand alone as a statement

// DeclStmt declares a local with no initializer
type DeclStmt struct {
	Name string
	Type string
	At   source.Pos
}

func (n *DeclStmt) Pos() source.Pos { return n.At }
func (n *DeclStmt) stmtNode()       {}

// DeclInitStmt declares a local and initializes it in one statement
type DeclInitStmt struct {
	Name string
	Type string
	Init Expr
	At   source.Pos
}

func (n *DeclInitStmt) Pos() source.Pos { return n.At }
func (n *DeclInitStmt) stmtNode()       {}

// AssignStmt stores the value of Value into the local named Name. Name may
// be the sink name "@", meaning the statement is a call-as-statement whose
// result is discarded
type AssignStmt struct {
	Name  string
	Value Expr
	At    source.Pos
}

func (n *AssignStmt) Pos() source.Pos { return n.At }
func (n *AssignStmt) stmtNode()       {}

// SinkName is the reserved pseudo-variable assigned to when a bare call
// expression is used as a statement; its value is always discarded
const SinkName = "@"

// IfStmt is a conditional statement. Else may be nil, another *IfStmt (an
// "ong?" chain), or any other Stmt (the statement after "justLikeThat?")
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
	At   source.Pos
}

func (n *IfStmt) Pos() source.Pos { return n.At }
func (n *IfStmt) stmtNode()       {}

// WhileStmt is a condition-guarded loop
type WhileStmt struct {
	Cond Expr
	Body Stmt
	At   source.Pos
}

func (n *WhileStmt) Pos() source.Pos { return n.At }
func (n *WhileStmt) stmtNode()       {}

// ForStmt is a C-style loop lowered by the code generator as its own
// cond/body/step/merge block sequence, not as sugar over WhileStmt; see
// SPEC_FULL.md §3 for why continue must target the step block
type ForStmt struct {
	Init Stmt
	Cond Expr
	Step Stmt
	Body Stmt
	At   source.Pos
}

func (n *ForStmt) Pos() source.Pos { return n.At }
func (n *ForStmt) stmtNode()       {}

// BreakStmt exits the lexically enclosing loop
type BreakStmt struct {
	At source.Pos
}

func (n *BreakStmt) Pos() source.Pos { return n.At }
func (n *BreakStmt) stmtNode()       {}

// ContinueStmt jumps to the lexically enclosing loop's condition check, or
// to the step block when that loop is a ForStmt
type ContinueStmt struct {
	At source.Pos
}

func (n *ContinueStmt) Pos() source.Pos { return n.At }
func (n *ContinueStmt) stmtNode()       {}

// ReturnStmt yields Value from the enclosing function
type ReturnStmt struct {
	Value Expr
	At    source.Pos
}

func (n *ReturnStmt) Pos() source.Pos { return n.At }
func (n *ReturnStmt) stmtNode()       {}

// ArrayLiteralStmt is the "gang" construct: recognized by the parser but
// rejected at code generation (see SPEC_FULL.md §3 and the Non-goals)
type ArrayLiteralStmt struct {
	Name   string
	Type   string
	Values []Expr
	At     source.Pos
}

func (n *ArrayLiteralStmt) Pos() source.Pos { return n.At }
func (n *ArrayLiteralStmt) stmtNode()       {}

// CompoundStmt is an ordered, owned list of statements. Returning is set by
// the parser to true iff the compound's final statement is a ReturnStmt,
// implementing the return-path consistency check of §4.2
type CompoundStmt struct {
	Statements []Stmt
	Returning  bool
	At         source.Pos
}

func (n *CompoundStmt) Pos() source.Pos { return n.At }
func (n *CompoundStmt) stmtNode()       {}

// Param is a single (name, type) pair in a function's parameter list
type Param struct {
	Name string
	Type string
}

// Prototype is a function's name, ordered parameters, and return type name
type Prototype struct {
	Name       string
	Params     []Param
	ReturnType string
	At         source.Pos
}

func (n *Prototype) Pos() source.Pos { return n.At }

// VoidTypeName is the sentinel surface spelling for the void return type
const VoidTypeName = "npc"

// FunctionDecl pairs a Prototype with an optional body. A nil Body means
// the declaration is an extern ("plug")
type FunctionDecl struct {
	Proto *Prototype
	Body  *CompoundStmt
}

func (n *FunctionDecl) Pos() source.Pos { return n.Proto.Pos() }

// IsExtern reports whether this declaration has no body
func (n *FunctionDecl) IsExtern() bool { return n.Body == nil }

// Module is the compilation unit: a name plus an ordered list of function
// declarations. Order is preserved and significant for emitted IR
type Module struct {
	Name  string
	Funcs []*FunctionDecl
}
