package ast

// BlockStatement is `{ ... }`.
type BlockStatement struct {
	Range Range
	Body  []Statement
}

func (n *BlockStatement) Pos() Range  { return n.Range }
func (*BlockStatement) statementNode() {}

// VarDeclarator is one `name` or `name = init` entry of a VarStatement.
type VarDeclarator struct {
	Name string
	Init Expression // nil if omitted
}

// VarStatement is `var a, b = 1, ...;`.
type VarStatement struct {
	Range Range
	Decls []VarDeclarator
}

func (n *VarStatement) Pos() Range  { return n.Range }
func (*VarStatement) statementNode() {}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Range Range
	Expr  Expression
}

func (n *ExpressionStatement) Pos() Range  { return n.Range }
func (*ExpressionStatement) statementNode() {}

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Range Range }

func (n *EmptyStatement) Pos() Range  { return n.Range }
func (*EmptyStatement) statementNode() {}

// IfStatement is `if (Test) Cons [else Alt]`.
type IfStatement struct {
	Range Range
	Test  Expression
	Cons  Statement
	Alt   Statement // nil if no else
}

func (n *IfStatement) Pos() Range  { return n.Range }
func (*IfStatement) statementNode() {}

// ForStatement is a C-style `for(Init;Test;Update) Body`. Init may be a
// *VarStatement or an Expression wrapped in ExpressionStatement, or nil.
type ForStatement struct {
	Range  Range
	Init   Statement
	Test   Expression
	Update Expression
	Body   Statement
}

func (n *ForStatement) Pos() Range  { return n.Range }
func (*ForStatement) statementNode() {}

// ForInStatement is `for (Decl|Target in Object) Body`. If IsVarDecl is
// true, VarName names a freshly declared loop variable (optionally with
// Init, per spec.md §9 "for (var x = e1 in e2)"); otherwise Target is an
// assignable expression (identifier or member expression).
type ForInStatement struct {
	Range     Range
	IsVarDecl bool
	VarName   string
	Init      Expression
	Target    Expression
	Object    Expression
	Body      Statement
}

func (n *ForInStatement) Pos() Range  { return n.Range }
func (*ForInStatement) statementNode() {}

// WhileStatement is `while (Test) Body`.
type WhileStatement struct {
	Range Range
	Test  Expression
	Body  Statement
}

func (n *WhileStatement) Pos() Range  { return n.Range }
func (*WhileStatement) statementNode() {}

// DoWhileStatement is `do Body while (Test);`.
type DoWhileStatement struct {
	Range Range
	Body  Statement
	Test  Expression
}

func (n *DoWhileStatement) Pos() Range  { return n.Range }
func (*DoWhileStatement) statementNode() {}

// BreakStatement is `break [Label];`.
type BreakStatement struct {
	Range Range
	Label string
}

func (n *BreakStatement) Pos() Range  { return n.Range }
func (*BreakStatement) statementNode() {}

// ContinueStatement is `continue [Label];`.
type ContinueStatement struct {
	Range Range
	Label string
}

func (n *ContinueStatement) Pos() Range  { return n.Range }
func (*ContinueStatement) statementNode() {}

// ReturnStatement is `return [Value];`. Legal only inside a function body;
// outside, the parser reports a syntax error (spec.md §4.3).
type ReturnStatement struct {
	Range Range
	Value Expression // nil if bare `return;`
}

func (n *ReturnStatement) Pos() Range  { return n.Range }
func (*ReturnStatement) statementNode() {}

// WithStatement is `with (Object) Body`.
type WithStatement struct {
	Range  Range
	Object Expression
	Body   Statement
}

func (n *WithStatement) Pos() Range  { return n.Range }
func (*WithStatement) statementNode() {}

// ThrowStatement is `throw Value;`.
type ThrowStatement struct {
	Range Range
	Value Expression
}

func (n *ThrowStatement) Pos() Range  { return n.Range }
func (*ThrowStatement) statementNode() {}

// CatchClause is the `catch (Param) { Body }` of a TryStatement.
type CatchClause struct {
	Param string
	Body  *BlockStatement
}

// TryStatement is `try { Block } [catch (e) { ... }] [finally { ... }]`.
type TryStatement struct {
	Range   Range
	Block   *BlockStatement
	Catch   *CatchClause // nil if no catch
	Finally *BlockStatement
}

func (n *TryStatement) Pos() Range  { return n.Range }
func (*TryStatement) statementNode() {}

// SwitchCase is one `case Test:` or `default:` arm.
type SwitchCase struct {
	Test bool // false indicates the default arm
	Expr Expression
	Body []Statement
}

// SwitchStatement is `switch (Disc) { case ...: ... default: ... }`.
type SwitchStatement struct {
	Range Range
	Disc  Expression
	Cases []SwitchCase
}

func (n *SwitchStatement) Pos() Range  { return n.Range }
func (*SwitchStatement) statementNode() {}

// LabeledStatement is `label: Body`.
type LabeledStatement struct {
	Range Range
	Label string
	Body  Statement
}

func (n *LabeledStatement) Pos() Range  { return n.Range }
func (*LabeledStatement) statementNode() {}

// DebuggerStatement is the V5+ `debugger;` statement.
type DebuggerStatement struct{ Range Range }

func (n *DebuggerStatement) Pos() Range  { return n.Range }
func (*DebuggerStatement) statementNode() {}

// FunctionDeclaration is a named function declaration hoisted into its
// enclosing activation (spec.md §4.3 step 4).
type FunctionDeclaration struct {
	Range  Range
	Name   string
	Params []string
	Body   *BlockStatement
	Strict bool // V5 "use strict" directive present in body
}

func (n *FunctionDeclaration) Pos() Range  { return n.Range }
func (*FunctionDeclaration) statementNode() {}
