// Package ast defines the Umbrella abstract syntax tree (spec.md §3).
//
// Every node owns its children exclusively; there are no shared
// references and no cycles. Nodes are built once by the parser and
// never mutated afterward — the tree is read-only during emission, in
// the style of the teacher's own play.Node variant set, generalized to
// two closed interfaces (Expr, Stmt) so the emitter can exhaustively
// switch over them instead of relying on runtime type assertions that
// silently drop unrecognized cases (spec.md §9).
package ast

import (
	"github.com/midbel/umbrella/token"
	"github.com/midbel/umbrella/typesys"
)

// Expr is implemented by every expression node.
type Expr interface {
	Pos() token.Position
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Pos() token.Position
}

// Program is the ordered sequence of top-level statements produced by
// a full parse (spec.md §3).
type Program struct {
	Statements []Stmt
}

// Param is a function/method parameter: a name with an optional
// declared type annotation.
type Param struct {
	Name string
	Type TypeAnnotation
}

// TypeAnnotation captures a `: Type` annotation as both a closed tag
// and (for generics) the raw backend-type text, e.g. `Array<Thread>`
// (spec.md §3).
type TypeAnnotation struct {
	Tag typesys.Tag
	Raw string
}

// Resolve converts a TypeAnnotation into a typesys.Type, giving the
// declaration-site Raw backend-type text precedence over the default
// mapping for Tag (spec.md §3, §4.3).
func (a TypeAnnotation) Resolve() typesys.Type {
	if a.Tag == typesys.Class {
		return typesys.Type{Tag: typesys.Class, Class: a.Raw}
	}
	return typesys.Type{Tag: a.Tag, Raw: a.Raw}
}

// ---- expressions ----

type NumberLiteral struct {
	Value float64
	token.Position
}

type StringLiteral struct {
	Value string
	token.Position
}

type BooleanLiteral struct {
	Value bool
	token.Position
}

type Identifier struct {
	Name string
	token.Position
}

type BinaryExpression struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	token.Position
}

type UnaryExpression struct {
	Op      token.Kind // one of -, !, ~
	Operand Expr
	token.Position
}

type AssignmentExpression struct {
	Left  Expr
	Op    token.Kind // Assign or a compound-assignment kind
	Right Expr
	token.Position
}

type CallExpression struct {
	Callee    Expr
	Arguments []Expr
	token.Position
}

type ArrayExpression struct {
	Elements    []Expr
	ElementType TypeAnnotation
	token.Position
}

type MapLiteral struct {
	Keys      []string
	Values    []Expr
	ValueType TypeAnnotation
	token.Position
}

type ArrayAccess struct {
	Array Expr
	Index Expr
	token.Position
}

type MemberExpression struct {
	Object   Expr
	Property string
	token.Position
}

type NewExpression struct {
	ClassName string
	Arguments []Expr
	token.Position
}

type ConditionalExpression struct {
	Cond Expr
	Then Expr
	Else Expr
	token.Position
}

type FunctionExpression struct {
	Params     []Param
	ReturnType TypeAnnotation
	Body       []Stmt
	token.Position
}

func (n NumberLiteral) Pos() token.Position          { return n.Position }
func (n StringLiteral) Pos() token.Position          { return n.Position }
func (n BooleanLiteral) Pos() token.Position         { return n.Position }
func (n Identifier) Pos() token.Position             { return n.Position }
func (n BinaryExpression) Pos() token.Position       { return n.Position }
func (n UnaryExpression) Pos() token.Position        { return n.Position }
func (n AssignmentExpression) Pos() token.Position   { return n.Position }
func (n CallExpression) Pos() token.Position         { return n.Position }
func (n ArrayExpression) Pos() token.Position        { return n.Position }
func (n MapLiteral) Pos() token.Position             { return n.Position }
func (n ArrayAccess) Pos() token.Position            { return n.Position }
func (n MemberExpression) Pos() token.Position       { return n.Position }
func (n NewExpression) Pos() token.Position          { return n.Position }
func (n ConditionalExpression) Pos() token.Position  { return n.Position }
func (n FunctionExpression) Pos() token.Position     { return n.Position }

// ---- statements ----

type VariableDeclaration struct {
	Name        string
	VarType     TypeAnnotation
	Initializer Expr // nil if absent
	IsConst     bool
	token.Position
}

type FunctionDeclaration struct {
	Name       string
	Params     []Param
	ReturnType TypeAnnotation
	Body       []Stmt
	token.Position
}

type Field struct {
	Name string
	Type TypeAnnotation
	Init Expr // nil if absent
}

type MethodDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeAnnotation
	Body       []Stmt
}

type ConstructorDecl struct {
	Params []Param
	Body   []Stmt
}

type ClassDeclaration struct {
	Name       string
	Superclass string // empty if none
	Fields     []Field
	Methods    []MethodDecl
	Ctor       *ConstructorDecl // nil if absent
	token.Position
}

type ReturnStatement struct {
	Value Expr // nil if bare `return;`
	token.Position
}

type IfStatement struct {
	Cond        Expr
	ThenBranch  []Stmt
	ElseBranch  []Stmt
	token.Position
}

type WhileStatement struct {
	Cond Expr
	Body []Stmt
	token.Position
}

// ForStatement's Init, when present, is either a *VariableDeclaration or
// an *ExpressionStatement (spec.md §3 invariant).
type ForStatement struct {
	Init Stmt // nil if absent
	Cond Expr // nil if absent
	Step Expr // nil if absent
	Body []Stmt
	token.Position
}

type TryStatement struct {
	TryBlock     []Stmt
	CatchVar     string // empty if no catch clause bound a name
	CatchBlock   []Stmt
	FinallyBlock []Stmt
	token.Position
}

type ThrowStatement struct {
	Expression Expr
	token.Position
}

type BlockStatement struct {
	Statements []Stmt
	token.Position
}

type ExpressionStatement struct {
	Expression Expr
	token.Position
}

func (n VariableDeclaration) Pos() token.Position  { return n.Position }
func (n FunctionDeclaration) Pos() token.Position  { return n.Position }
func (n ClassDeclaration) Pos() token.Position      { return n.Position }
func (n ReturnStatement) Pos() token.Position       { return n.Position }
func (n IfStatement) Pos() token.Position           { return n.Position }
func (n WhileStatement) Pos() token.Position        { return n.Position }
func (n ForStatement) Pos() token.Position          { return n.Position }
func (n TryStatement) Pos() token.Position          { return n.Position }
func (n ThrowStatement) Pos() token.Position        { return n.Position }
func (n BlockStatement) Pos() token.Position        { return n.Position }
func (n ExpressionStatement) Pos() token.Position   { return n.Position }
