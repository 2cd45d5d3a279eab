// Package ast defines the abstract syntax tree produced by the miniJava parser.
//
// The node set is closed: every category (declarations, types, statements,
// expressions, references, terminals) is an interface with an unexported
// marker method, so a type switch over one category can list every variant.
//
//	Node
//	  Package
//	  Decl: ClassDecl, FieldDecl, MethodDecl, ParameterDecl, VarDecl
//	  Type: BaseType, ClassType, ArrayType
//	  Statement: BlockStmt, VarDeclStmt, AssignStmt, IndexedAssignStmt,
//	             CallStmt, ReturnStmt, IfStmt, WhileStmt
//	  Expression: UnaryExpr, BinaryExpr, RefExpr, CallExpr, LiteralExpr,
//	              NewArrayExpr, NewObjectExpr
//	  Reference: IdRef, QualifiedRef, IndexedRef, ThisRef
//	  Terminal: Identifier, Operator, IntLiteral, BooleanLiteral
//
// Trees carry no name bindings. The resolver records bindings in a side table
// keyed by node identity, so every node is a pointer and must not be shared
// between two places in a tree.
package ast

import "github.com/dhamidi/mjc/minijava/source"

type Node interface {
	Pos() source.Position
	node()
}

// Decl is a node that introduces a name.
type Decl interface {
	Node
	DeclName() string
	// DeclType is the declared type, or nil for a class.
	DeclType() Type
	decl()
}

// MemberDecl is a field or a method.
type MemberDecl interface {
	Decl
	Private() bool
	Static() bool
	memberDecl()
}

type Type interface {
	Node
	typeNode()
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Reference interface {
	Node
	refNode()
}

type Terminal interface {
	Node
	Text() string
	terminalNode()
}

// Loc records where a node starts. It is embedded in every node.
type Loc struct {
	Position source.Position
}

func At(pos source.Position) Loc {
	return Loc{Position: pos}
}

func (l Loc) Pos() source.Position { return l.Position }
func (Loc) node()                  {}

// Package is the root of a parsed compilation unit.
type Package struct {
	Loc
	Classes []*ClassDecl
}

// Declarations

type ClassDecl struct {
	Loc
	Name    string
	Fields  []*FieldDecl
	Methods []*MethodDecl
}

func (d *ClassDecl) DeclName() string { return d.Name }
func (d *ClassDecl) DeclType() Type   { return nil }
func (*ClassDecl) decl()              {}

// Member holds what fields and methods have in common.
type Member struct {
	IsPrivate bool
	IsStatic  bool
	Type      Type
	Name      string
}

func (m *Member) DeclName() string { return m.Name }
func (m *Member) DeclType() Type   { return m.Type }
func (m *Member) Private() bool    { return m.IsPrivate }
func (m *Member) Static() bool     { return m.IsStatic }

type FieldDecl struct {
	Loc
	Member
}

func (*FieldDecl) decl()       {}
func (*FieldDecl) memberDecl() {}

type MethodDecl struct {
	Loc
	Member
	Parameters []*ParameterDecl
	Body       []Statement
}

func (*MethodDecl) decl()       {}
func (*MethodDecl) memberDecl() {}

type ParameterDecl struct {
	Loc
	Type Type
	Name string
}

func (d *ParameterDecl) DeclName() string { return d.Name }
func (d *ParameterDecl) DeclType() Type   { return d.Type }
func (*ParameterDecl) decl()              {}

type VarDecl struct {
	Loc
	Type Type
	Name string
}

func (d *VarDecl) DeclName() string { return d.Name }
func (d *VarDecl) DeclType() Type   { return d.Type }
func (*VarDecl) decl()              {}

// Types

type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeBoolean
	TypeVoid
	TypeNull
	// TypeUnsupported stands in for a class type that did not resolve.
	TypeUnsupported
)

var typeKindNames = map[TypeKind]string{
	TypeInt:         "int",
	TypeBoolean:     "boolean",
	TypeVoid:        "void",
	TypeNull:        "null",
	TypeUnsupported: "unsupported",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type BaseType struct {
	Loc
	Kind TypeKind
}

func (*BaseType) typeNode() {}

type ClassType struct {
	Loc
	ClassName *Identifier
}

func (*ClassType) typeNode() {}

type ArrayType struct {
	Loc
	ElementType Type
}

func (*ArrayType) typeNode() {}

// Statements

type BlockStmt struct {
	Loc
	Statements []Statement
}

type VarDeclStmt struct {
	Loc
	Decl *VarDecl
	Init Expression
}

type AssignStmt struct {
	Loc
	Target Reference
	Value  Expression
}

type IndexedAssignStmt struct {
	Loc
	Target *IndexedRef
	Value  Expression
}

type CallStmt struct {
	Loc
	MethodRef Reference
	Args      []Expression
}

type ReturnStmt struct {
	Loc
	// Expr is nil for a bare return.
	Expr Expression
}

type IfStmt struct {
	Loc
	Cond Expression
	Then Statement
	// Else is nil when there is no else branch.
	Else Statement
}

type WhileStmt struct {
	Loc
	Cond Expression
	Body Statement
}

func (*BlockStmt) stmtNode()         {}
func (*VarDeclStmt) stmtNode()       {}
func (*AssignStmt) stmtNode()        {}
func (*IndexedAssignStmt) stmtNode() {}
func (*CallStmt) stmtNode()          {}
func (*ReturnStmt) stmtNode()        {}
func (*IfStmt) stmtNode()            {}
func (*WhileStmt) stmtNode()         {}

// Expressions

type UnaryExpr struct {
	Loc
	Op      *Operator
	Operand Expression
}

type BinaryExpr struct {
	Loc
	Op    *Operator
	Left  Expression
	Right Expression
}

type RefExpr struct {
	Loc
	Ref Reference
}

type CallExpr struct {
	Loc
	FuncRef Reference
	Args    []Expression
}

type LiteralExpr struct {
	Loc
	Lit Terminal
}

type NewArrayExpr struct {
	Loc
	ElementType Type
	Size        Expression
}

type NewObjectExpr struct {
	Loc
	ClassType *ClassType
}

func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*RefExpr) exprNode()       {}
func (*CallExpr) exprNode()      {}
func (*LiteralExpr) exprNode()   {}
func (*NewArrayExpr) exprNode()  {}
func (*NewObjectExpr) exprNode() {}

// References

type IdRef struct {
	Loc
	ID *Identifier
}

// QualifiedRef is Base.Member, e.g. this.x or a.b.c (nested to the left).
type QualifiedRef struct {
	Loc
	Base   Reference
	Member *Identifier
}

type IndexedRef struct {
	Loc
	Base  Reference
	Index Expression
}

type ThisRef struct {
	Loc
}

func (*IdRef) refNode()        {}
func (*QualifiedRef) refNode() {}
func (*IndexedRef) refNode()   {}
func (*ThisRef) refNode()      {}

// Terminals

type Identifier struct {
	Loc
	Spelling string
}

type Operator struct {
	Loc
	Spelling string
}

type IntLiteral struct {
	Loc
	Spelling string
}

type BooleanLiteral struct {
	Loc
	Spelling string
}

func (t *Identifier) Text() string     { return t.Spelling }
func (t *Operator) Text() string       { return t.Spelling }
func (t *IntLiteral) Text() string     { return t.Spelling }
func (t *BooleanLiteral) Text() string { return t.Spelling }

func (*Identifier) terminalNode()     {}
func (*Operator) terminalNode()       {}
func (*IntLiteral) terminalNode()     {}
func (*BooleanLiteral) terminalNode() {}
