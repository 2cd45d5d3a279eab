package ast

import "fmt"

// Children returns the direct children of n in source order. Absent optional
// children (a bare return, a missing else) are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Package:
		for _, c := range n.Classes {
			add(c)
		}
	case *ClassDecl:
		for _, f := range n.Fields {
			add(f)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *FieldDecl:
		add(n.Type)
	case *MethodDecl:
		add(n.Type)
		for _, p := range n.Parameters {
			add(p)
		}
		for _, s := range n.Body {
			add(s)
		}
	case *ParameterDecl:
		add(n.Type)
	case *VarDecl:
		add(n.Type)

	case *BaseType:
	case *ClassType:
		add(n.ClassName)
	case *ArrayType:
		add(n.ElementType)

	case *BlockStmt:
		for _, s := range n.Statements {
			add(s)
		}
	case *VarDeclStmt:
		add(n.Decl)
		add(n.Init)
	case *AssignStmt:
		add(n.Target)
		add(n.Value)
	case *IndexedAssignStmt:
		add(n.Target)
		add(n.Value)
	case *CallStmt:
		add(n.MethodRef)
		for _, a := range n.Args {
			add(a)
		}
	case *ReturnStmt:
		add(n.Expr)
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *WhileStmt:
		add(n.Cond)
		add(n.Body)

	case *UnaryExpr:
		add(n.Op)
		add(n.Operand)
	case *BinaryExpr:
		add(n.Op)
		add(n.Left)
		add(n.Right)
	case *RefExpr:
		add(n.Ref)
	case *CallExpr:
		add(n.FuncRef)
		for _, a := range n.Args {
			add(a)
		}
	case *LiteralExpr:
		add(n.Lit)
	case *NewArrayExpr:
		add(n.ElementType)
		add(n.Size)
	case *NewObjectExpr:
		add(n.ClassType)

	case *IdRef:
		add(n.ID)
	case *QualifiedRef:
		add(n.Base)
		add(n.Member)
	case *IndexedRef:
		add(n.Base)
		add(n.Index)
	case *ThisRef:

	case *Identifier, *Operator, *IntLiteral, *BooleanLiteral:

	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
	return out
}

// Inspect traverses the tree rooted at n in pre-order. If f returns false the
// children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
