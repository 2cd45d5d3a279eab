// Package resolve binds every identifier in a parsed miniJava package to its
// declaration.
//
// The tree is never modified. Bindings live in a side table keyed by node
// identity, so an unresolved tree and its [Result] are distinct values and
// callers cannot mistake one for the other. Identification errors are
// reported and resolution continues, so one pass finds every error.
package resolve

import (
	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/scope"
	"github.com/tliron/commonlog"
)

type Option func(*resolver)

func WithReporter(r *diag.Reporter) Option {
	return func(res *resolver) {
		res.reporter = r
	}
}

// WithLogger replaces the package logger, which logs scope levels as they
// open and close.
func WithLogger(log commonlog.Logger) Option {
	return func(res *resolver) {
		res.log = log
	}
}

type resolver struct {
	table    *scope.Table
	bindings *Bindings
	reporter *diag.Reporter
	log      commonlog.Logger

	// first declaration of each class name
	classes map[string]*ast.ClassDecl
	// class whose members are being resolved
	class *ast.ClassDecl
}

// Resolve walks pkg and returns its bindings. Diagnostics go to the
// configured reporter, which is also available as Result.Reporter.
func Resolve(pkg *ast.Package, opts ...Option) *Result {
	r := &resolver{
		table:    scope.New(),
		bindings: newBindings(),
		classes:  make(map[string]*ast.ClassDecl),
		log:      commonlog.GetLogger("mjc.resolve"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reporter == nil {
		r.reporter = diag.NewReporter()
	}

	r.resolvePackage(pkg)

	return &Result{Package: pkg, Bindings: r.bindings, Reporter: r.reporter}
}

// within runs f inside a freshly opened level and closes it afterwards.
func (r *resolver) within(kind scope.LevelKind, f func()) {
	level := r.table.Open(kind)
	r.log.Debugf("open %s", level)
	f()
	if err := r.table.Close(level); err != nil {
		r.log.Errorf("%s", err)
		return
	}
	r.log.Debugf("close %s", level)
}

func (r *resolver) enter(decl ast.Decl) {
	if err := r.table.Enter(decl.DeclName(), decl); err != nil {
		r.reporter.Report(diag.DuplicateDeclaration, decl.Pos(), "%s", err)
	}
}

func (r *resolver) bind(n ast.Node, decl ast.Decl) {
	if !r.bindings.bind(n, decl) {
		r.log.Warningf("%s: node already bound", n.Pos())
	}
}

func (r *resolver) resolvePackage(pkg *ast.Package) {
	r.within(scope.LevelPackage, func() {
		for _, class := range pkg.Classes {
			r.enter(class)
			if _, ok := r.classes[class.Name]; !ok {
				r.classes[class.Name] = class
			}
		}
		for _, class := range pkg.Classes {
			r.resolveClass(class)
		}
	})
}

func (r *resolver) resolveClass(class *ast.ClassDecl) {
	r.class = class
	defer func() { r.class = nil }()

	r.within(scope.LevelClass, func() {
		for _, field := range class.Fields {
			r.enter(field)
		}
		for _, method := range class.Methods {
			r.enter(method)
		}
		for _, field := range class.Fields {
			r.resolveType(field.Type)
		}
		for _, method := range class.Methods {
			r.resolveMethod(method)
		}
	})
}

func (r *resolver) resolveMethod(method *ast.MethodDecl) {
	r.resolveType(method.Type)
	r.within(scope.LevelParameters, func() {
		for _, param := range method.Parameters {
			r.enter(param)
			r.resolveType(param.Type)
		}
		r.within(scope.LevelBlock, func() {
			for _, stmt := range method.Body {
				r.resolveStatement(stmt)
			}
		})
	})
}

func (r *resolver) resolveType(t ast.Type) {
	switch t := t.(type) {
	case *ast.BaseType:
	case *ast.ArrayType:
		r.resolveType(t.ElementType)
	case *ast.ClassType:
		name := t.ClassName.Spelling
		decl, err := r.table.LookupFunc(name, scope.IsClass)
		if err != nil {
			r.reporter.Report(diag.UnsupportedType, t.Pos(), "unknown class %s", name)
		}
		r.bind(t, decl)
		r.bind(t.ClassName, decl)
	}
}

func (r *resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.within(scope.LevelBlock, func() {
			for _, inner := range s.Statements {
				r.resolveStatement(inner)
			}
		})
	case *ast.VarDeclStmt:
		r.enter(s.Decl)
		r.resolveType(s.Decl.Type)
		r.resolveExpression(s.Init)
	case *ast.AssignStmt:
		r.resolveReference(s.Target)
		r.resolveExpression(s.Value)
	case *ast.IndexedAssignStmt:
		r.resolveReference(s.Target)
		r.resolveExpression(s.Value)
	case *ast.CallStmt:
		r.resolveReference(s.MethodRef)
		for _, arg := range s.Args {
			r.resolveExpression(arg)
		}
	case *ast.ReturnStmt:
		if s.Expr != nil {
			r.resolveExpression(s.Expr)
		}
	case *ast.IfStmt:
		r.resolveExpression(s.Cond)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpression(s.Cond)
		r.resolveStatement(s.Body)
	}
}

func (r *resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.UnaryExpr:
		r.resolveExpression(e.Operand)
	case *ast.BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.RefExpr:
		r.resolveReference(e.Ref)
	case *ast.CallExpr:
		r.resolveReference(e.FuncRef)
		for _, arg := range e.Args {
			r.resolveExpression(arg)
		}
	case *ast.LiteralExpr:
	case *ast.NewArrayExpr:
		r.resolveType(e.ElementType)
		r.resolveExpression(e.Size)
	case *ast.NewObjectExpr:
		r.resolveType(e.ClassType)
	}
}

// resolveReference binds ref and returns the declaration it denotes, or nil.
func (r *resolver) resolveReference(ref ast.Reference) ast.Decl {
	switch ref := ref.(type) {
	case *ast.ThisRef:
		var decl ast.Decl
		if r.class != nil {
			decl = r.class
		}
		r.bind(ref, decl)
		return decl

	case *ast.IdRef:
		name := ref.ID.Spelling
		decl, err := r.table.Lookup(name)
		if err != nil {
			r.reporter.Report(diag.UndeclaredIdentifier, ref.ID.Pos(), "%s", err)
		}
		r.bind(ref, decl)
		r.bind(ref.ID, decl)
		return decl

	case *ast.QualifiedRef:
		base := r.resolveReference(ref.Base)
		decl := r.resolveMember(ref, base)
		r.bind(ref, decl)
		r.bind(ref.Member, decl)
		return decl

	case *ast.IndexedRef:
		decl := r.resolveReference(ref.Base)
		r.resolveExpression(ref.Index)
		r.bind(ref, decl)
		return decl
	}
	return nil
}

// resolveMember finds ref.Member in the class denoted by base.
func (r *resolver) resolveMember(ref *ast.QualifiedRef, base ast.Decl) ast.Decl {
	if base == nil {
		return nil
	}
	name := ref.Member.Spelling
	class, ok := r.classOf(ref.Base, base)
	if !ok {
		r.reporter.Report(diag.UndeclaredIdentifier, ref.Member.Pos(),
			"%s has no members, cannot select %s", base.DeclName(), name)
		return nil
	}
	if class == nil {
		return nil
	}
	if member := findMember(class, name); member != nil {
		return member
	}
	r.reporter.Report(diag.UndeclaredIdentifier, ref.Member.Pos(),
		"undeclared identifier %s in class %s", name, class.Name)
	return nil
}

// classOf returns the class whose members base.x selects. ok is false when
// base has a type without members. A nil class with ok true means the class
// type itself did not resolve and has been reported already.
func (r *resolver) classOf(ref ast.Reference, base ast.Decl) (class *ast.ClassDecl, ok bool) {
	if _, isThis := ref.(*ast.ThisRef); isThis {
		c, _ := base.(*ast.ClassDecl)
		return c, true
	}
	if c, isClass := base.(*ast.ClassDecl); isClass {
		return c, true
	}
	// a method name denotes no value, whatever it returns
	if _, isMethod := base.(*ast.MethodDecl); isMethod {
		return nil, false
	}
	if _, isIndexed := ref.(*ast.IndexedRef); isIndexed {
		if array, isArray := base.DeclType().(*ast.ArrayType); isArray {
			return r.classOfType(array.ElementType)
		}
		return nil, false
	}
	return r.classOfType(base.DeclType())
}

func (r *resolver) classOfType(t ast.Type) (*ast.ClassDecl, bool) {
	ct, isClassType := t.(*ast.ClassType)
	if !isClassType {
		return nil, false
	}
	return r.classes[ct.ClassName.Spelling], true
}

func findMember(class *ast.ClassDecl, name string) ast.MemberDecl {
	for _, field := range class.Fields {
		if field.Name == name {
			return field
		}
	}
	for _, method := range class.Methods {
		if method.Name == name {
			return method
		}
	}
	return nil
}
