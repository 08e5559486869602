package js_ast

type VisitAction uint8

const (
	// Keep going. If the hook replaced the node it was given, the hook is run
	// again on the replacement.
	VisitContinue VisitAction = iota

	// The node is in its final form and must not be handed to the hook again
	VisitSkip
)

// Visitor receives callbacks from "Walk". Exit hooks run after all of a
// node's children have been visited and may replace the node in place.
type Visitor interface {
	EnterProgram(tree *AST) error
	ExitProperty(property *Property) VisitAction
	ExitExpr(expr *Expr) VisitAction
}

// Walk visits the whole tree in document order. An error returned from
// "EnterProgram" aborts the walk before any exit hook has run.
func Walk(tree *AST, v Visitor) error {
	if err := v.EnterProgram(tree); err != nil {
		return err
	}
	w := walker{v: v}
	w.visitStmts(tree.Stmts)
	return nil
}

type walker struct {
	v Visitor
}

func (w *walker) visitStmts(stmts []Stmt) {
	for i := range stmts {
		w.visitStmt(&stmts[i])
	}
}

func (w *walker) visitStmt(stmt *Stmt) {
	switch s := stmt.Data.(type) {
	case *SBlock:
		w.visitStmts(s.Stmts)

	case *SExpr:
		w.visitExpr(&s.Value)

	case *SExportDefault:
		w.visitStmt(&s.Value)

	case *SFunction:
		w.visitFn(&s.Fn)

	case *SClass:
		w.visitClass(&s.Class)

	case *SLabel:
		w.visitStmt(&s.Stmt)

	case *SIf:
		w.visitExpr(&s.Test)
		w.visitStmt(&s.Yes)
		if s.NoOrNil.Data != nil {
			w.visitStmt(&s.NoOrNil)
		}

	case *SFor:
		if s.InitOrNil.Data != nil {
			w.visitStmt(&s.InitOrNil)
		}
		w.visitExprOrNil(&s.TestOrNil)
		w.visitExprOrNil(&s.UpdateOrNil)
		w.visitStmt(&s.Body)

	case *SForIn:
		w.visitStmt(&s.Init)
		w.visitExpr(&s.Value)
		w.visitStmt(&s.Body)

	case *SForOf:
		w.visitStmt(&s.Init)
		w.visitExpr(&s.Value)
		w.visitStmt(&s.Body)

	case *SDoWhile:
		w.visitStmt(&s.Body)
		w.visitExpr(&s.Test)

	case *SWhile:
		w.visitExpr(&s.Test)
		w.visitStmt(&s.Body)

	case *SWith:
		w.visitExpr(&s.Value)
		w.visitStmt(&s.Body)

	case *STry:
		w.visitStmts(s.Block.Stmts)
		if s.Catch != nil {
			w.visitExprOrNil(&s.Catch.BindingOrNil)
			w.visitStmts(s.Catch.Block.Stmts)
		}
		if s.Finally != nil {
			w.visitStmts(s.Finally.Block.Stmts)
		}

	case *SSwitch:
		w.visitExpr(&s.Test)
		for i := range s.Cases {
			c := &s.Cases[i]
			w.visitExprOrNil(&c.ValueOrNil)
			w.visitStmts(c.Body)
		}

	case *SReturn:
		w.visitExprOrNil(&s.ValueOrNil)

	case *SThrow:
		w.visitExpr(&s.Value)

	case *SLocal:
		for i := range s.Decls {
			d := &s.Decls[i]
			w.visitExpr(&d.Binding)
			w.visitExprOrNil(&d.ValueOrNil)
		}
	}
}

func (w *walker) visitFn(fn *Fn) {
	w.visitArgs(fn.Args)
	w.visitStmts(fn.Body.Stmts)
}

func (w *walker) visitArgs(args []Arg) {
	for i := range args {
		arg := &args[i]
		w.visitExpr(&arg.Binding)
		w.visitExprOrNil(&arg.DefaultOrNil)
	}
}

func (w *walker) visitClass(class *Class) {
	w.visitExprOrNil(&class.ExtendsOrNil)
	for i := range class.Properties {
		w.visitProperty(&class.Properties[i])
	}
}

func (w *walker) visitProperty(property *Property) {
	if property.ClassStaticBlock != nil {
		w.visitStmts(property.ClassStaticBlock.Stmts)
		return
	}

	// Only computed keys are expressions. A plain key is just a name.
	if property.IsComputed {
		w.visitExpr(&property.Key)
	}
	w.visitExprOrNil(&property.ValueOrNil)
	w.visitExprOrNil(&property.InitializerOrNil)

	for {
		key := property.Key.Data
		if w.v.ExitProperty(property) == VisitSkip || property.Key.Data == key {
			break
		}
	}
}

func (w *walker) visitExprOrNil(expr *Expr) {
	if expr.Data != nil {
		w.visitExpr(expr)
	}
}

func (w *walker) visitExprs(exprs []Expr) {
	for i := range exprs {
		w.visitExpr(&exprs[i])
	}
}

func (w *walker) visitExpr(expr *Expr) {
	switch e := expr.Data.(type) {
	case *EArray:
		w.visitExprs(e.Items)

	case *EUnary:
		w.visitExpr(&e.Value)

	case *EBinary:
		w.visitExpr(&e.Left)
		w.visitExpr(&e.Right)

	case *ENew:
		w.visitExpr(&e.Target)
		w.visitExprs(e.Args)

	case *ECall:
		w.visitExpr(&e.Target)
		w.visitExprs(e.Args)

	case *EDot:
		w.visitExpr(&e.Target)

	case *EIndex:
		w.visitExpr(&e.Target)
		w.visitExpr(&e.Index)

	case *EArrow:
		w.visitArgs(e.Args)
		w.visitStmts(e.Body.Stmts)

	case *EFunction:
		w.visitFn(&e.Fn)

	case *EClass:
		w.visitClass(&e.Class)

	case *EObject:
		for i := range e.Properties {
			w.visitProperty(&e.Properties[i])
		}

	case *ESpread:
		w.visitExpr(&e.Value)

	case *ETemplate:
		w.visitExprOrNil(&e.TagOrNil)
		for i := range e.Parts {
			w.visitExpr(&e.Parts[i].Value)
		}

	case *EAwait:
		w.visitExpr(&e.Value)

	case *EYield:
		w.visitExprOrNil(&e.ValueOrNil)

	case *EIf:
		w.visitExpr(&e.Test)
		w.visitExpr(&e.Yes)
		w.visitExpr(&e.No)

	case *EImportCall:
		w.visitExpr(&e.Expr)
		w.visitExprOrNil(&e.OptionsOrNil)
	}

	for {
		data := expr.Data
		if w.v.ExitExpr(expr) == VisitSkip || expr.Data == data {
			break
		}
	}
}
