package js_ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/evanw/propmangle/internal/js_ast"
	"github.com/evanw/propmangle/internal/js_parser"
	"github.com/evanw/propmangle/internal/js_printer"
	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/test"
)

type recorder struct {
	enterErr error
	seen     []string
	exitExpr func(expr *js_ast.Expr) js_ast.VisitAction
}

func (r *recorder) EnterProgram(tree *js_ast.AST) error {
	r.seen = append(r.seen, "program")
	return r.enterErr
}

func (r *recorder) ExitProperty(property *js_ast.Property) js_ast.VisitAction {
	if key, ok := property.Key.Data.(*js_ast.EString); ok && !property.IsComputed {
		r.seen = append(r.seen, "key:"+key.Value)
	}
	return js_ast.VisitContinue
}

func (r *recorder) ExitExpr(expr *js_ast.Expr) js_ast.VisitAction {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		r.seen = append(r.seen, "id:"+e.Name)
	case *js_ast.EDot:
		r.seen = append(r.seen, "dot:"+e.Name)
	case *js_ast.EString:
		r.seen = append(r.seen, "str:"+e.Value)
	}
	if r.exitExpr != nil {
		return r.exitExpr(expr)
	}
	return js_ast.VisitContinue
}

func parse(t *testing.T, contents string) js_ast.AST {
	t.Helper()
	log := logger.NewDeferLog()
	tree, ok := js_parser.Parse(log, test.SourceForTest(contents))
	if !ok {
		t.Fatalf("Parse error: %v", log.Done())
	}
	return tree
}

func expectVisited(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		tree := parse(t, contents)
		r := &recorder{}
		if err := js_ast.Walk(&tree, r); err != nil {
			t.Fatal(err)
		}
		test.AssertEqualWithDiff(t, strings.Join(r.seen, " "), expected)
	})
}

func TestWalkOrder(t *testing.T) {
	expectVisited(t, "a.b.c", "program id:a dot:b dot:c")
	expectVisited(t, "x = {a: y, 'b': z}", "program id:x id:y key:a id:z key:b")
	expectVisited(t, "x = {[k]: 1}", "program id:x id:k")
	expectVisited(t, "let {a, b: c = d} = e", "program id:a key:a id:c id:d key:b id:e")
	expectVisited(t, "class A { x = a.b; static { c.d } }", "program id:a dot:b key:x id:c dot:d")
	expectVisited(t, "f(`${a.b}`, ...c)", "program id:f id:a dot:b id:c")
	expectVisited(t, "'use strict'; a", "program id:a")
	expectVisited(t, "if (a) b; else c", "program id:a id:b id:c")
	expectVisited(t, "try { a } catch ({b}) { c } finally { d }", "program id:a id:b key:b id:c id:d")
	expectVisited(t, "switch (a) { case 'x': b }", "program id:a str:x id:b")
	expectVisited(t, "async function f(a = b) { await c; return d }", "program id:a id:b id:c id:d")
}

func TestWalkEnterProgramError(t *testing.T) {
	tree := parse(t, "a.b")
	stop := errors.New("stop")
	r := &recorder{enterErr: stop}
	if err := js_ast.Walk(&tree, r); err != stop {
		t.Fatalf("expected %v, got %v", stop, err)
	}
	test.AssertEqual(t, strings.Join(r.seen, " "), "program")
}

func TestWalkReplacement(t *testing.T) {
	tree := parse(t, "x.y")
	r := &recorder{}
	r.exitExpr = func(expr *js_ast.Expr) js_ast.VisitAction {
		if id, ok := expr.Data.(*js_ast.EIdentifier); ok {
			switch id.Name {
			case "x":
				expr.Data = &js_ast.EIdentifier{Name: "y"}
			case "y":
				expr.Data = &js_ast.EIdentifier{Name: "z"}
			}
		}
		return js_ast.VisitContinue
	}
	if err := js_ast.Walk(&tree, r); err != nil {
		t.Fatal(err)
	}

	// Each replacement is offered to the hook again until it stops changing
	test.AssertEqual(t, strings.Join(r.seen, " "), "program id:x id:y id:z dot:y")
	test.AssertEqual(t, string(js_printer.Print(tree, js_printer.Options{}).JS), "z.y;\n")
}

func TestWalkSkip(t *testing.T) {
	tree := parse(t, "x.y")
	r := &recorder{}
	r.exitExpr = func(expr *js_ast.Expr) js_ast.VisitAction {
		if id, ok := expr.Data.(*js_ast.EIdentifier); ok && id.Name == "x" {
			expr.Data = &js_ast.EIdentifier{Name: "x"}
			return js_ast.VisitSkip
		}
		return js_ast.VisitContinue
	}
	if err := js_ast.Walk(&tree, r); err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, strings.Join(r.seen, " "), "program id:x dot:y")
}
