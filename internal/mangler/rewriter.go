package mangler

import (
	"fmt"

	"github.com/evanw/propmangle/internal/config"
	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/internal/js_ast"
	"github.com/evanw/propmangle/internal/logger"
)

// Rewriter renames property keys and member accesses while the tree is
// walked. Only statically-known names are considered: identifier keys,
// string keys (computed or not), "a.b", and "a['b']".
type Rewriter struct {
	log    logger.Log
	source *logger.Source
	table  *Table
}

// Mangle renames the properties of one parsed program in place. The returned
// table is fresh for this program and holds every binding that was used.
func Mangle(log logger.Log, source *logger.Source, tree *js_ast.AST, rename config.RenameConfig) (*Table, error) {
	table := NewTable(rename)
	if err := js_ast.Walk(tree, NewRewriter(log, source, table)); err != nil {
		return nil, err
	}
	return table, nil
}

func NewRewriter(log logger.Log, source *logger.Source, table *Table) *Rewriter {
	return &Rewriter{log: log, source: source, table: table}
}

// EnterProgram loads every "@mangle" directive before any site is visited.
// The first bad directive stops the whole walk.
func (r *Rewriter) EnterProgram(tree *js_ast.AST) error {
	for _, directive := range FindDirectives(tree.Comments) {
		items, err := ParseDirective(directive)
		if err != nil {
			return err
		}
		for _, item := range r.table.AddDirectiveItems(items) {
			if existing, _ := r.table.Lookup(item.Original); existing != item.Replacement {
				r.log.AddRangeWarning(r.source, item.Range, fmt.Sprintf(
					"Ignoring new name %s for property %s since it was already renamed to %s",
					helpers.QuoteForJSON(item.Replacement), helpers.QuoteForJSON(item.Original), helpers.QuoteForJSON(existing)))
			}
		}
	}
	return nil
}

func (r *Rewriter) ExitProperty(property *js_ast.Property) js_ast.VisitAction {
	key, ok := property.Key.Data.(*js_ast.EString)
	if !ok {
		return js_ast.VisitContinue
	}

	replacement, ok := r.resolve(key.Value, property.Key.Loc)
	if !ok {
		return js_ast.VisitContinue
	}

	property.Key = js_ast.Expr{Loc: property.Key.Loc, Data: &js_ast.EString{Value: replacement}}
	property.IsComputed = false
	property.PreferQuotedKey = !js_ast.IsIdentifier(replacement)
	return js_ast.VisitSkip
}

func (r *Rewriter) ExitExpr(expr *js_ast.Expr) js_ast.VisitAction {
	switch e := expr.Data.(type) {
	case *js_ast.EDot:
		if replacement, ok := r.resolve(e.Name, e.NameLoc); ok {
			expr.Data = memberAccess(e.Target, replacement, e.NameLoc, e.OptionalChain)
			return js_ast.VisitSkip
		}

	case *js_ast.EIndex:
		// "a[b]" is left alone since the name is only known at run-time
		if index, ok := e.Index.Data.(*js_ast.EString); ok {
			if replacement, ok := r.resolve(index.Value, e.Index.Loc); ok {
				expr.Data = memberAccess(e.Target, replacement, e.Index.Loc, e.OptionalChain)
				return js_ast.VisitSkip
			}
		}
	}

	return js_ast.VisitContinue
}

func (r *Rewriter) resolve(name string, loc logger.Loc) (string, bool) {
	if replacement, ok := r.table.Lookup(name); ok {
		return replacement, true
	}

	replacement, ok := r.table.Resolve(name)
	if ok {
		r.log.AddVerbose(r.source, loc, fmt.Sprintf("Mangled property %s to %s",
			helpers.QuoteForJSON(name), helpers.QuoteForJSON(replacement)))
	}
	return replacement, ok
}

// A name that can't follow a "." is accessed with brackets instead
func memberAccess(target js_ast.Expr, name string, nameLoc logger.Loc, optionalChain js_ast.OptionalChain) js_ast.E {
	if js_ast.IsIdentifier(name) {
		return &js_ast.EDot{Target: target, Name: name, NameLoc: nameLoc, OptionalChain: optionalChain}
	}
	return &js_ast.EIndex{
		Target:        target,
		Index:         js_ast.Expr{Loc: nameLoc, Data: &js_ast.EString{Value: name}},
		OptionalChain: optionalChain,
	}
}
