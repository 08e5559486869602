package mangler

import (
	"github.com/evanw/propmangle/internal/config"
)

// Table holds every renaming decision for one program. A fresh table must be
// used for each program so that generated names start from "a" again.
type Table struct {
	renames  map[string]string
	claimed  map[string]bool
	eligible map[string]bool
	minifier NameMinifier
	next     int
}

// NewTable binds every configured rename before anything else so that
// configuration always takes precedence over directives.
func NewTable(rename config.RenameConfig) *Table {
	t := &Table{
		renames:  make(map[string]string, rename.Len()),
		claimed:  make(map[string]bool, rename.Len()),
		eligible: make(map[string]bool),
		minifier: DefaultNameMinifier,
	}
	for _, key := range rename.SortedKeys() {
		value, _ := rename.Get(key)
		t.Bind(key, value)
	}
	return t
}

// Bind gives "original" a fixed replacement. The first binding for a name
// wins, but the replacement is claimed either way so that no generated name
// can collide with it. Returns false if an earlier binding won.
func (t *Table) Bind(original string, replacement string) bool {
	t.claimed[replacement] = true
	if _, ok := t.renames[original]; ok {
		return false
	}
	t.renames[original] = replacement
	return true
}

func (t *Table) MarkEligible(name string) {
	t.eligible[name] = true
}

// Returns the pairs that lost to an earlier binding of the same name
func (t *Table) AddDirectiveItems(items []DirectiveItem) (ignored []DirectiveItem) {
	for _, item := range items {
		if item.IsPair {
			if !t.Bind(item.Original, item.Replacement) {
				ignored = append(ignored, item)
			}
		} else {
			t.MarkEligible(item.Original)
		}
	}
	return
}

// Lookup only returns existing bindings and never generates a name
func (t *Table) Lookup(name string) (string, bool) {
	replacement, ok := t.renames[name]
	return replacement, ok
}

// Resolve returns the replacement for a property name. Eligible names get a
// generated name the first time they are resolved, and the same name from
// then on. Names that are neither bound nor eligible are left alone.
func (t *Table) Resolve(name string) (string, bool) {
	if replacement, ok := t.renames[name]; ok {
		return replacement, true
	}
	if !t.eligible[name] {
		return "", false
	}

	for {
		candidate := t.minifier.NumberToMinifiedName(t.next)
		t.next++
		if !t.claimed[candidate] {
			t.claimed[candidate] = true
			t.renames[name] = candidate
			return candidate, true
		}
	}
}

// NameMap returns a copy of every binding, both explicit and generated. It
// can be passed back in as a rename configuration to reproduce this result.
func (t *Table) NameMap() map[string]string {
	result := make(map[string]string, len(t.renames))
	for original, replacement := range t.renames {
		result[original] = replacement
	}
	return result
}
