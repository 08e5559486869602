package mangler

import (
	"testing"

	"github.com/evanw/propmangle/internal/config"
	"github.com/stretchr/testify/assert"
)

func resolve(t *Table, name string) string {
	replacement, ok := t.Resolve(name)
	if !ok {
		return "<none>"
	}
	return replacement
}

func TestTableResolve(t *testing.T) {
	table := NewTable(config.RenameConfig{})
	table.MarkEligible("foo")
	table.MarkEligible("bar")

	assert.Equal(t, "<none>", resolve(table, "baz"))
	assert.Equal(t, "a", resolve(table, "bar"))
	assert.Equal(t, "b", resolve(table, "foo"))

	// Resolution is stable
	assert.Equal(t, "a", resolve(table, "bar"))
	assert.Equal(t, "b", resolve(table, "foo"))
	assert.Equal(t, map[string]string{"bar": "a", "foo": "b"}, table.NameMap())
}

func TestTableConfigurationWins(t *testing.T) {
	table := NewTable(config.RenameConfigFromStrings(map[string]string{"x": "y"}))
	ignored := table.AddDirectiveItems([]DirectiveItem{
		{Original: "x"},
		{Original: "x", Replacement: "z", IsPair: true},
	})
	assert.Equal(t, "y", resolve(table, "x"))
	assert.Equal(t, []DirectiveItem{{Original: "x", Replacement: "z", IsPair: true}}, ignored)
}

func TestTableFirstBindingWins(t *testing.T) {
	table := NewTable(config.RenameConfig{})
	assert.True(t, table.Bind("x", "first"))
	assert.False(t, table.Bind("x", "second"))
	assert.Equal(t, "first", resolve(table, "x"))

	// The losing replacement is still reserved
	table.MarkEligible("second")
	_, ok := table.Lookup("second")
	assert.False(t, ok)
	table.Bind("q", "a")
	table.MarkEligible("w")
	assert.Equal(t, "b", resolve(table, "w"))
}

func TestTableSkipsClaimedNames(t *testing.T) {
	table := NewTable(config.RenameConfig{})
	table.AddDirectiveItems([]DirectiveItem{
		{Original: "x", Replacement: "a", IsPair: true},
		{Original: "z"},
		{Original: "w"},
	})
	assert.Equal(t, "b", resolve(table, "z"))
	assert.Equal(t, "c", resolve(table, "w"))
	assert.Equal(t, "a", resolve(table, "x"))

	// Configured replacements are claimed too
	table = NewTable(config.RenameConfigFromStrings(map[string]string{"p": "a", "q": "b"}))
	table.MarkEligible("r")
	assert.Equal(t, "c", resolve(table, "r"))
}

func TestTableUnusedNamesDoNotConsumeSlots(t *testing.T) {
	table := NewTable(config.RenameConfig{})
	table.MarkEligible("never")
	table.MarkEligible("used")
	assert.Equal(t, "a", resolve(table, "used"))

	_, ok := table.Lookup("never")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"used": "a"}, table.NameMap())
}

func TestTableNameMapIsCopied(t *testing.T) {
	table := NewTable(config.RenameConfigFromStrings(map[string]string{"a": "b"}))
	nameMap := table.NameMap()
	nameMap["a"] = "c"
	assert.Equal(t, "b", resolve(table, "a"))
}
