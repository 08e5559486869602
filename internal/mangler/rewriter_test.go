package mangler

import (
	"errors"
	"testing"

	"github.com/evanw/propmangle/internal/config"
	"github.com/evanw/propmangle/internal/js_parser"
	"github.com/evanw/propmangle/internal/js_printer"
	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mangle(t *testing.T, contents string, rename map[string]string) (string, *Table, error) {
	t.Helper()
	log := logger.NewDeferLog()
	source := test.SourceForTest(contents)
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatalf("Parse error: %v", log.Done())
	}
	table, err := Mangle(log, &source, &tree, config.RenameConfigFromStrings(rename))
	return string(js_printer.Print(tree, js_printer.Options{}).JS), table, err
}

func expectMangledRename(t *testing.T, contents string, rename map[string]string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		js, _, err := mangle(t, contents, rename)
		require.NoError(t, err)
		test.AssertEqualWithDiff(t, js, expected)
	})
}

func expectMangled(t *testing.T, contents string, expected string) {
	t.Helper()
	expectMangledRename(t, contents, nil, expected)
}

func TestMangleObjectLiteral(t *testing.T) {
	expectMangled(t, "/* @mangle ['x'] */\nfoo = {x: 1}.x",
		"foo = { a: 1 }.a;\n")
	expectMangled(t, "/* @mangle ['x'] */\nfoo = {'x': 1}['x']",
		"foo = { a: 1 }.a;\n")
	expectMangled(t, "/* @mangle ['x'] */\nfoo = {['x']: 1}",
		"foo = { a: 1 };\n")
	expectMangled(t, "/* @mangle ['x', 'y'] */\nfoo = {y: 1, x: 2, z: 3}",
		"foo = { a: 1, b: 2, z: 3 };\n")
	expectMangled(t, "/* @mangle ['x'] */\nfoo = {x() {}, get x() {}, set x(v) {}, async *x() {}}",
		"foo = { a() {\n}, get a() {\n}, set a(v) {\n}, async *a() {\n} };\n")
}

func TestMangleShorthand(t *testing.T) {
	expectMangled(t, "/* @mangle ['x'] */\nfoo = {x}", "foo = { a: x };\n")
	expectMangled(t, "/* @mangle ['x'] */\nlet {x} = foo", "let { a: x } = foo;\n")
	expectMangled(t, "/* @mangle ['x'] */\nlet {x = 1} = foo", "let { a: x = 1 } = foo;\n")
	expectMangled(t, "/* @mangle ['x'] */\n({x, y: {x: z}} = foo)", "({ a: x, y: { a: z } } = foo);\n")
	expectMangled(t, "/* @mangle [['x', 'x']] */\nfoo = {x}", "foo = { x };\n")
}

func TestMangleClass(t *testing.T) {
	expectMangled(t, "/* @mangle ['x', 'y', 'z'] */\nclass A { x = 1; static y() {} get z() { return this.x } }",
		"class A {\n  a = 1;\n  static b() {\n  }\n  get c() {\n    return this.a;\n  }\n}\n")

	// Private names are never renamed
	expectMangled(t, "/* @mangle ['x'] */\nclass A { #x = 1; m() { return this.#x } }",
		"class A {\n  #x = 1;\n  m() {\n    return this.#x;\n  }\n}\n")
}

func TestMangleMemberAccess(t *testing.T) {
	expectMangled(t, "/* @mangle ['x'] */\na.x; a['x']; a?.x; a?.['x']; delete a.x; a.x = a.x + 1",
		"a.a;\na.a;\na?.a;\na?.a;\ndelete a.a;\na.a = a.a + 1;\n")
	expectMangled(t, "/* @mangle ['x'] */\na.x.x.x", "a.a.a.a;\n")
	expectMangled(t, "/* @mangle ['x'] */\nsuper.x; this.x()", "super.a;\nthis.a();\n")

	// The name isn't statically known
	expectMangled(t, "/* @mangle ['x'] */\nlet y = 'x'; a[y]; a['x' + '']; a[`x`]",
		"let y = \"x\";\na[y];\na[\"x\" + \"\"];\na[`x`];\n")
}

func TestMangleLeavesOtherNamesAlone(t *testing.T) {
	// Variables, functions, labels, and import/export names are not properties
	expectMangled(t, "/* @mangle ['x'] */\nlet x = 1; function x() {} x: for (;;) break x; export {x}",
		"let x = 1;\nfunction x() {\n}\nx:\n  for (;;)\n    break x;\nexport { x };\n")
	expectMangled(t, "/* @mangle ['x'] */\n'x' in a; x; a.y; ({1: 2, [x]: 3})",
		"\"x\" in a;\nx;\na.y;\n({ 1: 2, [x]: 3 });\n")
	expectMangled(t, "a.x; ({x: 1})", "a.x;\n({ x: 1 });\n")
}

func TestMangleNonIdentifierReplacement(t *testing.T) {
	rename := map[string]string{"x": "a-b", "y": "c d"}
	expectMangledRename(t, "foo = {x: 1, y() {}}; foo.x; foo?.y; foo['x']", rename,
		"foo = { \"a-b\": 1, \"c d\"() {\n} };\nfoo[\"a-b\"];\nfoo?.[\"c d\"];\nfoo[\"a-b\"];\n")
	expectMangledRename(t, "let {x} = foo", rename, "let { \"a-b\": x } = foo;\n")
	expectMangledRename(t, "class A { x = 1 }", rename, "class A {\n  \"a-b\" = 1;\n}\n")
}

func TestMangleConfiguration(t *testing.T) {
	rename := map[string]string{"x": "y"}
	expectMangledRename(t, "/* @mangle ['x'] */\nfoo = {x: 1}.x", rename, "foo = { y: 1 }.y;\n")
	expectMangledRename(t, "foo = {x: 1}.x", rename, "foo = { y: 1 }.y;\n")
	expectMangledRename(t, "/* @mangle [['x', 'z']] */\nfoo.x", rename, "foo.y;\n")

	// Generated names never collide with configured ones
	expectMangledRename(t, "/* @mangle ['p', 'q'] */\nfoo.p; foo.q", map[string]string{"r": "a"}, "foo.b;\nfoo.c;\n")
}

func TestMangleSkipsClaimedNames(t *testing.T) {
	// "z" would naturally get "a" but "x" already claimed it
	expectMangled(t, "/* @mangle [['x', 'a'], 'z'] */\nfoo.z; foo.x", "foo.b;\nfoo.a;\n")
	expectMangled(t, "/* @mangle [['x', 'b'], 'y', 'z'] */\nfoo.y; foo.z; foo.x", "foo.a;\nfoo.c;\nfoo.b;\n")
}

func TestMangleGeneratedOrder(t *testing.T) {
	// Names are assigned in the order they are first seen, not directive order
	expectMangled(t, "/* @mangle ['x', 'y', 'z'] */\nfoo.z; foo.x; foo.z", "foo.a;\nfoo.b;\nfoo.a;\n")

	// Unused eligible names don't use up generated names
	_, table, err := mangle(t, "/* @mangle ['x', 'unused'] */\nfoo.x", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "a"}, table.NameMap())
}

func TestMangleMultipleDirectives(t *testing.T) {
	expectMangled(t, "/* @mangle ['x'] */\n// @mangle [['y', 'q']] \nfoo.x; foo.y",
		"foo.a;\nfoo.q;\n")
	expectMangled(t, "/**\n * @mangle ['x']\n * @mangle ['y']\n */\nfoo.y; foo.x",
		"foo.a;\nfoo.b;\n")

	// Directives apply to the whole file no matter where they are
	expectMangled(t, "foo.x;\n/* @mangle ['x'] */", "foo.a;\n")

	// The first explicit binding wins
	expectMangled(t, "/* @mangle [['x', 'p']] */\n/* @mangle [['x', 'q']] */\nfoo.x", "foo.p;\n")
}

func TestMangleKeepsLegalComments(t *testing.T) {
	expectMangled(t, "/*! @mangle ['x'] */\nfoo.x", "/*! @mangle ['x'] */\nfoo.a;\n")
}

func TestMangleIsDeterministic(t *testing.T) {
	contents := "/* @mangle ['x', 'y'] */\nfoo = {y: 1, x: {y: 2}}; foo.x.y"
	rename := map[string]string{"w": "v", "u": "t"}
	first, _, err := mangle(t, contents, rename)
	require.NoError(t, err)
	second, _, err := mangle(t, contents, rename)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "foo = { a: 1, b: { a: 2 } };\nfoo.b.a;\n", first)
}

func TestMangleMalformedDirective(t *testing.T) {
	js, table, err := mangle(t, "/* @mangle [x] */\nfoo = {x: 1}.x", nil)
	var malformed *MalformedDirectiveError
	require.True(t, errors.As(err, &malformed))
	assert.Nil(t, table)

	// Nothing was rewritten
	assert.Equal(t, "foo = { x: 1 }.x;\n", js)
	assert.Equal(t, logger.Range{Loc: logger.Loc{Start: 11}, Len: 3}, malformed.Range)
}

func TestMangleUnsupportedItem(t *testing.T) {
	js, _, err := mangle(t, "/* @mangle ['y', ['x']] */\nfoo.x; foo.y", nil)
	var unsupported *UnsupportedDirectiveItemError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "[\"x\"]", unsupported.Item)
	assert.Equal(t, logger.Range{Loc: logger.Loc{Start: 17}, Len: 5}, unsupported.Range)
	assert.Equal(t, "foo.x;\nfoo.y;\n", js)
}

func TestMangleVerboseLog(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("/* @mangle ['x', 'y'] */\na.y; a.x; a.y")
	tree, ok := js_parser.Parse(log, source)
	require.True(t, ok)
	_, err := Mangle(log, &source, &tree, config.RenameConfig{})
	require.NoError(t, err)

	text := ""
	for _, msg := range log.Done() {
		text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
	}
	assert.Equal(t, "<stdin>: verbose: Mangled property \"y\" to \"a\"\n<stdin>: verbose: Mangled property \"x\" to \"b\"\n", text)
}

func TestMangleConflictingPairWarning(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("/* @mangle [['x', 'a'], ['x', 'b'], ['x', 'a']] */\nfoo.x")
	tree, ok := js_parser.Parse(log, source)
	require.True(t, ok)
	_, err := Mangle(log, &source, &tree, config.RenameConfig{})
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, string(js_printer.Print(tree, js_printer.Options{}).JS), "foo.a;\n")

	// Repeating the same pair is not a conflict
	msgs := log.Done()
	require.Len(t, msgs, 1)
	assert.Equal(t, logger.Warning, msgs[0].Kind)
	assert.Equal(t, "Ignoring new name \"b\" for property \"x\" since it was already renamed to \"a\"", msgs[0].Text)
	assert.Equal(t, 24, msgs[0].Location.Column)
}
