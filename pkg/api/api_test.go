package api_test

import (
	"testing"

	"github.com/evanw/propmangle/internal/test"
	"github.com/evanw/propmangle/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectTransformed(t *testing.T, input string, options api.TransformOptions, expected string) api.TransformResult {
	t.Helper()
	result := api.Transform(input, options)
	require.Empty(t, result.Errors)
	test.AssertEqualWithDiff(t, string(result.Code), expected)
	return result
}

func TestTransformDirective(t *testing.T) {
	result := expectTransformed(t, "/* @mangle ['x', 'y'] */\nfoo = {x: 1, y: 2}.x",
		api.TransformOptions{}, "foo = { a: 1, b: 2 }.a;\n")
	assert.Equal(t, map[string]string{"x": "a", "y": "b"}, result.NameMap)
}

func TestTransformRename(t *testing.T) {
	result := expectTransformed(t, "/* @mangle ['y'] */\nfoo.x = foo.y",
		api.TransformOptions{Rename: map[string]interface{}{"x": "a", "z": "b"}}, "foo.a = foo.c;\n")

	// Configured names are reported even if the input never used them
	assert.Equal(t, map[string]string{"x": "a", "y": "c", "z": "b"}, result.NameMap)
}

func TestTransformRenameToNonIdentifier(t *testing.T) {
	expectTransformed(t, "foo = {x: foo.x}",
		api.TransformOptions{Rename: map[string]interface{}{"x": "a-b"}}, "foo = { \"a-b\": foo[\"a-b\"] };\n")
}

func TestTransformMinifyWhitespace(t *testing.T) {
	expectTransformed(t, "/* @mangle ['x'] */\nfoo = {x: 1}",
		api.TransformOptions{MinifyWhitespace: true}, "foo={a:1};")
}

func TestTransformIndependentCalls(t *testing.T) {
	first := api.Transform("/* @mangle ['x'] */\nfoo.x", api.TransformOptions{})
	second := api.Transform("/* @mangle ['y'] */\nfoo.y", api.TransformOptions{})
	assert.Equal(t, "foo.a;\n", string(first.Code))
	assert.Equal(t, "foo.a;\n", string(second.Code))
}

func TestTransformInvalidRename(t *testing.T) {
	result := api.Transform("foo.x", api.TransformOptions{Rename: map[string]interface{}{"x": 1}})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "New name for property \"x\" should be a string", result.Errors[0].Text)
	assert.Nil(t, result.Errors[0].Location)
	assert.Nil(t, result.Code)
	assert.Nil(t, result.NameMap)
}

func TestTransformMalformedDirective(t *testing.T) {
	result := api.Transform("/* @mangle [x] */\nfoo.x", api.TransformOptions{Sourcefile: "input.js"})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Malformed @mangle directive [x]: Expected a string or a list but found \"x\"", result.Errors[0].Text)
	assert.Equal(t, &api.Location{
		File:     "input.js",
		Line:     1,
		Column:   11,
		Length:   3,
		LineText: "/* @mangle [x] */",
	}, result.Errors[0].Location)
	assert.Nil(t, result.Code)
}

func TestTransformUnsupportedDirectiveItem(t *testing.T) {
	result := api.Transform("foo.x\n// @mangle [['a', 'b', 'c']]", api.TransformOptions{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unsupported @mangle item [\"a\",\"b\",\"c\"]", result.Errors[0].Text)
	require.NotNil(t, result.Errors[0].Location)
	assert.Equal(t, "<stdin>", result.Errors[0].Location.File)
	assert.Equal(t, 2, result.Errors[0].Location.Line)
	assert.Nil(t, result.Code)
}

func TestTransformNonStringDirectiveItem(t *testing.T) {
	result := api.Transform("// @mangle ['a', 1]\nx.a", api.TransformOptions{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unsupported @mangle item 1", result.Errors[0].Text)
	assert.Equal(t, &api.Location{
		File:     "<stdin>",
		Line:     1,
		Column:   17,
		Length:   1,
		LineText: "// @mangle ['a', 1]",
	}, result.Errors[0].Location)
	assert.Nil(t, result.Code)
}

func TestTransformTextAfterDirective(t *testing.T) {
	result := api.Transform("// @mangle ['x'] trailing\nfoo.x", api.TransformOptions{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Malformed @mangle directive ['x'] trailing: Unexpected \"t\" after the list", result.Errors[0].Text)
	require.NotNil(t, result.Errors[0].Location)
	assert.Equal(t, 11, result.Errors[0].Location.Column)
	assert.Equal(t, 14, result.Errors[0].Location.Length)
	assert.Nil(t, result.Code)
}

func TestTransformSyntaxError(t *testing.T) {
	result := api.Transform("/* @mangle ['x'] */\nfoo.(", api.TransformOptions{})
	require.NotEmpty(t, result.Errors)
	assert.Nil(t, result.Code)
	assert.Nil(t, result.NameMap)
}
