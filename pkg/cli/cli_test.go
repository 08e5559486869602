package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/propmangle/internal/exitcode"
	"github.com/evanw/propmangle/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runForTest(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	stdout := bytes.Buffer{}
	err := runImpl(append([]string{"--log-level=silent"}, args...), strings.NewReader(stdin), &stdout)
	return stdout.String(), err
}

func writeInput(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(contents)
}

func TestRunStdin(t *testing.T) {
	stdout, err := runForTest(t, nil, "/* @mangle ['foo'] */\nx = {foo: 1}.foo")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "x = { a: 1 }.a;\n")

	stdout, err = runForTest(t, []string{"--rename=foo:f", "--minify-whitespace"}, "x = {foo: 1}.foo")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "x={f:1}.f;")
}

func TestRunFilesToStdout(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.js", "/* @mangle ['foo'] */\nfoo.foo")
	b := writeInput(t, dir, "b.js", "/* @mangle ['bar'] */\nbar.bar")

	// Each file starts over from the first generated name
	stdout, err := runForTest(t, []string{a, b}, "")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "foo.a;\nbar.a;\n")
}

func TestRunOutdir(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.js", "/* @mangle ['foo'] */\nfoo.foo")
	b := writeInput(t, dir, "b.js", "foo.foo")
	outdir := filepath.Join(dir, "out")

	stdout, err := runForTest(t, []string{a, b, "--outdir=" + outdir, "--rename=foo:f"}, "")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	test.AssertEqualWithDiff(t, readOutput(t, filepath.Join(outdir, "a.js")), "foo.f;\n")
	test.AssertEqualWithDiff(t, readOutput(t, filepath.Join(outdir, "b.js")), "foo.f;\n")
}

func TestRunNameMap(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "in.js", "/* @mangle ['foo', ['bar', 'b']] */\nx = {foo: 1}")
	outfile := filepath.Join(dir, "out", "out.js")
	nameMap := filepath.Join(dir, "names.json")

	_, err := runForTest(t, []string{input, "--outfile=" + outfile, "--name-map=" + nameMap}, "")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, readOutput(t, outfile), "x = { a: 1 };\n")
	test.AssertEqualWithDiff(t, readOutput(t, nameMap), "{\n  \"bar\": \"b\",\n  \"foo\": \"a\"\n}\n")

	// Feeding the name map back in reproduces the same names without directives
	other := writeInput(t, dir, "other.js", "y.foo = y.bar")
	stdout, err := runForTest(t, []string{other, "--rename-file=" + nameMap}, "")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "y.a = y.b;\n")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "in.js", "foo.foo")
	outfile := filepath.Join(dir, "out.js")

	_, err := runForTest(t, []string{"--rename=foo"}, "")
	assert.EqualError(t, err, "Invalid rename \"foo\" (expected the form \"from:to\")")
	assert.Equal(t, 2, exitcode.Get(err))

	_, err = runForTest(t, []string{"--minfy-whitespace"}, "")
	assert.EqualError(t, err, "Invalid flag \"--minfy-whitespace\" (did you mean \"--minify-whitespace\"?)")
	assert.Equal(t, 2, exitcode.Get(err))

	_, err = runForTest(t, []string{filepath.Join(dir, "missing.js")}, "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Could not read from file "))
	assert.Equal(t, 1, exitcode.Get(err))

	// Nothing is written when the input has a bad directive
	_, err = runForTest(t, []string{input, "--outfile=" + outfile}, "")
	require.NoError(t, err)
	require.NoError(t, os.Remove(outfile))
	bad := writeInput(t, dir, "bad.js", "/* @mangle [foo] */\nfoo.foo")
	_, err = runForTest(t, []string{bad, "--outfile=" + outfile}, "")
	assert.True(t, exitcode.IsReported(err))
	assert.Equal(t, 1, exitcode.Get(err))
	_, statErr := os.Stat(outfile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunVersion(t *testing.T) {
	stdout, err := runForTest(t, []string{"--version"}, "")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)
}
