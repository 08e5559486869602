package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/propmangle/pkg/api"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenameFlag(t *testing.T) {
	from, to, err := parseRenameFlag("foo:f")
	require.NoError(t, err)
	assert.Equal(t, "foo", from)
	assert.Equal(t, "f", to)

	// Only the first colon separates the names
	from, to, err = parseRenameFlag("foo:a:b")
	require.NoError(t, err)
	assert.Equal(t, "foo", from)
	assert.Equal(t, "a:b", to)

	_, _, err = parseRenameFlag("foo")
	assert.EqualError(t, err, "Invalid rename \"foo\" (expected the form \"from:to\")")
	_, _, err = parseRenameFlag(":f")
	assert.EqualError(t, err, "Invalid rename \":f\" (expected the form \"from:to\")")
}

func TestRenameConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	renameFile := filepath.Join(dir, "names.yml")
	require.NoError(t, os.WriteFile(renameFile, []byte("foo: a\nbar: b\n"), 0644))

	opts := &options{renameFile: renameFile, renames: []string{"bar:c", "baz:d"}}
	rename, err := opts.renameConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "baz", "foo"}, rename.SortedKeys())

	value, _ := rename.Get("bar")
	assert.Equal(t, "c", value)
}

func TestTransformOptions(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := &options{}
	opts.addFlags(flags)
	require.NoError(t, flags.Parse([]string{"--color", "--log-level=error", "--rename=foo:f", "--minify-whitespace"}))

	transformOptions, err := opts.transformOptions()
	require.NoError(t, err)
	assert.Equal(t, api.TransformOptions{
		Color:            api.ColorAlways,
		ErrorLimit:       10,
		LogLevel:         api.LogLevelError,
		MinifyWhitespace: true,
		Rename:           map[string]interface{}{"foo": "f"},
	}, transformOptions)

	_, err = (&options{logLevel: "loud"}).transformOptions()
	assert.EqualError(t, err, "Invalid log level \"loud\" (valid: verbose, info, warning, error, silent)")
	_, err = (&options{logLevel: "info", color: "maybe"}).transformOptions()
	assert.EqualError(t, err, "Invalid color \"maybe\" (valid: true, false)")
}

func TestOutputPaths(t *testing.T) {
	paths, err := (&options{}).outputPaths([]string{"a.js", "b.js"})
	require.NoError(t, err)
	assert.Nil(t, paths)

	paths, err = (&options{outfile: "out.js"}).outputPaths([]string{"a.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"out.js"}, paths)

	paths, err = (&options{outdir: "out"}).outputPaths([]string{"src/a.js", "b.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("out", "a.js"), filepath.Join("out", "b.js")}, paths)

	_, err = (&options{outfile: "out.js", outdir: "out"}).outputPaths([]string{"a.js"})
	assert.EqualError(t, err, "Cannot use both \"outfile\" and \"outdir\"")
	_, err = (&options{outfile: "out.js"}).outputPaths([]string{"a.js", "b.js"})
	assert.EqualError(t, err, "Must use \"outdir\" when there are multiple input files")
	_, err = (&options{outdir: "out"}).outputPaths(nil)
	assert.EqualError(t, err, "Cannot use \"outdir\" when reading from stdin")
	_, err = (&options{nameMap: "names.json"}).outputPaths([]string{"a.js", "b.js"})
	assert.EqualError(t, err, "Cannot use \"name-map\" with multiple input files")
	_, err = (&options{outdir: "out"}).outputPaths([]string{"x/a.js", "y/a.js"})
	assert.EqualError(t, err, "Both \"x/a.js\" and \"y/a.js\" would be written to \""+filepath.Join("out", "a.js")+"\"")
}

func TestSuggestFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	(&options{}).addFlags(flags)
	detector := flagTypoDetector(flags)

	err := flags.Parse([]string{"--minfy-whitespace"})
	require.Error(t, err)
	assert.EqualError(t, suggestFlag(detector, err), "Invalid flag \"--minfy-whitespace\" (did you mean \"--minify-whitespace\"?)")

	err = flags.Parse([]string{"--nothing-like-this"})
	require.Error(t, err)
	assert.EqualError(t, suggestFlag(detector, err), "unknown flag: --nothing-like-this")
}
