package cli

import (
	"testing"

	"github.com/evanw/propmangle/internal/test"
	"github.com/stretchr/testify/require"
)

func TestPrintNameMapJSON(t *testing.T) {
	test.AssertEqualWithDiff(t, string(printNameMapJSON(nil)), "{}\n")
	test.AssertEqualWithDiff(t, string(printNameMapJSON(map[string]string{
		"zoo":   "b",
		"apple": "a",
		"a\"b":  "a-b",
	})), "{\n  \"a\\\"b\": \"a-b\",\n  \"apple\": \"a\",\n  \"zoo\": \"b\"\n}\n")
}

func TestPrintNameMapByExtension(t *testing.T) {
	nameMap := map[string]string{"foo": "a", "bar": "b"}

	contents, err := printNameMap("names.json", nameMap)
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, string(contents), "{\n  \"bar\": \"b\",\n  \"foo\": \"a\"\n}\n")

	contents, err = printNameMap("names.YAML", nameMap)
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, string(contents), "bar: b\nfoo: a\n")
}
