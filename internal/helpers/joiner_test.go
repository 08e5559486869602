package helpers

import (
	"testing"

	"github.com/evanw/propmangle/internal/test"
)

func TestJoiner(t *testing.T) {
	j := Joiner{}
	j.AddString("{")
	j.AddBytes([]byte("\"a\""))
	j.AddString(": ")
	j.AddBytes(QuoteForJSON("b"))
	j.AddString("}")
	test.AssertEqualWithDiff(t, string(j.Done()), "{\"a\": \"b\"}")

	single := []byte("x")
	j = Joiner{}
	j.AddBytes(single)
	test.AssertEqual(t, &j.Done()[0], &single[0])

	j = Joiner{}
	test.AssertEqual(t, len(j.Done()), 0)
}

func TestTypoDetector(t *testing.T) {
	detector := MakeTypoDetector([]string{"--outdir", "--outfile", "--rename-file", "--name"})

	expectTypo := func(typo string, expected string) {
		t.Helper()
		corrected, ok := detector.MaybeCorrectTypo(typo)
		test.AssertEqual(t, ok, true)
		test.AssertEqual(t, corrected, expected)
	}

	expectTypo("--outdi", "--outdir")
	expectTypo("--outfiles", "--outfile")
	expectTypo("--renme-file", "--rename-file")
	expectTypo("--rename-fiel", "--rename-file")

	_, ok := detector.MaybeCorrectTypo("--minify")
	test.AssertEqual(t, ok, false)
}
