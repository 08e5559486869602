package test

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorDim   = "\033[37m"
)

// Diff returns a line-by-line diff of old and new. Removed lines start with
// "-", added lines with "+", and unchanged lines with a space.
func Diff(old string, new string, color bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var result []string
	for _, d := range diffs {
		prefix, start := " ", colorDim
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, start = "-", colorRed
		case diffmatchpatch.DiffInsert:
			prefix, start = "+", colorGreen
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if color {
				result = append(result, start+prefix+line+colorReset)
			} else {
				result = append(result, prefix+line)
			}
		}
	}
	return strings.Join(result, "\n")
}
