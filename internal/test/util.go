package test

import (
	"testing"

	"github.com/evanw/propmangle/internal/logger"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("%s != %s", observed, expected)
	}
}

func AssertEqualWithDiff(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		stringA, okA := observed.(string)
		stringB, okB := expected.(string)
		if okA && okB {
			t.Fatal(Diff(stringB, stringA, false))
		}
		t.Fatalf("%v != %v", observed, expected)
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
