package mangler

import (
	"testing"

	"github.com/evanw/propmangle/internal/test"
)

func TestNumberToMinifiedName(t *testing.T) {
	minifier := DefaultNameMinifier
	expect := func(i int, expected string) {
		t.Helper()
		test.AssertEqual(t, minifier.NumberToMinifiedName(i), expected)
	}

	expect(0, "a")
	expect(1, "b")
	expect(25, "z")
	expect(26, "A")
	expect(51, "Z")
	expect(52, "$")
	expect(53, "_")
	expect(54, "aa")
	expect(55, "ba")
	expect(107, "_a")
	expect(108, "ab")
	expect(54+54*52, "a$")
	expect(54+54*54, "a0")
	expect(54+54*64-1, "_9")
	expect(54+54*64, "aaa")
}

func TestNumberToMinifiedNameIsInjective(t *testing.T) {
	minifier := DefaultNameMinifier
	seen := make(map[string]int)
	prevLen := 0

	for i := 0; i < 54*64*3; i++ {
		name := minifier.NumberToMinifiedName(i)
		if j, ok := seen[name]; ok {
			t.Fatalf("Indices %d and %d both produced %q", j, i, name)
		}
		seen[name] = i

		if len(name) < prevLen {
			t.Fatalf("Index %d produced %q which is shorter than the previous name", i, name)
		}
		prevLen = len(name)

		if name[0] >= '0' && name[0] <= '9' {
			t.Fatalf("Index %d produced %q which starts with a digit", i, name)
		}
	}
}
