package mangler

// NameMinifier turns a counter into a short name. The first character comes
// from "head" so that every name can start an identifier, and the remaining
// characters come from "tail".
type NameMinifier struct {
	head string
	tail string
}

var DefaultNameMinifier = NameMinifier{
	head: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ$_",
	tail: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ$_0123456789",
}

// NumberToMinifiedName is a bijective numbering: every name of length N is
// produced before any name of length N+1, and no two indices share a name.
//
//   0 => "a"
//   53 => "_"
//   54 => "aa"
//   55 => "ba"
//
func (minifier *NameMinifier) NumberToMinifiedName(i int) string {
	j := i % len(minifier.head)
	name := minifier.head[j : j+1]
	i = i / len(minifier.head)

	for i > 0 {
		i--
		j := i % len(minifier.tail)
		name += minifier.tail[j : j+1]
		i = i / len(minifier.tail)
	}

	return name
}
