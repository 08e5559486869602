package js_ast

import (
	"unicode"
)

// IsIdentifier reports whether the text is an ECMAScript IdentifierName.
// Reserved words count as identifiers here because they are allowed after
// "." and as property keys.
func IsIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i, codePoint := range text {
		if i == 0 {
			if !IsIdentifierStart(codePoint) {
				return false
			}
		} else {
			if !IsIdentifierContinue(codePoint) {
				return false
			}
		}
	}
	return true
}

func IsIdentifierStart(codePoint rune) bool {
	switch {
	case codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z',
		codePoint == '_', codePoint == '$':
		return true

	// All ASCII identifier start code points are listed above
	case codePoint < 0x7F:
		return false
	}

	return isIDStart(codePoint)
}

func IsIdentifierContinue(codePoint rune) bool {
	switch {
	case codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z',
		codePoint >= '0' && codePoint <= '9',
		codePoint == '_', codePoint == '$':
		return true

	case codePoint < 0x7F:
		return false

	// ZWNJ and ZWJ are allowed in identifiers
	case codePoint == 0x200C || codePoint == 0x200D:
		return true
	}

	return isIDStart(codePoint) || unicode.In(codePoint,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// Unicode "ID_Start" derived from the general categories in Go's tables
func isIDStart(codePoint rune) bool {
	if unicode.In(codePoint, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(codePoint, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// See the "White Space Code Points" table in the ECMAScript standard
func IsWhitespace(codePoint rune) bool {
	switch codePoint {
	case
		'\u0009', // character tabulation
		'\u000B', // line tabulation
		'\u000C', // form feed
		'\u0020', // space
		'\u00A0', // no-break space
		'\uFEFF': // zero width non-breaking space
		return true
	}

	// Unicode "Space_Separator" code points
	return codePoint > 0x7F && unicode.Is(unicode.Zs, codePoint)
}
