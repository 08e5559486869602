package helpers

const hexChars = "0123456789ABCDEF"
const firstHighSurrogate = 0xD800
const firstLowSurrogate = 0xDC00
const lastLowSurrogate = 0xDFFF

// BestQuoteChar picks the quote character that needs the fewest escapes for
// the given string contents. Double quotes win ties.
func BestQuoteChar(text string) byte {
	single := 0
	double := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			single++
		case '"':
			double++
		}
	}
	if double > single {
		return '\''
	}
	return '"'
}

func QuoteForJSON(text string) []byte {
	return AppendQuoted(nil, text, '"')
}

// AppendQuoted appends a JavaScript string literal for the WTF-8 encoded
// text. Lone surrogates are written as "\u" escapes so the output is always
// valid UTF-8.
func AppendQuoted(bytes []byte, text string, quoteChar byte) []byte {
	bytes = append(bytes, quoteChar)
	i := 0
	n := len(text)

	for i < n {
		c, width := DecodeWTF8Rune(text[i:])

		// Fast path: a run of printable ASCII without quotes or backslashes
		if c >= 0x20 && c <= 0x7E && c != '\\' && c != rune(quoteChar) {
			start := i
			i++
			for i < n {
				c := text[i]
				if c < 0x20 || c > 0x7E || c == '\\' || c == quoteChar {
					break
				}
				i++
			}
			bytes = append(bytes, text[start:i]...)
			continue
		}

		i += width
		switch c {
		case '\x00':
			// "\0" followed by a digit would become an octal escape
			if i < n && text[i] >= '0' && text[i] <= '9' {
				bytes = append(bytes, "\\x00"...)
			} else {
				bytes = append(bytes, "\\0"...)
			}

		case '\b':
			bytes = append(bytes, "\\b"...)

		case '\f':
			bytes = append(bytes, "\\f"...)

		case '\n':
			bytes = append(bytes, "\\n"...)

		case '\r':
			bytes = append(bytes, "\\r"...)

		case '\t':
			bytes = append(bytes, "\\t"...)

		case '\v':
			bytes = append(bytes, "\\v"...)

		case '\\':
			bytes = append(bytes, "\\\\"...)

		case rune(quoteChar):
			bytes = append(bytes, '\\', quoteChar)

		case '\u2028', '\u2029', '\uFEFF':
			bytes = appendUnicodeEscape(bytes, c)

		default:
			switch {
			case c < 0x20 || c == 0x7F:
				bytes = append(bytes, '\\', 'x', hexChars[c>>4], hexChars[c&15])
			case c >= firstHighSurrogate && c <= lastLowSurrogate:
				bytes = appendUnicodeEscape(bytes, c)
			default:
				bytes = append(bytes, text[i-width:i]...)
			}
		}
	}

	return append(bytes, quoteChar)
}

func appendUnicodeEscape(bytes []byte, c rune) []byte {
	return append(bytes, '\\', 'u', hexChars[c>>12], hexChars[(c>>8)&15], hexChars[(c>>4)&15], hexChars[c&15])
}
