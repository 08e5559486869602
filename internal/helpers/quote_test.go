package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendQuoted(t *testing.T) {
	quote := func(text string, quoteChar byte) string {
		return string(AppendQuoted(nil, text, quoteChar))
	}

	assert.Equal(t, `"abc"`, quote("abc", '"'))
	assert.Equal(t, `"it's"`, quote("it's", '"'))
	assert.Equal(t, `'it\'s'`, quote("it's", '\''))
	assert.Equal(t, `"a\nb\\c\td"`, quote("a\nb\\c\td", '"'))
	assert.Equal(t, `"\0"`, quote("\x00", '"'))
	assert.Equal(t, `"\x001"`, quote("\x001", '"'))
	assert.Equal(t, `"\x7F"`, quote("\x7f", '"'))
	assert.Equal(t, `"\u2028"`, quote("\u2028", '"'))
	assert.Equal(t, "\"\u00e9\U0001F600\"", quote("\u00e9\U0001F600", '"'))

	lone := string(AppendWTF8Rune(nil, 0xD800))
	assert.Equal(t, `"\uD800x"`, quote(lone+"x", '"'))
}

func TestBestQuoteChar(t *testing.T) {
	assert.Equal(t, byte('"'), BestQuoteChar("abc"))
	assert.Equal(t, byte('"'), BestQuoteChar("it's"))
	assert.Equal(t, byte('\''), BestQuoteChar(`say "hi"`))
}

func TestDecodeWTF8Rune(t *testing.T) {
	c, width := DecodeWTF8Rune("\u00e9")
	assert.Equal(t, '\u00e9', c)
	assert.Equal(t, 2, width)

	c, width = DecodeWTF8Rune(string(AppendWTF8Rune(nil, 0xDC00)))
	assert.Equal(t, rune(0xDC00), c)
	assert.Equal(t, 3, width)

	c, width = DecodeWTF8Rune("\xff")
	assert.Equal(t, rune(0xFFFD), c)
	assert.Equal(t, 1, width)
}
