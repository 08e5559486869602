package helpers

import (
	"unicode/utf8"
)

// AppendWTF8Rune is "utf8.AppendRune" modified to encode using WTF-8, which
// lets lone surrogates from "\uD800" style escapes survive a round trip. See
// https://simonsapin.github.io/wtf-8/ for more info.
func AppendWTF8Rune(p []byte, r rune) []byte {
	// Negative values are erroneous. Making it unsigned addresses the problem.
	switch i := uint32(r); {
	case i <= 0x7F:
		return append(p, byte(r))
	case i <= 0x7FF:
		return append(p, 0xC0|byte(r>>6), 0x80|byte(r)&0x3F)
	case i > utf8.MaxRune:
		r = utf8.RuneError
		fallthrough
	case i <= 0xFFFF:
		return append(p, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
	default:
		return append(p, 0xF0|byte(r>>18), 0x80|byte(r>>12)&0x3F, 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
	}
}

// DecodeWTF8Rune is "utf8.DecodeRuneInString" modified to accept encoded
// surrogate code points.
func DecodeWTF8Rune(s string) (rune, int) {
	n := len(s)
	if n < 1 {
		return utf8.RuneError, 0
	}

	s0 := s[0]
	if s0 < 0x80 {
		return rune(s0), 1
	}

	var sz int
	switch {
	case (s0 & 0xE0) == 0xC0:
		sz = 2
	case (s0 & 0xF0) == 0xE0:
		sz = 3
	case (s0 & 0xF8) == 0xF0:
		sz = 4
	default:
		return utf8.RuneError, 1
	}

	if n < sz {
		return utf8.RuneError, 1
	}
	for k := 1; k < sz; k++ {
		if (s[k] & 0xC0) != 0x80 {
			return utf8.RuneError, 1
		}
	}

	var cp rune
	var min rune
	switch sz {
	case 2:
		cp = rune(s0&0x1F)<<6 | rune(s[1]&0x3F)
		min = 0x80
	case 3:
		cp = rune(s0&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F)
		min = 0x800
	default:
		cp = rune(s0&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F)
		min = 0x10000
		if cp > utf8.MaxRune {
			return utf8.RuneError, 1
		}
	}
	if cp < min {
		return utf8.RuneError, 1
	}
	return cp, sz
}

// UTF16ToWTF8 joins surrogate pairs and keeps lone surrogates as-is
func UTF16ToWTF8(text []uint16) string {
	var bytes []byte
	n := len(text)
	for i := 0; i < n; i++ {
		r1 := rune(text[i])
		if r1 >= 0xD800 && r1 <= 0xDBFF && i+1 < n {
			if r2 := rune(text[i+1]); r2 >= 0xDC00 && r2 <= 0xDFFF {
				r1 = (r1-0xD800)<<10 | (r2 - 0xDC00) + 0x10000
				i++
			}
		}
		bytes = AppendWTF8Rune(bytes, r1)
	}
	return string(bytes)
}
