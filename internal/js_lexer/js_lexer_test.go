package js_lexer

import (
	"math"
	"testing"

	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/test"
)

func lexerForTest(log logger.Log, contents string) (lexer Lexer) {
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(LexerPanic); r != nil && !isLexerPanic {
			panic(r)
		}
	}()
	return NewLexer(log, test.SourceForTest(contents))
}

func logText(log logger.Log) string {
	text := ""
	for _, msg := range log.Done() {
		text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
	}
	return text
}

func lexToken(t *testing.T, contents string) T {
	t.Helper()
	log := logger.NewDeferLog()
	lexer := lexerForTest(log, contents)
	test.AssertEqual(t, logText(log), "")
	return lexer.Token
}

func expectLexerError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), expected)
	})
}

func TestComment(t *testing.T) {
	expectLexerError(t, "/*", "<stdin>: error: Expected \"*/\" to terminate multi-line comment\n")
	expectLexerError(t, "/*/", "<stdin>: error: Expected \"*/\" to terminate multi-line comment\n")
	expectLexerError(t, "/**/", "")
	expectLexerError(t, "//", "")
}

func TestAllComments(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := lexerForTest(log, "// one\na /* two */ /*! three */ b")
	test.AssertEqual(t, lexer.Token, TIdentifier)
	test.AssertEqual(t, len(lexer.AllComments), 1)
	test.AssertEqual(t, lexer.AllComments[0].Text, "// one")
	test.AssertEqual(t, lexer.HasNewlineBefore, true)

	lexer.Next()
	test.AssertEqual(t, lexer.Identifier, "b")
	test.AssertEqual(t, lexer.HasNewlineBefore, false)
	test.AssertEqual(t, len(lexer.AllComments), 3)
	test.AssertEqual(t, lexer.AllComments[1].Text, "/* two */")
	test.AssertEqual(t, lexer.AllComments[1].Loc.Start, int32(9))
	test.AssertEqual(t, len(lexer.LegalCommentsBefore), 1)
	test.AssertEqual(t, lexer.LegalCommentsBefore[0].Text, "/*! three */")
}

func TestIsLegalComment(t *testing.T) {
	test.AssertEqual(t, IsLegalComment("/*! keep */"), true)
	test.AssertEqual(t, IsLegalComment("//! keep"), true)
	test.AssertEqual(t, IsLegalComment("/* @license MIT */"), true)
	test.AssertEqual(t, IsLegalComment("// @preserve"), true)
	test.AssertEqual(t, IsLegalComment("/* @licensed */"), false)
	test.AssertEqual(t, IsLegalComment("/* @mangle ['a'] */"), false)
}

func expectHashbang(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), "")
		test.AssertEqual(t, lexer.Token, THashbang)
		test.AssertEqual(t, lexer.Identifier, expected)
	})
}

func TestHashbang(t *testing.T) {
	expectHashbang(t, "#!/usr/bin/env node", "#!/usr/bin/env node")
	expectHashbang(t, "#!/usr/bin/env node\n", "#!/usr/bin/env node")
	expectHashbang(t, "#!/usr/bin/env node\nlet x", "#!/usr/bin/env node")
	expectLexerError(t, " #!/usr/bin/env node", "<stdin>: error: Syntax error \"!\"\n")
}

func expectIdentifier(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), "")
		test.AssertEqual(t, lexer.Token, TIdentifier)
		test.AssertEqual(t, lexer.Identifier, expected)
	})
}

func TestIdentifier(t *testing.T) {
	expectIdentifier(t, "_", "_")
	expectIdentifier(t, "$", "$")
	expectIdentifier(t, "abc", "abc")
	expectIdentifier(t, "a\\u0062c", "abc")
	expectIdentifier(t, "\\u{61}", "a")
	expectIdentifier(t, "\u00e9t\u00e9", "\u00e9t\u00e9")
	expectIdentifier(t, "a\u200cb", "a\u200cb")

	expectLexerError(t, "\\u0030", "<stdin>: error: Invalid identifier: \"0\"\n")
	expectLexerError(t, "\\x61", "<stdin>: error: Syntax error \"x\"\n")

	test.AssertEqual(t, lexToken(t, "\\u0076ar"), TEscapedKeyword)
	test.AssertEqual(t, lexToken(t, "var"), TVar)
}

func TestPrivateIdentifier(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := lexerForTest(log, "#foo")
	test.AssertEqual(t, logText(log), "")
	test.AssertEqual(t, lexer.Token, TPrivateIdentifier)
	test.AssertEqual(t, lexer.Identifier, "foo")

	expectLexerError(t, "# foo", "<stdin>: error: Syntax error \" \"\n")
}

func expectNumber(t *testing.T, contents string, expected float64) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), "")
		test.AssertEqual(t, lexer.Token, TNumericLiteral)
		test.AssertEqual(t, lexer.Number, expected)
	})
}

func TestNumericLiteral(t *testing.T) {
	expectNumber(t, "0", 0.0)
	expectNumber(t, "000", 0.0)
	expectNumber(t, "010", 8.0)
	expectNumber(t, "089", 89.0)
	expectNumber(t, "123", 123.0)
	expectNumber(t, "1_000", 1000.0)
	expectNumber(t, "0.5", 0.5)
	expectNumber(t, ".5", 0.5)
	expectNumber(t, "1.", 1.0)
	expectNumber(t, "1e3", 1000.0)
	expectNumber(t, "1E+3", 1000.0)
	expectNumber(t, "2.5e-1", 0.25)
	expectNumber(t, "0b101", 5.0)
	expectNumber(t, "0B1_1", 3.0)
	expectNumber(t, "0o17", 15.0)
	expectNumber(t, "0x1F", 31.0)
	expectNumber(t, "0xff_ff", 65535.0)
	expectNumber(t, "1e999", math.Inf(1))

	expectLexerError(t, "1_", "<stdin>: error: Syntax error \"_\"\n")
	expectLexerError(t, "1__0", "<stdin>: error: Syntax error \"_\"\n")
	expectLexerError(t, "0_1", "<stdin>: error: Syntax error \"_\"\n")
	expectLexerError(t, "0x", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "0b2", "<stdin>: error: Syntax error \"2\"\n")
	expectLexerError(t, "1a", "<stdin>: error: Syntax error \"a\"\n")
	expectLexerError(t, "1e", "<stdin>: error: Unexpected end of file\n")
}

func expectBigInteger(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), "")
		test.AssertEqual(t, lexer.Token, TBigIntegerLiteral)
		test.AssertEqual(t, lexer.Identifier, expected)
	})
}

func TestBigIntegerLiteral(t *testing.T) {
	expectBigInteger(t, "0n", "0")
	expectBigInteger(t, "123n", "123")
	expectBigInteger(t, "1_000n", "1000")
	expectBigInteger(t, "0x1Fn", "0x1F")

	expectLexerError(t, "01n", "<stdin>: error: Syntax error \"n\"\n")
	expectLexerError(t, "1.5n", "<stdin>: error: Syntax error \"n\"\n")
}

func expectString(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := lexerForTest(log, contents)
		test.AssertEqual(t, logText(log), "")
		test.AssertEqual(t, lexer.Token, TStringLiteral)
		test.AssertEqual(t, lexer.StringLiteral, expected)
	})
}

func TestStringLiteral(t *testing.T) {
	expectString(t, "''", "")
	expectString(t, "'abc'", "abc")
	expectString(t, "\"it's\"", "it's")
	expectString(t, "'\\''", "'")
	expectString(t, "'\\n\\t\\b\\f\\v\\r'", "\n\t\b\f\v\r")
	expectString(t, "'\\x41'", "A")
	expectString(t, "'\\101'", "A")
	expectString(t, "'\\0'", "\x00")
	expectString(t, "'\\u0041'", "A")
	expectString(t, "'\\u{1F600}'", "\U0001F600")
	expectString(t, "'\\uD83D\\uDE00'", "\U0001F600")
	expectString(t, "'\\uD83D'", "\xED\xA0\xBD")
	expectString(t, "'a\\\nb'", "ab")
	expectString(t, "'a\\\r\nb'", "ab")
	expectString(t, "'\u00e9'", "\u00e9")

	expectLexerError(t, "'abc", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "'a\nb'", "<stdin>: error: Unterminated string literal\n")
	expectLexerError(t, "'\\x4'", "<stdin>: error: Syntax error \"4\"\n")
	expectLexerError(t, "'\\u{110000}'", "<stdin>: error: Unicode escape sequence is out of range\n")
}

func TestTemplateLiteral(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := lexerForTest(log, "`a${b}c\r\nd`")
	test.AssertEqual(t, lexer.Token, TTemplateHead)
	test.AssertEqual(t, lexer.RawTemplateContents(), "a")

	lexer.Next()
	test.AssertEqual(t, lexer.Identifier, "b")

	lexer.Next()
	test.AssertEqual(t, lexer.Token, TCloseBrace)
	lexer.RescanCloseBraceAsTemplateToken()
	test.AssertEqual(t, lexer.Token, TTemplateTail)
	test.AssertEqual(t, lexer.RawTemplateContents(), "c\nd")

	lexer.Next()
	test.AssertEqual(t, lexer.Token, TEndOfFile)
	test.AssertEqual(t, logText(log), "")

	test.AssertEqual(t, lexToken(t, "`x`"), TNoSubstitutionTemplateLiteral)
	test.AssertEqual(t, lexToken(t, "`\\${x}`"), TNoSubstitutionTemplateLiteral)
}

func TestRegExp(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := lexerForTest(log, "/a[/]\\/b/gi.x")
	test.AssertEqual(t, lexer.Token, TSlash)
	lexer.ScanRegExp()
	test.AssertEqual(t, lexer.Raw(), "/a[/]\\/b/gi")
	lexer.Next()
	test.AssertEqual(t, lexer.Token, TDot)
	test.AssertEqual(t, logText(log), "")

	log = logger.NewDeferLog()
	lexer = lexerForTest(log, "/a\n/")
	func() {
		defer func() {
			if _, ok := recover().(LexerPanic); !ok {
				t.Fatal("Expected a lexer panic")
			}
		}()
		lexer.ScanRegExp()
	}()
	test.AssertEqual(t, logText(log), "<stdin>: error: Syntax error \"\\x0A\"\n")
}

func TestTokens(t *testing.T) {
	expected := []struct {
		contents string
		token    T
	}{
		{"", TEndOfFile},
		{"\x00", TEndOfFile},

		{"&", TAmpersand},
		{"&&", TAmpersandAmpersand},
		{"&&=", TAmpersandAmpersandEquals},
		{"*", TAsterisk},
		{"**", TAsteriskAsterisk},
		{"**=", TAsteriskAsteriskEquals},
		{"|", TBar},
		{"||=", TBarBarEquals},
		{"...", TDotDotDot},
		{".", TDot},
		{"=>", TEqualsGreaterThan},
		{"===", TEqualsEqualsEquals},
		{"!==", TExclamationEqualsEquals},
		{">>>=", TGreaterThanGreaterThanGreaterThanEquals},
		{">>>", TGreaterThanGreaterThanGreaterThan},
		{"<<=", TLessThanLessThanEquals},
		{"?.", TQuestionDot},
		{"?.1", TQuestion},
		{"??=", TQuestionQuestionEquals},
		{"/", TSlash},
		{"/=", TSlashEquals},
		{"~", TTilde},

		{"break", TBreak},
		{"with", TWith},
		{"let", TIdentifier},
		{"async", TIdentifier},
	}

	for _, it := range expected {
		contents := it.contents
		token := it.token
		t.Run(contents, func(t *testing.T) {
			if contents == "\x00" {
				expectLexerError(t, contents, "<stdin>: error: Syntax error \"\\x00\"\n")
				return
			}
			test.AssertEqual(t, lexToken(t, contents), token)
		})
	}
}
