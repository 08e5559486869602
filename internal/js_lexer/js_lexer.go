package js_lexer

// The lexer converts a source file to a stream of tokens. It is not run to
// completion before parsing starts. Instead the parser pulls one token at a
// time, because some tokens (regular expressions and the tails of template
// literals) can only be recognized with information the parser has.
//
// Identifier text is a slice of the input when possible. String literal
// values are decoded to WTF-8 so that lone surrogates written as escape
// sequences are preserved exactly.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/internal/js_ast"
	"github.com/evanw/propmangle/internal/logger"
)

type T uint8

// If you add a new token, remember to add it to "tokenToString" too
const (
	TEndOfFile T = iota

	// "#!/usr/bin/env node"
	THashbang

	// Literals
	TNoSubstitutionTemplateLiteral // Contents are in lexer.RawTemplateContents()
	TNumericLiteral                // Contents are in lexer.Number (float64)
	TStringLiteral                 // Contents are in lexer.StringLiteral (string)
	TBigIntegerLiteral             // Contents are in lexer.Identifier (string)

	// Pseudo-literals
	TTemplateHead
	TTemplateMiddle
	TTemplateTail

	// Punctuation
	TAmpersand
	TAmpersandAmpersand
	TAsterisk
	TAsteriskAsterisk
	TBar
	TBarBar
	TCaret
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TComma
	TDot
	TDotDotDot
	TEqualsEquals
	TEqualsEqualsEquals
	TEqualsGreaterThan
	TExclamation
	TExclamationEquals
	TExclamationEqualsEquals
	TGreaterThan
	TGreaterThanEquals
	TGreaterThanGreaterThan
	TGreaterThanGreaterThanGreaterThan
	TLessThan
	TLessThanEquals
	TLessThanLessThan
	TMinus
	TMinusMinus
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercent
	TPlus
	TPlusPlus
	TQuestion
	TQuestionDot
	TQuestionQuestion
	TSemicolon
	TSlash
	TTilde

	// Assignments
	TAmpersandAmpersandEquals
	TAmpersandEquals
	TAsteriskAsteriskEquals
	TAsteriskEquals
	TBarBarEquals
	TBarEquals
	TCaretEquals
	TEquals
	TGreaterThanGreaterThanEquals
	TGreaterThanGreaterThanGreaterThanEquals
	TLessThanLessThanEquals
	TMinusEquals
	TPercentEquals
	TPlusEquals
	TQuestionQuestionEquals
	TSlashEquals

	// Class-private fields and methods
	TPrivateIdentifier

	// Identifiers
	TIdentifier     // Contents are in lexer.Identifier (string)
	TEscapedKeyword // A keyword that has been escaped as an identifer

	// Reserved words
	TBreak
	TCase
	TCatch
	TClass
	TConst
	TContinue
	TDebugger
	TDefault
	TDelete
	TDo
	TElse
	TEnum
	TExport
	TExtends
	TFalse
	TFinally
	TFor
	TFunction
	TIf
	TImport
	TIn
	TInstanceof
	TNew
	TNull
	TReturn
	TSuper
	TSwitch
	TThis
	TThrow
	TTrue
	TTry
	TTypeof
	TVar
	TVoid
	TWhile
	TWith
)

var Keywords = map[string]T{
	"break":      TBreak,
	"case":       TCase,
	"catch":      TCatch,
	"class":      TClass,
	"const":      TConst,
	"continue":   TContinue,
	"debugger":   TDebugger,
	"default":    TDefault,
	"delete":     TDelete,
	"do":         TDo,
	"else":       TElse,
	"enum":       TEnum,
	"export":     TExport,
	"extends":    TExtends,
	"false":      TFalse,
	"finally":    TFinally,
	"for":        TFor,
	"function":   TFunction,
	"if":         TIf,
	"import":     TImport,
	"in":         TIn,
	"instanceof": TInstanceof,
	"new":        TNew,
	"null":       TNull,
	"return":     TReturn,
	"super":      TSuper,
	"switch":     TSwitch,
	"this":       TThis,
	"throw":      TThrow,
	"true":       TTrue,
	"try":        TTry,
	"typeof":     TTypeof,
	"var":        TVar,
	"void":       TVoid,
	"while":      TWhile,
	"with":       TWith,
}

// Longest match wins, so every prefix of a punctuator must also be listed
var punctuators = map[string]T{
	"&":    TAmpersand,
	"&&":   TAmpersandAmpersand,
	"&&=":  TAmpersandAmpersandEquals,
	"&=":   TAmpersandEquals,
	"*":    TAsterisk,
	"**":   TAsteriskAsterisk,
	"**=":  TAsteriskAsteriskEquals,
	"*=":   TAsteriskEquals,
	"|":    TBar,
	"||":   TBarBar,
	"||=":  TBarBarEquals,
	"|=":   TBarEquals,
	"^":    TCaret,
	"^=":   TCaretEquals,
	"}":    TCloseBrace,
	"]":    TCloseBracket,
	")":    TCloseParen,
	":":    TColon,
	",":    TComma,
	"=":    TEquals,
	"==":   TEqualsEquals,
	"===":  TEqualsEqualsEquals,
	"=>":   TEqualsGreaterThan,
	"!":    TExclamation,
	"!=":   TExclamationEquals,
	"!==":  TExclamationEqualsEquals,
	">":    TGreaterThan,
	">=":   TGreaterThanEquals,
	">>":   TGreaterThanGreaterThan,
	">>=":  TGreaterThanGreaterThanEquals,
	">>>":  TGreaterThanGreaterThanGreaterThan,
	">>>=": TGreaterThanGreaterThanGreaterThanEquals,
	"<":    TLessThan,
	"<=":   TLessThanEquals,
	"<<":   TLessThanLessThan,
	"<<=":  TLessThanLessThanEquals,
	"-":    TMinus,
	"--":   TMinusMinus,
	"-=":   TMinusEquals,
	"{":    TOpenBrace,
	"[":    TOpenBracket,
	"(":    TOpenParen,
	"%":    TPercent,
	"%=":   TPercentEquals,
	"+":    TPlus,
	"++":   TPlusPlus,
	"+=":   TPlusEquals,
	"?":    TQuestion,
	"?.":   TQuestionDot,
	"??":   TQuestionQuestion,
	"??=":  TQuestionQuestionEquals,
	";":    TSemicolon,
	"~":    TTilde,
}

var tokenToString = map[T]string{
	TEndOfFile:                     "end of file",
	THashbang:                      "hashbang comment",
	TNoSubstitutionTemplateLiteral: "template literal",
	TNumericLiteral:                "number",
	TStringLiteral:                 "string",
	TBigIntegerLiteral:             "bigint",
	TTemplateHead:                  "template literal",
	TTemplateMiddle:                "template literal",
	TTemplateTail:                  "template literal",
	TDotDotDot:                     "\"...\"",
	TDot:                           "\".\"",
	TSlash:                         "\"/\"",
	TSlashEquals:                   "\"/=\"",
	TPrivateIdentifier:             "private identifier",
	TIdentifier:                    "identifier",
	TEscapedKeyword:                "escaped keyword",
}

func init() {
	for text, token := range punctuators {
		tokenToString[token] = fmt.Sprintf("%q", text)
	}
	for text, token := range Keywords {
		tokenToString[token] = fmt.Sprintf("%q", text)
	}
}

type Lexer struct {
	log                             logger.Log
	source                          logger.Source
	current                         int
	start                           int
	end                             int
	Token                           T
	HasNewlineBefore                bool
	codePoint                       rune
	Identifier                      string
	StringLiteral                   string
	Number                          float64
	rescanCloseBraceAsTemplateToken bool

	// Every comment seen so far, in source order
	AllComments []js_ast.Comment

	// Comments such as "/*! ... */" or ones containing "@license" that appear
	// right before the current token. These are kept in the output.
	LegalCommentsBefore []js_ast.Comment
}

type LexerPanic struct{}

func NewLexer(log logger.Log, source logger.Source) Lexer {
	lexer := Lexer{
		log:    log,
		source: source,
	}
	lexer.step()
	lexer.Next()
	return lexer
}

func (lexer *Lexer) Loc() logger.Loc {
	return logger.Loc{Start: int32(lexer.start)}
}

func (lexer *Lexer) Range() logger.Range {
	return logger.Range{Loc: logger.Loc{Start: int32(lexer.start)}, Len: int32(lexer.end - lexer.start)}
}

func (lexer *Lexer) Raw() string {
	return lexer.source.Contents[lexer.start:lexer.end]
}

func (lexer *Lexer) RawTemplateContents() string {
	var text string
	switch lexer.Token {
	case TNoSubstitutionTemplateLiteral, TTemplateTail:
		// "`x`" or "}x`"
		text = lexer.source.Contents[lexer.start+1 : lexer.end-1]

	case TTemplateHead, TTemplateMiddle:
		// "`x${" or "}x${"
		text = lexer.source.Contents[lexer.start+1 : lexer.end-2]
	}

	// Line terminators in template literals are normalized to "\n"
	if strings.IndexByte(text, '\r') == -1 {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func (lexer *Lexer) IsIdentifierOrKeyword() bool {
	return lexer.Token >= TIdentifier
}

func (lexer *Lexer) IsContextualKeyword(text string) bool {
	return lexer.Token == TIdentifier && lexer.Raw() == text
}

func (lexer *Lexer) ExpectContextualKeyword(text string) {
	if !lexer.IsContextualKeyword(text) {
		lexer.ExpectedString(fmt.Sprintf("%q", text))
	}
	lexer.Next()
}

func (lexer *Lexer) SyntaxError() {
	loc := logger.Loc{Start: int32(lexer.end)}
	message := "Unexpected end of file"
	if lexer.end < len(lexer.source.Contents) {
		c, _ := utf8.DecodeRuneInString(lexer.source.Contents[lexer.end:])
		switch {
		case c < 0x20:
			message = fmt.Sprintf("Syntax error \"\\x%02X\"", c)
		case c >= 0x80:
			message = fmt.Sprintf("Syntax error \"\\u{%x}\"", c)
		case c != '"':
			message = fmt.Sprintf("Syntax error \"%c\"", c)
		default:
			message = "Syntax error '\"'"
		}
	}
	lexer.addError(loc, message)
	panic(LexerPanic{})
}

func (lexer *Lexer) ExpectedString(text string) {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Expected %s but found %s", text, found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expected(token T) {
	if text, ok := tokenToString[token]; ok {
		lexer.ExpectedString(text)
	} else {
		lexer.Unexpected()
	}
}

func (lexer *Lexer) Unexpected() {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Unexpected %s", found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expect(token T) {
	if lexer.Token != token {
		lexer.Expected(token)
	}
	lexer.Next()
}

func (lexer *Lexer) ExpectOrInsertSemicolon() {
	if lexer.Token == TSemicolon || (!lexer.HasNewlineBefore &&
		lexer.Token != TCloseBrace && lexer.Token != TEndOfFile) {
		lexer.Expect(TSemicolon)
	}
}

func isLineTerminator(codePoint rune) bool {
	switch codePoint {
	case '\r', '\n', '\u2028', '\u2029':
		return true
	}
	return false
}

func (lexer *Lexer) Next() {
	lexer.HasNewlineBefore = lexer.end == 0
	lexer.LegalCommentsBefore = nil

	for {
		lexer.start = lexer.end
		lexer.Token = TEndOfFile

		switch lexer.codePoint {
		case -1: // This indicates the end of the file

		case '\r', '\n', '\u2028', '\u2029':
			lexer.step()
			lexer.HasNewlineBefore = true
			continue

		case '\t', ' ':
			lexer.step()
			continue

		case '#':
			if lexer.start == 0 && strings.HasPrefix(lexer.source.Contents, "#!") {
				// "#!/usr/bin/env node"
				for lexer.codePoint != -1 && !isLineTerminator(lexer.codePoint) {
					lexer.step()
				}
				lexer.Token = THashbang
				lexer.Identifier = lexer.Raw()
				break
			}

			// "#foo"
			lexer.step()
			name, _ := lexer.scanIdentifier()
			lexer.Identifier = name
			lexer.Token = TPrivateIdentifier

		case '/':
			lexer.step()
			switch lexer.codePoint {
			case '/':
				for lexer.codePoint != -1 && !isLineTerminator(lexer.codePoint) {
					lexer.step()
				}
				lexer.addComment()
				continue

			case '*':
				lexer.step()
				lexer.scanMultiLineComment()
				lexer.addComment()
				continue

			case '=':
				lexer.step()
				lexer.Token = TSlashEquals

			default:
				lexer.Token = TSlash
			}

		case '\'', '"':
			lexer.scanStringLiteral()

		case '`':
			lexer.scanTemplateLiteral()

		case '\\':
			lexer.Identifier, lexer.Token = lexer.scanIdentifier()

		case '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			lexer.parseNumericLiteralOrDot()

		default:
			if js_ast.IsIdentifierStart(lexer.codePoint) {
				lexer.Identifier, lexer.Token = lexer.scanIdentifier()
				break
			}

			// Check for unusual whitespace characters
			if js_ast.IsWhitespace(lexer.codePoint) {
				lexer.step()
				continue
			}

			if !lexer.scanPunctuator() {
				lexer.SyntaxError()
			}
		}

		return
	}
}

func (lexer *Lexer) scanPunctuator() bool {
	text := lexer.source.Contents[lexer.start:]
	for n := 4; n > 0; n-- {
		if len(text) < n {
			continue
		}
		token, ok := punctuators[text[:n]]
		if !ok {
			continue
		}

		// Lookahead to disambiguate with "a?.1:b"
		if token == TQuestionDot && len(text) > 2 && text[2] >= '0' && text[2] <= '9' {
			continue
		}

		for i := 0; i < n; i++ {
			lexer.step()
		}
		lexer.Token = token
		return true
	}
	return false
}

func (lexer *Lexer) scanMultiLineComment() {
	for {
		switch lexer.codePoint {
		case '*':
			lexer.step()
			if lexer.codePoint == '/' {
				lexer.step()
				return
			}

		case '\r', '\n', '\u2028', '\u2029':
			lexer.step()
			lexer.HasNewlineBefore = true

		case -1: // This indicates the end of the file
			lexer.start = lexer.end
			lexer.addError(lexer.Loc(), "Expected \"*/\" to terminate multi-line comment")
			panic(LexerPanic{})

		default:
			lexer.step()
		}
	}
}

func (lexer *Lexer) addComment() {
	comment := js_ast.Comment{
		Loc:  logger.Loc{Start: int32(lexer.start)},
		Text: lexer.source.Contents[lexer.start:lexer.end],
	}
	lexer.AllComments = append(lexer.AllComments, comment)
	if IsLegalComment(comment.Text) {
		lexer.LegalCommentsBefore = append(lexer.LegalCommentsBefore, comment)
	}
}

// Legal comments start with "//!" or "/*!", or contain "@license" or
// "@preserve" as a whole word
func IsLegalComment(text string) bool {
	if len(text) > 2 && text[2] == '!' {
		return true
	}
	for _, annotation := range []string{"@license", "@preserve"} {
		rest := text
		for {
			i := strings.Index(rest, annotation)
			if i == -1 {
				break
			}
			rest = rest[i+len(annotation):]
			if c, _ := utf8.DecodeRuneInString(rest); !js_ast.IsIdentifierContinue(c) {
				return true
			}
		}
	}
	return false
}

func (lexer *Lexer) scanStringLiteral() {
	quote := lexer.codePoint
	needsSlowPath := false
	lexer.Token = TStringLiteral
	lexer.step()

stringLiteral:
	for {
		switch lexer.codePoint {
		case '\\':
			needsSlowPath = true
			lexer.step()

			// Handle Windows CRLF
			if lexer.codePoint == '\r' {
				lexer.step()
				if lexer.codePoint == '\n' {
					lexer.step()
				}
				continue
			}

		case -1: // This indicates the end of the file
			lexer.SyntaxError()

		case '\r', '\n':
			lexer.addError(logger.Loc{Start: int32(lexer.end)}, "Unterminated string literal")
			panic(LexerPanic{})

		case quote:
			lexer.step()
			break stringLiteral
		}
		lexer.step()
	}

	text := lexer.source.Contents[lexer.start+1 : lexer.end-1]
	if needsSlowPath {
		lexer.StringLiteral = helpers.UTF16ToWTF8(lexer.decodeEscapeSequences(lexer.start+1, text))
	} else {
		lexer.StringLiteral = text
	}
}

func (lexer *Lexer) scanTemplateLiteral() {
	if lexer.rescanCloseBraceAsTemplateToken {
		lexer.Token = TTemplateTail
	} else {
		lexer.Token = TNoSubstitutionTemplateLiteral
	}
	lexer.step()

	for {
		switch lexer.codePoint {
		case '\\':
			lexer.step()

		case -1: // This indicates the end of the file
			lexer.SyntaxError()

		case '$':
			lexer.step()
			if lexer.codePoint == '{' {
				lexer.step()
				if lexer.rescanCloseBraceAsTemplateToken {
					lexer.Token = TTemplateMiddle
				} else {
					lexer.Token = TTemplateHead
				}
				return
			}
			continue

		case '`':
			lexer.step()
			return
		}
		lexer.step()
	}
}

func (lexer *Lexer) RescanCloseBraceAsTemplateToken() {
	if lexer.Token != TCloseBrace {
		lexer.Expected(TCloseBrace)
	}

	lexer.rescanCloseBraceAsTemplateToken = true
	lexer.codePoint = '`'
	lexer.current = lexer.end
	lexer.end -= 1
	lexer.Next()
	lexer.rescanCloseBraceAsTemplateToken = false
}

// Scans an identifier starting at the current code point. Escape sequences
// are decoded, and an escaped keyword is reported as "TEscapedKeyword" so
// it can't be used as an actual keyword.
func (lexer *Lexer) scanIdentifier() (string, T) {
	start := lexer.end
	hasEscape := false
	isFirst := true

	for {
		if lexer.codePoint == '\\' {
			hasEscape = true
			lexer.step()
			if lexer.codePoint != 'u' {
				lexer.SyntaxError()
			}
			lexer.step()
			if lexer.codePoint == '{' {
				// Variable-length
				lexer.step()
				for lexer.codePoint != '}' {
					if !isHexDigit(lexer.codePoint) {
						lexer.SyntaxError()
					}
					lexer.step()
				}
				lexer.step()
			} else {
				// Fixed-length
				for j := 0; j < 4; j++ {
					if !isHexDigit(lexer.codePoint) {
						lexer.SyntaxError()
					}
					lexer.step()
				}
			}
		} else if (isFirst && js_ast.IsIdentifierStart(lexer.codePoint)) ||
			(!isFirst && js_ast.IsIdentifierContinue(lexer.codePoint)) {
			lexer.step()
		} else {
			break
		}
		isFirst = false
	}

	if isFirst {
		lexer.SyntaxError()
	}

	text := lexer.source.Contents[start:lexer.end]
	if !hasEscape {
		if token, ok := Keywords[text]; ok {
			return text, token
		}
		return text, TIdentifier
	}

	// Re-use the string escape decoder for the second pass
	decoded := helpers.UTF16ToWTF8(lexer.decodeEscapeSequences(start, text))

	// Even though it was escaped, it must still be a valid identifier
	if !js_ast.IsIdentifier(decoded) {
		lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start)}, Len: int32(lexer.end - start)},
			fmt.Sprintf("Invalid identifier: %q", decoded))
		panic(LexerPanic{})
	}

	// "foo.\u0076\u0061\u0072" is fine but "\u0076\u0061\u0072 foo" is not
	if Keywords[decoded] != 0 {
		return decoded, TEscapedKeyword
	}
	return decoded, TIdentifier
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c rune) rune {
	switch {
	case c >= 'a':
		return c + 10 - 'a'
	case c >= 'A':
		return c + 10 - 'A'
	default:
		return c - '0'
	}
}

func (lexer *Lexer) parseNumericLiteralOrDot() {
	first := lexer.codePoint
	lexer.step()

	// Dot without a digit after it
	if first == '.' && (lexer.codePoint < '0' || lexer.codePoint > '9') {
		// "..."
		if lexer.codePoint == '.' &&
			lexer.current < len(lexer.source.Contents) &&
			lexer.source.Contents[lexer.current] == '.' {
			lexer.step()
			lexer.step()
			lexer.Token = TDotDotDot
			return
		}

		// "."
		lexer.Token = TDot
		return
	}

	lexer.Token = TNumericLiteral
	base := 10

	// Check for binary, octal, or hexadecimal literal
	if first == '0' {
		switch lexer.codePoint {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '_':
			// Legacy octal literals such as "0123" are base 8 unless they
			// contain an 8 or a 9
			base = 0
		}
	}

	isBigInt := false

	switch base {
	case 2, 8, 16:
		lexer.step()
		digitsStart := lexer.end
		lexer.scanDigits(func(c rune) bool {
			return (base == 16 && isHexDigit(c)) || (c >= '0' && c < '0'+rune(base) && c <= '9')
		})
		if lexer.end == digitsStart {
			lexer.SyntaxError()
		}
		if lexer.codePoint == 'n' {
			isBigInt = true
			lexer.Identifier = strings.ReplaceAll(lexer.Raw(), "_", "")
			break
		}
		lexer.Number = 0
		for _, c := range strings.ReplaceAll(lexer.source.Contents[digitsStart:lexer.end], "_", "") {
			lexer.Number = lexer.Number*float64(base) + float64(hexValue(c))
		}

	case 0:
		// Numeric separators and bigint suffixes are not allowed here
		for lexer.codePoint >= '0' && lexer.codePoint <= '9' {
			lexer.step()
		}
		if lexer.codePoint == '_' || lexer.codePoint == 'n' {
			lexer.SyntaxError()
		}
		text := lexer.Raw()
		if strings.ContainsAny(text, "89") {
			value, _ := strconv.ParseFloat(text, 64)
			lexer.Number = value
		} else {
			value, _ := strconv.ParseUint(text[1:], 8, 64)
			lexer.Number = float64(value)
		}

	default:
		isDigit := func(c rune) bool { return c >= '0' && c <= '9' }
		hasDotOrExponent := first == '.'

		// Initial digits (or the fractional digits after a leading dot)
		lexer.scanDigits(isDigit)

		// Fractional digits
		if first != '.' && lexer.codePoint == '.' {
			hasDotOrExponent = true
			lexer.step()
			if lexer.codePoint == '_' {
				lexer.SyntaxError()
			}
			lexer.scanDigits(isDigit)
		}

		// Exponent
		if lexer.codePoint == 'e' || lexer.codePoint == 'E' {
			hasDotOrExponent = true
			lexer.step()
			if lexer.codePoint == '+' || lexer.codePoint == '-' {
				lexer.step()
			}
			if !isDigit(lexer.codePoint) {
				lexer.SyntaxError()
			}
			lexer.scanDigits(isDigit)
		}

		text := strings.ReplaceAll(lexer.Raw(), "_", "")
		if lexer.codePoint == 'n' && !hasDotOrExponent {
			// The only bigint literal that can start with 0 is "0n"
			if len(text) > 1 && first == '0' {
				lexer.SyntaxError()
			}
			isBigInt = true
			lexer.Identifier = text
		} else {
			value, _ := strconv.ParseFloat(text, 64)
			lexer.Number = value
		}
	}

	if isBigInt {
		lexer.Token = TBigIntegerLiteral
		lexer.step()
	}

	// Identifiers can't occur immediately after numbers
	if js_ast.IsIdentifierStart(lexer.codePoint) || isDigitOrUnderscore(lexer.codePoint) {
		lexer.SyntaxError()
	}
}

func isDigitOrUnderscore(c rune) bool {
	return (c >= '0' && c <= '9') || c == '_'
}

// Numeric separators must sit between two digits
func (lexer *Lexer) scanDigits(isDigit func(rune) bool) {
	prevWasDigit := lexer.end > lexer.start && isDigit(rune(lexer.source.Contents[lexer.end-1]))
	for {
		switch {
		case isDigit(lexer.codePoint):
			prevWasDigit = true
		case lexer.codePoint == '_':
			if !prevWasDigit {
				lexer.SyntaxError()
			}
			prevWasDigit = false
		default:
			if lexer.end > lexer.start && lexer.source.Contents[lexer.end-1] == '_' {
				lexer.end--
				lexer.SyntaxError()
			}
			return
		}
		lexer.step()
	}
}

func (lexer *Lexer) ScanRegExp() {
	validateAndStep := func() {
		if lexer.codePoint == '\\' {
			lexer.step()
		}

		switch lexer.codePoint {
		case '\r', '\n', 0x2028, 0x2029:
			// Newlines aren't allowed in regular expressions
			lexer.SyntaxError()

		case -1: // This indicates the end of the file
			lexer.SyntaxError()

		default:
			lexer.step()
		}
	}

	for {
		switch lexer.codePoint {
		case '/':
			lexer.step()
			for js_ast.IsIdentifierContinue(lexer.codePoint) {
				switch lexer.codePoint {
				case 'd', 'g', 'i', 'm', 's', 'u', 'v', 'y':
					lexer.step()

				default:
					lexer.SyntaxError()
				}
			}
			return

		case '[':
			lexer.step()
			for lexer.codePoint != ']' {
				validateAndStep()
			}
			lexer.step()

		default:
			validateAndStep()
		}
	}
}

// The result is UTF-16 so that a pair of "\uD83D\uDE00" escapes can be
// joined into a single code point afterward
func (lexer *Lexer) decodeEscapeSequences(start int, text string) []uint16 {
	decoded := []uint16{}
	i := 0

	appendRune := func(c rune) {
		if c <= 0xFFFF {
			decoded = append(decoded, uint16(c))
		} else {
			c -= 0x10000
			decoded = append(decoded, uint16(0xD800+((c>>10)&0x3FF)), uint16(0xDC00+(c&0x3FF)))
		}
	}

	fail := func(offset int) {
		lexer.end = start + offset
		lexer.SyntaxError()
	}

	for i < len(text) {
		c, width := utf8.DecodeRuneInString(text[i:])
		i += width

		if c != '\\' {
			appendRune(c)
			continue
		}

		c2, width2 := utf8.DecodeRuneInString(text[i:])
		i += width2

		switch c2 {
		case 'b':
			appendRune('\b')
		case 'f':
			appendRune('\f')
		case 'n':
			appendRune('\n')
		case 'r':
			appendRune('\r')
		case 't':
			appendRune('\t')
		case 'v':
			appendRune('\v')

		case '0', '1', '2', '3', '4', '5', '6', '7':
			// 1-3 digit octal
			value := c2 - '0'
			if i < len(text) && text[i] >= '0' && text[i] <= '7' {
				value = value*8 + rune(text[i]-'0')
				i++
				if i < len(text) && text[i] >= '0' && text[i] <= '7' && value*8+rune(text[i]-'0') < 256 {
					value = value*8 + rune(text[i]-'0')
					i++
				}
			}
			appendRune(value)

		case 'x':
			// 2-digit hexadecimal
			if i+2 > len(text) || !isHexDigit(rune(text[i])) || !isHexDigit(rune(text[i+1])) {
				fail(i)
			}
			appendRune(hexValue(rune(text[i]))<<4 | hexValue(rune(text[i+1])))
			i += 2

		case 'u':
			value := rune(0)
			if i < len(text) && text[i] == '{' {
				// Variable-length
				hexStart := i - 2
				i++
				digits := 0
				for i < len(text) && text[i] != '}' {
					if !isHexDigit(rune(text[i])) {
						fail(i)
					}
					value = value*16 | hexValue(rune(text[i]))
					if value > utf8.MaxRune {
						lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start + hexStart)}, Len: int32(i + 1 - hexStart)},
							"Unicode escape sequence is out of range")
						panic(LexerPanic{})
					}
					digits++
					i++
				}
				if digits == 0 || i == len(text) {
					fail(i)
				}
				i++
			} else {
				// Fixed-length
				for j := 0; j < 4; j++ {
					if i >= len(text) || !isHexDigit(rune(text[i])) {
						fail(i)
					}
					value = value*16 | hexValue(rune(text[i]))
					i++
				}
			}
			appendRune(value)

		case '\r':
			// Ignore line continuations. A line continuation is not an escaped newline.
			if i < len(text) && text[i] == '\n' {
				i++
			}

		case '\n', '\u2028', '\u2029':
			// Ignore line continuations. A line continuation is not an escaped newline.

		default:
			appendRune(c2)
		}
	}

	return decoded
}

func (lexer *Lexer) step() {
	codePoint, width := utf8.DecodeRuneInString(lexer.source.Contents[lexer.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = -1
	}

	lexer.codePoint = codePoint
	lexer.end = lexer.current
	lexer.current += width
}

func (lexer *Lexer) addError(loc logger.Loc, text string) {
	lexer.log.AddError(&lexer.source, loc, text)
}

func (lexer *Lexer) addRangeError(r logger.Range, text string) {
	lexer.log.AddRangeError(&lexer.source, r, text)
}
