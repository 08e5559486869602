package mangler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/evanw/propmangle/internal/helpers"
	"github.com/evanw/propmangle/internal/js_ast"
	"github.com/evanw/propmangle/internal/logger"
)

// A directive is any line of a comment that looks like this:
//
//   /* @mangle ['foo', ['bar', 'b']] */
//
// The text before "@mangle" only has to end in a space or an asterisk, so a
// directive may also sit in the middle of a larger doc comment. Each line of
// a comment can hold its own directive.
var directiveRegExp = regexp.MustCompile(`(?m)[* ]+@mangle +(.+?)[ *]*$`)

type Directive struct {
	// This covers the payload, not the "@mangle" keyword
	Range   logger.Range
	Payload string
}

type DirectiveItem struct {
	Range       logger.Range
	Original    string
	Replacement string

	// Otherwise the item only marks "Original" as eligible for a generated name
	IsPair bool
}

func FindDirectives(comments []js_ast.Comment) []Directive {
	var directives []Directive

	for _, comment := range comments {
		if len(comment.Text) < 2 {
			continue
		}
		body := comment.Text[2:]
		if strings.HasPrefix(comment.Text, "/*") && strings.HasSuffix(body, "*/") {
			body = body[:len(body)-2]
		}

		for _, match := range directiveRegExp.FindAllStringSubmatchIndex(body, -1) {
			start, end := match[2], match[3]
			directives = append(directives, Directive{
				Range:   logger.Range{Loc: logger.Loc{Start: comment.Loc.Start + 2 + int32(start)}, Len: int32(end - start)},
				Payload: body[start:end],
			})
		}
	}

	return directives
}

// ParseDirective accepts a bracketed, comma-separated list whose entries are
// either strings or two-element lists of strings. Single quotes are treated
// as double quotes, and strings use JSON escapes. Other JSON values such as
// numbers or objects parse but are rejected as unsupported items.
func ParseDirective(directive Directive) ([]DirectiveItem, error) {
	p := payloadParser{text: strings.ReplaceAll(directive.Payload, "'", "\"")}

	p.skipWhitespace()
	if p.i == len(p.text) || p.text[p.i] != '[' {
		return nil, p.malformed(directive, p.expected("\"[\""))
	}
	list, err := p.parseValue()
	if err != nil {
		return nil, p.malformed(directive, err)
	}
	p.skipWhitespace()
	if p.i < len(p.text) {
		return nil, p.malformed(directive, fmt.Errorf("Unexpected %s after the list", p.found()))
	}

	items := make([]DirectiveItem, 0, len(list.items))
	for _, item := range list.items {
		r := logger.Range{Loc: logger.Loc{Start: directive.Range.Loc.Start + int32(item.start)}, Len: int32(item.end - item.start)}

		switch {
		case item.isString():
			items = append(items, DirectiveItem{Range: r, Original: item.text})

		case len(item.items) == 2 && item.kind == payloadList && item.items[0].isString() && item.items[1].isString():
			items = append(items, DirectiveItem{
				Range:       r,
				Original:    item.items[0].text,
				Replacement: item.items[1].text,
				IsPair:      true,
			})

		default:
			return nil, &UnsupportedDirectiveItemError{Range: r, Item: string(item.appendJSON(nil))}
		}
	}

	return items, nil
}

type payloadKind uint8

const (
	payloadList payloadKind = iota
	payloadString
	payloadObject

	// Numbers, "true", "false" and "null"
	payloadLiteral
)

// Anything that isn't a string or a list of strings still has to be valid
// JSON. It's parsed only so that the error can show what was found.
type payloadValue struct {
	items []payloadValue
	keys  []string // Parallel to "items" for objects
	text  string   // Decoded for strings, compact JSON for literals
	start int
	end   int
	kind  payloadKind
}

func (v payloadValue) isString() bool {
	return v.kind == payloadString
}

func (v payloadValue) appendJSON(bytes []byte) []byte {
	switch v.kind {
	case payloadString:
		return append(bytes, helpers.QuoteForJSON(v.text)...)

	case payloadLiteral:
		return append(bytes, v.text...)

	case payloadObject:
		bytes = append(bytes, '{')
		for i, item := range v.items {
			if i > 0 {
				bytes = append(bytes, ',')
			}
			bytes = append(bytes, helpers.QuoteForJSON(v.keys[i])...)
			bytes = append(bytes, ':')
			bytes = item.appendJSON(bytes)
		}
		return append(bytes, '}')
	}

	bytes = append(bytes, '[')
	for i, item := range v.items {
		if i > 0 {
			bytes = append(bytes, ',')
		}
		bytes = item.appendJSON(bytes)
	}
	return append(bytes, ']')
}

type payloadParser struct {
	text string
	i    int
}

func (p *payloadParser) malformed(directive Directive, err error) error {
	return &MalformedDirectiveError{Range: directive.Range, Payload: directive.Payload, Err: err}
}

func (p *payloadParser) found() string {
	if p.i >= len(p.text) {
		return "end of directive"
	}
	c, _ := utf8.DecodeRuneInString(p.text[p.i:])
	return fmt.Sprintf("%q", string(c))
}

func (p *payloadParser) expected(text string) error {
	return fmt.Errorf("Expected %s but found %s", text, p.found())
}

func (p *payloadParser) skipWhitespace() {
	for p.i < len(p.text) {
		switch p.text[p.i] {
		case ' ', '\t', '\r', '\n':
			p.i++
		default:
			return
		}
	}
}

func (p *payloadParser) peek(c byte) bool {
	return p.i < len(p.text) && p.text[p.i] == c
}

func (p *payloadParser) parseValue() (payloadValue, error) {
	p.skipWhitespace()

	switch {
	case p.peek('"'):
		return p.parseString()

	case p.peek('['):
		value := payloadValue{start: p.i, kind: payloadList}
		p.i++
		p.skipWhitespace()

		if !p.peek(']') {
			for {
				item, err := p.parseValue()
				if err != nil {
					return payloadValue{}, err
				}
				value.items = append(value.items, item)

				p.skipWhitespace()
				if !p.peek(',') {
					break
				}
				p.i++
			}
			if !p.peek(']') {
				return payloadValue{}, p.expected("\",\" or \"]\"")
			}
		}

		p.i++
		value.end = p.i
		return value, nil

	case p.peek('{'):
		return p.parseObject()

	case p.peek('-') || (p.i < len(p.text) && p.text[p.i] >= '0' && p.text[p.i] <= '9'):
		return p.parseNumber()
	}

	start := p.i
	for p.i < len(p.text) && p.text[p.i] >= 'a' && p.text[p.i] <= 'z' {
		p.i++
	}
	switch word := p.text[start:p.i]; word {
	case "true", "false", "null":
		return payloadValue{text: word, start: start, end: p.i, kind: payloadLiteral}, nil
	}

	// Report bare words at their first character
	p.i = start
	return payloadValue{}, p.expected("a string or a list")
}

func (p *payloadParser) parseObject() (payloadValue, error) {
	value := payloadValue{start: p.i, kind: payloadObject}
	p.i++
	p.skipWhitespace()

	if !p.peek('}') {
		for {
			p.skipWhitespace()
			if !p.peek('"') {
				return payloadValue{}, p.expected("a string")
			}
			key, err := p.parseString()
			if err != nil {
				return payloadValue{}, err
			}

			p.skipWhitespace()
			if !p.peek(':') {
				return payloadValue{}, p.expected("\":\"")
			}
			p.i++

			item, err := p.parseValue()
			if err != nil {
				return payloadValue{}, err
			}
			value.keys = append(value.keys, key.text)
			value.items = append(value.items, item)

			p.skipWhitespace()
			if !p.peek(',') {
				break
			}
			p.i++
		}
		if !p.peek('}') {
			return payloadValue{}, p.expected("\",\" or \"}\"")
		}
	}

	p.i++
	value.end = p.i
	return value, nil
}

func (p *payloadParser) parseNumber() (payloadValue, error) {
	start := p.i
	for p.i < len(p.text) && strings.IndexByte("+-.0123456789Ee", p.text[p.i]) >= 0 {
		p.i++
	}

	// Let the JSON decoder enforce the number grammar
	raw := p.text[start:p.i]
	var number json.Number
	if err := json.Unmarshal([]byte(raw), &number); err != nil {
		return payloadValue{}, fmt.Errorf("Invalid number %s", raw)
	}
	value, err := number.Float64()
	if err != nil {
		return payloadValue{}, fmt.Errorf("Invalid number %s", raw)
	}

	// Print "1.0" and "1e2" as "1" and "100" like "JSON.stringify" would
	var text string
	if value == math.Trunc(value) && math.Abs(value) < 1e21 {
		text = strconv.FormatFloat(value, 'f', -1, 64)
	} else {
		text = strconv.FormatFloat(value, 'g', -1, 64)
	}
	return payloadValue{text: text, start: start, end: p.i, kind: payloadLiteral}, nil
}

func (p *payloadParser) parseString() (payloadValue, error) {
	start := p.i
	p.i++

	for {
		if p.i >= len(p.text) {
			return payloadValue{}, errors.New("Unterminated string")
		}
		c := p.text[p.i]
		if c == '\\' {
			p.i += 2
			continue
		}
		p.i++
		if c == '"' {
			break
		}
	}

	raw := p.text[start:p.i]
	var text string
	if err := json.Unmarshal([]byte(raw), &text); err != nil {
		return payloadValue{}, fmt.Errorf("Invalid string %s", raw)
	}
	return payloadValue{text: text, start: start, end: p.i, kind: payloadString}, nil
}
