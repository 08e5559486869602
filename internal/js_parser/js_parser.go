package js_parser

// This parser does a single pass: it turns the token stream into a tree and
// nothing else. There is no scope tree and no symbol binding because the only
// consumer is the property rename pass, which works on names alone.
//
// Syntax errors are written to the log and then abort the parse with a
// "js_lexer.LexerPanic" that "Parse" recovers from.

import (
	"github.com/evanw/propmangle/internal/js_ast"
	"github.com/evanw/propmangle/internal/js_lexer"
	"github.com/evanw/propmangle/internal/logger"
)

type parser struct {
	log     logger.Log
	source  logger.Source
	lexer   js_lexer.Lexer
	allowIn bool
	fn      fnContext
}

// What the innermost function allows. Top-level code is parsed as a module,
// so "await" is a keyword there.
type fnContext struct {
	allowAwait bool
	allowYield bool
}

func Parse(log logger.Log, source logger.Source) (result js_ast.AST, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := &parser{
		log:     log,
		source:  source,
		lexer:   js_lexer.NewLexer(log, source),
		allowIn: true,
		fn:      fnContext{allowAwait: true},
	}

	if p.lexer.Token == js_lexer.THashbang {
		result.Hashbang = p.lexer.Identifier
		p.lexer.Next()
	}

	result.Stmts = p.parseStmtsUpTo(js_lexer.TEndOfFile, parseStmtOpts{allowDirectivePrologue: true, isModuleScope: true})
	result.Comments = p.lexer.AllComments
	return
}

func (p *parser) addRangeError(r logger.Range, text string) {
	p.log.AddRangeError(&p.source, r, text)
	panic(js_lexer.LexerPanic{})
}

type parseStmtOpts struct {
	allowDirectivePrologue bool
	isModuleScope          bool
}

func (p *parser) parseStmtsUpTo(end js_lexer.T, opts parseStmtOpts) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	isDirectivePrologue := opts.allowDirectivePrologue

	for {
		// Legal comments are kept as statements of their own
		for _, comment := range p.lexer.LegalCommentsBefore {
			stmts = append(stmts, js_ast.Stmt{Loc: comment.Loc, Data: &js_ast.SComment{Text: comment.Text}})
		}
		p.lexer.LegalCommentsBefore = nil

		if p.lexer.Token == end {
			break
		}

		// A statement that is only a string literal is a directive if it comes
		// before all other statements in the body
		startsWithString := p.lexer.Token == js_lexer.TStringLiteral
		raw := p.lexer.Raw()
		stmt := p.parseStmt(opts)

		if isDirectivePrologue {
			isDirectivePrologue = false
			if s, ok := stmt.Data.(*js_ast.SExpr); ok && startsWithString {
				if _, ok := s.Value.Data.(*js_ast.EString); ok && s.Value.Loc == stmt.Loc {
					stmt.Data = &js_ast.SDirective{Value: raw[1 : len(raw)-1], QuoteChar: raw[0]}
					isDirectivePrologue = true
				}
			}
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *parser) parseStmt(opts parseStmtOpts) js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TOpenBrace:
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: p.parseBlock()}}

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseAndDeclareDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseAndDeclareDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, false /* isAsync */)

	case js_lexer.TClass:
		p.lexer.Next()
		class := p.parseClass(true /* isStmt */)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class}}

	case js_lexer.TExport:
		return p.parseExportStmt(opts)

	case js_lexer.TImport:
		p.lexer.Next()

		// "import(path)" and "import.meta" are expressions
		if p.lexer.Token == js_lexer.TOpenParen || p.lexer.Token == js_lexer.TDot {
			expr := p.parseSuffix(p.parseImportExpr(loc), js_ast.LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
		}
		return p.parseImportStmt(loc)

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt(parseStmtOpts{})
		var noOrNil js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			noOrNil = p.parseStmt(parseStmtOpts{})
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, NoOrNil: noOrNil}}

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmt(parseStmtOpts{})
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)

		// This is a weird corner case where automatic semicolon insertion applies
		// even without a newline present
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TWith:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWith{Value: value, Body: body}}

	case js_lexer.TSwitch:
		return p.parseSwitchStmt(loc)

	case js_lexer.TTry:
		return p.parseTryStmt(loc)

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TReturn:
		p.lexer.Next()
		var valueOrNil js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon &&
			!p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile {
			valueOrNil = p.parseExpr(js_ast.LLowest)
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{ValueOrNil: valueOrNil}}

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.addRangeError(logger.Range{Loc: logger.Loc{Start: loc.Start + 5}},
				"Unexpected newline after \"throw\"")
		}
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

	case js_lexer.TBreak:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{LabelOrNil: label}}

	case js_lexer.TContinue:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{LabelOrNil: label}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		nameRange := p.lexer.Range()

		switch name {
		case "let":
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
				decls := p.parseAndDeclareDecls()
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
			}

			// "let" is just an identifier here
			expr := p.parseSuffix(js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}, js_ast.LLowest)
			return p.parseExprOrLabelStmt(loc, expr)

		case "async":
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				return p.parseFnStmt(loc, true /* isAsync */)
			}
			expr := p.parseSuffix(p.parseAsyncPrefixExpr(nameRange, js_ast.LLowest), js_ast.LLowest)
			return p.parseExprOrLabelStmt(loc, expr)
		}

		expr := p.parseExpr(js_ast.LLowest)
		return p.parseExprOrLabelStmt(loc, expr)
	}

	expr := p.parseExpr(js_ast.LLowest)
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

func (p *parser) parseExprOrLabelStmt(loc logger.Loc, expr js_ast.Expr) js_ast.Stmt {
	if id, ok := expr.Data.(*js_ast.EIdentifier); ok && p.lexer.Token == js_lexer.TColon && expr.Loc == loc {
		p.lexer.Next()
		stmt := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: id.Name, Stmt: stmt}}
	}

	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

func (p *parser) parseLabelName() *js_ast.LocName {
	if p.lexer.Token != js_lexer.TIdentifier || p.lexer.HasNewlineBefore {
		return nil
	}
	name := &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
	p.lexer.Next()
	return name
}

func (p *parser) parseBlock() []js_ast.Stmt {
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.lexer.Next()
	return stmts
}

func (p *parser) parseFnStmt(loc logger.Loc, isAsync bool) js_ast.Stmt {
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	var name *js_ast.LocName
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	} else if p.lexer.Token != js_lexer.TOpenParen {
		p.lexer.Expect(js_lexer.TIdentifier)
	}

	fn := p.parseFn(name, isAsync, isGenerator)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}
}

func (p *parser) parseSwitchStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)
	test := p.parseExpr(js_ast.LLowest)
	p.lexer.Expect(js_lexer.TCloseParen)
	p.lexer.Expect(js_lexer.TOpenBrace)
	cases := []js_ast.Case{}
	foundDefault := false

	for p.lexer.Token != js_lexer.TCloseBrace {
		var value js_ast.Expr

		if p.lexer.Token == js_lexer.TDefault {
			if foundDefault {
				p.addRangeError(p.lexer.Range(), "Multiple default clauses are not allowed")
			}
			foundDefault = true
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TColon)
		} else {
			p.lexer.Expect(js_lexer.TCase)
			value = p.parseExpr(js_ast.LLowest)
			p.lexer.Expect(js_lexer.TColon)
		}

		body := []js_ast.Stmt{}
	caseBody:
		for {
			switch p.lexer.Token {
			case js_lexer.TCloseBrace, js_lexer.TCase, js_lexer.TDefault:
				break caseBody
			}
			body = append(body, p.parseStmt(parseStmtOpts{}))
		}

		cases = append(cases, js_ast.Case{ValueOrNil: value, Body: body})
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, Cases: cases}}
}

func (p *parser) parseTryStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	block := js_ast.SBlock{Stmts: p.parseBlock()}
	var catch *js_ast.Catch
	var finally *js_ast.Finally

	if p.lexer.Token == js_lexer.TCatch {
		catchLoc := p.lexer.Loc()
		p.lexer.Next()
		var bindingOrNil js_ast.Expr

		// The catch binding is optional
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next()
			bindingOrNil = p.parseBinding()
			p.lexer.Expect(js_lexer.TCloseParen)
		}

		catch = &js_ast.Catch{Loc: catchLoc, BindingOrNil: bindingOrNil, Block: js_ast.SBlock{Stmts: p.parseBlock()}}
	}

	if p.lexer.Token == js_lexer.TFinally || catch == nil {
		finallyLoc := p.lexer.Loc()
		p.lexer.Expect(js_lexer.TFinally)
		finally = &js_ast.Finally{Loc: finallyLoc, Block: js_ast.SBlock{Stmts: p.parseBlock()}}
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Block: block, Catch: catch, Finally: finally}}
}

func (p *parser) parseForStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()

	// "for await (let x of y) {}"
	isForAwait := p.lexer.IsContextualKeyword("await")
	if isForAwait {
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TOpenParen)

	var initOrNil js_ast.Stmt
	var testOrNil js_ast.Expr
	var updateOrNil js_ast.Expr

	// "in" expressions aren't allowed here
	oldAllowIn := p.allowIn
	p.allowIn = false

	initLoc := p.lexer.Loc()
	switch p.lexer.Token {
	case js_lexer.TVar:
		p.lexer.Next()
		initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: p.parseAndDeclareDecls()}}

	case js_lexer.TConst:
		p.lexer.Next()
		initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: p.parseAndDeclareDecls()}}

	case js_lexer.TSemicolon:

	default:
		var expr js_ast.Expr
		if p.lexer.IsContextualKeyword("let") {
			nameLoc := p.lexer.Loc()
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
				initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: p.parseAndDeclareDecls()}}
			default:
				expr = p.parseSuffix(js_ast.Expr{Loc: nameLoc, Data: &js_ast.EIdentifier{Name: "let"}}, js_ast.LLowest)
			}
		} else {
			expr = p.parseExpr(js_ast.LLowest)
		}
		if initOrNil.Data == nil {
			initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: expr}}
		}
	}

	p.allowIn = oldAllowIn

	// "for (a of b) {}"
	if p.lexer.IsContextualKeyword("of") {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{IsAwait: isForAwait, Init: initOrNil, Value: value, Body: body}}
	}

	// "for (a in b) {}"
	if p.lexer.Token == js_lexer.TIn {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: initOrNil, Value: value, Body: body}}
	}

	if isForAwait {
		p.lexer.ExpectedString("\"of\"")
	}

	p.lexer.Expect(js_lexer.TSemicolon)
	if p.lexer.Token != js_lexer.TSemicolon {
		testOrNil = p.parseExpr(js_ast.LLowest)
	}
	p.lexer.Expect(js_lexer.TSemicolon)
	if p.lexer.Token != js_lexer.TCloseParen {
		updateOrNil = p.parseExpr(js_ast.LLowest)
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmt(parseStmtOpts{})
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{InitOrNil: initOrNil, TestOrNil: testOrNil, UpdateOrNil: updateOrNil, Body: body}}
}

func (p *parser) parseAndDeclareDecls() []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		binding := p.parseBinding()
		var valueOrNil js_ast.Expr

		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			valueOrNil = p.parseExpr(js_ast.LComma)
		}

		decls = append(decls, js_ast.Decl{Binding: binding, ValueOrNil: valueOrNil})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

// Parses a binding pattern into the expression form that destructuring
// assignments use. Default values are "EBinary" assignments inside arrays and
// object property values, and "InitializerOrNil" for shorthand properties.
func (p *parser) parseBinding() js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.Expr{}
		isSingleLine := !p.lexer.HasNewlineBefore

		for p.lexer.Token != js_lexer.TCloseBracket {
			itemLoc := p.lexer.Loc()
			switch p.lexer.Token {
			case js_lexer.TComma:
				items = append(items, js_ast.Expr{Loc: itemLoc, Data: &js_ast.EMissing{}})

			case js_lexer.TDotDotDot:
				p.lexer.Next()
				items = append(items, js_ast.Expr{Loc: itemLoc, Data: &js_ast.ESpread{Value: p.parseBinding()}})

			default:
				items = append(items, p.parseBindingWithDefault())
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
			p.lexer.Next()
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items, IsSingleLine: isSingleLine}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.Property{}
		isSingleLine := !p.lexer.HasNewlineBefore

		for p.lexer.Token != js_lexer.TCloseBrace {
			properties = append(properties, p.parsePropertyBinding())

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
			p.lexer.Next()
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: properties, IsSingleLine: isSingleLine}}
	}

	p.lexer.Expect(js_lexer.TIdentifier)
	return js_ast.Expr{}
}

func (p *parser) parseBindingWithDefault() js_ast.Expr {
	binding := p.parseBinding()
	if p.lexer.Token != js_lexer.TEquals {
		return binding
	}
	p.lexer.Next()
	return js_ast.Assign(binding, p.parseExpr(js_ast.LComma))
}

func (p *parser) parsePropertyBinding() js_ast.Property {
	loc := p.lexer.Loc()

	if p.lexer.Token == js_lexer.TDotDotDot {
		p.lexer.Next()
		value := js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EIdentifier{Name: p.lexer.Identifier}}
		p.lexer.Expect(js_lexer.TIdentifier)
		return js_ast.Property{Loc: loc, Kind: js_ast.PropertySpread, ValueOrNil: value}
	}

	key, isComputed, preferQuotedKey := p.parsePropertyKey()

	if !isComputed && p.lexer.Token != js_lexer.TColon {
		// Shorthand properties must be plain identifiers
		str, ok := key.Data.(*js_ast.EString)
		if !ok || preferQuotedKey || !js_ast.IsIdentifier(str.Value) || js_lexer.Keywords[str.Value] != 0 {
			p.lexer.Expect(js_lexer.TColon)
		}

		var initializerOrNil js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			initializerOrNil = p.parseExpr(js_ast.LComma)
		}

		return js_ast.Property{
			Loc:              loc,
			Key:              key,
			ValueOrNil:       js_ast.Expr{Loc: key.Loc, Data: &js_ast.EIdentifier{Name: str.Value}},
			InitializerOrNil: initializerOrNil,
			WasShorthand:     true,
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseBindingWithDefault()
	return js_ast.Property{
		Loc:             loc,
		Key:             key,
		ValueOrNil:      value,
		IsComputed:      isComputed,
		PreferQuotedKey: preferQuotedKey,
	}
}

// Property keys are "EString" for names, "ENumber" and "EBigInt" for numeric
// literals, and any expression when computed
func (p *parser) parsePropertyKey() (key js_ast.Expr, isComputed bool, preferQuotedKey bool) {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		preferQuotedKey = true
		p.lexer.Next()

	case js_lexer.TBigIntegerLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: p.lexer.Identifier}}
		p.lexer.Next()

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		oldAllowIn := p.allowIn
		p.allowIn = true
		key = p.parseExpr(js_ast.LComma)
		p.allowIn = oldAllowIn
		p.lexer.Expect(js_lexer.TCloseBracket)
		isComputed = true

	default:
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: p.lexer.Identifier}}
		p.lexer.Next()
	}

	return
}

func (p *parser) parseFn(name *js_ast.LocName, isAsync bool, isGenerator bool) js_ast.Fn {
	oldFn := p.fn
	p.fn = fnContext{allowAwait: isAsync, allowYield: isGenerator}
	args, hasRestArg := p.parseFnArgs()
	body := p.parseFnBody()
	p.fn = oldFn

	return js_ast.Fn{
		Name:        name,
		Args:        args,
		Body:        body,
		IsAsync:     isAsync,
		IsGenerator: isGenerator,
		HasRestArg:  hasRestArg,
	}
}

func (p *parser) parseFnArgs() (args []js_ast.Arg, hasRestArg bool) {
	p.lexer.Expect(js_lexer.TOpenParen)

	for p.lexer.Token != js_lexer.TCloseParen {
		// Skip over "..." arguments
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			hasRestArg = true
		}

		binding := p.parseBinding()
		var defaultOrNil js_ast.Expr
		if !hasRestArg && p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			defaultOrNil = p.parseExpr(js_ast.LComma)
		}
		args = append(args, js_ast.Arg{Binding: binding, DefaultOrNil: defaultOrNil})

		// The rest argument must be last
		if p.lexer.Token != js_lexer.TComma || hasRestArg {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	return
}

func (p *parser) parseFnBody() js_ast.FnBody {
	loc := p.lexer.Loc()
	oldAllowIn := p.allowIn
	p.allowIn = true
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{allowDirectivePrologue: true})
	p.lexer.Next()
	p.allowIn = oldAllowIn
	return js_ast.FnBody{Loc: loc, Stmts: stmts}
}

func (p *parser) parseClass(isStmt bool) js_ast.Class {
	var name *js_ast.LocName
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	} else if isStmt {
		p.lexer.Expect(js_lexer.TIdentifier)
	}

	var extendsOrNil js_ast.Expr
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		extendsOrNil = p.parseExpr(js_ast.LNew)
	}

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	properties := []js_ast.Property{}

	// Allow "in" inside class bodies
	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		properties = append(properties, p.parseProperty(true /* isClass */))
	}

	p.allowIn = oldAllowIn
	p.lexer.Expect(js_lexer.TCloseBrace)
	return js_ast.Class{Name: name, ExtendsOrNil: extendsOrNil, BodyLoc: bodyLoc, Properties: properties}
}

// A contextual modifier like "get" is only a modifier if a property key
// follows it. Otherwise it is the key itself ("{ get: 1 }" or "{ get() {} }").
func (p *parser) isPropertyKeyStart() bool {
	switch p.lexer.Token {
	case js_lexer.TOpenBracket, js_lexer.TStringLiteral, js_lexer.TNumericLiteral,
		js_lexer.TBigIntegerLiteral, js_lexer.TPrivateIdentifier, js_lexer.TAsterisk:
		return true
	}
	return p.lexer.IsIdentifierOrKeyword()
}

func (p *parser) parseProperty(isClass bool) js_ast.Property {
	loc := p.lexer.Loc()
	kind := js_ast.PropertyNormal
	isStatic := false
	isAsync := false
	isGenerator := false

	if !isClass && p.lexer.Token == js_lexer.TDotDotDot {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LComma)
		return js_ast.Property{Loc: loc, Kind: js_ast.PropertySpread, ValueOrNil: value}
	}

	// Modifiers are consumed one at a time, and each one only counts as a
	// modifier if another key follows it
	for p.lexer.Token == js_lexer.TIdentifier && kind == js_ast.PropertyNormal && !isAsync {
		raw := p.lexer.Raw()
		keyRange := p.lexer.Range()

		if raw == "static" && isClass && !isStatic {
			p.lexer.Next()

			// "static {}"
			if p.lexer.Token == js_lexer.TOpenBrace {
				blockLoc := p.lexer.Loc()
				oldFn := p.fn
				p.fn = fnContext{}
				stmts := p.parseBlock()
				p.fn = oldFn
				return js_ast.Property{
					Loc:              loc,
					Kind:             js_ast.PropertyClassStaticBlock,
					ClassStaticBlock: &js_ast.ClassStaticBlock{Loc: blockLoc, Stmts: stmts},
				}
			}

			if !p.isPropertyKeyStart() {
				return p.parsePropertyRest(loc, isClass, p.namedKey(keyRange, "static"), false, false, kind, false, false, false)
			}
			isStatic = true
			continue
		}

		if raw != "get" && raw != "set" && raw != "async" {
			break
		}

		p.lexer.Next()
		if !p.isPropertyKeyStart() || (raw == "async" && p.lexer.HasNewlineBefore) {
			return p.parsePropertyRest(loc, isClass, p.namedKey(keyRange, raw), false, false, kind, isStatic, false, false)
		}

		switch raw {
		case "get":
			kind = js_ast.PropertyGet
		case "set":
			kind = js_ast.PropertySet
		case "async":
			isAsync = true
		}
	}

	if p.lexer.Token == js_lexer.TAsterisk && kind == js_ast.PropertyNormal {
		p.lexer.Next()
		isGenerator = true
	}

	var key js_ast.Expr
	var isComputed, preferQuotedKey bool
	if p.lexer.Token == js_lexer.TPrivateIdentifier {
		if !isClass {
			p.lexer.Unexpected()
		}
		key = js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
		p.lexer.Next()
	} else {
		key, isComputed, preferQuotedKey = p.parsePropertyKey()
	}

	return p.parsePropertyRest(loc, isClass, key, isComputed, preferQuotedKey, kind, isStatic, isAsync, isGenerator)
}

func (p *parser) namedKey(r logger.Range, name string) js_ast.Expr {
	return js_ast.Expr{Loc: r.Loc, Data: &js_ast.EString{Value: name}}
}

func (p *parser) parsePropertyRest(
	loc logger.Loc, isClass bool, key js_ast.Expr, isComputed bool, preferQuotedKey bool,
	kind js_ast.PropertyKind, isStatic bool, isAsync bool, isGenerator bool,
) js_ast.Property {
	property := js_ast.Property{
		Loc:             loc,
		Key:             key,
		Kind:            kind,
		IsComputed:      isComputed,
		IsStatic:        isStatic,
		PreferQuotedKey: preferQuotedKey,
	}

	// Methods, getters and setters
	if p.lexer.Token == js_lexer.TOpenParen || kind != js_ast.PropertyNormal || isAsync || isGenerator {
		fnLoc := p.lexer.Loc()
		fn := p.parseFn(nil, isAsync, isGenerator)
		property.IsMethod = true
		property.ValueOrNil = js_ast.Expr{Loc: fnLoc, Data: &js_ast.EFunction{Fn: fn}}
		return property
	}

	if isClass {
		// Class fields
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			oldFn := p.fn
			p.fn = fnContext{}
			property.InitializerOrNil = p.parseExpr(js_ast.LComma)
			p.fn = oldFn
		}
		p.lexer.ExpectOrInsertSemicolon()
		return property
	}

	// "{ a: b }"
	if isComputed || p.lexer.Token == js_lexer.TColon {
		p.lexer.Expect(js_lexer.TColon)
		property.ValueOrNil = p.parseExpr(js_ast.LComma)
		return property
	}

	// Shorthand properties must be plain identifiers
	str, ok := key.Data.(*js_ast.EString)
	if !ok || preferQuotedKey || !js_ast.IsIdentifier(str.Value) || js_lexer.Keywords[str.Value] != 0 {
		p.lexer.Expect(js_lexer.TColon)
	}
	property.WasShorthand = true
	property.ValueOrNil = js_ast.Expr{Loc: key.Loc, Data: &js_ast.EIdentifier{Name: str.Value}}

	// "({ a = 1 } = b)" is only valid as a pattern, but that is checked later
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		property.InitializerOrNil = p.parseExpr(js_ast.LComma)
	}
	return property
}

func (p *parser) parseImportStmt(loc logger.Loc) js_ast.Stmt {
	stmt := &js_ast.SImport{}

	switch p.lexer.Token {
	case js_lexer.TStringLiteral:
		// "import 'path'"

	case js_lexer.TAsterisk:
		// "import * as ns from 'path'"
		p.lexer.Next()
		stmt.NamespaceNameOrNil = p.parseImportNamespace()
		p.lexer.ExpectContextualKeyword("from")

	case js_lexer.TOpenBrace:
		// "import {item1, item2} from 'path'"
		items := p.parseImportClause()
		stmt.Items = &items
		p.lexer.ExpectContextualKeyword("from")

	case js_lexer.TIdentifier:
		// "import defaultItem from 'path'"
		stmt.DefaultNameOrNil = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TAsterisk:
				// "import defaultItem, * as ns from 'path'"
				p.lexer.Next()
				stmt.NamespaceNameOrNil = p.parseImportNamespace()

			case js_lexer.TOpenBrace:
				// "import defaultItem, {item1, item2} from 'path'"
				items := p.parseImportClause()
				stmt.Items = &items

			default:
				p.lexer.Unexpected()
			}
		}

		p.lexer.ExpectContextualKeyword("from")

	default:
		p.lexer.Unexpected()
	}

	stmt.Path = p.parsePath()
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: stmt}
}

func (p *parser) parseImportNamespace() *js_ast.LocName {
	p.lexer.ExpectContextualKeyword("as")
	name := &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
	p.lexer.Expect(js_lexer.TIdentifier)
	return name
}

func (p *parser) parsePath() string {
	if p.lexer.Token != js_lexer.TStringLiteral {
		p.lexer.Expect(js_lexer.TStringLiteral)
	}
	path := p.lexer.StringLiteral
	p.lexer.Next()
	return path
}

// Either an identifier, a keyword, or a string
func (p *parser) parseClauseAlias() string {
	if p.lexer.Token == js_lexer.TStringLiteral {
		alias := p.lexer.StringLiteral
		p.lexer.Next()
		return alias
	}
	if !p.lexer.IsIdentifierOrKeyword() {
		p.lexer.Expect(js_lexer.TIdentifier)
	}
	alias := p.lexer.Identifier
	p.lexer.Next()
	return alias
}

func (p *parser) parseImportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		aliasLoc := p.lexer.Loc()
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		alias := p.parseClauseAlias()
		name := alias

		// "import { a as b } from 'path'"
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			name = p.lexer.Identifier
			p.lexer.Expect(js_lexer.TIdentifier)
		} else if !isIdentifier {
			// "import { default } from 'path'" is not allowed
			p.lexer.ExpectedString("\"as\"")
		}

		items = append(items, js_ast.ClauseItem{Alias: alias, AliasLoc: aliasLoc, Name: name})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parseExportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		nameLoc := p.lexer.Loc()
		name := p.parseClauseAlias()
		alias := name

		// "export { a as b }"
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			nameLoc = p.lexer.Loc()
			alias = p.parseClauseAlias()
		}

		items = append(items, js_ast.ClauseItem{Alias: alias, AliasLoc: nameLoc, Name: name})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parseExportStmt(opts parseStmtOpts) js_ast.Stmt {
	loc := p.lexer.Loc()
	p.lexer.Next()

	if !opts.isModuleScope {
		p.addRangeError(logger.Range{Loc: loc, Len: 6}, "Unexpected \"export\"")
	}

	switch p.lexer.Token {
	case js_lexer.TVar, js_lexer.TConst, js_lexer.TFunction, js_lexer.TClass:
		stmt := p.parseStmt(parseStmtOpts{})
		markExported(stmt)
		return js_ast.Stmt{Loc: loc, Data: stmt.Data}

	case js_lexer.TIdentifier:
		if p.lexer.IsContextualKeyword("let") || p.lexer.IsContextualKeyword("async") {
			stmt := p.parseStmt(parseStmtOpts{})
			if !markExported(stmt) {
				p.addRangeError(logger.Range{Loc: stmt.Loc}, "Expected a declaration after \"export\"")
			}
			return js_ast.Stmt{Loc: loc, Data: stmt.Data}
		}
		p.lexer.Unexpected()

	case js_lexer.TDefault:
		p.lexer.Next()
		valueLoc := p.lexer.Loc()

		switch {
		case p.lexer.Token == js_lexer.TFunction:
			p.lexer.Next()
			value := p.parseFnStmt(valueLoc, false /* isAsync */)
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}

		case p.lexer.Token == js_lexer.TClass:
			p.lexer.Next()
			class := p.parseClass(false /* isStmt */)
			value := js_ast.Stmt{Loc: valueLoc, Data: &js_ast.SClass{Class: class}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}

		case p.lexer.IsContextualKeyword("async"):
			asyncRange := p.lexer.Range()
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				value := p.parseFnStmt(valueLoc, true /* isAsync */)
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}
			}
			expr := p.parseSuffix(p.parseAsyncPrefixExpr(asyncRange, js_ast.LComma), js_ast.LComma)
			p.lexer.ExpectOrInsertSemicolon()
			value := js_ast.Stmt{Loc: valueLoc, Data: &js_ast.SExpr{Value: expr}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}
		}

		expr := p.parseExpr(js_ast.LComma)
		p.lexer.ExpectOrInsertSemicolon()
		value := js_ast.Stmt{Loc: valueLoc, Data: &js_ast.SExpr{Value: expr}}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}

	case js_lexer.TAsterisk:
		// "export * from 'path'"
		// "export * as ns from 'path'"
		p.lexer.Next()
		var aliasOrNil *js_ast.ClauseItem
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			aliasLoc := p.lexer.Loc()
			alias := p.parseClauseAlias()
			aliasOrNil = &js_ast.ClauseItem{Alias: alias, AliasLoc: aliasLoc, Name: alias}
		}
		p.lexer.ExpectContextualKeyword("from")
		path := p.parsePath()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportStar{AliasOrNil: aliasOrNil, Path: path}}

	case js_lexer.TOpenBrace:
		items := p.parseExportClause()
		if p.lexer.IsContextualKeyword("from") {
			p.lexer.Next()
			path := p.parsePath()
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportFrom{Items: items, Path: path}}
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportClause{Items: items}}
	}

	p.lexer.Unexpected()
	return js_ast.Stmt{}
}

func markExported(stmt js_ast.Stmt) bool {
	switch s := stmt.Data.(type) {
	case *js_ast.SLocal:
		s.IsExport = true
	case *js_ast.SFunction:
		s.IsExport = true
	case *js_ast.SClass:
		s.IsExport = true
	default:
		return false
	}
	return true
}

func (p *parser) parseTemplateParts() (headLoc logger.Loc, headRaw string, parts []js_ast.TemplatePart) {
	headLoc = p.lexer.Loc()
	headRaw = p.lexer.RawTemplateContents()

	if p.lexer.Token == js_lexer.TNoSubstitutionTemplateLiteral {
		p.lexer.Next()
		return
	}

	oldAllowIn := p.allowIn
	p.allowIn = true

	for {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		tailLoc := p.lexer.Loc()
		p.lexer.RescanCloseBraceAsTemplateToken()
		tailRaw := p.lexer.RawTemplateContents()
		parts = append(parts, js_ast.TemplatePart{Value: value, TailLoc: tailLoc, TailRaw: tailRaw})
		if p.lexer.Token == js_lexer.TTemplateTail {
			p.lexer.Next()
			break
		}
	}

	p.allowIn = oldAllowIn
	return
}

func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	return p.parseSuffix(p.parsePrefix(level), level)
}

func (p *parser) parsePrefix(level js_ast.L) js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		p.lexer.Next()
		switch p.lexer.Token {
		case js_lexer.TOpenParen, js_lexer.TDot, js_lexer.TOpenBracket:
		default:
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}

	case js_lexer.TOpenParen:
		return p.parseParenExpr(loc, level, false /* isAsync */)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}

	case js_lexer.TPrivateIdentifier:
		// "#foo in this"
		name := p.lexer.Identifier
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TIn {
			p.lexer.Expected(js_lexer.TIn)
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EPrivateIdentifier{Name: name}}

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		nameRange := p.lexer.Range()
		raw := p.lexer.Raw()
		p.lexer.Next()

		switch raw {
		case "async":
			return p.parseAsyncPrefixExpr(nameRange, level)

		case "await":
			if p.fn.allowAwait {
				value := p.parseExpr(js_ast.LPrefix)
				if p.lexer.Token == js_lexer.TAsteriskAsterisk {
					p.lexer.Unexpected()
				}
				return js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: value}}
			}

		case "yield":
			if p.fn.allowYield {
				if level > js_ast.LAssign {
					p.addRangeError(nameRange, "Cannot use a \"yield\" expression here without parentheses")
				}
				return p.parseYieldExpr(loc)
			}
		}

		// "a => {}"
		if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
			p.checkNoNewlineBeforeArrow()
			args := []js_ast.Arg{{Binding: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}}}
			return js_ast.Expr{Loc: loc, Data: p.parseArrowBody(args, false /* hasRestArg */, false /* isAsync */)}
		}

		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}

	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: value}}

	case js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead:
		headLoc, headRaw, parts := p.parseTemplateParts()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadLoc: headLoc, HeadRaw: headRaw, Parts: parts}}

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: value}}

	case js_lexer.TBigIntegerLiteral:
		value := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		value := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TVoid:
		return p.parseUnaryExpr(loc, js_ast.UnOpVoid)

	case js_lexer.TTypeof:
		return p.parseUnaryExpr(loc, js_ast.UnOpTypeof)

	case js_lexer.TDelete:
		return p.parseUnaryExpr(loc, js_ast.UnOpDelete)

	case js_lexer.TPlus:
		return p.parseUnaryExpr(loc, js_ast.UnOpPos)

	case js_lexer.TMinus:
		return p.parseUnaryExpr(loc, js_ast.UnOpNeg)

	case js_lexer.TTilde:
		return p.parseUnaryExpr(loc, js_ast.UnOpCpl)

	case js_lexer.TExclamation:
		return p.parseUnaryExpr(loc, js_ast.UnOpNot)

	case js_lexer.TMinusMinus:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreDec, Value: p.parseExpr(js_ast.LPrefix)}}

	case js_lexer.TPlusPlus:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreInc, Value: p.parseExpr(js_ast.LPrefix)}}

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnExpr(loc, false /* isAsync */)

	case js_lexer.TClass:
		p.lexer.Next()
		class := p.parseClass(false /* isStmt */)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}

	case js_lexer.TNew:
		p.lexer.Next()

		// "new.target"
		if p.lexer.Token == js_lexer.TDot {
			p.lexer.Next()
			if !p.lexer.IsContextualKeyword("target") {
				p.lexer.Unexpected()
			}
			p.lexer.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENewTarget{}}
		}

		target := p.parseExpr(js_ast.LMember)
		var args []js_ast.Expr
		if p.lexer.Token == js_lexer.TOpenParen {
			args = p.parseCallArgs()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Target: target, Args: args}}

	case js_lexer.TOpenBracket:
		return p.parseArrayExpr(loc)

	case js_lexer.TOpenBrace:
		return p.parseObjectExpr(loc)

	case js_lexer.TImport:
		p.lexer.Next()
		return p.parseImportExpr(loc)
	}

	p.lexer.Unexpected()
	return js_ast.Expr{}
}

func (p *parser) parseUnaryExpr(loc logger.Loc, op js_ast.OpCode) js_ast.Expr {
	p.lexer.Next()
	value := p.parseExpr(js_ast.LPrefix)

	// "-a ** b" is ambiguous and therefore not allowed
	if p.lexer.Token == js_lexer.TAsteriskAsterisk {
		p.lexer.Unexpected()
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: value}}
}

func (p *parser) parseYieldExpr(loc logger.Loc) js_ast.Expr {
	var valueOrNil js_ast.Expr
	isStar := false

	if p.lexer.Token == js_lexer.TAsterisk {
		isStar = true
		p.lexer.Next()
		valueOrNil = p.parseExpr(js_ast.LYield)
	} else if !p.lexer.HasNewlineBefore {
		switch p.lexer.Token {
		case js_lexer.TCloseBrace, js_lexer.TCloseBracket, js_lexer.TCloseParen,
			js_lexer.TColon, js_lexer.TComma, js_lexer.TSemicolon, js_lexer.TEndOfFile:

		default:
			valueOrNil = p.parseExpr(js_ast.LYield)
		}
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{ValueOrNil: valueOrNil, IsStar: isStar}}
}

func (p *parser) parseFnExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	var name *js_ast.LocName
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocName{Loc: p.lexer.Loc(), Name: p.lexer.Identifier}
		p.lexer.Next()
	}

	fn := p.parseFn(name, isAsync, isGenerator)
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
}

// This assumes the "async" keyword has already been consumed
func (p *parser) parseAsyncPrefixExpr(asyncRange logger.Range, level js_ast.L) js_ast.Expr {
	if !p.lexer.HasNewlineBefore {
		switch p.lexer.Token {
		case js_lexer.TFunction:
			// "async function() {}"
			p.lexer.Next()
			return p.parseFnExpr(asyncRange.Loc, true /* isAsync */)

		case js_lexer.TIdentifier:
			// "async x => {}"
			if level <= js_ast.LAssign {
				binding := js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EIdentifier{Name: p.lexer.Identifier}}
				p.lexer.Next()
				if p.lexer.Token != js_lexer.TEqualsGreaterThan {
					p.lexer.Expected(js_lexer.TEqualsGreaterThan)
				}
				p.checkNoNewlineBeforeArrow()
				arrow := p.parseArrowBody([]js_ast.Arg{{Binding: binding}}, false /* hasRestArg */, true /* isAsync */)
				return js_ast.Expr{Loc: asyncRange.Loc, Data: arrow}
			}

		case js_lexer.TOpenParen:
			// "async()"
			// "async () => {}"
			return p.parseParenExpr(asyncRange.Loc, level, true /* isAsync */)
		}
	}

	// "async => {}"
	if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
		p.checkNoNewlineBeforeArrow()
		args := []js_ast.Arg{{Binding: js_ast.Expr{Loc: asyncRange.Loc, Data: &js_ast.EIdentifier{Name: "async"}}}}
		return js_ast.Expr{Loc: asyncRange.Loc, Data: p.parseArrowBody(args, false /* hasRestArg */, false /* isAsync */)}
	}

	// "async"
	return js_ast.Expr{Loc: asyncRange.Loc, Data: &js_ast.EIdentifier{Name: "async"}}
}

func (p *parser) checkNoNewlineBeforeArrow() {
	if p.lexer.HasNewlineBefore {
		p.addRangeError(p.lexer.Range(), "Unexpected newline before \"=>\"")
	}
}

// This handles both parenthesized expressions and arrow function arguments,
// since which one it is can only be known once the closing parenthesis has
// been reached. With "isAsync" it may also turn out to be a call to a
// function named "async".
func (p *parser) parseParenExpr(loc logger.Loc, level js_ast.L, isAsync bool) js_ast.Expr {
	items := []js_ast.Expr{}
	spreadRange := logger.Range{}
	commaRange := logger.Range{}

	p.lexer.Expect(js_lexer.TOpenParen)

	// Allow "in" inside parentheses
	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseParen {
		itemLoc := p.lexer.Loc()

		if p.lexer.Token == js_lexer.TDotDotDot {
			spreadRange = p.lexer.Range()
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			items = append(items, js_ast.Expr{Loc: itemLoc, Data: &js_ast.ESpread{Value: value}})
		} else {
			items = append(items, p.parseExpr(js_ast.LComma))
		}

		if p.lexer.Token != js_lexer.TComma {
			commaRange = logger.Range{}
			break
		}
		commaRange = p.lexer.Range()
		p.lexer.Next()
	}

	closeParenRange := p.lexer.Range()
	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn

	// "(a, b) => {}"
	if p.lexer.Token == js_lexer.TEqualsGreaterThan {
		if level > js_ast.LAssign {
			p.lexer.Unexpected()
		}
		p.checkNoNewlineBeforeArrow()
		args, hasRestArg := p.convertExprsToArgs(items, commaRange)
		return js_ast.Expr{Loc: loc, Data: p.parseArrowBody(args, hasRestArg, isAsync)}
	}

	// "async(a, b)"
	if isAsync {
		target := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: "async"}}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{Target: target, Args: items}}
	}

	// "(a, b)"
	if len(items) == 0 {
		p.addRangeError(closeParenRange, "Unexpected \")\"")
	}
	if spreadRange.Len > 0 {
		p.addRangeError(spreadRange, "Unexpected \"...\"")
	}
	if commaRange.Len > 0 {
		p.addRangeError(closeParenRange, "Unexpected \")\"")
	}
	value := items[0]
	for _, item := range items[1:] {
		value = js_ast.JoinWithComma(value, item)
	}
	return value
}

func (p *parser) convertExprsToArgs(items []js_ast.Expr, trailingCommaRange logger.Range) (args []js_ast.Arg, hasRestArg bool) {
	for i, item := range items {
		if spread, ok := item.Data.(*js_ast.ESpread); ok {
			// The rest argument must be last and can't have a trailing comma
			if i+1 < len(items) || trailingCommaRange.Len > 0 {
				p.addRangeError(logger.Range{Loc: item.Loc, Len: 3}, "Unexpected \"...\"")
			}
			hasRestArg = true
			item = spread.Value
		}

		var defaultOrNil js_ast.Expr
		if binary, ok := item.Data.(*js_ast.EBinary); ok && binary.Op == js_ast.BinOpAssign && !hasRestArg {
			item = binary.Left
			defaultOrNil = binary.Right
		}

		if !isValidBinding(item) {
			p.addRangeError(logger.Range{Loc: item.Loc}, "Invalid binding pattern")
		}
		args = append(args, js_ast.Arg{Binding: item, DefaultOrNil: defaultOrNil})
	}
	return
}

func isValidBinding(expr js_ast.Expr) bool {
	switch expr.Data.(type) {
	case *js_ast.EIdentifier, *js_ast.EArray, *js_ast.EObject:
		return true
	}
	return false
}

// This assumes the "=>" token is the current token
func (p *parser) parseArrowBody(args []js_ast.Arg, hasRestArg bool, isAsync bool) *js_ast.EArrow {
	p.lexer.Expect(js_lexer.TEqualsGreaterThan)

	oldFn := p.fn
	p.fn = fnContext{allowAwait: isAsync}
	defer func() { p.fn = oldFn }()

	arrow := &js_ast.EArrow{Args: args, IsAsync: isAsync, HasRestArg: hasRestArg}

	if p.lexer.Token == js_lexer.TOpenBrace {
		arrow.Body = p.parseFnBody()
		return arrow
	}

	value := p.parseExpr(js_ast.LComma)
	arrow.Body = js_ast.FnBody{Loc: value.Loc, Stmts: []js_ast.Stmt{{Loc: value.Loc, Data: &js_ast.SReturn{ValueOrNil: value}}}}
	arrow.PreferExpr = true
	return arrow
}

func (p *parser) parseArrayExpr(loc logger.Loc) js_ast.Expr {
	p.lexer.Next()
	isSingleLine := !p.lexer.HasNewlineBefore
	items := []js_ast.Expr{}

	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseBracket {
		switch p.lexer.Token {
		case js_lexer.TComma:
			items = append(items, js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EMissing{}})

		case js_lexer.TDotDotDot:
			spreadLoc := p.lexer.Loc()
			p.lexer.Next()
			value := p.parseExpr(js_ast.LComma)
			items = append(items, js_ast.Expr{Loc: spreadLoc, Data: &js_ast.ESpread{Value: value}})

		default:
			items = append(items, p.parseExpr(js_ast.LComma))
		}

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
	}

	if p.lexer.HasNewlineBefore {
		isSingleLine = false
	}
	p.lexer.Expect(js_lexer.TCloseBracket)
	p.allowIn = oldAllowIn
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items, IsSingleLine: isSingleLine}}
}

func (p *parser) parseObjectExpr(loc logger.Loc) js_ast.Expr {
	p.lexer.Next()
	isSingleLine := !p.lexer.HasNewlineBefore
	properties := []js_ast.Property{}

	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseBrace {
		properties = append(properties, p.parseProperty(false /* isClass */))

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
	}

	if p.lexer.HasNewlineBefore {
		isSingleLine = false
	}
	p.lexer.Expect(js_lexer.TCloseBrace)
	p.allowIn = oldAllowIn
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: properties, IsSingleLine: isSingleLine}}
}

// This assumes the "import" keyword has already been consumed
func (p *parser) parseImportExpr(loc logger.Loc) js_ast.Expr {
	// "import.meta"
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		if !p.lexer.IsContextualKeyword("meta") {
			p.lexer.ExpectedString("\"meta\"")
		}
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EImportMeta{}}
	}

	// "import(path)"
	// "import(path, options)"
	p.lexer.Expect(js_lexer.TOpenParen)
	oldAllowIn := p.allowIn
	p.allowIn = true

	value := p.parseExpr(js_ast.LComma)
	var optionsOrNil js_ast.Expr
	if p.lexer.Token == js_lexer.TComma {
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TCloseParen {
			optionsOrNil = p.parseExpr(js_ast.LComma)
			if p.lexer.Token == js_lexer.TComma {
				p.lexer.Next()
			}
		}
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn
	return js_ast.Expr{Loc: loc, Data: &js_ast.EImportCall{Expr: value, OptionsOrNil: optionsOrNil}}
}

func (p *parser) parseCallArgs() []js_ast.Expr {
	// Allow "in" inside call arguments
	oldAllowIn := p.allowIn
	p.allowIn = true

	args := []js_ast.Expr{}
	p.lexer.Expect(js_lexer.TOpenParen)

	for p.lexer.Token != js_lexer.TCloseParen {
		loc := p.lexer.Loc()
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			args = append(args, js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: p.parseExpr(js_ast.LComma)}})
		} else {
			args = append(args, p.parseExpr(js_ast.LComma))
		}

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn
	return args
}

type binaryOp struct {
	op    js_ast.OpCode
	level js_ast.L
}

// Binary operators that are parsed the same way: the left operand binds
// tighter than "level" and the right operand is parsed at that level. The
// right-associative ones parse their right operand one level lower.
var binaryOps = map[js_lexer.T]binaryOp{
	js_lexer.TPlus:                              {js_ast.BinOpAdd, js_ast.LAdd},
	js_lexer.TMinus:                             {js_ast.BinOpSub, js_ast.LAdd},
	js_lexer.TAsterisk:                          {js_ast.BinOpMul, js_ast.LMultiply},
	js_lexer.TSlash:                             {js_ast.BinOpDiv, js_ast.LMultiply},
	js_lexer.TPercent:                           {js_ast.BinOpRem, js_ast.LMultiply},
	js_lexer.TAsteriskAsterisk:                  {js_ast.BinOpPow, js_ast.LExponentiation},
	js_lexer.TLessThan:                          {js_ast.BinOpLt, js_ast.LCompare},
	js_lexer.TLessThanEquals:                    {js_ast.BinOpLe, js_ast.LCompare},
	js_lexer.TGreaterThan:                       {js_ast.BinOpGt, js_ast.LCompare},
	js_lexer.TGreaterThanEquals:                 {js_ast.BinOpGe, js_ast.LCompare},
	js_lexer.TIn:                                {js_ast.BinOpIn, js_ast.LCompare},
	js_lexer.TInstanceof:                        {js_ast.BinOpInstanceof, js_ast.LCompare},
	js_lexer.TLessThanLessThan:                  {js_ast.BinOpShl, js_ast.LShift},
	js_lexer.TGreaterThanGreaterThan:            {js_ast.BinOpShr, js_ast.LShift},
	js_lexer.TGreaterThanGreaterThanGreaterThan: {js_ast.BinOpUShr, js_ast.LShift},
	js_lexer.TEqualsEquals:                      {js_ast.BinOpLooseEq, js_ast.LEquals},
	js_lexer.TExclamationEquals:                 {js_ast.BinOpLooseNe, js_ast.LEquals},
	js_lexer.TEqualsEqualsEquals:                {js_ast.BinOpStrictEq, js_ast.LEquals},
	js_lexer.TExclamationEqualsEquals:           {js_ast.BinOpStrictNe, js_ast.LEquals},
	js_lexer.TQuestionQuestion:                  {js_ast.BinOpNullishCoalescing, js_ast.LNullishCoalescing},
	js_lexer.TBarBar:                            {js_ast.BinOpLogicalOr, js_ast.LLogicalOr},
	js_lexer.TAmpersandAmpersand:                {js_ast.BinOpLogicalAnd, js_ast.LLogicalAnd},
	js_lexer.TBar:                               {js_ast.BinOpBitwiseOr, js_ast.LBitwiseOr},
	js_lexer.TAmpersand:                         {js_ast.BinOpBitwiseAnd, js_ast.LBitwiseAnd},
	js_lexer.TCaret:                             {js_ast.BinOpBitwiseXor, js_ast.LBitwiseXor},

	// Assignments
	js_lexer.TEquals:                                  {js_ast.BinOpAssign, js_ast.LAssign},
	js_lexer.TPlusEquals:                              {js_ast.BinOpAddAssign, js_ast.LAssign},
	js_lexer.TMinusEquals:                             {js_ast.BinOpSubAssign, js_ast.LAssign},
	js_lexer.TAsteriskEquals:                          {js_ast.BinOpMulAssign, js_ast.LAssign},
	js_lexer.TSlashEquals:                             {js_ast.BinOpDivAssign, js_ast.LAssign},
	js_lexer.TPercentEquals:                           {js_ast.BinOpRemAssign, js_ast.LAssign},
	js_lexer.TAsteriskAsteriskEquals:                  {js_ast.BinOpPowAssign, js_ast.LAssign},
	js_lexer.TLessThanLessThanEquals:                  {js_ast.BinOpShlAssign, js_ast.LAssign},
	js_lexer.TGreaterThanGreaterThanEquals:            {js_ast.BinOpShrAssign, js_ast.LAssign},
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: {js_ast.BinOpUShrAssign, js_ast.LAssign},
	js_lexer.TBarEquals:                               {js_ast.BinOpBitwiseOrAssign, js_ast.LAssign},
	js_lexer.TAmpersandEquals:                         {js_ast.BinOpBitwiseAndAssign, js_ast.LAssign},
	js_lexer.TCaretEquals:                             {js_ast.BinOpBitwiseXorAssign, js_ast.LAssign},
	js_lexer.TQuestionQuestionEquals:                  {js_ast.BinOpNullishCoalescingAssign, js_ast.LAssign},
	js_lexer.TBarBarEquals:                            {js_ast.BinOpLogicalOrAssign, js_ast.LAssign},
	js_lexer.TAmpersandAmpersandEquals:                {js_ast.BinOpLogicalAndAssign, js_ast.LAssign},
}

func (p *parser) parseSuffix(left js_ast.Expr, level js_ast.L) js_ast.Expr {
	optionalChain := js_ast.OptionalChainNone

	for {
		// Reset the optional chain flag by default. That way we won't accidentally
		// treat "c.d" as OptionalChainContinue in "a?.b + c.d".
		oldOptionalChain := optionalChain
		optionalChain = js_ast.OptionalChainNone

		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()

			if p.lexer.Token == js_lexer.TPrivateIdentifier {
				// "a.#b"
				// "a?.b.#c"
				if _, ok := left.Data.(*js_ast.ESuper); ok {
					p.lexer.Expected(js_lexer.TIdentifier)
				}
				index := js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, OptionalChain: oldOptionalChain}}
			} else {
				// "a.b"
				// "a?.b.c"
				if !p.lexer.IsIdentifierOrKeyword() {
					p.lexer.Expect(js_lexer.TIdentifier)
				}
				name := p.lexer.Identifier
				nameLoc := p.lexer.Loc()
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{
					Target:        left,
					Name:          name,
					NameLoc:       nameLoc,
					OptionalChain: oldOptionalChain,
				}}
			}

			optionalChain = oldOptionalChain

		case js_lexer.TQuestionDot:
			p.lexer.Next()

			switch p.lexer.Token {
			case js_lexer.TOpenBracket:
				// "a?.[b]"
				p.lexer.Next()
				oldAllowIn := p.allowIn
				p.allowIn = true
				index := p.parseExpr(js_ast.LLowest)
				p.allowIn = oldAllowIn
				p.lexer.Expect(js_lexer.TCloseBracket)
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, OptionalChain: js_ast.OptionalChainStart}}

			case js_lexer.TOpenParen:
				// "a?.()"
				if level >= js_ast.LCall {
					return left
				}
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: p.parseCallArgs(), OptionalChain: js_ast.OptionalChainStart}}

			case js_lexer.TPrivateIdentifier:
				// "a?.#b"
				index := js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, OptionalChain: js_ast.OptionalChainStart}}

			default:
				// "a?.b"
				if !p.lexer.IsIdentifierOrKeyword() {
					p.lexer.Expect(js_lexer.TIdentifier)
				}
				name := p.lexer.Identifier
				nameLoc := p.lexer.Loc()
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{
					Target:        left,
					Name:          name,
					NameLoc:       nameLoc,
					OptionalChain: js_ast.OptionalChainStart,
				}}
			}

			optionalChain = js_ast.OptionalChainContinue

		case js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead:
			if oldOptionalChain != js_ast.OptionalChainNone {
				p.addRangeError(p.lexer.Range(), "Template literals cannot have an optional chain as a tag")
			}
			headLoc, headRaw, parts := p.parseTemplateParts()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETemplate{TagOrNil: left, HeadLoc: headLoc, HeadRaw: headRaw, Parts: parts}}

		case js_lexer.TOpenBracket:
			p.lexer.Next()

			// Allow "in" inside the brackets
			oldAllowIn := p.allowIn
			p.allowIn = true
			index := p.parseExpr(js_ast.LLowest)
			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, OptionalChain: oldOptionalChain}}
			optionalChain = oldOptionalChain

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: p.parseCallArgs(), OptionalChain: oldOptionalChain}}
			optionalChain = oldOptionalChain

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next()

			// Allow "in" in between "?" and ":"
			oldAllowIn := p.allowIn
			p.allowIn = true
			yes := p.parseExpr(js_ast.LComma)
			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostDec, Value: left}}

		case js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: left}}

		case js_lexer.TComma:
			if level >= js_ast.LComma {
				return left
			}
			p.lexer.Next()
			left = js_ast.JoinWithComma(left, p.parseExpr(js_ast.LComma))

		default:
			entry, ok := binaryOps[p.lexer.Token]
			if !ok || level >= entry.level || (p.lexer.Token == js_lexer.TIn && !p.allowIn) {
				return left
			}
			p.lexer.Next()

			rightLevel := entry.level
			if entry.op.IsRightAssociative() {
				rightLevel--
			}
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: entry.op, Left: left, Right: p.parseExpr(rightLevel)}}
		}
	}
}
