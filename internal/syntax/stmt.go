package syntax

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

var stopStatement = stopAt(token.Semicolon)

// parseBlock parses "{ statements }". The caller guarantees the current token is '{'.
func (p *Parser) parseBlock() NodeID {
	return p.parseBlockAs(NodeBlock)
}

func (p *Parser) parseBlockAs(kind NodeKind) NodeID {
	first := p.advance() // '{'
	var children []NodeID
	for !p.atAny(token.RBrace, token.EOF) {
		children = p.appendStatement(children)
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	return p.finish(kind, first, NoTok, NoTok, children)
}

// appendStatement parses one statement and guarantees progress.
func (p *Parser) appendStatement(list []NodeID) []NodeID {
	start := p.pos
	id := p.parseStatement()
	if p.pos == start {
		p.err(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"'")
		first := p.advance()
		id = p.leaf(NodeOtherStatement, first)
	}
	return appendNode(list, id)
}

// parseEmbedded parses the statement controlled by if/else/while/for/...
func (p *Parser) parseEmbedded() NodeID {
	if p.atAny(token.RBrace, token.EOF) {
		p.err(diag.SynUnexpectedToken, "expected statement")
		return NoNode
	}
	var list []NodeID
	list = p.appendStatement(list)
	if len(list) == 0 {
		return NoNode
	}
	return list[0]
}

func (p *Parser) parseStatement() NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		return p.leaf(NodeOtherStatement, p.advance())
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		first := p.advance()
		cond := p.parseParenthesized()
		body := p.parseEmbedded()
		return p.finish(NodeWhile, first, NoTok, NoTok, appendNode(appendNode(nil, cond), body))
	case token.KwDo:
		first := p.advance()
		body := p.parseEmbedded()
		p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while'")
		cond := p.parseParenthesized()
		p.expectSemicolon()
		return p.finish(NodeDo, first, NoTok, NoTok, appendNode(appendNode(nil, body), cond))
	case token.KwFor:
		return p.parseHeaderStatement(NodeFor)
	case token.KwForeach:
		return p.parseHeaderStatement(NodeForeach)
	case token.KwLock:
		return p.parseHeaderStatement(NodeLock)
	case token.KwFixed:
		return p.parseHeaderStatement(NodeFixed)
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwTry:
		return p.parseTry()
	case token.KwUsing:
		if p.peekAt(1).Kind == token.LParen {
			return p.parseHeaderStatement(NodeUsingStatement)
		}
	case token.KwChecked, token.KwUnchecked:
		if p.peekAt(1).Kind == token.LBrace {
			first := p.advance()
			return p.finish(NodeChecked, first, NoTok, NoTok, []NodeID{p.parseBlock()})
		}
	case token.KwUnsafe:
		if p.peekAt(1).Kind == token.LBrace {
			first := p.advance()
			return p.finish(NodeUnsafe, first, NoTok, NoTok, []NodeID{p.parseBlock()})
		}
	case token.KwReturn, token.KwThrow, token.KwBreak, token.KwContinue, token.KwGoto:
		return p.parseSimpleStatement(NodeOtherStatement)
	case token.Ident:
		switch {
		case tok.Text == "yield" && p.peekAt(1).Kind == token.KwReturn,
			tok.Text == "yield" && p.peekAt(1).Kind == token.KwBreak:
			return p.parseSimpleStatement(NodeOtherStatement)
		case tok.Text == "await" && p.peekAt(1).Kind == token.KwForeach:
			return p.parseHeaderStatement(NodeForeach)
		case p.peekAt(1).Kind == token.Colon:
			first := p.advance()
			p.advance() // ':'
			return p.finish(NodeLabeled, first, first, NoTok, appendNode(nil, p.parseEmbedded()))
		}
	}

	switch shape, mods := p.classifyDeclaration(); shape {
	case shapeLocal:
		return p.parseLocalDeclaration(mods)
	case shapeLocalFunction:
		return p.parseLocalFunction(mods)
	}
	return p.parseSimpleStatement(NodeExpressionStatement)
}

// parseSimpleStatement parses tokens up to ';' as one statement.
func (p *Parser) parseSimpleStatement(kind NodeKind) NodeID {
	first := p.idx()
	var children []NodeID
	p.scanExpressionInto(stopStatement, &children)
	p.expectSemicolon()
	return p.finish(kind, first, NoTok, NoTok, children)
}

func (p *Parser) expectSemicolon() {
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
}

func (p *Parser) parseIf() NodeID {
	first := p.advance()
	children := appendNode(nil, p.parseParenthesized())
	children = appendNode(children, p.parseEmbedded())
	if p.at(token.KwElse) {
		elseFirst := p.advance()
		body := p.parseEmbedded()
		children = appendNode(children, p.finish(NodeElse, elseFirst, NoTok, NoTok, appendNode(nil, body)))
	}
	return p.finish(NodeIf, first, NoTok, NoTok, children)
}

// parseHeaderStatement handles "kw (header) statement" forms. An optional
// leading 'await' (await foreach) is part of the statement.
func (p *Parser) parseHeaderStatement(kind NodeKind) NodeID {
	first := p.advance()
	if p.tokAt(first).IsContextual("await") {
		p.advance()
	}
	children := appendNode(nil, p.parseParenthesized())
	children = appendNode(children, p.parseEmbedded())
	return p.finish(kind, first, NoTok, NoTok, children)
}

func (p *Parser) parseSwitch() NodeID {
	first := p.advance()
	children := appendNode(nil, p.parseParenthesized())
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{'"); !ok {
		return p.finish(NodeSwitch, first, NoTok, NoTok, children)
	}
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		children = appendNode(children, p.parseSwitchSection())
		if p.pos == start {
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	return p.finish(NodeSwitch, first, NoTok, NoTok, children)
}

func (p *Parser) atSwitchLabel() bool {
	return p.at(token.KwCase) || (p.at(token.KwDefault) && p.peekAt(1).Kind == token.Colon)
}

func (p *Parser) parseSwitchSection() NodeID {
	first := p.idx()
	for p.atSwitchLabel() {
		p.advance()
		var discard []NodeID
		p.scanExpressionInto(stopAt(token.Colon), &discard)
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
	}
	if p.pos == int(first) {
		return NoNode
	}
	var children []NodeID
	for !p.atAny(token.RBrace, token.EOF) && !p.atSwitchLabel() {
		children = p.appendStatement(children)
	}
	return p.finish(NodeSwitchSection, first, NoTok, NoTok, children)
}

func (p *Parser) parseTry() NodeID {
	first := p.advance()
	var children []NodeID
	if p.at(token.LBrace) {
		children = append(children, p.parseBlock())
	} else {
		p.err(diag.SynExpectLBrace, "expected '{'")
	}
	for p.at(token.KwCatch) {
		catchFirst := p.advance()
		if p.at(token.LParen) {
			p.skipBalanced()
		}
		if p.atWord("when") {
			p.advance()
			p.parseParenthesized()
		}
		var body []NodeID
		if p.at(token.LBrace) {
			body = append(body, p.parseBlock())
		} else {
			p.err(diag.SynExpectLBrace, "expected '{'")
		}
		children = appendNode(children, p.finish(NodeCatch, catchFirst, NoTok, NoTok, body))
	}
	if p.at(token.KwFinally) {
		finFirst := p.advance()
		var body []NodeID
		if p.at(token.LBrace) {
			body = append(body, p.parseBlock())
		} else {
			p.err(diag.SynExpectLBrace, "expected '{'")
		}
		children = appendNode(children, p.finish(NodeFinally, finFirst, NoTok, NoTok, body))
	}
	return p.finish(NodeTry, first, NoTok, NoTok, children)
}

type declShape uint8

const (
	shapeNone declShape = iota
	shapeLocal
	shapeLocalFunction
)

// classifyDeclaration looks ahead for "modifiers Type Name" followed by
// '=', ';' or ',' (a local) or by '(' or '<' (a local function).
// It returns the shape and the number of modifier tokens.
func (p *Parser) classifyDeclaration() (declShape, int) {
	i := p.pos
	for p.isLocalModifier(i) {
		if p.kindAt(i) == token.KwUsing && p.kindAt(i+1) == token.LParen {
			return shapeNone, 0
		}
		i++
	}
	end, ok := p.scanType(i)
	if !ok || p.kindAt(end) != token.Ident {
		return shapeNone, 0
	}
	switch p.kindAt(end + 1) {
	case token.Assign, token.Semicolon, token.Comma:
		return shapeLocal, i - p.pos
	case token.LParen, token.Lt:
		return shapeLocalFunction, i - p.pos
	}
	return shapeNone, 0
}

func (p *Parser) isLocalModifier(i int) bool {
	switch p.kindAt(i) {
	case token.KwConst, token.KwUsing, token.KwRef, token.KwReadonly,
		token.KwStatic, token.KwUnsafe, token.KwExtern:
		return true
	case token.Ident:
		switch p.toks[i].Text {
		case "scoped", "async", "await":
			next := p.kindAt(i + 1)
			return next == token.Ident || next == token.KwUsing || next.IsPredefinedType() || next == token.LParen
		}
	}
	return false
}

// parseLocalDeclaration parses "mods Type a = x, b = y;". The node starts at
// the first modifier and ends at ';'.
func (p *Parser) parseLocalDeclaration(mods int) NodeID {
	first := p.idx()
	for range mods {
		p.advance()
	}
	decl := p.parseVariableDeclaration()
	p.expectSemicolon()
	return p.finish(NodeLocalDeclaration, first, NoTok, NoTok, appendNode(nil, decl))
}

// parseVariableDeclaration parses "Type declarator (, declarator)*".
func (p *Parser) parseVariableDeclaration() NodeID {
	first := p.idx()
	children := appendNode(nil, p.parseType())
	for {
		children = appendNode(children, p.parseDeclarator())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.finish(NodeVariableDeclaration, first, NoTok, NoTok, children)
}

func (p *Parser) parseDeclarator() NodeID {
	first := p.idx()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	if !ok {
		return NoNode
	}
	var children []NodeID
	if p.at(token.LBracket) {
		p.skipBalanced() // fixed-size buffer
	}
	if p.at(token.Assign) {
		eqFirst := p.advance()
		value := p.parseExpression(stopAt(token.Comma, token.Semicolon))
		if !value.IsValid() {
			p.err(diag.SynExpectExpression, "expected expression")
		}
		children = append(children, p.finish(NodeEqualsValue, eqFirst, NoTok, NoTok, appendNode(nil, value)))
	}
	return p.finish(NodeVariableDeclarator, first, name, NoTok, children)
}

// parseLocalFunction parses "mods Type Name<T>(params) where ... body".
func (p *Parser) parseLocalFunction(mods int) NodeID {
	first := p.idx()
	for range mods {
		p.advance()
	}
	children := appendNode(nil, p.parseType())
	name := p.advance()
	children = append(children, p.parseFunctionRest()...)
	return p.finish(NodeLocalFunction, first, name, NoTok, children)
}

// parseFunctionRest parses type parameters, parameters, constraints and the body
// shared by methods, constructors and local functions.
func (p *Parser) parseFunctionRest() []NodeID {
	if p.at(token.Lt) {
		if end, ok := p.scanTypeArgs(p.pos); ok {
			for p.pos < end {
				p.advance()
			}
		}
	}
	if p.at(token.LParen) {
		p.skipBalanced()
	} else {
		p.err(diag.SynUnexpectedToken, "expected '('")
	}
	if p.at(token.Colon) { // constructor initializer
		p.advance()
		if p.atAny(token.KwBase, token.KwThis) {
			p.advance()
		}
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	}
	if p.atWord("where") {
		p.skipUntil(token.LBrace, token.FatArrow, token.Semicolon)
	}
	return p.parseBody()
}

// parseBody parses a block body, an expression body "=> expr;" or a bare ';'.
func (p *Parser) parseBody() []NodeID {
	switch {
	case p.at(token.LBrace):
		return []NodeID{p.parseBlock()}
	case p.at(token.FatArrow):
		p.advance()
		expr := p.parseExpression(stopStatement)
		p.expectSemicolon()
		return appendNode(nil, expr)
	case p.at(token.Semicolon):
		p.advance()
		return nil
	}
	p.err(diag.SynExpectLBrace, "expected body")
	return nil
}

func (p *Parser) tokAt(i TokIdx) token.Token {
	return p.toks[i]
}
