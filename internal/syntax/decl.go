package syntax

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// memberCtx says where a member is being parsed: at the top level (where
// statements are allowed) or inside a type named typeName.
type memberCtx struct {
	top      bool
	typeName string
}

// appendMember parses one member-level construct and guarantees progress.
func (p *Parser) appendMember(list []NodeID, ctx memberCtx) []NodeID {
	start := p.pos
	list = p.parseMember(list, ctx)
	if p.pos == start {
		if ctx.top {
			p.err(diag.SynUnexpectedTopLevel, "unexpected '"+p.peek().Text+"'")
		} else {
			p.err(diag.SynUnexpectedMember, "unexpected '"+p.peek().Text+"' in type body")
		}
		list = appendNode(list, p.leaf(NodeOtherMember, p.advance()))
	}
	return list
}

func (p *Parser) parseMember(list []NodeID, ctx memberCtx) []NodeID {
	if ctx.top {
		switch {
		case p.at(token.KwUsing), p.atWord("global") && p.peekAt(1).Kind == token.KwUsing:
			if id, ok := p.parseUsingDirective(); ok {
				return appendNode(list, id)
			}
			return p.appendStatement(list)
		case p.at(token.KwExtern) && p.peekAt(1).IsContextual("alias"):
			first := p.advance()
			p.skipUntil(token.Semicolon)
			p.expectSemicolon()
			return appendNode(list, p.leaf(NodeExternAlias, first))
		case p.at(token.KwNamespace):
			return appendNode(list, p.parseNamespace())
		}
	}

	first := p.idx()
	var attrs []NodeID
	for p.at(token.LBracket) {
		attrFirst := p.idx()
		p.skipBalanced()
		attrs = appendNode(attrs, p.leaf(NodeAttributeList, attrFirst))
	}

	mods := p.countModifiers(p.pos)
	if p.atTypeKeyword(p.pos + mods) {
		return appendNode(list, p.parseTypeDeclaration(first, attrs, mods))
	}
	if ctx.top {
		list = append(list, attrs...)
		if p.atAny(token.RBrace, token.EOF) {
			return list
		}
		return p.appendStatement(list)
	}
	return appendNode(list, p.parseTypeMember(first, attrs, mods, ctx.typeName))
}

// parseUsingDirective parses "global? using static? Name;" and "using A = B;".
// It reports false, consuming nothing, when the using is a statement.
func (p *Parser) parseUsingDirective() (NodeID, bool) {
	if p.at(token.KwUsing) {
		if p.peekAt(1).Kind == token.LParen {
			return NoNode, false
		}
		if shape, _ := p.classifyDeclaration(); shape == shapeLocal {
			return NoNode, false
		}
	}
	first := p.idx()
	p.skipUntil(token.Semicolon)
	p.expectSemicolon()
	return p.leaf(NodeUsingDirective, first), true
}

// parseNamespace parses block and file-scoped namespaces. A file-scoped
// namespace owns every following member up to EOF.
func (p *Parser) parseNamespace() NodeID {
	first := p.advance()
	p.skipUntil(token.LBrace, token.Semicolon)
	if p.at(token.Semicolon) {
		p.advance()
		var children []NodeID
		for !p.at(token.EOF) {
			if p.at(token.RBrace) {
				p.err(diag.SynUnexpectedTopLevel, "unexpected '}'")
				p.advance()
				continue
			}
			children = p.appendMember(children, memberCtx{top: true})
		}
		return p.finish(NodeFileScopedNamespace, first, NoTok, NoTok, children)
	}
	open, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{'")
	if !ok {
		return p.leaf(NodeNamespace, first)
	}
	var children []NodeID
	for !p.atAny(token.RBrace, token.EOF) {
		children = p.appendMember(children, memberCtx{top: true})
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	if p.at(token.Semicolon) {
		p.advance()
	}
	return p.finish(NodeNamespace, first, NoTok, open, children)
}

// countModifiers counts declaration modifiers starting at token i,
// including contextual ones such as partial and async.
func (p *Parser) countModifiers(i int) int {
	n := 0
	for {
		k := p.kindAt(i + n)
		switch {
		case k.IsModifier(), k == token.KwEvent:
		case k == token.Ident && p.isContextualModifier(i+n):
		default:
			return n
		}
		n++
	}
}

func (p *Parser) isContextualModifier(i int) bool {
	switch p.toks[i].Text {
	case "partial", "async", "required", "file":
		next := p.kindAt(i + 1)
		return next == token.Ident || next.IsKeyword()
	}
	return false
}

func (p *Parser) atTypeKeyword(i int) bool {
	switch p.kindAt(i) {
	case token.KwClass, token.KwStruct, token.KwInterface, token.KwEnum, token.KwDelegate:
		return true
	case token.Ident:
		if p.toks[i].Text != "record" {
			return false
		}
		switch p.kindAt(i + 1) {
		case token.Ident, token.KwClass, token.KwStruct:
			return true
		}
	}
	return false
}

func (p *Parser) parseTypeDeclaration(first TokIdx, attrs []NodeID, mods int) NodeID {
	for range mods {
		p.advance()
	}
	var kind NodeKind
	switch kw := p.peek(); {
	case kw.Kind == token.KwClass:
		kind = NodeClass
	case kw.Kind == token.KwStruct:
		kind = NodeStruct
	case kw.Kind == token.KwInterface:
		kind = NodeInterface
	case kw.Kind == token.KwEnum:
		kind = NodeEnum
	case kw.Kind == token.KwDelegate:
		p.advance()
		p.skipUntil(token.Semicolon)
		p.expectSemicolon()
		return p.finish(NodeDelegate, first, NoTok, NoTok, attrs)
	default:
		kind = NodeRecord
		if p.peekAt(1).Kind == token.KwClass || p.peekAt(1).Kind == token.KwStruct {
			p.advance()
		}
	}
	p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return p.finish(kind, first, NoTok, NoTok, attrs)
	}
	// type parameters, primary constructor, base list, constraints
	p.skipUntil(token.LBrace, token.Semicolon)
	if p.at(token.Semicolon) {
		p.advance()
		return p.finish(kind, first, name, NoTok, attrs)
	}
	open, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{'")
	if !ok {
		return p.finish(kind, first, name, NoTok, attrs)
	}
	children := attrs
	if kind == NodeEnum {
		p.skipUntil(token.RBrace)
	} else {
		ctx := memberCtx{typeName: p.toks[name].Text}
		for !p.atAny(token.RBrace, token.EOF) {
			children = p.appendMember(children, ctx)
		}
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	if p.at(token.Semicolon) {
		p.advance()
	}
	return p.finish(kind, first, name, open, children)
}

// parseTypeMember parses a field, property, indexer, method, constructor,
// destructor or operator. Unrecognized members become NodeOtherMember.
func (p *Parser) parseTypeMember(first TokIdx, attrs []NodeID, mods int, typeName string) NodeID {
	i := p.pos + mods
	switch k := p.kindAt(i); {
	case k == token.Tilde:
		p.advanceTo(i + 2)
		return p.finish(NodeMethod, first, TokIdx(i+1), NoTok, append(attrs, p.parseFunctionRest()...))
	case k == token.Ident && p.toks[i].Text == typeName && p.kindAt(i+1) == token.LParen:
		p.advanceTo(i + 1)
		return p.finish(NodeConstructor, first, TokIdx(i), NoTok, append(attrs, p.parseFunctionRest()...))
	case k == token.KwImplicit || k == token.KwExplicit:
		p.advanceTo(i)
		p.skipUntil(token.LParen, token.LBrace, token.Semicolon)
		return p.finish(NodeMethod, first, NoTok, NoTok, append(attrs, p.parseFunctionRest()...))
	}

	end, ok := p.scanType(i)
	if !ok {
		return p.recoverMember(first, attrs)
	}
	switch p.kindAt(end) {
	case token.KwOperator:
		p.advanceTo(i)
		children := appendNode(attrs, p.parseTypeTo(end))
		p.skipUntil(token.LParen, token.LBrace, token.Semicolon)
		return p.finish(NodeMethod, first, NoTok, NoTok, append(children, p.parseFunctionRest()...))
	case token.KwThis:
		if p.kindAt(end+1) != token.LBracket {
			break
		}
		p.advanceTo(i)
		children := appendNode(attrs, p.parseTypeTo(end))
		name := p.advance()
		p.skipBalanced()
		return p.finish(NodeProperty, first, name, NoTok, append(children, p.parsePropertyBody()...))
	case token.Ident:
		nameEnd := p.scanNamePath(end)
		name := p.lastNameToken(end, nameEnd)
		switch p.kindAt(nameEnd) {
		case token.Assign, token.Semicolon, token.Comma:
			if nameEnd != end+1 {
				break
			}
			p.advanceTo(i)
			children := appendNode(attrs, p.parseVariableDeclaration())
			p.expectSemicolon()
			return p.finish(NodeField, first, NoTok, NoTok, children)
		case token.LParen:
			p.advanceTo(i)
			children := appendNode(attrs, p.parseTypeTo(end))
			p.advanceTo(nameEnd)
			return p.finish(NodeMethod, first, name, NoTok, append(children, p.parseFunctionRest()...))
		case token.LBrace, token.FatArrow:
			p.advanceTo(i)
			children := appendNode(attrs, p.parseTypeTo(end))
			p.advanceTo(nameEnd)
			return p.finish(NodeProperty, first, name, NoTok, append(children, p.parsePropertyBody()...))
		}
	}
	return p.recoverMember(first, attrs)
}

// lastNameToken returns the last identifier of a member name path such as
// IFoo<T>.Bar, ignoring identifiers inside type arguments.
func (p *Parser) lastNameToken(start, end int) TokIdx {
	name := TokIdx(start)
	depth := 0
	for i := start; i < end; i++ {
		switch p.kindAt(i) {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Ident:
			if depth == 0 {
				name = TokIdx(i)
			}
		}
	}
	return name
}

// parsePropertyBody parses "{ accessors } (= init;)?" or "=> expr;".
func (p *Parser) parsePropertyBody() []NodeID {
	if p.at(token.FatArrow) {
		return p.parseBody()
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, "expected '{'")
		return nil
	}
	p.advance()
	var children []NodeID
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		children = appendNode(children, p.parseAccessor())
		if p.pos == start {
			p.err(diag.SynUnexpectedToken, "expected accessor")
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}'")
	if p.at(token.Assign) {
		p.advance()
		children = appendNode(children, p.parseExpression(stopStatement))
		p.expectSemicolon()
	}
	return children
}

func (p *Parser) parseAccessor() NodeID {
	first := p.idx()
	for p.at(token.LBracket) {
		p.skipBalanced()
	}
	for p.peek().Kind.IsModifier() {
		p.advance()
	}
	tok := p.peek()
	if tok.Kind != token.Ident {
		return NoNode
	}
	switch tok.Text {
	case "get", "set", "init", "add", "remove":
	default:
		return NoNode
	}
	name := p.advance()
	return p.finish(NodeAccessor, first, name, NoTok, p.parseBody())
}

// recoverMember skips an unrecognized member up to ';' or past a balanced
// '{...}', whichever comes first.
func (p *Parser) recoverMember(first TokIdx, attrs []NodeID) NodeID {
	p.err(diag.SynUnexpectedMember, "unrecognized member")
	p.skipUntil(token.Semicolon, token.LBrace)
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		p.skipBalanced()
	}
	return p.finish(NodeOtherMember, first, NoTok, NoTok, attrs)
}

// advanceTo consumes tokens up to index i (exclusive).
func (p *Parser) advanceTo(i int) {
	for p.pos < i && !p.at(token.EOF) {
		p.advance()
	}
}
