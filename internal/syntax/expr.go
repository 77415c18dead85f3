package syntax

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// stopSet tells expression scanning where to stop at bracket depth 0.
type stopSet func(token.Kind) bool

func stopAt(kinds ...token.Kind) stopSet {
	return func(k token.Kind) bool {
		for _, s := range kinds {
			if k == s {
				return true
			}
		}
		return false
	}
}

// parseExpression parses an expression up to a stop token. Object creations
// that make up the whole expression get structured nodes; anything else is
// an opaque NodeExpression whose children are the lambda bodies inside it.
func (p *Parser) parseExpression(stop stopSet) NodeID {
	if p.at(token.KwNew) {
		m := p.mark()
		if id := p.parseCreation(); id.IsValid() && (stop(p.peek().Kind) || p.atClosingOrEOF()) {
			return id
		}
		p.rewind(m)
	}
	first := p.idx()
	var children []NodeID
	p.scanExpressionInto(stop, &children)
	return p.finish(NodeExpression, first, NoTok, NoTok, children)
}

func (p *Parser) atClosingOrEOF() bool {
	return p.at(token.EOF) || isCloser(p.peek().Kind)
}

// scanExpressionInto consumes expression tokens, tracking bracket depth.
// Block-bodied lambdas and anonymous methods are parsed as statements and
// appended to children so declarations inside them stay reachable.
func (p *Parser) scanExpressionInto(stop stopSet, children *[]NodeID) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if depth == 0 && (stop(k) || isCloser(k)) {
			return
		}
		switch {
		case k == token.FatArrow:
			p.advance()
			if p.at(token.LBrace) {
				*children = appendNode(*children, p.parseBlockAs(NodeLambdaBody))
			}
		case k == token.KwDelegate:
			p.advance()
			if p.at(token.LParen) {
				p.skipBalanced()
			}
			if p.at(token.LBrace) {
				*children = appendNode(*children, p.parseBlockAs(NodeLambdaBody))
			}
		case k == token.Lt && p.pos > 0 && p.toks[p.pos-1].Kind == token.Ident:
			if end, ok := p.scanTypeArgs(p.pos); ok && genericFollows(p.kindAt(end)) {
				for p.pos < end {
					p.advance()
				}
				continue
			}
			p.advance()
		case isOpener(k):
			depth++
			p.advance()
		case isCloser(k):
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// parseCreation parses "new T(args) {init}", "new T {init}" and the
// target-typed "new(args) {init}". Array and anonymous creations return NoNode.
func (p *Parser) parseCreation() NodeID {
	first := p.advance() // new
	if p.at(token.LParen) {
		children := []NodeID{p.parseArgumentList()}
		if p.at(token.LBrace) {
			children = append(children, p.parseInitializer())
		}
		return p.finish(NodeImplicitObjectCreation, first, NoTok, NoTok, children)
	}

	end, ok := p.scanType(p.pos)
	if !ok || p.kindAt(end-1) == token.RBracket {
		return NoNode
	}
	if k := p.kindAt(end); k != token.LParen && k != token.LBrace {
		return NoNode
	}
	children := []NodeID{p.parseTypeTo(end)}
	if p.at(token.LParen) {
		children = append(children, p.parseArgumentList())
	}
	if p.at(token.LBrace) {
		children = append(children, p.parseInitializer())
	}
	return p.finish(NodeObjectCreation, first, NoTok, NoTok, children)
}

func (p *Parser) parseArgumentList() NodeID {
	return p.parseDelimited(NodeArgumentList, token.RParen, diag.SynExpectRParen, "expected ')'")
}

func (p *Parser) parseInitializer() NodeID {
	return p.parseDelimited(NodeInitializer, token.RBrace, diag.SynExpectRBrace, "expected '}'")
}

// parseDelimited consumes an opener, the expression tokens inside it and the closer.
func (p *Parser) parseDelimited(kind NodeKind, closer token.Kind, code diag.Code, msg string) NodeID {
	first := p.advance()
	var children []NodeID
	p.scanExpressionInto(stopAt(closer), &children)
	p.expect(closer, code, msg)
	return p.finish(kind, first, NoTok, NoTok, children)
}

// parseParenthesized parses "( expr )" as used by if, while, switch and friends.
// The inner expression may contain ';' (for headers) and declarations.
func (p *Parser) parseParenthesized() NodeID {
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '('")
		return NoNode
	}
	p.advance()
	first := p.idx()
	var children []NodeID
	p.scanExpressionInto(stopAt(token.RParen), &children)
	expr := p.finish(NodeExpression, first, NoTok, NoTok, children)
	p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
	return expr
}
