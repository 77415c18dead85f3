package syntax

import "localtofield/internal/token"

// scanType looks for a type starting at token i without consuming anything.
// It returns the index just past the type. Recognized shapes: predefined
// types, qualified and generic names (A.B<C>, global::X), tuples, and the
// nullable, pointer and array rank suffixes.
func (p *Parser) scanType(i int) (int, bool) {
	switch k := p.kindAt(i); {
	case k.IsPredefinedType():
		i++
	case k == token.Ident:
		i = p.scanNamePath(i)
	case k == token.LParen:
		end, ok := p.scanTupleType(i)
		if !ok {
			return i, false
		}
		i = end
	default:
		return i, false
	}
	return p.scanTypeSuffixes(i), true
}

func (p *Parser) scanNamePath(i int) int {
	for {
		i++ // identifier
		switch p.kindAt(i) {
		case token.ColonColon:
			if p.kindAt(i+1) == token.Ident {
				i++
				continue
			}
			return i
		case token.Lt:
			end, ok := p.scanTypeArgs(i)
			if !ok {
				return i
			}
			i = end
		}
		if p.kindAt(i) == token.Dot && p.kindAt(i+1) == token.Ident {
			i++
			continue
		}
		return i
	}
}

// scanTypeArgs matches "<T, U>" and the unbound forms "<>" and "<,>".
func (p *Parser) scanTypeArgs(i int) (int, bool) {
	i++ // '<'
	for p.kindAt(i) == token.Comma {
		i++
	}
	if p.kindAt(i) == token.Gt {
		return i + 1, true
	}
	for {
		end, ok := p.scanType(i)
		if !ok {
			return i, false
		}
		i = end
		switch p.kindAt(i) {
		case token.Comma:
			i++
		case token.Gt:
			return i + 1, true
		default:
			return i, false
		}
	}
}

// scanTupleType matches "(T1 a, T2 b, ...)" with at least two elements.
func (p *Parser) scanTupleType(i int) (int, bool) {
	i++ // '('
	elems := 0
	for {
		end, ok := p.scanType(i)
		if !ok {
			return i, false
		}
		i = end
		elems++
		if p.kindAt(i) == token.Ident {
			i++
		}
		switch p.kindAt(i) {
		case token.Comma:
			i++
		case token.RParen:
			return i + 1, elems >= 2
		default:
			return i, false
		}
	}
}

func (p *Parser) scanTypeSuffixes(i int) int {
	for {
		switch p.kindAt(i) {
		case token.Question, token.Star:
			i++
		case token.LBracket:
			j := i + 1
			for p.kindAt(j) == token.Comma {
				j++
			}
			if p.kindAt(j) != token.RBracket {
				return i
			}
			i = j + 1
		default:
			return i
		}
	}
}

// parseTypeTo wraps tokens up to end (exclusive) into a NodeType.
func (p *Parser) parseTypeTo(end int) NodeID {
	first := p.idx()
	for p.pos < end && !p.at(token.EOF) {
		p.advance()
	}
	return p.leaf(NodeType, first)
}

// parseType consumes a type at the current position, or reports and returns NoNode.
func (p *Parser) parseType() NodeID {
	end, ok := p.scanType(p.pos)
	if !ok {
		return NoNode
	}
	return p.parseTypeTo(end)
}

// genericFollows reports whether the token after a closing '>' confirms that
// "<...>" in an expression was a type argument list rather than a comparison.
func genericFollows(k token.Kind) bool {
	switch k {
	case token.LParen, token.RParen, token.RBracket, token.RBrace, token.Colon,
		token.Semicolon, token.Comma, token.Dot, token.Question, token.EqEq,
		token.BangEq, token.Pipe, token.Caret, token.AndAnd, token.OrOr,
		token.Amp, token.LBracket, token.EOF:
		return true
	}
	return false
}
