package syntax

import (
	"slices"

	"localtofield/internal/diag"
	"localtofield/internal/source"
	"localtofield/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens ahead; past the end it returns EOF.
func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) kindAt(i int) token.Kind {
	if i < len(p.toks) {
		return p.toks[i].Kind
	}
	return token.EOF
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atWord(word string) bool {
	return p.peek().IsContextual(word)
}

func (p *Parser) idx() TokIdx {
	return TokIdx(p.pos)
}

// advance consumes the current token and returns its index. EOF is never consumed.
func (p *Parser) advance() TokIdx {
	i := p.idx()
	if !p.at(token.EOF) {
		p.pos++
	}
	return i
}

// expect consumes k or reports code and returns NoTok.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (TokIdx, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return NoTok, false
}

// diagnosticSpan points at the current token, or just after the previous one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		prev := p.toks[p.pos-1].Span
		return source.Span{File: prev.File, Start: prev.End, End: prev.End}
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	return true
}

func (p *Parser) alloc(n Node) NodeID {
	return NodeID(p.nodes.Allocate(n))
}

// finish allocates a node spanning first up to the last consumed token.
// It returns NoNode when nothing was consumed.
func (p *Parser) finish(kind NodeKind, first TokIdx, name, open TokIdx, children []NodeID) NodeID {
	if int(first) >= p.pos {
		return NoNode
	}
	return p.alloc(Node{
		Kind:     kind,
		First:    first,
		Last:     TokIdx(p.pos - 1),
		Name:     name,
		Open:     open,
		Children: children,
	})
}

// leaf is finish for nodes without name, body or children.
func (p *Parser) leaf(kind NodeKind, first TokIdx) NodeID {
	return p.finish(kind, first, NoTok, NoTok, nil)
}

// mark and rewind support speculative parsing.
type parseMark struct {
	pos   int
	nodes uint32
}

func (p *Parser) mark() parseMark {
	return parseMark{pos: p.pos, nodes: p.nodes.Len()}
}

func (p *Parser) rewind(m parseMark) {
	p.pos = m.pos
	p.nodes.truncate(m.nodes)
}

func appendNode(list []NodeID, id NodeID) []NodeID {
	if id.IsValid() {
		return append(list, id)
	}
	return list
}

func isOpener(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}

func isCloser(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}

// skipBalanced consumes an opener and everything up to its matching closer.
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		p.advance()
		switch {
		case isOpener(k):
			depth++
		case isCloser(k):
			depth--
		}
		if depth <= 0 {
			return
		}
	}
	p.err(diag.SynUnclosedDelimiter, "unclosed delimiter")
}

// skipUntil consumes tokens until one of stops appears outside brackets.
// It does not consume the stop token and never crosses an unbalanced closer.
func (p *Parser) skipUntil(stops ...token.Kind) {
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if slices.Contains(stops, k) {
			return
		}
		switch {
		case isOpener(k):
			p.skipBalanced()
		case isCloser(k):
			return
		default:
			p.advance()
		}
	}
}
