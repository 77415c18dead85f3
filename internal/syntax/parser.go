package syntax

import (
	"localtofield/internal/diag"
	"localtofield/internal/lexer"
	"localtofield/internal/source"
	"localtofield/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter // lexer and parser diagnostics; may be nil
}

// Enough reports whether the error budget is used up.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for parsing one file.
type Parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	nodes *Arena[Node]
	opts  Options
}

// Parse lexes and parses file. It never fails: problems are reported through
// opts.Reporter and the tree still covers every token.
func Parse(file *source.File, opts Options) *Tree {
	if opts.Reporter != nil {
		opts.Reporter = diag.NewDedupReporter(opts.Reporter)
	}
	toks := lexer.New(file, lexer.Options{Reporter: opts.Reporter}).All()
	p := &Parser{
		file:  file,
		toks:  toks,
		nodes: NewArena[Node](uint(len(toks)/3 + 1)),
		opts:  opts,
	}
	root := p.parseCompilationUnit()
	return &Tree{
		File:   file,
		Tokens: toks,
		Nodes:  p.nodes,
		Root:   root,
	}
}

// parseCompilationUnit parses usings, namespaces, types and top-level statements.
// The root always spans every token, EOF included.
func (p *Parser) parseCompilationUnit() NodeID {
	var children []NodeID
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedTopLevel, "unexpected '}'")
			p.advance()
			continue
		}
		children = p.appendMember(children, memberCtx{top: true})
	}
	return p.alloc(Node{
		Kind:     NodeCompilationUnit,
		First:    0,
		Last:     TokIdx(len(p.toks) - 1),
		Name:     NoTok,
		Open:     NoTok,
		Children: children,
	})
}
