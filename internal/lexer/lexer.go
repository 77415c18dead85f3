package lexer

import (
	"fmt"

	"localtofield/internal/diag"
	"localtofield/internal/source"
	"localtofield/internal/token"
)

// maxTokenLength bounds a single token; longer input is reported and skipped.
const maxTokenLength = 1 << 20

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // single token lookahead
	hold   []token.Trivia // leading trivia collected so far
	done   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading and Trailing trivia.
// After EOF it keeps returning EOF. The EOF token carries the trivia that ends the file.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		leading := lx.takeHold()
		if lx.done {
			leading = nil
		}
		lx.done = true
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: leading,
		}
	}

	tok := lx.scanToken()
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token longer than %d bytes", maxTokenLength))
		tok.Kind = token.Invalid
	}

	tok.Leading = lx.takeHold()
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file. The last element is always EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	case ch == '@':
		return lx.scanAt()
	case ch == '$':
		return lx.scanDollar()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold))
	copy(out, lx.hold)
	lx.hold = lx.hold[:0]
	return out
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
