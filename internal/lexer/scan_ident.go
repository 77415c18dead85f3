package lexer

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies reserved keywords.
// Token.Text is the exact source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.bumpIdentBody() {
		return lx.scanOperatorOrPunct()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// bumpIdentBody consumes identifier characters and reports whether it saw a valid start.
func (lx *Lexer) bumpIdentBody() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return false
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return false
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			return true
		}
		lx.bumpRune()
	}
}

// scanAt handles '@': verbatim identifiers (@class), verbatim strings (@"...")
// and interpolated verbatim strings (@$"...").
func (lx *Lexer) scanAt() token.Token {
	start := lx.cursor.Mark()
	b1 := lx.cursor.PeekAt(1)
	switch {
	case b1 == '"':
		lx.cursor.Bump()
		return lx.finishVerbatimString(start, token.StringLit)
	case b1 == '$' && lx.cursor.PeekAt(2) == '"':
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.finishVerbatimString(start, token.InterpolatedStringLit)
	}

	lx.cursor.Bump() // '@'
	if !lx.bumpIdentBody() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadVerbatimIdent, sp, "'@' must be followed by an identifier or a string")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.emit(token.Ident, start)
}
