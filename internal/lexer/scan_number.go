package lexer

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// scanNumber handles 0x.., 0b.., decimal integers, reals with fraction and
// exponent, '_' separators and the C# suffixes (u, l, ul, f, d, m).
// A '.' only joins the number when a digit follows, so 1..2 and 1.ToString() split.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.bumpDigits(isDec)
		kind = token.RealLit
		return lx.finishReal(start, kind)
	}

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Off += 2
			if !lx.bumpDigits(isHex) {
				return lx.badNumber(start, "expected hex digit")
			}
			lx.bumpIntSuffix()
			return lx.emit(token.IntLit, start)
		case 'b', 'B':
			lx.cursor.Off += 2
			if !lx.bumpDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "expected binary digit")
			}
			lx.bumpIntSuffix()
			return lx.emit(token.IntLit, start)
		}
	}

	lx.bumpDigits(isDec)
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.bumpDigits(isDec)
		kind = token.RealLit
	}
	if kind == token.IntLit {
		switch lx.cursor.Peek() {
		case 'e', 'E', 'f', 'F', 'd', 'D', 'm', 'M':
			return lx.finishReal(start, token.RealLit)
		}
		lx.bumpIntSuffix()
		return lx.emit(kind, start)
	}
	return lx.finishReal(start, kind)
}

func (lx *Lexer) finishReal(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !lx.bumpDigits(isDec) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		kind = token.RealLit
	}
	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		lx.cursor.Bump()
		kind = token.RealLit
	}
	return lx.emit(kind, start)
}

// bumpDigits consumes digits and '_' separators; it reports whether a digit was seen.
func (lx *Lexer) bumpDigits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b) && !lx.cursor.EOF():
			seen = true
		case b == '_':
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) bumpIntSuffix() {
	for range 2 {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
