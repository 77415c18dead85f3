package lexer

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// scanString handles "..." and raw """...""" literals.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
		return lx.finishRawString(start, token.StringLit)
	}
	return lx.finishRegularString(start, token.StringLit)
}

// scanDollar handles interpolated strings: $"...", $@"...", $"""...""" and $$"""...""".
func (lx *Lexer) scanDollar() token.Token {
	start := lx.cursor.Mark()
	for lx.cursor.Peek() == '$' {
		lx.cursor.Bump()
	}
	b0, b1, b2 := lx.cursor.PeekAt(0), lx.cursor.PeekAt(1), lx.cursor.PeekAt(2)
	switch {
	case b0 == '@' && b1 == '"':
		lx.cursor.Bump()
		return lx.finishVerbatimString(start, token.InterpolatedStringLit)
	case b0 == '"' && b1 == '"' && b2 == '"':
		return lx.finishRawString(start, token.InterpolatedStringLit)
	case b0 == '"':
		return lx.finishRegularString(start, token.InterpolatedStringLit)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "'$' must start an interpolated string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// finishRegularString scans from the opening quote. Escapes are skipped, not validated.
func (lx *Lexer) finishRegularString(start Mark, kind token.Kind) token.Token {
	interpolated := kind == token.InterpolatedStringLit
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '"':
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.AtEOL() {
				lx.cursor.Bump()
			}
		case b == '\n' || b == '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case interpolated && b == '{':
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Off += 2
				continue
			}
			lx.skipHole()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, diag.LexUnterminatedString, "unterminated string literal")
}

// finishVerbatimString scans from the quote of @"..." where "" escapes a quote.
func (lx *Lexer) finishVerbatimString(start Mark, kind token.Kind) token.Token {
	interpolated := kind == token.InterpolatedStringLit
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			if lx.cursor.PeekAt(1) == '"' {
				lx.cursor.Off += 2
				continue
			}
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case interpolated && b == '{':
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Off += 2
				continue
			}
			lx.skipHole()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, diag.LexUnterminatedString, "unterminated verbatim string literal")
}

// finishRawString scans """...""" with any number (>= 3) of delimiting quotes.
// Interpolation holes in raw strings are not tracked; only the closing run matters.
func (lx *Lexer) finishRawString(start Mark, kind token.Kind) token.Token {
	open := lx.quoteRun()
	lx.cursor.Off += open
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			run := lx.quoteRun()
			lx.cursor.Off += run
			if run >= open {
				return lx.emit(kind, start)
			}
			continue
		}
		lx.cursor.Bump()
	}
	return lx.unterminated(start, diag.LexUnterminatedString, "unterminated raw string literal")
}

func (lx *Lexer) quoteRun() uint32 {
	var n uint32
	for lx.cursor.PeekAt(n) == '"' {
		n++
	}
	return n
}

// skipHole consumes an interpolation hole "{...}" including nested literals.
func (lx *Lexer) skipHole() {
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch lx.cursor.Peek() {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
		case '"':
			lx.scanString()
		case '\'':
			lx.scanChar()
		case '@':
			if lx.cursor.PeekAt(1) == '"' || lx.cursor.PeekAt(1) == '$' {
				lx.scanAt()
			} else {
				lx.cursor.Bump()
			}
		case '$':
			lx.scanDollar()
		default:
			lx.cursor.Bump()
		}
	}
}

// scanChar handles 'x', '\n', 'A'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.AtEOL() {
				lx.cursor.Bump()
			}
		case b == '\n' || b == '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "newline in character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, diag.LexUnterminatedChar, "unterminated character literal")
}

func (lx *Lexer) unterminated(start Mark, code diag.Code, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
