package lexer

import (
	"bytes"
	"strings"

	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// collectLeadingTrivia gathers trivia in front of the next significant token:
//   - a UTF-8 BOM at offset 0 -> TriviaBOM
//   - runs of ' ', '\t', '\f', '\v' -> one TriviaSpace
//   - each line terminator ("\r\n", "\n", "\r") -> its own TriviaNewline
//   - //... up to the line end -> TriviaLineComment, ///... -> TriviaDocLine
//   - /* ... */ -> TriviaBlockComment (not nested; unterminated is reported and cut at EOF)
//   - '#' first on a line -> TriviaDirective up to the line end
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 && bytes.HasPrefix(lx.file.Content, bom) {
		start := lx.cursor.Mark()
		lx.cursor.Off += uint32(len(bom))
		lx.pushTrivia(token.TriviaBOM, start)
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			lx.skipSpaces()
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n' || b == '\r':
			lx.cursor.EatEOL()
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/':
			if !lx.scanComment() {
				return
			}
		case b == '#' && lx.atLineStart():
			lx.scanDirective()
		default:
			return
		}
	}
}

// collectTrailingTrivia gathers same-line spaces and comments after a token,
// up to and including the first line terminator.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.skipSpaces()
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}
		if b == '\n' || b == '\r' {
			lx.cursor.EatEOL()
			lx.pushTrivia(token.TriviaNewline, start)
			break
		}
		if b == '/' && lx.scanComment() {
			continue
		}
		break
	}
	return lx.takeHold()
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) skipSpaces() {
	for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
}

// scanComment consumes //..., ///... or /*...*/ into hold.
// It returns false and leaves the cursor untouched when '/' is an operator.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/' {
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && !lx.cursor.AtEOL() {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	return false
}

// scanDirective consumes a preprocessor line, leaving its terminator for the next trivia.
func (lx *Lexer) scanDirective() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() && !lx.cursor.AtEOL() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.hold = append(lx.hold, token.Trivia{
		Kind:      token.TriviaDirective,
		Span:      sp,
		Text:      text,
		Directive: parseDirective(text),
	})
}

func parseDirective(text string) *token.Directive {
	body := strings.TrimSpace(strings.TrimPrefix(text, "#"))
	i := strings.IndexAny(body, " \t")
	if i < 0 {
		return &token.Directive{Name: body}
	}
	return &token.Directive{Name: body[:i], Payload: strings.TrimSpace(body[i:])}
}

// atLineStart reports whether only spaces precede the cursor on its line.
func (lx *Lexer) atLineStart() bool {
	content := lx.file.Content
	for i := int(lx.cursor.Off) - 1; i >= 0; i-- {
		switch content[i] {
		case ' ', '\t', '\f', '\v':
			continue
		case '\n', '\r':
			return true
		default:
			return i < len(bom) && bytes.HasPrefix(content, bom) && i == len(bom)-1
		}
	}
	return true
}
