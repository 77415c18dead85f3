package lexer

import (
	"localtofield/internal/diag"
	"localtofield/internal/token"
)

// scanOperatorOrPunct is greedy: three-byte operators first, then two, then one.
// '>' never merges with a following '>' so generic argument lists close one by one.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('<', '<', '='):
		return lx.emit(token.ShlAssign, start)
	case lx.try3('?', '?', '='):
		return lx.emit(token.QuestionAssign, start)
	case lx.try2('?', '?'):
		return lx.emit(token.QuestionQuestion, start)
	case lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)):
		lx.cursor.Off += 2
		return lx.emit(token.QuestionDot, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.emit(token.Shl, start)
	case lx.try2('+', '+'):
		return lx.emit(token.PlusPlus, start)
	case lx.try2('-', '-'):
		return lx.emit(token.MinusMinus, start)
	case lx.try2('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.emit(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.emit(token.SlashAssign, start)
	case lx.try2('%', '='):
		return lx.emit(token.PercentAssign, start)
	case lx.try2('&', '='):
		return lx.emit(token.AmpAssign, start)
	case lx.try2('|', '='):
		return lx.emit(token.PipeAssign, start)
	case lx.try2('^', '='):
		return lx.emit(token.CaretAssign, start)
	}

	kind, ok := singleByteOps[lx.cursor.Bump()]
	if !ok {
		// step over the whole rune so the Invalid token stays valid UTF-8
		lx.cursor.Reset(start)
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.emit(kind, start)
}

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}
