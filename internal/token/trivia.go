package token

import (
	"strconv"

	"localtofield/internal/source"
)

// Directive is a parsed preprocessor line such as "#region Fields".
type Directive struct {
	Name    string // region, if, pragma, nullable, ...
	Payload string // rest of the line, trimmed
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDirective
	TriviaBOM
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaDocLine:      "DocLine",
	TriviaDirective:    "Directive",
	TriviaBOM:          "BOM",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(" + strconv.Itoa(int(k)) + ")"
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only when Kind == TriviaDirective
}
