package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including contextual keywords and @verbatim names.
	Ident

	// reserved keywords

	KwAbstract
	KwAs
	KwBase
	KwBool
	KwBreak
	KwByte
	KwCase
	KwCatch
	KwChar
	KwChecked
	KwClass
	KwConst
	KwContinue
	KwDecimal
	KwDefault
	KwDelegate
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwEvent
	KwExplicit
	KwExtern
	KwFalse
	KwFinally
	KwFixed
	KwFloat
	KwFor
	KwForeach
	KwGoto
	KwIf
	KwImplicit
	KwIn
	KwInt
	KwInterface
	KwInternal
	KwIs
	KwLock
	KwLong
	KwNamespace
	KwNew
	KwNull
	KwObject
	KwOperator
	KwOut
	KwOverride
	KwParams
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwRef
	KwReturn
	KwSbyte
	KwSealed
	KwShort
	KwSizeof
	KwStackalloc
	KwStatic
	KwString
	KwStruct
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwUint
	KwUlong
	KwUnchecked
	KwUnsafe
	KwUshort
	KwUsing
	KwVirtual
	KwVoid
	KwVolatile
	KwWhile

	// IntLit represents an integer literal, with any suffix.
	IntLit
	// RealLit represents a floating point or decimal literal.
	RealLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a regular, verbatim or raw string literal.
	StringLit
	// InterpolatedStringLit represents a $"..." literal, holes included.
	InterpolatedStringLit

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	ShlAssign        // <<=
	EqEq             // ==
	Bang             // !
	BangEq           // !=
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	Shl              // <<
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	PlusPlus         // ++
	MinusMinus       // --
	Question         // ?
	QuestionQuestion // ??
	QuestionAssign   // ??=
	QuestionDot      // ?.
	Colon            // :
	ColonColon       // ::
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	DotDot           // ..
	Arrow            // ->
	FatArrow         // =>
	LParen           // (
	RParen           // )
	LBrace           // {
	RBrace           // }
	LBracket         // [
	RBracket         // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Ident:   "Ident",

	IntLit:                "IntLit",
	RealLit:               "RealLit",
	CharLit:               "CharLit",
	StringLit:             "StringLit",
	InterpolatedStringLit: "InterpolatedStringLit",

	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	EqEq:             "==",
	Bang:             "!",
	BangEq:           "!=",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Question:         "?",
	QuestionQuestion: "??",
	QuestionAssign:   "??=",
	QuestionDot:      "?.",
	Colon:            ":",
	ColonColon:       "::",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	DotDot:           "..",
	Arrow:            "->",
	FatArrow:         "=>",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
}

func init() {
	for word, k := range keywords {
		kindNames[k] = word
	}
}

// String returns the keyword or punctuation spelling, or the kind name.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwAbstract && k <= KwWhile
}

// IsPredefinedType reports whether k names a built-in type (int, string, object, ...).
func (k Kind) IsPredefinedType() bool {
	switch k {
	case KwBool, KwByte, KwChar, KwDecimal, KwDouble, KwFloat, KwInt, KwLong,
		KwObject, KwSbyte, KwShort, KwString, KwUint, KwUlong, KwUshort, KwVoid:
		return true
	default:
		return false
	}
}

// IsModifier reports whether k can appear in a declaration modifier list.
func (k Kind) IsModifier() bool {
	switch k {
	case KwAbstract, KwConst, KwExtern, KwInternal, KwNew, KwOverride, KwPrivate,
		KwProtected, KwPublic, KwReadonly, KwSealed, KwStatic, KwUnsafe, KwVirtual,
		KwVolatile, KwFixed, KwRef:
		return true
	default:
		return false
	}
}
