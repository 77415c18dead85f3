package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006
	LexBadVerbatimIdent         Code = 1007

	// syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectType         Code = 2005
	SynExpectExpression   Code = 2006
	SynExpectLBrace       Code = 2007
	SynExpectRBrace       Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynUnexpectedMember   Code = 2010
	SynExpectRParen       Code = 2011

	// refactoring
	RefInfo               Code = 3000
	RefNotFound           Code = 3001
	RefAmbiguous          Code = 3002
	RefMalformed          Code = 3003
	RefNoEnclosingType    Code = 3004
	RefEditConflict       Code = 3005
	RefParseErrors        Code = 3006
	RefDuplicateFileInRun Code = 3007

	// io
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
	IOStaleFile   Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexTokenTooLong:             "Token too long",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadVerbatimIdent:         "'@' must be followed by an identifier or string",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedDelimiter:  "Unclosed delimiter",
	SynExpectSemicolon:    "Expected ';'",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectType:         "Expected type",
	SynExpectExpression:   "Expected expression",
	SynExpectLBrace:       "Expected '{'",
	SynExpectRBrace:       "Expected '}'",
	SynUnexpectedTopLevel: "Unexpected top-level item",
	SynUnexpectedMember:   "Unexpected member",
	SynExpectRParen:       "Expected ')'",

	RefInfo:               "Refactoring information",
	RefNotFound:           "No local declaration at position",
	RefAmbiguous:          "Selection covers several local declarations",
	RefMalformed:          "Local declaration cannot be promoted",
	RefNoEnclosingType:    "Local declaration has no enclosing type",
	RefEditConflict:       "Conflicting edits",
	RefParseErrors:        "Document has syntax errors",
	RefDuplicateFileInRun: "Several targets in one file",

	IOReadFailed:  "Cannot read file",
	IOWriteFailed: "Cannot write file",
	IOStaleFile:   "File changed since it was rewritten",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
