package driver

import (
	"fmt"

	"localtofield/internal/diag"
	"localtofield/internal/lexer"
	"localtofield/internal/source"
	"localtofield/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token // ends with EOF
	Bag    *diag.Bag
}

// Tokenize lexes a file, for front-end debugging.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fileSet.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{File: file, Tokens: tokens, Bag: bag}, nil
}
