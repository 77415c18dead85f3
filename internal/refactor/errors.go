package refactor

import (
	"errors"
	"fmt"
	"strings"

	"localtofield/internal/diag"
	"localtofield/internal/source"
)

var (
	ErrNotFound             = errors.New("no local declaration at selection")
	ErrAmbiguousSelection   = errors.New("selection covers more than one local declaration")
	ErrMalformedDeclaration = errors.New("local declaration cannot be promoted")
)

// ErrorKind classifies an *Error.
type ErrorKind uint8

const (
	KindNotFound ErrorKind = iota + 1
	KindAmbiguous
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindAmbiguous:
		return "ambiguous"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error describes why a selection cannot be refactored. It unwraps to one of
// the sentinel errors above.
type Error struct {
	Kind       ErrorKind
	Span       source.Span   // the selection or the offending declaration
	Msg        string
	Candidates []source.Span // declarations matched by an ambiguous selection
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Unwrap().Error())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if len(e.Candidates) > 0 {
		fmt.Fprintf(&sb, " (%d candidates)", len(e.Candidates))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindAmbiguous:
		return ErrAmbiguousSelection
	default:
		return ErrMalformedDeclaration
	}
}

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case KindNotFound:
		return diag.RefNotFound
	case KindAmbiguous:
		return diag.RefAmbiguous
	default:
		return diag.RefMalformed
	}
}

// Diagnostic converts the error into a diagnostic with one note per candidate.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), e.Span, e.Error())
	for _, c := range e.Candidates {
		d = d.WithNote(c, "candidate declaration")
	}
	return d
}

func malformed(sp source.Span, format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
