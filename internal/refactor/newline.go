package refactor

import (
	"fmt"
	"runtime"
	"strings"
)

// Newline selects the line terminator of generated code.
type Newline uint8

const (
	NewlineNative   Newline = iota // "\r\n" on Windows, "\n" elsewhere
	NewlineLF                      // "\n"
	NewlineCRLF                    // "\r\n"
	NewlineDocument                // "\r\n" if the document uses it, else "\n"
)

func (n Newline) String() string {
	switch n {
	case NewlineLF:
		return "lf"
	case NewlineCRLF:
		return "crlf"
	case NewlineDocument:
		return "document"
	default:
		return "native"
	}
}

// ParseNewline converts a flag or config value to a Newline.
func ParseNewline(s string) (Newline, error) {
	switch strings.ToLower(s) {
	case "", "native":
		return NewlineNative, nil
	case "lf":
		return NewlineLF, nil
	case "crlf":
		return NewlineCRLF, nil
	case "document", "doc":
		return NewlineDocument, nil
	}
	return NewlineNative, fmt.Errorf("invalid newline %q (expected: native|lf|crlf|document)", s)
}

// Sequence returns the terminator to use for text.
func (n Newline) Sequence(text string) string {
	switch n {
	case NewlineLF:
		return "\n"
	case NewlineCRLF:
		return "\r\n"
	case NewlineDocument:
		if strings.Contains(text, "\r\n") {
			return "\r\n"
		}
		return "\n"
	}
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
