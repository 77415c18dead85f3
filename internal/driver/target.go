package driver

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"localtofield/internal/source"
)

// Target names a selection in a file, either "path:line:col" (1-based, byte
// columns) or "path@offset[+length]".
type Target struct {
	Path     string
	ByOffset bool
	Pos      source.LineCol
	Offset   uint32
	Length   uint32
}

func (t Target) String() string {
	if t.ByOffset {
		if t.Length > 0 {
			return fmt.Sprintf("%s@%d+%d", t.Path, t.Offset, t.Length)
		}
		return fmt.Sprintf("%s@%d", t.Path, t.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", t.Path, t.Pos.Line, t.Pos.Col)
}

// ParseTarget parses a command-line target.
func ParseTarget(s string) (Target, error) {
	if at := strings.LastIndexByte(s, '@'); at > 0 {
		path, rest := s[:at], s[at+1:]
		length := "0"
		if plus := strings.IndexByte(rest, '+'); plus >= 0 {
			rest, length = rest[:plus], rest[plus+1:]
		}
		off, err := parseUint32(rest)
		if err != nil {
			return Target{}, fmt.Errorf("target %q: bad offset: %w", s, err)
		}
		n, err := parseUint32(length)
		if err != nil {
			return Target{}, fmt.Errorf("target %q: bad length: %w", s, err)
		}
		return Target{Path: path, ByOffset: true, Offset: off, Length: n}, nil
	}

	// path may itself contain ':' (C:\src\A.cs:3:9)
	colSep := strings.LastIndexByte(s, ':')
	if colSep <= 0 {
		return Target{}, fmt.Errorf("target %q: expected file:line:col or file@offset", s)
	}
	lineSep := strings.LastIndexByte(s[:colSep], ':')
	if lineSep <= 0 {
		return Target{}, fmt.Errorf("target %q: expected file:line:col or file@offset", s)
	}
	line, err := parseUint32(s[lineSep+1 : colSep])
	if err != nil || line == 0 {
		return Target{}, fmt.Errorf("target %q: bad line", s)
	}
	col, err := parseUint32(s[colSep+1:])
	if err != nil || col == 0 {
		return Target{}, fmt.Errorf("target %q: bad column", s)
	}
	return Target{Path: s[:lineSep], Pos: source.LineCol{Line: line, Col: col}}, nil
}

// Selection resolves the target against the loaded file.
func (t Target) Selection(file *source.File) (source.Span, error) {
	start := t.Offset
	if !t.ByOffset {
		off, err := file.Offset(t.Pos)
		if err != nil {
			return source.Span{}, err
		}
		start = off
	}
	end := start + t.Length
	if end < start || end > file.Len() {
		return source.Span{}, fmt.Errorf("%s: selection [%d,%d) is outside the file (%d bytes)", file.Path, start, end, file.Len())
	}
	return file.Span(start, end), nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[uint32](v)
}
