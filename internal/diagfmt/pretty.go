package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"localtofield/internal/diag"
	"localtofield/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, file *source.File, items []diag.Diagnostic, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	path := formatPath(file, opts.PathMode)
	for i, d := range items {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		start := file.Position(d.Primary.Start)
		header := fmt.Sprintf("%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := writeSnippet(w, file, d.Primary, opts.Context, p); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			pos := file.Position(n.Span.Start)
			if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), path, pos.Line, pos.Col, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSnippet prints the primary line (plus context lines) and a caret
// line under the span. Columns are display columns: tabs expand and wide
// runes count twice.
func writeSnippet(w io.Writer, file *source.File, sp source.Span, context int, p palette) error {
	if len(file.Content) == 0 {
		return nil
	}
	start := file.Position(sp.Start)
	end := file.Position(sp.End)
	lineCount := uint32(len(file.LineIdx) + 1)

	first := start.Line - min(uint32(max(context, 0)), start.Line-1)
	last := min(start.Line+uint32(max(context, 0)), lineCount)
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := expandTabs(strings.TrimRight(file.GetLine(line), "\r"))
		gutter := p.gutter.Sprintf("%*d |", gutterWidth, line)
		if _, err := fmt.Fprintf(w, "%s %s\n", gutter, text); err != nil {
			return err
		}
		if line != start.Line {
			continue
		}
		raw := strings.TrimRight(file.GetLine(line), "\r")
		from := clampCol(start.Col-1, raw)
		to := len(raw)
		if end.Line == start.Line {
			to = clampCol(end.Col-1, raw)
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(1, runewidth.StringWidth(expandTabs(raw[:max(from, to)]))-pad)
		marks := "^" + strings.Repeat("~", width-1)
		blank := strings.Repeat(" ", gutterWidth)
		if _, err := fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprint(blank+" |"), strings.Repeat(" ", pad), p.caret.Sprint(marks)); err != nil {
			return err
		}
	}
	return nil
}

func clampCol(col uint32, line string) int {
	return min(int(col), len(line))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
