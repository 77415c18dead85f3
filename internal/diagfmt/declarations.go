package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"localtofield/internal/driver"
)

// DeclarationJSON is one local declaration in `list --format json` output.
type DeclarationJSON struct {
	File       string `json:"file"`
	Line       uint32 `json:"line"`
	Col        uint32 `json:"col"`
	StartByte  uint32 `json:"start_byte"`
	EndByte    uint32 `json:"end_byte"`
	Text       string `json:"text"`
	Promotable bool   `json:"promotable"`
	Field      string `json:"field,omitempty"`
	Type       string `json:"type,omitempty"`
	Enclosing  string `json:"enclosing,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ListingOutput is the root of `list --format json` output.
type ListingOutput struct {
	Declarations []DeclarationJSON `json:"declarations"`
	Errors       []string          `json:"errors,omitempty"`
	Promotable   int               `json:"promotable"`
}

// BuildListingOutput flattens listings in file order.
func BuildListingOutput(listings []driver.Listing, mode PathMode) ListingOutput {
	out := ListingOutput{Declarations: []DeclarationJSON{}}
	for _, l := range listings {
		if l.Err != nil {
			out.Errors = append(out.Errors, l.Err.Error())
			continue
		}
		path := formatPath(l.File, mode)
		for _, d := range l.Declarations {
			out.Declarations = append(out.Declarations, DeclarationJSON{
				File:       path,
				Line:       d.Start.Line,
				Col:        d.Start.Col,
				StartByte:  d.Span.Start,
				EndByte:    d.Span.End,
				Text:       d.Text,
				Promotable: d.Promotable,
				Field:      d.Field.FieldName,
				Type:       d.Field.TypeText,
				Enclosing:  d.Enclosing,
				Reason:     d.Reason,
			})
			if d.Promotable {
				out.Promotable++
			}
		}
	}
	return out
}

// FormatListingsJSON writes listings as JSON.
func FormatListingsJSON(w io.Writer, listings []driver.Listing, mode PathMode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildListingOutput(listings, mode))
}

// FormatListingsPretty writes one line per declaration:
//
//	A.cs:5:9  ok    int n = 1;  -> A._n
//	A.cs:6:9  skip  int x, y;   (expected exactly one declarator, found 2)
//
// width bounds the declaration text column; 0 means unbounded.
func FormatListingsPretty(w io.Writer, listings []driver.Listing, mode PathMode, width int, useColor bool) error {
	ok := color.New(color.FgGreen)
	skip := color.New(color.FgYellow)
	faint := color.New(color.Faint)
	for _, c := range []*color.Color{ok, skip, faint} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, l := range listings {
		if l.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", l.Path, l.Err); err != nil {
				return err
			}
			continue
		}
		path := formatPath(l.File, mode)
		for _, d := range l.Declarations {
			text := d.Text
			if width > 0 {
				text = runewidth.Truncate(text, width, "...")
			}
			var line string
			if d.Promotable {
				target := d.Field.FieldName
				if d.Enclosing != "" {
					target = d.Enclosing + "." + target
				} else {
					target = "(removed, no enclosing type)"
				}
				line = fmt.Sprintf("%s:%d:%d  %s  %s  %s\n", path, d.Start.Line, d.Start.Col, ok.Sprint("ok  "), text, faint.Sprint("-> "+target))
			} else {
				line = fmt.Sprintf("%s:%d:%d  %s  %s  %s\n", path, d.Start.Line, d.Start.Col, skip.Sprint("skip"), text, faint.Sprint("("+d.Reason+")"))
			}
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
