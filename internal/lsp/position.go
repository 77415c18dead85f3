package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"localtofield/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// offsetForPosition converts a 0-based line and UTF-16 character into a byte
// offset. Positions past the end of a line clamp to the line end; positions
// inside a surrogate pair clamp to the start of the rune.
func offsetForPosition(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	content := file.Content
	contentLen := safeUint32(len(content))
	if pos.Line > len(file.LineIdx) {
		return contentLen
	}
	var lineStart uint32
	if pos.Line > 0 {
		lineStart = file.LineIdx[pos.Line-1] + 1
	}
	lineEnd := contentLen
	if pos.Line < len(file.LineIdx) {
		lineEnd = file.LineIdx[pos.Line]
		if lineEnd > lineStart && content[lineEnd-1] == '\r' {
			lineEnd--
		}
	}
	units := 0
	off := lineStart
	for off < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}

func positionForOffset(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	offset = min(offset, safeUint32(len(file.Content)))
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return position{Line: line, Character: units}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	return lspRange{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, span.End),
	}
}

func spanForRange(file *source.File, r lspRange) source.Span {
	start := offsetForPosition(file, r.Start)
	end := max(start, offsetForPosition(file, r.End))
	return file.Span(start, end)
}
