package source

import "strconv"

// Span is a byte range [Start, End) in one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }
func (s Span) Len() uint32 { return s.End - s.Start }
func (s Span) String() string {
	return strconv.FormatUint(uint64(s.File), 10) + ":[" +
		strconv.FormatUint(uint64(s.Start), 10) + "," +
		strconv.FormatUint(uint64(s.End), 10) + ")"
}

// Contains reports whether off lies inside [Start, End).
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Intersects reports whether the two spans share a position, counting
// both end points. An empty span sitting exactly at Start or End of s
// intersects it, the same way editor selections are matched against nodes.
func (s Span) Intersects(other Span) bool {
	return other.Start <= s.End && other.End >= s.Start
}
