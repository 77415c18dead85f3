// Package version holds build metadata set through -ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the tool.
	Version = "0.1.0-dev"
	// GitCommit is the commit the binary was built from.
	GitCommit = ""
	// BuildDate is an RFC 3339 timestamp.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
	metaColor         = color.New(color.Faint)
)

// String renders the version with commit and build date when known.
func String() string {
	var sb strings.Builder
	sb.WriteString("localtofield " + Version)
	writeMeta(&sb, fmt.Sprint)
	return sb.String()
}

// Colored is String with the major, minor and patch numbers highlighted.
// color.NoColor disables the escapes.
func Colored() string {
	var sb strings.Builder
	sb.WriteString("localtofield ")
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	paints := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(paints[i].Sprint(p))
	}
	if suffix != "" {
		sb.WriteString("-" + suffix)
	}
	writeMeta(&sb, metaColor.Sprint)
	return sb.String()
}

func writeMeta(sb *strings.Builder, paint func(...any) string) {
	var meta []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		meta = append(meta, "commit "+commit)
	}
	if BuildDate != "" {
		meta = append(meta, "built "+BuildDate)
	}
	if len(meta) > 0 {
		sb.WriteString(" " + paint("("+strings.Join(meta, ", ")+")"))
	}
}
