package fix

import (
	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

// Diff renders a unified diff between two versions of the file called name.
// It returns "" when the texts are equal.
func Diff(name, before, after string) string {
	if before == after {
		return ""
	}
	return godiffpatch.GeneratePatch(name, before, after)
}
