package fix

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"localtofield/internal/source"
)

var (
	// ErrVirtualFile is returned when writing a file that has no backing path.
	ErrVirtualFile = errors.New("target file is virtual")
	// ErrStaleFile is returned when the file on disk changed since it was loaded.
	ErrStaleFile = errors.New("file changed on disk since it was read")
)

// FileChange summarises a rewrite written to disk.
type FileChange struct {
	Path    string
	OldHash [32]byte
	NewHash [32]byte
	Bytes   int
}

// WriteFile replaces the on-disk content of file with content. It refuses
// virtual files and files whose disk content no longer matches file.Hash.
// The existing file mode is kept.
func WriteFile(file *source.File, content []byte) (FileChange, error) {
	if file.Flags&source.FileVirtual != 0 {
		return FileChange{}, fmt.Errorf("%s: %w", file.Path, ErrVirtualFile)
	}
	// #nosec G304 -- path comes from a file the caller loaded
	current, err := os.ReadFile(file.Path)
	if err != nil {
		return FileChange{}, fmt.Errorf("read %s: %w", file.Path, err)
	}
	if sha256.Sum256(current) != file.Hash {
		return FileChange{}, fmt.Errorf("%s: %w", file.Path, ErrStaleFile)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(file.Path, content, mode); err != nil {
		return FileChange{}, fmt.Errorf("write %s: %w", file.Path, err)
	}
	return FileChange{
		Path:    file.Path,
		OldHash: file.Hash,
		NewHash: sha256.Sum256(content),
		Bytes:   len(content),
	}, nil
}
