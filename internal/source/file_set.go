package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans against them.
// A FileSet is not safe for concurrent mutation; the driver gives each worker its own.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet whose relative paths are reported against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the directory relative paths are computed from.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		return workingDir()
	}
	return fileSet.baseDir
}

// Add stores content verbatim, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    hash,
		Flags:   flags | detectFlags(content),
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk and calls Add. Content is kept byte-for-byte.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	return fileSet.Add(path, content, 0), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID, or nil when the id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the latest *File registered under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Position converts a byte offset into a 1-based line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Offset converts a 1-based line and byte column into an offset.
// Columns past the end of the line are rejected.
func (f *File) Offset(pos LineCol) (uint32, error) {
	start, ok := lineStart(f.LineIdx, pos.Line)
	if !ok {
		return 0, fmt.Errorf("%s: line %d out of range", f.Path, pos.Line)
	}
	if pos.Col == 0 {
		return 0, fmt.Errorf("%s: column must be 1-based", f.Path)
	}
	end := f.lineEnd(pos.Line)
	off := start + pos.Col - 1
	if off > end {
		return 0, fmt.Errorf("%s:%d: column %d out of range", f.Path, pos.Line, pos.Col)
	}
	return off, nil
}

// lineEnd returns the offset of the '\n' ending the line, or len(Content).
func (f *File) lineEnd(line uint32) uint32 {
	if int(line-1) < len(f.LineIdx) {
		return f.LineIdx[line-1]
	}
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Len returns the content length as a span coordinate.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Span returns a span of this file.
func (f *File) Span(start, end uint32) Span {
	return Span{File: f.ID, Start: start, End: end}
}

// GetLine returns the text of a 1-based line without its line terminator.
func (f *File) GetLine(lineNum uint32) string {
	start, ok := lineStart(f.LineIdx, lineNum)
	if !ok || start > f.Len() {
		return ""
	}
	end := f.lineEnd(lineNum)
	if end > start && f.Content[end-1] == '\r' && end < f.Len() {
		end--
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path according to mode:
// "absolute", "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			baseDir = workingDir()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) < 40 {
			return f.Path
		}
		if baseDir != "" {
			if rel, err := RelativePath(f.Path, baseDir); err == nil {
				return rel
			}
		}
		return BaseName(f.Path)
	default:
		return f.Path
	}
}
