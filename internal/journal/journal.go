// Package journal records the files rewritten by a promote run so the run
// can be undone.
package journal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"localtofield/internal/fix"
	"localtofield/internal/source"
)

// Current schema version - increment when Record format changes
const schemaVersion uint16 = 1

const lastRunFile = "last-run.mp"

var (
	// ErrEmpty is returned by Undo when no run has been recorded.
	ErrEmpty = errors.New("journal is empty")
	// ErrSchema is returned for records written by an incompatible version.
	ErrSchema = errors.New("journal record has an unknown schema")
)

// Entry is one rewritten file.
type Entry struct {
	Path       string
	Before     []byte
	BeforeHash [32]byte
	AfterHash  [32]byte
}

// Record is everything a single run wrote.
type Record struct {
	Schema  uint16
	Time    time.Time
	Entries []Entry
}

// Journal keeps the record of the last run in a directory.
// Thread-safe for concurrent access.
type Journal struct {
	mu  sync.Mutex
	dir string
}

// Open returns the journal under the user cache directory
// ($XDG_CACHE_HOME/app/journal or ~/.cache/app/journal).
func Open(app string) (*Journal, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app, "journal"))
}

// OpenDir returns a journal stored in dir, creating it if needed.
func OpenDir(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Journal{dir: dir}, nil
}

// Dir reports where the journal lives.
func (j *Journal) Dir() string { return j.dir }

// NewEntry captures a file's original content before it is overwritten.
func NewEntry(change fix.FileChange, before []byte) Entry {
	return Entry{
		Path:       change.Path,
		Before:     before,
		BeforeHash: change.OldHash,
		AfterHash:  change.NewHash,
	}
}

// Save replaces the last recorded run with entries. An empty run leaves the
// previous record in place.
func (j *Journal) Save(entries []Entry) error {
	if j == nil || len(entries) == 0 {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	rec := Record{Schema: schemaVersion, Time: time.Now().UTC(), Entries: entries}
	f, err := os.CreateTemp(j.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(&rec); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, filepath.Join(j.dir, lastRunFile))
}

// Last returns the last recorded run. ok is false when there is none.
func (j *Journal) Last() (Record, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last()
}

func (j *Journal) last() (Record, bool, error) {
	var rec Record
	data, err := os.ReadFile(filepath.Join(j.dir, lastRunFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rec, false, nil
		}
		return rec, false, err
	}
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return rec, false, fmt.Errorf("decode journal: %w", err)
	}
	if rec.Schema != schemaVersion {
		return rec, false, fmt.Errorf("schema %d: %w", rec.Schema, ErrSchema)
	}
	return rec, true, nil
}

// Undo restores every file of the last run and clears the record. Nothing is
// written unless every file still has the content the run produced.
func (j *Journal) Undo() ([]fix.FileChange, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rec, ok, err := j.last()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmpty
	}

	fs := source.NewFileSet()
	files := make([]*source.File, len(rec.Entries))
	for i, e := range rec.Entries {
		id, err := fs.Load(e.Path)
		if err != nil {
			return nil, fmt.Errorf("undo: %w", err)
		}
		files[i] = fs.Get(id)
		if files[i].Hash != e.AfterHash {
			return nil, fmt.Errorf("undo %s: %w", e.Path, fix.ErrStaleFile)
		}
		if sha256.Sum256(e.Before) != e.BeforeHash {
			return nil, fmt.Errorf("undo %s: saved content is corrupt", e.Path)
		}
	}

	changes := make([]fix.FileChange, 0, len(files))
	for i, file := range files {
		change, err := fix.WriteFile(file, rec.Entries[i].Before)
		if err != nil {
			return changes, fmt.Errorf("undo: %w", err)
		}
		changes = append(changes, change)
	}
	return changes, os.Remove(filepath.Join(j.dir, lastRunFile))
}
