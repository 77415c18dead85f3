package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localtofield/internal/fix"
	"localtofield/internal/source"
)

func rewrite(t *testing.T, path, after string) Entry {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)
	file := fs.Get(id)
	before := append([]byte(nil), file.Content...)

	change, err := fix.WriteFile(file, []byte(after))
	require.NoError(t, err)
	return NewEntry(change, before)
}

func TestSaveUndo(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.cs")
	b := filepath.Join(dir, "B.cs")
	require.NoError(t, os.WriteFile(a, []byte("class A { }"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("class B { }"), 0o644))

	j, err := OpenDir(filepath.Join(dir, "journal"))
	require.NoError(t, err)

	entries := []Entry{rewrite(t, a, "class A2 { }"), rewrite(t, b, "class B2 { }")}
	require.NoError(t, j.Save(entries))

	rec, ok, err := j.Last()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, rec.Entries, 2)
	assert.Equal(t, "class A { }", string(rec.Entries[0].Before))

	changes, err := j.Undo()
	require.NoError(t, err)
	assert.Len(t, changes, 2)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "class A { }", string(got))
	got, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "class B { }", string(got))

	_, err = j.Undo()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestUndoRefusesModifiedFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.cs")
	b := filepath.Join(dir, "B.cs")
	require.NoError(t, os.WriteFile(a, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("two"), 0o644))

	j, err := OpenDir(filepath.Join(dir, "journal"))
	require.NoError(t, err)
	require.NoError(t, j.Save([]Entry{rewrite(t, a, "one!"), rewrite(t, b, "two!")}))

	require.NoError(t, os.WriteFile(b, []byte("edited by hand"), 0o644))

	_, err = j.Undo()
	require.ErrorIs(t, err, fix.ErrStaleFile)

	// nothing was restored and the record survives
	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "one!", string(got))
	_, ok, err := j.Last()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSaveEmptyKeepsPreviousRun(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.cs")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))

	j, err := OpenDir(filepath.Join(dir, "journal"))
	require.NoError(t, err)
	require.NoError(t, j.Save([]Entry{rewrite(t, a, "y")}))
	require.NoError(t, j.Save(nil))

	_, ok, err := j.Last()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenUsesXDGCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	j, err := Open("localtofield")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "localtofield", "journal"), j.Dir())

	_, ok, err := j.Last()
	require.NoError(t, err)
	assert.False(t, ok)
}
