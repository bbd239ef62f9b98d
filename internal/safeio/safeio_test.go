package safeio

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS(t *testing.T) (*SafeFS, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewSafeFS(dir)
	require.NoError(t, err)
	return fs, fs.Root()
}

func TestReadLinesKeepsTerminators(t *testing.T) {
	fs, dir := newFS(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.swift"), []byte("a\r\nb\nc"), 0o644))

	lines, err := fs.ReadLines("a.swift")
	require.NoError(t, err)
	assert.Equal(t, []string{"a\r\n", "b\n", "c"}, lines)
}

func TestReadLinesAbsoluteUnderRoot(t *testing.T) {
	fs, dir := newFS(t)
	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello\n"), 0o644))

	lines, err := fs.ReadLines(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello\n"}, lines)
}

func TestReadLinesRejectsEscapes(t *testing.T) {
	fs, _ := newFS(t)
	outside := filepath.Join(t.TempDir(), "b.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	_, err := fs.ReadLines("../b.txt")
	assert.Error(t, err)
	_, err = fs.ReadLines(outside)
	assert.ErrorContains(t, err, "outside root")
	_, err = fs.ReadLines("")
	assert.Error(t, err)
	_, err = fs.ReadLines("missing.swift")
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestReadLinesDirectory(t *testing.T) {
	fs, dir := newFS(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	_, err := fs.ReadLines("sub")
	assert.ErrorContains(t, err, "directory")
}

func TestWriteLinesAtomic(t *testing.T) {
	fs, dir := newFS(t)
	p := filepath.Join(dir, "View.swift")
	require.NoError(t, os.WriteFile(p, []byte("old\n"), 0o600))

	require.NoError(t, fs.WriteLinesAtomic("View.swift", []string{"new\n", "content"}))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new\ncontent", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteLinesAtomicRequiresExistingFile(t *testing.T) {
	fs, dir := newFS(t)
	err := fs.WriteLinesAtomic("missing.swift", []string{"x\n"})
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewSafeFSRejectsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	_, err := NewSafeFS(p)
	assert.Error(t, err)
	_, err = NewSafeFS("")
	assert.Error(t, err)
}
