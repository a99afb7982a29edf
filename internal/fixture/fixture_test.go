package fixture

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	docRoot := t.TempDir()

	return NewManager(docRoot, logger), docRoot
}

func TestCreate(t *testing.T) {
	m, docRoot := newTestManager(t)

	binary := []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0x80, 0x81, 0x82}

	path, err := m.Create("/static/misc/test_binary.bin", binary, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(docRoot, "static", "misc", "test_binary.bin"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, binary, content)

	records := m.Records()
	require.Len(t, records, 1)
	assert.Equal(t, path, records[0].Path)
	assert.True(t, records[0].IsBinary)
}

func TestCreateWithMode(t *testing.T) {
	m, _ := newTestManager(t)

	path, err := m.Create("cgi-bin/test_env.cgi", []byte("#!/bin/sh\necho\n"), false, WithMode(0o755))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCreateOutsideDocRoot(t *testing.T) {
	m, _ := newTestManager(t)

	for _, p := range []string{"../escape.txt", "static/../../escape.txt", ""} {
		_, err := m.Create(p, []byte("x"), false)
		assert.Error(t, err, p)
	}

	assert.Empty(t, m.Records())
}

func TestCleanup(t *testing.T) {
	m, _ := newTestManager(t)

	first, err := m.Create("static/a.txt", []byte("a"), false)
	require.NoError(t, err)
	second, err := m.Create("static/b.txt", []byte("b"), false)
	require.NoError(t, err)

	// already absent files are not an error
	require.NoError(t, os.Remove(first))

	require.NoError(t, m.Cleanup())

	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, m.Records())

	// second call finds nothing to do
	assert.NoError(t, m.Cleanup())
}

func TestCleanupContinuesAfterFailure(t *testing.T) {
	m, docRoot := newTestManager(t)

	blocked, err := m.Create("static/blocked.txt", []byte("x"), false)
	require.NoError(t, err)
	last, err := m.Create("static/last.txt", []byte("y"), false)
	require.NoError(t, err)

	// a non-empty directory in place of the file can't be removed
	require.NoError(t, os.Remove(blocked))
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))
	t.Cleanup(func() { os.RemoveAll(filepath.Join(docRoot, "static")) })

	err = m.Cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked.txt")

	_, err = os.Stat(last)
	assert.True(t, os.IsNotExist(err))
}
