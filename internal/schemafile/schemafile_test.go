package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.prisma"))
	assert.Error(t, err)
}

func TestWriteAtomicRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.prisma")

	require.NoError(t, WriteAtomic(path, "model User {\n}\n"))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "model User {\n}\n", got)
}

func TestWriteAtomicOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.prisma")

	require.NoError(t, WriteAtomic(path, "first"))
	require.NoError(t, WriteAtomic(path, "second"))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
