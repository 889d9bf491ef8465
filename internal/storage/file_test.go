package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

func TestFileHandle_MissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system_a")
	h, err := NewFileBackend(nil).Open(path)
	require.NoError(t, err)
	defer h.Close()

	n, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, path, h.Section())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "open must not create the section")
}

func TestFileHandle_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "user_a")
	h, err := NewFileBackend(nil).Open(path)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Write([]byte("key=value\n")))
	require.NoError(t, h.Write([]byte("k=v\n")))

	n, err := h.Size()
	require.NoError(t, err)
	require.Equal(t, 4, n)

	buf := make([]byte, n)
	require.NoError(t, h.Read(buf))
	assert.Equal(t, "k=v\n", string(buf))

	_, err = os.Stat(path + tmpSuffix)
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")
}

func TestFileHandle_ReadSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_a")
	require.NoError(t, os.WriteFile(path, []byte("a=1\n"), 0o644))

	h, err := NewFileBackend(nil).Open(path)
	require.NoError(t, err)

	err = h.Read(make([]byte, 3))
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestFileHandle_Directory(t *testing.T) {
	h, err := NewFileBackend(nil).Open(t.TempDir())
	require.NoError(t, err)

	_, err = h.Size()
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestFileHandle_CloseIdempotent(t *testing.T) {
	h, err := NewFileBackend(nil).Open(filepath.Join(t.TempDir(), "x"))
	require.NoError(t, err)
	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())
}
