package storage

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

const testGUID = "7f8b3c2a-1d4e-4f5a-9b6c-0d1e2f3a4b5c"

func TestParseVariable(t *testing.T) {
	name, guid, err := ParseVariable("SYSTEM_A-" + testGUID)
	require.NoError(t, err)
	assert.Equal(t, "SYSTEM_A", name)
	assert.Equal(t, testGUID, guid.String())

	for _, bad := range []string{
		"SYSTEM_A",
		"-" + testGUID,
		"SYSTEM_A_" + testGUID,
		"SYSTEM_A-7f8b3c2a-1d4e-4f5a-9b6c-0d1e2f3a4bzz",
		"../../etc/passwd-" + testGUID,
		"sub/USER_A-" + testGUID,
		"..\\USER_A-" + testGUID,
	} {
		_, _, err := ParseVariable(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, bad)
	}
}

func TestEFIBackend_OpenStaysInDir(t *testing.T) {
	dir := t.TempDir()
	b := NewEFIBackend(filepath.Join(dir, "efivars"), nil)

	_, err := b.Open("../escape-" + testGUID)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.NoFileExists(t, filepath.Join(dir, "escape-"+testGUID))
}

func TestEFIHandle_WriteRead(t *testing.T) {
	dir := t.TempDir()
	h, err := NewEFIBackend(dir, nil).Open("USER_A-" + testGUID)
	require.NoError(t, err)
	defer h.Close()

	n, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, h.Write([]byte("long=value\n")))
	require.NoError(t, h.Write([]byte("a=1\n")))

	raw, err := os.ReadFile(filepath.Join(dir, "USER_A-"+testGUID))
	require.NoError(t, err)
	require.Len(t, raw, 8)
	assert.Equal(t, uint32(efiAttributes), binary.LittleEndian.Uint32(raw))

	n, err = h.Size()
	require.NoError(t, err)
	require.Equal(t, 4, n)

	buf := make([]byte, n)
	require.NoError(t, h.Read(buf))
	assert.Equal(t, "a=1\n", string(buf))
	assert.Equal(t, "USER_A-"+testGUID, h.Section())
}

func TestEFIHandle_Truncated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "USER_A-"+testGUID), []byte{7, 0}, 0o644))

	h, err := NewEFIBackend(dir, nil).Open("USER_A-" + testGUID)
	require.NoError(t, err)

	_, err = h.Size()
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, h.Read(nil), domain.ErrIO)
}
