package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	rom := bytes.Repeat([]byte{0xAA, 0x55}, 0x2000)
	dir := t.TempDir()

	t.Run("raw", func(t *testing.T) {
		path := filepath.Join(dir, "game.gb")
		require.NoError(t, os.WriteFile(path, rom, 0o644))

		data, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})
	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(rom)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "game.gb.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		data, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("game.gb")
		require.NoError(t, err)
		_, err = f.Write(rom)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "game.ZIP")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		data, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})
	t.Run("empty zip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, zip.NewWriter(&buf).Close())

		_, err := Decompress("empty.zip", buf.Bytes())
		assert.ErrorIs(t, err, ErrEmptyArchive)
	})
	t.Run("corrupt 7z", func(t *testing.T) {
		_, err := Decompress("game.7z", rom)
		assert.Error(t, err)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.gb"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestBytes(t *testing.T) {
	assert.Equal(t, uint16(0x1234), BytesToUint16(0x12, 0x34))
	upper, lower := Uint16ToBytes(0xBEEF)
	assert.Equal(t, uint8(0xBE), upper)
	assert.Equal(t, uint8(0xEF), lower)
}
