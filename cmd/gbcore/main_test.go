package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/cartridge"
)

func writeROM(t *testing.T, program ...byte) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0104:], cartridge.Logo[:])
	copy(rom[0x0134:], "CLI")
	copy(rom[0x0100:], program)

	path := filepath.Join(t.TempDir(), "test.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func TestRun(t *testing.T) {
	// LD A, $42 ; JR -2
	path := writeROM(t, 0x3E, 0x42, 0x18, 0xFE)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-rom", path, "-steps", "5", "-post-boot"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "CLI Mode: DMG")
	assert.Contains(t, stdout.String(), "A: 42")
	assert.Contains(t, stdout.String(), "SP: FFFE")
	assert.Contains(t, stderr.String(), "executed 5 steps")
}

func TestRun_Fatal(t *testing.T) {
	path := writeROM(t, 0x00, 0xFC)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-rom", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `"opcode":"FC"`)
	assert.Contains(t, stderr.String(), "unimplemented opcode 0xFC at 0x0101")
}

func TestRun_TraceFile(t *testing.T) {
	path := writeROM(t, 0x00, 0x00, 0x00)
	out := filepath.Join(t.TempDir(), "trace.br")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-rom", path, "-steps", "3", "-trace-file", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(brotli.NewReader(f))
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "NOP")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"-rom", "x.gb", "-log-level", "loud"}, &stdout, &stderr))
	assert.Equal(t, 1, run(context.Background(), []string{"-rom", filepath.Join(t.TempDir(), "missing.gb")}, &stdout, &stderr))
}

func TestRun_Strict(t *testing.T) {
	path := writeROM(t)
	rom, err := os.ReadFile(path)
	require.NoError(t, err)
	rom[0x0104] = 0
	require.NoError(t, os.WriteFile(path, rom, 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"-rom", path, "-steps", "1"}, &stdout, &stderr))
	assert.Equal(t, 1, run(context.Background(), []string{"-rom", path, "-strict"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "logo mismatch")
}

func TestRun_BootROM(t *testing.T) {
	path := writeROM(t)
	bootPath := filepath.Join(t.TempDir(), "dmg_boot.bin")
	require.NoError(t, os.WriteFile(bootPath, make([]byte, 0x100), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-rom", path, "-boot", bootPath, "-steps", "2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "PC: 0002")

	require.NoError(t, os.WriteFile(bootPath, make([]byte, 0x10), 0o644))
	assert.Equal(t, 1, run(context.Background(), []string{"-rom", path, "-boot", bootPath}, &stdout, &stderr))
}
