package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisasmFile(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "test.ch8")
	output := filepath.Join(tmpDir, "test.asm")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x00}, 0600))

	err := disasmFile(optionFlags{input: input, output: output, noHexComments: true})
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	listing := string(data)
	assert.True(t, strings.HasPrefix(listing, "Start:\n"))
	assert.Contains(t, listing, "; $0202")
	assert.False(t, strings.Contains(listing, "12 00"))
}

func TestDisasmFileMissingInput(t *testing.T) {
	err := disasmFile(optionFlags{input: filepath.Join(t.TempDir(), "missing.ch8")})
	assert.ErrorContains(t, err, "loading file")
}
