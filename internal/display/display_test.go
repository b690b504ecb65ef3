package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestDump(t *testing.T) {
	var fb vm.Framebuffer
	fb[0] = vm.PixelOn
	fb[vm.DisplayWidth*vm.DisplayHeight-1] = vm.PixelOn

	var buf bytes.Buffer
	assert.NoError(t, Dump(&buf, &fb))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, vm.DisplayHeight)
	assert.Equal(t, "#"+strings.Repeat(".", vm.DisplayWidth-1), lines[0])
	assert.Equal(t, strings.Repeat(".", vm.DisplayWidth), lines[1])
	assert.Equal(t, strings.Repeat(".", vm.DisplayWidth-1)+"#", lines[vm.DisplayHeight-1])
}

func TestTerminalRender(t *testing.T) {
	var fb vm.Framebuffer
	fb[0] = vm.PixelOn                // x 0, y 0: upper half
	fb[vm.DisplayWidth+1] = vm.PixelOn // x 1, y 1: lower half
	fb[2] = vm.PixelOn                // x 2, y 0 and 1: full block
	fb[vm.DisplayWidth+2] = vm.PixelOn

	var buf bytes.Buffer
	renderer := NewTerminal(&buf)
	assert.NoError(t, renderer.Render(&fb))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, hideCursor+clearAll+cursorHome))

	rows := strings.Split(strings.TrimPrefix(output, hideCursor+clearAll+cursorHome), "\r\n")
	assert.Len(t, rows, TextRows+1)
	assert.True(t, strings.HasPrefix(rows[0], blockUpper+blockLower+blockFull+blockEmpty))
	assert.Equal(t, strings.Repeat(blockEmpty, vm.DisplayWidth), rows[1])
}

func TestTerminalRenderSkipsUnchangedFrames(t *testing.T) {
	var fb vm.Framebuffer
	var buf bytes.Buffer
	renderer := NewTerminal(&buf)

	assert.NoError(t, renderer.Render(&fb))
	size := buf.Len()

	assert.NoError(t, renderer.Render(&fb))
	assert.Equal(t, size, buf.Len())

	fb[5] = vm.PixelOn
	assert.NoError(t, renderer.Render(&fb))
	assert.True(t, buf.Len() > size)

	assert.NoError(t, renderer.Close())
	assert.True(t, strings.HasSuffix(buf.String(), showCursor))
}

func TestCheckSizeNotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	err = CheckSize(f)
	assert.ErrorContains(t, err, "not a terminal")
}
