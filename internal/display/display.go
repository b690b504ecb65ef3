// Package display renders the machine framebuffer to text terminals.
package display

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
	"golang.org/x/term"
)

// ANSI escape sequences.
const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Characters combining two vertically adjacent pixels into one text cell.
const (
	blockEmpty = " "
	blockUpper = "▀"
	blockLower = "▄"
	blockFull  = "█"
)

// TextRows is the number of terminal rows the display occupies.
const TextRows = vm.DisplayHeight / 2

// Terminal renders the framebuffer using half block characters, so that
// each text row shows two pixel rows.
type Terminal struct {
	out   io.Writer
	buf   bytes.Buffer
	last  vm.Framebuffer
	drawn bool
}

// NewTerminal returns a new terminal renderer writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
	}
}

// Render draws the framebuffer if it changed since the last call.
func (t *Terminal) Render(fb *vm.Framebuffer) error {
	if t.drawn && t.last == *fb {
		return nil
	}

	t.buf.Reset()
	if !t.drawn {
		t.buf.WriteString(hideCursor)
		t.buf.WriteString(clearAll)
	}
	t.buf.WriteString(cursorHome)
	writeBlocks(&t.buf, fb)

	if _, err := t.out.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	t.last = *fb
	t.drawn = true
	return nil
}

// Close restores the cursor.
func (t *Terminal) Close() error {
	if !t.drawn {
		return nil
	}
	if _, err := io.WriteString(t.out, showCursor); err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	return nil
}

func writeBlocks(buf *bytes.Buffer, fb *vm.Framebuffer) {
	for row := range TextRows {
		for x := range vm.DisplayWidth {
			upper := fb.Pixel(x, row*2)
			lower := fb.Pixel(x, row*2+1)

			switch {
			case upper && lower:
				buf.WriteString(blockFull)
			case upper:
				buf.WriteString(blockUpper)
			case lower:
				buf.WriteString(blockLower)
			default:
				buf.WriteString(blockEmpty)
			}
		}
		buf.WriteString("\r\n")
	}
}

// CheckSize returns an error if the file is not a terminal or is too small
// to show the display.
func CheckSize(f *os.File) error {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("output '%s' is not a terminal", f.Name())
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < vm.DisplayWidth || height < TextRows {
		return fmt.Errorf("terminal size %dx%d is smaller than the required %dx%d",
			width, height, vm.DisplayWidth, TextRows)
	}
	return nil
}

// Dump writes the framebuffer as plain text, one line per pixel row with
// '#' for pixels that are on and '.' for pixels that are off.
func Dump(w io.Writer, fb *vm.Framebuffer) error {
	line := make([]byte, vm.DisplayWidth+1)
	line[vm.DisplayWidth] = '\n'

	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			if fb.Pixel(x, y) {
				line[x] = '#'
			} else {
				line[x] = '.'
			}
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing display dump: %w", err)
		}
	}
	return nil
}
