package keypad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// ErrQuit is returned by the reader when the escape key was pressed.
var ErrQuit = errors.New("quit requested")

const escape = 0x1B

// Reader feeds characters read from a terminal into a key state.
type Reader struct {
	layout Layout
	state  *State
	now    func() time.Time
}

// NewReader returns a new reader that maps characters using the given layout.
func NewReader(layout Layout, state *State) *Reader {
	return &Reader{
		layout: layout,
		state:  state,
		now:    time.Now,
	}
}

// Run reads the input until it fails, the context is done or the escape key
// was pressed, in which case ErrQuit is returned. The context is checked
// after every read, inputs like Terminal return from Read periodically
// without data so that Run ends soon after the context is done.
func (r *Reader) Run(ctx context.Context, input io.Reader) error {
	buf := make([]byte, 64)

	for {
		n, err := input.Read(buf)
		if ctx.Err() != nil {
			return fmt.Errorf("reading input: %w", ctx.Err())
		}
		if n > 0 {
			if quit := r.process(buf[:n]); quit {
				return ErrQuit
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// process handles a chunk of input and returns whether quitting was requested.
// A lone escape quits, escape sequences of special keys are ignored.
func (r *Reader) process(data []byte) bool {
	if len(data) == 1 && data[0] == escape {
		return true
	}
	if len(data) > 0 && data[0] == escape {
		return false
	}

	now := r.now()
	for len(data) > 0 {
		c, size := utf8.DecodeRune(data)
		data = data[size:]

		if key, ok := r.layout.Lookup(c); ok {
			r.state.Press(key, now)
		}
	}
	return false
}
