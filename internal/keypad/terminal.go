//go:build unix

package keypad

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// pollTimeout is the longest time in milliseconds that a Read waits for input.
const pollTimeout = 100

// Terminal switches a terminal into non canonical mode without echo, so that
// every key press is delivered immediately.
type Terminal struct {
	input    *os.File
	original unix.Termios
}

// OpenTerminal configures the terminal of the given input file.
// Close restores the original configuration.
func OpenTerminal(input *os.File) (*Terminal, error) {
	t := &Terminal{
		input: input,
	}

	if err := termios.Tcgetattr(input.Fd(), &t.original); err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}

	attributes := t.original
	attributes.Lflag &^= unix.ICANON | unix.ECHO
	attributes.Cc[unix.VMIN] = 1
	attributes.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(input.Fd(), termios.TCSANOW, &attributes); err != nil {
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}
	return t, nil
}

// Read waits up to pollTimeout for input and reads it. It returns 0 and no
// error if no input arrived, so that a reader loop can check for
// cancellation without blocking on the terminal.
func (t *Terminal) Read(p []byte) (int, error) {
	fds := []unix.PollFd{{Fd: int32(t.input.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollTimeout)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("polling input: %w", err)
	}
	if n == 0 {
		return 0, nil
	}
	return t.input.Read(p)
}

// Close restores the original terminal configuration.
func (t *Terminal) Close() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.original); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}
