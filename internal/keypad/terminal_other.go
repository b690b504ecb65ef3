//go:build !unix

package keypad

import (
	"errors"
	"os"
)

// Terminal is not supported on this platform.
type Terminal struct{}

// OpenTerminal returns an error as terminal configuration is not supported on this platform.
func OpenTerminal(input *os.File) (*Terminal, error) {
	return nil, errors.New("terminal input is not supported on this platform, use -headless")
}

// Read returns an error as terminal input is not supported on this platform.
func (t *Terminal) Read(_ []byte) (int, error) {
	return 0, errors.New("terminal input is not supported on this platform")
}

// Close does nothing.
func (t *Terminal) Close() error {
	return nil
}
