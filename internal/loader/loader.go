// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyROM is returned for ROM files that contain no data.
var ErrEmptyROM = errors.New("empty ROM")

// knownExtensions lists the file extensions commonly used for ROM images.
var knownExtensions = []string{".ch8", ".c8", ".rom"}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the ROM image stored in the named file. Files that are empty
// or do not fit into the program area of the machine memory are rejected.
func (l *Loader) Load(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	if !hasKnownExtension(filename) {
		l.logger.Debug("Unusual ROM file extension", log.String("file", filename))
	}

	return Read(file)
}

// Read reads a ROM image from the reader.
func Read(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > vm.MaxROMSize:
		return nil, fmt.Errorf("ROM exceeds %d bytes: %w", vm.MaxROMSize, vm.ErrROMTooLarge)
	}
	return data, nil
}

func hasKnownExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(knownExtensions, ext)
}
