// Package app provides the application helpers for the interpreter.
package app

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Name of the application.
const Name = "chip8vm"

// PrintBanner prints the application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(Name+" - CHIP-8 interpreter",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the ROM and the host settings it runs with.
func PrintInfo(logger *log.Logger, opts options.Program, rom []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.Int("rate", opts.Rate),
		log.String("layout", opts.Layout),
	)

	if len(rom)%2 != 0 {
		logger.Warn("ROM size is odd, the last instruction is incomplete")
	}
	if opts.Headless {
		logger.Info("Headless mode, the display is printed on exit")
	}
	if opts.Wav != "" {
		logger.Info("Recording beeper", log.String("file", opts.Wav))
	}
}
