// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Pacing contains the host timing that drives the machine. The machine
// decrements its timers once per step, so the step interval also defines
// the timer rate.
type Pacing struct {
	StepInterval  time.Duration
	FrameInterval time.Duration
	MaxCycles     uint64 // 0 means no limit
}

// CreatePacing returns the pacing configured by the program options.
func CreatePacing(opts options.Program) Pacing {
	return Pacing{
		StepInterval:  time.Second / time.Duration(opts.Rate),
		FrameInterval: time.Second / time.Duration(opts.FPS),
		MaxCycles:     opts.Cycles,
	}
}

// StepsPerFrame returns how many steps are executed between two display refreshes.
func (p Pacing) StepsPerFrame() int {
	if p.StepInterval <= 0 {
		return 1
	}
	steps := int(p.FrameInterval / p.StepInterval)
	return max(steps, 1)
}
