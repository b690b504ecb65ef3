// Package options contains the program options.
package options

import "time"

// Default and maximum option values.
const (
	DefaultRate   = 700
	DefaultFPS    = 60
	DefaultLayout = "qwerty"
	DefaultHold   = 150 * time.Millisecond

	MaxRate = 1_000_000
	MaxFPS  = 1000
)

// Parameters contains file path options.
type Parameters struct {
	Input     string `flag:"i" usage:"input ROM file"`
	Wav       string `flag:"wav" usage:"record the beeper to a .wav file"`
	StatsView string `flag:"statsview" usage:"address to serve runtime statistics on"`
}

// Flags contains behavior options.
type Flags struct {
	Rate     int           `flag:"rate" usage:"instructions executed per second" default:"700"`
	FPS      int           `flag:"fps" usage:"display refreshes per second" default:"60"`
	Cycles   uint64        `flag:"cycles" usage:"stop after executing this many instructions (0: no limit)"`
	Seed     uint64        `flag:"seed" usage:"seed for the random number instruction (0: random)"`
	Layout   string        `flag:"layout" usage:"keyboard layout: qwerty, hex" default:"qwerty"`
	Hold     time.Duration `flag:"hold" usage:"duration a key stays pressed after a terminal key event" default:"150ms"`
	Headless bool          `flag:"headless" usage:"run without terminal input and output, dump the display at exit"`
	Debug    bool          `flag:"debug" usage:"enable debug logging and instruction tracing"`
	Quiet    bool          `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
}

// New returns a new options instance with default options.
func New() Program {
	return Program{
		Flags: Flags{
			Rate:   DefaultRate,
			FPS:    DefaultFPS,
			Layout: DefaultLayout,
			Hold:   DefaultHold,
		},
	}
}
