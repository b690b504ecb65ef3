// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses the command line arguments and returns the program options.
func ParseFlags(arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.flags = flags
		}
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	e.WriteUsage(os.Stdout)
}

// WriteUsage writes the reason of the error if it has one, followed by the
// usage and all flag defaults.
func (e *UsageError) WriteUsage(w io.Writer) {
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Layout = strings.ToLower(opts.Layout)

	var errs []error
	if opts.Rate <= 0 || opts.Rate > options.MaxRate {
		errs = append(errs, fmt.Errorf("invalid instruction rate %d, must be between 1 and %d", opts.Rate, options.MaxRate))
	}
	if opts.FPS <= 0 || opts.FPS > options.MaxFPS {
		errs = append(errs, fmt.Errorf("invalid display rate %d, must be between 1 and %d", opts.FPS, options.MaxFPS))
	}
	if opts.Hold <= 0 {
		errs = append(errs, fmt.Errorf("invalid key hold duration %s, must be positive", opts.Hold))
	}
	if _, err := keypad.LayoutByName(opts.Layout); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Wav, "wav", "", "name of a .wav file to record the beeper to")
	flags.StringVar(&opts.StatsView, "statsview", "", "address to serve runtime statistics on, for example localhost:18066")
	flags.IntVar(&opts.Rate, "rate", opts.Rate, "instructions executed per second")
	flags.IntVar(&opts.FPS, "fps", opts.FPS, "display refreshes per second")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing this many instructions (0: no limit)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction (0: random)")
	flags.StringVar(&opts.Layout, "layout", opts.Layout, "keyboard layout mapping to the hex keypad (qwerty/hex)")
	flags.DurationVar(&opts.Hold, "hold", opts.Hold, "duration a key stays pressed after a terminal key event")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal input and output, dump the display at exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
