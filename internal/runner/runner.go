// Package runner drives a machine in real time and connects it to the host
// keyboard, display and sound output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/sound"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// KeySource provides the keypad state that is applied before every step.
type KeySource interface {
	Keypad() vm.Keypad
}

// Renderer outputs the framebuffer.
type Renderer interface {
	Render(fb *vm.Framebuffer) error
}

// Beeper receives the beeper state after every step.
type Beeper interface {
	Sample(active bool) error
	Close() error
}

// Runner owns a machine and executes it at the configured instruction rate.
type Runner struct {
	logger  *log.Logger
	opts    options.Program
	pacing  config.Pacing
	loader  *loader.Loader
	machine *vm.Machine

	keys     KeySource
	renderer Renderer
	beeper   Beeper
	output   io.Writer
}

// Option configures a runner.
type Option func(*Runner)

// WithKeySource sets the keypad source instead of the terminal keyboard.
func WithKeySource(keys KeySource) Option {
	return func(r *Runner) {
		r.keys = keys
	}
}

// WithRenderer sets the renderer instead of the terminal display.
func WithRenderer(renderer Renderer) Option {
	return func(r *Runner) {
		r.renderer = renderer
	}
}

// WithBeeper sets the beeper instead of the WAV file recorder.
func WithBeeper(beeper Beeper) Option {
	return func(r *Runner) {
		r.beeper = beeper
	}
}

// WithOutput sets the writer that the display is dumped to in headless mode.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// New creates a new runner for the given program options.
func New(logger *log.Logger, opts options.Program, runnerOptions ...Option) *Runner {
	machineOptions := []vm.Option{
		vm.WithLogger(logger),
		vm.WithTrace(opts.Debug),
	}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, vm.WithSeed(opts.Seed))
	}

	r := &Runner{
		logger:  logger,
		opts:    opts,
		pacing:  config.CreatePacing(opts),
		loader:  loader.New(logger),
		machine: vm.New(machineOptions...),
		output:  os.Stdout,
	}
	for _, option := range runnerOptions {
		option(r)
	}
	return r
}

// Machine returns the machine that the runner executes.
func (r *Runner) Machine() *vm.Machine {
	return r.machine
}

// Run loads the input ROM, sets up the host input and output and executes
// the ROM until the context is done, the cycle limit is reached or the
// machine faults. Pressing escape in the terminal stops the run with
// keypad.ErrQuit.
func (r *Runner) Run(ctx context.Context) error {
	rom, err := r.loader.Load(r.opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	app.PrintInfo(r.logger, r.opts, rom)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	cleanup, err := r.setupHost(ctx, cancel)
	defer cleanup()
	if err != nil {
		return err
	}

	return r.Execute(ctx, rom)
}

// Execute runs the ROM with the configured collaborators.
func (r *Runner) Execute(ctx context.Context, rom []byte) error {
	if err := r.machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}

	ticker := time.NewTicker(r.pacing.StepInterval)
	defer ticker.Stop()

	stepsPerFrame := uint64(r.pacing.StepsPerFrame())

	for {
		select {
		case <-ctx.Done():
			return r.finish(context.Cause(ctx))
		case <-ticker.C:
		}

		if err := r.step(stepsPerFrame); err != nil {
			return r.finish(err)
		}

		if r.pacing.MaxCycles > 0 && r.machine.Cycles() >= r.pacing.MaxCycles {
			r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.machine.Cycles())))
			return r.finish(nil)
		}
	}
}

func (r *Runner) step(stepsPerFrame uint64) error {
	if r.keys != nil {
		r.machine.SetKeypad(r.keys.Keypad())
	}

	if err := r.machine.Step(); err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}

	if r.beeper != nil {
		if err := r.beeper.Sample(r.machine.SoundTimer() > 0); err != nil {
			return fmt.Errorf("recording beeper: %w", err)
		}
	}

	if r.renderer != nil && r.machine.Cycles()%stepsPerFrame == 0 {
		if err := r.renderer.Render(r.machine.Framebuffer()); err != nil {
			return fmt.Errorf("rendering display: %w", err)
		}
	}
	return nil
}

// finish outputs the final display state and returns the error that ended the run.
func (r *Runner) finish(runErr error) error {
	errs := []error{runErr}

	if r.renderer != nil {
		if err := r.renderer.Render(r.machine.Framebuffer()); err != nil {
			errs = append(errs, fmt.Errorf("rendering display: %w", err))
		}
	}

	if r.opts.Headless {
		if err := display.Dump(r.output, r.machine.Framebuffer()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// setupHost creates the collaborators that were not passed as options.
// The returned cleanup function is always safe to call.
func (r *Runner) setupHost(ctx context.Context, cancel context.CancelCauseFunc) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if r.beeper == nil && r.opts.Wav != "" {
		recorder, err := sound.Create(r.opts.Wav, r.opts.Rate)
		if err != nil {
			return cleanup, fmt.Errorf("creating beeper recording: %w", err)
		}
		r.beeper = recorder
	}
	if r.beeper != nil {
		beeper := r.beeper
		closers = append(closers, func() {
			if err := beeper.Close(); err != nil {
				r.logger.Error("Closing beeper recording failed", log.Err(err))
			}
		})
	}

	if r.opts.Headless {
		return cleanup, nil
	}

	if r.renderer == nil {
		if err := display.CheckSize(os.Stdout); err != nil {
			return cleanup, fmt.Errorf("checking display: %w", err)
		}
		screen := display.NewTerminal(os.Stdout)
		r.renderer = screen
		closers = append(closers, func() { _ = screen.Close() })
	}

	if r.keys == nil {
		closeInput, err := r.startKeyboard(ctx, cancel)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, closeInput)
	}

	return cleanup, nil
}

// startKeyboard switches the terminal into raw input mode and reads key
// presses in a new goroutine.
func (r *Runner) startKeyboard(ctx context.Context, cancel context.CancelCauseFunc) (func(), error) {
	layout, err := keypad.LayoutByName(r.opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("selecting keyboard layout: %w", err)
	}

	terminal, err := keypad.OpenTerminal(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("opening keyboard: %w", err)
	}

	state := keypad.NewState(r.opts.Hold)
	reader := keypad.NewReader(layout, state)
	r.keys = state

	done := make(chan struct{})
	go func() {
		defer close(done)

		err := reader.Run(ctx, terminal)
		switch {
		case errors.Is(err, keypad.ErrQuit):
			cancel(err)
		case err != nil && ctx.Err() == nil:
			r.logger.Error("Reading keyboard input failed", log.Err(err))
		}
	}()

	// the reader has to stop before the terminal configuration is restored
	return func() {
		cancel(nil)
		<-done
		if err := terminal.Close(); err != nil {
			r.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}, nil
}
