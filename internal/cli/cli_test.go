package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // table driven test
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{
					Rate:   options.DefaultRate,
					FPS:    options.DefaultFPS,
					Layout: options.DefaultLayout,
					Hold:   options.DefaultHold,
				},
			},
		},
		{
			name: "input flag",
			args: []string{"-i", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{
					Rate:   options.DefaultRate,
					FPS:    options.DefaultFPS,
					Layout: options.DefaultLayout,
					Hold:   options.DefaultHold,
				},
			},
		},
		{
			name: "all flags",
			args: []string{
				"-rate", "1000", "-fps", "30", "-cycles", "5000", "-seed", "7",
				"-layout", "HEX", "-hold", "200ms", "-headless", "-debug", "-q",
				"-wav", "out.wav", "-statsview", "localhost:18066", "pong.ch8",
			},
			want: options.Program{
				Parameters: options.Parameters{
					Input:     "pong.ch8",
					Wav:       "out.wav",
					StatsView: "localhost:18066",
				},
				Flags: options.Flags{
					Rate:     1000,
					FPS:      30,
					Cycles:   5000,
					Seed:     7,
					Layout:   "hex",
					Hold:     200 * time.Millisecond,
					Headless: true,
					Debug:    true,
					Quiet:    true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{}},
		{"flag after rom file", []string{"pong.ch8", "-debug"}},
		{"unknown flag", []string{"-unknown", "pong.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestUsageErrorWriteUsage(t *testing.T) {
	_, err := ParseFlags([]string{"pong.ch8", "-debug"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.WriteUsage(&buf)
	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "Potential argument -debug found after ROM file"))
	assert.True(t, strings.Contains(output, "usage: chip8vm"))
	assert.True(t, strings.Contains(output, "-rate"))

	buf.Reset()
	_, err = ParseFlags(nil)
	assert.True(t, errors.As(err, &usageErr))
	usageErr.WriteUsage(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "usage: chip8vm"))
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(opts *options.Program)
		expectError bool
	}{
		{"defaults", func(opts *options.Program) {}, false},
		{"uppercase layout", func(opts *options.Program) { opts.Layout = "QWERTY" }, false},
		{"unknown layout", func(opts *options.Program) { opts.Layout = "dvorak" }, true},
		{"zero rate", func(opts *options.Program) { opts.Rate = 0 }, true},
		{"negative fps", func(opts *options.Program) { opts.FPS = -1 }, true},
		{"maximum rate", func(opts *options.Program) { opts.Rate = options.MaxRate }, false},
		{"rate above maximum", func(opts *options.Program) { opts.Rate = 2_000_000_000 }, true},
		{"fps above maximum", func(opts *options.Program) { opts.FPS = options.MaxFPS + 1 }, true},
		{"zero hold", func(opts *options.Program) { opts.Hold = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.New()
			tt.modify(&opts)

			err := normalizeOptions(&opts)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
