// Package sound records the machine beeper to WAV files. The beeper sounds
// while the sound timer is not zero.
package sound

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Output format of the recorded beeper.
const (
	SampleRate = 44100
	BitDepth   = 16
	Channels   = 1
	ToneHz     = 440

	amplitude  = 8000
	pcmFormat  = 1
	flushLimit = 4096
)

// Recorder converts the per step beeper state into a square wave.
type Recorder struct {
	closer  io.Closer
	encoder *wav.Encoder
	buffer  *audio.IntBuffer

	samplesPerStep float64
	pending        float64 // fractional samples carried to the next step
	phase          int
	halfPeriod     int
	samples        int
}

// Create creates the named WAV file and returns a recorder writing to it.
// stepRate is the number of machine steps per second.
func Create(filename string, stepRate int) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("creating file '%s': %w", filename, err)
	}

	r, err := New(f, stepRate)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// New returns a recorder writing to w. stepRate is the number of machine steps per second.
func New(w io.WriteSeeker, stepRate int) (*Recorder, error) {
	if stepRate <= 0 {
		return nil, fmt.Errorf("invalid step rate %d", stepRate)
	}

	return &Recorder{
		encoder: wav.NewEncoder(w, SampleRate, BitDepth, Channels, pcmFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: Channels,
				SampleRate:  SampleRate,
			},
			SourceBitDepth: BitDepth,
			Data:           make([]int, 0, flushLimit),
		},
		samplesPerStep: float64(SampleRate) / float64(stepRate),
		halfPeriod:     SampleRate / (2 * ToneHz),
	}, nil
}

// Sample appends the audio of one machine step, a tone if active is set and
// silence otherwise.
func (r *Recorder) Sample(active bool) error {
	r.pending += r.samplesPerStep
	count := int(r.pending)
	r.pending -= float64(count)

	for range count {
		value := 0
		if active {
			value = amplitude
			if (r.phase/r.halfPeriod)%2 == 1 {
				value = -amplitude
			}
			r.phase++
		}
		r.buffer.Data = append(r.buffer.Data, value)
	}
	r.samples += count

	if len(r.buffer.Data) >= flushLimit {
		return r.flush()
	}
	return nil
}

// Samples returns the number of samples recorded so far.
func (r *Recorder) Samples() int {
	return r.samples
}

func (r *Recorder) flush() error {
	if len(r.buffer.Data) == 0 {
		return nil
	}
	if err := r.encoder.Write(r.buffer); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	r.buffer.Data = r.buffer.Data[:0]
	return nil
}

// Close writes the remaining samples and finalizes the WAV header.
func (r *Recorder) Close() error {
	var errs []error
	if err := r.flush(); err != nil {
		errs = append(errs, err)
	}
	if err := r.encoder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing encoder: %w", err))
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing file: %w", err))
		}
	}
	return errors.Join(errs...)
}
