package sound

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestRecorder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "beep.wav")

	r, err := Create(filename, 441)
	assert.NoError(t, err)

	for range 10 {
		assert.NoError(t, r.Sample(true))
	}
	for range 10 {
		assert.NoError(t, r.Sample(false))
	}
	assert.Equal(t, 2000, r.Samples())
	assert.NoError(t, r.Close())

	f, err := os.Open(filename)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	assert.True(t, decoder.IsValidFile())
	assert.Equal(t, uint32(SampleRate), decoder.SampleRate)
	assert.Equal(t, uint16(Channels), decoder.NumChans)
	assert.Equal(t, uint16(BitDepth), decoder.BitDepth)

	buf, err := decoder.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Len(t, buf.Data, 2000)

	assert.Equal(t, amplitude, buf.Data[0])
	assert.Equal(t, -amplitude, buf.Data[50])
	assert.Equal(t, 0, buf.Data[1500])
}

func TestRecorderFractionalSamples(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "beep.wav")

	r, err := Create(filename, 700)
	assert.NoError(t, err)

	for range 700 {
		assert.NoError(t, r.Sample(false))
	}
	// one second of steps produces one second of audio, give or take rounding
	assert.True(t, r.Samples() >= SampleRate-1 && r.Samples() <= SampleRate)
	assert.NoError(t, r.Close())
}

func TestNewInvalidRate(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "beep.wav"), 0)
	assert.Error(t, err)
}
