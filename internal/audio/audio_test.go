package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestTone(t *testing.T) {
	tone := NewTone(SampleRate, ToneFrequency, Amplitude)
	assert.Equal(t, SampleRate/ToneFrequency, tone.Period())

	samples := make([]int16, tone.Period()*2)
	tone.Fill(samples, true)

	half := tone.Period() / 2
	for i, sample := range samples {
		expected := int16(Amplitude)
		if i%tone.Period() >= half {
			expected = -Amplitude
		}
		assert.Equal(t, expected, sample, "sample %d", i)
	}

	tone.Fill(samples, false)
	for _, sample := range samples {
		assert.Equal(t, int16(0), sample)
	}

	// the wave restarts after silence
	tone.Fill(samples[:1], true)
	assert.Equal(t, int16(Amplitude), samples[0])
}

func TestTone_MinimumPeriod(t *testing.T) {
	tone := NewTone(100, 1000, 1)
	assert.Equal(t, 2, tone.Period())
}

func TestBeeper(t *testing.T) {
	beeper := NewBeeper()
	assert.False(t, beeper.Active())

	buf := make([]byte, 9)
	n, err := beeper.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	for _, b := range buf[:n] {
		assert.Equal(t, byte(0), b)
	}

	beeper.SetActive(true)
	assert.True(t, beeper.Active())
	n, err = beeper.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, int16(Amplitude), int16(binary.LittleEndian.Uint16(buf)))
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buzzer.wav")

	recorder, err := NewRecorder(path)
	assert.NoError(t, err)
	assert.NoError(t, recorder.Record(true))
	assert.NoError(t, recorder.Record(false))
	assert.Equal(t, 2, recorder.Frames())
	assert.NoError(t, recorder.Close())

	file, err := os.Open(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	header := make([]byte, 12)
	_, err = file.ReadAt(header, 0)
	assert.NoError(t, err)
	assert.Equal(t, "RIFF", string(header[:4]))
	assert.Equal(t, "WAVE", string(header[8:12]))

	dec := wav.NewDecoder(file)
	assert.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Len(t, buf.Data, 2*frameSamples)
	assert.Equal(t, Amplitude, buf.Data[0])
	assert.Equal(t, 0, buf.Data[frameSamples])
}

func TestOutput_MutedRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	output, err := Open(log.NewTestLogger(t), true, path)
	assert.NoError(t, err)
	assert.Nil(t, output.player)

	assert.NoError(t, output.Update(true))
	assert.NoError(t, output.Update(false))
	assert.Equal(t, 2, output.recorder.Frames())
	assert.NoError(t, output.Close())

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 44)
}

func TestOutput_Muted(t *testing.T) {
	output, err := Open(log.NewTestLogger(t), true, "")
	assert.NoError(t, err)
	assert.NoError(t, output.Update(true))
	assert.NoError(t, output.Close())
}

func TestOutput_InvalidWavPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wav")

	_, err := Open(log.NewTestLogger(t), true, path)
	assert.ErrorContains(t, err, "creating recorder")
}
