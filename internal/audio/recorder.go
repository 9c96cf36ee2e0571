package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth      = 16
	wavFormatPCM  = 1
	channelsCount = 1
)

// Recorder writes the buzzer output of every timer frame to a WAV file.
type Recorder struct {
	closer  io.Closer
	encoder *wav.Encoder
	tone    *Tone
	samples []int16
	buffer  *goaudio.IntBuffer
	frames  int
}

// NewRecorder creates the WAV file at the given path.
func NewRecorder(path string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating WAV file %s: %w", path, err)
	}
	return newRecorder(file, file), nil
}

func newRecorder(ws io.WriteSeeker, closer io.Closer) *Recorder {
	return &Recorder{
		closer:  closer,
		encoder: wav.NewEncoder(ws, SampleRate, bitDepth, channelsCount, wavFormatPCM),
		tone:    NewTone(SampleRate, ToneFrequency, Amplitude),
		samples: make([]int16, frameSamples),
		buffer: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: channelsCount,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, frameSamples),
			SourceBitDepth: bitDepth,
		},
	}
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// Record appends one timer frame of samples to the file.
func (r *Recorder) Record(active bool) error {
	r.tone.Fill(r.samples, active)
	for i, sample := range r.samples {
		r.buffer.Data[i] = int(sample)
	}

	if err := r.encoder.Write(r.buffer); err != nil {
		return fmt.Errorf("writing WAV samples: %w", err)
	}
	r.frames++
	return nil
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	var errs []error
	if err := r.encoder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finalizing WAV file: %w", err))
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing WAV file: %w", err))
		}
	}
	return errors.Join(errs...)
}
