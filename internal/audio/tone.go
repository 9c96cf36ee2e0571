// Package audio implements the buzzer of the virtual machine.
//
// The buzzer sounds a square wave while the sound timer is active. The wave
// can be played on the default audio device and recorded to a WAV file.
package audio

// Audio parameters of the buzzer.
const (
	SampleRate    = 44100
	ToneFrequency = 440
	Amplitude     = 0x1000

	// frameSamples is the number of samples generated per timer frame.
	frameSamples = SampleRate / 60
)

// Tone generates a square wave. The zero value is not usable, use NewTone.
type Tone struct {
	period    int
	amplitude int16
	position  int
}

// NewTone returns a square wave generator of the given frequency.
func NewTone(sampleRate, frequency int, amplitude int16) *Tone {
	return &Tone{
		period:    max(sampleRate/frequency, 2),
		amplitude: amplitude,
	}
}

// Period returns the length of one wave cycle in samples.
func (t *Tone) Period() int {
	return t.period
}

// Fill writes the next samples of the wave into the buffer. If the tone is
// not active, silence is written and the wave restarts with its next cycle.
func (t *Tone) Fill(samples []int16, active bool) {
	if !active {
		clear(samples)
		t.position = 0
		return
	}

	half := t.period / 2
	for i := range samples {
		if t.position < half {
			samples[i] = t.amplitude
		} else {
			samples[i] = -t.amplitude
		}
		t.position = (t.position + 1) % t.period
	}
}
