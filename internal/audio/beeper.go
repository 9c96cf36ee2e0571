package audio

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
)

// Beeper is a stream of signed 16 bit little endian mono samples that
// carries the tone while it is active. It is read by the audio device
// from a separate goroutine.
type Beeper struct {
	active atomic.Bool

	mu      sync.Mutex
	tone    *Tone
	samples []int16
}

// NewBeeper returns a silent beeper.
func NewBeeper() *Beeper {
	return &Beeper{
		tone: NewTone(SampleRate, ToneFrequency, Amplitude),
	}
}

// SetActive switches the tone on or off.
func (b *Beeper) SetActive(active bool) {
	b.active.Store(active)
}

// Active returns whether the tone is switched on.
func (b *Beeper) Active() bool {
	return b.active.Load()
}

// Read fills p with the next samples. It never fails and always returns an
// even number of bytes.
func (b *Beeper) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := len(p) / 2
	if cap(b.samples) < count {
		b.samples = make([]int16, count)
	}
	samples := b.samples[:count]
	b.tone.Fill(samples, b.active.Load())

	for i, sample := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(sample))
	}
	return count * 2, nil
}
