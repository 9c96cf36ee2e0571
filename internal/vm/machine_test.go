package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, [RegisterCount]uint8{}, m.Registers())
	assert.Len(t, m.Stack(), 0)
	assert.Equal(t, 0, m.Framebuffer().LitPixels())
	assert.False(t, m.AwaitingKey())
	assert.False(t, m.SoundActive())
	assert.Equal(t, Quirks{}, m.Quirks())

	memory := m.Memory()
	assert.Equal(t, font[:], memory[FontAddress:FontAddress+len(font)])
	for i := range 16 {
		assert.False(t, m.Key(uint8(i)))
	}
}

func TestGlyphAddress(t *testing.T) {
	assert.Equal(t, uint16(FontAddress), GlyphAddress(0))
	assert.Equal(t, uint16(FontAddress+15*FontGlyphSize), GlyphAddress(0xF))
	assert.Equal(t, uint16(FontAddress+2*FontGlyphSize), GlyphAddress(0x72))
}

func TestLoad(t *testing.T) {
	t.Run("copies program", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load([]byte{0x12, 0x34, 0x56}))

		memory := m.Memory()
		assert.Equal(t, byte(0x12), memory[ProgramStart])
		assert.Equal(t, byte(0x34), memory[ProgramStart+1])
		assert.Equal(t, byte(0x56), memory[ProgramStart+2])
		assert.Equal(t, byte(0x00), memory[ProgramStart+3])
	})

	t.Run("fills program space", func(t *testing.T) {
		m := New()
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0xAB
		assert.NoError(t, m.Load(program))
		assert.Equal(t, byte(0xAB), m.Memory()[MemorySize-1])
	})

	t.Run("too large", func(t *testing.T) {
		m := newTestMachine(t, QuirksModern, 0x6142)
		steps(t, m, 1)
		memory := m.Memory()

		err := m.Load(make([]byte, MaxProgramSize+1))
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
		assert.Equal(t, memory, m.Memory())
		assert.Equal(t, uint8(0x42), m.Registers()[1])
		assert.Equal(t, uint16(0x202), m.PC())
	})

	t.Run("empty", func(t *testing.T) {
		m := New()
		err := m.Load(nil)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("resets state", func(t *testing.T) {
		m := newTestMachine(t, QuirksModern, 0x2300)
		steps(t, m, 1)

		assert.NoError(t, m.Load([]byte{0x00, 0xE0}))
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Len(t, m.Stack(), 0)
		assert.Equal(t, byte(0x00), m.Memory()[ProgramStart])
		assert.Equal(t, byte(0xE0), m.Memory()[ProgramStart+1])
	})
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, QuirksSCHIP, 0x6A05, 0xFA15, 0xA123, 0xF00A)
	steps(t, m, 4)
	assert.NoError(t, m.SetKey(3, true))

	m.Reset()
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, [RegisterCount]uint8{}, m.Registers())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.False(t, m.AwaitingKey())
	assert.False(t, m.Key(3))
	assert.Equal(t, byte(0), m.Memory()[ProgramStart])
	assert.Equal(t, QuirksSCHIP, m.Quirks())
}

func TestSetKey(t *testing.T) {
	m := New()

	assert.NoError(t, m.SetKey(0, true))
	assert.NoError(t, m.SetKey(0xF, true))
	assert.True(t, m.Key(0))
	assert.True(t, m.Key(0xF))

	assert.NoError(t, m.SetKey(0xF, false))
	assert.False(t, m.Key(0xF))

	err := m.SetKey(16, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	err = m.SetKey(-1, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestFramebuffer_IsCopy(t *testing.T) {
	m := New()
	fb := m.Framebuffer()
	fb[0][0] = true

	assert.False(t, m.Framebuffer().Pixel(0, 0))
	assert.False(t, fb.Pixel(-1, 0))
	assert.False(t, fb.Pixel(DisplayWidth, 0))
	assert.False(t, fb.Pixel(0, DisplayHeight))
}

func TestStack_IsCopy(t *testing.T) {
	m := newTestMachine(t, QuirksModern, 0x2300)
	steps(t, m, 1)

	stack := m.Stack()
	stack[0] = 0xFFF
	assert.Equal(t, []uint16{0x202}, m.Stack())
}

func TestTickTimers(t *testing.T) {
	m := New()
	m.delayTimer = 3
	m.soundTimer = 1
	assert.True(t, m.SoundActive())

	m.TickTimers()
	assert.Equal(t, uint8(2), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.False(t, m.SoundActive())

	for range 10 {
		m.TickTimers()
		assert.True(t, m.DelayTimer() <= 2)
	}
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestQuirksByName(t *testing.T) {
	tests := []struct {
		name     string
		expected Quirks
		wantErr  bool
	}{
		{"vip", QuirksVIP, false},
		{"SCHIP", QuirksSCHIP, false},
		{"modern", QuirksModern, false},
		{"xochip", Quirks{}, true},
		{"", Quirks{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quirks, err := QuirksByName(tt.name)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported compatibility profile")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, quirks)
		})
	}
}
