package frontend

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/gr8/internal/runner"
	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestKeys_Unique(t *testing.T) {
	seen := map[ebiten.Key]int{}
	for key, mapped := range Keys {
		previous, ok := seen[mapped]
		assert.False(t, ok, "key %X shares %v with key %X", key, mapped, previous)
		seen[mapped] = key
	}
	assert.Len(t, seen, vm.KeyCount)
}

func TestKeyboard_Pressed(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyX: true, ebiten.KeyDigit4: true}
	keyboard := &Keyboard{
		isPressed: func(key ebiten.Key) bool { return held[key] },
	}

	assert.True(t, keyboard.Pressed(0x0))
	assert.True(t, keyboard.Pressed(0xC))
	assert.False(t, keyboard.Pressed(0x1))
	assert.False(t, keyboard.Pressed(-1))
	assert.False(t, keyboard.Pressed(vm.KeyCount))
}

func TestFillPixels(t *testing.T) {
	var fb vm.Framebuffer
	fb[0][1] = true
	fb[31][63] = true

	pixels := make([]byte, vm.DisplayWidth*vm.DisplayHeight*4)
	fillPixels(pixels, &fb)

	assert.Equal(t, colorOff[:], pixels[0:4])
	assert.Equal(t, colorOn[:], pixels[4:8])
	assert.Equal(t, colorOn[:], pixels[len(pixels)-4:])
}

func newRunner(t *testing.T, words ...uint16) *runner.Runner {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, word := range words {
		program = append(program, byte(word>>8), byte(word))
	}
	m := vm.New()
	assert.NoError(t, m.Load(program))
	return runner.New(log.NewTestLogger(t), m, 10)
}

func TestGame_Update(t *testing.T) {
	t.Run("runs a frame", func(t *testing.T) {
		r := newRunner(t, 0x1200)
		game := NewGame(context.Background(), r)

		assert.NoError(t, game.Update())
		assert.Equal(t, uint64(1), r.Frames())
		assert.NoError(t, game.Err())

		width, height := game.Layout(640, 320)
		assert.Equal(t, vm.DisplayWidth, width)
		assert.Equal(t, vm.DisplayHeight, height)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		game := NewGame(ctx, newRunner(t, 0x1200))
		assert.True(t, errors.Is(game.Update(), ebiten.Termination))
		assert.True(t, errors.Is(game.Err(), context.Canceled))
	})

	t.Run("machine failure", func(t *testing.T) {
		game := NewGame(context.Background(), newRunner(t, 0x00EE))
		assert.True(t, errors.Is(game.Update(), ebiten.Termination))
		assert.True(t, errors.Is(game.Err(), vm.ErrStackUnderflow))
	})
}
