package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/gr8/internal/vm"
)

// Keys maps the keypad keys to the left hand side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Keys = [vm.KeyCount]ebiten.Key{
	0x1: ebiten.KeyDigit1, 0x2: ebiten.KeyDigit2, 0x3: ebiten.KeyDigit3, 0xC: ebiten.KeyDigit4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// Keyboard reports the keypad state from the keyboard of the window.
type Keyboard struct {
	isPressed func(ebiten.Key) bool
}

// NewKeyboard returns a keypad that reads the ebiten keyboard state.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		isPressed: ebiten.IsKeyPressed,
	}
}

// Pressed returns whether the keyboard key mapped to the keypad key is held.
func (k *Keyboard) Pressed(key int) bool {
	if key < 0 || key >= vm.KeyCount {
		return false
	}
	return k.isPressed(Keys[key])
}
