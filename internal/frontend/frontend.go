// Package frontend runs the virtual machine in a window.
package frontend

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/gr8/internal/runner"
	"github.com/retroenv/gr8/internal/vm"
)

// Colors of lit and unlit pixels as RGBA.
var (
	colorOn  = [4]byte{0xE8, 0xE8, 0xE0, 0xFF}
	colorOff = [4]byte{0x10, 0x14, 0x10, 0xFF}
)

// Game adapts a runner to the ebiten game loop, which calls Update at the
// timer rate of the machine.
type Game struct {
	ctx    context.Context
	runner *runner.Runner
	pixels []byte
	err    error
}

// NewGame returns a game that executes one runner frame per update.
func NewGame(ctx context.Context, r *runner.Runner) *Game {
	return &Game{
		ctx:    ctx,
		runner: r,
		pixels: make([]byte, vm.DisplayWidth*vm.DisplayHeight*4),
	}
}

// Err returns the error that ended the game loop, if any.
func (g *Game) Err() error {
	return g.err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	if err := g.runner.Frame(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	fillPixels(g.pixels, g.runner.Machine().Framebuffer())
	screen.WritePixels(g.pixels)
}

// Layout implements ebiten.Game. The screen has the display resolution of
// the machine and is scaled to the window by ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	return vm.DisplayWidth, vm.DisplayHeight
}

// Run opens a window of the given scale and runs the game loop until the
// window is closed, the context is cancelled or the machine fails.
func Run(ctx context.Context, r *runner.Runner, title string, scale int) error {
	ebiten.SetWindowSize(vm.DisplayWidth*scale, vm.DisplayHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(vm.TimerFrequency)

	game := NewGame(ctx, r)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return game.Err()
}

// fillPixels converts the framebuffer to RGBA pixels.
func fillPixels(pixels []byte, fb *vm.Framebuffer) {
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			color := colorOff
			if fb[y][x] {
				color = colorOn
			}
			copy(pixels[(y*vm.DisplayWidth+x)*4:], color[:])
		}
	}
}
