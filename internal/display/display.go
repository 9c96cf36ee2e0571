// Package display renders the framebuffer of the virtual machine as text.
//
// Every output line covers two display rows by using the Unicode half block
// glyphs, so the 64x32 display renders as 16 lines of 64 runes.
package display

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/gr8/internal/vm"
	"golang.org/x/term"
)

// Glyphs for the combinations of an upper and lower pixel.
const (
	glyphEmpty = ' '
	glyphUpper = '▀'
	glyphLower = '▄'
	glyphFull  = '█'
)

// Lines is the number of text lines that a rendered display occupies.
const Lines = vm.DisplayHeight / 2

// ANSI sequences used when writing to an interactive terminal.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
)

// Render writes the framebuffer as text to the writer.
func Render(w io.Writer, fb *vm.Framebuffer) error {
	var buf bytes.Buffer
	renderTo(&buf, fb)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}

func renderTo(buf *bytes.Buffer, fb *vm.Framebuffer) {
	buf.Grow(Lines * (vm.DisplayWidth*3 + 1))

	for y := 0; y < vm.DisplayHeight; y += 2 {
		for x := range vm.DisplayWidth {
			upper := fb.Pixel(x, y)
			lower := fb.Pixel(x, y+1)
			switch {
			case upper && lower:
				buf.WriteRune(glyphFull)
			case upper:
				buf.WriteRune(glyphUpper)
			case lower:
				buf.WriteRune(glyphLower)
			default:
				buf.WriteRune(glyphEmpty)
			}
		}
		buf.WriteByte('\n')
	}
}

// Terminal presents every frame on a terminal, redrawing the display in
// place if the output is an interactive terminal.
type Terminal struct {
	out         io.Writer
	fd          int
	interactive bool
	cleared     bool
	buf         bytes.Buffer
}

// NewTerminal returns a terminal presenter that writes to the given output.
// The display is redrawn in place if the output is a terminal.
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{
		out: out,
		fd:  -1,
	}
	if file, ok := out.(interface{ Fd() uintptr }); ok {
		fd := int(file.Fd())
		if term.IsTerminal(fd) {
			t.fd = fd
			t.interactive = true
		}
	}
	return t
}

// Interactive returns whether the output is an interactive terminal.
func (t *Terminal) Interactive() bool {
	return t.interactive
}

// Present writes the framebuffer to the terminal.
func (t *Terminal) Present(fb *vm.Framebuffer) error {
	t.buf.Reset()
	if t.interactive {
		if !t.cleared {
			t.buf.WriteString(clearScreen)
			t.cleared = true
		}
		t.buf.WriteString(cursorHome)
	}
	renderTo(&t.buf, fb)

	if _, err := t.out.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}

// Fits returns whether the terminal is large enough to show the rendered
// display. An output that is not a terminal always fits.
func (t *Terminal) Fits() (bool, error) {
	if !t.interactive {
		return true, nil
	}
	width, height, err := term.GetSize(t.fd)
	if err != nil {
		return false, fmt.Errorf("getting terminal size: %w", err)
	}
	return width >= vm.DisplayWidth && height >= Lines, nil
}
