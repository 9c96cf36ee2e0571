package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: unused
//	0x050-0x09F: built-in hexadecimal font
//	0x0A0-0x1FF: unused
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and
	// where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the memory address of the first font glyph.
	FontAddress = 0x050

	// FontGlyphSize is the size of a single font glyph in bytes.
	FontGlyphSize = 5
)

const (
	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of the carry/borrow/collision register VF.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

const (
	// DisplayWidth is the framebuffer width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the framebuffer height in pixels.
	DisplayHeight = 32

	// SpriteWidth is the width of a sprite row in pixels.
	SpriteWidth = 8
)

// TimerFrequency is the rate in Hz at which the driver should call TickTimers.
const TimerFrequency = 60

// instructionSize is the size of every instruction in bytes.
const instructionSize = 2
