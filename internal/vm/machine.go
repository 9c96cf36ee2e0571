package vm

import (
	"fmt"
	"math/rand/v2"
)

// RandomSource provides the random numbers for the CXNN instruction.
// *rand.Rand of math/rand/v2 implements it.
type RandomSource interface {
	Uint32() uint32
}

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the compatibility quirks of the machine.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}

// WithRandom sets the random number source of the machine.
func WithRandom(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithSeed seeds the default random number source, making CXNN results
// reproducible.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed)))
}

// Machine is a CHIP-8 virtual machine. It exclusively owns its state, all
// mutation happens through its methods. A Machine is not safe for concurrent
// use, the driver has to serialize all calls.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16

	stack [StackDepth]uint16
	sp    int

	delayTimer uint8
	soundTimer uint8

	framebuffer Framebuffer
	keys        [KeyCount]bool

	awaitingKey bool
	keyRegister uint8
	// heldKeys are the keys that were already down when waiting started,
	// they have to be released before they count as a new press.
	heldKeys [KeyCount]bool

	fault error

	quirks Quirks
	random RandomSource
}

// Framebuffer is the monochrome display, indexed by row then column.
type Framebuffer [DisplayHeight][DisplayWidth]bool

// Pixel returns whether the pixel at column x and row y is lit.
// Coordinates outside of the display are reported as unlit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[y][x]
}

// LitPixels returns the number of lit pixels.
func (f *Framebuffer) LitPixels() int {
	count := 0
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				count++
			}
		}
	}
	return count
}

// New returns a new machine in its power-on state.
func New(options ...Option) *Machine {
	m := &Machine{}
	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.Reset()
	return m
}

// Reset restores the power-on state: memory, registers, stack, timers,
// framebuffer and keypad are cleared, the font is loaded and the program
// counter points to ProgramStart. The quirks and random source are kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])
	m.registers = [RegisterCount]uint8{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackDepth]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.framebuffer = Framebuffer{}
	m.keys = [KeyCount]bool{}
	m.awaitingKey = false
	m.keyRegister = 0
	m.heldKeys = [KeyCount]bool{}
	m.fault = nil
}

// Load copies the program into memory starting at ProgramStart and resets
// the execution state. The machine is not modified if the program is empty
// or does not fit into memory.
func (m *Machine) Load(program []byte) error {
	if len(program) == 0 {
		return ErrEmptyProgram
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the %d bytes of program space",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m.Reset()
	copy(m.memory[ProgramStart:], program)
	return nil
}

// SetKey updates the pressed state of a keypad key.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	return nil
}

// Key returns whether the keypad key is pressed. Only the lowest nibble of
// key is used.
func (m *Machine) Key(key uint8) bool {
	return m.keys[key&0x0F]
}

// Framebuffer returns a read-only view of the display.
func (m *Machine) Framebuffer() *Framebuffer {
	fb := m.framebuffer
	return &fb
}

// Registers returns a copy of the general-purpose registers.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.registers
}

// Memory returns a copy of the memory.
func (m *Machine) Memory() [MemorySize]byte {
	return m.memory
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Stack returns the return addresses on the stack, oldest first.
func (m *Machine) Stack() []uint16 {
	stack := make([]uint16, m.sp)
	copy(stack, m.stack[:m.sp])
	return stack
}

// AwaitingKey returns whether execution is stalled until a key is pressed.
func (m *Machine) AwaitingKey() bool {
	return m.awaitingKey
}

// Quirks returns the compatibility quirks of the machine.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// Fault returns the fatal error that halted the machine, or nil.
func (m *Machine) Fault() error {
	return m.fault
}

// readMemory returns the bytes at address after checking that all of them
// are inside of memory.
func (m *Machine) readMemory(address, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	return m.memory[address : address+length], nil
}

// checkRange verifies that length bytes starting at address are inside
// of memory.
func checkRange(address, length int) error {
	if length == 0 {
		return nil
	}
	if address < 0 || address >= MemorySize {
		return &AddressError{Address: address}
	}
	if end := address + length - 1; end >= MemorySize {
		return &AddressError{Address: end}
	}
	return nil
}
