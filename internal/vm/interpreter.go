package vm

import (
	"fmt"
)

// Step executes one fetch-decode-execute cycle.
//
// While the machine waits for a key press, Step only polls the keypad: the
// first newly pressed key is stored in the target register and execution
// continues with the next call.
//
// Any fatal condition is returned as *RuntimeError. Afterwards the machine
// is halted and every Step returns an error wrapping ErrHalted until the
// machine is reset or a new program is loaded.
func (m *Machine) Step() error {
	if m.fault != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.fault)
	}
	if m.awaitingKey {
		m.pollKeypress()
		return nil
	}

	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		return m.halt(pc, 0, err)
	}

	ins, err := Decode(word)
	if err != nil {
		return m.halt(pc, word, err)
	}

	m.pc += instructionSize
	if err := m.execute(ins); err != nil {
		m.pc = pc
		return m.halt(pc, word, err)
	}
	return nil
}

// Current returns the instruction at the program counter without executing it.
func (m *Machine) Current() (Instruction, error) {
	word, err := m.fetch()
	if err != nil {
		return Instruction{}, err
	}
	return Decode(word)
}

// fetch reads the big-endian instruction word at the program counter.
func (m *Machine) fetch() (uint16, error) {
	data, err := m.readMemory(int(m.pc), instructionSize)
	if err != nil {
		return 0, err
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

func (m *Machine) halt(pc, word uint16, err error) error {
	m.fault = &RuntimeError{PC: pc, Word: word, Err: err}
	return m.fault
}

// execute runs the semantics of a decoded instruction. The program counter
// already points to the next instruction.
//
//nolint:funlen,cyclop // one case per instruction family
func (m *Machine) execute(ins Instruction) error {
	v := &m.registers

	switch ins.Op {
	case OpSys:
		// machine code routines of the host processor are not supported

	case OpCls:
		m.framebuffer = Framebuffer{}

	case OpRet:
		return m.ret()

	case OpJump:
		m.pc = ins.Address

	case OpCall:
		return m.call(ins.Address)

	case OpSkipEqImm:
		m.skipIf(v[ins.X] == ins.NN)

	case OpSkipNeImm:
		m.skipIf(v[ins.X] != ins.NN)

	case OpSkipEqReg:
		m.skipIf(v[ins.X] == v[ins.Y])

	case OpSkipNeReg:
		m.skipIf(v[ins.X] != v[ins.Y])

	case OpLoadImm:
		v[ins.X] = ins.NN

	case OpAddImm:
		v[ins.X] += ins.NN

	case OpMove:
		v[ins.X] = v[ins.Y]

	case OpOr:
		v[ins.X] |= v[ins.Y]

	case OpAnd:
		v[ins.X] &= v[ins.Y]

	case OpXor:
		v[ins.X] ^= v[ins.Y]

	case OpAdd:
		sum := uint16(v[ins.X]) + uint16(v[ins.Y])
		v[ins.X] = uint8(sum)
		v[FlagRegister] = flag(sum > 0xFF)

	case OpSub:
		x, y := v[ins.X], v[ins.Y]
		v[ins.X] = x - y
		v[FlagRegister] = flag(x >= y)

	case OpSubn:
		x, y := v[ins.X], v[ins.Y]
		v[ins.X] = y - x
		v[FlagRegister] = flag(y >= x)

	case OpShr:
		value := m.shiftOperand(ins)
		v[ins.X] = value >> 1
		v[FlagRegister] = value & 0x01

	case OpShl:
		value := m.shiftOperand(ins)
		v[ins.X] = value << 1
		v[FlagRegister] = value >> 7

	case OpLoadIndex:
		m.index = ins.Address

	case OpJumpOffset:
		offset := v[0]
		if m.quirks.JumpUsesVX {
			offset = v[ins.Address>>8]
		}
		m.pc = ins.Address + uint16(offset)

	case OpRandom:
		v[ins.X] = uint8(m.random.Uint32()) & ins.NN

	case OpDraw:
		return m.draw(ins)

	case OpSkipKey:
		m.skipIf(m.Key(v[ins.X]))

	case OpSkipNotKey:
		m.skipIf(!m.Key(v[ins.X]))

	case OpLoadDelay:
		v[ins.X] = m.delayTimer

	case OpWaitKey:
		m.awaitingKey = true
		m.keyRegister = ins.X
		m.heldKeys = m.keys

	case OpSetDelay:
		m.delayTimer = v[ins.X]

	case OpSetSound:
		m.soundTimer = v[ins.X]

	case OpAddIndex:
		m.index += uint16(v[ins.X])

	case OpLoadFont:
		m.index = GlyphAddress(v[ins.X])

	case OpStoreBCD:
		return m.storeBCD(v[ins.X])

	case OpStoreRegs:
		count := int(ins.X) + 1
		if err := checkRange(int(m.index), count); err != nil {
			return err
		}
		copy(m.memory[m.index:], v[:count])

	case OpLoadRegs:
		data, err := m.readMemory(int(m.index), int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(v[:], data)

	default:
		return fmt.Errorf("%w: op %d", ErrUnknownInstruction, ins.Op)
	}

	return nil
}

func (m *Machine) call(address uint16) error {
	if m.sp == StackDepth {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = address
	return nil
}

func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	m.stack[m.sp] = 0
	return nil
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += instructionSize
	}
}

// shiftOperand returns the value that a shift instruction operates on.
func (m *Machine) shiftOperand(ins Instruction) uint8 {
	if m.quirks.ShiftReadsVY {
		return m.registers[ins.Y]
	}
	return m.registers[ins.X]
}

func (m *Machine) storeBCD(value uint8) error {
	address := int(m.index)
	if err := checkRange(address, 3); err != nil {
		return err
	}
	m.memory[address] = value / 100
	m.memory[address+1] = value / 10 % 10
	m.memory[address+2] = value % 10
	return nil
}

// draw XORs a sprite of N rows read from I onto the framebuffer at VX, VY.
// VF is set if any lit pixel was turned off.
func (m *Machine) draw(ins Instruction) error {
	sprite, err := m.readMemory(int(m.index), int(ins.N))
	if err != nil {
		return err
	}

	originX := int(m.registers[ins.X]) % DisplayWidth
	originY := int(m.registers[ins.Y]) % DisplayHeight
	wrap := m.quirks.WrapSprites
	collision := false

	for row, bits := range sprite {
		y := originY + row
		if y >= DisplayHeight {
			if !wrap {
				break
			}
			y %= DisplayHeight
		}

		for col := range SpriteWidth {
			x := originX + col
			if x >= DisplayWidth {
				if !wrap {
					break
				}
				x %= DisplayWidth
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			if m.framebuffer[y][x] {
				collision = true
			}
			m.framebuffer[y][x] = !m.framebuffer[y][x]
		}
	}

	m.registers[FlagRegister] = flag(collision)
	return nil
}

// pollKeypress ends the wait for a key press if a key went down since the
// wait started. Keys released in the meantime count again when pressed.
func (m *Machine) pollKeypress() {
	for key, pressed := range m.keys {
		if !pressed {
			m.heldKeys[key] = false
			continue
		}
		if m.heldKeys[key] {
			continue
		}
		m.registers[m.keyRegister] = uint8(key)
		m.awaitingKey = false
		return
	}
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
