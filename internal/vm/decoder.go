package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// layout describes where the operands of an instruction family are placed
// inside the 16 bit instruction word.
type layout uint8

const (
	layoutNone   layout = iota // no operands, the whole word is fixed
	layoutNNN                  // _NNN
	layoutXNN                  // _XNN
	layoutXY                   // _XY_
	layoutXYN                  // _XYN
	layoutX                    // _X__
	layoutXFixed               // _X__ with the lowest byte fixed
)

// mask returns the bits of the instruction word that identify the family.
func (l layout) mask() uint16 {
	switch l {
	case layoutNone:
		return 0xFFFF
	case layoutXY:
		return 0xF00F
	case layoutXFixed:
		return 0xF0FF
	default:
		return 0xF000
	}
}

// decode extracts the operands of the word into an instruction.
func (l layout) decode(op Op, word uint16) Instruction {
	ins := Instruction{Op: op}
	switch l {
	case layoutNNN:
		ins.Address = word & 0x0FFF
	case layoutXNN:
		ins.X = registerX(word)
		ins.NN = uint8(word & 0x00FF)
	case layoutXY:
		ins.X = registerX(word)
		ins.Y = registerY(word)
	case layoutXYN:
		ins.X = registerX(word)
		ins.Y = registerY(word)
		ins.N = uint8(word & 0x000F)
	case layoutX, layoutXFixed:
		ins.X = registerX(word)
	}
	return ins
}

// encode places the operands of the instruction into their bit positions.
func (l layout) encode(ins Instruction) uint16 {
	x := uint16(ins.X&0x0F) << 8
	y := uint16(ins.Y&0x0F) << 4
	switch l {
	case layoutNNN:
		return ins.Address & 0x0FFF
	case layoutXNN:
		return x | uint16(ins.NN)
	case layoutXY:
		return x | y
	case layoutXYN:
		return x | y | uint16(ins.N&0x0F)
	case layoutX, layoutXFixed:
		return x
	default:
		return 0
	}
}

// encoding maps an instruction family to its bit pattern and mnemonic.
type encoding struct {
	op     Op
	value  uint16
	layout layout
	ins    *chip8.Instruction
}

func (e encoding) name() string {
	if e.ins == nil {
		return "sys" // not part of the instruction table of the chip8 package
	}
	return e.ins.Name
}

// encodings lists all instruction families. Inside a family that shares the
// same high nibble, more specific patterns have to come first.
var encodings = []encoding{
	{OpCls, 0x00E0, layoutNone, chip8.ClsInst},
	{OpRet, 0x00EE, layoutNone, chip8.RetInst},
	{OpSys, 0x0000, layoutNNN, nil},
	{OpJump, 0x1000, layoutNNN, chip8.JpInst},
	{OpCall, 0x2000, layoutNNN, chip8.CallInst},
	{OpSkipEqImm, 0x3000, layoutXNN, chip8.SeInst},
	{OpSkipNeImm, 0x4000, layoutXNN, chip8.SneInst},
	{OpSkipEqReg, 0x5000, layoutXY, chip8.SeInst},
	{OpLoadImm, 0x6000, layoutXNN, chip8.LdInst},
	{OpAddImm, 0x7000, layoutXNN, chip8.AddInst},
	{OpMove, 0x8000, layoutXY, chip8.LdInst},
	{OpOr, 0x8001, layoutXY, chip8.OrInst},
	{OpAnd, 0x8002, layoutXY, chip8.AndInst},
	{OpXor, 0x8003, layoutXY, chip8.XorInst},
	{OpAdd, 0x8004, layoutXY, chip8.AddInst},
	{OpSub, 0x8005, layoutXY, chip8.SubInst},
	{OpShr, 0x8006, layoutXY, chip8.ShrInst},
	{OpSubn, 0x8007, layoutXY, chip8.SubnInst},
	{OpShl, 0x800E, layoutXY, chip8.ShlInst},
	{OpSkipNeReg, 0x9000, layoutXY, chip8.SneInst},
	{OpLoadIndex, 0xA000, layoutNNN, chip8.LdInst},
	{OpJumpOffset, 0xB000, layoutNNN, chip8.JpInst},
	{OpRandom, 0xC000, layoutXNN, chip8.RndInst},
	{OpDraw, 0xD000, layoutXYN, chip8.DrwInst},
	{OpSkipKey, 0xE09E, layoutXFixed, chip8.SkpInst},
	{OpSkipNotKey, 0xE0A1, layoutXFixed, chip8.SknpInst},
	{OpLoadDelay, 0xF007, layoutXFixed, chip8.LdInst},
	{OpWaitKey, 0xF00A, layoutXFixed, chip8.LdInst},
	{OpSetDelay, 0xF015, layoutXFixed, chip8.LdInst},
	{OpSetSound, 0xF018, layoutXFixed, chip8.LdInst},
	{OpAddIndex, 0xF01E, layoutXFixed, chip8.AddInst},
	{OpLoadFont, 0xF029, layoutXFixed, chip8.LdInst},
	{OpStoreBCD, 0xF033, layoutXFixed, chip8.LdInst},
	{OpStoreRegs, 0xF055, layoutXFixed, chip8.LdInst},
	{OpLoadRegs, 0xF065, layoutXFixed, chip8.LdInst},
}

var (
	// families groups the encodings by the high nibble of the word.
	families [16][]encoding
	// byOp indexes the encodings by instruction family.
	byOp = map[Op]encoding{}
)

func init() {
	for _, enc := range encodings {
		nibble := enc.value >> 12
		families[nibble] = append(families[nibble], enc)
		byOp[enc.op] = enc
	}
}

func encodingOf(op Op) (encoding, bool) {
	enc, ok := byOp[op]
	return enc, ok
}

// Decode maps a 16 bit instruction word to an instruction.
// It returns a *DecodeError if the word matches no known instruction.
func Decode(word uint16) (Instruction, error) {
	for _, enc := range families[word>>12] {
		if word&enc.layout.mask() == enc.value {
			return enc.layout.decode(enc.op, word), nil
		}
	}
	return Instruction{}, &DecodeError{Word: word}
}

// Encode maps an instruction back to its 16 bit instruction word.
// Operands are truncated to the width of their field. An instruction whose
// word would decode as a different family, like sys $0E0 which is the word
// of cls, can not be encoded.
func Encode(ins Instruction) (uint16, error) {
	enc, ok := encodingOf(ins.Op)
	if !ok {
		return 0, fmt.Errorf("%w: op %d", ErrUnknownInstruction, ins.Op)
	}

	word := enc.value | enc.layout.encode(ins)
	if decoded, err := Decode(word); err != nil || decoded.Op != ins.Op {
		return 0, fmt.Errorf("%w: %s encodes as %04X of a different instruction",
			ErrUnknownInstruction, ins, word)
	}
	return word, nil
}

// DecodeProgram decodes a byte stream of big-endian instruction words.
// Programs usually interleave code and sprite data, a failure only means that
// the stream is not made of instructions exclusively.
func DecodeProgram(data []byte) ([]Instruction, error) {
	if len(data)%instructionSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddLength, len(data))
	}

	instructions := make([]Instruction, 0, len(data)/instructionSize)
	for offset := 0; offset < len(data); offset += instructionSize {
		word := uint16(data[offset])<<8 | uint16(data[offset+1])
		ins, err := Decode(word)
		if err != nil {
			return instructions, fmt.Errorf("decoding word at offset %04x: %w", offset, err)
		}
		instructions = append(instructions, ins)
	}
	return instructions, nil
}

// registerX extracts the X register nibble from an instruction word.
func registerX(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// registerY extracts the Y register nibble from an instruction word.
func registerY(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}
