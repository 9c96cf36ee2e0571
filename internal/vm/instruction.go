package vm

import (
	"fmt"
)

// Op identifies the instruction family of a decoded instruction.
type Op uint8

// Instruction families of the CHIP-8 base instruction set.
const (
	OpInvalid    Op = iota
	OpSys           // 0NNN: call machine code routine at NNN
	OpCls           // 00E0: clear the display
	OpRet           // 00EE: return from subroutine
	OpJump          // 1NNN: jump to NNN
	OpCall          // 2NNN: call subroutine at NNN
	OpSkipEqImm     // 3XNN: skip if VX == NN
	OpSkipNeImm     // 4XNN: skip if VX != NN
	OpSkipEqReg     // 5XY0: skip if VX == VY
	OpLoadImm       // 6XNN: VX = NN
	OpAddImm        // 7XNN: VX += NN, VF untouched
	OpMove          // 8XY0: VX = VY
	OpOr            // 8XY1: VX |= VY
	OpAnd           // 8XY2: VX &= VY
	OpXor           // 8XY3: VX ^= VY
	OpAdd           // 8XY4: VX += VY, VF = carry
	OpSub           // 8XY5: VX -= VY, VF = not borrow
	OpShr           // 8XY6: VX >>= 1, VF = shifted out bit
	OpSubn          // 8XY7: VX = VY - VX, VF = not borrow
	OpShl           // 8XYE: VX <<= 1, VF = shifted out bit
	OpSkipNeReg     // 9XY0: skip if VX != VY
	OpLoadIndex     // ANNN: I = NNN
	OpJumpOffset    // BNNN: jump to NNN + V0
	OpRandom        // CXNN: VX = random & NN
	OpDraw          // DXYN: draw N byte sprite at VX, VY
	OpSkipKey       // EX9E: skip if key VX is pressed
	OpSkipNotKey    // EXA1: skip if key VX is not pressed
	OpLoadDelay     // FX07: VX = delay timer
	OpWaitKey       // FX0A: wait for a key press, store it in VX
	OpSetDelay      // FX15: delay timer = VX
	OpSetSound      // FX18: sound timer = VX
	OpAddIndex      // FX1E: I += VX
	OpLoadFont      // FX29: I = glyph address of digit VX
	OpStoreBCD      // FX33: store BCD of VX at I, I+1, I+2
	OpStoreRegs     // FX55: store V0..VX at I
	OpLoadRegs      // FX65: load V0..VX from I
)

// Instruction is a decoded CHIP-8 instruction. Op selects the family, only
// the operands used by that family are set, all others are zero.
type Instruction struct {
	Op      Op
	X       uint8  // first register operand
	Y       uint8  // second register operand
	N       uint8  // 4 bit immediate, sprite height
	NN      uint8  // 8 bit immediate
	Address uint16 // 12 bit address
}

// Name returns the assembly mnemonic of the instruction.
func (i Instruction) Name() string {
	enc, ok := encodingOf(i.Op)
	if !ok {
		return ""
	}
	return enc.name()
}

// String returns the instruction in assembly notation, for example
// "drw V1, V2, $5" or "ld I, $2A0". BNNN is shown with its V0 offset,
// use Format for the notation of a machine with other quirks.
func (i Instruction) String() string {
	return i.Format(Quirks{})
}

// Format returns the instruction in assembly notation as it executes on a
// machine with the given quirks.
func (i Instruction) Format(quirks Quirks) string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf("invalid op %d", i.Op)
	}
	if params := i.params(quirks); params != "" {
		return name + " " + params
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params(quirks Quirks) string {
	switch i.Op {
	case OpCls, OpRet:
		return ""
	case OpSys, OpJump, OpCall:
		return fmt.Sprintf("$%03X", i.Address)
	case OpJumpOffset:
		var register uint16
		if quirks.JumpUsesVX {
			register = i.Address >> 8
		}
		return fmt.Sprintf("V%X, $%03X", register, i.Address)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", i.Address)
	case OpSkipEqImm, OpSkipNeImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSkipEqReg, OpSkipNeReg, OpMove, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn, OpShr, OpShl:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpSkipKey, OpSkipNotKey:
		return fmt.Sprintf("V%X", i.X)
	case OpLoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Op {
	case OpSkipEqImm, OpSkipNeImm, OpSkipEqReg, OpSkipNeReg, OpSkipKey, OpSkipNotKey:
		return true
	default:
		return false
	}
}
