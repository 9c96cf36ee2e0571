// Package vm implements a CHIP-8 virtual machine.
//
// # Machine Overview
//
// The machine interprets programs written for the CHIP-8 instruction set one
// instruction at a time against an emulated hardware state:
//   - 4KB of memory, programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as the flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a call stack of StackDepth return addresses
//   - delay and sound timers counting down at 60 Hz
//   - a 64x32 monochrome framebuffer and a 16-key hexadecimal keypad
//
// # Driving The Machine
//
// The package contains no driver loop. A caller owns a Machine and
// serializes calls to Step, TickTimers and SetKey:
//
//	m := vm.New(vm.WithQuirks(vm.QuirksVIP))
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for frame := range frames {
//		for range instructionsPerFrame {
//			if err := m.Step(); err != nil {
//				return err
//			}
//		}
//		m.TickTimers()
//		present(m.Framebuffer())
//	}
//
// # Compatibility
//
// Historical interpreters disagree on the shift instructions, the jump with
// offset instruction and whether sprites wrap at the display edges. These
// behaviors are selected with Quirks.
//
// # Memory Policy
//
// Every indirect memory access (sprite reads, font lookups, BCD stores and
// register dumps/loads) and every instruction fetch is bounds checked. An
// address outside of memory is a fatal error, it is never wrapped.
//
// # Limitations
//
//   - 0NNN (call machine code routine) decodes but executes as a no-op
//   - SUPER-CHIP and XO-CHIP extended instructions are not supported
//   - machine state is not serialized
package vm
