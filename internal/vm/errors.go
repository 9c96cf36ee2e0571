package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProgram is returned by Load for a program without any bytes.
	ErrEmptyProgram = errors.New("empty program")
	// ErrProgramTooLarge is returned by Load if the program does not fit
	// into the program space.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrOddLength is returned by DecodeProgram for a trailing half word.
	ErrOddLength = errors.New("program ends with a half instruction word")

	// ErrUnknownInstruction is wrapped by DecodeError.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrStackOverflow is returned when calling a subroutine with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrAddressOutOfRange is wrapped by AddressError.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrInvalidKey is returned by SetKey for a key index outside of 0-F.
	ErrInvalidKey = errors.New("invalid key")
	// ErrHalted is returned by Step after a previous fatal error.
	ErrHalted = errors.New("machine halted")
)

// DecodeError is returned for an instruction word that matches no instruction.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown instruction %04X", e.Word)
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownInstruction
}

// AddressError is returned for a memory access outside of memory.
type AddressError struct {
	Address int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address %04X out of range", e.Address)
}

func (e *AddressError) Unwrap() error {
	return ErrAddressOutOfRange
}

// RuntimeError is returned by Step for any fatal condition. It records the
// program counter and the word of the failing instruction.
type RuntimeError struct {
	PC   uint16
	Word uint16
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("pc %04X word %04X: %v", e.PC, e.Word, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
