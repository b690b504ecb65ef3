package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooLarge is returned when a ROM does not fit into program memory.
	ErrROMTooLarge = errors.New("rom exceeds addressable space")
	// ErrUnknownOpcode is returned for opcodes outside of the instruction set.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned for a return without a pending call.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrAddressOutOfRange is returned for memory accesses outside of the address space.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrInvalidKey is returned when a key index is outside of the keypad.
	ErrInvalidKey = errors.New("invalid key")
	// ErrMachineFaulted is returned when stepping a machine that failed a previous step.
	ErrMachineFaulted = errors.New("machine faulted")
)

// StepError describes a failed execution step.
type StepError struct {
	PC     uint16 // address of the failing instruction
	Opcode uint16 // instruction that was executing, 0 if the fetch failed
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing opcode %04X at %04X: %s", e.Opcode, e.PC, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
