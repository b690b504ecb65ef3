package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// instructionHandler executes a decoded instruction of an opcode family.
type instructionHandler func(m *Machine, opcode uint16) error

// families maps the top nibble of an opcode to its handler.
var families = [16]instructionHandler{
	0x0: (*Machine).execSystem,
	0x1: (*Machine).execJump,
	0x2: (*Machine).execCall,
	0x3: (*Machine).execSkipEqualByte,
	0x4: (*Machine).execSkipNotEqualByte,
	0x5: (*Machine).execSkipEqualRegister,
	0x6: (*Machine).execLoadByte,
	0x7: (*Machine).execAddByte,
	0x8: (*Machine).execArithmetic,
	0x9: (*Machine).execSkipNotEqualRegister,
	0xA: (*Machine).execLoadIndex,
	0xB: (*Machine).execJumpOffset,
	0xC: (*Machine).execRandom,
	0xD: (*Machine).execDraw,
	0xE: (*Machine).execKeySkip,
	0xF: (*Machine).execMisc,
}

// Step executes a single fetch-decode-execute cycle followed by a timer tick.
// A failed step faults the machine, all further steps fail until Reset is called.
func (m *Machine) Step() error {
	if m.fault != nil {
		return fmt.Errorf("%w: %w", ErrMachineFaulted, m.fault)
	}

	pc := m.pc
	if int(pc)+1 >= MemorySize {
		return m.failStep(pc, 0, fmt.Errorf("%w: fetching from %04X", ErrAddressOutOfRange, pc))
	}

	m.opcode = uint16(m.memory[pc])<<8 | uint16(m.memory[pc+1])
	m.pc += 2

	if m.trace && m.logger != nil {
		m.logger.Debug("Executing",
			log.Hex("address", pc),
			log.Hex("opcode", m.opcode),
			log.String("instruction", Disassemble(m.opcode)))
	}

	family := (m.opcode & 0xF000) >> 12
	if err := families[family](m, m.opcode); err != nil {
		return m.failStep(pc, m.opcode, err)
	}

	m.tickTimers()
	m.cycles++
	return nil
}

func (m *Machine) failStep(pc, opcode uint16, err error) error {
	stepErr := &StepError{
		PC:     pc,
		Opcode: opcode,
		Err:    err,
	}
	m.fault = stepErr

	if m.logger != nil {
		m.logger.Error("Machine faulted",
			log.Hex("address", pc),
			log.Hex("opcode", opcode),
			log.Err(err))
	}
	return stepErr
}

func (m *Machine) tickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

func (m *Machine) skipNext() {
	m.pc += 2
}

func unknownOpcode(opcode uint16) error {
	return fmt.Errorf("%w: %04X", ErrUnknownOpcode, opcode)
}

// extractRegisterX extracts the X register nibble from an opcode.
func extractRegisterX(opcode uint16) byte {
	return byte((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from an opcode.
func extractRegisterY(opcode uint16) byte {
	return byte((opcode & 0x00F0) >> 4)
}

func extractByte(opcode uint16) byte {
	return byte(opcode & 0x00FF)
}

func extractAddress(opcode uint16) uint16 {
	return opcode & 0x0FFF
}
