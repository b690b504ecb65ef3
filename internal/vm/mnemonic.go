package vm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name of an opcode as defined by the
// CHIP-8 opcode table, or an empty string for unknown opcodes.
func Mnemonic(opcode uint16) string {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return ""
}

// Disassemble returns the assembly text of an opcode, for example
// "LD V0, $05". Opcodes that are not in the opcode table are returned as
// a data word.
func Disassemble(opcode uint16) string {
	name := Mnemonic(opcode)
	if name == "" {
		return fmt.Sprintf("DW $%04X", opcode)
	}

	name = strings.ToUpper(name)
	params := operands(opcode)
	if params == "" {
		return name
	}
	return name + " " + params
}

// operands formats the parameters of an opcode.
func operands(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	kk := extractByte(opcode)
	nnn := extractAddress(opcode)

	switch opcode >> 12 {
	case 0x1, 0x2:
		return fmt.Sprintf("$%03X", nnn)
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf("V%X, $%02X", x, kk)
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8:
		if op := opcode & 0x000F; op == 0x6 || op == 0xE {
			return fmt.Sprintf("V%X", x) // shifts
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", nnn)
	case 0xB:
		return fmt.Sprintf("V0, $%03X", nnn)
	case 0xD:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0x000F)
	case 0xE:
		return fmt.Sprintf("V%X", x)
	case 0xF:
		return miscOperands(x, kk)
	default:
		return ""
	}
}

func miscOperands(x, kk byte) string {
	switch kk {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}
