package vm

import "fmt"

// 00E0 CLS and 00EE RET.
func (m *Machine) execSystem(opcode uint16) error {
	switch opcode {
	case 0x00E0:
		m.framebuffer.Clear()
		return nil

	case 0x00EE:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]
		return nil

	default:
		return unknownOpcode(opcode)
	}
}

// 1nnn JP addr.
func (m *Machine) execJump(opcode uint16) error {
	m.pc = extractAddress(opcode)
	return nil
}

// 2nnn CALL addr.
func (m *Machine) execCall(opcode uint16) error {
	if int(m.sp) >= StackSize {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, m.sp)
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = extractAddress(opcode)
	return nil
}

// 3xkk SE Vx, byte.
func (m *Machine) execSkipEqualByte(opcode uint16) error {
	if m.registers[extractRegisterX(opcode)] == extractByte(opcode) {
		m.skipNext()
	}
	return nil
}

// 4xkk SNE Vx, byte.
func (m *Machine) execSkipNotEqualByte(opcode uint16) error {
	if m.registers[extractRegisterX(opcode)] != extractByte(opcode) {
		m.skipNext()
	}
	return nil
}

// 5xy0 SE Vx, Vy.
func (m *Machine) execSkipEqualRegister(opcode uint16) error {
	if opcode&0x000F != 0 {
		return unknownOpcode(opcode)
	}
	if m.registers[extractRegisterX(opcode)] == m.registers[extractRegisterY(opcode)] {
		m.skipNext()
	}
	return nil
}

// 9xy0 SNE Vx, Vy.
func (m *Machine) execSkipNotEqualRegister(opcode uint16) error {
	if opcode&0x000F != 0 {
		return unknownOpcode(opcode)
	}
	if m.registers[extractRegisterX(opcode)] != m.registers[extractRegisterY(opcode)] {
		m.skipNext()
	}
	return nil
}

// 6xkk LD Vx, byte.
func (m *Machine) execLoadByte(opcode uint16) error {
	m.registers[extractRegisterX(opcode)] = extractByte(opcode)
	return nil
}

// 7xkk ADD Vx, byte. The carry flag is not affected.
func (m *Machine) execAddByte(opcode uint16) error {
	m.registers[extractRegisterX(opcode)] += extractByte(opcode)
	return nil
}

// execArithmetic handles the 8xyN register operations. Operations that set
// the flag write VF first and then compute the result from the current
// registers, so an operand or destination of VF sees the new flag.
func (m *Machine) execArithmetic(opcode uint16) error {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	vx := m.registers[x]
	vy := m.registers[y]

	switch opcode & 0x000F {
	case 0x0: // LD Vx, Vy
		m.registers[x] = vy

	case 0x1: // OR Vx, Vy
		m.registers[x] = vx | vy

	case 0x2: // AND Vx, Vy
		m.registers[x] = vx & vy

	case 0x3: // XOR Vx, Vy
		m.registers[x] = vx ^ vy

	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		m.registers[flagRegister] = boolToByte(sum > 0xFF)
		m.registers[x] = byte(sum)

	case 0x5: // SUB Vx, Vy
		// equal operands do not borrow
		m.registers[flagRegister] = boolToByte(vx >= vy)
		m.registers[x] = m.registers[x] - m.registers[y]

	case 0x6: // SHR Vx
		m.registers[flagRegister] = vx & 0x01
		m.registers[x] >>= 1

	case 0x7: // SUBN Vx, Vy
		// equal operands do not borrow
		m.registers[flagRegister] = boolToByte(vy >= vx)
		m.registers[x] = m.registers[y] - m.registers[x]

	case 0xE: // SHL Vx
		m.registers[flagRegister] = (vx & 0x80) >> 7
		m.registers[x] <<= 1

	default:
		return unknownOpcode(opcode)
	}
	return nil
}

// Annn LD I, addr.
func (m *Machine) execLoadIndex(opcode uint16) error {
	m.index = extractAddress(opcode)
	return nil
}

// Bnnn JP V0, addr.
func (m *Machine) execJumpOffset(opcode uint16) error {
	m.pc = uint16(m.registers[0]) + extractAddress(opcode)
	return nil
}

// Cxkk RND Vx, byte.
func (m *Machine) execRandom(opcode uint16) error {
	m.registers[extractRegisterX(opcode)] = m.random() & extractByte(opcode)
	return nil
}

// Dxyn DRW Vx, Vy, nibble.
func (m *Machine) execDraw(opcode uint16) error {
	n := byte(opcode & 0x000F)
	if err := m.drawSprite(extractRegisterX(opcode), extractRegisterY(opcode), n); err != nil {
		return fmt.Errorf("%w: sprite at %04X", err, m.index)
	}
	return nil
}

// Ex9E SKP Vx and ExA1 SKNP Vx.
func (m *Machine) execKeySkip(opcode uint16) error {
	key := m.registers[extractRegisterX(opcode)]

	switch opcode & 0x00FF {
	case 0x9E:
		pressed, err := m.keyPressed(key)
		if err != nil {
			return err
		}
		if pressed {
			m.skipNext()
		}

	case 0xA1:
		pressed, err := m.keyPressed(key)
		if err != nil {
			return err
		}
		if !pressed {
			m.skipNext()
		}

	default:
		return unknownOpcode(opcode)
	}
	return nil
}

func (m *Machine) keyPressed(key byte) (bool, error) {
	if int(key) >= KeyCount {
		return false, fmt.Errorf("%w: %02X", ErrInvalidKey, key)
	}
	return m.keypad[key], nil
}

// execMisc handles the Fxkk timer, input, index and memory transfer instructions.
func (m *Machine) execMisc(opcode uint16) error {
	x := extractRegisterX(opcode)

	switch opcode & 0x00FF {
	case 0x07: // LD Vx, DT
		m.registers[x] = m.delayTimer

	case 0x0A: // LD Vx, K
		m.waitForKey(x)

	case 0x15: // LD DT, Vx
		m.delayTimer = m.registers[x]

	case 0x18: // LD ST, Vx
		m.soundTimer = m.registers[x]

	case 0x1E: // ADD I, Vx
		m.index += uint16(m.registers[x])

	case 0x29: // LD F, Vx
		m.index = FontStart + FontGlyphSize*uint16(m.registers[x])

	case 0x33: // LD B, Vx
		return m.storeBCD(x)

	case 0x55: // LD [I], Vx
		return m.storeRegisters(x)

	case 0x65: // LD Vx, [I]
		return m.loadRegisters(x)

	default:
		return unknownOpcode(opcode)
	}
	return nil
}

// waitForKey stores the lowest pressed key in Vx. If no key is pressed the
// program counter is rewound so that the instruction executes again.
func (m *Machine) waitForKey(x byte) {
	for key, pressed := range m.keypad {
		if pressed {
			m.registers[x] = byte(key)
			return
		}
	}
	m.pc -= 2
}

func (m *Machine) checkIndexRange(length int) error {
	if int(m.index)+length > MemorySize {
		return fmt.Errorf("%w: %d bytes at %04X", ErrAddressOutOfRange, length, m.index)
	}
	return nil
}

func (m *Machine) storeBCD(x byte) error {
	if err := m.checkIndexRange(3); err != nil {
		return err
	}
	value := m.registers[x]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = (value / 10) % 10
	m.memory[m.index+2] = value % 10
	return nil
}

func (m *Machine) storeRegisters(x byte) error {
	count := int(x) + 1
	if err := m.checkIndexRange(count); err != nil {
		return err
	}
	copy(m.memory[m.index:], m.registers[:count])
	return nil
}

func (m *Machine) loadRegisters(x byte) error {
	count := int(x) + 1
	if err := m.checkIndexRange(count); err != nil {
		return err
	}
	copy(m.registers[:count], m.memory[m.index:])
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
