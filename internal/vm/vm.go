package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout and machine dimension constants.
//
//	0x000-0x1FF: Interpreter area, the font is stored at FontStart
//	0x200-0xFFF: Program space
const (
	MemorySize    = 0x1000
	ProgramStart  = 0x200
	MaxROMSize    = MemorySize - ProgramStart
	FontStart     = 0x50
	FontGlyphSize = 5

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	DisplayWidth  = 64
	DisplayHeight = 32

	flagRegister = 0xF
)

// Keypad contains the pressed state of the 16 keys 0x0-0xF.
type Keypad [KeyCount]bool

// Machine contains the complete state of a CHIP-8 interpreter.
// A Machine is not safe for concurrent use, the host owns it exclusively
// and only mutates the keypad between steps.
type Machine struct {
	logger *log.Logger
	trace  bool
	random func() byte

	memory    [MemorySize]byte
	registers [RegisterCount]byte
	index     uint16
	pc        uint16
	stack     [StackSize]uint16
	sp        uint8

	delayTimer byte
	soundTimer byte

	keypad      Keypad
	framebuffer Framebuffer

	opcode uint16 // last fetched instruction
	cycles uint64 // completed steps
	fault  error

	rom []byte // last loaded ROM, reapplied on Reset
}

// Option configures a Machine.
type Option func(m *Machine)

// WithLogger sets the logger that is used for fault and trace output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(m *Machine) {
		m.trace = trace
	}
}

// WithSeed makes the random number instruction deterministic.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
		m.random = func() byte {
			return byte(rng.Uint32())
		}
	}
}

// WithRandom sets the source of the random number instruction.
func WithRandom(random func() byte) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// New returns a new machine with the font loaded and all other state cleared.
func New(options ...Option) *Machine {
	m := &Machine{
		random: func() byte {
			return byte(rand.Uint32())
		},
	}
	for _, option := range options {
		option(m)
	}
	m.clear()
	return m
}

func (m *Machine) clear() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontStart:], fontSet[:])
	m.registers = [RegisterCount]byte{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.keypad = Keypad{}
	m.framebuffer.Clear()
	m.opcode = 0
	m.cycles = 0
	m.fault = nil
}

// LoadROM copies the ROM into program memory starting at ProgramStart.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	m.rom = append(m.rom[:0], rom...)
	copy(m.memory[ProgramStart:], m.rom)
	return nil
}

// Reset restores the machine to its initial state and reloads the last loaded ROM.
// It also clears a fault.
func (m *Machine) Reset() {
	m.clear()
	copy(m.memory[ProgramStart:], m.rom)
}

// SetKeypad replaces the complete keypad state.
func (m *Machine) SetKeypad(keys Keypad) {
	m.keypad = keys
}

// SetKey sets the pressed state of a single key.
func (m *Machine) SetKey(key byte, pressed bool) error {
	if int(key) >= KeyCount {
		return fmt.Errorf("%w: %X", ErrInvalidKey, key)
	}
	m.keypad[key] = pressed
	return nil
}

// Keypad returns the current keypad state.
func (m *Machine) Keypad() Keypad {
	return m.keypad
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx.
func (m *Machine) Register(x byte) byte {
	return m.registers[x&0xF]
}

// Registers returns a copy of all registers.
func (m *Machine) Registers() [RegisterCount]byte {
	return m.registers
}

// StackPointer returns the number of live stack frames.
func (m *Machine) StackPointer() uint8 {
	return m.sp
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the sound timer value, a sound should be played while it is not zero.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// Framebuffer returns the framebuffer. It must not be modified by the caller.
func (m *Machine) Framebuffer() *Framebuffer {
	return &m.framebuffer
}

// Pixel returns whether the pixel at the given position is on.
func (m *Machine) Pixel(x, y int) bool {
	return m.framebuffer.Pixel(x, y)
}

// Opcode returns the last fetched instruction.
func (m *Machine) Opcode() uint16 {
	return m.opcode
}

// Memory returns the byte at the given address.
func (m *Machine) Memory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: %04X", ErrAddressOutOfRange, address)
	}
	return m.memory[address], nil
}

// Cycles returns the number of successfully executed steps.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Fault returns the error that stopped the machine, nil if the machine can execute.
func (m *Machine) Fault() error {
	return m.fault
}
