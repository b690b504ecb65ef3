// Package vm implements a CHIP-8 virtual machine.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for simple games
// on early microcomputers. A Machine holds the complete interpreter state:
//   - 4KB of memory (0x000-0xFFF), with the hexadecimal font at FontStart
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as the flag register
//   - The 16-bit index register I and the program counter
//   - A 16 entry call stack
//   - Delay and sound timers
//   - A 64x32 monochrome framebuffer
//   - A 16 key hexadecimal keypad
//
// # Execution
//
// Step executes a single instruction and then decrements both timers. The timers are
// coupled to the instruction rate, the host is responsible for calling Step at a rate
// that produces the intended timing (for example 600 steps per second for 60Hz timer
// semantics at 10 instructions per timer tick).
//
// The key wait instruction (Fx0A) does not block, it rewinds the program counter so
// that the next Step executes it again until a key is pressed.
//
// # Errors
//
// Unknown opcodes, stack overflows and underflows, and memory accesses outside of the
// address space are returned as a *StepError. After a failed step the machine is faulted
// and refuses to execute until Reset is called.
//
// # Usage Example
//
//	m := vm.New(vm.WithLogger(logger))
//	if err := m.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		m.SetKeypad(keys)
//		if err := m.Step(); err != nil {
//			return err
//		}
//		render(m.Framebuffer())
//	}
package vm
