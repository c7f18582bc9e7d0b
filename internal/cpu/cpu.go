package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, the 16-bit register pairs,
	// the stack pointer and the program counter.
	*types.Registers

	bus Bus
	irq *interrupts.Service

	halted bool
	fault  error
}

// NewCPU creates a new CPU instance executing from bus, with the
// register file in its power-on state.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	return &CPU{
		Registers: types.NewRegisters(),
		bus:       bus,
		irq:       irq,
	}
}

// Step executes exactly one instruction, then services an interrupt if
// one is due. While halted, Step idles until an interrupt is requested.
//
// An undefined opcode faults the CPU: the returned error is an
// *UnimplementedOpcodeError and every later call to Step fails with
// ErrFaulted.
func (c *CPU) Step() (Trace, error) {
	if c.fault != nil {
		return Trace{}, fmt.Errorf("cpu: %w: %w", ErrFaulted, c.fault)
	}

	t := Trace{PC: c.PC}
	if c.halted {
		if !c.irq.HasInterrupts() {
			t.Halted = true
			t.Registers = c.Snapshot()
			return t, nil
		}

		// a requested interrupt always leaves HALT, but is only
		// serviced when the IME allows it
		c.halted = false
		if c.irq.Enabled() {
			t.Interrupt = c.serviceInterrupt()
			t.Registers = c.Snapshot()
			return t, nil
		}
	}

	opcode := c.bus.Read(c.PC)
	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		t.Prefixed = true
		opcode = c.bus.Read(c.PC + 1)
		instruction = InstructionSetCB[opcode]
	}
	t.Opcode = opcode

	if !instruction.Defined() {
		err := &UnimplementedOpcodeError{
			Opcode:    opcode,
			Prefixed:  t.Prefixed,
			PC:        c.PC,
			Registers: c.Snapshot(),
		}
		c.fault = err
		return t, err
	}
	t.Mnemonic, _ = Disassemble(c.bus, c.PC)

	pending := c.irq.IME == interrupts.IMEPending
	instruction.fn(c)
	c.irq.Promote(pending)

	if c.irq.Enabled() && c.irq.HasInterrupts() {
		t.Interrupt = c.serviceInterrupt()
	}
	t.Halted = c.halted
	t.Registers = c.Snapshot()

	return t, nil
}

// Fault returns the error that stopped the CPU, or nil.
func (c *CPU) Fault() error {
	return c.fault
}

// Halted returns true while the CPU waits for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Reset returns the CPU to its power-on state, clearing any fault.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.halted = false
	c.fault = nil
	c.irq.DisableIME()
}

// serviceInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, disabling the IME. It returns the vector.
func (c *CPU) serviceInterrupt() uint16 {
	vector, ok := c.irq.Vector()
	if !ok {
		return 0
	}
	c.irq.DisableIME()
	c.halted = false
	c.call(vector)

	return vector
}

// advance moves the program counter past a sequential instruction of
// length n.
func (c *CPU) advance(n uint8) {
	c.PC += uint16(n)
}

// operand8 returns the byte following the opcode.
func (c *CPU) operand8() uint8 {
	return c.bus.Read(c.PC + 1)
}

// operand16 returns the little-endian word following the opcode.
func (c *CPU) operand16() uint16 {
	return uint16(c.bus.Read(c.PC+1)) | uint16(c.bus.Read(c.PC+2))<<8
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

// readRegister returns the 8-bit operand encoded by index, where
// index 6 is the byte addressed by HL.
func (c *CPU) readRegister(index uint8) uint8 {
	switch index & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL.Uint16())
	default:
		return c.A
	}
}

// writeRegister sets the 8-bit operand encoded by index, where index 6
// is the byte addressed by HL.
func (c *CPU) writeRegister(index uint8, value uint8) {
	switch index & 7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.writeByte(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

// readPair returns the 16-bit operand encoded by index (BC, DE, HL, SP).
func (c *CPU) readPair(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

// writePair sets the 16-bit operand encoded by index (BC, DE, HL, SP).
func (c *CPU) writePair(index uint8, value uint16) {
	switch index & 3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// condition evaluates the branch condition encoded by index
// (NZ, Z, NC, C).
func (c *CPU) condition(index uint8) bool {
	switch index & 3 {
	case 0:
		return !c.IsFlagSet(types.FlagZero)
	case 1:
		return c.IsFlagSet(types.FlagZero)
	case 2:
		return !c.IsFlagSet(types.FlagCarry)
	default:
		return c.IsFlagSet(types.FlagCarry)
	}
}
