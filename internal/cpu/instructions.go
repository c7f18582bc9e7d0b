package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// halt stops the CPU until an interrupt is requested. When an interrupt
// is already pending the CPU carries on with the next instruction.
func (c *CPU) halt() {
	if !c.irq.HasInterrupts() {
		c.halted = true
	}
}

func init() {
	DefineInstruction(0x00, "NOP", 1, func(c *CPU) {
		c.advance(1)
	})
	DefineInstruction(0x10, "STOP", 2, func(c *CPU) {
		c.advance(2)
		c.halt()
	})
	DefineInstruction(0x76, "HALT", 1, func(c *CPU) {
		c.advance(1)
		c.halt()
	})
	DefineInstruction(0xF3, "DI", 1, func(c *CPU) {
		c.irq.DisableIME()
		c.advance(1)
	})
	DefineInstruction(0xFB, "EI", 1, func(c *CPU) {
		c.irq.ScheduleIME()
		c.advance(1)
	})

	// the accumulator rotates always reset Z
	DefineInstruction(0x07, "RLCA", 1, func(c *CPU) {
		c.A = c.rotateLeft(c.A)
		c.ClearFlag(types.FlagZero)
		c.advance(1)
	})
	DefineInstruction(0x0F, "RRCA", 1, func(c *CPU) {
		c.A = c.rotateRight(c.A)
		c.ClearFlag(types.FlagZero)
		c.advance(1)
	})
	DefineInstruction(0x17, "RLA", 1, func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.ClearFlag(types.FlagZero)
		c.advance(1)
	})
	DefineInstruction(0x1F, "RRA", 1, func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.ClearFlag(types.FlagZero)
		c.advance(1)
	})
}
