package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// pushStack pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) pushStack(value uint16) {
	upper, lower := utils.Uint16ToBytes(value)
	c.writeByte(c.SP-1, upper)
	c.writeByte(c.SP-2, lower)
	c.SP -= 2
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := c.readByte(c.SP)
	upper := c.readByte(c.SP + 1)
	c.SP += 2
	return utils.BytesToUint16(upper, lower)
}

// call pushes the current PC onto the stack and jumps to the given
// address. Handlers advance PC past the instruction first, so the
// pushed value is the return address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// jumpRelative adds the signed offset to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset int8) {
	c.PC += uint16(int16(offset))
}

// jumpAbsolute jumps to the given address.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
}

func init() {
	DefineInstruction(0xC3, "JP a16", 3, func(c *CPU) {
		c.jumpAbsolute(c.operand16())
	})
	DefineInstruction(0xE9, "JP HL", 1, func(c *CPU) {
		c.jumpAbsolute(c.HL.Uint16())
	})
	DefineInstruction(0x18, "JR r8", 2, func(c *CPU) {
		offset := int8(c.operand8())
		c.advance(2)
		c.jumpRelative(offset)
	})
	DefineInstruction(0xCD, "CALL a16", 3, func(c *CPU) {
		address := c.operand16()
		c.advance(3)
		c.call(address)
	})
	DefineInstruction(0xC9, "RET", 1, func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", 1, func(c *CPU) {
		c.ret()
		c.irq.EnableIME()
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineInstruction(0x20|cc<<3, "JR "+conditionNames[cc]+", r8", 2, func(c *CPU) {
			offset := int8(c.operand8())
			c.advance(2)
			if c.condition(cc) {
				c.jumpRelative(offset)
			}
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2|cc<<3, "JP "+conditionNames[cc]+", a16", 3, func(c *CPU) {
			address := c.operand16()
			if c.condition(cc) {
				c.jumpAbsolute(address)
			} else {
				c.advance(3)
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4|cc<<3, "CALL "+conditionNames[cc]+", a16", 3, func(c *CPU) {
			address := c.operand16()
			c.advance(3)
			if c.condition(cc) {
				c.call(address)
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0|cc<<3, "RET "+conditionNames[cc], 1, func(c *CPU) {
			if c.condition(cc) {
				c.ret()
			} else {
				c.advance(1)
			}
		})
	}

	for p := uint8(0); p < 4; p++ {
		p := p
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
		DefineInstruction(0xC5|p<<4, "PUSH "+stackPairNames[p], 1, func(c *CPU) {
			if p == 3 {
				c.pushStack(c.AF.Uint16())
			} else {
				c.pushStack(c.readPair(p))
			}
			c.advance(1)
		})
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
		DefineInstruction(0xC1|p<<4, "POP "+stackPairNames[p], 1, func(c *CPU) {
			value := c.popStack()
			if p == 3 {
				// the low nibble of F cannot hold a value
				c.AF.SetUint16(value & (0xFF00 | types.FlagMask))
			} else {
				c.writePair(p, value)
			}
			c.advance(1)
		})
	}

	// 0xC7, 0xCF, ... 0xFF - RST n
	for i := uint8(0); i < 8; i++ {
		address := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02Xh", address), 1, func(c *CPU) {
			c.advance(1)
			c.call(address)
		})
	}
}
