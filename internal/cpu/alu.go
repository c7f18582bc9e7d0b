package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// add adds n (and the carry flag when withCarry is set) to the A Register.
//
//	ADD A, n / ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	carry := uint8(0)
	if withCarry && c.IsFlagSet(types.FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	half := c.A&0x0F + n&0x0F + carry
	c.A = uint8(sum)
	c.SetFlags(c.A == 0, false, half > 0x0F, sum > 0xFF)
}

// sub subtracts n (and the carry flag when withCarry is set) from the
// A Register.
//
//	SUB n / SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	c.A = c.subtract(n, withCarry)
}

// subtract computes A - n - carry and sets the flags, without storing
// the result.
func (c *CPU) subtract(n uint8, withCarry bool) uint8 {
	carry := uint8(0)
	if withCarry && c.IsFlagSet(types.FlagCarry) {
		carry = 1
	}
	result := c.A - n - carry
	c.SetFlags(
		result == 0,
		true,
		uint16(c.A&0x0F) < uint16(n&0x0F)+uint16(carry),
		uint16(c.A) < uint16(n)+uint16(carry),
	)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.SetFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.SetFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.SetFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register, setting the flags as SUB would.
//
//	CP n
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from lower nibble.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.SetFlags(incremented == 0, false, n&0xF == 0xF, c.IsFlagSet(types.FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.SetFlags(decremented == 0, true, n&0xF == 0, c.IsFlagSet(types.FlagCarry))
	return decremented
}

// addHL adds nn to HL.
//
//	ADD HL, nn
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(nn)
	c.SetFlags(c.IsFlagSet(types.FlagZero), false, hl&0x0FFF+nn&0x0FFF > 0x0FFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed operand, setting the flags from
// the unsigned addition of the low byte.
//
//	ADD SP, r8 / LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.operand8()
	result := c.SP + uint16(int16(int8(value)))
	c.SetFlags(false, false, c.SP&0x0F+uint16(value)&0x0F > 0x0F, c.SP&0xFF+uint16(value) > 0xFF)
	return result
}

// decimalAdjust corrects A after a BCD addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.IsFlagSet(types.FlagCarry)
	if !c.IsFlagSet(types.FlagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.IsFlagSet(types.FlagHalfCarry) || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.IsFlagSet(types.FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.SetFlags(c.A == 0, c.IsFlagSet(types.FlagSubtract), false, carry)
}

var aluNames = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}

// alu applies the 8-bit arithmetic operation encoded by op to n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op & 7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	default:
		c.compare(n)
	}
}

func init() {
	// 0x80 - 0xBF - ALU A, r
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			op, src := op, src
			DefineInstruction(0x80|op<<3|src, aluNames[op]+registerNames[src], 1, func(c *CPU) {
				c.alu(op, c.readRegister(src))
				c.advance(1)
			})
		}
		// 0xC6, 0xCE, ... 0xFE - ALU A, d8
		op := op
		DefineInstruction(0xC6|op<<3, aluNames[op]+"d8", 2, func(c *CPU) {
			c.alu(op, c.operand8())
			c.advance(2)
		})
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x04, 0x0C, ... 0x3C - INC r
		DefineInstruction(0x04|r<<3, "INC "+registerNames[r], 1, func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
			c.advance(1)
		})
		// 0x05, 0x0D, ... 0x3D - DEC r
		DefineInstruction(0x05|r<<3, "DEC "+registerNames[r], 1, func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
			c.advance(1)
		})
	}

	for p := uint8(0); p < 4; p++ {
		p := p
		// 0x03, 0x13, 0x23, 0x33 - INC rr
		DefineInstruction(0x03|p<<4, "INC "+pairNames[p], 1, func(c *CPU) {
			c.writePair(p, c.readPair(p)+1)
			c.advance(1)
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
		DefineInstruction(0x0B|p<<4, "DEC "+pairNames[p], 1, func(c *CPU) {
			c.writePair(p, c.readPair(p)-1)
			c.advance(1)
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
		DefineInstruction(0x09|p<<4, fmt.Sprintf("ADD HL, %s", pairNames[p]), 1, func(c *CPU) {
			c.addHL(c.readPair(p))
			c.advance(1)
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", 2, func(c *CPU) {
		c.SP = c.addSPSigned()
		c.advance(2)
	})
	DefineInstruction(0x27, "DAA", 1, func(c *CPU) {
		c.decimalAdjust()
		c.advance(1)
	})
	DefineInstruction(0x2F, "CPL", 1, func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.SetFlag(types.FlagSubtract)
		c.SetFlag(types.FlagHalfCarry)
		c.advance(1)
	})
	DefineInstruction(0x37, "SCF", 1, func(c *CPU) {
		c.SetFlag(types.FlagCarry)
		c.ClearFlag(types.FlagSubtract)
		c.ClearFlag(types.FlagHalfCarry)
		c.advance(1)
	})
	DefineInstruction(0x3F, "CCF", 1, func(c *CPU) {
		c.setFlagTo(types.FlagCarry, !c.IsFlagSet(types.FlagCarry))
		c.ClearFlag(types.FlagSubtract)
		c.ClearFlag(types.FlagHalfCarry)
		c.advance(1)
	})
}
