package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// rotateLeft rotates n left by 1 bit, bit 7 moving into both bit 0 and
// the carry flag.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	carry := n >> 7
	rotated := n<<1 | carry
	c.SetFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateRight rotates n right by 1 bit, bit 0 moving into both bit 7
// and the carry flag.
//
//	RRC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8) uint8 {
	carry := n & 1
	rotated := n>>1 | carry<<7
	c.SetFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	rotated := n<<1 | bits.From(c.IsFlagSet(types.FlagCarry))
	c.SetFlags(rotated == 0, false, false, n&types.Bit7 != 0)
	return rotated
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	rotated := n>>1 | bits.From(c.IsFlagSet(types.FlagCarry))<<7
	c.SetFlags(rotated == 0, false, false, n&types.Bit0 != 0)
	return rotated
}

// shiftLeftArithmetic shifts n left into the carry flag, bit 0 becoming 0.
//
//	SLA n
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	shifted := n << 1
	c.SetFlags(shifted == 0, false, false, n&types.Bit7 != 0)
	return shifted
}

// shiftRightArithmetic shifts n right into the carry flag, bit 7
// keeping its value.
//
//	SRA n
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	shifted := n>>1 | n&types.Bit7
	c.SetFlags(shifted == 0, false, false, n&types.Bit0 != 0)
	return shifted
}

// shiftRightLogical shifts n right into the carry flag, bit 7 becoming 0.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	shifted := n >> 1
	c.SetFlags(shifted == 0, false, false, n&types.Bit0 != 0)
	return shifted
}

// swap exchanges the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	swapped := n<<4 | n>>4
	c.SetFlags(swapped == 0, false, false, false)
	return swapped
}

// testBit tests bit b of n.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b, n uint8) {
	c.shouldZeroFlag(bits.Val(n, b))
	c.ClearFlag(types.FlagSubtract)
	c.SetFlag(types.FlagHalfCarry)
}

var rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// rotate applies the shift or rotate operation encoded by op to n.
func (c *CPU) rotate(op uint8, n uint8) uint8 {
	switch op & 7 {
	case 0:
		return c.rotateLeft(n)
	case 1:
		return c.rotateRight(n)
	case 2:
		return c.rotateLeftThroughCarry(n)
	case 3:
		return c.rotateRightThroughCarry(n)
	case 4:
		return c.shiftLeftArithmetic(n)
	case 5:
		return c.shiftRightArithmetic(n)
	case 6:
		return c.swap(n)
	default:
		return c.shiftRightLogical(n)
	}
}

func init() {
	// loop through each register (B, C, D, E, H, L, (HL), A)
	for r := uint8(0); r < 8; r++ {
		r := r

		// 0x00 - 0x3F - rotates, shifts and SWAP
		for op := uint8(0); op < 8; op++ {
			op := op
			DefineInstructionCB(op<<3|r, rotateNames[op]+" "+registerNames[r], func(c *CPU) {
				c.writeRegister(r, c.rotate(op, c.readRegister(r)))
				c.advance(2)
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), func(c *CPU) {
				c.testBit(b, c.readRegister(r))
				c.advance(2)
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, bits.Reset(c.readRegister(r), b))
				c.advance(2)
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, bits.Set(c.readRegister(r), b))
				c.advance(2)
			})
		}
	}
}
