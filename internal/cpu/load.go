package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// loadRegister8 loads the immediate byte into the 8-bit operand at index.
//
//	LD n, d8
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) loadRegister8(index uint8) {
	c.writeRegister(index, c.operand8())
}

// loadRegister16 loads the immediate word into the 16-bit operand at
// index.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
func (c *CPU) loadRegister16(index uint8) {
	c.writePair(index, c.operand16())
}

// loadIndirect returns the address used by the A <-> memory loads
// encoded in bits 4-5, updating HL for the (HL+) and (HL-) forms.
func (c *CPU) loadIndirect(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl + 1)
		return hl
	default:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl - 1)
		return hl
	}
}

var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

func init() {
	// 0x40 - 0x7F - LD r, r (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			dst, src := dst, src
			DefineInstruction(0x40|dst<<3|src, "LD "+registerNames[dst]+", "+registerNames[src], 1, func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
				c.advance(1)
			})
		}
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x06, 0x0E, ... 0x3E - LD r, d8
		DefineInstruction(0x06|r<<3, "LD "+registerNames[r]+", d8", 2, func(c *CPU) {
			c.loadRegister8(r)
			c.advance(2)
		})
	}

	for p := uint8(0); p < 4; p++ {
		p := p
		// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
		DefineInstruction(0x01|p<<4, "LD "+pairNames[p]+", d16", 3, func(c *CPU) {
			c.loadRegister16(p)
			c.advance(3)
		})
		// 0x02, 0x12, 0x22, 0x32 - LD (rr), A
		DefineInstruction(0x02|p<<4, "LD "+indirectNames[p]+", A", 1, func(c *CPU) {
			c.writeByte(c.loadIndirect(p), c.A)
			c.advance(1)
		})
		// 0x0A, 0x1A, 0x2A, 0x3A - LD A, (rr)
		DefineInstruction(0x0A|p<<4, "LD A, "+indirectNames[p], 1, func(c *CPU) {
			c.A = c.readByte(c.loadIndirect(p))
			c.advance(1)
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", 3, func(c *CPU) {
		address := c.operand16()
		c.writeByte(address, uint8(c.SP&0xFF))
		c.writeByte(address+1, uint8(c.SP>>8))
		c.advance(3)
	})
	DefineInstruction(0xE0, "LDH (a8), A", 2, func(c *CPU) {
		c.writeByte(types.IOStart+uint16(c.operand8()), c.A)
		c.advance(2)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, func(c *CPU) {
		c.A = c.readByte(types.IOStart + uint16(c.operand8()))
		c.advance(2)
	})
	DefineInstruction(0xE2, "LD (C), A", 1, func(c *CPU) {
		c.writeByte(types.IOStart+uint16(c.C), c.A)
		c.advance(1)
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, func(c *CPU) {
		c.A = c.readByte(types.IOStart + uint16(c.C))
		c.advance(1)
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, func(c *CPU) {
		c.writeByte(c.operand16(), c.A)
		c.advance(3)
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, func(c *CPU) {
		c.A = c.readByte(c.operand16())
		c.advance(3)
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", 2, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
		c.advance(2)
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.advance(1)
	})
}
