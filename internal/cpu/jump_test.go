package cpu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

func TestCPU_Stack(t *testing.T) {
	c, m := newTestCPU()
	c.SP = 0x2000

	c.pushStack(0x1234)
	if c.SP != 0x1FFE {
		t.Errorf("expected SP to be 0x1FFE, got 0x%04X", c.SP)
	}
	if m.Read(0x1FFF) != 0x12 {
		t.Errorf("expected 0x12 at 0x1FFF, got 0x%02X", m.Read(0x1FFF))
	}
	if m.Read(0x1FFE) != 0x34 {
		t.Errorf("expected 0x34 at 0x1FFE, got 0x%02X", m.Read(0x1FFE))
	}

	if got := c.popStack(); got != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", got)
	}
	if c.SP != 0x2000 {
		t.Errorf("expected SP to be 0x2000, got 0x%04X", c.SP)
	}
}

func TestCPU_CallReturn(t *testing.T) {
	c, m := newTestCPU()
	c.PC = 0x1234
	c.SP = 0x2000
	m.Write(0x1235, 0x33)
	m.Write(0x1236, 0x44)

	c.call(c.operand16())
	if c.PC != 0x4433 {
		t.Errorf("expected PC to be 0x4433, got 0x%04X", c.PC)
	}
	if c.SP != 0x1FFE {
		t.Errorf("expected SP to be 0x1FFE, got 0x%04X", c.SP)
	}
	if m.Read(0x1FFE) != 0x34 || m.Read(0x1FFF) != 0x12 {
		t.Errorf("expected 34 12 on the stack, got %02X %02X", m.Read(0x1FFE), m.Read(0x1FFF))
	}

	c.ret()
	if c.PC != 0x1234 {
		t.Errorf("expected PC to be 0x1234, got 0x%04X", c.PC)
	}
	if c.SP != 0x2000 {
		t.Errorf("expected SP to be 0x2000, got 0x%04X", c.SP)
	}
}

func TestInstruction_Calls(t *testing.T) {
	t.Run("CALL a16", func(t *testing.T) {
		// CALL $4433 at 0x0100, RET at 0x4433
		c, m := newTestCPU(0xCD, 0x33, 0x44)
		m.Write(0x4433, 0xC9)
		c.SP = 0x2000

		step(t, c)
		if c.PC != 0x4433 {
			t.Errorf("expected PC to be 0x4433, got 0x%04X", c.PC)
		}
		if m.Read(0x1FFE) != 0x03 || m.Read(0x1FFF) != 0x01 {
			t.Errorf("expected return address 0x0103 on the stack, got %02X%02X", m.Read(0x1FFF), m.Read(0x1FFE))
		}

		step(t, c)
		if c.PC != 0x0103 {
			t.Errorf("expected PC to be 0x0103, got 0x%04X", c.PC)
		}
		if c.SP != 0x2000 {
			t.Errorf("expected SP to be 0x2000, got 0x%04X", c.SP)
		}
	})

	conditionals := []struct {
		name   string
		opcode uint8
		flag   types.Flag
		set    bool
	}{
		{"CALL NZ, a16", 0xC4, types.FlagZero, false},
		{"CALL Z, a16", 0xCC, types.FlagZero, true},
		{"CALL NC, a16", 0xD4, types.FlagCarry, false},
		{"CALL C, a16", 0xDC, types.FlagCarry, true},
	}
	for _, tt := range conditionals {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode, 0x00, 0x40)
			c.setFlagTo(tt.flag, tt.set)
			step(t, c)
			if c.PC != 0x4000 {
				t.Errorf("expected call to 0x4000, got 0x%04X", c.PC)
			}

			c, _ = newTestCPU(tt.opcode, 0x00, 0x40)
			c.setFlagTo(tt.flag, !tt.set)
			step(t, c)
			if c.PC != 0x0103 || c.SP != 0xFFFE {
				t.Errorf("expected no call, got PC 0x%04X SP 0x%04X", c.PC, c.SP)
			}
		})
	}
}

func TestInstruction_Returns(t *testing.T) {
	conditionals := []struct {
		name   string
		opcode uint8
		flag   types.Flag
		set    bool
	}{
		{"RET NZ", 0xC0, types.FlagZero, false},
		{"RET Z", 0xC8, types.FlagZero, true},
		{"RET NC", 0xD0, types.FlagCarry, false},
		{"RET C", 0xD8, types.FlagCarry, true},
	}
	for _, tt := range conditionals {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode)
			c.pushStack(0x1234)
			c.setFlagTo(tt.flag, tt.set)
			step(t, c)
			if c.PC != 0x1234 {
				t.Errorf("expected PC to be 0x1234, got 0x%04X", c.PC)
			}

			c, _ = newTestCPU(tt.opcode)
			c.pushStack(0x1234)
			c.setFlagTo(tt.flag, !tt.set)
			step(t, c)
			if c.PC != 0x0101 {
				t.Errorf("expected PC to be 0x0101, got 0x%04X", c.PC)
			}
		})
	}
}

func TestInstruction_Jumps(t *testing.T) {
	t.Run("jumpRelative", func(t *testing.T) {
		c, _ := newTestCPU()
		c.PC = 0x1000
		c.jumpRelative(-5)
		if c.PC != 0x0FFB {
			t.Errorf("expected PC to be 0x0FFB, got 0x%04X", c.PC)
		}
		c.PC = 0x1000
		c.jumpRelative(5)
		if c.PC != 0x1005 {
			t.Errorf("expected PC to be 0x1005, got 0x%04X", c.PC)
		}
		c.PC = 0x0000
		c.jumpRelative(-1)
		if c.PC != 0xFFFF {
			t.Errorf("expected PC to wrap to 0xFFFF, got 0x%04X", c.PC)
		}
	})
	t.Run("JR r8", func(t *testing.T) {
		c, _ := newTestCPU(0x18, 0xFB)
		step(t, c)
		// relative to the next instruction
		if c.PC != 0x00FD {
			t.Errorf("expected PC to be 0x00FD, got 0x%04X", c.PC)
		}
	})
	t.Run("JR NZ, r8", func(t *testing.T) {
		c, _ := newTestCPU(0x20, 0x05)
		c.SetFlag(types.FlagZero)
		step(t, c)
		if c.PC != 0x0102 {
			t.Errorf("expected PC to be 0x0102, got 0x%04X", c.PC)
		}
		c.PC = 0x0100
		c.ClearFlag(types.FlagZero)
		step(t, c)
		if c.PC != 0x0107 {
			t.Errorf("expected PC to be 0x0107, got 0x%04X", c.PC)
		}
	})
	t.Run("JP a16", func(t *testing.T) {
		c, m := newTestCPU()
		m.Write(0x0004, 0xC3)
		m.Write(0x0005, 0x34)
		m.Write(0x0006, 0x12)
		c.PC = 0x0004
		step(t, c)
		if c.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", c.PC)
		}
	})
	t.Run("JP C, a16", func(t *testing.T) {
		c, _ := newTestCPU(0xDA, 0x34, 0x12)
		step(t, c)
		if c.PC != 0x0103 {
			t.Errorf("expected PC to be 0x0103, got 0x%04X", c.PC)
		}
		c.PC = 0x0100
		c.SetFlag(types.FlagCarry)
		step(t, c)
		if c.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", c.PC)
		}
	})
	t.Run("JP HL", func(t *testing.T) {
		c, _ := newTestCPU(0xE9)
		c.HL.SetUint16(0xC000)
		step(t, c)
		if c.PC != 0xC000 {
			t.Errorf("expected PC to be 0xC000, got 0x%04X", c.PC)
		}
	})
}

func TestInstruction_Restarts(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		c, _ := newTestCPU(0xC7 + i*8)
		step(t, c)
		if c.PC != uint16(i)*8 {
			t.Errorf("RST %02Xh: expected PC to be 0x%04X, got 0x%04X", i*8, uint16(i)*8, c.PC)
		}
		if got := c.popStack(); got != 0x0101 {
			t.Errorf("RST %02Xh: expected return address 0x0101, got 0x%04X", i*8, got)
		}
	}
}
