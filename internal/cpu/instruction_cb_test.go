package cpu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

func TestInstructionCB_Rotate(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		in     uint8
		carry  bool
		want   uint8
		z, cy  bool
	}{
		{"RLC B", 0x00, 0x85, false, 0x0B, false, true},
		{"RRC C", 0x09, 0x01, false, 0x80, false, true},
		{"RL D", 0x12, 0x80, false, 0x00, true, true},
		{"RL D carry", 0x12, 0x11, true, 0x23, false, false},
		{"RR E", 0x1B, 0x01, true, 0x80, false, true},
		{"SLA H", 0x24, 0xFF, false, 0xFE, false, true},
		{"SRA L", 0x2D, 0x8A, false, 0xC5, false, false},
		{"SWAP A", 0x37, 0xF0, true, 0x0F, false, false},
		{"SRL A", 0x3F, 0x01, false, 0x00, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(0xCB, tt.opcode)
			r := tt.opcode & 7
			c.writeRegister(r, tt.in)
			c.setFlagTo(types.FlagCarry, tt.carry)
			step(t, c)
			if got := c.readRegister(r); got != tt.want {
				t.Errorf("expected 0x%02X, got 0x%02X", tt.want, got)
			}
			expectFlags(t, c, tt.z, false, false, tt.cy)
			if c.PC != 0x0102 {
				t.Errorf("expected PC to be 0x0102, got 0x%04X", c.PC)
			}
		})
	}
}

func TestInstructionCB_Bit(t *testing.T) {
	// BIT 7, H ; BIT 0, H
	c, _ := newTestCPU(0xCB, 0x7C, 0xCB, 0x44)
	c.H = 0x80
	c.SetFlag(types.FlagCarry)

	step(t, c)
	expectFlags(t, c, false, false, true, true)
	step(t, c)
	expectFlags(t, c, true, false, true, true)
	if c.H != 0x80 {
		t.Errorf("expected H to be unchanged, got 0x%02X", c.H)
	}
}

func TestInstructionCB_SetReset(t *testing.T) {
	// SET 3, (HL) ; RES 7, (HL)
	c, m := newTestCPU(0xCB, 0xDE, 0xCB, 0xBE)
	c.HL.SetUint16(0xC000)
	m.Write(0xC000, 0x80)

	step(t, c)
	if m.Read(0xC000) != 0x88 {
		t.Errorf("expected 0x88 at 0xC000, got 0x%02X", m.Read(0xC000))
	}
	step(t, c)
	if m.Read(0xC000) != 0x08 {
		t.Errorf("expected 0x08 at 0xC000, got 0x%02X", m.Read(0xC000))
	}
	if c.F != 0 {
		t.Errorf("expected flags to be unaffected, got 0x%02X", c.F)
	}
}
