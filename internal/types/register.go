package types

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// Flag is the bit position of a flag inside the F register. Only the
// upper nibble of F carries flags.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value. Both
// halves are written before returning, the low nibble of F included when
// the pair is AF.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers represents the GB CPU register file. The 16-bit pairs are
// views over the 8-bit registers, so a Registers value must be created
// with NewRegisters and never copied.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// NewRegisters returns a register file in its power-on state, with the
// program counter at the cartridge entry point.
func NewRegisters() *Registers {
	r := &Registers{}
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
	r.AF = &RegisterPair{&r.A, &r.F}
	r.Reset()

	return r
}

// Reset clears every register and points PC at 0x0100.
func (r *Registers) Reset() {
	r.A, r.B, r.C, r.D, r.E, r.F, r.H, r.L = 0, 0, 0, 0, 0, 0, 0, 0
	r.SP = 0
	r.PC = EntryPoint
}

// SetFlag sets the given flag in the F register.
func (r *Registers) SetFlag(flag Flag) {
	r.F = bits.Set(r.F, flag)
}

// ClearFlag clears the given flag in the F register.
func (r *Registers) ClearFlag(flag Flag) {
	r.F = bits.Reset(r.F, flag)
}

// IsFlagSet returns true if the given flag is set.
func (r *Registers) IsFlagSet(flag Flag) bool {
	return bits.Test(r.F, flag)
}

// SetFlags replaces all four flags at once. The low nibble of F is cleared.
func (r *Registers) SetFlags(zero, subtract, halfCarry, carry bool) {
	r.F = bits.From(zero)<<FlagZero |
		bits.From(subtract)<<FlagSubtract |
		bits.From(halfCarry)<<FlagHalfCarry |
		bits.From(carry)<<FlagCarry
}

// Snapshot returns a copy of the register values that is safe to keep
// after the register file has moved on.
func (r *Registers) Snapshot() RegisterSnapshot {
	return RegisterSnapshot{
		A: r.A, F: r.F, B: r.B, C: r.C,
		D: r.D, E: r.E, H: r.H, L: r.L,
		SP: r.SP, PC: r.PC,
	}
}

// RegisterSnapshot is a point-in-time copy of the register file.
type RegisterSnapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

func (s RegisterSnapshot) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC)
}

// Fields returns the snapshot as a set of key/value pairs, for use with
// structured loggers.
func (s RegisterSnapshot) Fields() map[string]interface{} {
	return map[string]interface{}{
		"af": fmt.Sprintf("%02X%02X", s.A, s.F),
		"bc": fmt.Sprintf("%02X%02X", s.B, s.C),
		"de": fmt.Sprintf("%02X%02X", s.D, s.E),
		"hl": fmt.Sprintf("%02X%02X", s.H, s.L),
		"sp": fmt.Sprintf("%04X", s.SP),
		"pc": fmt.Sprintf("%04X", s.PC),
	}
}
