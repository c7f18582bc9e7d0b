package interrupts

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4).
	JoypadFlag = types.Bit4
)

// IME is the state of the interrupt master enable.
type IME uint8

const (
	// IMEDisabled prevents any interrupt from being serviced.
	IMEDisabled IME = iota
	// IMEEnabled allows requested and enabled interrupts to be serviced.
	IMEEnabled
	// IMEPending is entered by EI. It becomes IMEEnabled once the
	// instruction following EI has completed.
	IMEPending
)

func (i IME) String() string {
	switch i {
	case IMEDisabled:
		return "disabled"
	case IMEEnabled:
		return "enabled"
	case IMEPending:
		return "pending"
	}
	return "unknown"
}

// Bus is the part of the MMU the service needs to expose IF and IE.
type Bus interface {
	RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8)
}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is changed by the DI, EI and RETI instructions.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)

	IME IME
}

// NewService returns a new Service with IF and IE registered on bus.
func NewService(bus Bus) *Service {
	s := &Service{}
	bus.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & 0x1F // only the first 5 bits are used
		}, func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	bus.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)

	return s
}

// DisableIME turns the IME off immediately, cancelling a pending enable.
func (s *Service) DisableIME() {
	s.IME = IMEDisabled
}

// ScheduleIME arms the IME to turn on after the next instruction.
func (s *Service) ScheduleIME() {
	if s.IME != IMEEnabled {
		s.IME = IMEPending
	}
}

// EnableIME turns the IME on immediately.
func (s *Service) EnableIME() {
	s.IME = IMEEnabled
}

// Promote completes a pending enable. The CPU calls it after an
// instruction that began with the IME pending, so that the instruction
// following EI always runs before an interrupt can be taken.
func (s *Service) Promote(wasPending bool) {
	if wasPending && s.IME == IMEPending {
		s.IME = IMEEnabled
	}
}

// Enabled returns true if interrupts may be serviced.
func (s *Service) Enabled() bool {
	return s.IME == IMEEnabled
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Vector returns the vector of the highest priority interrupt that
// is requested and enabled, clearing its bit in the Flag register.
// The second return value is false when there is nothing to service.
func (s *Service) Vector() (uint16, bool) {
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8), true
		}
	}

	return 0, false
}
