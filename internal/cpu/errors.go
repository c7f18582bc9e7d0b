package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

var (
	// ErrUnimplementedOpcode is matched by every *UnimplementedOpcodeError.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	// ErrFaulted is returned by Step once the CPU has faulted.
	ErrFaulted = errors.New("faulted")
)

// UnimplementedOpcodeError reports the fetch of an opcode with no
// instruction, along with the registers at the time of the fetch.
type UnimplementedOpcodeError struct {
	Opcode    uint8
	Prefixed  bool
	PC        uint16
	Registers types.RegisterSnapshot
}

func (e *UnimplementedOpcodeError) Error() string {
	opcode := fmt.Sprintf("0x%02X", e.Opcode)
	if e.Prefixed {
		opcode = "0xCB " + opcode
	}
	return fmt.Sprintf("unimplemented opcode %s at 0x%04X: %s", opcode, e.PC, e.Registers)
}

func (e *UnimplementedOpcodeError) Unwrap() error {
	return ErrUnimplementedOpcode
}
