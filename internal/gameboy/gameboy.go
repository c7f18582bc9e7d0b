// Package gameboy provides the machine that ties the CPU, the address
// space and the interrupt service together.
package gameboy

import (
	"context"
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// GameBoy represents a Game Boy. It owns the register file (through the
// CPU) and the address space of a single machine.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Header     cartridge.Header

	log.Logger

	tracer   trace.Sink
	strict   bool
	postBoot bool
	bootROM  *boot.ROM
	mmuOpts  []mmu.Opt
}

// NewGameBoy returns a new GameBoy with rom mapped at 0x0000. Images
// shorter than a ROM bank are rejected; a bad logo is only reported
// unless the machine is Strict.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.strict {
		if err := cartridge.Validate(rom); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
	}

	g.MMU = mmu.NewMMU(append([]mmu.Opt{mmu.WithLogger(g.Logger)}, g.mmuOpts...)...)
	if err := g.MMU.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g.Header = header
	if !header.LogoValid {
		g.Logger.Infof("gameboy: %s: boot logo does not match", header.Title)
	}
	if !header.HeaderChecksumValid {
		g.Logger.Infof("gameboy: %s: header checksum does not match", header.Title)
	}

	g.Interrupts = interrupts.NewService(g.MMU)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts)
	switch {
	case g.bootROM != nil:
		g.bootROM.Map(g.MMU)
		g.CPU.PC = 0x0000
		g.Logger.Debugf("gameboy: mapped %s boot rom", g.bootROM.Model())
	case g.postBoot:
		g.setPostBootState()
	}

	g.Logger.WithFields(log.Fields{
		"title":       header.Title,
		"type":        header.CartridgeType.String(),
		"fingerprint": fmt.Sprintf("%016x", header.Fingerprint),
	}).Debugf("gameboy: loaded %d bytes", len(rom))

	return g, nil
}

// setPostBootState sets the registers to the values the DMG boot ROM
// leaves behind when it jumps to the entry point.
func (g *GameBoy) setPostBootState() {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = types.EntryPoint
}

// Step executes a single instruction. A fatal error is reported through
// the logger with the full register dump before it is returned.
func (g *GameBoy) Step() (cpu.Trace, error) {
	t, err := g.CPU.Step()
	if err != nil {
		g.report(err)
		return t, err
	}

	if g.tracer != nil {
		if err := g.tracer.Write(t); err != nil {
			g.Logger.Errorf("gameboy: detaching tracer: %v", err)
			g.tracer = nil
		}
	}

	return t, nil
}

// report logs a fatal CPU error.
func (g *GameBoy) report(err error) {
	var opErr *cpu.UnimplementedOpcodeError
	if !errors.As(err, &opErr) {
		g.Logger.Errorf("gameboy: %v", err)
		return
	}

	fields := opErr.Registers.Fields()
	fields["opcode"] = fmt.Sprintf("%02X", opErr.Opcode)
	if opErr.Prefixed {
		fields["opcode"] = fmt.Sprintf("CB%02X", opErr.Opcode)
	}
	fields["at"] = fmt.Sprintf("%04X", opErr.PC)
	g.Logger.WithFields(fields).Errorf("gameboy: %v", err)
}

// Run steps the machine until maxSteps instructions have executed, ctx
// is cancelled or a fatal error occurs. A maxSteps of 0 or less runs
// without a limit. It returns the number of steps executed.
func (g *GameBoy) Run(ctx context.Context, maxSteps int) (int, error) {
	steps := 0
	for maxSteps <= 0 || steps < maxSteps {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		if _, err := g.Step(); err != nil {
			return steps, err
		}
		steps++
	}

	return steps, nil
}

// VRAM returns a copy of the video RAM (0x8000 - 0x9FFF), for an
// external renderer.
func (g *GameBoy) VRAM() []byte {
	return g.MMU.Range(types.VRAMStart, types.ERAMStart-1)
}

// Close closes the tracer, if any.
func (g *GameBoy) Close() error {
	if g.tracer == nil {
		return nil
	}
	return g.tracer.Close()
}
