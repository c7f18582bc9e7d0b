package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTracer sends the trace of every step to sink. Passing several
// tracers is the same as passing trace.Multi of them.
func WithTracer(sink trace.Sink) Opt {
	return func(gb *GameBoy) {
		if gb.tracer != nil {
			sink = trace.Multi(gb.tracer, sink)
		}
		gb.tracer = sink
	}
}

// Strict refuses to load images that fail cartridge validation.
func Strict() Opt {
	return func(gb *GameBoy) {
		gb.strict = true
	}
}

// WithROMProtection drops writes to the cartridge ROM.
func WithROMProtection() Opt {
	return func(gb *GameBoy) {
		gb.mmuOpts = append(gb.mmuOpts, mmu.WithROMProtection())
	}
}

// WithEchoRAM mirrors work RAM into 0xE000 - 0xFDFF.
func WithEchoRAM() Opt {
	return func(gb *GameBoy) {
		gb.mmuOpts = append(gb.mmuOpts, mmu.WithEchoRAM())
	}
}

// PostBootState starts the machine with the registers set to the values
// upon completion of the boot ROM, rather than zeroed.
func PostBootState() Opt {
	return func(gb *GameBoy) {
		gb.postBoot = true
	}
}

// WithBootROM maps rom over 0x0000 until it unmaps itself through
// BDIS, and starts execution at 0x0000 with zeroed registers. It takes
// precedence over PostBootState.
func WithBootROM(rom *boot.ROM) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}
