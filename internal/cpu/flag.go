package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// shouldZeroFlag sets FlagZero if the given value is 0.
func (c *CPU) shouldZeroFlag(value uint8) {
	c.setFlagTo(types.FlagZero, value == 0)
}

// setFlagTo sets or clears flag depending on set.
func (c *CPU) setFlagTo(flag types.Flag, set bool) {
	if set {
		c.SetFlag(flag)
	} else {
		c.ClearFlag(flag)
	}
}
