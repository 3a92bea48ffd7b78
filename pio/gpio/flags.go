package gpio

import (
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// Level is the logic level of a pin
type Level = gpio.Level

const (
	Low  = gpio.Low
	High = gpio.High
)

// Flags is the pin configuration and capability bitmask. The bit values are
// the ones used by the FreeBSD gpio controller interface; other backends
// translate to and from them.
type Flags uint32

const (
	FlagInput      Flags = 0x0001
	FlagOutput     Flags = 0x0002
	FlagOpenDrain  Flags = 0x0004
	FlagPushPull   Flags = 0x0008
	FlagTriState   Flags = 0x0010
	FlagPullUp     Flags = 0x0020
	FlagPullDown   Flags = 0x0040
	FlagInvertIn   Flags = 0x0080
	FlagInvertOut  Flags = 0x0100
	FlagPulsate    Flags = 0x0200
	FlagPresetLow  Flags = 0x0400
	FlagPresetHigh Flags = 0x0800
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagInput, "IN"},
	{FlagOutput, "OUT"},
	{FlagOpenDrain, "OD"},
	{FlagPushPull, "PP"},
	{FlagTriState, "TS"},
	{FlagPullUp, "PU"},
	{FlagPullDown, "PD"},
	{FlagInvertIn, "II"},
	{FlagInvertOut, "IO"},
	{FlagPulsate, "PULSE"},
	{FlagPresetLow, "PRESET_LO"},
	{FlagPresetHigh, "PRESET_HI"},
}

// Has reports whether every bit of mask is set
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

func (f Flags) String() string {
	var parts []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// DriveMode selects how an output pin drives the line
type DriveMode int

const (
	PushPull DriveMode = iota
	OpenDrain
)

func (m DriveMode) flag() Flags {
	if m == OpenDrain {
		return FlagOpenDrain
	}
	return FlagPushPull
}

func (m DriveMode) String() string {
	if m == OpenDrain {
		return "OpenDrain"
	}
	return "PushPull"
}
