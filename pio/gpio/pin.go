package gpio

import (
	"fmt"
)

// pinCore is the state shared by the three pin types. It owns no resource;
// the chip must outlive it.
type pinCore struct {
	chip *Chip
	num  uint32
	name string
	caps Flags

	consumed bool
}

// Pin is a pin whose mode has not been set by this package
type Pin struct {
	pinCore
}

// InputPin is a pin configured as input
type InputPin struct {
	pinCore
}

// OutputPin is a pin configured as output with a fixed drive mode
type OutputPin struct {
	pinCore
	mode DriveMode
}

// Number returns the controller pin number
func (p *pinCore) Number() uint32 {
	return p.num
}

// Name returns the name the controller reported for the pin
func (p *pinCore) Name() string {
	return p.name
}

// Caps returns the capability bitmask read when the pin was obtained
func (p *pinCore) Caps() Flags {
	return p.caps
}

func (p *pinCore) String() string {
	if p.name != "" {
		return fmt.Sprintf("%s/%s", p.chip, p.name)
	}
	return fmt.Sprintf("%s/%d", p.chip, p.num)
}

func (p *pinCore) usable() error {
	if p.consumed {
		return ErrorConsumed
	}
	return nil
}

// take consumes the value and returns a copy for the next mode
func (p *pinCore) take() (pinCore, error) {
	if p.consumed {
		return pinCore{}, ErrorConsumed
	}
	p.consumed = true

	next := *p
	next.consumed = false
	return next, nil
}

// IntoUnknown gives up the mode of the pin without touching the hardware
func (p *pinCore) IntoUnknown() (*Pin, error) {
	core, err := p.take()
	if err != nil {
		return nil, err
	}
	return &Pin{core}, nil
}

// IntoInput configures the pin as input. Any drive mode is cleared. The
// receiver is consumed, also when the configuration fails.
func (p *pinCore) IntoInput() (*InputPin, error) {
	core, err := p.take()
	if err != nil {
		return nil, err
	}

	if err := core.chip.ctrl.SetPinFlags(core.num, FlagInput); err != nil {
		return nil, err
	}

	core.chip.debugf("%s: input", &core)
	return &InputPin{core}, nil
}

// IntoOutput configures the pin as push-pull output driving initial
func (p *pinCore) IntoOutput(initial Level) (*OutputPin, error) {
	return p.intoOutput(PushPull, initial)
}

// IntoOpenDrainOutput configures the pin as open-drain output driving initial
func (p *pinCore) IntoOpenDrainOutput(initial Level) (*OutputPin, error) {
	return p.intoOutput(OpenDrain, initial)
}

func (p *pinCore) intoOutput(mode DriveMode, initial Level) (*OutputPin, error) {
	core, err := p.take()
	if err != nil {
		return nil, err
	}

	// The preset goes out in the same register write as the mode so the
	// line never shows the wrong level.
	flags := FlagOutput | mode.flag()
	preset := false
	if initial == Low && core.caps.Has(FlagPresetLow) {
		flags |= FlagPresetLow
		preset = true
	} else if initial == High && core.caps.Has(FlagPresetHigh) {
		flags |= FlagPresetHigh
		preset = true
	}

	if err := core.chip.ctrl.SetPinFlags(core.num, flags); err != nil {
		return nil, err
	}

	out := &OutputPin{pinCore: core, mode: mode}
	if !preset {
		if err := out.Set(initial); err != nil {
			return nil, err
		}
	}

	core.chip.debugf("%s: output %s %s (preset=%v)", &core, mode, initial, preset)
	return out, nil
}

// Read returns the electrical level of the pin
func (p *InputPin) Read() (Level, error) {
	if err := p.usable(); err != nil {
		return Low, err
	}
	return p.chip.ctrl.Get(p.num)
}

// IsHigh reports whether the pin reads high
func (p *InputPin) IsHigh() (bool, error) {
	level, err := p.Read()
	return level == High, err
}

// IsLow reports whether the pin reads low
func (p *InputPin) IsLow() (bool, error) {
	level, err := p.Read()
	if err != nil {
		return false, err
	}
	return level == Low, nil
}

// DriveMode returns the drive mode the pin was configured with
func (p *OutputPin) DriveMode() DriveMode {
	return p.mode
}

// Set drives the output register to level
func (p *OutputPin) Set(level Level) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.chip.ctrl.Set(p.num, level)
}

// SetLow drives the pin low
func (p *OutputPin) SetLow() error {
	return p.Set(Low)
}

// SetHigh drives the pin high. On an open-drain pin this releases the line.
func (p *OutputPin) SetHigh() error {
	return p.Set(High)
}

// Driven returns the level the output register is set to. This is not
// necessarily the electrical level of an open-drain line.
func (p *OutputPin) Driven() (Level, error) {
	if err := p.usable(); err != nil {
		return Low, err
	}
	return p.chip.ctrl.Get(p.num)
}

// IsSetHigh reports whether the pin is driven high
func (p *OutputPin) IsSetHigh() (bool, error) {
	level, err := p.Driven()
	return level == High, err
}

// IsSetLow reports whether the pin is driven low
func (p *OutputPin) IsSetLow() (bool, error) {
	level, err := p.Driven()
	if err != nil {
		return false, err
	}
	return level == Low, nil
}

// Toggle inverts the driven level. Controllers without a toggle operation
// get a read-modify-write.
func (p *OutputPin) Toggle() error {
	if err := p.usable(); err != nil {
		return err
	}

	if t, ok := p.chip.ctrl.(Toggler); ok {
		return t.Toggle(p.num)
	}

	level, err := p.chip.ctrl.Get(p.num)
	if err != nil {
		return err
	}
	return p.chip.ctrl.Set(p.num, !level)
}
