package gpio

import (
	"errors"
	"fmt"
)

var errFake = errors.New("Fake hardware failure")

type fakeCall struct {
	op    string
	pin   uint32
	flags Flags
	level Level
}

// fakeController models a controller with an output register per pin and
// records every call that reaches the hardware.
type fakeController struct {
	pins   []PinConfig
	levels map[uint32]Level
	calls  []fakeCall
	closed bool

	failSetFlags bool
	failSet      bool
	failGet      bool
}

func newFakeController(caps ...Flags) *fakeController {
	c := &fakeController{levels: make(map[uint32]Level)}
	for i, cp := range caps {
		c.pins = append(c.pins, PinConfig{
			Pin:  uint32(i),
			Name: fmt.Sprintf("P%d", i),
			Caps: cp,
		})
	}
	return c
}

func (c *fakeController) String() string { return "fake0" }

func (c *fakeController) MaxPin() (uint32, error) {
	if len(c.pins) == 0 {
		return 0, errFake
	}
	return uint32(len(c.pins) - 1), nil
}

func (c *fakeController) PinConfig(pin uint32) (PinConfig, error) {
	c.calls = append(c.calls, fakeCall{op: "config", pin: pin})
	if int(pin) >= len(c.pins) {
		return PinConfig{}, ErrorPinRange
	}
	return c.pins[pin], nil
}

func (c *fakeController) SetPinFlags(pin uint32, flags Flags) error {
	c.calls = append(c.calls, fakeCall{op: "flags", pin: pin, flags: flags})
	if c.failSetFlags {
		return errFake
	}
	c.pins[pin].Flags = flags
	if flags.Has(FlagPresetHigh) {
		c.levels[pin] = High
	}
	if flags.Has(FlagPresetLow) {
		c.levels[pin] = Low
	}
	return nil
}

func (c *fakeController) Get(pin uint32) (Level, error) {
	c.calls = append(c.calls, fakeCall{op: "get", pin: pin})
	if c.failGet {
		return Low, errFake
	}
	return c.levels[pin], nil
}

func (c *fakeController) Set(pin uint32, level Level) error {
	c.calls = append(c.calls, fakeCall{op: "set", pin: pin, level: level})
	if c.failSet {
		return errFake
	}
	c.levels[pin] = level
	return nil
}

func (c *fakeController) Close() error {
	c.closed = true
	return nil
}

func (c *fakeController) count(op string) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op {
			n++
		}
	}
	return n
}

func (c *fakeController) reset() {
	c.calls = nil
}

// fakeToggler adds a hardware toggle to the fake controller
type fakeToggler struct {
	*fakeController
}

func (c fakeToggler) Toggle(pin uint32) error {
	c.calls = append(c.calls, fakeCall{op: "toggle", pin: pin})
	c.levels[pin] = !c.levels[pin]
	return nil
}
