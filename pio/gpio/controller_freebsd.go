package gpio

import (
	"fmt"
	"unsafe"

	"github.com/BertoldVdb/go-pio/pio/handle"
)

// gpioc(4) requests, see sys/gpio.h
const (
	gpioMaxPinIoctl    uintptr = 0x40044700
	gpioGetConfigIoctl uintptr = 0xc04c4701
	gpioSetConfigIoctl uintptr = 0x804c4702
	gpioGetIoctl       uintptr = 0xc0084703
	gpioSetIoctl       uintptr = 0x80084704
	gpioToggleIoctl    uintptr = 0xc0084705
)

const gpioMaxName = 64

type gpioPinRaw struct {
	Pin   uint32
	Name  [gpioMaxName]byte
	Caps  uint32
	Flags uint32
}

type gpioReqRaw struct {
	Pin   uint32
	Value uint32
}

type freebsdController struct {
	handle *handle.Handle
}

func unitPath(unit int) string {
	return fmt.Sprintf("/dev/gpioc%d", unit)
}

func openController(path string) (Controller, error) {
	h, err := handle.Open(path)
	if err != nil {
		return nil, err
	}
	return &freebsdController{handle: h}, nil
}

func (c *freebsdController) String() string {
	return c.handle.Path()
}

func (c *freebsdController) MaxPin() (uint32, error) {
	var max int32
	if err := c.handle.Ioctl(gpioMaxPinIoctl, unsafe.Pointer(&max)); err != nil {
		return 0, err
	}
	return maxPin(max)
}

func (c *freebsdController) PinConfig(pin uint32) (PinConfig, error) {
	raw := gpioPinRaw{Pin: pin}
	if err := c.handle.Ioctl(gpioGetConfigIoctl, unsafe.Pointer(&raw)); err != nil {
		return PinConfig{}, err
	}

	return PinConfig{
		Pin:   raw.Pin,
		Name:  bytesToString(raw.Name[:]),
		Caps:  Flags(raw.Caps),
		Flags: Flags(raw.Flags),
	}, nil
}

func (c *freebsdController) SetPinFlags(pin uint32, flags Flags) error {
	raw := gpioPinRaw{Pin: pin, Flags: uint32(flags)}
	return c.handle.Ioctl(gpioSetConfigIoctl, unsafe.Pointer(&raw))
}

func (c *freebsdController) Get(pin uint32) (Level, error) {
	req := gpioReqRaw{Pin: pin}
	if err := c.handle.Ioctl(gpioGetIoctl, unsafe.Pointer(&req)); err != nil {
		return Low, err
	}
	return req.Value != 0, nil
}

func (c *freebsdController) Set(pin uint32, level Level) error {
	req := gpioReqRaw{Pin: pin}
	if level {
		req.Value = 1
	}
	return c.handle.Ioctl(gpioSetIoctl, unsafe.Pointer(&req))
}

func (c *freebsdController) Toggle(pin uint32) error {
	req := gpioReqRaw{Pin: pin}
	return c.handle.Ioctl(gpioToggleIoctl, unsafe.Pointer(&req))
}

func (c *freebsdController) Close() error {
	return c.handle.Close()
}
