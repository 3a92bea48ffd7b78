package gpio

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/BertoldVdb/go-pio/pio/handle"
	"golang.org/x/sys/unix"
)

// GPIO character device, uAPI v1
const (
	gpioGetChipinfoIoctl         uintptr = 0x8044b401
	gpioGetLineinfoIoctl         uintptr = 0xc048b402
	gpioGetLinehandleIoctl       uintptr = 0xc16cb403
	gpiohandleGetLineValuesIoctl uintptr = 0xc040b408
	gpiohandleSetLineValuesIoctl uintptr = 0xc040b409
	gpiohandleSetConfigIoctl     uintptr = 0xc054b40a
)

const (
	lineIsOut       uint32 = 0x00000002
	lineOpenDrain   uint32 = 0x00000008
	lineBiasPullUp  uint32 = 0x00000020
	lineBiasPullDn  uint32 = 0x00000040
	requestInput    uint32 = 0x00000001
	requestOutput   uint32 = 0x00000002
	requestOpenDrn  uint32 = 0x00000008
	requestPullUp   uint32 = 0x00000020
	requestPullDown uint32 = 0x00000040
)

// A line request always carries the initial output value, so every line
// supports both presets.
const linuxLineCaps = FlagInput | FlagOutput | FlagOpenDrain | FlagPushPull |
	FlagPullUp | FlagPullDown | FlagPresetLow | FlagPresetHigh

const consumerLabel = "go-pio"

type chipInfoRaw struct {
	Name  [32]byte
	Label [32]byte
	Lines uint32
}

type lineInfoRaw struct {
	LineOffset uint32
	Flags      uint32
	Name       [32]byte
	Consumer   [32]byte
}

type handleRequestRaw struct {
	LineOffsets   [64]uint32
	Flags         uint32
	DefaultValues [64]uint8
	ConsumerLabel [32]byte
	Lines         uint32
	Fd            int32
}

type handleConfigRaw struct {
	Flags         uint32
	DefaultValues [64]uint8
	_             [4]uint32
}

type handleDataRaw struct {
	Values [64]uint8
}

type lineRequest struct {
	handle *handle.Handle
	flags  Flags
}

// linuxController keeps one line handle per configured pin. A configured
// line is changed in place so it is never released between two modes.
type linuxController struct {
	handle *handle.Handle
	lines  uint32
	ioctl  func(h *handle.Handle, request uintptr, arg unsafe.Pointer) error

	mutex    sync.Mutex
	requests map[uint32]*lineRequest
}

func unitPath(unit int) string {
	return fmt.Sprintf("/dev/gpiochip%d", unit)
}

func openController(path string) (Controller, error) {
	h, err := handle.Open(path)
	if err != nil {
		return nil, err
	}

	var ci chipInfoRaw
	if err := h.Ioctl(gpioGetChipinfoIoctl, unsafe.Pointer(&ci)); err != nil {
		h.Close()
		return nil, err
	}
	if ci.Lines == 0 {
		h.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrorNoPins)
	}

	return newLinuxController(h, ci.Lines), nil
}

func newLinuxController(h *handle.Handle, lines uint32) *linuxController {
	return &linuxController{
		handle:   h,
		lines:    lines,
		ioctl:    (*handle.Handle).Ioctl,
		requests: make(map[uint32]*lineRequest),
	}
}

func (c *linuxController) String() string {
	return c.handle.Path()
}

func (c *linuxController) MaxPin() (uint32, error) {
	return c.lines - 1, nil
}

func (c *linuxController) PinConfig(pin uint32) (PinConfig, error) {
	if pin >= c.lines {
		return PinConfig{}, ErrorPinRange
	}

	li := lineInfoRaw{LineOffset: pin}
	if err := c.ioctl(c.handle, gpioGetLineinfoIoctl, unsafe.Pointer(&li)); err != nil {
		return PinConfig{}, err
	}

	var flags Flags
	if li.Flags&lineIsOut != 0 {
		flags |= FlagOutput
		if li.Flags&lineOpenDrain != 0 {
			flags |= FlagOpenDrain
		} else {
			flags |= FlagPushPull
		}
	} else {
		flags |= FlagInput
	}
	if li.Flags&lineBiasPullUp != 0 {
		flags |= FlagPullUp
	}
	if li.Flags&lineBiasPullDn != 0 {
		flags |= FlagPullDown
	}

	return PinConfig{
		Pin:   li.LineOffset,
		Name:  bytesToString(li.Name[:]),
		Caps:  linuxLineCaps,
		Flags: flags,
	}, nil
}

// lineRequestFlags translates flags to request flags and the default value
func lineRequestFlags(flags Flags) (uint32, uint8) {
	var req uint32
	var value uint8

	if flags.Has(FlagOutput) {
		req = requestOutput
		if flags.Has(FlagOpenDrain) {
			req |= requestOpenDrn
		}
		if flags.Has(FlagPresetHigh) {
			value = 1
		}
	} else {
		req = requestInput
	}
	if flags.Has(FlagPullUp) {
		req |= requestPullUp
	}
	if flags.Has(FlagPullDown) {
		req |= requestPullDown
	}

	return req, value
}

func (c *linuxController) SetPinFlags(pin uint32, flags Flags) error {
	if pin >= c.lines {
		return ErrorPinRange
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	old, ok := c.requests[pin]
	if !ok {
		return c.requestLine(pin, flags)
	}

	var cfg handleConfigRaw
	cfg.Flags, cfg.DefaultValues[0] = lineRequestFlags(flags)
	err := c.ioctl(old.handle, gpiohandleSetConfigIoctl, unsafe.Pointer(&cfg))
	if err == nil {
		old.flags = flags
		return nil
	}
	if !errors.Is(err, unix.ENOTTY) {
		return err
	}

	// Kernels before 5.5 cannot reconfigure a handle. The line has to be
	// released, and gets its old configuration back if the new one fails.
	delete(c.requests, pin)
	old.handle.Close()

	if err := c.requestLine(pin, flags); err != nil {
		c.requestLine(pin, old.flags)
		return err
	}
	return nil
}

func (c *linuxController) requestLine(pin uint32, flags Flags) error {
	req := handleRequestRaw{Lines: 1}
	req.LineOffsets[0] = pin
	req.Flags, req.DefaultValues[0] = lineRequestFlags(flags)
	stringToBytes(consumerLabel, req.ConsumerLabel[:])

	if err := c.ioctl(c.handle, gpioGetLinehandleIoctl, unsafe.Pointer(&req)); err != nil {
		return err
	}
	if req.Fd <= 0 {
		return fmt.Errorf("line %d: invalid file descriptor returned", pin)
	}

	file := os.NewFile(uintptr(req.Fd), fmt.Sprintf("%s:%d", c.handle.Path(), pin))
	c.requests[pin] = &lineRequest{handle: handle.FromFile(file), flags: flags}
	return nil
}

func (c *linuxController) request(pin uint32) (*handle.Handle, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	req, ok := c.requests[pin]
	if !ok {
		return nil, fmt.Errorf("line %d is not configured", pin)
	}
	return req.handle, nil
}

func (c *linuxController) Get(pin uint32) (Level, error) {
	h, err := c.request(pin)
	if err != nil {
		return Low, err
	}

	var data handleDataRaw
	if err := c.ioctl(h, gpiohandleGetLineValuesIoctl, unsafe.Pointer(&data)); err != nil {
		return Low, err
	}
	return data.Values[0] != 0, nil
}

func (c *linuxController) Set(pin uint32, level Level) error {
	h, err := c.request(pin)
	if err != nil {
		return err
	}

	var data handleDataRaw
	if level {
		data.Values[0] = 1
	}
	return c.ioctl(h, gpiohandleSetLineValuesIoctl, unsafe.Pointer(&data))
}

func (c *linuxController) Close() error {
	c.mutex.Lock()
	for pin, req := range c.requests {
		req.handle.Close()
		delete(c.requests, pin)
	}
	c.mutex.Unlock()

	return c.handle.Close()
}
