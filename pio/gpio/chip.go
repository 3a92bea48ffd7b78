// Package gpio drives the pins of a GPIO controller. Pins are handed out in
// an unknown mode and change mode by turning into a value of another type:
// Pin, InputPin or OutputPin. The old value is consumed by the transition.
package gpio

import (
	"github.com/sirupsen/logrus"
)

// Chip is an open GPIO controller
type Chip struct {
	ctrl Controller

	// Logger receives debug output about pin transitions when not nil
	Logger *logrus.Entry
}

// NewChip wraps a controller. The chip takes ownership of it.
func NewChip(ctrl Controller) *Chip {
	return &Chip{ctrl: ctrl}
}

// Open opens the controller device node at path
func Open(path string) (*Chip, error) {
	ctrl, err := openController(path)
	if err != nil {
		return nil, err
	}
	return NewChip(ctrl), nil
}

// OpenUnit opens the controller with the given unit number
func OpenUnit(unit int) (*Chip, error) {
	return Open(unitPath(unit))
}

func (c *Chip) String() string {
	return c.ctrl.String()
}

// Pins starts an enumeration of all pins of the chip
func (c *Chip) Pins() (*PinList, error) {
	max, err := c.ctrl.MaxPin()
	if err != nil {
		return nil, err
	}

	return &PinList{chip: c, max: max}, nil
}

// EachPin calls fn for every pin until fn returns false or an error occurs.
// The enumeration is always released before EachPin returns.
func (c *Chip) EachPin(fn func(name string, pin *Pin) bool) error {
	list, err := c.Pins()
	if err != nil {
		return err
	}
	defer list.Close()

	for list.Next() {
		if !fn(list.Name(), list.Pin()) {
			break
		}
	}

	return list.Err()
}

// Pin returns the pin with the given number in unknown mode
func (c *Chip) Pin(number uint32) (*Pin, error) {
	max, err := c.ctrl.MaxPin()
	if err != nil {
		return nil, err
	}
	if number > max {
		return nil, ErrorPinRange
	}

	cfg, err := c.ctrl.PinConfig(number)
	if err != nil {
		return nil, err
	}

	return c.newPin(cfg), nil
}

func (c *Chip) newPin(cfg PinConfig) *Pin {
	return &Pin{pinCore{
		chip: c,
		num:  cfg.Pin,
		name: cfg.Name,
		caps: cfg.Caps,
	}}
}

func (c *Chip) debugf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Debugf(format, args...)
	}
}

// Close releases the controller. Pins of the chip fail afterwards.
func (c *Chip) Close() error {
	return c.ctrl.Close()
}
