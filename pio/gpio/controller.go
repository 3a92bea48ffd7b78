package gpio

// Error is a constant error value
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrorConsumed    = Error("Pin value was consumed by a mode transition")
	ErrorUnsupported = Error("GPIO controllers are not supported on this platform")
	ErrorPinRange    = Error("Pin number out of range")
	ErrorNoPins      = Error("Controller has no pins")
)

// maxPin converts the highest pin number reported by a controller. A count
// based interface reports -1 when there are no pins.
func maxPin(max int32) (uint32, error) {
	if max < 0 {
		return 0, ErrorNoPins
	}
	return uint32(max), nil
}

// PinConfig is what a controller reports about one pin
type PinConfig struct {
	Pin   uint32
	Name  string
	Caps  Flags
	Flags Flags
}

// Controller is a native GPIO controller. It owns the device handle and all
// calls go straight to the hardware; errors are returned unchanged.
type Controller interface {
	String() string

	// MaxPin returns the highest valid pin number
	MaxPin() (uint32, error)
	PinConfig(pin uint32) (PinConfig, error)
	// SetPinFlags writes the configuration register of a pin in one call
	SetPinFlags(pin uint32, flags Flags) error

	Get(pin uint32) (Level, error)
	Set(pin uint32, level Level) error

	Close() error
}

// Toggler is implemented by controllers that can invert an output in hardware
type Toggler interface {
	Toggle(pin uint32) error
}
