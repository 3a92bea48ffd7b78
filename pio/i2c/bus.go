package i2c

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	pi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const maxMessageLen = 0xFFFF

// Bus is an open I2C controller. One transaction runs at a time; the bus does
// not arbitrate with other processes that opened the same controller.
type Bus struct {
	mutex     sync.Mutex
	transport Transport
	name      string

	// Logger receives every transaction at debug level when not nil
	Logger *logrus.Entry
}

var _ pi2c.BusCloser = (*Bus)(nil)

// NewBus wraps a transport. The bus takes ownership of it.
func NewBus(transport Transport, name string) *Bus {
	return &Bus{transport: transport, name: name}
}

// Open opens the controller device node at path
func Open(path string) (*Bus, error) {
	transport, err := openTransport(path)
	if err != nil {
		return nil, err
	}
	return NewBus(transport, path), nil
}

// OpenUnit opens the controller with the given unit number
func OpenUnit(unit int) (*Bus, error) {
	return Open(unitPath(unit))
}

func (b *Bus) String() string {
	return b.name
}

// Read reads len(buf) bytes from the device at addr
func (b *Bus) Read(addr uint16, buf []byte) error {
	return b.Execute(addr, ReadOp(buf))
}

// Write writes data to the device at addr
func (b *Bus) Write(addr uint16, data []byte) error {
	return b.Execute(addr, WriteOp(data))
}

// WriteRead writes data and reads len(buf) bytes back with a repeated start
// in between, the usual way to read a register.
func (b *Bus) WriteRead(addr uint16, data []byte, buf []byte) error {
	return b.Execute(addr, WriteOp(data), ReadOp(buf))
}

// Execute runs the operations as one transaction. Transport failures fail
// the whole transaction and are returned as *BusError. Nothing is retried.
func (b *Bus) Execute(addr uint16, ops ...Operation) error {
	if addr > 0x7F {
		return ErrorAddress
	}
	for _, op := range ops {
		if len(op.Buf) > maxMessageLen {
			return ErrorLength
		}
	}

	msgs := Compile(addr, ops)
	if len(msgs) == 0 {
		return nil
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// Every transaction gets an id; it is logged and ends up in the error
	id := uuid.New().String()
	log := b.debugLogger(id)
	if log != nil {
		log.Debugf("%s: %s", b.name, describe(msgs))
	}

	if err := b.transport.Transfer(msgs); err != nil {
		busErr := newBusError(err, id)
		if log != nil {
			log.Debugf("%s: failed: %v", b.name, busErr.Err)
		}
		return busErr
	}

	if log != nil {
		log.Debugf("%s: done", b.name)
	}
	return nil
}

func (b *Bus) debugLogger(id string) *logrus.Entry {
	if b.Logger == nil || !b.Logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	return b.Logger.WithField("txn", id)
}

func describe(msgs []Message) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Tx implements the periph i2c.Bus interface. Either buffer may be empty.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return b.WriteRead(addr, w, r)
	case len(w) > 0:
		return b.Write(addr, w)
	case len(r) > 0:
		return b.Read(addr, r)
	}
	return nil
}

// SetSpeed is not supported: the bus frequency comes from the kernel's
// device configuration.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return fmt.Errorf("%s: %w", b.name, ErrorSpeed)
}

// Close releases the controller
func (b *Bus) Close() error {
	return b.transport.Close()
}
