// Package i2c runs transactions on an I2C bus controller. A transaction is a
// list of read and write operations against one device address; Compile turns
// it into the messages the controller executes with the right start and stop
// conditions between them.
package i2c

import (
	"fmt"
)

// Direction of a transfer
type Direction uint8

const (
	DirWrite Direction = iota
	DirRead
)

func (d Direction) String() string {
	if d == DirRead {
		return "R"
	}
	return "W"
}

// Operation is one read or write in a transaction. It carries no address.
type Operation struct {
	Dir Direction
	Buf []byte
}

// ReadOp reads len(buf) bytes into buf
func ReadOp(buf []byte) Operation {
	return Operation{Dir: DirRead, Buf: buf}
}

// WriteOp writes data
func WriteOp(data []byte) Operation {
	return Operation{Dir: DirWrite, Buf: data}
}

// Wire flag bits of one message, as in iic(4)
const (
	FlagRead    uint16 = 0x01
	FlagNoStop  uint16 = 0x02
	FlagNoStart uint16 = 0x04
)

// Message is one transfer on the wire. NoStart continues the previous
// transfer without a (repeated) start condition, NoStop keeps the bus for the
// next message.
type Message struct {
	Addr    uint16
	Dir     Direction
	Buf     []byte
	NoStart bool
	NoStop  bool
}

// Flags encodes the message flags
func (m Message) Flags() uint16 {
	var flags uint16
	if m.Dir == DirRead {
		flags |= FlagRead
	}
	if m.NoStop {
		flags |= FlagNoStop
	}
	if m.NoStart {
		flags |= FlagNoStart
	}
	return flags
}

// WireAddr returns the 7 bit address shifted into the upper bits
func (m Message) WireAddr() uint16 {
	return m.Addr << 1
}

func (m Message) String() string {
	start, stop := "S", "P"
	if m.NoStart {
		start = "-"
	}
	if m.NoStop {
		stop = "-"
	}
	return fmt.Sprintf("%s%02x%s[%d]%s", start, m.Addr, m.Dir, len(m.Buf), stop)
}
