package i2c

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/BertoldVdb/go-pio/pio/handle"
)

const i2cRdWrIoctl uintptr = 0x00000707

const (
	i2cFlagRead    uint16 = 0x0001
	i2cFlagNoStart uint16 = 0x4000
	i2cFlagStop    uint16 = 0x8000
)

type i2cMsgRaw struct {
	Address uint16
	Flags   uint16
	Len     uint16
	Buf     uintptr
}

type i2cRdWrRaw struct {
	Messages    uintptr
	NumMessages uint32
}

// i2cdevTransport runs transactions on the Linux i2c-dev interface. Messages
// of one I2C_RDWR call are joined by repeated starts and the kernel adds the
// final stop, so the flags are translated: a message that must end with a
// stop before the next one gets I2C_M_STOP.
type i2cdevTransport struct {
	handle *handle.Handle
}

func unitPath(unit int) string {
	return fmt.Sprintf("/dev/i2c-%d", unit)
}

func openTransport(path string) (Transport, error) {
	h, err := handle.Open(path)
	if err != nil {
		return nil, err
	}
	return &i2cdevTransport{handle: h}, nil
}

func i2cdevRecords(msgs []Message) []i2cMsgRaw {
	raw := make([]i2cMsgRaw, len(msgs))
	for i, m := range msgs {
		var flags uint16
		if m.Dir == DirRead {
			flags |= i2cFlagRead
		}
		if m.NoStart {
			flags |= i2cFlagNoStart
		}
		if !m.NoStop && i < len(msgs)-1 {
			flags |= i2cFlagStop
		}

		raw[i] = i2cMsgRaw{
			Address: m.Addr,
			Flags:   flags,
			Len:     uint16(len(m.Buf)),
			Buf:     bufPointer(m.Buf),
		}
	}
	return raw
}

func (t *i2cdevTransport) Transfer(msgs []Message) error {
	raw := i2cdevRecords(msgs)
	param := i2cRdWrRaw{
		Messages:    uintptr(unsafe.Pointer(&raw[0])),
		NumMessages: uint32(len(raw)),
	}

	err := t.handle.Ioctl(i2cRdWrIoctl, unsafe.Pointer(&param))

	runtime.KeepAlive(raw)
	runtime.KeepAlive(msgs)

	return err
}

func (t *i2cdevTransport) Close() error {
	return t.handle.Close()
}
