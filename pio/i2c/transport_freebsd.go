package i2c

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/BertoldVdb/go-pio/pio/handle"
)

// I2CRDWR from dev/iicbus/iic.h
const iicRdWrIoctl uintptr = 0x80106906

type iicMsgRaw struct {
	Slave uint16
	Flags uint16
	Len   uint16
	_     uint16
	Buf   uintptr
}

type iicRdWrRaw struct {
	Msgs  uintptr
	NMsgs uint32
}

type iicTransport struct {
	handle *handle.Handle
}

func unitPath(unit int) string {
	return fmt.Sprintf("/dev/iic%d", unit)
}

func openTransport(path string) (Transport, error) {
	h, err := handle.Open(path)
	if err != nil {
		return nil, err
	}
	return &iicTransport{handle: h}, nil
}

func iicRecords(msgs []Message) []iicMsgRaw {
	raw := make([]iicMsgRaw, len(msgs))
	for i, m := range msgs {
		raw[i] = iicMsgRaw{
			Slave: m.WireAddr(),
			Flags: m.Flags(),
			Len:   uint16(len(m.Buf)),
			Buf:   bufPointer(m.Buf),
		}
	}
	return raw
}

func (t *iicTransport) Transfer(msgs []Message) error {
	raw := iicRecords(msgs)
	param := iicRdWrRaw{
		Msgs:  uintptr(unsafe.Pointer(&raw[0])),
		NMsgs: uint32(len(raw)),
	}

	err := t.handle.Ioctl(iicRdWrIoctl, unsafe.Pointer(&param))

	runtime.KeepAlive(raw)
	runtime.KeepAlive(msgs)

	return err
}

func (t *iicTransport) Close() error {
	return t.handle.Close()
}
