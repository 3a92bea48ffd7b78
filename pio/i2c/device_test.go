package i2c

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeviceRegisters(t *testing.T) {
	tr := &fakeTransport{reply: []byte{0x34, 0x12}}
	dev := &Device{Bus: NewBus(tr, "fake"), Addr: 0x10}

	v, err := dev.ReadByteData(0x05)
	if err != nil || v != 0x34 {
		t.Errorf("ReadByteData returned %#x, %v", v, err)
	}
	w, err := dev.ReadWordData(0x06)
	if err != nil || w != 0x1234 {
		t.Errorf("ReadWordData returned %#x, %v", w, err)
	}
	if err := dev.WriteWordData(0x07, 0xBEEF); err != nil {
		t.Fatal(err)
	}

	want := [][]Message{
		{
			{Addr: 0x10, Dir: DirWrite, Buf: []byte{0x05}, NoStop: true},
			{Addr: 0x10, Dir: DirRead, Buf: []byte{0x34}},
		},
		{
			{Addr: 0x10, Dir: DirWrite, Buf: []byte{0x06}, NoStop: true},
			{Addr: 0x10, Dir: DirRead, Buf: []byte{0x34, 0x12}},
		},
		{
			{Addr: 0x10, Dir: DirWrite, Buf: []byte{0x07, 0xEF, 0xBE}},
		},
	}
	if diff := cmp.Diff(want, tr.transfers); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceBlockWrite(t *testing.T) {
	tr := &fakeTransport{}
	dev := &Device{Bus: NewBus(tr, "fake"), Addr: 0x50}

	data := []byte{1, 2, 3, 4}
	if err := dev.WriteBlockData(0x00, data); err != nil {
		t.Fatal(err)
	}

	want := []Message{{Addr: 0x50, Dir: DirWrite, Buf: []byte{0x00, 1, 2, 3, 4}}}
	if diff := cmp.Diff(want, tr.transfers[0]); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceWriteSingleMessage(t *testing.T) {
	// Every register write must be one message without NoStart, whatever
	// the adapter supports
	tr := &fakeTransport{}
	dev := &Device{Bus: NewBus(tr, "fake"), Addr: 0x20}
	reg := Register{Device: dev, Register: 0x12}

	writes := []func() error{
		func() error { return dev.WriteByteData(0x12, 0x80) },
		func() error { return dev.WriteWordData(0x12, 0x0180) },
		func() error { return dev.WriteBlockData(0x12, []byte{1, 2, 3}) },
		func() error { return reg.Write(0x80) },
	}
	for i, write := range writes {
		if err := write(); err != nil {
			t.Fatal(err)
		}
		txn := tr.transfers[i]
		if len(txn) != 1 || txn[0].NoStart || txn[0].NoStop || txn[0].Buf[0] != 0x12 {
			t.Errorf("Write %d compiled to %v", i, txn)
		}
	}
}

func TestDevicePEC(t *testing.T) {
	tr := &fakeTransport{reply: []byte{0xAB, 0xED}}
	dev := &Device{Bus: NewBus(tr, "fake"), Addr: 0x10, PEC: true}

	if err := dev.WriteByteData(0x01, 0x02); err != nil {
		t.Fatal(err)
	}
	want := []Message{{Addr: 0x10, Dir: DirWrite, Buf: []byte{0x01, 0x02, 0x58}}}
	if diff := cmp.Diff(want, tr.transfers[0]); diff != "" {
		t.Errorf("Unexpected packet error code (-want +got):\n%s", diff)
	}

	v, err := dev.ReadByteData(0x05)
	if err != nil || v != 0xAB {
		t.Errorf("ReadByteData returned %#x, %v", v, err)
	}
	if n := len(tr.transfers[1][1].Buf); n != 2 {
		t.Errorf("Read %d bytes, expected data and code", n)
	}

	tr.reply = []byte{0xAB, 0xEE}
	if _, err := dev.ReadByteData(0x05); err != ErrorPEC {
		t.Errorf("Corrupted code returned %v", err)
	}

	var reg = Register{Device: dev, Register: 0x05}
	tr.reply = []byte{0xAB, 0xED}
	if v, err := reg.Read(); err != nil || v != 0xAB {
		t.Errorf("Register read returned %#x, %v", v, err)
	}
}
