package i2c

import (
	"encoding/binary"

	"github.com/sigurn/crc8"
)

var pecTable = crc8.MakeTable(crc8.Params{
	Poly: 0x07,
	Init: 0x00,
	Name: "CRC-8/SMBus-PEC",
})

// Executor runs transactions; *Bus implements it
type Executor interface {
	Execute(addr uint16, ops ...Operation) error
}

// Device is a register based device at a fixed address. With PEC set, every
// transfer carries an SMBus packet error code.
type Device struct {
	Bus  Executor
	Addr uint16
	PEC  bool
}

func (d *Device) pec(read bool, reg byte, data ...[]byte) byte {
	crc := crc8.Init(pecTable)
	crc = crc8.Update(crc, []byte{byte(d.Addr << 1), reg}, pecTable)
	if read {
		crc = crc8.Update(crc, []byte{byte(d.Addr<<1) | 1}, pecTable)
	}
	for _, part := range data {
		crc = crc8.Update(crc, part, pecTable)
	}
	return crc8.Complete(crc, pecTable)
}

func (d *Device) readReg(reg byte, n int) ([]byte, error) {
	if d.PEC {
		n++
	}
	buf := make([]byte, n)
	if err := d.Bus.Execute(d.Addr, WriteOp([]byte{reg}), ReadOp(buf)); err != nil {
		return nil, err
	}

	if d.PEC {
		data, code := buf[:n-1], buf[n-1]
		if d.pec(true, reg, data) != code {
			return nil, ErrorPEC
		}
		return data, nil
	}
	return buf, nil
}

func (d *Device) writeReg(reg byte, data []byte) error {
	// Register, payload and code go out as a single message. Splitting them
	// needs I2C_M_NOSTART, which many Linux adapters do not implement.
	buf := make([]byte, 0, len(data)+2)
	buf = append(buf, reg)
	buf = append(buf, data...)
	if d.PEC {
		buf = append(buf, d.pec(false, reg, data))
	}
	return d.Bus.Execute(d.Addr, WriteOp(buf))
}

// ReadByteData reads one register
func (d *Device) ReadByteData(reg byte) (byte, error) {
	data, err := d.readReg(reg, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// WriteByteData writes one register
func (d *Device) WriteByteData(reg, value byte) error {
	return d.writeReg(reg, []byte{value})
}

// ReadWordData reads a 16 bit register, low byte first
func (d *Device) ReadWordData(reg byte) (uint16, error) {
	data, err := d.readReg(reg, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// WriteWordData writes a 16 bit register, low byte first
func (d *Device) WriteWordData(reg byte, value uint16) error {
	var data [2]byte
	binary.LittleEndian.PutUint16(data[:], value)
	return d.writeReg(reg, data[:])
}

// ReadBlockData reads n bytes starting at reg. This is an I2C block read:
// the device sends no SMBus length byte and n is trusted as is. With PEC the
// code follows the n data bytes.
func (d *Device) ReadBlockData(reg byte, n int) ([]byte, error) {
	return d.readReg(reg, n)
}

// WriteBlockData writes data starting at reg without a length byte, the I2C
// block write most register devices expect.
func (d *Device) WriteBlockData(reg byte, data []byte) error {
	return d.writeReg(reg, data)
}

// Register is a single register of a device
type Register struct {
	Device   *Device
	Register byte
}

// Read reads the register
func (r *Register) Read() (byte, error) {
	return r.Device.ReadByteData(r.Register)
}

// Write writes the register
func (r *Register) Write(value byte) error {
	return r.Device.WriteByteData(r.Register, value)
}
