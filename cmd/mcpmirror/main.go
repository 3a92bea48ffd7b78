// Command mcpmirror copies input B0 of an MCP23017 port expander to output A7.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/BertoldVdb/go-pio/closeflag"
	"github.com/BertoldVdb/go-pio/logrusconfig"
	"github.com/BertoldVdb/go-pio/pio/i2c"
	"github.com/sirupsen/logrus"
	pi2c "periph.io/x/conn/v3/i2c"
)

// MCP23017 registers, IOCON.BANK=0
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPPUB  = 0x0d
	regGPIOA  = 0x12
	regGPIOB  = 0x13
)

type mirror struct {
	dev  *pi2c.Dev
	last int
	log  *logrus.Entry
}

func (m *mirror) writeReg(reg, value byte) error {
	return m.dev.Tx([]byte{reg, value}, nil)
}

// readReg sets the register pointer and reads back with a repeated start
func (m *mirror) readReg(reg byte) (byte, error) {
	var buf [1]byte
	err := m.dev.Tx([]byte{reg}, buf[:])
	return buf[0], err
}

func (m *mirror) setup() error {
	if err := m.writeReg(regIODIRA, 0x00); err != nil {
		return err
	}
	if err := m.writeReg(regIODIRB, 0xff); err != nil {
		return err
	}
	return m.writeReg(regGPPUB, 0xff)
}

func (m *mirror) step() error {
	in, err := m.readReg(regGPIOB)
	if err != nil {
		return err
	}

	out := (in & 1) << 7
	if int(out) != m.last {
		m.log.WithField("gpiob", in).Infof("A7 -> %d", out>>7)
		m.last = int(out)
	}
	return m.writeReg(regGPIOA, out)
}

// run polls every interval until done is closed
func (m *mirror) run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := m.step(); err != nil {
				// A bus error is usually a missing or busy device; keep polling
				m.log.WithError(err).WithField("kind", i2c.KindOf(err)).Warn("Transfer failed")
			}
		}
	}
}

// deviceAddr checks a 7 bit address before it is narrowed
func deviceAddr(v uint) (uint16, error) {
	if v > 0x7f {
		return 0, fmt.Errorf("Address %#x does not fit in 7 bits", v)
	}
	return uint16(v), nil
}

func main() {
	unit := flag.Int("unit", 0, "I2C controller unit number")
	addr := flag.Uint("addr", 0x20, "Device address")
	interval := flag.Duration("interval", 100*time.Millisecond, "Poll interval")
	logrusconfig.InitParam()
	flag.Parse()

	log := logrusconfig.GetLogger(logrus.InfoLevel)

	devAddr, err := deviceAddr(*addr)
	if err != nil {
		log.WithError(err).Fatal("Bad -addr value")
	}

	bus, err := i2c.OpenUnit(*unit)
	if err != nil {
		log.WithError(err).Fatal("Failed to open bus")
	}
	defer bus.Close()
	bus.Logger = logrusconfig.ForDevice(log, bus)

	m := &mirror{
		dev:  &pi2c.Dev{Bus: bus, Addr: devAddr},
		last: -1,
		log:  logrusconfig.Prefixed(log, "mcp23017"),
	}
	if err := m.setup(); err != nil {
		log.WithError(err).WithField("kind", i2c.KindOf(err)).Error("Failed to configure device")
		return
	}

	var stop closeflag.CloseFlag
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		log.Info("Stopping")
		stop.Close()
	}()

	m.run(stop.Chan(), *interval)
}
