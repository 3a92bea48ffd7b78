// Command gpiopins lists the pins of a GPIO controller and reads or drives
// a single pin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BertoldVdb/go-pio/logrusconfig"
	"github.com/BertoldVdb/go-pio/pio/gpio"
	"github.com/sirupsen/logrus"
)

func listPins(w io.Writer, chip *gpio.Chip) error {
	return chip.EachPin(func(name string, pin *gpio.Pin) bool {
		fmt.Fprintf(w, "%3d %-16s %s\n", pin.Number(), name, pin.Caps())
		return true
	})
}

func parseLevel(s string) (gpio.Level, error) {
	switch s {
	case "high", "1":
		return gpio.High, nil
	case "low", "0":
		return gpio.Low, nil
	}
	return gpio.Low, fmt.Errorf("Invalid level %q", s)
}

func drivePin(chip *gpio.Chip, number uint32, level gpio.Level, openDrain bool) (*gpio.OutputPin, error) {
	pin, err := chip.Pin(number)
	if err != nil {
		return nil, err
	}
	if openDrain {
		return pin.IntoOpenDrainOutput(level)
	}
	return pin.IntoOutput(level)
}

func readPin(chip *gpio.Chip, number uint32) (gpio.Level, error) {
	pin, err := chip.Pin(number)
	if err != nil {
		return gpio.Low, err
	}
	in, err := pin.IntoInput()
	if err != nil {
		return gpio.Low, err
	}
	return in.Read()
}

func main() {
	unit := flag.Int("unit", 0, "GPIO controller unit number")
	pinNum := flag.Int("pin", -1, "Pin to operate on. Without it all pins are listed")
	get := flag.Bool("get", false, "Configure the pin as input and print its level")
	set := flag.String("set", "", "Drive the pin: high or low")
	openDrain := flag.Bool("opendrain", false, "Use open drain instead of push-pull with -set")
	toggle := flag.Bool("toggle", false, "Toggle the pin after driving it")
	logrusconfig.InitParam()
	flag.Parse()

	log := logrusconfig.GetLogger(logrus.InfoLevel)

	chip, err := gpio.OpenUnit(*unit)
	if err != nil {
		log.WithError(err).Fatal("Failed to open controller")
	}
	defer chip.Close()
	chip.Logger = logrusconfig.ForDevice(log, chip)

	if *pinNum < 0 {
		if err := listPins(os.Stdout, chip); err != nil {
			log.WithError(err).Error("Failed to list pins")
		}
		return
	}

	if *get {
		level, err := readPin(chip, uint32(*pinNum))
		if err != nil {
			log.WithError(err).Error("Failed to read pin")
			return
		}
		fmt.Println(level)
		return
	}

	if *set == "" {
		pin, err := chip.Pin(uint32(*pinNum))
		if err != nil {
			log.WithError(err).Error("Failed to get pin")
			return
		}
		fmt.Printf("%3d %-16s %s\n", pin.Number(), pin.Name(), pin.Caps())
		return
	}

	level, err := parseLevel(*set)
	if err != nil {
		log.WithError(err).Error("Bad -set value")
		return
	}

	out, err := drivePin(chip, uint32(*pinNum), level, *openDrain)
	if err != nil {
		log.WithError(err).Error("Failed to configure pin")
		return
	}
	if *toggle {
		if err := out.Toggle(); err != nil {
			log.WithError(err).Error("Failed to toggle pin")
			return
		}
	}

	driven, err := out.Driven()
	if err != nil {
		log.WithError(err).Error("Failed to read back pin")
		return
	}
	log.WithField("mode", out.DriveMode()).Infof("Pin %s is driven %s", out, driven)
}
