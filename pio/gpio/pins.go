package gpio

// PinList is a one-shot enumeration of the pins of a chip. The pin
// configuration is read from the controller as the list advances.
//
//	list, err := chip.Pins()
//	...
//	defer list.Close()
//	for list.Next() {
//		fmt.Println(list.Name(), list.Pin().Number())
//	}
//	err = list.Err()
type PinList struct {
	chip *Chip
	max  uint32
	next uint64

	name   string
	pin    *Pin
	err    error
	closed bool
}

// Total returns the number of pins the chip reported
func (l *PinList) Total() int {
	return int(l.max) + 1
}

// Next advances to the next pin. It returns false at the end of the list,
// after an error or after Close.
func (l *PinList) Next() bool {
	l.name = ""
	l.pin = nil

	if l.closed || l.err != nil || l.next > uint64(l.max) {
		return false
	}

	cfg, err := l.chip.ctrl.PinConfig(uint32(l.next))
	if err != nil {
		l.err = err
		return false
	}
	l.next++

	l.name = cfg.Name
	l.pin = l.chip.newPin(cfg)
	return true
}

// Name returns the name of the current pin
func (l *PinList) Name() string {
	return l.name
}

// Pin returns the current pin in unknown mode
func (l *PinList) Pin() *Pin {
	return l.pin
}

// Err returns the error that stopped the enumeration, if any
func (l *PinList) Err() error {
	return l.err
}

// Close ends the enumeration. Pins already returned stay valid.
func (l *PinList) Close() error {
	l.closed = true
	l.name = ""
	l.pin = nil
	return nil
}
