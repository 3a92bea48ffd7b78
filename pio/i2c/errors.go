package i2c

import (
	"errors"
	"fmt"
)

// Error is a constant error value
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrorAddress     = Error("Address does not fit in 7 bits")
	ErrorLength      = Error("Transfer does not fit in one message")
	ErrorSpeed       = Error("Bus speed is fixed by the kernel configuration")
	ErrorUnsupported = Error("I2C controllers are not supported on this platform")
	ErrorPEC         = Error("Packet error code mismatch")
)

// ErrorKind is a coarse classification of a failed transaction
type ErrorKind int

const (
	// KindOther covers everything that cannot be told apart, which includes
	// a missing acknowledge on most controllers
	KindOther ErrorKind = iota
	// KindBus is a bus error or lost arbitration
	KindBus
	// KindOverrun means data was lost
	KindOverrun
)

func (k ErrorKind) String() string {
	switch k {
	case KindBus:
		return "bus"
	case KindOverrun:
		return "overrun"
	}
	return "other"
}

// BusError is returned when the transport fails a transaction. The kind is a
// best effort guess: the kernels report most controller faults with the same
// errno.
type BusError struct {
	Kind ErrorKind
	Err  error

	// Txn identifies the transaction; debug log lines carry it in the txn field
	Txn string
}

func (e *BusError) Error() string {
	return fmt.Sprintf("I2C transfer %s failed (%s): %v", e.Txn, e.Kind, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

func newBusError(err error, txn string) *BusError {
	return &BusError{Kind: classify(err), Err: err, Txn: txn}
}

// KindOf returns the kind of a BusError anywhere in the chain of err
func KindOf(err error) ErrorKind {
	var busErr *BusError
	if errors.As(err, &busErr) {
		return busErr.Kind
	}
	return KindOther
}
