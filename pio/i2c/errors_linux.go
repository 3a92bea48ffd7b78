package i2c

import "golang.org/x/sys/unix"

// Lost arbitration is EAGAIN. Adapters report a missing acknowledge as
// ENXIO, EREMOTEIO or EIO depending on the driver, so it stays unclassified.
var errnoKinds = map[unix.Errno]ErrorKind{
	unix.EAGAIN:    KindBus,
	unix.EOVERFLOW: KindOverrun,
}
