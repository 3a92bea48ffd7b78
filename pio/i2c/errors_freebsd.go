package i2c

import "golang.org/x/sys/unix"

// iicbus maps IIC_EBUSERR to EALREADY and IIC_EOVERFLOW to EOVERFLOW. A
// missing acknowledge and most other faults end up as EIO.
var errnoKinds = map[unix.Errno]ErrorKind{
	unix.EALREADY:  KindBus,
	unix.EOVERFLOW: KindOverrun,
}
