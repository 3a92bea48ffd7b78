//go:build linux || freebsd

package i2c

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classify(err error) ErrorKind {
	var errNo unix.Errno
	if errors.As(err, &errNo) {
		if kind, ok := errnoKinds[errNo]; ok {
			return kind
		}
	}
	return KindOther
}
