//go:build !unix

package handle

import (
	"errors"
	"unsafe"
)

const openFlags = 0

// Ioctl is not available on this platform
func (h *Handle) Ioctl(request uintptr, arg unsafe.Pointer) error {
	return h.Do(func(fd uintptr) error {
		return errors.New("ioctl is not supported on this platform")
	})
}
