//go:build linux || freebsd

package i2c

import "unsafe"

// bufPointer returns the address of the first byte, or 0 for an empty buffer.
// The caller keeps buf alive until the ioctl returns.
func bufPointer(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}
