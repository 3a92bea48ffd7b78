//go:build unix

package handle

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const openFlags = unix.O_NOCTTY

// Ioctl issues one ioctl on the handle. A failing call returns an
// *os.SyscallError wrapping the unix.Errno.
func (h *Handle) Ioctl(request uintptr, arg unsafe.Pointer) error {
	return h.Do(func(fd uintptr) error {
		_, _, errNo := unix.Syscall(unix.SYS_IOCTL, fd, request, uintptr(arg))
		if errNo != 0 {
			return os.NewSyscallError("ioctl", errNo)
		}
		return nil
	})
}
