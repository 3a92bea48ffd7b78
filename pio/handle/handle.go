// Package handle owns the device nodes used by the gpio and i2c packages.
package handle

import (
	"os"
	"sync"

	"github.com/BertoldVdb/go-pio/closeflag"
)

var (
	// ErrorClosed is returned when a handle is used or closed after it was closed
	ErrorClosed = closeflag.ErrorClosed
)

// Handle owns one open device node. It is released exactly once, by Close.
// A Handle must not be copied; share it by pointer.
type Handle struct {
	mutex sync.RWMutex
	file  *os.File
	path  string
	flag  closeflag.CloseFlag
}

func newHandle(file *os.File, path string) *Handle {
	h := &Handle{file: file, path: path}
	h.flag.CloseFunc = file.Close
	return h
}

// Open opens the device node at path for reading and writing
func Open(path string) (*Handle, error) {
	file, err := os.OpenFile(path, os.O_RDWR|openFlags, 0600)
	if err != nil {
		return nil, err
	}

	return newHandle(file, path), nil
}

// FromFile takes ownership of an already opened file
func FromFile(file *os.File) *Handle {
	return newHandle(file, file.Name())
}

// Path returns the name the handle was opened with
func (h *Handle) Path() string {
	return h.path
}

// Do calls fn with the native descriptor. Close waits until fn has returned.
func (h *Handle) Do(fn func(fd uintptr) error) error {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.flag.Closed() {
		return ErrorClosed
	}

	return fn(h.file.Fd())
}

// Close releases the descriptor. Only the first call does anything.
func (h *Handle) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.flag.Close()
}
