// Package closeflag releases a resource exactly once and lets any number of
// waiters see that it happened.
package closeflag

import (
	"errors"
	"sync"
)

// ErrorClosed is returned by every Close after the first
var ErrorClosed = errors.New("Already closed")

// CloseFlag is closed once. The zero value is open.
type CloseFlag struct {
	mutex  sync.Mutex
	closed bool
	ch     chan struct{}

	// CloseFunc runs on the first Close, outside the lock, so it may call
	// Close itself
	CloseFunc func() error
}

// Chan returns a channel that is closed together with the flag
func (c *CloseFlag) Chan() <-chan struct{} {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.ch == nil {
		c.ch = make(chan struct{})
		if c.closed {
			close(c.ch)
		}
	}
	return c.ch
}

// Closed reports whether Close was called
func (c *CloseFlag) Closed() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.closed
}

// Close marks the flag closed and runs CloseFunc. Later calls return
// ErrorClosed.
func (c *CloseFlag) Close() error {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return ErrorClosed
	}
	c.closed = true
	if c.ch != nil {
		close(c.ch)
	}
	c.mutex.Unlock()

	if c.CloseFunc != nil {
		return c.CloseFunc()
	}
	return nil
}
