//go:build !linux && !freebsd

package gpio

import "fmt"

func unitPath(unit int) string {
	return fmt.Sprintf("gpio%d", unit)
}

func openController(path string) (Controller, error) {
	return nil, ErrorUnsupported
}
