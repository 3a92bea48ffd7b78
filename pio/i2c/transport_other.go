//go:build !linux && !freebsd

package i2c

import "fmt"

func unitPath(unit int) string {
	return fmt.Sprintf("iic%d", unit)
}

func openTransport(path string) (Transport, error) {
	return nil, ErrorUnsupported
}
