package gpio

import "strings"

func bytesToString(input []byte) string {
	if i := strings.IndexByte(string(input), 0); i >= 0 {
		input = input[:i]
	}
	return string(input)
}

func stringToBytes(input string, output []byte) {
	n := copy(output, input)

	if n >= len(output) {
		n = len(output) - 1
	}

	// Null terminate string
	output[n] = 0
}
