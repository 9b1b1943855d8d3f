package terminal

import "os"

// liner has no illumos port, input is read a line at a time.
func newLineEditor(func(string) []string) lineEditor {
	return newPlainEditor(os.Stdin, os.Stdout)
}
