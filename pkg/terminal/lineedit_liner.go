//go:build !solaris

package terminal

import "github.com/go-delve/liner"

func newLineEditor(complete func(string) []string) lineEditor {
	line := liner.NewLiner()
	line.SetCompleter(complete)
	return line
}
