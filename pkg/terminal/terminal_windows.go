package terminal

import (
	"io"

	"github.com/mattn/go-colorable"
)

// getColorableWriter returns a writer that translates ANSI escape
// sequences for the windows console.
func getColorableWriter() io.Writer {
	return colorable.NewColorableStdout()
}
