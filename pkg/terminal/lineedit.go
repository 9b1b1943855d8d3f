package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// lineEditor reads shell input and keeps its history.
type lineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// plainEditor reads whole lines without editing, completion or history.
type plainEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newPlainEditor(in io.Reader, out io.Writer) *plainEditor {
	return &plainEditor{in: bufio.NewReader(in), out: out}
}

func (e *plainEditor) Prompt(prompt string) (string, error) {
	fmt.Fprint(e.out, prompt)
	l, err := e.in.ReadString('\n')
	if err == io.EOF && l != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(l, "\r\n"), nil
}

func (e *plainEditor) AppendHistory(string)                {}
func (e *plainEditor) ReadHistory(io.Reader) (int, error)  { return 0, nil }
func (e *plainEditor) WriteHistory(io.Writer) (int, error) { return 0, nil }
func (e *plainEditor) Close() error                        { return nil }
