package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/kusumi/fileobj/pkg/config"
	"github.com/kusumi/fileobj/pkg/logflags"
	"github.com/kusumi/fileobj/pkg/native"
)

// Term represents the shell attached to one process.
type Term struct {
	tracer native.Tracer
	pid    int
	conf   *config.Config
	prompt string
	line   lineEditor
	cmds   *Commands
	stdout io.Writer

	// running is set by cont, the process can no longer be detached from.
	running bool
	// released is set once the process was detached from or killed.
	released bool
}

// New returns a new Term for a process the caller already attached to
// through tracer.
func New(tracer native.Tracer, pid int, conf *config.Config) *Term {
	var w io.Writer
	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		w = os.Stdout
	} else {
		w = getColorableWriter()
	}
	t := newTerm(tracer, pid, conf, w)
	t.line = newLineEditor(func(line string) []string {
		if strings.ContainsAny(line, " \t") {
			return nil
		}
		return t.cmds.Complete(line)
	})
	return t
}

func newTerm(tracer native.Tracer, pid int, conf *config.Config, w io.Writer) *Term {
	if conf == nil {
		conf = &config.Config{}
	}
	cmds := ShellCommands()
	if conf.Aliases != nil {
		cmds.Merge(conf.Aliases)
	}
	return &Term{
		tracer: tracer,
		pid:    pid,
		conf:   conf,
		prompt: fmt.Sprintf("(%d) ", pid),
		cmds:   cmds,
		stdout: w,
	}
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	if t.line != nil {
		t.line.Close()
	}
}

// Run runs the shell until the user exits it. The process is detached
// from on the way out unless it was already released or left running.
//
// Run locks the calling goroutine to its OS thread: on Linux every trace
// request must come from the thread that attached, so the caller must
// attach from the same goroutine after calling runtime.LockOSThread.
func (t *Term) Run() (int, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer t.Close()

	fullHistoryFile, err := config.HistoryFilePath()
	if err != nil {
		fmt.Printf("Unable to load history file: %v.", err)
	}

	f, err := os.Open(fullHistoryFile)
	if err != nil {
		f, err = os.Create(fullHistoryFile)
		if err != nil {
			fmt.Printf("Unable to open history file: %v. History will not be saved for this session.", err)
		}
	}
	if f != nil {
		t.line.ReadHistory(f)
		f.Close()
	}
	fmt.Fprintln(t.stdout, "Type 'help' for list of commands.")

	for {
		cmdstr, err := t.promptForInput()
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(t.stdout, "exit")
				return t.handleExit()
			}
			return 1, fmt.Errorf("Prompt for input failed.\n")
		}

		if err := t.call(cmdstr); err != nil {
			var ere ExitRequestError
			if errors.As(err, &ere) {
				return t.handleExit()
			}
			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

func (t *Term) call(cmdstr string) error {
	err := t.cmds.Call(cmdstr, t)
	if logflags.Shell() {
		logger := logflags.ShellLogger().WithField("pid", t.pid)
		if err != nil {
			logger = logger.WithError(err)
		}
		logger.Debugf("command %q", cmdstr)
	}
	return err
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}

	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}

	return l, nil
}

func (t *Term) saveHistory() {
	fullHistoryFile, err := config.HistoryFilePath()
	if err != nil {
		fmt.Println("Error saving history file:", err)
		return
	}
	if f, err := os.OpenFile(fullHistoryFile, os.O_RDWR|os.O_TRUNC, 0666); err == nil {
		_, err = t.line.WriteHistory(f)
		if err != nil {
			fmt.Println("readline history error:", err)
		}
		f.Close()
	}
}

func (t *Term) handleExit() (int, error) {
	if t.line != nil {
		t.saveHistory()
	}
	return t.release()
}

// release detaches from a process that is still stopped.
func (t *Term) release() (int, error) {
	switch {
	case t.released:
		return 0, nil
	case t.running:
		fmt.Fprintf(t.stdout, "process %d is running, it is released when fonative exits\n", t.pid)
		return 0, nil
	}
	if err := t.tracer.Detach(t.pid); err != nil {
		return 1, err
	}
	t.released = true
	fmt.Fprintf(t.stdout, "detached from process %d\n", t.pid)
	return 0, nil
}
