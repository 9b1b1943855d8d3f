package logflags

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

var blkdev = false
var ptrace = false
var shell = false

var logOut io.WriteCloser

var textFormatterInstance = &textFormatter{}

func makeLogger(level logrus.Level, fields Fields) Logger {
	if lf := loggerFactory; lf != nil {
		return lf(level, fields, logOut)
	}
	logger := logrus.New().WithFields(logrus.Fields(fields))
	logger.Logger.Formatter = textFormatterInstance
	if logOut != nil {
		logger.Logger.Out = logOut
	} else {
		logger.Logger.Out = stderr()
	}
	logger.Logger.Level = level
	return &logrusLogger{logger}
}

func makeFlaggableLogger(flag bool, fields Fields) Logger {
	if !flag {
		return makeLogger(logrus.ErrorLevel, fields)
	}
	return makeLogger(logrus.DebugLevel, fields)
}

// Blkdev returns true if the blkdev package should log.
func Blkdev() bool {
	return blkdev
}

// BlkdevLogger returns a logger for the blkdev package.
func BlkdevLogger() Logger {
	return makeFlaggableLogger(blkdev, Fields{"layer": "blkdev"})
}

// Ptrace returns true if every trace request should be logged.
func Ptrace() bool {
	return ptrace
}

// PtraceLogger returns a logger for the ptrace package.
func PtraceLogger() Logger {
	return makeFlaggableLogger(ptrace, Fields{"layer": "ptrace"})
}

// Shell returns true if the interactive shell should log.
func Shell() bool {
	return shell
}

// ShellLogger returns a logger for the interactive shell.
func ShellLogger() Logger {
	return makeFlaggableLogger(shell, Fields{"layer": "shell"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets the logging flags based on the contents of logstr.
// If logDest is not empty logs are redirected to the file descriptor or
// file path specified by logDest.
func Setup(logFlag bool, logstr, logDest string) error {
	if logDest != "" {
		n, err := strconv.Atoi(logDest)
		if err == nil {
			logOut = os.NewFile(uintptr(n), "fonative-logs")
		} else {
			fh, err := os.Create(logDest)
			if err != nil {
				return fmt.Errorf("could not create log file: %v", err)
			}
			logOut = fh
		}
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(io.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "blkdev,ptrace"
	}
	for _, logcmd := range strings.Split(logstr, ",") {
		switch strings.TrimSpace(logcmd) {
		case "blkdev":
			blkdev = true
		case "ptrace":
			ptrace = true
		case "shell":
			shell = true
		default:
			fmt.Fprintf(os.Stderr, "Warning: unknown log layer %q\n", logcmd)
		}
	}
	return nil
}

// Close closes the logger output.
func Close() {
	if logOut != nil {
		logOut.Close()
	}
}

func stderr() io.Writer {
	if runtime.GOOS == "windows" {
		return colorable.NewColorableStderr()
	}
	return os.Stderr
}

// textFormatter is a simplified version of logrus.TextFormatter that
// doesn't make logs unreadable when they are output to a text file or to a
// terminal that doesn't support colors.
type textFormatter struct{}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format("2006-01-02T15:04:05Z07:00"))
	b.WriteByte(' ')
	level := entry.Level.String()
	if isTerminal() {
		level = colorLevel(entry.Level, level)
	}
	b.WriteString(level)
	b.WriteByte(' ')
	if layer, ok := entry.Data["layer"]; ok {
		fmt.Fprintf(&b, "layer=%v ", layer)
	}
	for k, v := range entry.Data {
		if k == "layer" {
			continue
		}
		fmt.Fprintf(&b, "%s=%v ", k, v)
	}
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func isTerminal() bool {
	if logOut != nil {
		if f, ok := logOut.(*os.File); ok {
			return isTerminalFd(f.Fd())
		}
		return false
	}
	return isTerminalFd(os.Stderr.Fd())
}

func colorLevel(lvl logrus.Level, s string) string {
	var code int
	switch lvl {
	case logrus.DebugLevel, logrus.TraceLevel:
		code = 37
	case logrus.WarnLevel:
		code = 33
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		code = 31
	default:
		code = 36
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", code, s)
}
