package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// MaskToken replaces the value portion of sensitive key/value pairs.
const MaskToken = "***MASKED***"

var sensitivePattern = regexp.MustCompile(
	`(?i)\b(\w*(?:password|passwd|pwd|secret|token|key)\w*)(\s*[:=]\s*)("[^"]*"|'[^']*'|\S+)`,
)

// Mask replaces values of key=value or key: value pairs whose key names a
// password, secret, token or key.
func Mask(s string) string {
	return sensitivePattern.ReplaceAllString(s, "${1}${2}"+MaskToken)
}

type Logger struct {
	Verbose bool
	Debug   bool

	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
}

func (l Logger) stdout() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) stderr() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return os.Stderr
}

// write is the single place log lines leave the process.
func (l Logger) write(w io.Writer, prefix, msg string, args ...any) {
	line := Mask(fmt.Sprintf(msg, args...))
	fmt.Fprint(w, prefix+strings.TrimRight(line, "\n")+"\n")
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(l.stdout(), color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(l.stdout(), color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.write(l.stderr(), color.YellowString("[warn] "), msg, args...)
}

// Errorf is gated by verbosity because commands print their own failure
// message for every error they return.
func (l Logger) Errorf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(l.stderr(), color.RedString("[error] "), msg, args...)
	}
}

// ErrorfAndReturn logs the error and returns it, masked, for cobra to print.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return errors.New(Mask(fmt.Sprintf(msg, args...)))
}
