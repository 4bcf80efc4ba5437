// Package alerts writes short status lines about a command run to stderr.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the marker printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelSuccess:
		return "✓"
	default:
		return "i"
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	default:
		return "\033[36m"
	}
}

const reset = "\033[0m"

// Alert is a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds indented detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert without color.
func (a *Alert) String() string {
	message := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer prints alerts, colored when writing to a terminal.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter returns a writer to w. Color is disabled for non terminals and
// when noColor is set.
func NewWriter(w io.Writer, noColor bool) *Writer {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Write prints a.
func (w *Writer) Write(a *Alert) error {
	line := a.String()
	if w.color {
		line = a.Level.color() + line + reset
	}
	if _, err := fmt.Fprintln(w.w, line); err != nil {
		return err
	}
	for _, d := range a.Details {
		if _, err := fmt.Fprintf(w.w, "   %s\n", d); err != nil {
			return err
		}
	}
	return nil
}
