package report

import (
	"io"
	"path/filepath"
	"strings"
)

// Format is the encoding of a written report.
type Format int

// Format constants.
const (
	FormatYAML Format = iota
	FormatJSON
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// ParseFormat returns the format named s, or the format of the extension
// of a path.
func ParseFormat(s string) (Format, bool) {
	if ext := filepath.Ext(s); ext != "" {
		s = ext[1:]
	}
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return FormatYAML, false
}

// Options is the configuration of a report write.
type Options struct {
	dir    string
	path   string
	writer io.Writer
	format Format
}

// Dir returns the directory reports are written to when no path is set.
func (s *Options) Dir() string {
	return s.dir
}

// Path returns the path for the report.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the report.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the format of the report.
func (s *Options) Format() Format {
	return s.format
}

// Defaults returns the default report options.
func Defaults() *Options {
	return &Options{
		dir:    "",
		path:   "",
		writer: nil,
		format: FormatYAML,
	}
}

// Apply applies the given options to the report options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures report options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithDir writes the report to a timestamped file in dir.
func WithDir(dir string) Option {
	return func(s *Options) {
		s.dir = dir
	}
}

// WithPath for an explicit report file.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}
