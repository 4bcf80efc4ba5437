// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/registrysync/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
)

// Align is the alignment of a table column.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &jsonFormatter{Indent: "  "}
	case FormatYAML:
		return &yamlFormatter{}
	default:
		return &tableFormatter{Wide: format == FormatWide}
	}
}

// jsonFormatter outputs JSON.
type jsonFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *jsonFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// yamlFormatter outputs YAML.
type yamlFormatter struct{}

// Format outputs data in YAML format.
func (f *yamlFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// tableFormatter renders Data as a table. Anything else falls back to JSON.
type tableFormatter struct {
	Wide bool
}

// Format outputs data in table format.
func (f *tableFormatter) Format(w io.Writer, data any) error {
	d, ok := data.(Data)
	if !ok {
		return (&jsonFormatter{Indent: "  "}).Format(w, data)
	}

	config := tablewriter.Config{}
	if len(d.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(d.ColumnAlignment))
		for i, a := range d.ColumnAlignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignCenter:
				align[i] = tw.AlignCenter
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(d.Headers) > 0 {
		headers := make([]any, len(d.Headers))
		for i, h := range d.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range d.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
	}
}
