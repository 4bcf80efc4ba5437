// Package report writes sync results as YAML or JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/sync"
)

// Encode renders r in format.
func Encode(r *sync.Result, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, errors.WrapParse("json", "result", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(r, yaml.Indent(2), yaml.IndentSequence(true))
		if err != nil {
			return nil, errors.WrapParse("yaml", "result", err)
		}
		return data, nil
	}
	return nil, errors.NewValidationError("format", format, "unsupported report format")
}

// FileName returns the default report file name of r.
func FileName(r *sync.Result, format Format) string {
	return fmt.Sprintf("%s-%s%s", r.Metadata.Source, r.Metadata.StartTime.Format(constants.TimeFormatFilename), format.Extension())
}

// Write writes r to the writer, path or directory of the options, in that
// order of preference. It returns the path written, if any.
func Write(r *sync.Result, opts ...Option) (string, error) {
	o := Defaults().Apply(opts...)
	data, err := Encode(r, o.Format())
	if err != nil {
		return "", err
	}

	if w := o.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return "", errors.WrapIO("write", "report", err)
		}
		return "", nil
	}

	path := o.Path()
	if path == "" {
		dir := o.Dir()
		if dir == "" {
			dir = constants.DefaultReportDir
		}
		path = filepath.Join(dir, FileName(r, o.Format()))
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

// Read loads a report written by Write. Both formats are read by the YAML
// decoder.
func Read(path string) (*sync.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var r sync.Result
	if err := yaml.Unmarshal(data, &r); err != nil {
		format, _ := ParseFormat(path)
		return nil, errors.WrapParse(format.String(), path, err)
	}
	return &r, nil
}
