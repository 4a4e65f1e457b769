// Package output renders command results as text, JSON, or YAML and writes
// them to stdout or a file.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Writer handles formatted output.
type Writer struct {
	format Format
	out    io.Writer
	errOut io.Writer
}

// Option configures the Writer.
type Option func(*Writer)

// WithOutput sets the standard output writer.
func WithOutput(w io.Writer) Option {
	return func(wr *Writer) {
		wr.out = w
	}
}

// WithErrorOutput sets the error output writer.
func WithErrorOutput(w io.Writer) Option {
	return func(wr *Writer) {
		wr.errOut = w
	}
}

// New creates a new output writer.
func New(format Format, opts ...Option) *Writer {
	w := &Writer{
		format: format,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs data in the configured format.
func (w *Writer) Write(data any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		normalized, err := normalizeForYAML(data)
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(normalized)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			b = append(b, '\n')
		}
		_, err = w.out.Write(b)
		return err
	case FormatText:
		_, err := fmt.Fprintf(w.out, "%v\n", data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

// Success prints a success line to stderr, keeping stdout clean for piping.
func (w *Writer) Success(msg string) {
	if w.format == FormatJSON || w.format == FormatYAML {
		_ = w.Write(map[string]any{"status": "success", "message": msg})
		return
	}
	fmt.Fprintf(w.errOut, "%s %s\n", SuccessMark(), msg)
}

// Warn prints a warning line to stderr, keeping stdout clean for piping.
func (w *Writer) Warn(msg string) {
	fmt.Fprintln(w.errOut, WarnLabel(msg))
}

// Error prints an error to stderr in the configured format.
func (w *Writer) Error(err error) {
	if w.format == FormatJSON || w.format == FormatYAML {
		_ = w.Write(map[string]any{"status": "error", "message": err.Error()})
		return
	}
	fmt.Fprintf(w.errOut, "%s %s\n", ErrorMark(), err.Error())
}

// MarshalFor renders data as a standalone string in the given format, used
// when writing results to files.
func MarshalFor(format Format, data any) (string, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case FormatYAML:
		normalized, err := normalizeForYAML(data)
		if err != nil {
			return "", err
		}
		b, err := yaml.Marshal(normalized)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprintf("%v\n", data), nil
	}
}

// normalizeForYAML round-trips through JSON so struct json tags control the
// YAML field names too.
func normalizeForYAML(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}
