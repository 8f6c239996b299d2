package output

import (
	"fmt"
	"io"
	"os"

	"github.com/quantmind-br/pkgfile-go/internal/document"
)

// Format is an output format for rendered values
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Writer renders manifest values for the terminal
type Writer struct {
	out    io.Writer
	format Format
	indent string
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Output io.Writer
	Format Format
	Indent string
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	return &Writer{
		out:    opts.Output,
		format: opts.Format,
		indent: opts.Indent,
	}
}

// Write renders v followed by a newline. In text format strings are
// printed bare and everything else as JSON.
func (w *Writer) Write(v any) error {
	switch w.format {
	case FormatYAML:
		return w.writeYAML(v)
	case FormatText:
		if s, ok := v.(string); ok {
			_, err := fmt.Fprintln(w.out, s)
			return err
		}
	}
	return w.writeJSON(v)
}

func (w *Writer) writeJSON(v any) error {
	data, err := document.EncodeValue(v, w.indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.out.Write(data)
	return err
}

// Format returns the writer's output format
func (w *Writer) Format() Format {
	return w.format
}
