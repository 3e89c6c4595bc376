// Package writer implements the text output of memory dumps.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/FutureFractal/g1utils/internal/memory"
)

const dataBytesPerLine = 16

// Output formats of memory dumps.
const (
	FormatHex  = "hex" // address followed by space separated hex bytes
	FormatData = "db"  // data directives that can be pasted into assembly source
)

// Formats lists all supported output formats.
var Formats = []string{FormatHex, FormatData}

type lineWriterFunc func(line string, ptr memory.Pointer) error

// Options of the writer.
type Options struct {
	Format          string
	DirectivePrefix string // indentation before data directives
	OffsetComments  bool
}

// Writer implements the memory dump writing functionality.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteData writes data that was read starting at ptr, using up to
// dataBytesPerLine bytes per line.
func (w *Writer) WriteData(ptr memory.Pointer, data []byte) error {
	switch w.options.Format {
	case FormatData:
		return w.BundleDataWrites(ptr, data, w.writeDataLine)
	case FormatHex, "":
		return w.BundleDataWrites(ptr, data, w.writeHexLine)
	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
}

// BundleDataWrites splits data into lines of dataBytesPerLine bytes and
// passes each formatted line with the pointer of its first byte to lineWriter.
func (w *Writer) BundleDataWrites(ptr memory.Pointer, data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		var line string
		if w.options.Format == FormatData {
			line = formatDirective(w.options.DirectivePrefix, data[i:i+toWrite])
		} else {
			line = fmt.Sprintf("% X", data[i:i+toWrite])
		}

		if err := lineWriter(line, ptr.Add(i)); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		i += toWrite
		remaining -= toWrite
	}
	return nil
}

func formatDirective(prefix string, data []byte) string {
	buf := &strings.Builder{}
	buf.WriteString(prefix)
	buf.WriteString("db ")
	for j, b := range data {
		if j > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "$%02x", b)
	}
	return buf.String()
}

func (w *Writer) writeHexLine(line string, ptr memory.Pointer) error {
	if _, err := fmt.Fprintf(w.writer, "%s  %s\n", ptr, line); err != nil {
		return fmt.Errorf("writing hex line: %w", err)
	}
	return nil
}

func (w *Writer) writeDataLine(line string, ptr memory.Pointer) error {
	var err error
	if w.options.OffsetComments {
		_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, ptr)
	} else {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	}
	if err != nil {
		return fmt.Errorf("writing data directive: %w", err)
	}
	return nil
}

// WriteLabel writes a label line for data written in the data format.
func (w *Writer) WriteLabel(name string, ptr memory.Pointer) error {
	if w.options.Format != FormatData || name == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", name+":", ptr); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}
