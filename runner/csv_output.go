package runner

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// CSVWriter appends result rows to the output file. The file is reopened for
// every row so that rows written before a crash stay intact.
type CSVWriter struct {
	path string
}

// NewCSVWriter truncates path and writes the header row
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create output file '%s'", path)
	}
	if err := writeRow(f, csvHeader); err != nil {
		f.Close() //nolint
		return nil, errors.Wrap(err, "could not write csv header")
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &CSVWriter{path: path}, nil
}

// Append writes row at the end of the file
func (w *CSVWriter) Append(row []string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "could not open output file '%s'", w.path)
	}
	if err := writeRow(f, row); err != nil {
		f.Close() //nolint
		return err
	}
	return f.Close()
}

// Path of the output file
func (w *CSVWriter) Path() string {
	return w.path
}

// writeRow encodes the row fully before issuing a single write
func writeRow(out io.Writer, row []string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}
