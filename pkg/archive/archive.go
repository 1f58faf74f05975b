package archive

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cloud-bulldozer/bench-combine/pkg/config"
	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	"github.com/cloud-bulldozer/bench-combine/pkg/logging"
)

// Options controls how rows are appended to the cumulative CSV.
type Options struct {
	// Header is config.HeaderOnce or config.HeaderAlways.
	Header string
	// CheckSchema rejects appends whose columns differ from the file header.
	CheckSchema bool
}

// OptionsFromConfig returns the append options configured in c.
func OptionsFromConfig(c config.Config) Options {
	return Options{Header: c.Header, CheckSchema: c.SchemaChecked()}
}

// state is what Append needs to know about the file before writing.
type state struct {
	exists         bool
	header         []string
	missingNewline bool
}

func inspect(path string, readHeader bool) (state, error) {
	var s state
	fp, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: opening archive %s: %w", frame.ErrIO, path, err)
	}
	defer fp.Close()
	info, err := fp.Stat()
	if err != nil {
		return s, fmt.Errorf("%w: stat archive %s: %w", frame.ErrIO, path, err)
	}
	if info.IsDir() {
		return s, fmt.Errorf("%w: archive %s is a directory", frame.ErrIO, path)
	}
	if info.Size() == 0 {
		return s, nil
	}
	s.exists = true

	last := make([]byte, 1)
	if _, err := fp.ReadAt(last, info.Size()-1); err != nil {
		return s, fmt.Errorf("%w: reading archive %s: %w", frame.ErrIO, path, err)
	}
	s.missingNewline = !bytes.Equal(last, []byte("\n"))
	if !readHeader {
		return s, nil
	}

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	s.header, err = r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("%w: reading archive header %s: %w", frame.ErrFormat, path, err)
	}
	return s, nil
}

// Append writes the rows of f to the CSV at path. A missing or empty file is
// created with a header row. An existing file is only appended to: the
// header is repeated when opts.Header is config.HeaderAlways, and with
// opts.CheckSchema a header that differs from f.Columns aborts the append
// before anything is written. Returns the number of data rows written.
func Append(path string, f *frame.Frame, opts Options) (n int, err error) {
	if f == nil {
		return 0, fmt.Errorf("%w: nothing to append to %s", frame.ErrSchema, path)
	}
	s, err := inspect(path, opts.CheckSchema)
	if err != nil {
		return 0, err
	}
	if s.exists && opts.CheckSchema && !frame.SameColumns(s.header, f.Columns) {
		return 0, fmt.Errorf("%w: archive %s has columns %v, combined rows have %v", frame.ErrSchema, path, s.header, f.Columns)
	}

	fp, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to open archive file %s: %w", frame.ErrIO, path, err)
	}
	defer func() {
		if cerr := fp.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing archive %s: %w", frame.ErrIO, path, cerr)
		}
	}()

	if s.missingNewline {
		if _, err := fp.WriteString("\n"); err != nil {
			return 0, fmt.Errorf("%w: failed to write archive to file: %w", frame.ErrIO, err)
		}
	}
	archive := csv.NewWriter(fp)
	if !s.exists || opts.Header == config.HeaderAlways {
		if err := archive.Write(f.Columns); err != nil {
			return 0, fmt.Errorf("%w: failed to write archive header to file: %w", frame.ErrIO, err)
		}
	}
	for _, row := range f.Rows {
		if err := archive.Write(row); err != nil {
			return 0, fmt.Errorf("%w: failed to write archive to file: %w", frame.ErrIO, err)
		}
	}
	archive.Flush()
	if err := archive.Error(); err != nil {
		return 0, fmt.Errorf("%w: failed to write archive to file: %w", frame.ErrIO, err)
	}
	logging.Debugf("Appended %d rows to %s (created %t)", f.Len(), path, !s.exists)
	return f.Len(), nil
}
