package counts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	log "github.com/cloud-bulldozer/bench-combine/pkg/logging"
)

// Load reads the counts CSV at path. The first column is the row index and
// holds the benchmark name; it is kept as an ordinary column named by its
// header cell, or key when that cell is blank. Cells are not converted.
func Load(path, key string) (*frame.Frame, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening counts %s: %w", frame.ErrIO, path, err)
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: counts %s: no header", frame.ErrFormat, path)
	}
	if err != nil {
		return nil, readError(path, err)
	}
	if strings.TrimSpace(header[0]) == "" {
		header[0] = key
	}
	f := frame.New(header...)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(path, err)
		}
		if err := f.AddRow(record...); err != nil {
			return nil, fmt.Errorf("%w: counts %s: %w", frame.ErrFormat, path, err)
		}
	}
	log.Debugf("Loaded %d count rows with columns %v from %s", f.Len(), f.Columns, path)
	return f, nil
}

func readError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: parsing counts %s: %w", frame.ErrFormat, path, err)
	}
	return fmt.Errorf("%w: reading counts %s: %w", frame.ErrIO, path, err)
}
