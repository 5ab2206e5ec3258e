// Package split partitions a ticker-list CSV into bounded-size chunk
// files for batch processing.
package split

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidChunkSize indicates a chunk size outside [1, ticker count].
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// ErrNoTickers indicates the source CSV held no ticker rows.
var ErrNoTickers = errors.New("no tickers found")

// List is a loaded ticker-list CSV. Unlike the pull flow, the split
// utility treats the first row as a header and reproduces it in every
// chunk.
type List struct {
	Header  string
	Tickers []string

	dir  string
	base string
}

// ReadList loads the first column of path, first row as header.
func ReadList(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	l := &List{
		dir:  filepath.Dir(path),
		base: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(rec) == 0 {
			continue
		}
		if first {
			l.Header = rec[0]
			first = false
			continue
		}
		if sym := strings.TrimSpace(rec[0]); sym != "" {
			l.Tickers = append(l.Tickers, sym)
		}
	}
	if len(l.Tickers) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTickers)
	}
	return l, nil
}

// Split writes ceil(len/size) single-column chunk files named
// {base}_part{N}.csv (1-indexed) next to the source file, preserving
// input order. Concatenating all chunks reproduces the original list.
func (l *List) Split(size int) ([]string, error) {
	if size < 1 || size > len(l.Tickers) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidChunkSize, size, len(l.Tickers))
	}

	var paths []string
	for i, n := 0, 1; i < len(l.Tickers); i, n = i+size, n+1 {
		end := i + size
		if end > len(l.Tickers) {
			end = len(l.Tickers)
		}
		path := filepath.Join(l.dir, fmt.Sprintf("%s_part%d.csv", l.base, n))
		if err := writeChunk(path, l.Header, l.Tickers[i:end]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChunk(path, header string, tickers []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{header}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, sym := range tickers {
		if err := w.Write([]string{sym}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
