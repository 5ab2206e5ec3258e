package ticker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoTickers indicates the input produced an empty ticker list.
var ErrNoTickers = errors.New("no tickers found")

// Load resolves user input into a ticker list: a path ending in .csv is
// read column-first, anything else is a single symbol.
func Load(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrNoTickers
	}
	if strings.HasSuffix(strings.ToLower(input), ".csv") {
		return LoadCSV(input)
	}
	return []string{input}, nil
}

// LoadCSV reads the first column of every row as a ticker. The first
// row is treated as data, not a header.
func LoadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var tickers []string
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
		if sym := strings.TrimSpace(rec[0]); sym != "" {
			tickers = append(tickers, sym)
		}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTickers)
	}
	return tickers, nil
}
