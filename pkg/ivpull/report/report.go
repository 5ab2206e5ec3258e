// Package report persists per-ticker metric summaries as CSV files.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/komsit37/ivpull/pkg/ivpull/render"
	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

type csvRow struct {
	Metric string `csv:"Metric"`
	Value  string `csv:"Value"`
}

// Export writes the summary to {dir}/{ticker}_financials.csv, creating
// dir if needed and overwriting any existing file. Returns the path
// written.
func Export(dir string, s *types.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}

	rows := make([]*csvRow, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		rows = append(rows, &csvRow{Metric: m.Name, Value: render.FormatValue(m.Value)})
	}

	path := filepath.Join(dir, s.Ticker+"_financials.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
