// Package render draws a metric summary as a terminal table.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

// Options controls table appearance.
type Options struct {
	Color       bool
	MaxColWidth int
}

// Table writes s to w as a two-column Metric/Value table, one row per
// metric in summary order.
func Table(w io.Writer, s *types.Summary, opts Options) {
	fmt.Fprintln(w, text.Bold.Sprintf("Financial Summary for %s", s.Ticker))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if opts.Color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: maxWidth},
		{Number: 2, WidthMax: maxWidth, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})

	tw.AppendHeader(table.Row{"METRIC", "VALUE"})
	for _, m := range s.Metrics {
		tw.AppendRow(table.Row{m.Name, FormatValue(m.Value)})
	}
	tw.Render()
}

// FormatValue renders a metric value with two decimals; absent values
// render blank.
func FormatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
