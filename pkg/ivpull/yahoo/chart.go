package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// History fetches daily bars for sym in [start, end). Days without a
// close (nulls in the chart payload) are skipped. An empty window
// returns an empty slice, not an error.
func (c *Client) History(ctx context.Context, sym string, start, end time.Time) ([]types.HistoryBar, error) {
	var res chartResponse
	err := c.get(ctx, c.chartURL+"/"+sym, map[string]string{
		"period1":  strconv.FormatInt(start.Unix(), 10),
		"period2":  strconv.FormatInt(end.Unix(), 10),
		"interval": "1d",
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", sym, err)
	}
	if len(res.Chart.Result) == 0 {
		return nil, nil
	}

	r := res.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := r.Indicators.Quote[0].Close

	bars := make([]types.HistoryBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		bars = append(bars, types.HistoryBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return bars, nil
}
