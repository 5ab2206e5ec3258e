package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

// Timeseries field → statement row label. Labels match Yahoo's
// statement presentation and are what the extractor looks up.
var (
	incomeFields = map[string]string{
		"annualNetIncome": "Net Income",
		"annualBasicEPS":  "Basic EPS",
	}
	balanceFields = map[string]string{
		"annualShareIssued":        "Share Issued",
		"annualTotalDebt":          "Total Debt",
		"annualStockholdersEquity": "Stockholders Equity",
	}
	cashFlowFields = map[string]string{
		"annualFreeCashFlow": "Free Cash Flow",
	}
)

// IncomeStatement returns the most recent annual income statement rows.
func (c *Client) IncomeStatement(ctx context.Context, sym string) (types.Statement, error) {
	return c.timeseries(ctx, sym, incomeFields)
}

// BalanceSheet returns the most recent annual balance sheet rows.
func (c *Client) BalanceSheet(ctx context.Context, sym string) (types.Statement, error) {
	return c.timeseries(ctx, sym, balanceFields)
}

// CashFlow returns the most recent annual cash-flow statement rows.
func (c *Client) CashFlow(ctx context.Context, sym string) (types.Statement, error) {
	return c.timeseries(ctx, sym, cashFlowFields)
}

type timeseriesResponse struct {
	Timeseries struct {
		// Each result item carries a meta block plus one dynamic key
		// named after the requested field, so decode loosely.
		Result []map[string]json.RawMessage `json:"result"`
		Error  any                          `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Type []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue rawFmt `json:"reportedValue"`
}

func (c *Client) timeseries(ctx context.Context, sym string, fields map[string]string) (types.Statement, error) {
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)

	now := time.Now()
	var res timeseriesResponse
	err := c.get(ctx, c.timeseriesURL+"/"+sym, map[string]string{
		"symbol":  sym,
		"type":    strings.Join(names, ","),
		"period1": strconv.FormatInt(now.AddDate(-5, 0, 0).Unix(), 10),
		"period2": strconv.FormatInt(now.Unix(), 10),
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("timeseries %s: %w", sym, err)
	}

	stmt := types.Statement{}
	for _, item := range res.Timeseries.Result {
		var meta timeseriesMeta
		if raw, ok := item["meta"]; ok {
			if err := json.Unmarshal(raw, &meta); err != nil {
				continue
			}
		}
		for _, typ := range meta.Type {
			label, ok := fields[typ]
			if !ok {
				continue
			}
			raw, ok := item[typ]
			if !ok {
				continue
			}
			var points []*timeseriesPoint
			if err := json.Unmarshal(raw, &points); err != nil {
				continue
			}
			// Points arrive oldest first; take the latest reported one.
			for i := len(points) - 1; i >= 0; i-- {
				if points[i] != nil && points[i].ReportedValue.Raw != nil {
					stmt[label] = *points[i].ReportedValue.Raw
					break
				}
			}
		}
	}
	return stmt, nil
}
