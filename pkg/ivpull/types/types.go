package types

import (
	"math"
	"time"
)

// Metric names in the fixed display/export order.
const (
	MetricBeta              = "Beta"
	MetricCurrentPrice      = "Current Price"
	MetricMarketCap         = "Market Cap"
	MetricPERatio           = "P/E Ratio"
	MetricForwardPE         = "Forward P/E"
	MetricDividendRate      = "Dividend Rate"
	MetricDividendYield     = "Dividend Yield"
	MetricROE               = "ROE"
	MetricFreeCashFlow      = "Free Cash Flow"
	MetricNetIncome         = "Net Income"
	MetricSharesOutstanding = "Shares Outstanding"
	MetricEPS               = "EPS"
	MetricTotalDebt         = "Total Debt"
	MetricTotalEquity       = "Total Equity"
	MetricBVPS              = "BVPS"
	MetricLast3YearsClose   = "Last 3 Years Close Price"
)

// Metric is a named value in a summary. A nil Value means the provider
// had no figure for it.
type Metric struct {
	Name  string
	Value *float64
}

// Summary is the ordered per-ticker metric table.
type Summary struct {
	Ticker  string
	Metrics []Metric
}

// Append adds a metric, preserving insertion order.
func (s *Summary) Append(name string, v *float64) {
	s.Metrics = append(s.Metrics, Metric{Name: name, Value: v})
}

// Empty reports whether no metric carries a value.
func (s *Summary) Empty() bool {
	for _, m := range s.Metrics {
		if m.Value != nil {
			return false
		}
	}
	return true
}

// Round2 rounds to 2 decimal places; absent values stay absent.
func Round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}

// Quote is the provider's current-state snapshot for a ticker. Fields
// are nil when the provider omits them.
type Quote struct {
	RegularMarketPrice *float64
	Beta               *float64
	CurrentPrice       *float64
	MarketCap          *float64
	TrailingPE         *float64
	ForwardPE          *float64
	DividendRate       *float64
	DividendYield      *float64
	ReturnOnEquity     *float64
	SharesOutstanding  *float64
}

// Statement maps a row label (e.g. "Net Income") to its most recent
// period value.
type Statement map[string]float64

// Value returns the row value for label, if present.
func (st Statement) Value(label string) (float64, bool) {
	v, ok := st[label]
	return v, ok
}

// HistoryBar is one daily data point from a price history query.
type HistoryBar struct {
	Date  time.Time
	Close float64
}

// Status is a ticker's terminal pipeline outcome.
type Status int

const (
	StatusSucceeded Status = iota
	StatusRejected         // unsupported exchange suffix
	StatusInvalid          // no live quote
	StatusFetchFailed
	StatusEmpty
)

// Failed reports whether the status is a failure outcome.
func (s Status) Failed() bool { return s != StatusSucceeded }

// Outcome is the terminal result of one ticker's pass through the
// pipeline.
type Outcome struct {
	Ticker  string
	Status  Status
	Summary *Summary // set only for StatusSucceeded
	Reason  string   // human-readable failure message
}

// BatchResult aggregates one pipeline run. Failed preserves completion
// order, which is not input order under concurrency.
type BatchResult struct {
	Summaries map[string]*Summary
	Failed    []string
}

// NewBatchResult returns an empty result ready for aggregation.
func NewBatchResult() *BatchResult {
	return &BatchResult{Summaries: make(map[string]*Summary)}
}
