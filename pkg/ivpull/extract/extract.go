// Package extract assembles a ticker's metric summary from provider
// responses, applying the fallback and derivation rules for each
// metric independently.
package extract

import (
	"context"
	"time"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

// Source supplies raw provider data. Implemented by yahoo.Client and by
// test fakes.
type Source interface {
	Quote(ctx context.Context, sym string) (*types.Quote, error)
	IncomeStatement(ctx context.Context, sym string) (types.Statement, error)
	BalanceSheet(ctx context.Context, sym string) (types.Statement, error)
	CashFlow(ctx context.Context, sym string) (types.Statement, error)
	History(ctx context.Context, sym string, start, end time.Time) ([]types.HistoryBar, error)
}

// Extractor computes a fixed, ordered metric set for one ticker per
// call. Each metric may independently be absent; any provider error
// aborts the whole extraction so partial summaries are never returned.
type Extractor struct {
	src         Source
	withHistory bool
	now         func() time.Time
}

type Option func(*Extractor)

// WithHistory adds the trailing 3-calendar-year close price metric.
func WithHistory() Option {
	return func(e *Extractor) { e.withHistory = true }
}

// WithClock overrides the wall clock used for the history window.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

func New(src Source, opts ...Option) *Extractor {
	e := &Extractor{src: src, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract performs the quote, income, balance-sheet and cash-flow
// lookups (plus history when enabled) and derives the summary.
func (e *Extractor) Extract(ctx context.Context, sym string) (*types.Summary, error) {
	quote, err := e.src.Quote(ctx, sym)
	if err != nil {
		return nil, err
	}
	income, err := e.src.IncomeStatement(ctx, sym)
	if err != nil {
		return nil, err
	}
	balance, err := e.src.BalanceSheet(ctx, sym)
	if err != nil {
		return nil, err
	}
	cashFlow, err := e.src.CashFlow(ctx, sym)
	if err != nil {
		return nil, err
	}

	// financialData's currentPrice is sometimes absent; the regular
	// market price from the price module covers the gap.
	price := quote.CurrentPrice
	if price == nil {
		price = quote.RegularMarketPrice
	}

	// Balance-sheet share count wins; quote-info figure is the fallback.
	shares := row(balance, "Share Issued")
	if shares == nil {
		shares = quote.SharesOutstanding
	}
	totalDebt := row(balance, "Total Debt")
	totalEquity := row(balance, "Stockholders Equity")

	var bvps *float64
	if totalEquity != nil && shares != nil && *shares != 0 {
		v := *totalEquity / *shares
		bvps = &v
	}

	s := &types.Summary{Ticker: sym}
	s.Append(types.MetricBeta, types.Round2(quote.Beta))
	s.Append(types.MetricCurrentPrice, types.Round2(price))
	s.Append(types.MetricMarketCap, types.Round2(quote.MarketCap))
	s.Append(types.MetricPERatio, types.Round2(quote.TrailingPE))
	s.Append(types.MetricForwardPE, types.Round2(quote.ForwardPE))
	s.Append(types.MetricDividendRate, types.Round2(quote.DividendRate))
	s.Append(types.MetricDividendYield, types.Round2(quote.DividendYield))
	s.Append(types.MetricROE, types.Round2(quote.ReturnOnEquity))
	s.Append(types.MetricFreeCashFlow, types.Round2(row(cashFlow, "Free Cash Flow")))
	s.Append(types.MetricNetIncome, types.Round2(row(income, "Net Income")))
	s.Append(types.MetricSharesOutstanding, types.Round2(shares))
	s.Append(types.MetricEPS, types.Round2(row(income, "Basic EPS")))
	s.Append(types.MetricTotalDebt, types.Round2(totalDebt))
	s.Append(types.MetricTotalEquity, types.Round2(totalEquity))
	s.Append(types.MetricBVPS, types.Round2(bvps))

	if e.withHistory {
		close, err := e.lastThreeYearsClose(ctx, sym)
		if err != nil {
			return nil, err
		}
		s.Append(types.MetricLast3YearsClose, types.Round2(close))
	}
	return s, nil
}

// lastThreeYearsClose returns the most recent close within the window
// from Jan 1 three years back through Jan 1 of the current year. An
// empty history degrades to absent.
func (e *Extractor) lastThreeYearsClose(ctx context.Context, sym string) (*float64, error) {
	year := e.now().Year()
	start := time.Date(year-3, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	bars, err := e.src.History(ctx, sym, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	v := bars[len(bars)-1].Close
	return &v, nil
}

func row(st types.Statement, label string) *float64 {
	if v, ok := st.Value(label); ok {
		return &v
	}
	return nil
}
