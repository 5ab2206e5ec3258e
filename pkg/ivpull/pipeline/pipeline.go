// Package pipeline runs the per-ticker fetch-validate-extract state
// machine over a batch. Per-ticker failures are recorded and never
// abort the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/komsit37/ivpull/pkg/ivpull/ticker"
	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

// ErrNoTickers indicates Run was called with an empty batch.
var ErrNoTickers = errors.New("no tickers to process")

// Validator reports whether a ticker resolves to a live quote. An error
// is treated as invalid (fail-closed).
type Validator interface {
	Validate(ctx context.Context, sym string) (bool, error)
}

// Extractor assembles a ticker's metric summary.
type Extractor interface {
	Extract(ctx context.Context, sym string) (*types.Summary, error)
}

// Runner drives a batch. Workers caps concurrent tickers in flight;
// Timeout bounds each ticker's network sequence.
type Runner struct {
	Validator Validator
	Extractor Extractor
	Workers   int           // <= 0 means runtime.NumCPU()
	Timeout   time.Duration // <= 0 means no per-ticker deadline
	Logger    zerolog.Logger

	// OnOutcome, when set, observes every terminal outcome. Called
	// from the aggregating goroutine, never concurrently.
	OnOutcome func(types.Outcome)
}

// Run processes every ticker to exactly one terminal outcome and
// aggregates them. Workers publish outcomes on a channel consumed by a
// single aggregating loop, so the result structures see one writer.
func (r *Runner) Run(ctx context.Context, tickers []string) (*types.BatchResult, error) {
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tickers) {
		workers = len(tickers)
	}

	jobs := make(chan string)
	outcomes := make(chan types.Outcome, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				outcomes <- r.process(ctx, sym)
			}
		}()
	}

	go func() {
		for _, sym := range tickers {
			jobs <- sym
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := types.NewBatchResult()
	for out := range outcomes {
		if out.Status.Failed() {
			result.Failed = append(result.Failed, out.Ticker)
		} else {
			result.Summaries[out.Ticker] = out.Summary
		}
		if r.OnOutcome != nil {
			r.OnOutcome(out)
		}
	}
	return result, nil
}

// process walks one ticker through the state machine; the first failed
// transition short-circuits the rest.
func (r *Runner) process(ctx context.Context, sym string) types.Outcome {
	logger := r.Logger.With().Str("ticker", sym).Logger()

	if !ticker.IsSupported(sym) {
		logger.Warn().Msg("unsupported exchange suffix")
		return types.Outcome{
			Ticker: sym,
			Status: types.StatusRejected,
			Reason: fmt.Sprintf("Ticker '%s' not supported. Check exchange suffix?", sym),
		}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	ok, err := r.Validator.Validate(ctx, sym)
	if err != nil {
		logger.Error().Err(err).Msg("quote lookup failed")
		ok = false
	}
	if !ok {
		return types.Outcome{
			Ticker: sym,
			Status: types.StatusInvalid,
			Reason: fmt.Sprintf("Ticker '%s' not found or is invalid.", sym),
		}
	}

	summary, err := r.Extractor.Extract(ctx, sym)
	if err != nil {
		logger.Error().Err(err).Msg("financial data fetch failed")
		return types.Outcome{
			Ticker: sym,
			Status: types.StatusFetchFailed,
			Reason: fmt.Sprintf("Data fetch failed for '%s'.", sym),
		}
	}
	if summary.Empty() {
		logger.Warn().Msg("financial data missing or incomplete")
		return types.Outcome{
			Ticker: sym,
			Status: types.StatusEmpty,
			Reason: fmt.Sprintf("Financial data missing or incomplete for '%s'.", sym),
		}
	}

	return types.Outcome{Ticker: sym, Status: types.StatusSucceeded, Summary: summary}
}
