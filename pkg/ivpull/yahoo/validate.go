package yahoo

import (
	"context"
	"time"

	yfgo "github.com/komsit37/yf-go"
)

// Validator checks that a ticker resolves to a live quote before the
// pipeline spends four fundamentals calls on it.
type Validator struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewValidator(timeout time.Duration) *Validator {
	return &Validator{client: yfgo.NewClient(), timeout: timeout}
}

// Validate issues one price-module lookup. A ticker is valid only when
// the lookup succeeds and a regular market price is present.
func (v *Validator) Validate(ctx context.Context, sym string) (bool, error) {
	cctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	res, err := v.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return false, err
	}
	if res.Price == nil {
		return false, nil
	}
	p := res.Price.RegularMarketPrice
	if p.Raw == nil && p.Fmt == "" {
		return false, nil
	}
	return true, nil
}
