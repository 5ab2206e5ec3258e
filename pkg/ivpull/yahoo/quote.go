package yahoo

import (
	"context"
	"fmt"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice rawFmt `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryDetail struct {
				Beta          rawFmt `json:"beta"`
				MarketCap     rawFmt `json:"marketCap"`
				TrailingPE    rawFmt `json:"trailingPE"`
				ForwardPE     rawFmt `json:"forwardPE"`
				DividendRate  rawFmt `json:"dividendRate"`
				DividendYield rawFmt `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				CurrentPrice   rawFmt `json:"currentPrice"`
				ReturnOnEquity rawFmt `json:"returnOnEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				SharesOutstanding rawFmt `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"quoteSummary"`
}

// Quote fetches the current-state snapshot for sym.
func (c *Client) Quote(ctx context.Context, sym string) (*types.Quote, error) {
	var res quoteSummaryResponse
	err := c.get(ctx, c.quoteSummaryURL+"/"+sym, map[string]string{
		"modules": "price,summaryDetail,defaultKeyStatistics,financialData",
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", sym, err)
	}
	if len(res.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote %s: empty result", sym)
	}

	r := res.QuoteSummary.Result[0]
	return &types.Quote{
		RegularMarketPrice: r.Price.RegularMarketPrice.Raw,
		Beta:               r.SummaryDetail.Beta.Raw,
		CurrentPrice:       r.FinancialData.CurrentPrice.Raw,
		MarketCap:          r.SummaryDetail.MarketCap.Raw,
		TrailingPE:         r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:          r.SummaryDetail.ForwardPE.Raw,
		DividendRate:       r.SummaryDetail.DividendRate.Raw,
		DividendYield:      r.SummaryDetail.DividendYield.Raw,
		ReturnOnEquity:     r.FinancialData.ReturnOnEquity.Raw,
		SharesOutstanding:  r.DefaultKeyStatistics.SharesOutstanding.Raw,
	}, nil
}
