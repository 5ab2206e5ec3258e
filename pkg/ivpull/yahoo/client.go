// Package yahoo talks to the Yahoo Finance endpoints the fundamentals
// pipeline needs: the quoteSummary snapshot, the fundamentals-timeseries
// statements, and the chart price history.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/go-resty/resty/v2"
)

const (
	defaultQuoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	defaultTimeseriesURL   = "https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries"
	defaultChartURL        = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultCrumbURL        = "https://query1.finance.yahoo.com/v1/test/getcrumb"
	defaultCookieURL       = "https://fc.yahoo.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Config carries endpoint overrides, used by tests to point the client
// at local servers. Zero-value fields fall back to the public endpoints.
// An empty CrumbURL with any other URL overridden disables the crumb
// session bootstrap.
type Config struct {
	QuoteSummaryURL string
	TimeseriesURL   string
	ChartURL        string
	CrumbURL        string
	CookieURL       string
}

// Client issues Yahoo Finance requests. Safe for concurrent use; the
// crumb session is established once, lazily.
type Client struct {
	rest *resty.Client

	quoteSummaryURL string
	timeseriesURL   string
	chartURL        string
	crumbURL        string
	cookieURL       string

	mu    sync.Mutex
	crumb string
	ready bool
}

// NewClient builds a client with a cookie jar and browser-like headers.
// Yahoo rejects requests without both.
func NewClient(cfg Config) *Client {
	jar, _ := cookiejar.New(nil)
	rest := resty.New().
		SetCookieJar(jar).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	c := &Client{
		rest:            rest,
		quoteSummaryURL: defaultQuoteSummaryURL,
		timeseriesURL:   defaultTimeseriesURL,
		chartURL:        defaultChartURL,
	}
	overridden := false
	if cfg.QuoteSummaryURL != "" {
		c.quoteSummaryURL = cfg.QuoteSummaryURL
		overridden = true
	}
	if cfg.TimeseriesURL != "" {
		c.timeseriesURL = cfg.TimeseriesURL
		overridden = true
	}
	if cfg.ChartURL != "" {
		c.chartURL = cfg.ChartURL
		overridden = true
	}
	switch {
	case cfg.CrumbURL != "":
		c.crumbURL = cfg.CrumbURL
		c.cookieURL = cfg.CookieURL
	case !overridden:
		c.crumbURL = defaultCrumbURL
		c.cookieURL = defaultCookieURL
	}
	return c
}

// session returns the crumb token, fetching it on first use. Yahoo
// hands out the crumb only after a cookie-setting visit.
func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready || c.crumbURL == "" {
		return c.crumb, nil
	}

	if c.cookieURL != "" {
		// Collect cookies; the response body is irrelevant.
		_, _ = c.rest.R().SetContext(ctx).Get(c.cookieURL)
	}

	resp, err := c.rest.R().SetContext(ctx).Get(c.crumbURL)
	if err != nil {
		return "", fmt.Errorf("fetch crumb: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch crumb: status %d", resp.StatusCode())
	}
	c.crumb = string(resp.Body())
	c.ready = true
	return c.crumb, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, url string, params map[string]string, out any) error {
	crumb, err := c.session(ctx)
	if err != nil {
		return err
	}

	// Decode as JSON no matter what content type the server claims.
	req := c.rest.R().SetContext(ctx).SetResult(out).ForceContentType("application/json")
	if crumb != "" {
		req.SetQueryParam("crumb", crumb)
	}
	resp, err := req.SetQueryParams(params).Get(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("yahoo returned status %d for %s", resp.StatusCode(), url)
	}
	return nil
}

// rawFmt is Yahoo's number envelope; Raw is nil when the figure is
// missing.
type rawFmt struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}
