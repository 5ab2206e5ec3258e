package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "price,summaryDetail,defaultKeyStatistics,financialData", r.URL.Query().Get("modules"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quoteSummary": {
				"result": [{
					"price": {"regularMarketPrice": {"raw": 178.23, "fmt": "178.23"}},
					"summaryDetail": {
						"beta": {"raw": 1.28, "fmt": "1.28"},
						"marketCap": {"raw": 2500000000000, "fmt": "2.5T"},
						"trailingPE": {"raw": 28.11, "fmt": "28.11"},
						"dividendYield": {"raw": 0.0055, "fmt": "0.55%"}
					},
					"financialData": {
						"currentPrice": {"raw": 178.5, "fmt": "178.50"},
						"returnOnEquity": {"raw": 1.47, "fmt": "147.00%"}
					},
					"defaultKeyStatistics": {
						"sharesOutstanding": {"raw": 15500000000, "fmt": "15.5B"}
					}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{QuoteSummaryURL: server.URL})
	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, q.RegularMarketPrice)
	assert.Equal(t, 178.23, *q.RegularMarketPrice)
	assert.Equal(t, 1.28, *q.Beta)
	assert.Equal(t, 178.5, *q.CurrentPrice)
	assert.Equal(t, 1.47, *q.ReturnOnEquity)
	assert.Equal(t, 15500000000.0, *q.SharesOutstanding)
	// Fields the payload omits stay absent.
	assert.Nil(t, q.ForwardPE)
	assert.Nil(t, q.DividendRate)
}

func TestQuoteDecodesWithoutContentType(t *testing.T) {
	// A body served without a JSON content type must still decode
	// instead of coming back as a zero-value "empty result".
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{
			"quoteSummary": {
				"result": [{"price": {"regularMarketPrice": {"raw": 42.5, "fmt": "42.50"}}}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{QuoteSummaryURL: server.URL})
	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q.RegularMarketPrice)
	assert.Equal(t, 42.5, *q.RegularMarketPrice)
}

func TestQuoteEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	c := NewClient(Config{QuoteSummaryURL: server.URL})
	_, err := c.Quote(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestQuoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(Config{QuoteSummaryURL: server.URL})
	_, err := c.Quote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestBalanceSheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "annualShareIssued,annualStockholdersEquity,annualTotalDebt", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"timeseries": {
				"result": [
					{
						"meta": {"symbol": ["AAPL"], "type": ["annualShareIssued"]},
						"timestamp": [1632960000, 1664496000],
						"annualShareIssued": [
							{"asOfDate": "2021-09-30", "reportedValue": {"raw": 16000000000, "fmt": "16B"}},
							{"asOfDate": "2022-09-30", "reportedValue": {"raw": 15900000000, "fmt": "15.9B"}}
						]
					},
					{
						"meta": {"symbol": ["AAPL"], "type": ["annualStockholdersEquity"]},
						"timestamp": [1664496000],
						"annualStockholdersEquity": [
							{"asOfDate": "2022-09-30", "reportedValue": {"raw": 50672000000, "fmt": "50.67B"}}
						]
					},
					{
						"meta": {"symbol": ["AAPL"], "type": ["annualTotalDebt"]},
						"timestamp": []
					}
				],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{TimeseriesURL: server.URL})
	stmt, err := c.BalanceSheet(context.Background(), "AAPL")
	require.NoError(t, err)

	v, ok := stmt.Value("Share Issued")
	require.True(t, ok)
	assert.Equal(t, 15900000000.0, v) // latest period wins

	v, ok = stmt.Value("Stockholders Equity")
	require.True(t, ok)
	assert.Equal(t, 50672000000.0, v)

	_, ok = stmt.Value("Total Debt")
	assert.False(t, ok)
}

func TestTimeseriesSkipsNullPoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"timeseries": {
				"result": [{
					"meta": {"type": ["annualNetIncome"]},
					"annualNetIncome": [
						{"asOfDate": "2021-12-31", "reportedValue": {"raw": 94680000000}},
						null
					]
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{TimeseriesURL: server.URL})
	stmt, err := c.IncomeStatement(context.Background(), "AAPL")
	require.NoError(t, err)

	v, ok := stmt.Value("Net Income")
	require.True(t, ok)
	assert.Equal(t, 94680000000.0, v)
}

func TestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1672531200, 1672617600, 1672704000],
					"indicators": {"quote": [{"close": [125.07, null, 126.36]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{ChartURL: server.URL})
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bars, err := c.History(context.Background(), "AAPL", start, end)
	require.NoError(t, err)

	require.Len(t, bars, 2) // null close dropped
	assert.Equal(t, 125.07, bars[0].Close)
	assert.Equal(t, 126.36, bars[1].Close)
	assert.Equal(t, start, bars[0].Date)
}

func TestHistoryEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	c := NewClient(Config{ChartURL: server.URL})
	bars, err := c.History(context.Background(), "AAPL", time.Now().AddDate(-3, 0, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestCrumbSession(t *testing.T) {
	var crumbFetches int
	mux := http.NewServeMux()
	mux.HandleFunc("/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		crumbFetches++
		w.Write([]byte("abc123"))
	})
	mux.HandleFunc("/quote/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123", r.URL.Query().Get("crumb"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteSummary": {"result": [{}], "error": null}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewClient(Config{
		QuoteSummaryURL: server.URL + "/quote",
		CrumbURL:        server.URL + "/getcrumb",
	})

	_, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = c.Quote(context.Background(), "MSFT")
	require.NoError(t, err)

	// The session bootstrap happens once.
	assert.Equal(t, 1, crumbFetches)
}
