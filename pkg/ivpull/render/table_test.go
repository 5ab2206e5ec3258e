package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/komsit37/ivpull/pkg/ivpull/types"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	v := 12.3
	assert.Equal(t, "12.30", FormatValue(&v))
	v = 2500000000000
	assert.Equal(t, "2500000000000.00", FormatValue(&v))
}

func TestTable(t *testing.T) {
	s := &types.Summary{Ticker: "AAPL"}
	price := 178.24
	s.Append(types.MetricCurrentPrice, &price)
	s.Append(types.MetricForwardPE, nil)

	var buf bytes.Buffer
	Table(&buf, s, Options{})

	out := buf.String()
	assert.Contains(t, out, "Financial Summary for AAPL")
	assert.Contains(t, out, "METRIC")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "Current Price")
	assert.Contains(t, out, "178.24")
	assert.Contains(t, out, "Forward P/E")
}
