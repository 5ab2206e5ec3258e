package ticker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("0700.HK"))
	assert.True(t, IsSupported("7203.T"))
	assert.True(t, IsSupported("AAPL"))

	// The empty-suffix entry is a wildcard: every symbol passes the
	// suffix check, including junk. Callers rely on it to admit
	// unsuffixed US tickers, so this is intentional.
	assert.True(t, IsSupported("XYZ@@"))
	assert.True(t, IsSupported("FOO.ZZ"))
}

func TestLoadSingleTicker(t *testing.T) {
	tickers, err := Load("  AAPL ")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)
}

func TestLoadEmptyInput(t *testing.T) {
	_, err := Load("   ")
	assert.ErrorIs(t, err, ErrNoTickers)
}

func TestLoadCSVFirstColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	require.NoError(t, os.WriteFile(path, []byte("AAPL,ignored\n0700.HK\nMSFT,x,y\n"), 0o644))

	tickers, err := Load(path)
	require.NoError(t, err)
	// No header detection: the first row is data.
	assert.Equal(t, []string{"AAPL", "0700.HK", "MSFT"}, tickers)
}

func TestLoadCSVSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	require.NoError(t, os.WriteFile(path, []byte("AAPL\n\n  \nMSFT\n"), 0o644))

	tickers, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadCSV(path)
	assert.ErrorIs(t, err, ErrNoTickers)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
