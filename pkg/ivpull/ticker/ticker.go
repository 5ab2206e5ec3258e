package ticker

import "strings"

// SupportedSuffixes is the exchange suffix allow-list. The empty string
// matches unsuffixed (US primary listing) symbols, which also means any
// symbol passes the suffix check; callers rely on that wildcard to let
// plain US tickers through.
var SupportedSuffixes = []string{
	".HK", ".SS", ".SZ", ".KS", ".T", ".L", ".AX", ".TO",
	".V", ".SI", ".NZ", ".MI", ".PA", ".F", ".DE", ".ST",
	".HE", ".SW", ".MC", "",
}

// IsSupported reports whether sym ends with a supported exchange
// suffix. Pure tail match, no network access.
func IsSupported(sym string) bool {
	for _, suffix := range SupportedSuffixes {
		if strings.HasSuffix(sym, suffix) {
			return true
		}
	}
	return false
}
