package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatUSD formats v with comma separators and exactly two decimals,
// rounding half away from zero.
func FormatUSD(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.'):]
	return sign + FormatInt(d.IntPart()) + frac
}

// FormatPrice formats a price for display without the currency sign.
// Prices of at least 1 get two decimals and separators; smaller prices get
// eight decimals so sub-cent assets stay readable.
func FormatPrice(p float64) string {
	if p >= 1 {
		return FormatUSD(p)
	}
	return decimal.NewFromFloat(p).StringFixed(8)
}

// FormatPercentage returns the magnitude of a percentage change with two
// decimals. Direction is conveyed separately.
func FormatPercentage(change float64) string {
	return decimal.NewFromFloat(change).Abs().StringFixed(2)
}

var largeUnits = []struct {
	div    float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatLargeNumber formats market caps and volumes with T/B/M/K suffixes.
func FormatLargeNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	for _, u := range largeUnits {
		if n >= u.div {
			return decimal.NewFromFloat(n/u.div).StringFixed(2) + u.suffix
		}
	}
	return decimal.NewFromFloat(n).Round(3).String()
}

// FormatTime formats t as a local wall-clock time.
func FormatTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// FormatDateTime formats t as date and time, or returns none for nil.
func FormatDateTime(t *time.Time, none string) string {
	if t == nil {
		return none
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
