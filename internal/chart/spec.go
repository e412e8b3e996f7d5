// Package chart owns the price-history chart: it fetches history for the
// selected symbol and range, and keeps at most one chart instance alive.
package chart

import (
	"strings"
	"time"

	"cryptodash/internal/dashboard"
	"cryptodash/internal/domain"
)

// MaxTicks caps the number of x-axis labels regardless of point count.
const MaxTicks = 8

const (
	timeLayout = "3:04:05 PM"
	dateLayout = "1/2/2006"
)

// Spec is everything an engine needs to draw one price chart.
type Spec struct {
	Symbol      string
	Days        int
	SeriesLabel string
	Labels      []string
	Values      []float64
	// TickInterval is the number of labels skipped between shown ticks.
	TickInterval int
}

// NewSpec builds a chart spec from a history series. symbol is used as
// given, so callers pass the backend's upper-case symbol.
func NewSpec(symbol string, days int, points []domain.PricePoint) Spec {
	s := Spec{
		Symbol:      symbol,
		Days:        days,
		SeriesLabel: symbol + " Price (USD)",
		Labels:      make([]string, len(points)),
		Values:      make([]float64, len(points)),
	}
	for i, p := range points {
		s.Labels[i] = Label(p.Timestamp, days)
		s.Values[i] = p.Price
	}
	s.TickInterval = tickStep(len(points), MaxTicks) - 1
	return s
}

// Label formats an x-axis label. A one-day range shows time of day, any
// other range shows the date.
func Label(t time.Time, days int) string {
	if days == 1 {
		return t.Format(timeLayout)
	}
	return t.Format(dateLayout)
}

// YTick formats a y-axis tick or tooltip value.
func YTick(v float64) string {
	return "$" + dashboard.FormatUSD(v)
}

// Tooltip formats the hover text for a point.
func (s Spec) Tooltip(i int) string {
	return strings.ToUpper(s.Symbol) + ": " + YTick(s.Values[i])
}

// Ticks returns the indices of the labels that are shown.
func (s Spec) Ticks() []int {
	return TickIndices(len(s.Labels), MaxTicks)
}

// TickIndices spreads at most max ticks evenly over n points, always
// starting at the first point.
func TickIndices(n, max int) []int {
	if n <= 0 || max <= 0 {
		return nil
	}
	step := tickStep(n, max)
	out := make([]int, 0, max)
	for i := 0; i < n; i += step {
		out = append(out, i)
	}
	return out
}

func tickStep(n, max int) int {
	if n <= max || max <= 0 {
		return 1
	}
	return (n + max - 1) / max
}
