package dashboard

import (
	"testing"
	"time"

	"cryptodash/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42000.555, "42,000.56"},
		{1, "1.00"},
		{1234567.891, "1,234,567.89"},
		{0.00000123, "0.00000123"},
		{0.5, "0.50000000"},
		{0, "0.00000000"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_500_000_000, "1.50B"},
		{2_340_000_000_000, "2.34T"},
		{12_345_678, "12.35M"},
		{1_000, "1.00K"},
		{999, "999"},
		{12.5, "12.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatLargeNumber(tt.in); got != tt.want {
			t.Errorf("FormatLargeNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.14159, "3.14"},
		{-2.5, "2.50"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatPercentage(tt.in); got != tt.want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatInt(tt.in); got != tt.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUSDNegative(t *testing.T) {
	if got := FormatUSD(-1234.5); got != "-1,234.50" {
		t.Errorf("FormatUSD(-1234.5) = %q, want %q", got, "-1,234.50")
	}
}

func TestFormatTimes(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	if got := FormatTime(ts); got != "3:04:05 PM" {
		t.Errorf("FormatTime = %q", got)
	}
	if got := FormatDateTime(&ts, "Never"); got != "3/9/2024, 3:04:05 PM" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatDateTime(nil, "N/A"); got != "N/A" {
		t.Errorf("FormatDateTime(nil) = %q, want N/A", got)
	}
}

func TestBuildCardsOrder(t *testing.T) {
	assets := domain.AssetMap{
		"eth": {Symbol: "eth", Name: "Ethereum", CurrentPrice: 2500, MarketCap: 3e11, PriceChange24h: -1.25},
		"btc": {Symbol: "btc", Name: "Bitcoin", CurrentPrice: 42000.555, MarketCap: 8e11, PriceChange24h: 2},
		"ada": {Symbol: "ada", Name: "Cardano", CurrentPrice: 0.45, MarketCap: 3e11},
	}
	cards := BuildCards(assets)
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}

	var order []string
	for _, c := range cards {
		order = append(order, c.Symbol)
	}
	want := []string{"BTC", "ADA", "ETH"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	btc := cards[0]
	if btc.Price != "$42,000.56" {
		t.Errorf("btc.Price = %q", btc.Price)
	}
	if btc.MarketCap != "$800.00B" {
		t.Errorf("btc.MarketCap = %q", btc.MarketCap)
	}
	if !btc.Up || btc.Change != "2.00%" {
		t.Errorf("btc change = %q up=%v", btc.Change, btc.Up)
	}
	if btc.Key != "btc" {
		t.Errorf("btc.Key = %q, want btc", btc.Key)
	}

	eth := cards[2]
	if eth.Up || eth.Change != "1.25%" {
		t.Errorf("eth change = %q up=%v", eth.Change, eth.Up)
	}
}

func TestSelectorLabel(t *testing.T) {
	got := SelectorLabel(domain.SupportedAsset{Symbol: "btc", Name: "Bitcoin"})
	if got != "Bitcoin (BTC)" {
		t.Errorf("SelectorLabel = %q, want %q", got, "Bitcoin (BTC)")
	}
}
