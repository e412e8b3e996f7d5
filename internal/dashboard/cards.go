// Package dashboard turns backend price data into display-ready values
// shared by the terminal view and the one-shot CLI commands.
package dashboard

import (
	"sort"
	"strings"

	"cryptodash/internal/domain"
)

// Card is one price card.
type Card struct {
	Symbol    string // upper-case
	Key       string // lower-case key used for chart selection
	Name      string
	Price     string // "$42,000.56"
	Change    string // "2.35%"
	Up        bool
	MarketCap string // "$1.50B"
	Volume    string
}

// BuildCards renders every asset as a card, largest market cap first.
// Ties sort by symbol so the order is stable across refreshes.
func BuildCards(assets domain.AssetMap) []Card {
	keys := make([]string, 0, len(assets))
	for k := range assets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := assets[keys[i]], assets[keys[j]]
		if a.MarketCap != b.MarketCap {
			return a.MarketCap > b.MarketCap
		}
		return keys[i] < keys[j]
	})

	cards := make([]Card, 0, len(keys))
	for _, k := range keys {
		cards = append(cards, NewCard(k, assets[k]))
	}
	return cards
}

// NewCard builds the card for one asset. key is the map key the asset was
// stored under; the asset's own symbol wins when present.
func NewCard(key string, a domain.CryptoAsset) Card {
	sym := a.Symbol
	if sym == "" {
		sym = key
	}
	return Card{
		Symbol:    strings.ToUpper(sym),
		Key:       strings.ToLower(sym),
		Name:      a.Name,
		Price:     "$" + FormatPrice(a.CurrentPrice),
		Change:    FormatPercentage(a.PriceChange24h) + "%",
		Up:        a.PriceChange24h >= 0,
		MarketCap: "$" + FormatLargeNumber(a.MarketCap),
		Volume:    "$" + FormatLargeNumber(a.Volume24h),
	}
}

// SelectorLabel is how a supported asset appears in the chart symbol
// selector.
func SelectorLabel(a domain.SupportedAsset) string {
	return a.Name + " (" + strings.ToUpper(a.Symbol) + ")"
}
