package domain

import (
	"encoding/json"
	"testing"
)

func TestCryptoAssetDecode(t *testing.T) {
	raw := []byte(`{
		"id": "bitcoin",
		"symbol": "btc",
		"name": "Bitcoin",
		"current_price": 42000.5,
		"price_change_24h": -1.25,
		"market_cap": 820000000000,
		"volume_24h": 15000000000
	}`)

	var a CryptoAsset
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.Symbol != "btc" || a.Name != "Bitcoin" || a.ID != "bitcoin" {
		t.Errorf("identity fields = %+v", a)
	}
	if a.CurrentPrice != 42000.5 {
		t.Errorf("CurrentPrice = %v, want 42000.5", a.CurrentPrice)
	}
	if a.PriceChange24h != -1.25 {
		t.Errorf("PriceChange24h = %v, want -1.25", a.PriceChange24h)
	}
	if a.MarketCap != 820000000000 || a.Volume24h != 15000000000 {
		t.Errorf("MarketCap/Volume24h = %v/%v", a.MarketCap, a.Volume24h)
	}
}

func TestZeroValues(t *testing.T) {
	var s SystemStatus
	if s.Scheduler.Running || s.Voice.Enabled {
		t.Error("expected zero-value SystemStatus to be stopped and disabled")
	}
	if s.Scheduler.LastAnalysisTime != nil || s.Scheduler.NextAnalysis != nil {
		t.Error("expected nil analysis times for zero-value SchedulerStatus")
	}

	var m AssetMap
	if _, ok := m["btc"]; ok {
		t.Error("lookup in nil AssetMap should miss")
	}
}
