// Package domain defines the data shapes exchanged with the analytics
// backend: assets, prices, history points, alerts and system status.
package domain

import "time"

// SupportedAsset is one entry of the backend's supported-asset list.
type SupportedAsset struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CryptoAsset is the current market snapshot for a single asset.
type CryptoAsset struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
}

// AssetMap maps an asset symbol to its snapshot. It is always replaced as a
// whole, never merged.
type AssetMap map[string]CryptoAsset

// PricePoint is a single sample of a price history series.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// AlertsReport summarises the backend's alert system.
type AlertsReport struct {
	Active   int
	Critical int
	Summary  string
}

// SchedulerStatus is the backend's report on its own periodic analysis
// job. It is unrelated to the client-side refresh timer.
type SchedulerStatus struct {
	Running          bool       `json:"running"`
	JobsCount        int        `json:"jobs_count"`
	AnalysisCount24h int        `json:"analysis_count_24h"`
	LastAnalysisTime *time.Time `json:"-"`
	NextAnalysis     *time.Time `json:"-"`
}

// VoiceStatus describes the backend's text-to-speech engine.
type VoiceStatus struct {
	Enabled         bool   `json:"enabled"`
	EngineAvailable bool   `json:"engine_available"`
	Language        string `json:"language"`
	EngineType      string `json:"engine_type"`
}

// SystemStatus pairs scheduler and voice status as returned together by
// the scheduler status endpoint.
type SystemStatus struct {
	Scheduler SchedulerStatus
	Voice     VoiceStatus
}

// HealthStatus is the backend's health-check payload.
type HealthStatus struct {
	Status               string     `json:"status"`
	Service              string     `json:"service"`
	LastUpdate           *time.Time `json:"-"`
	SupportedCoins       int        `json:"supported_coins"`
	AutoSchedulerRunning bool       `json:"auto_scheduler_running"`
	VoiceEnabled         bool       `json:"voice_enabled"`
}
