package dataclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cryptodash/internal/domain"
)

// Op names a logical backend operation.
type Op string

const (
	OpSupported       Op = "supported"
	OpPrices          Op = "prices"
	OpPrice           Op = "price"
	OpHistory         Op = "history"
	OpAnalysis        Op = "analysis"
	OpAlerts          Op = "alerts"
	OpExternal        Op = "external_sources"
	OpToggleVoice     Op = "toggle_voice"
	OpSpeak           Op = "speak"
	OpForceAnalysis   Op = "force_analysis"
	OpSchedulerStatus Op = "scheduler_status"
	OpCollaborative   Op = "collaborative_analysis"
	OpHealth          Op = "health"
)

var genericMessages = map[Op]string{
	OpSupported:       "Failed to load supported cryptocurrencies",
	OpPrices:          "Failed to load cryptocurrency data",
	OpPrice:           "Failed to load cryptocurrency price",
	OpHistory:         "Failed to load price history",
	OpAnalysis:        "Failed to generate analysis",
	OpAlerts:          "Failed to load alerts",
	OpExternal:        "Failed to load external sources",
	OpToggleVoice:     "Failed to toggle voice system",
	OpSpeak:           "Voice synthesis failed",
	OpForceAnalysis:   "Failed to force analysis",
	OpSchedulerStatus: "Failed to get scheduler status",
	OpCollaborative:   "Failed to execute collaborative analysis",
	OpHealth:          "Failed to reach the API status endpoint",
}

// GenericMessage is the message shown when the backend reports a failure
// without explaining it.
func (o Op) GenericMessage() string {
	if m, ok := genericMessages[o]; ok {
		return m
	}
	return "Request failed"
}

// responder is implemented by every decoded response body.
type responder interface {
	ok() bool
	message() string
}

// envelope carries the fields common to all backend responses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *envelope) ok() bool { return e.Success }

func (e *envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type supportedResponse struct {
	envelope
	Data []domain.SupportedAsset `json:"data"`
}

type pricesResponse struct {
	envelope
	Data      domain.AssetMap `json:"data"`
	Timestamp rawTime         `json:"timestamp"`
}

type priceResponse struct {
	envelope
	Data domain.CryptoAsset `json:"data"`
}

type historyPoint struct {
	Timestamp rawTime `json:"timestamp"`
	Price     float64 `json:"price"`
}

type historyResponse struct {
	envelope
	Symbol string         `json:"symbol"`
	Days   int            `json:"days"`
	Data   []historyPoint `json:"data"`
}

type analysisResponse struct {
	envelope
	Analysis string `json:"analysis"`
}

type alertsResponse struct {
	envelope
	ActiveAlerts   int    `json:"active_alerts"`
	CriticalAlerts int    `json:"critical_alerts"`
	Summary        string `json:"summary"`
}

type externalResponse struct {
	envelope
	SentimentAnalysis string `json:"sentiment_analysis"`
}

type toggleVoiceResponse struct {
	envelope
	VoiceEnabled bool `json:"voice_enabled"`
}

type schedulerStatusWire struct {
	domain.SchedulerStatus
	LastAnalysisTime rawTime `json:"last_analysis_time"`
	NextAnalysis     rawTime `json:"next_analysis"`
}

type statusResponse struct {
	envelope
	SchedulerStatus schedulerStatusWire `json:"scheduler_status"`
	VoiceStatus     domain.VoiceStatus  `json:"voice_status"`
}

type collaborativeResponse struct {
	envelope
	CollaborativeAnalysis string `json:"collaborative_analysis"`
}

// healthResponse has no success flag; a populated status field counts as
// success.
type healthResponse struct {
	domain.HealthStatus
	LastUpdate rawTime `json:"last_update"`
	Message    string  `json:"message"`
}

func (h *healthResponse) ok() bool        { return h.Status != "" }
func (h *healthResponse) message() string { return h.Message }

type speakRequest struct {
	Text string `json:"text"`
}

// rawTime holds a timestamp exactly as the backend sent it: an ISO string,
// epoch milliseconds, or null.
type rawTime json.RawMessage

func (r *rawTime) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

func (r rawTime) isNull() bool {
	b := bytes.TrimSpace(r)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// isoLayouts are tried in order. Layouts without a zone are interpreted in
// the client's location.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parse converts r to a time in loc. ok is false for null or empty values.
func (r rawTime) parse(loc *time.Location) (t time.Time, ok bool, err error) {
	if r.isNull() {
		return time.Time{}, false, nil
	}

	b := bytes.TrimSpace(r)
	if b[0] != '"' {
		ms, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parsing timestamp %s: %w", b, err)
		}
		return time.UnixMilli(int64(ms)).In(loc), true, nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}, false, fmt.Errorf("parsing timestamp %s: %w", b, err)
	}
	if s == "" {
		return time.Time{}, false, nil
	}
	return ParseTimestamp(s, loc)
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without a zone
// offset are taken to be in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool, error) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("parsing timestamp %q: unrecognised layout", s)
}

// optionalTime is parse for fields where a malformed value is treated as
// absent.
func (r rawTime) optionalTime(loc *time.Location) *time.Time {
	t, ok, err := r.parse(loc)
	if err != nil || !ok {
		return nil
	}
	return &t
}
