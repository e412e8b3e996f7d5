// Package dataclient wraps the analytics backend's HTTP API. Each operation
// performs one round trip and returns a typed payload or a *Failure; no
// retries are attempted.
package dataclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"cryptodash/internal/domain"
)

// Client talks to the analytics backend.
type Client struct {
	http *resty.Client
	loc  *time.Location
	log  *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// Location interprets timestamps sent without a zone. Defaults to
	// time.Local.
	Location *time.Location

	Logger *slog.Logger
}

// NewClient creates a client for the backend at opts.BaseURL.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, loc: opts.Location, log: opts.Logger}
}

// BaseURL returns the backend address the client targets.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Location returns the zone used for timestamps sent without an offset.
func (c *Client) Location() *time.Location {
	return c.loc
}

// do executes a request and decodes the body into out regardless of HTTP
// status. A body without success:true is an application failure.
func (c *Client) do(ctx context.Context, op Op, req *resty.Request, method, path string, out responder) error {
	reqID := uuid.NewString()
	// Error pages are not always labelled JSON; decode them anyway.
	req.SetContext(ctx).
		SetHeader("X-Request-ID", reqID).
		ForceContentType("application/json").
		SetResult(out).
		SetError(out)

	start := time.Now()
	resp, err := req.Execute(method, path)
	if resp == nil || resp.RawResponse == nil {
		if err == nil {
			err = fmt.Errorf("no response")
		}
		c.log.Warn("backend request failed", "op", op, "request_id", reqID, "error", err)
		return transportFailure(op, err)
	}

	status := resp.StatusCode()
	c.log.Debug("backend request", "op", op, "request_id", reqID,
		"status", status, "elapsed", time.Since(start))

	if err != nil {
		c.log.Warn("decoding backend response", "op", op, "request_id", reqID,
			"status", status, "error", err)
		return applicationFailure(op, status, "", err)
	}
	if !out.ok() {
		c.log.Info("backend reported failure", "op", op, "request_id", reqID,
			"status", status, "message", out.message())
		return applicationFailure(op, status, out.message(), nil)
	}
	return nil
}

func (c *Client) get(ctx context.Context, op Op, path string, out responder) error {
	return c.do(ctx, op, c.http.R(), http.MethodGet, path, out)
}

func (c *Client) post(ctx context.Context, op Op, path string, body any, out responder) error {
	req := c.http.R()
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return c.do(ctx, op, req, http.MethodPost, path, out)
}

func invalid(op Op, format string, args ...any) *Failure {
	return &Failure{Op: op, Kind: KindApplication, Message: fmt.Sprintf(format, args...)}
}

// ---------------------------------------------------------------------------
// Prices and history
// ---------------------------------------------------------------------------

// Supported lists the assets the backend tracks.
func (c *Client) Supported(ctx context.Context) ([]domain.SupportedAsset, error) {
	var out supportedResponse
	if err := c.get(ctx, OpSupported, "/api/crypto/supported", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PriceSnapshot is a full replacement of the asset map plus the backend's
// update time (zero when the backend did not report one).
type PriceSnapshot struct {
	Assets    domain.AssetMap
	Timestamp time.Time
}

// Prices fetches current prices for every supported asset.
func (c *Client) Prices(ctx context.Context) (PriceSnapshot, error) {
	var out pricesResponse
	if err := c.get(ctx, OpPrices, "/api/crypto/prices", &out); err != nil {
		return PriceSnapshot{}, err
	}
	snap := PriceSnapshot{Assets: out.Data}
	if snap.Assets == nil {
		snap.Assets = domain.AssetMap{}
	}
	if ts := out.Timestamp.optionalTime(c.loc); ts != nil {
		snap.Timestamp = *ts
	}
	return snap, nil
}

// Price fetches the current price of a single asset.
func (c *Client) Price(ctx context.Context, symbol string) (domain.CryptoAsset, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.CryptoAsset{}, invalid(OpPrice, "symbol is required")
	}
	var out priceResponse
	req := c.http.R().SetPathParam("symbol", symbol)
	if err := c.do(ctx, OpPrice, req, http.MethodGet, "/api/crypto/prices/{symbol}", &out); err != nil {
		return domain.CryptoAsset{}, err
	}
	return out.Data, nil
}

// History is an ordered price series for one asset.
type History struct {
	Symbol string
	Days   int
	Points []domain.PricePoint
}

// History fetches days of price history for symbol.
func (c *Client) History(ctx context.Context, symbol string, days int) (History, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return History{}, invalid(OpHistory, "symbol is required")
	}
	if days < 1 {
		return History{}, invalid(OpHistory, "days must be at least 1, got %d", days)
	}

	var out historyResponse
	req := c.http.R().
		SetPathParam("symbol", symbol).
		SetQueryParam("days", strconv.Itoa(days))
	if err := c.do(ctx, OpHistory, req, http.MethodGet, "/api/crypto/history/{symbol}", &out); err != nil {
		return History{}, err
	}

	h := History{Symbol: out.Symbol, Days: days, Points: make([]domain.PricePoint, 0, len(out.Data))}
	if h.Symbol == "" {
		h.Symbol = strings.ToUpper(symbol)
	}
	for _, p := range out.Data {
		ts, ok, err := p.Timestamp.parse(c.loc)
		if err != nil || !ok {
			return History{}, applicationFailure(OpHistory, http.StatusOK, "", err)
		}
		h.Points = append(h.Points, domain.PricePoint{Timestamp: ts, Price: p.Price})
	}
	return h, nil
}

// ---------------------------------------------------------------------------
// Analysis panels
// ---------------------------------------------------------------------------

// Analysis fetches the AI market analysis text.
func (c *Client) Analysis(ctx context.Context) (string, error) {
	var out analysisResponse
	if err := c.get(ctx, OpAnalysis, "/api/crypto/analysis", &out); err != nil {
		return "", err
	}
	return out.Analysis, nil
}

// Alerts fetches active alert counts and the alert summary.
func (c *Client) Alerts(ctx context.Context) (domain.AlertsReport, error) {
	var out alertsResponse
	if err := c.get(ctx, OpAlerts, "/api/alerts", &out); err != nil {
		return domain.AlertsReport{}, err
	}
	return domain.AlertsReport{
		Active:   out.ActiveAlerts,
		Critical: out.CriticalAlerts,
		Summary:  out.Summary,
	}, nil
}

// ExternalSources fetches the external-source sentiment text.
func (c *Client) ExternalSources(ctx context.Context) (string, error) {
	var out externalResponse
	if err := c.get(ctx, OpExternal, "/api/external-sources", &out); err != nil {
		return "", err
	}
	return out.SentimentAnalysis, nil
}

// CollaborativeAnalysis runs the backend's multi-source analysis.
func (c *Client) CollaborativeAnalysis(ctx context.Context) (string, error) {
	var out collaborativeResponse
	if err := c.post(ctx, OpCollaborative, "/api/ai-network/collaborative-analysis", nil, &out); err != nil {
		return "", err
	}
	return out.CollaborativeAnalysis, nil
}

// ---------------------------------------------------------------------------
// Voice and scheduler
// ---------------------------------------------------------------------------

// ToggleVoice flips the backend's voice system and returns the new state.
func (c *Client) ToggleVoice(ctx context.Context) (bool, error) {
	var out toggleVoiceResponse
	if err := c.post(ctx, OpToggleVoice, "/api/voice/toggle", nil, &out); err != nil {
		return false, err
	}
	return out.VoiceEnabled, nil
}

// Speak asks the backend to speak text.
func (c *Client) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return invalid(OpSpeak, "text is required")
	}
	var out envelope
	return c.post(ctx, OpSpeak, "/api/voice/speak", speakRequest{Text: text}, &out)
}

// ForceAnalysis triggers an immediate backend analysis run.
func (c *Client) ForceAnalysis(ctx context.Context) error {
	var out envelope
	return c.post(ctx, OpForceAnalysis, "/api/scheduler/force-analysis", nil, &out)
}

// SchedulerStatus fetches the backend scheduler and voice status.
func (c *Client) SchedulerStatus(ctx context.Context) (domain.SystemStatus, error) {
	var out statusResponse
	if err := c.get(ctx, OpSchedulerStatus, "/api/scheduler/status", &out); err != nil {
		return domain.SystemStatus{}, err
	}
	sched := out.SchedulerStatus.SchedulerStatus
	sched.LastAnalysisTime = out.SchedulerStatus.LastAnalysisTime.optionalTime(c.loc)
	sched.NextAnalysis = out.SchedulerStatus.NextAnalysis.optionalTime(c.loc)
	return domain.SystemStatus{Scheduler: sched, Voice: out.VoiceStatus}, nil
}

// Health calls the backend's health-check endpoint.
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	var out healthResponse
	if err := c.get(ctx, OpHealth, "/api/status", &out); err != nil {
		return domain.HealthStatus{}, err
	}
	h := out.HealthStatus
	h.LastUpdate = out.LastUpdate.optionalTime(c.loc)
	return h, nil
}
