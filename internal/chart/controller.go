package chart

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/dataclient"
)

// Placeholder is shown when no symbol is selected.
const Placeholder = "Select a cryptocurrency to view price history"

const failureMessage = "Failed to load price history"

// Instance is a live chart owned by the Controller.
type Instance interface {
	Spec() Spec
	Destroy()
}

// Engine builds chart instances.
type Engine interface {
	Build(spec Spec) (Instance, error)
}

// HistoryFetcher is the part of the data client the chart needs.
type HistoryFetcher interface {
	History(ctx context.Context, symbol string, days int) (dataclient.History, error)
}

// Selection is the chart's current symbol and day range. An empty Symbol
// means nothing is selected.
type Selection struct {
	Symbol string
	Days   int
}

// HistoryMsg carries the outcome of a history fetch back to the event
// loop.
type HistoryMsg struct {
	Symbol  string
	Days    int
	History dataclient.History
	Err     error
}

// Options configures a Controller.
type Options struct {
	DefaultDays int
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Controller owns the single chart instance. Like the rest of the view
// state it is driven from one goroutine.
type Controller struct {
	engine  Engine
	fetch   HistoryFetcher
	ctx     context.Context
	timeout time.Duration
	log     *slog.Logger

	sel     Selection
	current Instance
	message string
	loading bool
}

// NewController creates a controller with nothing selected. Fetches are
// bounded by opts.Timeout and abandoned when ctx is cancelled.
func NewController(ctx context.Context, engine Engine, fetch HistoryFetcher, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Controller{
		engine:  engine,
		fetch:   fetch,
		ctx:     ctx,
		timeout: opts.Timeout,
		log:     opts.Logger,
		sel:     Selection{Days: opts.DefaultDays},
		message: Placeholder,
	}
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection { return c.sel }

// Current returns the live instance, or nil.
func (c *Controller) Current() Instance { return c.current }

// Message returns the text shown in place of the chart, or "" when the
// chart area is not showing a message.
func (c *Controller) Message() string { return c.message }

// Loading reports whether a history fetch is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// SetSymbol changes the symbol and keeps the day range.
func (c *Controller) SetSymbol(symbol string) tea.Cmd {
	return c.SetSelection(symbol, c.sel.Days)
}

// SetDays changes the day range and keeps the symbol.
func (c *Controller) SetDays(days int) tea.Cmd {
	return c.SetSelection(c.sel.Symbol, days)
}

// SetSelection records the selection. With no symbol it tears the chart
// down and shows the placeholder; otherwise it returns the command that
// fetches history.
func (c *Controller) SetSelection(symbol string, days int) tea.Cmd {
	symbol = strings.TrimSpace(symbol)
	c.sel = Selection{Symbol: symbol, Days: days}

	if symbol == "" {
		c.message = Placeholder
		c.loading = false
		c.destroy()
		return nil
	}

	c.message = ""
	c.loading = true
	fetch, base, timeout := c.fetch, c.ctx, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		h, err := fetch.History(ctx, symbol, days)
		return HistoryMsg{Symbol: symbol, Days: days, History: h, Err: err}
	}
}

// Apply renders the outcome of a fetch. Results are applied in the order
// they arrive, so the last one to complete wins. Results arriving after
// the selection was cleared are dropped.
func (c *Controller) Apply(msg HistoryMsg) {
	if c.sel.Symbol == "" {
		c.log.Debug("dropping history for cleared chart", "symbol", msg.Symbol, "days", msg.Days)
		return
	}
	c.loading = false

	if msg.Err != nil {
		c.log.Warn("loading price history", "symbol", msg.Symbol, "days", msg.Days, "error", msg.Err)
		c.destroy()
		c.message = dataclient.MessageOf(msg.Err, failureMessage)
		return
	}

	c.destroy()
	inst, err := c.engine.Build(NewSpec(msg.History.Symbol, msg.Days, msg.History.Points))
	if err != nil {
		c.log.Error("building chart", "symbol", msg.Symbol, "error", err)
		c.message = failureMessage
		return
	}
	c.current = inst
	c.message = ""
}

// Teardown destroys the live instance, if any.
func (c *Controller) Teardown() {
	c.destroy()
}

func (c *Controller) destroy() {
	if c.current == nil {
		return
	}
	c.current.Destroy()
	c.current = nil
}
