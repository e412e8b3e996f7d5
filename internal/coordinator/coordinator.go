// Package coordinator is the dashboard's view-state coordinator. It binds
// user actions to backend calls, sequences chained follow-ups and reflects
// results into the panel and chart controllers.
//
// All state is mutated from Update, which the bubbletea program calls on
// a single goroutine. Backend calls run as tea.Cmd functions and report
// back through messages.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/chart"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/dataclient"
	"cryptodash/internal/domain"
	"cryptodash/internal/panel"
	"cryptodash/internal/refresh"
	"cryptodash/internal/timer"
)

// Backend is the subset of the data client the coordinator drives.
type Backend interface {
	chart.HistoryFetcher
	Supported(ctx context.Context) ([]domain.SupportedAsset, error)
	Prices(ctx context.Context) (dataclient.PriceSnapshot, error)
	Analysis(ctx context.Context) (string, error)
	Alerts(ctx context.Context) (domain.AlertsReport, error)
	ExternalSources(ctx context.Context) (string, error)
	ToggleVoice(ctx context.Context) (bool, error)
	Speak(ctx context.Context, text string) error
	ForceAnalysis(ctx context.Context) error
	SchedulerStatus(ctx context.Context) (domain.SystemStatus, error)
	CollaborativeAnalysis(ctx context.Context) (string, error)
}

// AppState is everything the view renders.
type AppState struct {
	Assets        domain.AssetMap
	Cards         []dashboard.Card
	LastUpdated   time.Time
	PricesLoading bool
	Supported     []domain.SupportedAsset
	Voice         bool
	// Banner is the single error channel; "" hides it.
	Banner string

	Panel *panel.Controller
	Chart *chart.Controller
}

// Options configures a Coordinator.
type Options struct {
	Backend         Backend
	Engine          chart.Engine
	Clock           timer.Clock
	RefreshInterval time.Duration
	DefaultDays     int
	Timeout         time.Duration
	Logger          *slog.Logger
}

// Coordinator owns AppState and the deferred work hanging off it.
type Coordinator struct {
	state    AppState
	backend  Backend
	clock    timer.Clock
	tasks    *timer.Tasks
	refresh  *refresh.Scheduler
	handlers map[Action]handler

	// priceBanner is set while Banner holds a price-load error, the only
	// kind a later price load may clear.
	priceBanner bool
	timeout  time.Duration
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a coordinator. Nothing is fetched until Init's command runs.
func New(opts Options) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = timer.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 7
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		state: AppState{
			Assets: domain.AssetMap{},
			Panel:  panel.New(),
			Chart: chart.NewController(ctx, opts.Engine, opts.Backend, chart.Options{
				DefaultDays: opts.DefaultDays,
				Timeout:     opts.Timeout,
				Logger:      opts.Logger,
			}),
		},
		backend:  opts.Backend,
		clock:    opts.Clock,
		tasks:    timer.NewTasks(opts.Clock),
		refresh:  refresh.New(opts.Clock, opts.RefreshInterval),
		handlers: dispatchTable(),
		timeout:  opts.Timeout,
		log:      opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current view state. The controllers are shared, not
// copied.
func (c *Coordinator) State() *AppState { return &c.state }

// Pending returns the deferred tasks that have not fired yet.
func (c *Coordinator) Pending() []*timer.Task { return c.tasks.Pending() }

// RefreshRunning reports whether the background refresh is active.
func (c *Coordinator) RefreshRunning() bool { return c.refresh.Running() }

// Init loads the supported-asset list (prices follow once it arrives) and
// starts the background refresh.
func (c *Coordinator) Init() tea.Cmd {
	return tea.Batch(c.loadSupported(), c.refresh.Start())
}

// Dispatch runs action through the dispatch table.
func (c *Coordinator) Dispatch(action Action) tea.Cmd {
	h, ok := c.handlers[action]
	if !ok {
		c.log.Warn("unknown action", "action", action)
		return nil
	}
	c.log.Debug("action", "action", action)
	return h(c)
}

// SelectSymbol points the chart at symbol; "" clears it.
func (c *Coordinator) SelectSymbol(symbol string) tea.Cmd {
	return c.state.Chart.SetSymbol(symbol)
}

// SelectDays changes the chart range.
func (c *Coordinator) SelectDays(days int) tea.Cmd {
	return c.state.Chart.SetDays(days)
}

// Update applies a message and returns the follow-up command.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ActionMsg:
		return c.Dispatch(msg.Action)

	case refresh.TickMsg:
		c.log.Debug("refresh tick", "at", msg.At)
		return tea.Batch(c.loadPrices(), c.refresh.Next())

	case timer.FiredMsg:
		if !c.tasks.Done(msg.TaskID) {
			return nil
		}
		return c.Update(msg.Msg)

	case chart.HistoryMsg:
		c.state.Chart.Apply(msg)
		return nil

	case supportedMsg:
		if msg.err != nil {
			c.log.Warn("loading supported assets", "error", msg.err)
		} else {
			c.state.Supported = msg.assets
		}
		return c.loadPrices()

	case pricesMsg:
		c.state.PricesLoading = false
		if msg.err != nil {
			c.log.Warn("loading prices", "error", msg.err)
			c.state.Banner = dataclient.MessageOf(msg.err, dataclient.ConnectivityMessage)
			c.priceBanner = true
			return nil
		}
		c.state.Assets = msg.snap.Assets
		c.state.Cards = dashboard.BuildCards(msg.snap.Assets)
		if !msg.snap.Timestamp.IsZero() {
			c.state.LastUpdated = msg.snap.Timestamp
		}
		return nil

	case analysisMsg:
		if c.failed(dataclient.OpAnalysis, msg.err) {
			return nil
		}
		c.resolve(panel.Analysis, "Intelligent Analysis", "AI-generated analysis", msg.text)
		return nil

	case alertsMsg:
		if c.failed(dataclient.OpAlerts, msg.err) {
			return nil
		}
		c.resolve(panel.Alerts, "Alert System",
			fmt.Sprintf("%d active alerts", msg.report.Active),
			alertsBody(msg.report, c.clock.Now()))
		return nil

	case externalMsg:
		if c.failed(dataclient.OpExternal, msg.err) {
			return nil
		}
		c.resolve(panel.External, "External Sources Analysis", "Reddit + CryptoPanic + RSS", msg.text)
		return nil

	case statusMsg:
		if c.failed(dataclient.OpSchedulerStatus, msg.err) {
			return nil
		}
		c.resolve(panel.Status, "System Status", "Automatic monitoring system", statusBody(msg.status))
		return nil

	case forceAnalysisMsg:
		if c.failed(dataclient.OpForceAnalysis, msg.err) {
			return nil
		}
		reload := c.tasks.Schedule("reload-analysis", ReloadAnalysisDelay, ActionMsg{Action: ActionLoadAnalysis})
		return tea.Batch(reload.Cmd(), c.speak(PhraseForceAnalysis))

	case collaborativeMsg:
		if c.failed(dataclient.OpCollaborative, msg.err) {
			return nil
		}
		c.resolve(panel.AiNetwork, "Expanded AI Network", "9 specialized AIs consulted", msg.text)
		announce := c.tasks.Schedule("announce-collaborative", CollaborativeDelay, speakMsg{text: PhraseCollaborative})
		return announce.Cmd()

	case toggleVoiceMsg:
		if c.failed(dataclient.OpToggleVoice, msg.err) {
			return nil
		}
		c.state.Voice = msg.enabled
		if msg.enabled {
			return c.speak(PhraseVoiceOn)
		}
		return nil

	case speakMsg:
		return c.speak(msg.text)

	case spokenMsg:
		if msg.err != nil {
			c.log.Warn("voice synthesis failed", "error", msg.err)
		}
		return nil
	}
	return nil
}

// Teardown stops the refresh, cancels deferred tasks and in-flight calls,
// and destroys the chart. Safe to call more than once.
func (c *Coordinator) Teardown() {
	c.refresh.Stop()
	c.tasks.CancelAll()
	c.cancel()
	c.state.Chart.Teardown()
}

// failed surfaces err on the banner. The panel is left as it is, so a
// failure while loading keeps the loading state on screen.
func (c *Coordinator) failed(op dataclient.Op, err error) bool {
	if err == nil {
		return false
	}
	c.log.Warn("backend call failed", "op", op, "error", err)
	c.state.Banner = dataclient.MessageOf(err, op.GenericMessage())
	c.priceBanner = false
	return true
}

func (c *Coordinator) resolve(kind panel.Kind, title, subtitle, body string) {
	if !c.state.Panel.Resolve(kind, title, subtitle, body) {
		c.log.Debug("dropping superseded panel result", "panel", kind, "target", c.state.Panel.Target())
	}
}
