package coordinator

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/panel"
)

// Action is a user-triggered control.
type Action int

const (
	ActionRefreshPrices Action = iota + 1
	ActionLoadAnalysis
	ActionLoadAlerts
	ActionLoadExternal
	ActionToggleVoice
	ActionForceAnalysis
	ActionLoadSchedulerStatus
	ActionCollaborativeAnalysis
	ActionSpeakAnalysis
	ActionSpeakNetwork
	ActionDismissError
)

var actionNames = map[Action]string{
	ActionRefreshPrices:         "refresh_prices",
	ActionLoadAnalysis:          "load_analysis",
	ActionLoadAlerts:            "load_alerts",
	ActionLoadExternal:          "load_external",
	ActionToggleVoice:           "toggle_voice",
	ActionForceAnalysis:         "force_analysis",
	ActionLoadSchedulerStatus:   "load_scheduler_status",
	ActionCollaborativeAnalysis: "collaborative_analysis",
	ActionSpeakAnalysis:         "speak_analysis",
	ActionSpeakNetwork:          "speak_network",
	ActionDismissError:          "dismiss_error",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Delays for chained follow-ups.
const (
	ReloadAnalysisDelay = 2 * time.Second
	CollaborativeDelay  = time.Second
)

// handler runs one action against the coordinator's state and returns the
// side effect to perform.
type handler func(c *Coordinator) tea.Cmd

func dispatchTable() map[Action]handler {
	return map[Action]handler{
		ActionRefreshPrices:         (*Coordinator).loadPrices,
		ActionLoadAnalysis:          (*Coordinator).loadAnalysis,
		ActionLoadAlerts:            (*Coordinator).loadAlerts,
		ActionLoadExternal:          (*Coordinator).loadExternal,
		ActionToggleVoice:           (*Coordinator).toggleVoice,
		ActionForceAnalysis:         (*Coordinator).forceAnalysis,
		ActionLoadSchedulerStatus:   (*Coordinator).loadSchedulerStatus,
		ActionCollaborativeAnalysis: (*Coordinator).collaborativeAnalysis,
		ActionSpeakAnalysis:         (*Coordinator).speakAnalysis,
		ActionSpeakNetwork:          (*Coordinator).speakNetwork,
		ActionDismissError: func(c *Coordinator) tea.Cmd {
			c.state.Banner = ""
			c.priceBanner = false
			return nil
		},
	}
}

// call runs fn off the event loop with the request timeout applied.
func (c *Coordinator) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	base, timeout := c.ctx, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (c *Coordinator) loadSupported() tea.Cmd {
	return c.call(func(ctx context.Context) tea.Msg {
		assets, err := c.backend.Supported(ctx)
		return supportedMsg{assets: assets, err: err}
	})
}

func (c *Coordinator) loadPrices() tea.Cmd {
	c.state.PricesLoading = true
	if c.priceBanner {
		c.state.Banner = ""
		c.priceBanner = false
	}
	return c.call(func(ctx context.Context) tea.Msg {
		snap, err := c.backend.Prices(ctx)
		return pricesMsg{snap: snap, err: err}
	})
}

func (c *Coordinator) loadAnalysis() tea.Cmd {
	c.state.Panel.Request(panel.Analysis, "AI Analysis", "Generating intelligent analysis...")
	return c.call(func(ctx context.Context) tea.Msg {
		text, err := c.backend.Analysis(ctx)
		return analysisMsg{text: text, err: err}
	})
}

func (c *Coordinator) loadAlerts() tea.Cmd {
	c.state.Panel.Request(panel.Alerts, "Active Alerts", "Loading system alerts...")
	return c.call(func(ctx context.Context) tea.Msg {
		r, err := c.backend.Alerts(ctx)
		return alertsMsg{report: r, err: err}
	})
}

func (c *Coordinator) loadExternal() tea.Cmd {
	c.state.Panel.Request(panel.External, "External Sources", "Analyzing Reddit and CryptoPanic...")
	return c.call(func(ctx context.Context) tea.Msg {
		text, err := c.backend.ExternalSources(ctx)
		return externalMsg{text: text, err: err}
	})
}

func (c *Coordinator) loadSchedulerStatus() tea.Cmd {
	c.state.Panel.Request(panel.Status, "System Status", "Checking system status...")
	return c.call(func(ctx context.Context) tea.Msg {
		st, err := c.backend.SchedulerStatus(ctx)
		return statusMsg{status: st, err: err}
	})
}

// forceAnalysis shows the loading state under the Status panel. Success
// is followed by a delayed analysis reload, so the Status panel itself is
// never resolved by this action.
func (c *Coordinator) forceAnalysis() tea.Cmd {
	c.state.Panel.Request(panel.Status, "Forced Analysis", "Running full system analysis...")
	return c.call(func(ctx context.Context) tea.Msg {
		return forceAnalysisMsg{err: c.backend.ForceAnalysis(ctx)}
	})
}

func (c *Coordinator) collaborativeAnalysis() tea.Cmd {
	c.state.Panel.Request(panel.AiNetwork, "Expanded AI Network", "Running analysis with 9 specialized AIs...")
	return c.call(func(ctx context.Context) tea.Msg {
		text, err := c.backend.CollaborativeAnalysis(ctx)
		return collaborativeMsg{text: text, err: err}
	})
}

func (c *Coordinator) toggleVoice() tea.Cmd {
	return c.call(func(ctx context.Context) tea.Msg {
		enabled, err := c.backend.ToggleVoice(ctx)
		return toggleVoiceMsg{enabled: enabled, err: err}
	})
}

func (c *Coordinator) speakAnalysis() tea.Cmd {
	text := c.state.Panel.Text(panel.Analysis)
	if text == "" {
		return nil
	}
	return c.speak(text)
}

func (c *Coordinator) speakNetwork() tea.Cmd {
	text := c.state.Panel.Text(panel.AiNetwork)
	if text == "" {
		return nil
	}
	return c.speak(NetworkSummary(text))
}

func (c *Coordinator) speak(text string) tea.Cmd {
	return c.call(func(ctx context.Context) tea.Msg {
		return spokenMsg{text: text, err: c.backend.Speak(ctx, text)}
	})
}
