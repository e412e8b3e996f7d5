// Package tui is the terminal front end: it maps keys to coordinator
// actions and renders the coordinator's state.
package tui

import (
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/coordinator"
	"cryptodash/internal/domain"
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	coord   *coordinator.Coordinator
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	logger  *slog.Logger
	backend string

	viewport      viewport.Model
	ready         bool
	width, height int

	selected  int   // highlighted card
	dayRanges []int // chart ranges cycled by the days key
}

// New creates the model. dayRanges must contain defaultDays.
func New(coord *coordinator.Coordinator, dayRanges []int, backend string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sectionStyle

	return Model{
		coord:     coord,
		keys:      defaultKeys(),
		help:      help.New(),
		spinner:   sp,
		logger:    logger,
		backend:   backend,
		dayRanges: dayRanges,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coord.Init(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.coord.Teardown()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.coord.Update(msg))
	}

	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.coord.State()

	actions := []struct {
		binding key.Binding
		action  coordinator.Action
	}{
		{m.keys.Refresh, coordinator.ActionRefreshPrices},
		{m.keys.Analysis, coordinator.ActionLoadAnalysis},
		{m.keys.Alerts, coordinator.ActionLoadAlerts},
		{m.keys.External, coordinator.ActionLoadExternal},
		{m.keys.Status, coordinator.ActionLoadSchedulerStatus},
		{m.keys.Network, coordinator.ActionCollaborativeAnalysis},
		{m.keys.Force, coordinator.ActionForceAnalysis},
		{m.keys.Voice, coordinator.ActionToggleVoice},
		{m.keys.SpeakAnalysis, coordinator.ActionSpeakAnalysis},
		{m.keys.SpeakNetwork, coordinator.ActionSpeakNetwork},
		{m.keys.Dismiss, coordinator.ActionDismissError},
	}
	for _, a := range actions {
		if key.Matches(msg, a.binding) {
			return m.coord.Dispatch(a.action)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < len(st.Cards)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Chart):
		if m.selected < len(st.Cards) {
			return m.coord.SelectSymbol(st.Cards[m.selected].Key)
		}
	case key.Matches(msg, m.keys.NextSymbol):
		return m.coord.SelectSymbol(m.nextSupported())
	case key.Matches(msg, m.keys.Days):
		return m.coord.SelectDays(m.nextDays())
	case key.Matches(msg, m.keys.ClearChart):
		return m.coord.SelectSymbol("")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// nextSupported cycles the chart symbol through the supported list, with
// "no selection" between the last asset and the first.
func (m *Model) nextSupported() string {
	st := m.coord.State()
	cur := st.Chart.Selection().Symbol
	if len(st.Supported) == 0 {
		return cur
	}
	i := slices.IndexFunc(st.Supported, func(a domain.SupportedAsset) bool { return a.Symbol == cur })
	if i == len(st.Supported)-1 {
		return ""
	}
	return st.Supported[i+1].Symbol
}

func (m *Model) nextDays() int {
	cur := m.coord.State().Chart.Selection().Days
	i := slices.Index(m.dayRanges, cur)
	return m.dayRanges[(i+1)%len(m.dayRanges)]
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	vpHeight := max(m.height-m.chromeHeight(), 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.viewport.SetContent(m.renderContent())
}

// chromeHeight is the number of rows outside the viewport.
func (m *Model) chromeHeight() int {
	h := 2 // header, banner row
	if m.help.ShowAll {
		return h + len(m.keys.FullHelp()[0])
	}
	return h + 1
}
