package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	Refresh       key.Binding
	Analysis      key.Binding
	Alerts        key.Binding
	External      key.Binding
	Status        key.Binding
	Network       key.Binding
	Force         key.Binding
	Voice         key.Binding
	SpeakAnalysis key.Binding
	SpeakNetwork  key.Binding
	Left          key.Binding
	Right         key.Binding
	Chart         key.Binding
	NextSymbol    key.Binding
	Days          key.Binding
	ClearChart    key.Binding
	Dismiss       key.Binding
	Help          key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Analysis:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analysis")),
		Alerts:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "alerts")),
		External:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "external")),
		Status:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Network:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "ai network")),
		Force:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "force analysis")),
		Voice:         key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle voice")),
		SpeakAnalysis: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "speak analysis")),
		SpeakNetwork:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "speak network")),
		Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "select card")),
		Right:         key.NewBinding(key.WithKeys("right")),
		Chart:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "chart card")),
		NextSymbol:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next symbol")),
		Days:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "range")),
		ClearChart:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear chart")),
		Dismiss:       key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "dismiss error")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analysis, k.Alerts, k.Network, k.Chart, k.Days, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Analysis, k.Alerts, k.External, k.Status, k.Network},
		{k.Force, k.Voice, k.SpeakAnalysis, k.SpeakNetwork, k.Refresh},
		{k.Left, k.Chart, k.NextSymbol, k.Days, k.ClearChart},
		{k.Dismiss, k.Help, k.Quit},
	}
}
