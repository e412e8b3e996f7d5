package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cryptodash/internal/chart"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/panel"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	st := m.coord.State()

	updated := "never"
	if !st.LastUpdated.IsZero() {
		updated = st.LastUpdated.Format("1/2/2006, 3:04:05 PM")
	}
	voice := "voice off"
	if st.Voice {
		voice = voiceOnStyle.Render("voice on")
	}
	loading := ""
	if st.PricesLoading {
		loading = "  " + m.spinner.View()
	}
	headerText := fmt.Sprintf(" cryptodash  %s    updated: %s%s", m.backend, updated, loading)
	header := headerStyle.Render(padOrTrunc(headerText, m.width-lipgloss.Width(voice)-1)) + " " + voice

	banner := ""
	if st.Banner != "" {
		banner = bannerStyle.Render(padOrTrunc(" ✖ "+st.Banner+"   (x to dismiss)", m.width))
	}

	footer := footerStyle.Render(padOrTrunc(" "+m.help.View(m.keys), m.width))
	if m.help.ShowAll {
		footer = m.help.View(m.keys)
	}

	return header + "\n" + banner + "\n" + m.viewport.View() + "\n" + footer
}

func (m Model) renderContent() string {
	var b strings.Builder
	m.renderCards(&b)
	b.WriteString("\n")
	m.renderChart(&b)
	b.WriteString("\n")
	m.renderPanel(&b)
	return b.String()
}

func (m Model) renderCards(b *strings.Builder) {
	st := m.coord.State()
	b.WriteString(sectionStyle.Render("Prices"))
	b.WriteString("\n")
	if len(st.Cards) == 0 {
		b.WriteString(dimStyle.Render("  No price data yet"))
		b.WriteString("\n")
		return
	}

	perRow := max(m.width/(cardStyle.GetWidth()+2), 1)
	var row []string
	for i, c := range st.Cards {
		row = append(row, renderCard(c, i == m.selected))
		if len(row) == perRow || i == len(st.Cards)-1 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = row[:0]
		}
	}
}

func renderCard(c dashboard.Card, selected bool) string {
	change := gainStyle.Render("▲ " + c.Change)
	if !c.Up {
		change = lossStyle.Render("▼ " + c.Change)
	}
	body := strings.Join([]string{
		titleStyle.Render(c.Name) + " " + dimStyle.Render(c.Symbol),
		priceStyle.Render(c.Price),
		change,
		dimStyle.Render("MCap ") + c.MarketCap,
		dimStyle.Render("Vol  ") + c.Volume,
	}, "\n")
	if selected {
		return cardSelectedStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func (m Model) renderChart(b *strings.Builder) {
	ch := m.coord.State().Chart
	sel := ch.Selection()

	title := "Price history"
	if sel.Symbol != "" {
		title = fmt.Sprintf("Price history  %s  %dd", strings.ToUpper(sel.Symbol), sel.Days)
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	switch {
	case ch.Loading():
		b.WriteString("  " + m.spinner.View() + " Loading chart...\n")
	case ch.Message() != "":
		b.WriteString(dimStyle.Render("  " + ch.Message()))
		b.WriteString("\n")
	case ch.Current() != nil:
		writeSpark(b, ch.Current().Spec(), m.width-4)
	}
}

func writeSpark(b *strings.Builder, spec chart.Spec, width int) {
	if len(spec.Values) == 0 || width <= 0 {
		b.WriteString(dimStyle.Render("  No data points"))
		b.WriteString("\n")
		return
	}
	lo, hi := spec.Values[0], spec.Values[0]
	for _, v := range spec.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	last := spec.Values[len(spec.Values)-1]

	b.WriteString("  " + dimStyle.Render(spec.SeriesLabel) + fmt.Sprintf("   low %s  high %s  last %s\n",
		chart.YTick(lo), chart.YTick(hi), chart.YTick(last)))
	b.WriteString("  " + sparkStyle.Render(sparkline(spec.Values, width)) + "\n")
	b.WriteString("  " + dimStyle.Render(tickLine(spec.Labels, spec.Ticks(), len(spec.Labels), width)) + "\n")
}

func (m Model) renderPanel(b *strings.Builder) {
	p := m.coord.State().Panel
	h := p.Header()

	icon := iconGlyphs[h.Icon]
	if h.Spinning {
		icon = m.spinner.View()
	}
	b.WriteString(icon + " " + titleStyle.Render(h.Title))
	if h.Subtitle != "" {
		b.WriteString("  " + dimStyle.Render(h.Subtitle))
	}
	b.WriteString("\n\n")

	body := p.Body()
	switch p.State() {
	case panel.Default:
		body = dimStyle.Render("Choose a panel: a analysis, l alerts, e external sources, s status, n AI network")
	case panel.Loading:
		body = dimStyle.Render(body)
	}
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 10)).Render(body))
	b.WriteString("\n")
}

func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	n := lipgloss.Width(s)
	if n >= width {
		r := []rune(s)
		if len(r) > width {
			r = r[:width]
		}
		return string(r)
	}
	return s + strings.Repeat(" ", width-n)
}
