package coordinator

import (
	"fmt"
	"strings"
	"time"

	"cryptodash/internal/dashboard"
	"cryptodash/internal/domain"
)

const loopNote = "Automatic loop: the system runs a full analysis every 60 minutes and checks alerts every 5 minutes."

func alertsBody(r domain.AlertsReport, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Active alerts:    %d\n", r.Active)
	fmt.Fprintf(&b, "Critical alerts:  %d\n", r.Critical)
	fmt.Fprintf(&b, "Last update:      %s\n", dashboard.FormatTime(now))
	if r.Summary != "" {
		b.WriteString("\n")
		b.WriteString(r.Summary)
	}
	return b.String()
}

func statusBody(st domain.SystemStatus) string {
	s, v := st.Scheduler, st.Voice

	var b strings.Builder
	b.WriteString("Auto-Scheduler\n")
	fmt.Fprintf(&b, "  Status:          %s\n", onOff(s.Running, "Active", "Inactive"))
	fmt.Fprintf(&b, "  Jobs:            %d\n", s.JobsCount)
	fmt.Fprintf(&b, "  Analyses (24h):  %d\n", s.AnalysisCount24h)
	fmt.Fprintf(&b, "  Last analysis:   %s\n", dashboard.FormatDateTime(s.LastAnalysisTime, "Never"))
	fmt.Fprintf(&b, "  Next analysis:   %s\n", dashboard.FormatDateTime(s.NextAnalysis, "N/A"))

	b.WriteString("\nVoice System\n")
	fmt.Fprintf(&b, "  Status:          %s\n", onOff(v.Enabled, "Enabled", "Disabled"))
	engine := "Not available"
	if v.EngineAvailable {
		engine = v.EngineType
	}
	fmt.Fprintf(&b, "  Engine:          %s\n", engine)
	fmt.Fprintf(&b, "  Language:        %s\n", v.Language)

	b.WriteString("\n")
	b.WriteString(loopNote)
	return b.String()
}

func onOff(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}
