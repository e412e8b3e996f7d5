package coordinator

import "strings"

// Fixed phrases sent to the backend's speech engine.
const (
	PhraseForceAnalysis = "Full analysis executed successfully"
	PhraseCollaborative = "Expanded collaborative analysis completed. Nine specialized AIs have analyzed the market."
	PhraseNetworkDone   = "Collaborative analysis completed successfully by the specialized AI network"
	PhraseVoiceOn       = "Voice system activated successfully"
)

const (
	summaryMarker        = "EXECUTIVE SUMMARY"
	recommendationMarker = "FINAL RECOMMENDATION"
	// recommendationTail is how many lines after the recommendation marker
	// line are spoken.
	recommendationTail = 2
)

// NetworkSummary picks the spoken part of a collaborative analysis: the
// lines from the executive summary marker through the final recommendation
// marker and the two lines after it, joined with spaces and stripped of
// '=' and '-'. Reports without both markers, in that order, yield
// PhraseNetworkDone.
func NetworkSummary(text string) string {
	lines := strings.Split(text, "\n")
	start, rec := -1, -1
	for i, l := range lines {
		if start < 0 && strings.Contains(l, summaryMarker) {
			start = i
		}
		if rec < 0 && strings.Contains(l, recommendationMarker) {
			rec = i
		}
	}
	if start < 0 || rec < start {
		return PhraseNetworkDone
	}

	end := min(rec+recommendationTail+1, len(lines))
	joined := strings.Join(lines[start:end], " ")
	return strings.NewReplacer("=", "", "-", "").Replace(joined)
}
