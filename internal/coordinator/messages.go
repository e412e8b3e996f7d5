package coordinator

import (
	"cryptodash/internal/dataclient"
	"cryptodash/internal/domain"
)

// ActionMsg asks the coordinator to run a user action.
type ActionMsg struct {
	Action Action
}

type supportedMsg struct {
	assets []domain.SupportedAsset
	err    error
}

type pricesMsg struct {
	snap dataclient.PriceSnapshot
	err  error
}

type analysisMsg struct {
	text string
	err  error
}

type alertsMsg struct {
	report domain.AlertsReport
	err    error
}

type externalMsg struct {
	text string
	err  error
}

type statusMsg struct {
	status domain.SystemStatus
	err    error
}

type collaborativeMsg struct {
	text string
	err  error
}

type forceAnalysisMsg struct {
	err error
}

type toggleVoiceMsg struct {
	enabled bool
	err     error
}

// speakMsg requests speech; spokenMsg reports how it went.
type speakMsg struct {
	text string
}

type spokenMsg struct {
	text string
	err  error
}
