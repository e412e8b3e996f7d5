// Package refresh drives the recurring background price refresh.
package refresh

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/timer"
)

// DefaultInterval is the price refresh period.
const DefaultInterval = 120 * time.Second

// TickMsg is delivered to the event loop each time the interval elapses.
type TickMsg struct {
	At time.Time
}

// Scheduler emits a TickMsg every interval until stopped. Each tick is
// re-armed by the event loop calling Next, so ticks never pile up behind
// a slow handler.
type Scheduler struct {
	clock    timer.Clock
	interval time.Duration

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	once    sync.Once
}

// New creates a stopped scheduler. A non-positive interval selects
// DefaultInterval.
func New(clock timer.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{clock: clock, interval: interval, stop: make(chan struct{})}
}

// Interval returns the refresh period.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start arms the first tick. It returns nil if the scheduler was already
// started or has been stopped.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped() {
		return nil
	}
	s.started = true
	return s.arm()
}

// Next re-arms the timer after a tick has been handled. It returns nil once
// the scheduler is stopped.
func (s *Scheduler) Next() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.stopped() {
		return nil
	}
	return s.arm()
}

// Stop halts the scheduler. Calling it more than once, or before Start, is
// harmless.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// Running reports whether ticks are being produced.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.stopped()
}

func (s *Scheduler) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *Scheduler) arm() tea.Cmd {
	fire := s.clock.After(s.interval)
	stop := s.stop
	return func() tea.Msg {
		select {
		case at := <-fire:
			return TickMsg{At: at}
		case <-stop:
			return nil
		}
	}
}
