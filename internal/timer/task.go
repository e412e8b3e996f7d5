package timer

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Task is a deferred message delivery that can be cancelled before it
// fires.
type Task struct {
	ID    uint64
	Name  string
	Delay time.Duration
	Msg   tea.Msg

	fire   <-chan time.Time
	cancel chan struct{}
	once   sync.Once
}

// FiredMsg wraps the payload of a task once its delay has elapsed.
type FiredMsg struct {
	TaskID uint64
	Msg    tea.Msg
}

// Cancel prevents the task from firing. Safe to call more than once.
func (t *Task) Cancel() {
	t.once.Do(func() { close(t.cancel) })
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	select {
	case <-t.cancel:
		return true
	default:
		return false
	}
}

// Cmd waits for the delay and yields a FiredMsg, or nil if the task was
// cancelled first.
func (t *Task) Cmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-t.fire:
			return FiredMsg{TaskID: t.ID, Msg: t.Msg}
		case <-t.cancel:
			return nil
		}
	}
}

// Tasks tracks pending deferred tasks so they can be cancelled together.
type Tasks struct {
	clock Clock

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*Task
}

// NewTasks creates an empty task set on clock.
func NewTasks(clock Clock) *Tasks {
	return &Tasks{clock: clock, pending: make(map[uint64]*Task)}
}

// Schedule arms a task that delivers msg after delay. The delay starts
// now, not when the returned task's Cmd begins running.
func (s *Tasks) Schedule(name string, delay time.Duration, msg tea.Msg) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &Task{
		ID:     s.nextID,
		Name:   name,
		Delay:  delay,
		Msg:    msg,
		fire:   s.clock.After(delay),
		cancel: make(chan struct{}),
	}
	s.pending[t.ID] = t
	return t
}

// Done removes a fired task from the pending set and reports whether it
// was still pending.
func (s *Tasks) Done(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	return !t.Cancelled()
}

// Pending returns the tasks that have neither fired nor been cancelled,
// in scheduling order.
func (s *Tasks) Pending() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Task, 0, len(s.pending))
	for _, t := range s.pending {
		if !t.Cancelled() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CancelAll cancels every pending task.
func (s *Tasks) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.pending {
		t.Cancel()
		delete(s.pending, id)
	}
}
