package chart

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/dataclient"
	"cryptodash/internal/domain"
)

type fakeEngine struct {
	live   int
	built  []Spec
	failOn string
}

type fakeInstance struct {
	e         *fakeEngine
	spec      Spec
	destroyed bool
}

func (e *fakeEngine) Build(spec Spec) (Instance, error) {
	if spec.Symbol == e.failOn {
		return nil, errors.New("engine exploded")
	}
	e.live++
	e.built = append(e.built, spec)
	return &fakeInstance{e: e, spec: spec}, nil
}

func (i *fakeInstance) Spec() Spec { return i.spec }

func (i *fakeInstance) Destroy() {
	if !i.destroyed {
		i.destroyed = true
		i.e.live--
	}
}

type fakeFetcher struct {
	points []domain.PricePoint
	err    error
	calls  int
}

func (f *fakeFetcher) History(_ context.Context, symbol string, days int) (dataclient.History, error) {
	f.calls++
	if f.err != nil {
		return dataclient.History{}, f.err
	}
	return dataclient.History{Symbol: strings.ToUpper(symbol), Days: days, Points: f.points}, nil
}

func threePoints() []domain.PricePoint {
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return []domain.PricePoint{
		{Timestamp: base, Price: 42000},
		{Timestamp: base.Add(26 * time.Hour), Price: 42500.5},
		{Timestamp: base.Add(52 * time.Hour), Price: 41000},
	}
}

// run executes the command returned by a selection change and applies the
// result, the way the event loop would.
func run(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg, ok := cmd().(HistoryMsg)
	if !ok {
		t.Fatalf("command did not yield a HistoryMsg")
	}
	c.Apply(msg)
}

func TestNoSymbolShowsPlaceholder(t *testing.T) {
	eng := &fakeEngine{}
	fetch := &fakeFetcher{points: threePoints()}
	c := NewController(context.Background(), eng, fetch, Options{DefaultDays: 7})

	if cmd := c.SetSelection("", 7); cmd != nil {
		t.Error("SetSelection with no symbol returned a command")
	}
	if c.Message() != Placeholder {
		t.Errorf("Message() = %q, want placeholder", c.Message())
	}
	if fetch.calls != 0 {
		t.Errorf("fetch called %d times, want 0", fetch.calls)
	}
	if eng.live != 0 {
		t.Errorf("live = %d, want 0", eng.live)
	}
}

func TestAtMostOneLiveInstance(t *testing.T) {
	eng := &fakeEngine{}
	fetch := &fakeFetcher{points: threePoints()}
	c := NewController(context.Background(), eng, fetch, Options{DefaultDays: 7})

	steps := []Selection{
		{"btc", 7}, {"btc", 30}, {"eth", 1}, {"", 1}, {"eth", 90}, {"eth", 365},
	}
	for _, s := range steps {
		cmd := c.SetSelection(s.Symbol, s.Days)
		if cmd != nil {
			run(t, c, cmd)
		}
		if eng.live > 1 {
			t.Fatalf("after %+v live = %d, want <= 1", s, eng.live)
		}
	}
	if eng.live != 1 || c.Current() == nil {
		t.Errorf("live = %d, Current() = %v, want one instance", eng.live, c.Current())
	}

	c.Teardown()
	if eng.live != 0 || c.Current() != nil {
		t.Errorf("after Teardown live = %d", eng.live)
	}
}

func TestOverlappingResultsKeepOneInstance(t *testing.T) {
	eng := &fakeEngine{}
	fetch := &fakeFetcher{points: threePoints()}
	c := NewController(context.Background(), eng, fetch, Options{DefaultDays: 7})

	first := c.SetSelection("btc", 7)
	second := c.SetSelection("eth", 7)
	run(t, c, second)
	run(t, c, first)

	if eng.live != 1 {
		t.Fatalf("live = %d, want 1", eng.live)
	}
	if got := c.Current().Spec().Symbol; got != "BTC" {
		t.Errorf("current symbol = %q, want BTC (last to complete)", got)
	}
}

func TestFetchFailureDestroysChart(t *testing.T) {
	eng := &fakeEngine{}
	fetch := &fakeFetcher{points: threePoints()}
	c := NewController(context.Background(), eng, fetch, Options{DefaultDays: 7})

	cmd := c.SetSymbol("btc")
	run(t, c, cmd)
	if eng.live != 1 {
		t.Fatalf("live = %d, want 1", eng.live)
	}

	fetch.err = &dataclient.Failure{Op: dataclient.OpHistory, Kind: dataclient.KindApplication, Message: "Cryptocurrency not found"}
	cmd = c.SetDays(30)
	if c.Selection() != (Selection{Symbol: "btc", Days: 30}) {
		t.Errorf("Selection() = %+v", c.Selection())
	}
	run(t, c, cmd)

	if eng.live != 0 {
		t.Errorf("live = %d after failure, want 0", eng.live)
	}
	if c.Message() != "Cryptocurrency not found" {
		t.Errorf("Message() = %q", c.Message())
	}

	fetch.err = errors.New("boom")
	cmd = c.SetDays(7)
	run(t, c, cmd)
	if c.Message() != failureMessage {
		t.Errorf("Message() = %q, want %q", c.Message(), failureMessage)
	}
}

func TestEngineFailure(t *testing.T) {
	eng := &fakeEngine{failOn: "DOGE"}
	c := NewController(context.Background(), eng, &fakeFetcher{points: threePoints()}, Options{DefaultDays: 7})

	cmd := c.SetSymbol("doge")
	run(t, c, cmd)
	if c.Current() != nil || eng.live != 0 {
		t.Errorf("instance kept after engine failure")
	}
	if c.Message() != failureMessage {
		t.Errorf("Message() = %q", c.Message())
	}
}

func TestLabelGranularity(t *testing.T) {
	day := NewSpec("BTC", 1, threePoints())
	for i, want := range []string{"9:30:00 AM", "11:30:00 AM", "1:30:00 PM"} {
		if day.Labels[i] != want {
			t.Errorf("days=1 label[%d] = %q, want %q", i, day.Labels[i], want)
		}
	}

	month := NewSpec("BTC", 30, threePoints())
	for i, want := range []string{"3/1/2024", "3/2/2024", "3/3/2024"} {
		if month.Labels[i] != want {
			t.Errorf("days=30 label[%d] = %q, want %q", i, month.Labels[i], want)
		}
	}
	if month.SeriesLabel != "BTC Price (USD)" {
		t.Errorf("SeriesLabel = %q", month.SeriesLabel)
	}
	if got := month.Tooltip(1); got != "BTC: $42,500.50" {
		t.Errorf("Tooltip(1) = %q", got)
	}
}

func TestTickIndices(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {3, 3}, {8, 8}, {9, 5}, {24, 8}, {168, 8}, {365, 8},
	}
	for _, tt := range tests {
		got := TickIndices(tt.n, MaxTicks)
		if len(got) != tt.want {
			t.Errorf("TickIndices(%d) has %d ticks, want %d", tt.n, len(got), tt.want)
		}
		if len(got) > MaxTicks {
			t.Errorf("TickIndices(%d) exceeds cap: %v", tt.n, got)
		}
		if len(got) > 0 && got[0] != 0 {
			t.Errorf("TickIndices(%d) starts at %d, want 0", tt.n, got[0])
		}
	}
}

func TestEchartsEngineExport(t *testing.T) {
	dir := t.TempDir()
	eng := &EchartsEngine{ExportDir: dir}

	inst, err := eng.Build(NewSpec("BTC", 7, threePoints()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ei := inst.(*EchartsInstance)
	data, err := os.ReadFile(ei.Path())
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "BTC Price (USD)") {
		t.Error("exported page does not mention the series label")
	}

	var buf bytes.Buffer
	if err := ei.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	inst.Destroy()
	if err := ei.Render(&buf); err == nil {
		t.Error("Render after Destroy should fail")
	}
}

func TestResultAfterClearIsDropped(t *testing.T) {
	eng := &fakeEngine{}
	c := NewController(context.Background(), eng, &fakeFetcher{points: threePoints()}, Options{DefaultDays: 7})

	pending := c.SetSelection("btc", 7)
	c.SetSelection("", 7)
	run(t, c, pending)

	if eng.live != 0 || c.Current() != nil {
		t.Errorf("live = %d after clearing the selection, want 0", eng.live)
	}
	if c.Message() != Placeholder {
		t.Errorf("Message() = %q, want placeholder", c.Message())
	}
}

type ctxFetcher struct {
	err      error
	deadline time.Duration
}

func (f *ctxFetcher) History(ctx context.Context, symbol string, days int) (dataclient.History, error) {
	f.err = ctx.Err()
	if d, ok := ctx.Deadline(); ok {
		f.deadline = time.Until(d)
	}
	return dataclient.History{}, ctx.Err()
}

func TestFetchUsesBaseContextAndTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := &ctxFetcher{}
	c := NewController(ctx, &fakeEngine{}, fetch, Options{DefaultDays: 7, Timeout: 5 * time.Second})

	cmd := c.SetSelection("btc", 7)
	cancel()
	run(t, c, cmd)

	if !errors.Is(fetch.err, context.Canceled) {
		t.Errorf("fetch ctx err = %v, want canceled", fetch.err)
	}
	if fetch.deadline <= 0 || fetch.deadline > 5*time.Second {
		t.Errorf("fetch deadline in %v, want within 5s", fetch.deadline)
	}
	if c.Message() != failureMessage {
		t.Errorf("Message() = %q", c.Message())
	}
}
