package clock

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
)

func TestFromTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Timestamp
	}{
		{
			name: "morning",
			in:   time.Date(2024, time.January, 1, 9, 5, 7, 0, time.UTC),
			want: Timestamp{Year: 2024, Month: 0, DayOfWeek: 2, Day: 1, Hour: 9, Minute: 5, Second: 7},
		},
		{
			name: "noon",
			in:   time.Date(2023, time.July, 15, 12, 0, 0, 0, time.UTC),
			want: Timestamp{Year: 2023, Month: 6, DayOfWeek: 7, Day: 15, Hour: 0, PM: true},
		},
		{
			name: "midnight",
			in:   time.Date(2023, time.December, 31, 0, 30, 59, 0, time.UTC),
			want: Timestamp{Year: 2023, Month: 11, DayOfWeek: 1, Day: 31, Hour: 0, Minute: 30, Second: 59},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTime(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromTime mismatch (-want +got):\n%s", diff)
			}
			if back := got.Time(time.UTC); !back.Equal(tt.in) {
				t.Errorf("Time() = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestTimestamp_DisplayHour(t *testing.T) {
	if got := (Timestamp{Hour: 0}).DisplayHour(); got != 12 {
		t.Errorf("DisplayHour(0) = %d, want 12", got)
	}
	if got := (Timestamp{Hour: 7}).DisplayHour(); got != 7 {
		t.Errorf("DisplayHour(7) = %d, want 7", got)
	}
	if got := (Timestamp{DayOfWeek: 1}).Weekday(); got != time.Sunday {
		t.Errorf("Weekday() = %v, want Sunday", got)
	}
}

func TestSlot(t *testing.T) {
	var s Slot
	if _, ok := s.Load(); ok {
		t.Fatal("empty slot should report !ok")
	}
	ts := Timestamp{Year: 2024, Minute: 1}
	s.Store(ts)
	got, ok := s.Load()
	if !ok || got != ts {
		t.Errorf("Load() = %v, %v", got, ok)
	}
}

func startTicker(t *testing.T, start time.Time) (*Ticker, *clockwork.FakeClock, context.Context, func() error) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(start)
	tk := NewTicker(fc)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()
	t.Cleanup(cancel)
	stop := func() error {
		cancel()
		return <-done
	}
	return tk, fc, ctx, stop
}

func TestTicker_EmitsOnSecondBoundary(t *testing.T) {
	start := time.Date(2024, time.January, 1, 9, 5, 0, 500*int(time.Millisecond), time.UTC)
	tk, fc, ctx, stop := startTicker(t, start)

	first := <-tk.C()
	if first.Second != 0 || first.Minute != 5 {
		t.Fatalf("first tick = %v", first)
	}

	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatal(err)
	}
	fc.Advance(500 * time.Millisecond)
	second := <-tk.C()
	if second.Second != 1 {
		t.Errorf("second tick = %v, want :01", second)
	}
	if latest, ok := tk.Latest(); !ok || latest != second {
		t.Errorf("Latest() = %v, %v", latest, ok)
	}

	if err := stop(); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestTicker_ListenersAndRemove(t *testing.T) {
	start := time.Date(2024, time.March, 3, 23, 59, 58, 0, time.UTC)
	fc := clockwork.NewFakeClockAt(start)
	tk := NewTicker(fc)

	got := make(chan Timestamp, 4)
	remove := tk.AddListener(func(ts Timestamp) { got <- ts })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	if ts := <-got; ts.Second != 58 || !ts.PM {
		t.Fatalf("first = %v", ts)
	}
	<-tk.C()
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatal(err)
	}
	remove()
	fc.Advance(time.Second)
	if ts := <-tk.C(); ts.Second != 59 {
		t.Fatalf("channel tick = %v", ts)
	}
	select {
	case ts := <-got:
		t.Errorf("removed listener received %v", ts)
	default:
	}
	cancel()
	<-done
}

type secondCounter struct {
	mu    sync.Mutex
	calls map[int]int
	total int
}

func newSecondCounter() *secondCounter {
	return &secondCounter{calls: make(map[int]int)}
}

func (c *secondCounter) listen(ts Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[ts.Second]++
	c.total++
}

func (c *secondCounter) snapshot() (map[int]int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]int, len(c.calls))
	for k, v := range c.calls {
		out[k] = v
	}
	return out, c.total
}

func TestTicker_OneNotificationPerSecond(t *testing.T) {
	base := time.Date(2024, time.January, 1, 9, 5, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	tk := NewTicker(clockwork.NewFakeClockAt(base))
	counter := newSecondCounter()
	tk.AddListener(counter.listen)

	steps := []struct {
		name string
		now  time.Time
		emit bool
	}{
		{"first sample", at(250), true},
		{"early wakeup", at(900), false},
		{"just before boundary", at(999), false},
		{"boundary", at(1000), true},
		{"late in second", at(1800), false},
		{"backwards within second", at(1100), false},
		{"re-armed same second", at(1500), false},
		{"next second", at(2000), true},
	}
	last := int64(-1)
	for _, step := range steps {
		_, before := counter.snapshot()
		last = tk.observe(step.now, last)
		_, after := counter.snapshot()
		if got := after > before; got != step.emit {
			t.Errorf("%s: emitted = %v, want %v", step.name, got, step.emit)
		}
	}

	calls, total := counter.snapshot()
	if diff := cmp.Diff(map[int]int{0: 1, 1: 1, 2: 1}, calls); diff != "" {
		t.Errorf("calls per second mismatch (-want +got):\n%s", diff)
	}
	if total != 3 {
		t.Errorf("total calls = %d, want 3", total)
	}
}

func TestTicker_SubSecondAdvances(t *testing.T) {
	start := time.Date(2024, time.January, 1, 9, 5, 0, 250*int(time.Millisecond), time.UTC)
	fc := clockwork.NewFakeClockAt(start)
	tk := NewTicker(fc)
	counter := newSecondCounter()
	tk.AddListener(counter.listen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	for i := 0; i < 8; i++ {
		if err := fc.BlockUntilContext(ctx, 1); err != nil {
			t.Fatal(err)
		}
		fc.Advance(250 * time.Millisecond)
	}
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatal(err)
	}

	calls, _ := counter.snapshot()
	if diff := cmp.Diff(map[int]int{0: 1, 1: 1, 2: 1}, calls); diff != "" {
		t.Errorf("calls per second mismatch (-want +got):\n%s", diff)
	}
	cancel()
	<-done
}

type panicRecorder struct {
	mu     sync.Mutex
	panics []*errors.PanicError
}

func (r *panicRecorder) HandleError(*errors.ClockError) {}

func (r *panicRecorder) HandlePanic(p *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, p)
}

func TestTicker_ListenerPanicRecovered(t *testing.T) {
	rec := &panicRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	tk := NewTicker(clockwork.NewFakeClock())
	var calls int
	tk.AddListener(func(Timestamp) { panic("listener exploded") })
	tk.AddListener(func(Timestamp) { calls++ })

	tk.emit(Timestamp{Second: 1})

	if calls != 1 {
		t.Errorf("later listener calls = %d, want 1", calls)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.panics) != 1 || rec.panics[0].Op != "clock.Ticker.notify" {
		t.Errorf("panics = %+v", rec.panics)
	}
}

func TestTicker_ChannelKeepsNewest(t *testing.T) {
	tk := NewTicker(clockwork.NewFakeClock())
	tk.emit(Timestamp{Second: 1})
	tk.emit(Timestamp{Second: 2})
	if ts := <-tk.C(); ts.Second != 2 {
		t.Errorf("C() = %v, want newest", ts)
	}
	select {
	case ts := <-tk.C():
		t.Errorf("unexpected extra tick %v", ts)
	default:
	}
}

func TestTicker_SetLogger(t *testing.T) {
	tk := NewTicker(clockwork.NewFakeClock())
	var buf bytes.Buffer
	tk.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tk.emit(Timestamp{Year: 2024, Month: 0, Day: 1, DayOfWeek: 2, Hour: 9, Minute: 5, Second: 7})
	if out := buf.String(); !strings.Contains(out, "msg=tick") || !strings.Contains(out, "09:05:07") {
		t.Errorf("log output = %q", out)
	}

	buf.Reset()
	tk.SetLogger(nil)
	tk.emit(Timestamp{Second: 8})
	if buf.Len() != 0 {
		t.Errorf("nil logger should detach the previous one, got %q", buf.String())
	}
}
