package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/jonboulle/clockwork"
)

// Listener receives one Timestamp per distinct second.
type Listener func(Timestamp)

// Ticker samples a clock once per second and fans the snapshot out to
// listeners and a channel.
type Ticker struct {
	clock  clockwork.Clock
	slot   Slot
	ch     chan Timestamp
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewTicker creates a ticker reading c. A nil clock means the real clock.
func NewTicker(c clockwork.Clock) *Ticker {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Ticker{
		clock:     c,
		ch:        make(chan Timestamp, 1),
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
}

// SetLogger replaces the debug logger. A nil logger restores slog.Default.
// Call it before Run.
func (t *Ticker) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	t.logger = l
}

// AddListener registers fn and returns a function that removes it.
func (t *Ticker) AddListener(fn Listener) (remove func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// C delivers snapshots. Only the newest one is buffered; a slow reader
// skips seconds rather than falling behind.
func (t *Ticker) C() <-chan Timestamp {
	return t.ch
}

// Latest returns the most recent snapshot.
func (t *Ticker) Latest() (Timestamp, bool) {
	return t.slot.Load()
}

// Run emits the current time immediately and then at each whole second
// until ctx is done. It returns ctx.Err().
func (t *Ticker) Run(ctx context.Context) error {
	last := int64(-1)
	for {
		now := t.clock.Now()
		last = t.observe(now, last)
		wait := now.Truncate(time.Second).Add(time.Second).Sub(now)
		timer := t.clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
		}
	}
}

// observe emits now unless it falls in the same second as last, and returns
// the second it saw. Early timer wakeups and small backwards steps within a
// second therefore produce no extra notification.
func (t *Ticker) observe(now time.Time, last int64) int64 {
	sec := now.Unix()
	if sec != last {
		t.emit(FromTime(now))
	}
	return sec
}

func (t *Ticker) emit(ts Timestamp) {
	t.slot.Store(ts)
	t.logger.Debug("tick", "time", ts.String())

	select {
	case t.ch <- ts:
	default:
		// Replace the stale value.
		select {
		case <-t.ch:
		default:
		}
		select {
		case t.ch <- ts:
		default:
		}
	}

	t.mu.Lock()
	listeners := make([]Listener, 0, len(t.listeners))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		notify(fn, ts)
	}
}

func notify(fn Listener, ts Timestamp) {
	defer errors.Recover("clock.Ticker.notify")
	fn(ts)
}
