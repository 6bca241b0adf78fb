package clock

import "sync/atomic"

// Slot holds the most recent Timestamp. Store and Load never block, so the
// render path can read while the ticker writes.
type Slot struct {
	p atomic.Pointer[Timestamp]
}

// Store publishes ts.
func (s *Slot) Store(ts Timestamp) {
	s.p.Store(&ts)
}

// Load returns the latest snapshot. ok is false before the first Store.
func (s *Slot) Load() (ts Timestamp, ok bool) {
	p := s.p.Load()
	if p == nil {
		return Timestamp{}, false
	}
	return *p, true
}
