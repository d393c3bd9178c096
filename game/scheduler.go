package game

import "time"

// DefaultTickInterval is one move every quarter second.
const DefaultTickInterval = 250 * time.Millisecond

// Scheduler paces ticks for a frame loop. It never fires while paused and
// restarts its interval on resume, so the first tick after a pause is a full
// interval away.
type Scheduler struct {
	Interval time.Duration

	lastUpdate time.Time
	wasPaused  bool
}

func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{Interval: interval}
}

// Reset starts a new interval at now.
func (s *Scheduler) Reset(now time.Time) {
	s.lastUpdate = now
	s.wasPaused = false
}

// Due reports whether a tick should run at now and, if so, starts the next interval.
func (s *Scheduler) Due(now time.Time, paused bool) bool {
	if paused {
		s.wasPaused = true
		return false
	}
	if s.wasPaused {
		s.Reset(now)
		return false
	}
	if now.Sub(s.lastUpdate) < s.Interval {
		return false
	}
	s.lastUpdate = now
	return true
}
