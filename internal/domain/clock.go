package domain

import "time"

// SessionClock bridges the two clock domains marks live in: automarks
// carry session-relative monotonic milliseconds, bookmarks carry
// wall-clock epoch seconds. Both anchors are captured once at startup
// so a monotonic stamp can be projected onto the epoch timeline.
type SessionClock struct {
	startEpoch int64 // wall clock at startup, epoch seconds
	startMono  int64 // monotonic clock at startup, milliseconds
	start      time.Time
	now        func() time.Time
}

// NewSessionClock captures the startup anchors. now is the wall-time
// source, normally time.Now.
func NewSessionClock(now func() time.Time) *SessionClock {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &SessionClock{
		startEpoch: start.Unix(),
		startMono:  0,
		start:      start,
		now:        now,
	}
}

// NowMono returns the current session-relative timestamp in milliseconds.
func (c *SessionClock) NowMono() int64 {
	return c.startMono + c.now().Sub(c.start).Milliseconds()
}

// NowEpoch returns the current wall-clock time in epoch seconds.
func (c *SessionClock) NowEpoch() int64 {
	return c.now().Unix()
}

// MonoToEpoch converts a session-relative timestamp to epoch seconds.
// Zero or pre-session stamps map to 0.
func (c *SessionClock) MonoToEpoch(mono int64) float64 {
	if mono <= 0 || mono < c.startMono {
		return 0
	}
	return float64(c.startEpoch) + float64(mono-c.startMono)/1000
}
