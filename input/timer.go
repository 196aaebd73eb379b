package input

import "time"

// RepeatTimer turns a per-frame direction into edge and repeat nav events.
// It never reads a clock; timestamps come from the caller and must not go
// backwards.
type RepeatTimer struct {
	firstDelay  time.Duration
	repeatDelay time.Duration

	active   Direction
	deadline time.Duration
}

// NewRepeatTimer creates a timer that repeats after firstDelay, then every
// repeatDelay.
func NewRepeatTimer(firstDelay, repeatDelay time.Duration) *RepeatTimer {
	return &RepeatTimer{
		firstDelay:  firstDelay,
		repeatDelay: repeatDelay,
	}
}

// Update advances the timer to ts with the direction resolved for that
// frame. It returns a nav event when one is due.
func (t *RepeatTimer) Update(dir Direction, ts time.Duration) (Event, bool) {
	switch {
	case dir == DirNone:
		t.Reset()
		return Event{}, false

	case dir != t.active:
		// Fresh press, or a change of direction mid-hold.
		t.active = dir
		t.deadline = ts + t.firstDelay
		return navEvent(dir, ModeEdge, ts), true

	case ts >= t.deadline:
		t.deadline = ts + t.repeatDelay
		return navEvent(dir, ModeRepeat, ts), true
	}
	return Event{}, false
}

// Reset drops any held direction.
func (t *RepeatTimer) Reset() {
	t.active = DirNone
	t.deadline = 0
}

// Active returns the held direction, or DirNone.
func (t *RepeatTimer) Active() Direction {
	return t.active
}

func navEvent(dir Direction, mode NavMode, ts time.Duration) Event {
	return Event{Kind: EventNav, Dir: dir, Mode: mode, At: ts}
}
