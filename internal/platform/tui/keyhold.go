package tui

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Terminals report key presses and auto-repeats but never releases.
// holdTracker turns the stream of movement key presses into
// press/repeat/release events: a key counts as held while its repeats keep
// arriving and is released once they stop.
type holdTracker struct {
	key       core.Key
	held      bool
	repeating bool
	lastSeen  time.Time

	// firstRepeat covers the keyboard's delay before auto-repeat starts,
	// repeatGap the interval between repeats, both with slack.
	firstRepeat time.Duration
	repeatGap   time.Duration
}

const (
	defaultFirstRepeat = 550 * time.Millisecond
	defaultRepeatGap   = 120 * time.Millisecond
)

func newHoldTracker() *holdTracker {
	return &holdTracker{
		firstRepeat: defaultFirstRepeat,
		repeatGap:   defaultRepeatGap,
	}
}

// tracked reports whether k is a movement key handled by the tracker.
func tracked(k core.Key) bool {
	switch k {
	case core.KeyA, core.KeyD, core.KeyLeft, core.KeyRight:
		return true
	}
	return false
}

// Press records a press of k at now and returns the events to deliver.
// Another movement key releases the current one first.
func (h *holdTracker) Press(k core.Key, now time.Time) []core.KeyEvent {
	if h.held && h.key == k {
		h.repeating = true
		h.lastSeen = now
		return []core.KeyEvent{{Key: k, Action: core.KeyRepeat}}
	}

	var out []core.KeyEvent
	if h.held {
		out = append(out, core.Release(h.key))
	}
	h.key = k
	h.held = true
	h.repeating = false
	h.lastSeen = now
	return append(out, core.Press(k))
}

// Tick returns a release event if the held key has gone quiet.
func (h *holdTracker) Tick(now time.Time) []core.KeyEvent {
	if !h.held {
		return nil
	}
	timeout := h.firstRepeat
	if h.repeating {
		timeout = h.repeatGap
	}
	if now.Sub(h.lastSeen) < timeout {
		return nil
	}
	h.held = false
	h.repeating = false
	return []core.KeyEvent{core.Release(h.key)}
}

// Held returns the held key, if any.
func (h *holdTracker) Held() (core.Key, bool) {
	return h.key, h.held
}

// Reset forgets the held key without emitting a release.
func (h *holdTracker) Reset() {
	h.held = false
	h.repeating = false
}
