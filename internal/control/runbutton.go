package control

import "time"

// RunLatch debounces the physical run button. Each qualifying press toggles
// the latch; the caller force-clears it on faults and mode changes.
type RunLatch struct {
	debounce time.Duration

	active        bool
	lastButtonLow bool
	lastToggle    time.Time
}

func NewRunLatch(debounce time.Duration) *RunLatch {
	return &RunLatch{
		debounce:   debounce,
		lastToggle: time.Now().Add(-debounce),
	}
}

// Observe feeds one button sample into the latch. The latch only toggles on
// a high-to-low edge, at most once per debounce interval, and only while
// toggling is allowed (heating-capable mode, no fault).
func (l *RunLatch) Observe(buttonLow bool, now time.Time, allowed bool) bool {
	if buttonLow != l.lastButtonLow {
		if buttonLow && now.Sub(l.lastToggle) >= l.debounce {
			if allowed {
				l.active = !l.active
			}
			l.lastToggle = now
		}
		l.lastButtonLow = buttonLow
	}
	return l.active
}

// Clear force-releases the latch, pre-empting any operator intent.
func (l *RunLatch) Clear() {
	l.active = false
}

func (l *RunLatch) Active() bool {
	return l.active
}
