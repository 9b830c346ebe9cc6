package monitor

import (
	"fmt"
	"sync"
)

// Severity is the urgency tier of a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

var severityNames = [...]string{"info", "warning", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Notification is one desktop notification request. Delivery is the
// caller's responsibility.
type Notification struct {
	Severity Severity
	Title    string
	Message  string
}

// Monitor tracks the last observed battery level and state across polls
// and decides which notifications each new reading should trigger.
//
// It performs no I/O and never blocks; OnReading is safe for concurrent
// use, so a timer tick and a user-triggered refresh cannot interleave
// their read-modify-write of the tracked state.
type Monitor struct {
	mu sync.Mutex

	lowThreshold    int
	mediumThreshold int

	lastLevel *int  // last numeric percent seen; nil until the first percent reading
	lastState State // StateUninitialized until the first reading
}

// New returns a monitor with the given thresholds.
// lowThreshold must be less than mediumThreshold, both in [0,100].
func New(lowThreshold, mediumThreshold int) *Monitor {
	if lowThreshold < 0 || mediumThreshold > 100 || lowThreshold >= mediumThreshold {
		panic(fmt.Sprintf("invalid battery thresholds: low=%d medium=%d", lowThreshold, mediumThreshold))
	}

	return &Monitor{
		lowThreshold:    lowThreshold,
		mediumThreshold: mediumThreshold,
	}
}

// LastState returns the most recently classified state, or
// StateUninitialized before the first reading.
func (m *Monitor) LastState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastState
}

// LastLevel returns the last numeric percent seen. ok is false until the
// first percent reading arrives.
func (m *Monitor) LastLevel() (level int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastLevel == nil {
		return 0, false
	}
	return *m.lastLevel, true
}

// Thresholds returns the configured low and medium thresholds.
func (m *Monitor) Thresholds() (low, medium int) {
	return m.lowThreshold, m.mediumThreshold
}

// OnReading classifies one poll result, compares it against the previous
// reading, and returns the notifications this transition should produce,
// in order. The first reading only establishes the baseline and never
// notifies. The tracked state is updated unconditionally, including for
// unavailable/error readings, so the next call sees the correct previous
// state.
func (m *Monitor) OnReading(r Reading) []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := Classify(r, m.lowThreshold, m.mediumThreshold)

	if m.lastState == StateUninitialized {
		m.remember(r, state)
		return nil
	}

	var out []Notification

	if state == StateCharging && m.lastState != StateCharging {
		out = append(out, Notification{
			Severity: SeverityInfo,
			Title:    "Headset Charging",
			Message:  "Headset is now charging",
		})
	}

	if state == StateUnavailable && m.lastState != StateUnavailable {
		out = append(out, Notification{
			Severity: SeverityInfo,
			Title:    "Headset Disconnected",
			Message:  "Headset battery unavailable",
		})
	}

	if state != m.lastState {
		switch {
		case state == StateLow && (m.lastState == StateMedium || m.lastState == StateHigh):
			out = append(out, Notification{
				Severity: SeverityWarning,
				Title:    "Headset Battery Low",
				Message:  fmt.Sprintf("Battery level dropped to %d%% (below %d%%)", r.Level, m.lowThreshold),
			})
		case state == StateMedium && m.lastState == StateHigh:
			out = append(out, Notification{
				Severity: SeverityInfo,
				Title:    "Headset Battery Medium",
				Message:  fmt.Sprintf("Battery level dropped to %d%% (below %d%%)", r.Level, m.mediumThreshold),
			})
		case state == StateHigh && (m.lastState == StateLow || m.lastState == StateMedium):
			out = append(out, Notification{
				Severity: SeverityInfo,
				Title:    "Headset Battery Recovered",
				Message:  fmt.Sprintf("Battery level increased to %d%%", r.Level),
			})
		}
	}

	// Percent-based checks need a previous numeric level to compare
	// against; charging and unavailable polls never set one.
	if r.Kind == ReadingPercent && m.lastLevel != nil {
		last := *m.lastLevel

		if state == StateLow && r.Level != last && r.Level%5 == 0 {
			out = append(out, Notification{
				Severity: SeverityCritical,
				Title:    "Headset Battery Critical",
				Message:  fmt.Sprintf("Battery level: %d%%", r.Level),
			})
		}

		if r.Level < 11 && r.Level < last {
			if last >= 11 {
				out = append(out, Notification{
					Severity: SeverityCritical,
					Title:    "Headset Battery Very Low",
					Message:  fmt.Sprintf("Battery critically low: %d%%", r.Level),
				})
			} else {
				out = append(out, Notification{
					Severity: SeverityCritical,
					Title:    "Headset Battery Critical",
					Message:  fmt.Sprintf("Battery: %d%% (was %d%%)", r.Level, last),
				})
			}
		}
	}

	m.remember(r, state)
	return out
}

func (m *Monitor) remember(r Reading, state State) {
	if r.Kind == ReadingPercent {
		level := r.Level
		m.lastLevel = &level
	}
	m.lastState = state
}
