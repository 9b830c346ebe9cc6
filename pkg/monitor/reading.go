package monitor

// ReadingKind tags the outcome of one battery poll.
type ReadingKind int

const (
	// ReadingPercent carries a literal 0-100 battery percentage.
	ReadingPercent ReadingKind = iota
	// ReadingCharging means the headset reported it is charging.
	ReadingCharging
	// ReadingUnavailable means the tool reported no battery data
	// (no device connected, or the device does not expose a battery).
	ReadingUnavailable
	// ReadingError means the poll itself failed (subprocess or parse error).
	ReadingError
)

// Reading is the outcome of one battery poll, produced by the
// headsetcontrol client once per tick.
type Reading struct {
	Kind  ReadingKind
	Level int // battery percent, meaningful only when Kind is ReadingPercent
}

// Percent returns a reading carrying a literal battery percentage.
func Percent(level int) Reading {
	return Reading{Kind: ReadingPercent, Level: level}
}

// Charging returns a reading for a charging headset.
func Charging() Reading {
	return Reading{Kind: ReadingCharging}
}

// Unavailable returns a reading for a headset without battery data.
func Unavailable() Reading {
	return Reading{Kind: ReadingUnavailable}
}

// Error returns a reading for a failed poll.
func Error() Reading {
	return Reading{Kind: ReadingError}
}

// State is the classified battery condition derived from a reading
// and the configured thresholds.
type State int

const (
	// StateUninitialized is the monitor's condition before the first
	// reading. Classify never returns it.
	StateUninitialized State = iota
	StateHigh
	StateMedium
	StateLow
	StateCharging
	StateUnavailable
)

var stateNames = [...]string{"uninitialized", "high", "medium", "low", "charging", "unavailable"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Classify maps a reading to a state given the low/medium thresholds.
// Charging and unavailable/error readings map to their dedicated states;
// a percent reading is low below lowThreshold, medium below
// mediumThreshold, and high otherwise.
func Classify(r Reading, lowThreshold, mediumThreshold int) State {
	switch r.Kind {
	case ReadingCharging:
		return StateCharging
	case ReadingUnavailable, ReadingError:
		return StateUnavailable
	}

	switch {
	case r.Level < lowThreshold:
		return StateLow
	case r.Level < mediumThreshold:
		return StateMedium
	default:
		return StateHigh
	}
}
