package events

import "encoding/json"

// Event name constants
const (
	BatteryStatus = "battery.status"
	ChatMixLevel  = "chatmix.level"
	Notification  = "battery.notification"
)

// Event is a generic message fanned out by the poller.
type Event struct {
	Name string
	Data json.RawMessage
}

// BatteryStatusEvent is the typed payload for battery.status.
// Level is -1 when the reading carries no numeric percent; Color is
// empty in that case too.
type BatteryStatusEvent struct {
	State string `json:"state"`
	Level int    `json:"level"`
	Color string `json:"color,omitempty"`
	Ts    int64  `json:"ts"`
}

// ChatMixLevelEvent is the typed payload for chatmix.level. Err holds a
// human-readable reason when the level could not be read.
type ChatMixLevelEvent struct {
	Level int    `json:"level"`
	Err   string `json:"err,omitempty"`
}

// NotificationEvent is the typed payload for battery.notification.
type NotificationEvent struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is
// empty, it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
