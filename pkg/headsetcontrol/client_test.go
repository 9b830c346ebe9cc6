package headsetcontrol

import (
	"context"
	"testing"

	"github.com/hctray/hctray/pkg/monitor"
)

func TestParseBattery(t *testing.T) {
	tests := []struct {
		name string
		json string
		want monitor.Reading
	}{
		{
			name: "available with level",
			json: `{"devices":[{"battery":{"status":"BATTERY_AVAILABLE","level":85}}]}`,
			want: monitor.Percent(85),
		},
		{
			name: "charging",
			json: `{"devices":[{"battery":{"status":"BATTERY_CHARGING","level":42}}]}`,
			want: monitor.Charging(),
		},
		{
			name: "unavailable",
			json: `{"devices":[{"battery":{"status":"BATTERY_UNAVAILABLE","level":0}}]}`,
			want: monitor.Unavailable(),
		},
		{
			name: "no devices",
			json: `{"devices":[]}`,
			want: monitor.Unavailable(),
		},
		{
			name: "device without battery",
			json: `{"devices":[{"device":"SteelSeries Arctis 7"}]}`,
			want: monitor.Unavailable(),
		},
		{
			name: "first device wins",
			json: `{"devices":[{"battery":{"status":"BATTERY_AVAILABLE","level":10}},{"battery":{"status":"BATTERY_AVAILABLE","level":99}}]}`,
			want: monitor.Percent(10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBattery([]byte(tt.json))
			if err != nil {
				t.Fatalf("parseBattery returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseBattery() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseBatteryErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "garbage", json: `not json at all`},
		{name: "level out of range", json: `{"devices":[{"battery":{"status":"BATTERY_AVAILABLE","level":250}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseBattery([]byte(tt.json)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestParseChatMix(t *testing.T) {
	got, err := parseChatMix([]byte(`{"devices":[{"chatmix":{"level":64}}]}`))
	if err != nil {
		t.Fatalf("parseChatMix: %v", err)
	}
	if got != 64 {
		t.Errorf("parseChatMix() = %d, want 64", got)
	}

	if _, err := parseChatMix([]byte(`{"devices":[{"errors":{"chatmix":"not supported"}}]}`)); err == nil {
		t.Errorf("expected error for chatmix device error")
	}
	if _, err := parseChatMix([]byte(`{"devices":[{}]}`)); err == nil {
		t.Errorf("expected error for missing chatmix data")
	}
	if _, err := parseChatMix([]byte(`{"devices":[]}`)); err == nil {
		t.Errorf("expected error for no devices")
	}
}

func TestParseCapabilities(t *testing.T) {
	json := `{"devices":[{"capabilities":["CAP_BATTERY_STATUS","CAP_SIDETONE","CAP_INACTIVE_TIME"]}]}`

	caps, err := parseCapabilities([]byte(json))
	if err != nil {
		t.Fatalf("parseCapabilities: %v", err)
	}

	want := Capabilities{Battery: true, Sidetone: true, InactiveTime: true}
	if caps != want {
		t.Errorf("parseCapabilities() = %+v, want %+v", caps, want)
	}
}

func TestSetterValidation(t *testing.T) {
	c := &Client{binary: "/nonexistent/headsetcontrol"}

	if err := c.SetSidetone(context.Background(), 129); err == nil {
		t.Errorf("expected range error for sidetone 129")
	}
	if err := c.SetSidetone(context.Background(), -1); err == nil {
		t.Errorf("expected range error for sidetone -1")
	}
	if err := c.SetInactiveTime(context.Background(), 91); err == nil {
		t.Errorf("expected range error for inactive time 91")
	}
}
