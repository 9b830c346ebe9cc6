package headsetcontrol

// jsonOutput mirrors the document printed by `headsetcontrol -o JSON`.
// Only the fields this tool reads are declared.
type jsonOutput struct {
	Devices []jsonDevice `json:"devices"`
}

type jsonDevice struct {
	Device       string            `json:"device"`
	Capabilities []string          `json:"capabilities"`
	Battery      *jsonBattery      `json:"battery"`
	ChatMix      *jsonChatMix      `json:"chatmix"`
	Errors       map[string]string `json:"errors"`
}

type jsonBattery struct {
	Status string `json:"status"`
	Level  int    `json:"level"`
}

type jsonChatMix struct {
	Level int `json:"level"`
}

// Battery status strings reported by HeadsetControl.
const (
	batteryStatusCharging    = "BATTERY_CHARGING"
	batteryStatusUnavailable = "BATTERY_UNAVAILABLE"
)

// Capability strings reported by HeadsetControl.
const (
	capBatteryStatus = "CAP_BATTERY_STATUS"
	capChatMix       = "CAP_CHATMIX"
	capSidetone      = "CAP_SIDETONE"
	capLED           = "CAP_LED"
	capInactiveTime  = "CAP_INACTIVE_TIME"
)

// Capabilities is the feature set the connected headset reports.
type Capabilities struct {
	Battery      bool
	ChatMix      bool
	Sidetone     bool
	LED          bool
	InactiveTime bool
}

// AllCapabilities assumes every feature is present. Used as a fallback
// when the capability query itself fails, so menus are not hidden just
// because one probe failed.
func AllCapabilities() Capabilities {
	return Capabilities{
		Battery:      true,
		ChatMix:      true,
		Sidetone:     true,
		LED:          true,
		InactiveTime: true,
	}
}
