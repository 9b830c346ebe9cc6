package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Config interface {
	LowBatteryThreshold() int
	MediumBatteryThreshold() int
	PollInterval() time.Duration
	NotificationsEnabled() bool
	HeadsetControlBinary() string

	// Persisted headset settings, restored on startup.
	// A value of -1 means the setting was never chosen.
	SidetoneLevel() int
	LEDState() int
	InactiveTimeMinutes() int

	SetLowBatteryThreshold(int)
	SetMediumBatteryThreshold(int)
	SetPollInterval(time.Duration)
	SetNotificationsEnabled(bool)
	SetHeadsetControlBinary(string)
	SetSidetoneLevel(int)
	SetLEDState(int)
	SetInactiveTimeMinutes(int)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
