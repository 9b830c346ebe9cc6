package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hctray/hctray/pkg/config"
)

// loadConfig reads the config file and layers any explicitly set
// command-line flags on top. Flag overrides are not persisted.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("headsetcontrol-binary") {
		conf.SetHeadsetControlBinary(flagBinary)
	}
	if flags.Changed("no-notifications") && flagNoNotifications {
		conf.SetNotificationsEnabled(false)
	}

	if flags.Changed("low-battery") || flags.Changed("medium-battery") {
		low := conf.LowBatteryThreshold()
		medium := conf.MediumBatteryThreshold()
		if flags.Changed("low-battery") {
			low = flagLowBattery
		}
		if flags.Changed("medium-battery") {
			medium = flagMediumBattery
		}
		if low < 0 || low >= medium || medium > 100 {
			return nil, fmt.Errorf("invalid battery thresholds: low=%d medium=%d, want 0 <= low < medium <= 100", low, medium)
		}
		// The setters enforce low < medium against the current values,
		// so apply in an order that keeps them consistent mid-update.
		if medium > conf.MediumBatteryThreshold() {
			conf.SetMediumBatteryThreshold(medium)
			conf.SetLowBatteryThreshold(low)
		} else {
			conf.SetLowBatteryThreshold(low)
			conf.SetMediumBatteryThreshold(medium)
		}
	}

	if flags.Changed("poll-interval") {
		if flagPollInterval < 1 {
			return nil, fmt.Errorf("invalid poll interval: %ds, want at least 1s", flagPollInterval)
		}
		if flagPollInterval > 3600 {
			logrus.Warnf("poll interval of %ds is over an hour, battery changes will be slow to show up", flagPollInterval)
		}
		conf.SetPollInterval(time.Duration(flagPollInterval) * time.Second)
	}

	return conf, nil
}
