package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hctray/hctray/pkg/headsetcontrol"
	"github.com/hctray/hctray/pkg/monitor"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of the headset",
		Long:    `Query the headset once and print battery, chat-mix, and configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			client, err := headsetcontrol.NewClient(conf.HeadsetControlBinary())
			if err != nil {
				return err
			}

			ctx := context.Background()

			caps, err := client.Capabilities(ctx)
			if err != nil {
				cmd.PrintErrln("warning: capability probe failed, assuming all capabilities")
				caps = headsetcontrol.AllCapabilities()
			}

			// Battery.
			cmd.Println(bold("Battery status:"))
			if !caps.Battery {
				cmd.Println("  Not supported by this headset.")
			} else {
				reading := client.Battery(ctx)
				switch reading.Kind {
				case monitor.ReadingPercent:
					state := monitor.Classify(reading, conf.LowBatteryThreshold(), conf.MediumBatteryThreshold())
					cmd.Printf("  Charge: %s\n", coloredCharge(reading.Level, state))
					cmd.Printf("  State: %s\n", bold("%s", state))
				case monitor.ReadingCharging:
					cmd.Printf("  State: %s\n", color.GreenString("charging"))
				case monitor.ReadingUnavailable:
					cmd.Println("  State: " + bold("unavailable") + " (headset off or disconnected?)")
				case monitor.ReadingError:
					cmd.Println("  State: " + color.RedString("error") + " (is the headset plugged in?)")
				}
			}

			cmd.Println()

			// Chat mix.
			cmd.Println(bold("Chat mix:"))
			if !caps.ChatMix {
				cmd.Println("  Not supported by this headset.")
			} else if level, err := client.ChatMix(ctx); err != nil {
				cmd.Println("  Unavailable: " + err.Error())
			} else {
				cmd.Printf("  Level: %s\n", bold("%d", level))
			}

			cmd.Println()

			// Config.
			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Low battery threshold: %s\n", bold("%d%%", conf.LowBatteryThreshold()))
			cmd.Printf("  Medium battery threshold: %s\n", bold("%d%%", conf.MediumBatteryThreshold()))
			cmd.Printf("  Poll interval: %s\n", bold("%s", conf.PollInterval()))
			cmd.Printf("  Notifications: %s\n", bool2Text(conf.NotificationsEnabled()))
			return nil
		},
	}
}

// coloredCharge renders the charge percentage in the same green-to-red
// ramp the tray icon uses, bucketed to terminal colors.
func coloredCharge(level int, state monitor.State) string {
	switch state {
	case monitor.StateLow:
		return color.New(color.Bold, color.FgRed).Sprintf("%d%%", level)
	case monitor.StateMedium:
		return color.New(color.Bold, color.FgYellow).Sprintf("%d%%", level)
	default:
		return color.New(color.Bold, color.FgGreen).Sprintf("%d%%", level)
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
