package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/headsetcontrol"
)

var sidetoneNames = map[string]int{
	"off":    0,
	"low":    32,
	"medium": 64,
	"high":   96,
	"max":    128,
}

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

// headsetClientFromFlags builds a config and client for one-shot
// subcommands that talk to the headset directly.
func headsetClientFromFlags(cmd *cobra.Command) (config.Config, *headsetcontrol.Client, error) {
	conf, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	client, err := headsetcontrol.NewClient(conf.HeadsetControlBinary())
	if err != nil {
		return nil, nil, err
	}

	return conf, client, nil
}

func NewSidetoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sidetone [off|low|medium|high|max|0-128]",
		Short:   "Set sidetone level",
		GroupID: gHeadset,
		Long: `Set the sidetone (microphone monitoring) level.

Accepts a named level (off, low, medium, high, max) or a raw value from 0 to 128. The level is persisted and re-applied every time the tray starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, ok := -1, false
			if len(args) == 1 {
				level, ok = sidetoneNames[args[0]]
			}
			if !ok {
				var err error
				level, err = parseIntArg(args, "sidetone level")
				if err != nil {
					return err
				}
			}

			conf, client, err := headsetClientFromFlags(cmd)
			if err != nil {
				return err
			}

			if err := client.SetSidetone(context.Background(), level); err != nil {
				return fmt.Errorf("failed to set sidetone: %v", err)
			}

			conf.SetSidetoneLevel(level)
			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %v", err)
			}

			logrus.Infof("successfully set sidetone level to %d", level)

			return nil
		},
	}
}

func NewLEDCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "led [on|off]",
		Short:   "Turn headset LEDs on or off",
		GroupID: gHeadset,
		Long: `Turn the headset LEDs on or off.

Turning the LEDs off extends battery life. The state is persisted and re-applied every time the tray starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				return fmt.Errorf("expected exactly one argument: on or off")
			}
			on := args[0] == "on"

			conf, client, err := headsetClientFromFlags(cmd)
			if err != nil {
				return err
			}

			if err := client.SetLED(context.Background(), on); err != nil {
				return fmt.Errorf("failed to set LED state: %v", err)
			}

			state := 0
			if on {
				state = 1
			}
			conf.SetLEDState(state)
			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %v", err)
			}

			logrus.Infof("successfully turned LEDs %s", args[0])

			return nil
		},
	}
}

func NewInactiveTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "inactive-time [minutes]",
		Short:   "Set auto-shutdown inactive time",
		GroupID: gHeadset,
		Long: `Set how many minutes of inactivity the headset waits before shutting itself down.

This is a value from 0 to 90, where 0 disables auto-shutdown. The value is persisted and re-applied every time the tray starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseIntArg(args, "inactive time")
			if err != nil {
				return err
			}

			conf, client, err := headsetClientFromFlags(cmd)
			if err != nil {
				return err
			}

			if err := client.SetInactiveTime(context.Background(), minutes); err != nil {
				return fmt.Errorf("failed to set inactive time: %v", err)
			}

			conf.SetInactiveTimeMinutes(minutes)
			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %v", err)
			}

			logrus.Infof("successfully set inactive time to %d minutes", minutes)

			return nil
		},
	}
}
