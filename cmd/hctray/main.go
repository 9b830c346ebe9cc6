package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/daemon"
	"github.com/hctray/hctray/pkg/events"
	"github.com/hctray/hctray/pkg/headsetcontrol"
	"github.com/hctray/hctray/pkg/monitor"
	"github.com/hctray/hctray/pkg/notify"
	"github.com/hctray/hctray/pkg/tray"
)

var (
	logLevel   = "info"
	configPath = config.DefaultPath()

	flagBinary          string
	flagLowBattery      int
	flagMediumBattery   int
	flagPollInterval    int
	flagNoNotifications bool
)

var (
	gBasic        = "Basic:"
	gHeadset      = "Headset controls:"
	commandGroups = []string{
		gBasic,
		gHeadset,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hctray",
		Short: "hctray is a system tray battery indicator for wireless headsets",
		Long: `hctray is a system tray battery indicator for wireless headsets.

It polls the HeadsetControl tool (https://github.com/Sapd/HeadsetControl/)
for battery and chat-mix telemetry, colors the tray icon by charge level,
and sends desktop notifications when the battery state changes.

Running hctray without a subcommand starts the tray indicator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: runTray,
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&flagBinary, "headsetcontrol-binary", "headsetcontrol", "path to the headsetcontrol binary")
	globalFlags.IntVar(&flagLowBattery, "low-battery", 20, "battery percentage below which the state is low")
	globalFlags.IntVar(&flagMediumBattery, "medium-battery", 50, "battery percentage below which the state is medium")
	globalFlags.IntVar(&flagPollInterval, "poll-interval", 60, "polling interval in seconds")
	globalFlags.BoolVar(&flagNoNotifications, "no-notifications", false, "disable desktop notifications")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStatusCommand(),
		NewSidetoneCommand(),
		NewLEDCommand(),
		NewInactiveTimeCommand(),
	)

	return cmd
}

func runTray(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logrus.WithFields(conf.LogrusFields()).Info("config loaded")

	client, err := headsetcontrol.NewClient(conf.HeadsetControlBinary())
	if err != nil {
		return err
	}

	hub := events.NewEventHub()
	mon := monitor.New(conf.LowBatteryThreshold(), conf.MediumBatteryThreshold())
	poller := daemon.NewPoller(conf, client, mon, hub)

	notifier := notify.New(conf)
	go notifier.Listen(hub)

	restoreHeadsetSettings(client, conf)

	caps, err := client.Capabilities(context.Background())
	if err != nil {
		logrus.WithError(err).Warn("capability probe failed, assuming all capabilities")
		caps = headsetcontrol.AllCapabilities()
	}

	tray.Run(tray.Options{
		Conf:   conf,
		Client: client,
		Poller: poller,
		Hub:    hub,
		Caps:   caps,
	})
	return nil
}

// restoreHeadsetSettings re-applies persisted headset settings on
// startup. The headset forgets them when it powers down.
func restoreHeadsetSettings(client *headsetcontrol.Client, conf config.Config) {
	ctx := context.Background()

	if level := conf.SidetoneLevel(); level >= 0 {
		if err := client.SetSidetone(ctx, level); err != nil {
			logrus.WithError(err).Warn("failed to restore sidetone level")
		}
	}
	if state := conf.LEDState(); state >= 0 {
		if err := client.SetLED(ctx, state != 0); err != nil {
			logrus.WithError(err).Warn("failed to restore LED state")
		}
	}
	if minutes := conf.InactiveTimeMinutes(); minutes >= 0 {
		if err := client.SetInactiveTime(ctx, minutes); err != nil {
			logrus.WithError(err).Warn("failed to restore inactive time")
		}
	}
}
