// Package tray renders the system tray icon, tooltip, and menu.
package tray

import (
	"context"
	"fmt"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/daemon"
	"github.com/hctray/hctray/pkg/events"
	"github.com/hctray/hctray/pkg/headsetcontrol"
	"github.com/hctray/hctray/pkg/monitor"
)

// HeadsetController is the subset of the headsetcontrol client the menu
// actions need.
type HeadsetController interface {
	SetSidetone(ctx context.Context, level int) error
	SetLED(ctx context.Context, on bool) error
	SetInactiveTime(ctx context.Context, minutes int) error
}

// Options wires the tray to its collaborators.
type Options struct {
	Conf   config.Config
	Client HeadsetController
	Poller *daemon.Poller
	Hub    *events.EventHub
	Caps   headsetcontrol.Capabilities
}

type menuOption struct {
	name  string
	value int
}

// The sidetone range [0,128] mapped to five coarse levels. Most
// headsets quantize the value internally anyway.
var sidetoneOptions = []menuOption{
	{"off", 0},
	{"low", 32},
	{"medium", 64},
	{"high", 96},
	{"max", 128},
}

var ledOptions = []menuOption{
	{"off", 0},
	{"on", 1},
}

var inactiveOptions = []menuOption{
	{"off", 0},
	{"5 min", 5},
	{"15 min", 15},
	{"30 min", 30},
	{"60 min", 60},
	{"90 min", 90},
}

var (
	opts Options

	chargeItem  *systray.MenuItem
	chatmixItem *systray.MenuItem

	sidetoneItems map[int]*systray.MenuItem
	ledItems      map[int]*systray.MenuItem
	inactiveItems map[int]*systray.MenuItem
)

// Run starts the tray. This blocks the calling goroutine (must be main).
func Run(o Options) {
	opts = o
	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetTitle("...")
	systray.SetTooltip("Headset\nInitializing...")
	if icon := statusIcon(idleColor); icon != nil {
		systray.SetIcon(icon)
	}

	refreshItem := systray.AddMenuItem("Refresh", "Poll the headset now")

	if opts.Caps.Battery {
		chargeItem = systray.AddMenuItem("Charge: -", "Current battery charge")
		chargeItem.Disable()
	}
	if opts.Caps.ChatMix {
		chatmixItem = systray.AddMenuItem("ChatMix: -", "Current chat-mix balance")
		chatmixItem.Disable()
	}

	systray.AddSeparator()

	if opts.Caps.Sidetone {
		sidetoneItems = addOptionSubmenu("Sidetone", sidetoneOptions, opts.Conf.SidetoneLevel(), onSidetone)
	}
	if opts.Caps.LED {
		ledItems = addOptionSubmenu("LED", ledOptions, opts.Conf.LEDState(), onLED)
	}
	if opts.Caps.InactiveTime {
		inactiveItems = addOptionSubmenu("Inactive time", inactiveOptions, opts.Conf.InactiveTimeMinutes(), onInactiveTime)
	}

	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Quit the headset indicator")

	go func() {
		for {
			select {
			case <-refreshItem.ClickedCh:
				go opts.Poller.RefreshNow()
			case <-quitItem.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()

	go watchEvents()

	if err := opts.Poller.Start(); err != nil {
		logrus.WithError(err).Fatal("failed to start poller")
	}

	// Fill the menu right away instead of waiting a full interval.
	go opts.Poller.RefreshNow()
}

func onExit() {
	opts.Poller.Stop()
	logrus.Info("hctray exiting")
}

// addOptionSubmenu builds a checkable submenu and wires every entry to
// the given action. The entry matching current (if any) starts checked.
func addOptionSubmenu(title string, options []menuOption, current int, action func(int)) map[int]*systray.MenuItem {
	parent := systray.AddMenuItem(title, "")
	items := make(map[int]*systray.MenuItem, len(options))

	for _, opt := range options {
		item := parent.AddSubMenuItemCheckbox(opt.name, "", opt.value == current)
		items[opt.value] = item

		go func(item *systray.MenuItem, value int) {
			for range item.ClickedCh {
				action(value)
			}
		}(item, opt.value)
	}

	return items
}

func setCheckmarks(items map[int]*systray.MenuItem, current int) {
	for value, item := range items {
		if value == current {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

func onSidetone(level int) {
	if err := opts.Client.SetSidetone(context.Background(), level); err != nil {
		logrus.WithError(err).Error("failed to set sidetone")
		return
	}

	opts.Conf.SetSidetoneLevel(level)
	saveConfig()
	setCheckmarks(sidetoneItems, level)
}

func onLED(state int) {
	if err := opts.Client.SetLED(context.Background(), state != 0); err != nil {
		logrus.WithError(err).Error("failed to set LED state")
		return
	}

	opts.Conf.SetLEDState(state)
	saveConfig()
	setCheckmarks(ledItems, state)
}

func onInactiveTime(minutes int) {
	if err := opts.Client.SetInactiveTime(context.Background(), minutes); err != nil {
		logrus.WithError(err).Error("failed to set inactive time")
		return
	}

	opts.Conf.SetInactiveTimeMinutes(minutes)
	saveConfig()
	setCheckmarks(inactiveItems, minutes)
}

func saveConfig() {
	if err := opts.Conf.Save(); err != nil {
		logrus.WithError(err).Warn("failed to persist settings")
	}
}

func watchEvents() {
	ch := opts.Hub.Subscribe()
	defer opts.Hub.Unsubscribe(ch)

	for ev := range ch {
		switch ev.Name {
		case events.BatteryStatus:
			status, err := events.DecodeAs[events.BatteryStatusEvent](ev)
			if err != nil {
				logrus.WithError(err).Warn("failed to decode battery status event")
				continue
			}
			updateBattery(status)
		case events.ChatMixLevel:
			mix, err := events.DecodeAs[events.ChatMixLevelEvent](ev)
			if err != nil {
				logrus.WithError(err).Warn("failed to decode chatmix event")
				continue
			}
			updateChatMix(mix)
		}
	}
}

func updateBattery(status events.BatteryStatusEvent) {
	var text, tooltip string
	icon := idleColor

	switch status.State {
	case monitor.StateCharging.String():
		text = "Chg"
		tooltip = "Headset\nCharging"
	case monitor.StateUnavailable.String():
		text = "Off"
		tooltip = "Headset\nBattery Unavailable"
	default:
		text = fmt.Sprintf("%d%%", status.Level)
		tooltip = fmt.Sprintf("Headset\nBattery: %s", text)
		icon = monitor.ColorFor(status.Level)
	}

	systray.SetTitle(text)
	systray.SetTooltip(tooltip)
	if b := statusIcon(icon); b != nil {
		systray.SetIcon(b)
	}
	if chargeItem != nil {
		chargeItem.SetTitle("Charge: " + text)
	}
}

func updateChatMix(mix events.ChatMixLevelEvent) {
	if chatmixItem == nil {
		return
	}

	if mix.Err != "" {
		chatmixItem.SetTitle("ChatMix: N/A")
		return
	}
	chatmixItem.SetTitle(fmt.Sprintf("ChatMix: %d", mix.Level))
}
