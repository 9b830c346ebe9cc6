// Package notify delivers monitor notifications to the desktop.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/events"
	"github.com/hctray/hctray/pkg/monitor"
)

// Notifier subscribes to the event hub and shows a desktop notification
// for every monitor notification, unless notifications are disabled in
// the config.
type Notifier struct {
	conf config.Config

	// send is swappable for tests; defaults to beeep.
	send func(severity, title, message string) error
}

func New(conf config.Config) *Notifier {
	return &Notifier{
		conf: conf,
		send: sendDesktop,
	}
}

// Listen consumes notification events until the hub closes the channel.
// Run it on its own goroutine.
func (n *Notifier) Listen(hub *events.EventHub) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	for ev := range ch {
		if ev.Name != events.Notification {
			continue
		}

		payload, err := events.DecodeAs[events.NotificationEvent](ev)
		if err != nil {
			logrus.WithError(err).Warn("failed to decode notification event")
			continue
		}

		n.Show(payload.Severity, payload.Title, payload.Message)
	}
}

// Show displays one notification, honoring the config switch.
func (n *Notifier) Show(severity, title, message string) {
	if !n.conf.NotificationsEnabled() {
		logrus.WithFields(logrus.Fields{
			"title":    title,
			"severity": severity,
		}).Debug("notifications disabled, dropping")
		return
	}

	if err := n.send(severity, title, message); err != nil {
		logrus.WithError(err).Warnf("failed to show notification %q", title)
	}
}

func sendDesktop(severity, title, message string) error {
	// Critical notifications use the alert path so desktops that honor
	// urgency keep them on screen longer.
	if severity == monitor.SeverityCritical.String() {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}
