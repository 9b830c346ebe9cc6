// Package daemon drives the periodic headset polls and publishes the
// results to the event hub.
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/events"
	"github.com/hctray/hctray/pkg/headsetcontrol"
	"github.com/hctray/hctray/pkg/monitor"
)

// HeadsetClient is the subset of the headsetcontrol client the poller
// needs. Declared here so tests can inject a fake.
type HeadsetClient interface {
	Capabilities(ctx context.Context) (headsetcontrol.Capabilities, error)
	Battery(ctx context.Context) monitor.Reading
	ChatMix(ctx context.Context) (int, error)
}

// Poller owns the refresh pipeline: query capabilities, poll battery and
// chat-mix, feed the battery reading through the monitor, and publish
// the results. A mutex serializes scheduled ticks against user-triggered
// refreshes, since the monitor memory update must not interleave.
type Poller struct {
	mu sync.Mutex

	conf config.Config
	hc   HeadsetClient
	mon  *monitor.Monitor
	hub  *events.EventHub

	sched *Scheduler
}

func NewPoller(conf config.Config, hc HeadsetClient, mon *monitor.Monitor, hub *events.EventHub) *Poller {
	p := &Poller{
		conf: conf,
		hc:   hc,
		mon:  mon,
		hub:  hub,
	}
	p.sched = NewScheduler(p.refresh, func(data any) {
		logrus.Errorf("poll failed: %v", data)
	})
	return p
}

// Start begins periodic polling at the configured interval.
func (p *Poller) Start() error {
	interval := int(p.conf.PollInterval() / time.Second)
	if err := p.sched.Schedule(fmt.Sprintf("@every %ds", interval)); err != nil {
		return err
	}
	p.sched.Start()

	logrus.WithFields(logrus.Fields{
		"interval": p.conf.PollInterval().String(),
	}).Info("poller started")
	return nil
}

func (p *Poller) Stop() {
	p.sched.Stop()
}

// RefreshNow runs one poll immediately (the tray's Refresh action) and
// skips the next scheduled tick so polls do not bunch up.
func (p *Poller) RefreshNow() {
	if err := p.refresh(); err != nil {
		logrus.WithError(err).Error("manual refresh failed")
	}
	if err := p.sched.Skip(); err != nil {
		logrus.WithError(err).Debug("could not skip next scheduled poll")
	}
}

func (p *Poller) refresh() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx := context.Background()

	caps, err := p.hc.Capabilities(ctx)
	if err != nil {
		// Same fallback as the capability probe in the menu: assume
		// everything, so a flaky probe does not blank the tray.
		logrus.WithError(err).Debug("capability probe failed, assuming all capabilities")
		caps = headsetcontrol.AllCapabilities()
	}

	if caps.Battery {
		p.pollBattery(ctx)
	}
	if caps.ChatMix {
		p.pollChatMix(ctx)
	}

	return nil
}

func (p *Poller) pollBattery(ctx context.Context) {
	reading := p.hc.Battery(ctx)
	notifications := p.mon.OnReading(reading)
	state := p.mon.LastState()

	status := events.BatteryStatusEvent{
		State: state.String(),
		Level: -1,
		Ts:    time.Now().Unix(),
	}
	if reading.Kind == monitor.ReadingPercent {
		status.Level = reading.Level
		status.Color = monitor.ColorFor(reading.Level).Hex()
	}
	p.hub.Publish(events.BatteryStatus, status)

	logrus.WithFields(logrus.Fields{
		"state":         status.State,
		"level":         status.Level,
		"notifications": len(notifications),
	}).Debug("battery poll")

	for _, n := range notifications {
		p.hub.Publish(events.Notification, events.NotificationEvent{
			Severity: n.Severity.String(),
			Title:    n.Title,
			Message:  n.Message,
		})
	}
}

func (p *Poller) pollChatMix(ctx context.Context) {
	payload := events.ChatMixLevelEvent{}

	level, err := p.hc.ChatMix(ctx)
	if err != nil {
		logrus.WithError(err).Debug("chatmix poll failed")
		payload.Err = err.Error()
	} else {
		payload.Level = level
	}

	p.hub.Publish(events.ChatMixLevel, payload)
}
