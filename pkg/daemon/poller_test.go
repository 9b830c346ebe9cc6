package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/hctray/hctray/pkg/config"
	"github.com/hctray/hctray/pkg/events"
	"github.com/hctray/hctray/pkg/headsetcontrol"
	"github.com/hctray/hctray/pkg/monitor"
)

// fakeHeadset implements HeadsetClient for tests.
type fakeHeadset struct {
	caps    headsetcontrol.Capabilities
	capsErr error

	readings []monitor.Reading
	chatmix  int
	mixErr   error
}

func (f *fakeHeadset) Capabilities(context.Context) (headsetcontrol.Capabilities, error) {
	return f.caps, f.capsErr
}

func (f *fakeHeadset) Battery(context.Context) monitor.Reading {
	r := f.readings[0]
	if len(f.readings) > 1 {
		f.readings = f.readings[1:]
	}
	return r
}

func (f *fakeHeadset) ChatMix(context.Context) (int, error) {
	return f.chatmix, f.mixErr
}

func newTestPoller(hc HeadsetClient) (*Poller, chan events.Event) {
	conf := config.NewFileFromConfig(nil, "")
	mon := monitor.New(conf.LowBatteryThreshold(), conf.MediumBatteryThreshold())
	hub := events.NewEventHub()
	ch := hub.Subscribe()
	return NewPoller(conf, hc, mon, hub), ch
}

func collect(ch chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestRefreshPublishesBatteryStatus(t *testing.T) {
	hc := &fakeHeadset{
		caps:     headsetcontrol.Capabilities{Battery: true},
		readings: []monitor.Reading{monitor.Percent(85)},
	}
	p, ch := newTestPoller(hc)

	if err := p.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	evs := collect(ch)
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].Name != events.BatteryStatus {
		t.Fatalf("event name = %q", evs[0].Name)
	}

	status, err := events.DecodeAs[events.BatteryStatusEvent](evs[0])
	if err != nil {
		t.Fatalf("DecodeAs: %v", err)
	}
	if status.State != "high" || status.Level != 85 {
		t.Errorf("unexpected status: %+v", status)
	}
	if status.Color == "" {
		t.Errorf("numeric reading should carry a color")
	}
}

func TestRefreshPublishesTransitionNotifications(t *testing.T) {
	hc := &fakeHeadset{
		caps:     headsetcontrol.Capabilities{Battery: true},
		readings: []monitor.Reading{monitor.Percent(60), monitor.Percent(15)},
	}
	p, ch := newTestPoller(hc)

	p.refresh() // baseline
	collect(ch)

	p.refresh() // 60 -> 15: low warning + multiple-of-5 critical
	evs := collect(ch)

	var notifs []events.NotificationEvent
	for _, ev := range evs {
		if ev.Name != events.Notification {
			continue
		}
		payload, err := events.DecodeAs[events.NotificationEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs: %v", err)
		}
		notifs = append(notifs, payload)
	}

	if len(notifs) != 2 {
		t.Fatalf("expected 2 notifications, got %+v", notifs)
	}
	if notifs[0].Severity != "warning" || notifs[0].Title != "Headset Battery Low" {
		t.Errorf("unexpected first notification: %+v", notifs[0])
	}
	if notifs[1].Severity != "critical" {
		t.Errorf("unexpected second notification: %+v", notifs[1])
	}
}

func TestRefreshSkipsMissingCapabilities(t *testing.T) {
	hc := &fakeHeadset{
		caps:     headsetcontrol.Capabilities{ChatMix: true},
		readings: []monitor.Reading{monitor.Percent(50)},
		chatmix:  64,
	}
	p, ch := newTestPoller(hc)

	p.refresh()
	evs := collect(ch)

	if len(evs) != 1 || evs[0].Name != events.ChatMixLevel {
		t.Fatalf("expected only a chatmix event, got %+v", evs)
	}
}

func TestRefreshCapabilityProbeFailureAssumesAll(t *testing.T) {
	hc := &fakeHeadset{
		capsErr:  errors.New("device busy"),
		readings: []monitor.Reading{monitor.Charging()},
		chatmix:  32,
	}
	p, ch := newTestPoller(hc)

	p.refresh()
	evs := collect(ch)

	// Both battery and chatmix must still be polled.
	names := map[string]bool{}
	for _, ev := range evs {
		names[ev.Name] = true
	}
	if !names[events.BatteryStatus] || !names[events.ChatMixLevel] {
		t.Fatalf("expected battery and chatmix events, got %+v", evs)
	}
}

func TestRefreshChatMixErrorIsPublished(t *testing.T) {
	hc := &fakeHeadset{
		caps:   headsetcontrol.Capabilities{ChatMix: true},
		mixErr: errors.New("chatmix unavailable"),
	}
	p, ch := newTestPoller(hc)

	p.refresh()
	evs := collect(ch)
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %+v", evs)
	}

	payload, err := events.DecodeAs[events.ChatMixLevelEvent](evs[0])
	if err != nil {
		t.Fatalf("DecodeAs: %v", err)
	}
	if payload.Err == "" {
		t.Errorf("expected error payload, got %+v", payload)
	}
}
