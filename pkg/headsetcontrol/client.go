package headsetcontrol

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/monitor"
)

// HeadsetControl command-line options.
const (
	optionCapabilities = "-?"
	optionBattery      = "-b"
	optionSilent       = "-c"
	optionOutput       = "-o"
	outputFormat       = "JSON"
	optionChatMix      = "-m"
	optionSidetone     = "-s"
	optionLED          = "-l"
	optionInactiveTime = "-i"
)

const commandTimeout = 10 * time.Second

// Client shells out to the HeadsetControl binary and parses its JSON
// output. It owns no state beyond the resolved binary path.
type Client struct {
	binary string
}

// NewClient resolves the HeadsetControl binary on PATH (or verifies an
// explicit path) and returns a client bound to it.
func NewClient(binary string) (*Client, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "unable to locate headsetcontrol binary %q", binary)
	}

	return &Client{binary: path}, nil
}

// Binary returns the resolved binary path.
func (c *Client) Binary() string {
	return c.binary
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	args = append(args, optionSilent, optionOutput, outputFormat)
	out, err := exec.CommandContext(ctx, c.binary, args...).Output()
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "headsetcontrol %v failed", args)
	}
	return out, nil
}

// Battery polls the battery once. It never returns an error: subprocess
// and parse failures become error readings, and a missing device or a
// battery-less headset becomes an unavailable reading, so the monitor
// always receives a total input.
func (c *Client) Battery(ctx context.Context) monitor.Reading {
	out, err := c.run(ctx, optionBattery)
	if err != nil {
		logrus.WithError(err).Debug("battery poll failed")
		return monitor.Error()
	}

	reading, err := parseBattery(out)
	if err != nil {
		logrus.WithError(err).Warn("failed to parse battery output")
		return monitor.Error()
	}
	return reading
}

func parseBattery(out []byte) (monitor.Reading, error) {
	var doc jsonOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		return monitor.Reading{}, pkgerrors.Wrap(err, "failed to unmarshal battery JSON")
	}

	if len(doc.Devices) == 0 {
		return monitor.Unavailable(), nil
	}

	// Only the first device is considered.
	battery := doc.Devices[0].Battery
	if battery == nil {
		return monitor.Unavailable(), nil
	}

	switch battery.Status {
	case batteryStatusCharging:
		return monitor.Charging(), nil
	case batteryStatusUnavailable:
		return monitor.Unavailable(), nil
	}

	if battery.Level < 0 || battery.Level > 100 {
		return monitor.Reading{}, pkgerrors.Errorf("battery level %d out of range", battery.Level)
	}
	return monitor.Percent(battery.Level), nil
}

// ChatMix reads the current chat-mix level.
func (c *Client) ChatMix(ctx context.Context) (int, error) {
	out, err := c.run(ctx, optionChatMix)
	if err != nil {
		return 0, err
	}
	return parseChatMix(out)
}

func parseChatMix(out []byte) (int, error) {
	var doc jsonOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		return 0, pkgerrors.Wrap(err, "failed to unmarshal chatmix JSON")
	}

	if len(doc.Devices) == 0 {
		return 0, pkgerrors.New("no headset devices found")
	}

	device := doc.Devices[0]
	if msg, ok := device.Errors["chatmix"]; ok {
		return 0, pkgerrors.Errorf("chatmix unavailable: %s", msg)
	}
	if device.ChatMix == nil {
		return 0, pkgerrors.New("headset does not report chatmix")
	}

	return device.ChatMix.Level, nil
}

// Capabilities asks the headset which features it supports.
func (c *Client) Capabilities(ctx context.Context) (Capabilities, error) {
	out, err := c.run(ctx, optionCapabilities)
	if err != nil {
		return Capabilities{}, err
	}
	return parseCapabilities(out)
}

func parseCapabilities(out []byte) (Capabilities, error) {
	var doc jsonOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		return Capabilities{}, pkgerrors.Wrap(err, "failed to unmarshal capabilities JSON")
	}

	if len(doc.Devices) == 0 {
		return Capabilities{}, pkgerrors.New("no headset devices found")
	}

	caps := Capabilities{}
	for _, name := range doc.Devices[0].Capabilities {
		switch name {
		case capBatteryStatus:
			caps.Battery = true
		case capChatMix:
			caps.ChatMix = true
		case capSidetone:
			caps.Sidetone = true
		case capLED:
			caps.LED = true
		case capInactiveTime:
			caps.InactiveTime = true
		}
	}
	return caps, nil
}

// SetSidetone sets the sidetone level, 0 (off) to 128 (max).
func (c *Client) SetSidetone(ctx context.Context, level int) error {
	if level < 0 || level > 128 {
		return pkgerrors.Errorf("sidetone level %d out of range [0,128]", level)
	}

	_, err := c.run(ctx, optionSidetone, strconv.Itoa(level))
	return err
}

// SetLED switches the headset lights on or off.
func (c *Client) SetLED(ctx context.Context, on bool) error {
	state := 0
	if on {
		state = 1
	}

	_, err := c.run(ctx, optionLED, strconv.Itoa(state))
	return err
}

// SetInactiveTime sets the auto-off timeout in minutes, 0 to 90.
// Zero disables the timeout.
func (c *Client) SetInactiveTime(ctx context.Context, minutes int) error {
	if minutes < 0 || minutes > 90 {
		return pkgerrors.Errorf("inactive time %d out of range [0,90] minutes", minutes)
	}

	_, err := c.run(ctx, optionInactiveTime, strconv.Itoa(minutes))
	return err
}
