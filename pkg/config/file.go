package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	LowBatteryThreshold:    ptr.To(20),
	MediumBatteryThreshold: ptr.To(50),
	PollIntervalSeconds:    ptr.To(60),
	Notifications:          ptr.To(true),
	HeadsetControlBinary:   ptr.To("headsetcontrol"),
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hctray.json"
	}
	return filepath.Join(dir, "hctray", "config.json")
}

var _ Config = &File{}

// File is a JSON-file-backed Config. Fields absent from the file fall
// back to defaults, so old config files keep working as options are
// added.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	if err := f.Load(); err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

type RawFileConfig struct {
	LowBatteryThreshold    *int    `json:"lowBatteryThreshold,omitempty"`
	MediumBatteryThreshold *int    `json:"mediumBatteryThreshold,omitempty"`
	PollIntervalSeconds    *int    `json:"pollIntervalSeconds,omitempty"`
	Notifications          *bool   `json:"notifications,omitempty"`
	HeadsetControlBinary   *string `json:"headsetcontrolBinary,omitempty"`
	SidetoneLevel          *int    `json:"sidetoneLevel,omitempty"`
	LEDState               *int    `json:"ledState,omitempty"`
	InactiveTimeMinutes    *int    `json:"inactiveTimeMinutes,omitempty"`
}

func (f *File) LowBatteryThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LowBatteryThreshold != nil {
		return *f.c.LowBatteryThreshold
	}
	return *defaultFileConfig.LowBatteryThreshold
}

func (f *File) MediumBatteryThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.MediumBatteryThreshold != nil {
		return *f.c.MediumBatteryThreshold
	}
	return *defaultFileConfig.MediumBatteryThreshold
}

func (f *File) PollInterval() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := *defaultFileConfig.PollIntervalSeconds
	if f.c.PollIntervalSeconds != nil {
		seconds = *f.c.PollIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (f *File) NotificationsEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Notifications != nil {
		return *f.c.Notifications
	}
	return *defaultFileConfig.Notifications
}

func (f *File) HeadsetControlBinary() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HeadsetControlBinary != nil {
		return *f.c.HeadsetControlBinary
	}
	return *defaultFileConfig.HeadsetControlBinary
}

func (f *File) SidetoneLevel() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.SidetoneLevel != nil {
		return *f.c.SidetoneLevel
	}
	return -1
}

func (f *File) LEDState() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LEDState != nil {
		return *f.c.LEDState
	}
	return -1
}

func (f *File) InactiveTimeMinutes() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.InactiveTimeMinutes != nil {
		return *f.c.InactiveTimeMinutes
	}
	return -1
}

func (f *File) SetLowBatteryThreshold(i int) {
	if i < 0 || i >= f.MediumBatteryThreshold() {
		panic("low battery threshold must be between 0 and the medium threshold")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LowBatteryThreshold = &i
}

func (f *File) SetMediumBatteryThreshold(i int) {
	if i > 100 || i <= f.LowBatteryThreshold() {
		panic("medium battery threshold must be between the low threshold and 100")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.MediumBatteryThreshold = &i
}

func (f *File) SetPollInterval(d time.Duration) {
	if d < time.Second {
		panic("poll interval must be at least 1 second")
	}

	seconds := int(d / time.Second)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.PollIntervalSeconds = &seconds
}

func (f *File) SetNotificationsEnabled(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Notifications = &b
}

func (f *File) SetHeadsetControlBinary(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HeadsetControlBinary = &s
}

func (f *File) SetSidetoneLevel(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SidetoneLevel = &i
}

func (f *File) SetLEDState(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LEDState = &i
}

func (f *File) SetInactiveTimeMinutes(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.InactiveTimeMinutes = &i
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: start from an empty config so every getter
			// falls back to its default.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if err := json.Unmarshal(b, &conf); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if dir := filepath.Dir(f.filepath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pkgerrors.Wrapf(err, "failed to create config directory %s", dir)
		}
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.c); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"lowBatteryThreshold":    f.LowBatteryThreshold(),
		"mediumBatteryThreshold": f.MediumBatteryThreshold(),
		"pollInterval":           f.PollInterval().String(),
		"notifications":          f.NotificationsEnabled(),
		"headsetcontrolBinary":   f.HeadsetControlBinary(),
		"sidetoneLevel":          f.SidetoneLevel(),
		"ledState":               f.LEDState(),
		"inactiveTimeMinutes":    f.InactiveTimeMinutes(),
	}
}
