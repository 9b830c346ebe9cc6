package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	f := NewFileFromConfig(nil, "")

	if got := f.LowBatteryThreshold(); got != 20 {
		t.Errorf("LowBatteryThreshold() = %d, want 20", got)
	}
	if got := f.MediumBatteryThreshold(); got != 50 {
		t.Errorf("MediumBatteryThreshold() = %d, want 50", got)
	}
	if got := f.PollInterval(); got != 60*time.Second {
		t.Errorf("PollInterval() = %s, want 60s", got)
	}
	if !f.NotificationsEnabled() {
		t.Errorf("notifications should default to enabled")
	}
	if got := f.HeadsetControlBinary(); got != "headsetcontrol" {
		t.Errorf("HeadsetControlBinary() = %q", got)
	}
	if got := f.SidetoneLevel(); got != -1 {
		t.Errorf("SidetoneLevel() = %d, want -1 (unset)", got)
	}
	if got := f.LEDState(); got != -1 {
		t.Errorf("LEDState() = %d, want -1 (unset)", got)
	}
	if got := f.InactiveTimeMinutes(); got != -1 {
		t.Errorf("InactiveTimeMinutes() = %d, want -1 (unset)", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on missing file: %v", err)
	}
	if got := f.LowBatteryThreshold(); got != 20 {
		t.Errorf("missing file should yield defaults, got low=%d", got)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	f.SetLowBatteryThreshold(15)
	f.SetMediumBatteryThreshold(60)
	f.SetPollInterval(30 * time.Second)
	f.SetNotificationsEnabled(false)
	f.SetSidetoneLevel(64)
	f.SetLEDState(1)
	f.SetInactiveTimeMinutes(30)

	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile after save: %v", err)
	}

	if got := g.LowBatteryThreshold(); got != 15 {
		t.Errorf("low = %d, want 15", got)
	}
	if got := g.MediumBatteryThreshold(); got != 60 {
		t.Errorf("medium = %d, want 60", got)
	}
	if got := g.PollInterval(); got != 30*time.Second {
		t.Errorf("interval = %s, want 30s", got)
	}
	if g.NotificationsEnabled() {
		t.Errorf("notifications should stay disabled")
	}
	if got := g.SidetoneLevel(); got != 64 {
		t.Errorf("sidetone = %d, want 64", got)
	}
	if got := g.LEDState(); got != 1 {
		t.Errorf("led = %d, want 1", got)
	}
	if got := g.InactiveTimeMinutes(); got != 30 {
		t.Errorf("inactive = %d, want 30", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on empty file: %v", err)
	}
	if got := f.MediumBatteryThreshold(); got != 50 {
		t.Errorf("empty file should yield defaults, got medium=%d", got)
	}
}

func TestLoadGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
