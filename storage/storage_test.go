package storage

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/user-none/padnav/input"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != 1 {
		t.Errorf("expected version 1, got %d", config.Version)
	}
	if config.Navigation.FirstDelayMs != 220 {
		t.Errorf("expected first delay 220, got %d", config.Navigation.FirstDelayMs)
	}
	if config.Navigation.RepeatDelayMs != 85 {
		t.Errorf("expected repeat delay 85, got %d", config.Navigation.RepeatDelayMs)
	}
	if config.Bridge.Enabled {
		t.Error("expected bridge disabled by default")
	}
}

func TestDefaultConfigMatchesInputDefaults(t *testing.T) {
	cfg, err := DefaultConfig().InputConfig()
	if err != nil {
		t.Fatalf("InputConfig failed: %v", err)
	}
	if cfg != input.DefaultConfig() {
		t.Errorf("stored defaults diverge from input defaults:\n got %+v\nwant %+v", cfg, input.DefaultConfig())
	}
}

func TestLoadConfigMissingReturnsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	config, err := LoadConfig(fs, "/cfg/config.json")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Navigation.FirstDelayMs != 220 {
		t.Errorf("expected defaults, got %+v", config.Navigation)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, path := range []string{"/cfg/config.json", "/cfg/config.yaml", "/cfg/config.yml"} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()

			config := DefaultConfig()
			config.Navigation.RepeatDelayMs = 60
			config.Rumble.Disabled = true
			config.Sounds.Select = "/sfx/select.wav"
			config.Input.Keyboard = map[string][]string{"Select": {"K"}}

			if err := SaveConfig(fs, path, config); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			// Verify temp file is cleaned up
			if _, err := fs.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
				t.Error("temp file was not cleaned up")
			}

			loaded, err := LoadConfig(fs, path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if loaded.Navigation.RepeatDelayMs != 60 || !loaded.Rumble.Disabled {
				t.Errorf("values lost: %+v %+v", loaded.Navigation, loaded.Rumble)
			}
			if loaded.Sounds.Select != "/sfx/select.wav" {
				t.Errorf("sound path = %q", loaded.Sounds.Select)
			}
			if got := loaded.Input.Keyboard["Select"]; len(got) != 1 || got[0] != "K" {
				t.Errorf("keyboard override = %v", got)
			}
		})
	}
}

func TestYAMLIsWrittenAsYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := SaveConfig(fs, "/c.yaml", DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fs, "/c.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "firstDelayMs: 220") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}
}

func TestLoadConfigMigratesMissingFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/config.json", []byte(`{"navigation":{"repeatDelayMs":50}}`), 0o644)

	config, err := LoadConfig(fs, "/config.json")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Version != 1 {
		t.Errorf("expected version 1, got %d", config.Version)
	}
	if config.Navigation.RepeatDelayMs != 50 {
		t.Errorf("explicit value overwritten: %d", config.Navigation.RepeatDelayMs)
	}
	if config.Navigation.FirstDelayMs != 220 || *config.Device.StickDeadzone != 0.15 {
		t.Errorf("missing fields not defaulted: %+v %+v", config.Navigation, config.Device)
	}
	if config.Bridge.Path != "/events" {
		t.Errorf("bridge path = %q", config.Bridge.Path)
	}
}

func TestLoadConfigKeepsExplicitZero(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/config.json", []byte(`{"navigation":{"deadzone":0},"device":{"stickDeadzone":0,"triggerThreshold":0},"sounds":{"volume":0}}`), 0o644)

	config, err := LoadConfig(fs, "/config.json")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg, err := config.InputConfig()
	if err != nil {
		t.Fatalf("InputConfig failed: %v", err)
	}
	if cfg.NavDeadzone != 0 || cfg.StickDeadzone != 0 || cfg.TriggerThreshold != 0 {
		t.Errorf("explicit zero replaced by default: %+v", cfg)
	}
	if v := config.Sounds.Level(); v != 0 {
		t.Errorf("volume = %v, want 0", v)
	}
	if *config.Rumble.Intensity != 0.4 {
		t.Errorf("missing intensity not defaulted: %v", *config.Rumble.Intensity)
	}
}

func TestLoadConfigCorrupted(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/config.json", []byte(`{not json`), 0o644)

	if _, err := LoadConfig(fs, "/config.json"); err == nil {
		t.Fatal("expected error for corrupted config")
	}
}

func TestCreateAndDeleteConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/a/b/config.json"

	if err := CreateConfigIfMissing(fs, path); err != nil {
		t.Fatalf("CreateConfigIfMissing failed: %v", err)
	}
	if _, err := fs.Stat(path); err != nil {
		t.Fatalf("config not created: %v", err)
	}

	// An existing file is left alone.
	custom := DefaultConfig()
	custom.Navigation.FirstDelayMs = 400
	SaveConfig(fs, path, custom)
	CreateConfigIfMissing(fs, path)
	loaded, _ := LoadConfig(fs, path)
	if loaded.Navigation.FirstDelayMs != 400 {
		t.Error("CreateConfigIfMissing overwrote an existing file")
	}

	if err := DeleteConfig(fs, path); err != nil {
		t.Fatalf("DeleteConfig failed: %v", err)
	}
	if err := DeleteConfig(fs, path); err != nil {
		t.Errorf("deleting a missing config should succeed, got %v", err)
	}
}

func TestInputConfigConversion(t *testing.T) {
	config := DefaultConfig()
	config.Navigation.FirstDelayMs = 300
	config.Rumble.DurationMs = 40
	config.Rumble.Disabled = true

	cfg, err := config.InputConfig()
	if err != nil {
		t.Fatalf("InputConfig failed: %v", err)
	}
	if cfg.FirstDelay != 300*time.Millisecond || cfg.RumbleDuration != 40*time.Millisecond {
		t.Errorf("durations not converted: %+v", cfg)
	}
	if cfg.RumbleEnabled {
		t.Error("rumble should be disabled")
	}

	config.Navigation.Deadzone = Float(3)
	if _, err := config.InputConfig(); !errors.Is(err, input.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBindingsOverrides(t *testing.T) {
	config := DefaultConfig()
	config.Input.Keyboard = map[string][]string{"select": {"K", "L"}}
	config.Input.Controller = map[string][]string{"Back": {"Y"}}

	kb, err := config.KeyBindings(nil)
	if err != nil {
		t.Fatalf("KeyBindings failed: %v", err)
	}
	if got := kb[input.ButtonSelect]; len(got) != 2 || got[0] != "K" {
		t.Errorf("select = %v", got)
	}
	if got := kb[input.ButtonUp]; len(got) == 0 || got[0] != "ArrowUp" {
		t.Errorf("defaults lost, up = %v", got)
	}

	pad, err := config.ControllerBindings(nil)
	if err != nil {
		t.Fatalf("ControllerBindings failed: %v", err)
	}
	if got := pad[input.ButtonBack]; len(got) != 1 || got[0] != "Y" {
		t.Errorf("back = %v", got)
	}
}

func TestBindingsRejectUnknown(t *testing.T) {
	config := DefaultConfig()
	config.Input.Keyboard = map[string][]string{"Turbo": {"K"}}
	if _, err := config.KeyBindings(nil); err == nil {
		t.Error("expected error for unknown logical button")
	}

	config.Input.Keyboard = map[string][]string{"Select": {"Hyper"}}
	known := func(name string) bool { return name != "Hyper" }
	if _, err := config.KeyBindings(known); err == nil {
		t.Error("expected error for unknown key name")
	}
}
