package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/user-none/padnav/input"
)

const appDirName = "padnav"

// DefaultConfigPath returns the per-user config.json location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, "config.json"), nil
}

// LoadConfig loads the configuration from path.
// If the file doesn't exist, it returns default configuration.
// If the file is corrupted, it returns an error.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	// Check if file exists
	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	config := &Config{}
	if err := readFile(fs, path, config); err != nil {
		return nil, err
	}

	// Apply any migration for older config versions
	config = migrateConfig(config)

	return config, nil
}

// SaveConfig saves the configuration to path atomically
func SaveConfig(fs afero.Fs, path string, config *Config) error {
	return atomicWrite(fs, path, config)
}

// CreateConfigIfMissing creates a default config file if it doesn't exist
func CreateConfigIfMissing(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return SaveConfig(fs, path, DefaultConfig())
	}
	return nil
}

// DeleteConfig removes the config file
func DeleteConfig(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// migrateConfig handles any necessary migrations from older config versions
func migrateConfig(config *Config) *Config {
	// Currently at version 1, no migrations needed
	if config.Version == 0 {
		config.Version = 1
	}

	// Ensure defaults for any missing fields
	def := DefaultConfig()
	if config.Navigation.FirstDelayMs == 0 {
		config.Navigation.FirstDelayMs = def.Navigation.FirstDelayMs
	}
	if config.Navigation.RepeatDelayMs == 0 {
		config.Navigation.RepeatDelayMs = def.Navigation.RepeatDelayMs
	}
	if config.Navigation.Deadzone == nil {
		config.Navigation.Deadzone = def.Navigation.Deadzone
	}
	if config.Device.StickDeadzone == nil {
		config.Device.StickDeadzone = def.Device.StickDeadzone
	}
	if config.Device.TriggerThreshold == nil {
		config.Device.TriggerThreshold = def.Device.TriggerThreshold
	}
	if config.Rumble.Intensity == nil {
		config.Rumble.Intensity = def.Rumble.Intensity
	}
	if config.Rumble.DurationMs == 0 {
		config.Rumble.DurationMs = def.Rumble.DurationMs
	}
	if config.Sounds.Volume == nil {
		config.Sounds.Volume = def.Sounds.Volume
	}
	if config.Bridge.Listen == "" {
		config.Bridge.Listen = def.Bridge.Listen
	}
	if config.Bridge.Path == "" {
		config.Bridge.Path = def.Bridge.Path
	}

	return config
}

// InputConfig converts the stored settings into the input core's Config.
// The result is validated.
func (c *Config) InputConfig() (input.Config, error) {
	cfg := input.Config{
		FirstDelay:       time.Duration(c.Navigation.FirstDelayMs) * time.Millisecond,
		RepeatDelay:      time.Duration(c.Navigation.RepeatDelayMs) * time.Millisecond,
		NavDeadzone:      valueOr(c.Navigation.Deadzone, input.DefaultNavDeadzone),
		StickDeadzone:    valueOr(c.Device.StickDeadzone, input.DefaultStickDeadzone),
		TriggerThreshold: valueOr(c.Device.TriggerThreshold, input.DefaultTriggerThreshold),
		RumbleEnabled:    !c.Rumble.Disabled,
		RumbleIntensity:  valueOr(c.Rumble.Intensity, input.DefaultRumbleIntensity),
		RumbleDuration:   time.Duration(c.Rumble.DurationMs) * time.Millisecond,
	}
	if err := cfg.Validate(); err != nil {
		return input.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// KeyBindings returns the default keyboard bindings with the configured
// overrides applied. known, when non-nil, rejects unknown key names.
func (c *Config) KeyBindings(known func(string) bool) (input.Bindings, error) {
	return overrideBindings(input.DefaultKeyBindings(), c.Input.Keyboard, known, "keyboard")
}

// ControllerBindings returns the default gamepad bindings with the
// configured overrides applied. known, when non-nil, rejects unknown names.
func (c *Config) ControllerBindings(known func(string) bool) (input.Bindings, error) {
	return overrideBindings(input.DefaultPadBindings(), c.Input.Controller, known, "controller")
}

func overrideBindings(base input.Bindings, overrides map[string][]string, known func(string) bool, kind string) (input.Bindings, error) {
	o := make(input.Bindings, len(overrides))
	for name, physical := range overrides {
		btn, ok := input.ParseButton(name)
		if !ok {
			return nil, fmt.Errorf("%s binding: unknown button %q", kind, name)
		}
		for _, p := range physical {
			if known != nil && !known(p) {
				return nil, fmt.Errorf("%s binding for %s: unknown name %q", kind, btn, p)
			}
		}
		o[btn] = physical
	}
	return base.Override(o), nil
}
