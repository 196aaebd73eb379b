// Package storage persists the application configuration.
package storage

// Config represents the application configuration stored in config.json
// (or config.yaml)
type Config struct {
	Version    int              `json:"version" yaml:"version"`
	Navigation NavigationConfig `json:"navigation" yaml:"navigation"`
	Device     DeviceConfig     `json:"device" yaml:"device"`
	Rumble     RumbleConfig     `json:"rumble" yaml:"rumble"`
	Sounds     SoundConfig      `json:"sounds" yaml:"sounds"`
	Bridge     BridgeConfig     `json:"bridge" yaml:"bridge"`
	Input      InputConfig      `json:"input" yaml:"input"`
}

// NavigationConfig contains direction repeat settings
type NavigationConfig struct {
	FirstDelayMs  int      `json:"firstDelayMs" yaml:"firstDelayMs"`             // Hold before repeating
	RepeatDelayMs int      `json:"repeatDelayMs" yaml:"repeatDelayMs"`           // Steady repeat interval
	Deadzone      *float64 `json:"deadzone,omitempty" yaml:"deadzone,omitempty"` // nil = default; 0 is valid
}

// DeviceConfig contains device-level analog thresholds. nil = default.
type DeviceConfig struct {
	StickDeadzone    *float64 `json:"stickDeadzone,omitempty" yaml:"stickDeadzone,omitempty"`
	TriggerThreshold *float64 `json:"triggerThreshold,omitempty" yaml:"triggerThreshold,omitempty"`
}

// RumbleConfig contains the select haptic pulse
type RumbleConfig struct {
	Disabled   bool     `json:"disabled" yaml:"disabled"`
	Intensity  *float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	DurationMs int      `json:"durationMs" yaml:"durationMs"`
}

// SoundConfig contains sound effect settings. Empty paths disable a sound.
type SoundConfig struct {
	Muted  bool     `json:"muted" yaml:"muted"`
	Volume *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Nav    string   `json:"nav,omitempty" yaml:"nav,omitempty"`
	Select string   `json:"select,omitempty" yaml:"select,omitempty"`
	Back   string   `json:"back,omitempty" yaml:"back,omitempty"`
}

// BridgeConfig contains the WebSocket event bridge settings
type BridgeConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Listen  string `json:"listen" yaml:"listen"` // host:port
	Path    string `json:"path" yaml:"path"`
}

// InputConfig contains binding overrides. Keys are logical button names
// ("Up", "Select", ...), values are physical names. nil = defaults.
type InputConfig struct {
	Keyboard   map[string][]string `json:"keyboard,omitempty" yaml:"keyboard,omitempty"`
	Controller map[string][]string `json:"controller,omitempty" yaml:"controller,omitempty"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Navigation: NavigationConfig{
			FirstDelayMs:  220,
			RepeatDelayMs: 85,
			Deadzone:      Float(0.32),
		},
		Device: DeviceConfig{
			StickDeadzone:    Float(0.15),
			TriggerThreshold: Float(0.1),
		},
		Rumble: RumbleConfig{
			Intensity:  Float(0.4),
			DurationMs: 100,
		},
		Sounds: SoundConfig{
			Volume: Float(1.0),
		},
		Bridge: BridgeConfig{
			Enabled: false,
			Listen:  "127.0.0.1:7070",
			Path:    "/events",
		},
	}
}

// Float returns a pointer to v, for setting optional fields.
func Float(v float64) *float64 { return &v }

// Level returns the configured volume, or 0 when unset.
func (s SoundConfig) Level() float64 {
	if s.Volume == nil {
		return 0
	}
	return *s.Volume
}
