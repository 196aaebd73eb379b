package input

import (
	"errors"
	"fmt"
	"time"
)

// Navigation timing and threshold defaults
const (
	DefaultFirstDelay       = 220 * time.Millisecond // Hold before the first repeat
	DefaultRepeatDelay      = 85 * time.Millisecond  // Steady repeat interval (~12 Hz)
	DefaultNavDeadzone      = 0.32
	DefaultStickDeadzone    = 0.15
	DefaultTriggerThreshold = 0.1
	DefaultRumbleIntensity  = 0.4
	DefaultRumbleDuration   = 100 * time.Millisecond
)

// digitalThreshold is the value at which a non-trigger pad button counts as down.
const digitalThreshold = 0.5

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid input config")

// Config holds the tunables of the input core.
type Config struct {
	FirstDelay       time.Duration
	RepeatDelay      time.Duration
	NavDeadzone      float64 // applied by the resolver
	StickDeadzone    float64 // applied by adapters
	TriggerThreshold float64
	RumbleEnabled    bool
	RumbleIntensity  float64
	RumbleDuration   time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		FirstDelay:       DefaultFirstDelay,
		RepeatDelay:      DefaultRepeatDelay,
		NavDeadzone:      DefaultNavDeadzone,
		StickDeadzone:    DefaultStickDeadzone,
		TriggerThreshold: DefaultTriggerThreshold,
		RumbleEnabled:    true,
		RumbleIntensity:  DefaultRumbleIntensity,
		RumbleDuration:   DefaultRumbleDuration,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.FirstDelay <= 0 {
		return fmt.Errorf("%w: first delay must be positive, got %v", ErrInvalidConfig, c.FirstDelay)
	}
	if c.RepeatDelay <= 0 {
		return fmt.Errorf("%w: repeat delay must be positive, got %v", ErrInvalidConfig, c.RepeatDelay)
	}
	if c.RumbleDuration < 0 {
		return fmt.Errorf("%w: rumble duration must not be negative, got %v", ErrInvalidConfig, c.RumbleDuration)
	}
	units := []struct {
		name string
		v    float64
	}{
		{"navigation deadzone", c.NavDeadzone},
		{"stick deadzone", c.StickDeadzone},
		{"trigger threshold", c.TriggerThreshold},
		{"rumble intensity", c.RumbleIntensity},
	}
	for _, u := range units {
		if !(u.v >= 0 && u.v <= 1) {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, u.name, u.v)
		}
	}
	return nil
}

// Bindings maps each logical button to the physical names that drive it.
// Any bound name being down makes the button down.
type Bindings map[Button][]string

// DefaultKeyBindings returns the default keyboard layout.
func DefaultKeyBindings() Bindings {
	return Bindings{
		ButtonUp:     {"ArrowUp", "W"},
		ButtonDown:   {"ArrowDown", "S"},
		ButtonLeft:   {"ArrowLeft", "A"},
		ButtonRight:  {"ArrowRight", "D"},
		ButtonSelect: {"Enter", "Space"},
		ButtonBack:   {"Escape", "Backspace"},
		ButtonStart:  {"Tab"},
		ButtonL1:     {"Q"},
		ButtonR1:     {"E"},
		ButtonL2:     {"Z"},
		ButtonR2:     {"C"},
	}
}

// DefaultPadBindings returns the default standard-layout gamepad mapping.
func DefaultPadBindings() Bindings {
	return Bindings{
		ButtonUp:     {"DpadUp"},
		ButtonDown:   {"DpadDown"},
		ButtonLeft:   {"DpadLeft"},
		ButtonRight:  {"DpadRight"},
		ButtonSelect: {"A"},
		ButtonBack:   {"B"},
		ButtonStart:  {"Start"},
		ButtonL1:     {"L1"},
		ButtonR1:     {"R1"},
		ButtonL2:     {"L2"},
		ButtonR2:     {"R2"},
	}
}

// Override returns a copy of b with the buttons in o replaced.
func (b Bindings) Override(o Bindings) Bindings {
	out := make(Bindings, len(b))
	for btn, names := range b {
		out[btn] = append([]string(nil), names...)
	}
	for btn, names := range o {
		out[btn] = append([]string(nil), names...)
	}
	return out
}
