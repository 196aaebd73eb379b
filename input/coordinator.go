package input

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Preference records which device is authoritative. Once a gamepad has been
// seen the preference latches to it; only ResetPreference moves it back.
type Preference struct {
	Active  Source
	Latched bool
}

// Coordinator owns both adapters, decides which one is authoritative each
// frame and emits nav, select and back events.
//
// Within one Tick events are emitted in a fixed order: select, back, nav.
// At most one of each kind is produced per frame.
type Coordinator struct {
	keyboard Device
	gamepad  Device
	cfg      Config
	logger   *slog.Logger

	resolver Resolver
	timer    *RepeatTimer
	pref     Preference
	active   atomic.Int32 // mirrors pref.Active for readers off the tick loop
	bus      bus
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = orDiscard(logger)
	}
}

// NewCoordinator creates a Coordinator over a keyboard and a gamepad device.
// The preference starts at keyboard.
func NewCoordinator(keyboard, gamepad Device, cfg Config, opts ...Option) (*Coordinator, error) {
	if keyboard == nil || gamepad == nil {
		return nil, fmt.Errorf("%w: both keyboard and gamepad devices are required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Coordinator{
		keyboard: keyboard,
		gamepad:  gamepad,
		cfg:      cfg,
		logger:   orDiscard(nil),
		resolver: Resolver{Deadzone: cfg.NavDeadzone},
		timer:    NewRepeatTimer(cfg.FirstDelay, cfg.RepeatDelay),
	}
	c.setPreference(Preference{Active: SourceKeyboard})
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Subscribe registers h for events of kind. Handlers of the same kind run in
// registration order. The returned func removes the subscription.
func (c *Coordinator) Subscribe(kind EventKind, h Handler) (unsubscribe func()) {
	return c.bus.subscribe(kind, h)
}

// Tick advances one frame. ts is a monotonic frame timestamp supplied by the
// caller; events are delivered before Tick returns.
func (c *Coordinator) Tick(ts time.Duration) {
	c.keyboard.Poll()
	c.gamepad.Poll()

	if c.gamepad.IsConnected() && !c.pref.Latched {
		c.setPreference(Preference{Active: SourceGamepad, Latched: true})
		c.logger.Info("gamepad connected, switching input preference", "active", c.pref.Active)
	}

	active := c.device()

	if src, ok := c.edge(ButtonSelect); ok {
		c.bus.publish(Event{Kind: EventSelect, Source: src, At: ts})
		if src == SourceGamepad && c.cfg.RumbleEnabled {
			c.gamepad.Rumble(c.cfg.RumbleIntensity, c.cfg.RumbleDuration)
		}
	}
	if src, ok := c.edge(ButtonBack); ok {
		c.bus.publish(Event{Kind: EventBack, Source: src, At: ts})
	}

	var fallback Device
	if active.Source() == SourceGamepad {
		fallback = c.keyboard
	}
	dir, src := c.resolver.Resolve(active, true, fallback)
	if e, ok := c.timer.Update(dir, ts); ok {
		e.Source = src
		c.bus.publish(e)
	}
}

// edge reports a false to true transition of b on the authoritative device.
// While latched to a gamepad that has gone away the keyboard stands in.
func (c *Coordinator) edge(b Button) (Source, bool) {
	active := c.device()
	if active.JustPressed(b) {
		return active.Source(), true
	}
	if active.Source() == SourceGamepad && !active.IsConnected() && c.keyboard.JustPressed(b) {
		return SourceKeyboard, true
	}
	return 0, false
}

func (c *Coordinator) device() Device {
	if c.pref.Active == SourceGamepad {
		return c.gamepad
	}
	return c.keyboard
}

func (c *Coordinator) setPreference(p Preference) {
	c.pref = p
	c.active.Store(int32(p.Active))
}

// ActiveDevice returns the authoritative source. It is safe to call from
// any goroutine.
func (c *Coordinator) ActiveDevice() Source {
	return Source(c.active.Load())
}

// Preference returns a copy of the current device preference.
func (c *Coordinator) Preference() Preference {
	return c.pref
}

// ResetPreference returns the preference to keyboard. The next Tick that sees
// a connected gamepad latches it again.
func (c *Coordinator) ResetPreference() {
	c.setPreference(Preference{Active: SourceKeyboard})
}

// ResetNavigation drops any held direction so the next press is an edge.
func (c *Coordinator) ResetNavigation() {
	c.timer.Reset()
}

// IsButtonDown queries the authoritative device.
func (c *Coordinator) IsButtonDown(b Button) bool { return c.device().IsButtonDown(b) }

// JustPressed queries the authoritative device.
func (c *Coordinator) JustPressed(b Button) bool { return c.device().JustPressed(b) }

// JustReleased queries the authoritative device.
func (c *Coordinator) JustReleased(b Button) bool { return c.device().JustReleased(b) }

// Stick queries the authoritative device.
func (c *Coordinator) Stick(s Stick) Vector { return c.device().Stick(s) }

// Trigger queries the authoritative device.
func (c *Coordinator) Trigger(t Trigger) float64 { return c.device().Trigger(t) }

// Rumble pulses the gamepad when it is authoritative.
func (c *Coordinator) Rumble(intensity float64, d time.Duration) { c.device().Rumble(intensity, d) }
