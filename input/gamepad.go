package input

import (
	"log/slog"
	"time"
)

// stickAxes names the axis pair read for each stick.
var stickAxes = map[Stick][2]string{
	StickLeft:  {"LeftX", "LeftY"},
	StickRight: {"RightX", "RightY"},
}

// GamepadAdapter exposes a standard-layout gamepad as a Device. While the
// pad is disconnected every query returns its neutral value.
type GamepadAdapter struct {
	src      PadSource
	bindings Bindings
	cfg      Config
	logger   *slog.Logger

	polled    bool
	connected bool
	buttons   buttonState
	values    [buttonCount]float64
	sticks    map[Stick]Vector
}

// NewGamepadAdapter creates a gamepad adapter. A nil bindings map uses
// DefaultPadBindings; a nil logger discards diagnostics.
func NewGamepadAdapter(src PadSource, bindings Bindings, cfg Config, logger *slog.Logger) *GamepadAdapter {
	if bindings == nil {
		bindings = DefaultPadBindings()
	}
	return &GamepadAdapter{
		src:      src,
		bindings: bindings,
		cfg:      cfg,
		logger:   orDiscard(logger),
		sticks:   make(map[Stick]Vector, len(stickAxes)),
	}
}

// Poll implements Device.
func (g *GamepadAdapter) Poll() {
	g.buttons.swap()
	g.values = [buttonCount]float64{}
	clear(g.sticks)

	wasAbsent := g.polled && !g.connected
	g.polled = true
	g.connected = g.src != nil && g.src.Connected()
	if !g.connected {
		return
	}

	for btn, names := range g.bindings {
		if !btn.valid() {
			continue
		}
		var v float64
		for _, name := range names {
			v = max(v, sanitizeUnit(g.src.ButtonValue(name)))
		}
		g.values[btn] = v

		threshold := digitalThreshold
		if btn == ButtonL2 || btn == ButtonR2 {
			threshold = g.cfg.TriggerThreshold
		}
		g.buttons.cur[btn] = v > 0 && v >= threshold
	}

	// A pad plugged in with a button already held reports it as down, not
	// as a fresh press.
	if wasAbsent {
		g.buttons.prev = g.buttons.cur
	}

	for s, axes := range stickAxes {
		raw := Vector{X: g.src.AxisValue(axes[0]), Y: g.src.AxisValue(axes[1])}
		g.sticks[s] = gateStick(raw, g.cfg.StickDeadzone)
	}
}

// IsButtonDown implements Device.
func (g *GamepadAdapter) IsButtonDown(b Button) bool { return g.buttons.down(b) }

// JustPressed implements Device.
func (g *GamepadAdapter) JustPressed(b Button) bool { return g.buttons.pressed(b) }

// JustReleased implements Device.
func (g *GamepadAdapter) JustReleased(b Button) bool { return g.buttons.released(b) }

// Stick implements Device.
func (g *GamepadAdapter) Stick(s Stick) Vector { return g.sticks[s] }

// Trigger implements Device.
func (g *GamepadAdapter) Trigger(t Trigger) float64 {
	btn, ok := triggerButton(t)
	if !ok {
		return 0
	}
	return g.values[btn]
}

// IsConnected implements Device.
func (g *GamepadAdapter) IsConnected() bool { return g.connected }

// Rumble implements Device.
func (g *GamepadAdapter) Rumble(intensity float64, d time.Duration) {
	if !g.connected || d <= 0 {
		return
	}
	if err := g.src.Vibrate(sanitizeUnit(intensity), d); err != nil {
		g.logger.Debug("rumble failed", "error", err)
	}
}

// Source implements Device.
func (g *GamepadAdapter) Source() Source { return SourceGamepad }

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
