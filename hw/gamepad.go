package hw

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoGamepad is returned by Vibrate when no standard gamepad is present.
var ErrNoGamepad = errors.New("no standard gamepad connected")

// Gamepad is an input.PadSource over the first connected gamepad with a
// standard layout. Connected selects the pad for the frame and must be
// called before the other queries, which input.GamepadAdapter does.
type Gamepad struct {
	logger *slog.Logger

	// Reusable slice for gamepad IDs to avoid per-frame allocations
	ids []ebiten.GamepadID
	id  ebiten.GamepadID
	ok  bool
}

// NewGamepad creates a gamepad source. Connects and disconnects are logged
// at info level.
func NewGamepad(logger *slog.Logger) *Gamepad {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gamepad{logger: logger}
}

// Connected implements input.PadSource.
func (g *Gamepad) Connected() bool {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])

	wasOK, prevID := g.ok, g.id
	g.ok = false
	for _, id := range g.ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			g.id, g.ok = id, true
			break
		}
	}

	switch {
	case g.ok && (!wasOK || g.id != prevID):
		g.logger.Info("gamepad connected", "id", g.id, "name", ebiten.GamepadName(g.id))
	case !g.ok && wasOK:
		g.logger.Info("gamepad disconnected", "id", prevID)
	}
	return g.ok
}

// ButtonValue implements input.PadSource. Digital buttons report 0 or 1.
func (g *Gamepad) ButtonValue(name string) float64 {
	btn, known := padNameMap[name]
	if !g.ok || !known {
		return 0
	}
	return ebiten.StandardGamepadButtonValue(g.id, btn)
}

// AxisValue implements input.PadSource.
func (g *Gamepad) AxisValue(name string) float64 {
	axis, known := axisNameMap[name]
	if !g.ok || !known {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(g.id, axis)
}

// Vibrate implements input.PadSource. Ebiten silently ignores pads without
// an actuator.
func (g *Gamepad) Vibrate(strength float64, d time.Duration) error {
	if !g.ok {
		return ErrNoGamepad
	}
	ebiten.VibrateGamepad(g.id, &ebiten.VibrateGamepadOptions{
		Duration:        d,
		StrongMagnitude: strength,
		WeakMagnitude:   strength,
	})
	return nil
}
