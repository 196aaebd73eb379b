// Package cli provides a windowed runner that drives the input coordinator
// from Ebiten's game loop.
package cli

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Ticker is advanced once per frame with a monotonic timestamp.
type Ticker interface {
	Tick(ts time.Duration)
}

// Runner implements ebiten.Game. It owns no input state; it only supplies
// the frame clock and calls the coordinator. Rendering is left to the UI
// consuming the events.
type Runner struct {
	ticker Ticker
	start  time.Time
	now    func() time.Time

	width, height int
	background    color.Color
}

// NewRunner creates a Runner that ticks t.
func NewRunner(t Ticker, width, height int) *Runner {
	return &Runner{
		ticker:     t,
		now:        time.Now,
		width:      width,
		height:     height,
		background: color.RGBA{0x10, 0x10, 0x18, 0xff},
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}
	r.step()
	return nil
}

// step ticks the coordinator with the time since the first frame. time.Time
// carries a monotonic reading, so wall clock changes do not affect it.
func (r *Runner) step() {
	now := r.now()
	if r.start.IsZero() {
		r.start = now
	}
	r.ticker.Tick(now.Sub(r.start))
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.width, r.height
}
