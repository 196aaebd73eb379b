// Package input merges keyboard and gamepad state into a single stream of
// navigation and selection events.
//
// Hardware is reached only through KeySource and PadSource, so everything in
// this package can be driven with synthetic frames and timestamps. The
// Coordinator is meant to be ticked once per rendered frame from a single
// goroutine.
package input

import (
	"math"
	"strings"
)

// Button is a logical digital input shared by both devices.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonSelect
	ButtonBack
	ButtonStart
	ButtonL1
	ButtonR1
	ButtonL2 // trigger, down at or above the trigger threshold
	ButtonR2 // trigger, down at or above the trigger threshold

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonUp:     "Up",
	ButtonDown:   "Down",
	ButtonLeft:   "Left",
	ButtonRight:  "Right",
	ButtonSelect: "Select",
	ButtonBack:   "Back",
	ButtonStart:  "Start",
	ButtonL1:     "L1",
	ButtonR1:     "R1",
	ButtonL2:     "L2",
	ButtonR2:     "R2",
}

func (b Button) String() string {
	if !b.valid() {
		return "Unknown"
	}
	return buttonNames[b]
}

func (b Button) valid() bool {
	return b >= 0 && b < buttonCount
}

// ParseButton returns the Button with the given name (case-insensitive).
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(b), true
		}
	}
	return 0, false
}

// Buttons returns every logical button in declaration order.
func Buttons() []Button {
	out := make([]Button, 0, buttonCount)
	for b := Button(0); b < buttonCount; b++ {
		out = append(out, b)
	}
	return out
}

// Stick identifies an analog stick.
type Stick int

const (
	StickLeft Stick = iota // primary, used for navigation
	StickRight
)

// Trigger identifies an analog trigger.
type Trigger int

const (
	TriggerLeft Trigger = iota
	TriggerRight
)

// Vector is a stick position. Both components are in [-1, 1]; positive Y
// points down on every device.
type Vector struct {
	X, Y float64
}

// Magnitude returns the euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Direction is a single cardinal navigation direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// NavMode tells whether a nav event started a press or repeats a held one.
type NavMode int

const (
	ModeEdge NavMode = iota
	ModeRepeat
)

func (m NavMode) String() string {
	if m == ModeRepeat {
		return "repeat"
	}
	return "edge"
}

// Source is a physical input device class.
type Source int

const (
	SourceKeyboard Source = iota
	SourceGamepad
)

func (s Source) String() string {
	if s == SourceGamepad {
		return "gamepad"
	}
	return "keyboard"
}

// sanitizeAxis maps malformed driver values to zero and clamps to [-1, 1].
func sanitizeAxis(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// sanitizeUnit maps malformed values to zero and clamps to [0, 1].
func sanitizeUnit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
