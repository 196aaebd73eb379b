package input

import "time"

// Device is the capability set both adapters implement in full. Queries
// about anything the device does not have return neutral values.
type Device interface {
	// Poll reads one hardware snapshot. Call it exactly once per frame,
	// before any query.
	Poll()
	IsButtonDown(b Button) bool
	JustPressed(b Button) bool
	JustReleased(b Button) bool
	Stick(s Stick) Vector
	Trigger(t Trigger) float64
	IsConnected() bool
	// Rumble starts a haptic pulse and returns immediately. Unsupported or
	// failing actuators are ignored.
	Rumble(intensity float64, d time.Duration)
	Source() Source
}

// KeySource reports the instantaneous state of keyboard keys by name.
type KeySource interface {
	IsKeyPressed(name string) bool
}

// PadSource reports the instantaneous state of one standard-layout gamepad.
// Button and axis names follow the pad name table used in bindings
// ("A", "DpadUp", "LeftX", ...).
type PadSource interface {
	Connected() bool
	ButtonValue(name string) float64
	AxisValue(name string) float64
	Vibrate(strength float64, d time.Duration) error
}

// buttonState keeps the current and previous frame of digital state. Only
// one prior frame is retained.
type buttonState struct {
	cur  [buttonCount]bool
	prev [buttonCount]bool
}

// swap starts a new frame: current becomes previous, current is cleared.
func (s *buttonState) swap() {
	s.prev = s.cur
	s.cur = [buttonCount]bool{}
}

func (s *buttonState) down(b Button) bool {
	return b.valid() && s.cur[b]
}

func (s *buttonState) pressed(b Button) bool {
	return b.valid() && s.cur[b] && !s.prev[b]
}

func (s *buttonState) released(b Button) bool {
	return b.valid() && !s.cur[b] && s.prev[b]
}

// gateStick zeroes v when its magnitude is under deadzone. No rescaling is
// applied; the navigation deadzone is checked later against the same scale.
func gateStick(v Vector, deadzone float64) Vector {
	v = Vector{X: sanitizeAxis(v.X), Y: sanitizeAxis(v.Y)}
	if v.Magnitude() < deadzone {
		return Vector{}
	}
	return v
}
