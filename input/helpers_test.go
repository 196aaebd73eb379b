package input

import (
	"errors"
	"time"
)

// fakeKeys is a KeySource backed by a set of held key names.
type fakeKeys map[string]bool

func (f fakeKeys) IsKeyPressed(name string) bool { return f[name] }

// fakePad is a PadSource with settable buttons and axes.
type fakePad struct {
	connected  bool
	buttons    map[string]float64
	axes       map[string]float64
	vibrateErr error
	vibrations []vibration
}

type vibration struct {
	strength float64
	d        time.Duration
}

func newFakePad() *fakePad {
	return &fakePad{
		connected: true,
		buttons:   map[string]float64{},
		axes:      map[string]float64{},
	}
}

func (f *fakePad) Connected() bool                 { return f.connected }
func (f *fakePad) ButtonValue(name string) float64 { return f.buttons[name] }
func (f *fakePad) AxisValue(name string) float64   { return f.axes[name] }

func (f *fakePad) Vibrate(strength float64, d time.Duration) error {
	f.vibrations = append(f.vibrations, vibration{strength, d})
	return f.vibrateErr
}

var errNoActuator = errors.New("no actuator")

// fakeDevice is a Device with directly settable state, for resolver tests.
type fakeDevice struct {
	src   Source
	down  map[Button]bool
	stick Vector
}

func (f *fakeDevice) Poll()                         {}
func (f *fakeDevice) IsButtonDown(b Button) bool    { return f.down[b] }
func (f *fakeDevice) JustPressed(Button) bool       { return false }
func (f *fakeDevice) JustReleased(Button) bool      { return false }
func (f *fakeDevice) Stick(Stick) Vector            { return f.stick }
func (f *fakeDevice) Trigger(Trigger) float64       { return 0 }
func (f *fakeDevice) IsConnected() bool             { return true }
func (f *fakeDevice) Rumble(float64, time.Duration) {}
func (f *fakeDevice) Source() Source                { return f.src }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// recorder collects events of every kind in emission order.
type recorder struct {
	events []Event
}

func (r *recorder) attach(c *Coordinator) {
	for _, k := range []EventKind{EventNav, EventSelect, EventBack} {
		c.Subscribe(k, func(e Event) { r.events = append(r.events, e) })
	}
}

func (r *recorder) take() []Event {
	out := r.events
	r.events = nil
	return out
}
