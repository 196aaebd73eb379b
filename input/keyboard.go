package input

import "time"

// KeyboardAdapter exposes a keyboard as a Device. It is always connected,
// has no sticks, and reports triggers as fully pressed while their key is
// held.
type KeyboardAdapter struct {
	src      KeySource
	bindings Bindings
	buttons  buttonState
}

// NewKeyboardAdapter creates a keyboard adapter. A nil bindings map uses
// DefaultKeyBindings.
func NewKeyboardAdapter(src KeySource, bindings Bindings) *KeyboardAdapter {
	if bindings == nil {
		bindings = DefaultKeyBindings()
	}
	return &KeyboardAdapter{
		src:      src,
		bindings: bindings,
	}
}

// Poll implements Device.
func (k *KeyboardAdapter) Poll() {
	k.buttons.swap()
	if k.src == nil {
		return
	}
	for btn, names := range k.bindings {
		if !btn.valid() {
			continue
		}
		for _, name := range names {
			if k.src.IsKeyPressed(name) {
				k.buttons.cur[btn] = true
				break
			}
		}
	}
}

// IsButtonDown implements Device.
func (k *KeyboardAdapter) IsButtonDown(b Button) bool { return k.buttons.down(b) }

// JustPressed implements Device.
func (k *KeyboardAdapter) JustPressed(b Button) bool { return k.buttons.pressed(b) }

// JustReleased implements Device.
func (k *KeyboardAdapter) JustReleased(b Button) bool { return k.buttons.released(b) }

// Stick implements Device. Keyboards have no analog sticks.
func (k *KeyboardAdapter) Stick(Stick) Vector { return Vector{} }

// Trigger implements Device.
func (k *KeyboardAdapter) Trigger(t Trigger) float64 {
	btn, ok := triggerButton(t)
	if ok && k.buttons.down(btn) {
		return 1
	}
	return 0
}

// IsConnected implements Device.
func (k *KeyboardAdapter) IsConnected() bool { return true }

// Rumble implements Device. Keyboards have no actuator.
func (k *KeyboardAdapter) Rumble(float64, time.Duration) {}

// Source implements Device.
func (k *KeyboardAdapter) Source() Source { return SourceKeyboard }

func triggerButton(t Trigger) (Button, bool) {
	switch t {
	case TriggerLeft:
		return ButtonL2, true
	case TriggerRight:
		return ButtonR2, true
	}
	return 0, false
}
