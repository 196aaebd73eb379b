package hw

import "github.com/hajimehoshi/ebiten/v2"

// Keyboard is an input.KeySource reading Ebiten's key state. It must be
// queried from the game's Update.
type Keyboard struct{}

// IsKeyPressed reports whether the named key is held. Unknown names are
// never pressed.
func (Keyboard) IsKeyPressed(name string) bool {
	key, ok := keyNameMap[name]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(key)
}
