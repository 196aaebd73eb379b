package input

import "math"

// padPriority is the order digital pad directions are checked in. Only one
// should be down at a time; the order settles noisy hardware.
var padPriority = [...]struct {
	btn Button
	dir Direction
}{
	{ButtonLeft, DirLeft},
	{ButtonRight, DirRight},
	{ButtonUp, DirUp},
	{ButtonDown, DirDown},
}

// Resolver picks at most one navigation direction per frame. It holds no
// state beyond its deadzone.
type Resolver struct {
	Deadzone float64
}

// Resolve returns the dominant direction reported by d and the source of the
// device that supplied it.
//
// With preferDigitalPad the pad wins over the primary stick; otherwise the
// stick is read first and the pad only when the stick is neutral. When d is a
// gamepad that reports nothing, fallback's pad is consulted (typically the
// keyboard arrows). fallback may be nil.
func (r Resolver) Resolve(d Device, preferDigitalPad bool, fallback Device) (Direction, Source) {
	dir := DirNone
	if preferDigitalPad {
		dir = padDirection(d)
	}
	if dir == DirNone {
		dir = r.stickDirection(d.Stick(StickLeft))
	}
	if dir == DirNone && !preferDigitalPad {
		dir = padDirection(d)
	}
	if dir == DirNone && fallback != nil && d.Source() == SourceGamepad {
		if dir = padDirection(fallback); dir != DirNone {
			return dir, fallback.Source()
		}
	}
	return dir, d.Source()
}

func padDirection(d Device) Direction {
	for _, p := range padPriority {
		if d.IsButtonDown(p.btn) {
			return p.dir
		}
	}
	return DirNone
}

// stickDirection maps v to its dominant axis. Ties resolve horizontally.
func (r Resolver) stickDirection(v Vector) Direction {
	x, y := sanitizeAxis(v.X), sanitizeAxis(v.Y)
	ax, ay := math.Abs(x), math.Abs(y)
	if max(ax, ay) < r.Deadzone {
		return DirNone
	}
	if ax >= ay {
		if x > 0 {
			return DirRight
		}
		return DirLeft
	}
	if y > 0 {
		return DirDown
	}
	return DirUp
}
