package input

import "time"

// EventKind is the closed set of events the Coordinator emits.
type EventKind int

const (
	EventNav EventKind = iota
	EventSelect
	EventBack

	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventNav:
		return "nav"
	case EventSelect:
		return "select"
	case EventBack:
		return "back"
	default:
		return "unknown"
	}
}

// Event is a one-shot input event. Dir and Mode are only meaningful for
// EventNav.
type Event struct {
	Kind   EventKind
	Dir    Direction
	Mode   NavMode
	Source Source
	At     time.Duration // frame timestamp the event was produced on
}

// Handler receives events synchronously on the ticking goroutine.
type Handler func(Event)

type subscription struct {
	id int
	h  Handler
}

// bus delivers events to handlers in registration order.
type bus struct {
	nextID   int
	handlers [eventKindCount][]subscription
}

func (b *bus) subscribe(kind EventKind, h Handler) func() {
	if kind < 0 || kind >= eventKindCount || h == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, h: h})
	return func() {
		subs := b.handlers[kind]
		for i, s := range subs {
			if s.id == id {
				b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) publish(e Event) {
	for _, s := range b.handlers[e.Kind] {
		s.h(e)
	}
}
