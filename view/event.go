package view

import "fmt"

// EventKind identifies an input event.
type EventKind uint8

const (
	PointerMove EventKind = iota + 1
	PointerDown
	PointerUp
	KeyDown
)

// Button is a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Key is a keyboard key. Printable characters use KeyRune with Event.Rune
// set.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyRune
)

// Event is one input event in screen coordinates.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button Button
	Key    Key
	Rune   rune
}

// Move returns a pointer move event.
func Move(x, y float64) Event {
	return Event{Kind: PointerMove, X: x, Y: y}
}

// Click returns a left button press at (x, y).
func Click(x, y float64) Event {
	return Event{Kind: PointerDown, X: x, Y: y, Button: ButtonLeft}
}

// Press returns a key event.
func Press(k Key) Event {
	return Event{Kind: KeyDown, Key: k}
}

// Type returns the key events typing s.
func Type(s string) []Event {
	evs := make([]Event, 0, len(s))
	for _, r := range s {
		evs = append(evs, Event{Kind: KeyDown, Key: KeyRune, Rune: r})
	}
	return evs
}

func (e Event) String() string {
	switch e.Kind {
	case PointerMove:
		return fmt.Sprintf("move(%g,%g)", e.X, e.Y)
	case PointerDown:
		return fmt.Sprintf("down(%g,%g,%d)", e.X, e.Y, e.Button)
	case PointerUp:
		return fmt.Sprintf("up(%g,%g,%d)", e.X, e.Y, e.Button)
	case KeyDown:
		if e.Key == KeyRune {
			return fmt.Sprintf("key(%q)", e.Rune)
		}
		return fmt.Sprintf("key(%d)", e.Key)
	default:
		return "event(?)"
	}
}
