package core

// Key identifies a physical key the games care about.
// The platform maps terminal key names onto these codes.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyA
	KeyD
	KeyLeft
	KeyRight
	KeyP
	KeyR
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyA:
		return "A"
	case KeyD:
		return "D"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyP:
		return "P"
	case KeyR:
		return "R"
	default:
		return "None"
	}
}

// KeyAction is the transition reported for a key.
type KeyAction int

const (
	KeyPressed KeyAction = iota
	KeyReleased
	KeyRepeat
)

// String returns a human-readable name for the action.
func (a KeyAction) String() string {
	switch a {
	case KeyPressed:
		return "Pressed"
	case KeyReleased:
		return "Released"
	case KeyRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// KeyEvent is delivered to a game's key callback.
type KeyEvent struct {
	Key    Key
	Action KeyAction
}

// Press is shorthand for a KeyPressed event.
func Press(k Key) KeyEvent {
	return KeyEvent{Key: k, Action: KeyPressed}
}

// Release is shorthand for a KeyReleased event.
func Release(k Key) KeyEvent {
	return KeyEvent{Key: k, Action: KeyReleased}
}

// ClickEvent is delivered to a game's mouse callback.
// Coordinates are in screen cells.
type ClickEvent struct {
	X, Y int
}
