package platform

import "fmt"

// EventType identifies the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	// EventQuit is the request to end the application, e.g. the main
	// window was closed.
	EventQuit
	EventWindowResized
	EventWindowMoved
	// EventWindowClose is a close request for a single window.
	EventWindowClose
	EventWindowFocus
	EventKey
	EventText
	EventMouseMotion
	EventMouseButton
	EventMouseWheel
	EventGamepadButton
)

var eventTypeNames = [...]string{
	EventNone:          "none",
	EventQuit:          "quit",
	EventWindowResized: "window-resized",
	EventWindowMoved:   "window-moved",
	EventWindowClose:   "window-close",
	EventWindowFocus:   "window-focus",
	EventKey:           "key",
	EventText:          "text",
	EventMouseMotion:   "mouse-motion",
	EventMouseButton:   "mouse-button",
	EventMouseWheel:    "mouse-wheel",
	EventGamepadButton: "gamepad-button",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a platform-neutral input or window event. Only the fields
// relevant to Type are set.
type Event struct {
	Type     EventType
	WindowID uint32

	// X and Y hold the mouse position in window client coordinates, the
	// window position, or the wheel delta.
	X, Y float32
	// Width and Height hold the new pixel size for EventWindowResized.
	Width, Height int

	Key     Key
	Mods    Mod
	Button  MouseButton
	Gamepad GamepadButton
	Down    bool
	Focused bool
	Char    rune
}

// Key is a keyboard key. Only keys the editor reacts to are named.
type Key int

const (
	KeyUnknown Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
)

// Mod is a set of keyboard modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// MouseButton is a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther
)

// GamepadButton is a gamepad button. Only buttons used for navigation are
// named.
type GamepadButton int

const (
	GamepadUnknown GamepadButton = iota
	GamepadLeftShoulder
	GamepadRightShoulder
)
