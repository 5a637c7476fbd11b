package input

import (
	"fmt"
	"strings"
)

// KeyCode identifies a keyboard key independent of the platform layer.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyApostrophe
	KeyBackquote
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyCapsLock
	KeyPrintScreen
	KeyPause
	keyCount
)

var keyNames = [keyCount]string{
	"Unknown",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"Digit0", "Digit1", "Digit2", "Digit3", "Digit4",
	"Digit5", "Digit6", "Digit7", "Digit8", "Digit9",
	"Space", "Enter", "Escape", "Tab", "Backspace",
	"Insert", "Delete", "Home", "End", "PageUp", "PageDown",
	"Up", "Down", "Left", "Right",
	"LeftShift", "RightShift", "LeftControl", "RightControl", "LeftAlt", "RightAlt",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Minus", "Equal", "Comma", "Period", "Slash", "Semicolon", "Apostrophe",
	"Backquote", "LeftBracket", "RightBracket", "Backslash",
	"CapsLock", "PrintScreen", "Pause",
}

func (k KeyCode) String() string { return enumString(keyNames[:], int(k), "KeyCode") }

func (k KeyCode) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *KeyCode) UnmarshalText(b []byte) error {
	v, err := parseEnum(keyNames[:], "key", string(b))
	*k = KeyCode(v)
	return err
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
	mouseButtonCount
)

var mouseButtonNames = [mouseButtonCount]string{"Left", "Right", "Middle", "Back", "Forward"}

func (b MouseButton) String() string {
	return enumString(mouseButtonNames[:], int(b), "MouseButton")
}

func (b MouseButton) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *MouseButton) UnmarshalText(text []byte) error {
	v, err := parseEnum(mouseButtonNames[:], "mouse button", string(text))
	*b = MouseButton(v)
	return err
}

// GamepadButton follows the standard gamepad layout, named by face position.
type GamepadButton int

const (
	GamepadSouth GamepadButton = iota
	GamepadEast
	GamepadWest
	GamepadNorth
	GamepadBack
	GamepadGuide
	GamepadStart
	GamepadLeftStick
	GamepadRightStick
	GamepadLeftShoulder
	GamepadRightShoulder
	GamepadDpadUp
	GamepadDpadDown
	GamepadDpadLeft
	GamepadDpadRight
	gamepadButtonCount
)

var gamepadButtonNames = [gamepadButtonCount]string{
	"South", "East", "West", "North",
	"Back", "Guide", "Start",
	"LeftStick", "RightStick",
	"LeftShoulder", "RightShoulder",
	"DpadUp", "DpadDown", "DpadLeft", "DpadRight",
}

func (b GamepadButton) String() string {
	return enumString(gamepadButtonNames[:], int(b), "GamepadButton")
}

func (b GamepadButton) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *GamepadButton) UnmarshalText(text []byte) error {
	v, err := parseEnum(gamepadButtonNames[:], "gamepad button", string(text))
	*b = GamepadButton(v)
	return err
}

// GamepadAxis identifies an analog gamepad input. Triggers report 0..1.
type GamepadAxis int

const (
	GamepadAxisLeftX GamepadAxis = iota
	GamepadAxisLeftY
	GamepadAxisRightX
	GamepadAxisRightY
	GamepadAxisLeftTrigger
	GamepadAxisRightTrigger
	gamepadAxisCount
)

var gamepadAxisNames = [gamepadAxisCount]string{
	"LeftX", "LeftY", "RightX", "RightY", "LeftTrigger", "RightTrigger",
}

func (a GamepadAxis) String() string {
	return enumString(gamepadAxisNames[:], int(a), "GamepadAxis")
}

func (a GamepadAxis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *GamepadAxis) UnmarshalText(text []byte) error {
	v, err := parseEnum(gamepadAxisNames[:], "gamepad axis", string(text))
	*a = GamepadAxis(v)
	return err
}

// GamepadConnectionState is the last connection event seen for a gamepad index.
type GamepadConnectionState int

const (
	GamepadUnknown GamepadConnectionState = iota
	GamepadConnected
	GamepadDisconnected
)

func (s GamepadConnectionState) String() string {
	switch s {
	case GamepadConnected:
		return "Connected"
	case GamepadDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// DeviceKind is the device class a binding targets.
type DeviceKind int

const (
	DeviceKeyboard DeviceKind = iota
	DeviceMouse
	DeviceGamepad
	DeviceTouch
	deviceKindCount
)

var deviceKindNames = [deviceKindCount]string{"Keyboard", "Mouse", "Gamepad", "Touch"}

func (d DeviceKind) String() string { return enumString(deviceKindNames[:], int(d), "DeviceKind") }

func (d DeviceKind) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DeviceKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(deviceKindNames[:], "device", string(text))
	*d = DeviceKind(v)
	return err
}

// inRange reports whether v has a name, so that it survives a text round
// trip.
func inRange[T ~int](v, count T) bool { return v >= 0 && v < count }

func enumString(names []string, v int, typeName string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typeName, v)
	}
	return names[v]
}

// parseEnum matches names case-insensitively.
func parseEnum(names []string, what, s string) (int, error) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
