// Package input tracks per-tick device edge state and resolves declarative
// input actions against it.
package input

import (
	"slices"

	"github.com/yohamta/donburi/features/math"
)

type gamepad struct {
	state   GamepadConnectionState
	buttons map[GamepadButton]EdgeState
	axes    map[GamepadAxis]float64
}

// State is the device state store. It is fed raw events by a platform layer
// during a tick and rolled over once per tick by UpdateState.
//
// State is not safe for concurrent use; it belongs to the update loop.
type State struct {
	keys         map[KeyCode]EdgeState
	mouseButtons map[MouseButton]EdgeState

	touches        map[int]EdgeState
	touchPositions map[int]math.Vec2
	touchOrder     []int // pointer ids in arrival order

	gamepads map[int]*gamepad

	character rune

	mousePosition         math.Vec2
	previousMousePosition math.Vec2
	mouseRelative         math.Vec2
	mouseDelta            math.Vec2 // scroll wheel
	hasMousePosition      bool
	cursorLocked          bool
}

// NewState returns an empty store.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset drops every tracked device, gamepads included.
func (s *State) Reset() {
	s.keys = make(map[KeyCode]EdgeState)
	s.mouseButtons = make(map[MouseButton]EdgeState)
	s.touches = make(map[int]EdgeState)
	s.touchPositions = make(map[int]math.Vec2)
	s.touchOrder = s.touchOrder[:0]
	s.gamepads = make(map[int]*gamepad)
	s.character = 0
	s.mousePosition = math.Vec2{}
	s.previousMousePosition = math.Vec2{}
	s.mouseRelative = math.Vec2{}
	s.mouseDelta = math.Vec2{}
	s.hasMousePosition = false
	s.cursorLocked = false
}

func (s *State) HandleKey(key KeyCode, raw RawState) {
	if key == KeyUnknown {
		return
	}
	handleStateChange(key, raw, s.keys)
}

func (s *State) HandleMouseButton(button MouseButton, raw RawState) {
	handleStateChange(button, raw, s.mouseButtons)
}

// HandleTouch records a pointer event. RawRepeat only moves a known pointer.
func (s *State) HandleTouch(id int, position math.Vec2, raw RawState) {
	_, known := s.touches[id]
	if raw == RawRepeat {
		if known {
			s.touchPositions[id] = position
		}
		return
	}

	s.touchPositions[id] = position
	if !known {
		s.touchOrder = append(s.touchOrder, id)
	}
	handleStateChange(id, raw, s.touches)
}

// GamepadConnect records a connection change, creating the gamepad on first
// sight. Axis values are cleared; button states survive reconnects.
func (s *State) GamepadConnect(index int, state GamepadConnectionState) {
	g, ok := s.gamepads[index]
	if !ok {
		g = &gamepad{
			buttons: make(map[GamepadButton]EdgeState),
			axes:    make(map[GamepadAxis]float64),
		}
		s.gamepads[index] = g
	}
	g.state = state
	clear(g.axes)
}

// HandleGamepadButton is dropped for gamepads never seen connecting.
func (s *State) HandleGamepadButton(index int, button GamepadButton, raw RawState) {
	g, ok := s.gamepads[index]
	if !ok {
		return
	}
	handleStateChange(button, raw, g.buttons)
}

func (s *State) HandleGamepadAxis(index int, axis GamepadAxis, value float64) {
	g, ok := s.gamepads[index]
	if !ok {
		return
	}
	g.axes[axis] = value
}

func (s *State) HandleMouseScroll(x, y float64) {
	s.mouseDelta = math.Vec2{X: x, Y: y}
}

// HandleCursorPosition takes an absolute position while the cursor is free.
// While locked the value is relative motion and the position stays put.
func (s *State) HandleCursorPosition(x, y float64) {
	pos := math.Vec2{X: x, Y: y}
	if s.cursorLocked {
		s.mouseRelative = pos
		return
	}

	if !s.hasMousePosition {
		s.previousMousePosition = pos
		s.hasMousePosition = true
	}
	s.mousePosition = pos
	s.mouseRelative = math.Vec2{
		X: pos.X - s.previousMousePosition.X,
		Y: pos.Y - s.previousMousePosition.Y,
	}
}

func (s *State) HandleText(r rune) {
	s.character = r
}

func (s *State) SetCursorLocked(locked bool) {
	s.cursorLocked = locked
	s.mouseRelative = math.Vec2{}
}

func (s *State) CursorLocked() bool { return s.cursorLocked }

// UpdateState closes the tick: touches released last tick are dropped, every
// first-frame state becomes steady, and per-tick values are zeroed.
func (s *State) UpdateState() {
	s.touchOrder = slices.DeleteFunc(s.touchOrder, func(id int) bool {
		if s.touches[id] != Release {
			return false
		}
		delete(s.touches, id)
		delete(s.touchPositions, id)
		return true
	})

	advance(s.keys)
	advance(s.mouseButtons)
	advance(s.touches)
	for _, g := range s.gamepads {
		advance(g.buttons)
	}

	s.character = 0
	s.mouseDelta = math.Vec2{}
	s.mouseRelative = math.Vec2{}
	s.previousMousePosition = s.mousePosition
}
