package input

import (
	"maps"
	"slices"

	"github.com/yohamta/donburi/features/math"
)

// Key reports whether key is held.
func (s *State) Key(key KeyCode) bool { return held(s.keys, key) }

// KeyDown reports whether key was pressed this tick.
func (s *State) KeyDown(key KeyCode) bool { return is(s.keys, key, FirstPress) }

// KeyUp reports whether key was released this tick.
func (s *State) KeyUp(key KeyCode) bool { return is(s.keys, key, FirstRelease) }

func (s *State) MouseButton(button MouseButton) bool { return held(s.mouseButtons, button) }

func (s *State) MouseButtonDown(button MouseButton) bool {
	return is(s.mouseButtons, button, FirstPress)
}

func (s *State) MouseButtonUp(button MouseButton) bool {
	return is(s.mouseButtons, button, FirstRelease)
}

// MousePosition is the last absolute cursor position.
func (s *State) MousePosition() math.Vec2 { return s.mousePosition }

// MouseRelativePosition is the cursor motion this tick.
func (s *State) MouseRelativePosition() math.Vec2 { return s.mouseRelative }

// MouseDelta is the scroll wheel delta this tick.
func (s *State) MouseDelta() math.Vec2 { return s.mouseDelta }

// Character is the last text character entered this tick, or 0.
func (s *State) Character() rune { return s.character }

// TouchCount is the number of tracked pointers, including ones in their
// release grace tick.
func (s *State) TouchCount() int { return len(s.touchOrder) }

// PointerID maps a touch index in [0, TouchCount) to its pointer id.
// Out of range indices return 0.
func (s *State) PointerID(index int) int {
	if index < 0 || index >= len(s.touchOrder) {
		return 0
	}
	return s.touchOrder[index]
}

func (s *State) Touch(id int) bool { return held(s.touches, id) }

func (s *State) TouchDown(id int) bool { return is(s.touches, id, FirstPress) }

func (s *State) TouchUp(id int) bool { return is(s.touches, id, FirstRelease) }

func (s *State) TouchPosition(id int) math.Vec2 { return s.touchPositions[id] }

// PointerPosition is the first tracked touch when any exist, otherwise the mouse.
func (s *State) PointerPosition() math.Vec2 {
	if len(s.touchOrder) > 0 {
		return s.TouchPosition(s.touchOrder[0])
	}
	return s.mousePosition
}

// GamepadCount counts every gamepad index ever seen, connected or not.
func (s *State) GamepadCount() int { return len(s.gamepads) }

func (s *State) IsGamepadAvailable(index int) bool {
	g, ok := s.gamepads[index]
	return ok && g.state == GamepadConnected
}

// usableGamepad returns nil for unknown or disconnected gamepads.
func (s *State) usableGamepad(index int) *gamepad {
	g, ok := s.gamepads[index]
	if !ok || g.state == GamepadDisconnected {
		return nil
	}
	return g
}

func (s *State) GamepadButton(index int, button GamepadButton) bool {
	g := s.usableGamepad(index)
	return g != nil && held(g.buttons, button)
}

func (s *State) GamepadButtonDown(index int, button GamepadButton) bool {
	g := s.usableGamepad(index)
	return g != nil && is(g.buttons, button, FirstPress)
}

func (s *State) GamepadButtonUp(index int, button GamepadButton) bool {
	g := s.usableGamepad(index)
	return g != nil && is(g.buttons, button, FirstRelease)
}

func (s *State) GamepadAxis(index int, axis GamepadAxis) float64 {
	g := s.usableGamepad(index)
	if g == nil {
		return 0
	}
	return g.axes[axis]
}

// GamepadLeftAxis returns the left thumbstick as a vector.
func (s *State) GamepadLeftAxis(index int) math.Vec2 {
	return math.Vec2{
		X: s.GamepadAxis(index, GamepadAxisLeftX),
		Y: s.GamepadAxis(index, GamepadAxisLeftY),
	}
}

// GamepadRightAxis returns the right thumbstick as a vector.
func (s *State) GamepadRightAxis(index int) math.Vec2 {
	return math.Vec2{
		X: s.GamepadAxis(index, GamepadAxisRightX),
		Y: s.GamepadAxis(index, GamepadAxisRightY),
	}
}

// HeldKeys lists held keys in ascending order.
func (s *State) HeldKeys() []KeyCode {
	return heldSorted(s.keys)
}

// HeldMouseButtons lists held mouse buttons in ascending order.
func (s *State) HeldMouseButtons() []MouseButton {
	return heldSorted(s.mouseButtons)
}

// Gamepads lists every known gamepad index in ascending order.
func (s *State) Gamepads() []int {
	return slices.Sorted(maps.Keys(s.gamepads))
}

func heldSorted[K ~int](states map[K]EdgeState) []K {
	var out []K
	for k, st := range states {
		if st.Held() {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
