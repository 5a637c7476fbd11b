package systems

import (
	stdmath "math"

	"github.com/automoto/actionmap/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/features/math"
)

var keyCodes = map[ebiten.Key]input.KeyCode{
	ebiten.KeyA:            input.KeyA,
	ebiten.KeyB:            input.KeyB,
	ebiten.KeyC:            input.KeyC,
	ebiten.KeyD:            input.KeyD,
	ebiten.KeyE:            input.KeyE,
	ebiten.KeyF:            input.KeyF,
	ebiten.KeyG:            input.KeyG,
	ebiten.KeyH:            input.KeyH,
	ebiten.KeyI:            input.KeyI,
	ebiten.KeyJ:            input.KeyJ,
	ebiten.KeyK:            input.KeyK,
	ebiten.KeyL:            input.KeyL,
	ebiten.KeyM:            input.KeyM,
	ebiten.KeyN:            input.KeyN,
	ebiten.KeyO:            input.KeyO,
	ebiten.KeyP:            input.KeyP,
	ebiten.KeyQ:            input.KeyQ,
	ebiten.KeyR:            input.KeyR,
	ebiten.KeyS:            input.KeyS,
	ebiten.KeyT:            input.KeyT,
	ebiten.KeyU:            input.KeyU,
	ebiten.KeyV:            input.KeyV,
	ebiten.KeyW:            input.KeyW,
	ebiten.KeyX:            input.KeyX,
	ebiten.KeyY:            input.KeyY,
	ebiten.KeyZ:            input.KeyZ,
	ebiten.KeyDigit0:       input.KeyDigit0,
	ebiten.KeyDigit1:       input.KeyDigit1,
	ebiten.KeyDigit2:       input.KeyDigit2,
	ebiten.KeyDigit3:       input.KeyDigit3,
	ebiten.KeyDigit4:       input.KeyDigit4,
	ebiten.KeyDigit5:       input.KeyDigit5,
	ebiten.KeyDigit6:       input.KeyDigit6,
	ebiten.KeyDigit7:       input.KeyDigit7,
	ebiten.KeyDigit8:       input.KeyDigit8,
	ebiten.KeyDigit9:       input.KeyDigit9,
	ebiten.KeySpace:        input.KeySpace,
	ebiten.KeyEnter:        input.KeyEnter,
	ebiten.KeyEscape:       input.KeyEscape,
	ebiten.KeyTab:          input.KeyTab,
	ebiten.KeyBackspace:    input.KeyBackspace,
	ebiten.KeyInsert:       input.KeyInsert,
	ebiten.KeyDelete:       input.KeyDelete,
	ebiten.KeyHome:         input.KeyHome,
	ebiten.KeyEnd:          input.KeyEnd,
	ebiten.KeyPageUp:       input.KeyPageUp,
	ebiten.KeyPageDown:     input.KeyPageDown,
	ebiten.KeyArrowUp:      input.KeyUp,
	ebiten.KeyArrowDown:    input.KeyDown,
	ebiten.KeyArrowLeft:    input.KeyLeft,
	ebiten.KeyArrowRight:   input.KeyRight,
	ebiten.KeyShiftLeft:    input.KeyLeftShift,
	ebiten.KeyShiftRight:   input.KeyRightShift,
	ebiten.KeyControlLeft:  input.KeyLeftControl,
	ebiten.KeyControlRight: input.KeyRightControl,
	ebiten.KeyAltLeft:      input.KeyLeftAlt,
	ebiten.KeyAltRight:     input.KeyRightAlt,
	ebiten.KeyF1:           input.KeyF1,
	ebiten.KeyF2:           input.KeyF2,
	ebiten.KeyF3:           input.KeyF3,
	ebiten.KeyF4:           input.KeyF4,
	ebiten.KeyF5:           input.KeyF5,
	ebiten.KeyF6:           input.KeyF6,
	ebiten.KeyF7:           input.KeyF7,
	ebiten.KeyF8:           input.KeyF8,
	ebiten.KeyF9:           input.KeyF9,
	ebiten.KeyF10:          input.KeyF10,
	ebiten.KeyF11:          input.KeyF11,
	ebiten.KeyF12:          input.KeyF12,
	ebiten.KeyMinus:        input.KeyMinus,
	ebiten.KeyEqual:        input.KeyEqual,
	ebiten.KeyComma:        input.KeyComma,
	ebiten.KeyPeriod:       input.KeyPeriod,
	ebiten.KeySlash:        input.KeySlash,
	ebiten.KeySemicolon:    input.KeySemicolon,
	ebiten.KeyQuote:        input.KeyApostrophe,
	ebiten.KeyBackquote:    input.KeyBackquote,
	ebiten.KeyBracketLeft:  input.KeyLeftBracket,
	ebiten.KeyBracketRight: input.KeyRightBracket,
	ebiten.KeyBackslash:    input.KeyBackslash,
	ebiten.KeyCapsLock:     input.KeyCapsLock,
	ebiten.KeyPrintScreen:  input.KeyPrintScreen,
	ebiten.KeyPause:        input.KeyPause,
}

var mouseButtons = map[ebiten.MouseButton]input.MouseButton{
	ebiten.MouseButtonLeft:   input.MouseLeft,
	ebiten.MouseButtonRight:  input.MouseRight,
	ebiten.MouseButtonMiddle: input.MouseMiddle,
	ebiten.MouseButton3:      input.MouseBack,
	ebiten.MouseButton4:      input.MouseForward,
}

var gamepadButtons = map[ebiten.StandardGamepadButton]input.GamepadButton{
	ebiten.StandardGamepadButtonRightBottom:   input.GamepadSouth,
	ebiten.StandardGamepadButtonRightRight:    input.GamepadEast,
	ebiten.StandardGamepadButtonRightLeft:     input.GamepadWest,
	ebiten.StandardGamepadButtonRightTop:      input.GamepadNorth,
	ebiten.StandardGamepadButtonCenterLeft:    input.GamepadBack,
	ebiten.StandardGamepadButtonCenterCenter:  input.GamepadGuide,
	ebiten.StandardGamepadButtonCenterRight:   input.GamepadStart,
	ebiten.StandardGamepadButtonLeftStick:     input.GamepadLeftStick,
	ebiten.StandardGamepadButtonRightStick:    input.GamepadRightStick,
	ebiten.StandardGamepadButtonFrontTopLeft:  input.GamepadLeftShoulder,
	ebiten.StandardGamepadButtonFrontTopRight: input.GamepadRightShoulder,
	ebiten.StandardGamepadButtonLeftTop:       input.GamepadDpadUp,
	ebiten.StandardGamepadButtonLeftBottom:    input.GamepadDpadDown,
	ebiten.StandardGamepadButtonLeftLeft:      input.GamepadDpadLeft,
	ebiten.StandardGamepadButtonLeftRight:     input.GamepadDpadRight,
}

var gamepadAxes = map[ebiten.StandardGamepadAxis]input.GamepadAxis{
	ebiten.StandardGamepadAxisLeftStickHorizontal:  input.GamepadAxisLeftX,
	ebiten.StandardGamepadAxisLeftStickVertical:    input.GamepadAxisLeftY,
	ebiten.StandardGamepadAxisRightStickHorizontal: input.GamepadAxisRightX,
	ebiten.StandardGamepadAxisRightStickVertical:   input.GamepadAxisRightY,
}

// Analog triggers are exposed by ebiten as button values
var gamepadTriggers = map[ebiten.StandardGamepadButton]input.GamepadAxis{
	ebiten.StandardGamepadButtonFrontBottomLeft:  input.GamepadAxisLeftTrigger,
	ebiten.StandardGamepadButtonFrontBottomRight: input.GamepadAxisRightTrigger,
}

// EbitenSource translates ebiten's polled input into state store events.
// Ebiten reports levels rather than events, so edges are derived with
// inpututil and touch/gamepad presence is diffed against the previous tick.
type EbitenSource struct {
	Deadzone float64

	keys       []ebiten.Key
	chars      []rune
	touchIDs   []ebiten.TouchID
	gamepadIDs []ebiten.GamepadID

	touches   map[ebiten.TouchID]math.Vec2
	connected map[ebiten.GamepadID]bool

	cursorX, cursorY int
	cursorSeen       bool
}

func NewEbitenSource(deadzone float64) *EbitenSource {
	return &EbitenSource{
		Deadzone:  deadzone,
		touches:   make(map[ebiten.TouchID]math.Vec2),
		connected: make(map[ebiten.GamepadID]bool),
	}
}

func (p *EbitenSource) Poll(s *input.State) {
	p.pollKeyboard(s)
	p.pollMouse(s)
	p.pollTouches(s)
	p.pollGamepads(s)
}

func (p *EbitenSource) pollKeyboard(s *input.State) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		s.HandleKey(translateKey(k), input.RawPress)
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		s.HandleKey(translateKey(k), input.RawRelease)
	}

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, r := range p.chars {
		s.HandleText(r)
	}
}

func (p *EbitenSource) pollMouse(s *input.State) {
	for b, button := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			s.HandleMouseButton(button, input.RawPress)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			s.HandleMouseButton(button, input.RawRelease)
		}
	}

	x, y := ebiten.CursorPosition()
	moved := !p.cursorSeen || x != p.cursorX || y != p.cursorY
	switch {
	case s.CursorLocked():
		// The store treats locked cursor reports as relative motion
		if p.cursorSeen && moved {
			s.HandleCursorPosition(float64(x-p.cursorX), float64(y-p.cursorY))
		}
	case moved:
		s.HandleCursorPosition(float64(x), float64(y))
	}
	p.cursorX, p.cursorY, p.cursorSeen = x, y, true

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		s.HandleMouseScroll(wx, wy)
	}
}

func (p *EbitenSource) pollTouches(s *input.State) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	current := make(map[ebiten.TouchID]bool, len(p.touchIDs))
	for _, id := range p.touchIDs {
		current[id] = true
		x, y := ebiten.TouchPosition(id)
		pos := math.NewVec2(float64(x), float64(y))

		if _, known := p.touches[id]; known {
			s.HandleTouch(int(id), pos, input.RawRepeat)
		} else {
			s.HandleTouch(int(id), pos, input.RawPress)
		}
		p.touches[id] = pos
	}

	for id, last := range p.touches {
		if !current[id] {
			s.HandleTouch(int(id), last, input.RawRelease)
			delete(p.touches, id)
		}
	}
}

func (p *EbitenSource) pollGamepads(s *input.State) {
	p.gamepadIDs = inpututil.AppendJustConnectedGamepadIDs(p.gamepadIDs[:0])
	for _, id := range p.gamepadIDs {
		p.connected[id] = true
		s.GamepadConnect(int(id), input.GamepadConnected)
	}
	for id := range p.connected {
		if inpututil.IsGamepadJustDisconnected(id) {
			delete(p.connected, id)
			s.GamepadConnect(int(id), input.GamepadDisconnected)
		}
	}

	for id := range p.connected {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		index := int(id)

		for b, button := range gamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				s.HandleGamepadButton(index, button, input.RawPress)
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
				s.HandleGamepadButton(index, button, input.RawRelease)
			}
		}
		for a, axis := range gamepadAxes {
			v := applyDeadzone(ebiten.StandardGamepadAxisValue(id, a), p.Deadzone)
			if v != s.GamepadAxis(index, axis) {
				s.HandleGamepadAxis(index, axis, v)
			}
		}
		for b, axis := range gamepadTriggers {
			v := applyDeadzone(ebiten.StandardGamepadButtonValue(id, b), p.Deadzone)
			if v != s.GamepadAxis(index, axis) {
				s.HandleGamepadAxis(index, axis, v)
			}
		}
	}
}

// translateKey maps an ebiten key, returning KeyUnknown for unmapped keys.
func translateKey(k ebiten.Key) input.KeyCode {
	if code, ok := keyCodes[k]; ok {
		return code
	}
	return input.KeyUnknown
}

// applyDeadzone zeroes values whose magnitude is below deadzone.
func applyDeadzone(v, deadzone float64) float64 {
	if stdmath.Abs(v) < deadzone {
		return 0
	}
	return v
}
