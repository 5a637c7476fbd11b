package input

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/yohamta/donburi/features/math"
)

func quietActions(opts ...Option) *Actions {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))}, opts...)
	return NewActions(opts...)
}

func keyDevice(k KeyCode) Device {
	return Device{Kind: DeviceKeyboard, Keys: &KeyBinding{FirstPositive: k}}
}

func gamepadDevice(index int, b GamepadButton) Device {
	return Device{Kind: DeviceGamepad, Index: index, Gamepad: &GamepadBinding{Button: b}}
}

func TestPressFansOutPerDevice(t *testing.T) {
	s := NewState()
	a := quietActions()

	jump := Action{
		Name:    "Jump",
		Type:    ActionPress,
		Devices: []Device{keyDevice(KeySpace), gamepadDevice(0, GamepadSouth)},
	}
	var got []Context
	if _, err := a.AddPressAction(jump, NoOwner, func(ctx Context) error {
		got = append(got, ctx)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	s.GamepadConnect(0, GamepadConnected)
	s.HandleKey(KeySpace, RawPress)
	s.HandleGamepadButton(0, GamepadSouth, RawPress)

	a.Resolve(s)
	if len(got) != 2 {
		t.Fatalf("callback fired %d times, want 2", len(got))
	}
	if got[0].Device != DeviceKeyboard || got[1].Device != DeviceGamepad {
		t.Fatalf("devices fired out of binding order: %+v", got)
	}
	if got[0].Name != "Jump" {
		t.Fatalf("context name = %q", got[0].Name)
	}

	// Held but no longer first press: Press actions stay quiet.
	s.UpdateState()
	got = nil
	a.Resolve(s)
	if len(got) != 0 {
		t.Fatalf("press action fired %d times on held input, want 0", len(got))
	}
}

func TestContinousPressFiresWhileHeld(t *testing.T) {
	s := NewState()
	a := quietActions()

	fire := Action{
		Name: "Fire",
		Type: ActionContinousPress,
		Devices: []Device{
			{Kind: DeviceMouse, Mouse: &MouseBinding{Button: MouseLeft}},
		},
	}
	count := 0
	if _, err := a.AddPressAction(fire, NoOwner, func(Context) error {
		count++
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	s.HandleMouseButton(MouseLeft, RawPress)
	for i := 0; i < 3; i++ {
		a.Resolve(s)
		s.UpdateState()
	}
	s.HandleMouseButton(MouseLeft, RawRelease)
	a.Resolve(s)

	if count != 3 {
		t.Fatalf("fired %d times, want 3", count)
	}
}

func TestTouchPressUsesFingerSlot(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		fingers []int // pointer ids going down, one per tick
		want    []int // DeviceIndex of each call on the last tick
	}{
		{name: "first finger", index: 0, fingers: []int{11}, want: []int{0}},
		{name: "second finger bound, one down", index: 1, fingers: []int{11}},
		{name: "second finger bound, second goes down", index: 1, fingers: []int{11, 12}, want: []int{1}},
		{name: "first finger bound, second goes down", index: 0, fingers: []int{11, 12}},
		{name: "out of range", index: 5, fingers: []int{11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			a := quietActions()

			tap := Action{Name: "Tap", Type: ActionPress, Devices: []Device{
				{Kind: DeviceTouch, Index: tt.index, Touch: &TouchBinding{}},
			}}
			var got []int
			if _, err := a.AddPressAction(tap, NoOwner, func(ctx Context) error {
				got = append(got, ctx.DeviceIndex)
				return nil
			}); err != nil {
				t.Fatal(err)
			}

			for i, id := range tt.fingers {
				if i > 0 {
					s.UpdateState()
				}
				got = got[:0]
				s.HandleTouch(id, math.Vec2{}, RawPress)
				a.Resolve(s)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got calls %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("call %d DeviceIndex = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAxisComposition(t *testing.T) {
	tests := []struct {
		name       string
		held       []KeyCode
		want       float64
		wantCalled bool
	}{
		{name: "positive only", held: []KeyCode{KeyD}, want: 1, wantCalled: true},
		{name: "negative only", held: []KeyCode{KeyA}, want: -1, wantCalled: true},
		{name: "both cancel", held: []KeyCode{KeyA, KeyD}},
		{name: "neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			a := quietActions()

			move := Action{
				Name: "Move",
				Type: ActionAxis,
				Devices: []Device{
					{Kind: DeviceKeyboard, Keys: &KeyBinding{FirstPositive: KeyD, FirstNegative: KeyA}},
				},
			}
			called := false
			var value float64
			if _, err := a.AddAxisAction(move, NoOwner, func(_ Context, v float64) error {
				called = true
				value = v
				return nil
			}); err != nil {
				t.Fatal(err)
			}

			for _, k := range tt.held {
				s.HandleKey(k, RawPress)
			}
			a.Resolve(s)

			if called != tt.wantCalled {
				t.Fatalf("called = %v, want %v", called, tt.wantCalled)
			}
			if value != tt.want {
				t.Fatalf("value = %v, want %v", value, tt.want)
			}
		})
	}
}

func TestAxisSources(t *testing.T) {
	tests := []struct {
		name   string
		device Device
		setup  func(s *State)
		want   float64
	}{
		{
			name:   "gamepad axis",
			device: Device{Kind: DeviceGamepad, Index: 1, Gamepad: &GamepadBinding{FirstAxis: GamepadAxisRightY}},
			setup: func(s *State) {
				s.GamepadConnect(1, GamepadConnected)
				s.HandleGamepadAxis(1, GamepadAxisRightY, -0.75)
			},
			want: -0.75,
		},
		{
			name:   "mouse scroll",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Scroll: true, Horizontal: true}},
			setup:  func(s *State) { s.HandleMouseScroll(4, 2) },
			want:   2,
		},
		{
			name:   "mouse horizontal",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Horizontal: true}},
			setup: func(s *State) {
				s.HandleCursorPosition(0, 0)
				s.UpdateState()
				s.HandleCursorPosition(3, 8)
			},
			want: 3,
		},
		{
			name:   "mouse vertical is negated",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Vertical: true}},
			setup: func(s *State) {
				s.HandleCursorPosition(0, 0)
				s.UpdateState()
				s.HandleCursorPosition(3, 8)
			},
			want: -8,
		},
		{
			name:   "touch is not resolved",
			device: Device{Kind: DeviceTouch, Touch: &TouchBinding{Horizontal: true}},
			setup:  func(s *State) { s.HandleTouch(1, math.Vec2{X: 5}, RawPress) },
			want:   0,
		},
		{
			name:   "invalid binding is inert",
			device: Device{Kind: DeviceGamepad},
			setup:  func(s *State) { s.GamepadConnect(0, GamepadConnected) },
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			a := quietActions()
			var got float64
			calls := 0
			action := Action{Name: "A", Type: ActionAxis, Devices: []Device{tt.device}}
			if _, err := a.AddAxisAction(action, NoOwner, func(_ Context, v float64) error {
				calls++
				got = v
				return nil
			}); err != nil {
				t.Fatal(err)
			}

			tt.setup(s)
			a.Resolve(s)

			if tt.want == 0 && calls != 0 {
				t.Fatalf("zero axis should not fire, got %d calls", calls)
			}
			if got != tt.want {
				t.Fatalf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDualAxisSources(t *testing.T) {
	up, down := KeyW, KeyS
	tests := []struct {
		name   string
		device Device
		setup  func(s *State)
		want   math.Vec2
	}{
		{
			name: "keyboard both pairs",
			device: Device{Kind: DeviceKeyboard, Keys: &KeyBinding{
				FirstPositive: KeyD, FirstNegative: KeyA,
				SecondPositive: &up, SecondNegative: &down,
			}},
			setup: func(s *State) {
				s.HandleKey(KeyA, RawPress)
				s.HandleKey(KeyW, RawPress)
			},
			want: math.Vec2{X: -1, Y: 1},
		},
		{
			name:   "keyboard without second pair",
			device: Device{Kind: DeviceKeyboard, Keys: &KeyBinding{FirstPositive: KeyD, FirstNegative: KeyA}},
			setup: func(s *State) {
				s.HandleKey(KeyD, RawPress)
				s.HandleKey(KeyW, RawPress)
			},
			want: math.Vec2{X: 1},
		},
		{
			name:   "gamepad stick",
			device: Device{Kind: DeviceGamepad, Gamepad: &GamepadBinding{FirstAxis: GamepadAxisLeftX, SecondAxis: GamepadAxisLeftY}},
			setup: func(s *State) {
				s.GamepadConnect(0, GamepadConnected)
				s.HandleGamepadAxis(0, GamepadAxisLeftX, 0.25)
				s.HandleGamepadAxis(0, GamepadAxisLeftY, -0.5)
			},
			want: math.Vec2{X: 0.25, Y: -0.5},
		},
		{
			name:   "mouse scroll",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Scroll: true}},
			setup:  func(s *State) { s.HandleMouseScroll(1, -2) },
			want:   math.Vec2{X: 1, Y: -2},
		},
		{
			name:   "mouse motion",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Horizontal: true, Vertical: true}},
			setup: func(s *State) {
				s.HandleCursorPosition(10, 10)
				s.UpdateState()
				s.HandleCursorPosition(12, 14)
			},
			want: math.Vec2{X: 2, Y: -4},
		},
		{
			name:   "all zero",
			device: Device{Kind: DeviceMouse, Mouse: &MouseBinding{Horizontal: true, Vertical: true}},
			setup:  func(s *State) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			a := quietActions()
			var got math.Vec2
			calls := 0
			action := Action{Name: "Look", Type: ActionDualAxis, Devices: []Device{tt.device}}
			if _, err := a.AddDualAxisAction(action, NoOwner, func(_ Context, v math.Vec2) error {
				calls++
				got = v
				return nil
			}); err != nil {
				t.Fatal(err)
			}

			tt.setup(s)
			a.Resolve(s)

			if got != tt.want {
				t.Fatalf("value = %v, want %v", got, tt.want)
			}
			if (tt.want == math.Vec2{}) && calls != 0 {
				t.Fatalf("zero vector should not fire, got %d calls", calls)
			}
		})
	}
}

func TestAddActionErrors(t *testing.T) {
	a := quietActions()
	axis := Action{Name: "Move", Type: ActionAxis}

	if _, err := a.AddAction(axis, NoOwner, OnPress(func(Context) error { return nil })); !errors.Is(err, ErrCallbackMismatch) {
		t.Fatalf("err = %v, want ErrCallbackMismatch", err)
	}
	if _, err := a.AddAxisAction(axis, NoOwner, nil); !errors.Is(err, ErrNilCallback) {
		t.Fatalf("err = %v, want ErrNilCallback", err)
	}
	if _, err := a.AddAction(axis, NoOwner, Callback{}); err == nil {
		t.Fatal("zero Callback should be rejected")
	}
	if a.Len() != 0 {
		t.Fatalf("Len = %d after failed registrations", a.Len())
	}
}

func TestHandlesAndClear(t *testing.T) {
	s := NewState()
	a := quietActions()
	action := Action{Name: "Jump", Type: ActionPress, Devices: []Device{keyDevice(KeySpace)}}

	count := 0
	fn := func(Context) error { count++; return nil }
	h1, _ := a.AddPressAction(action, NoOwner, fn)
	h2, _ := a.AddPressAction(action, NoOwner, fn)
	if h1 == 0 || h2 <= h1 {
		t.Fatalf("handles %d, %d should be non-zero and increasing", h1, h2)
	}

	a.ClearAction(h1)
	a.ClearAction(h1)  // stale
	a.ClearAction(999) // unknown
	if a.Has(h1) || !a.Has(h2) || a.Len() != 1 {
		t.Fatal("only h1 should be removed")
	}

	s.HandleKey(KeySpace, RawPress)
	a.Resolve(s)
	if count != 1 {
		t.Fatalf("fired %d times, want 1", count)
	}

	h3, _ := a.AddPressAction(action, NoOwner, fn)
	if h3 <= h2 {
		t.Fatalf("handle %d reused or decreased after clear", h3)
	}
}

func TestActionIsCopiedOnRegistration(t *testing.T) {
	s := NewState()
	a := quietActions()
	action := Action{Name: "Jump", Type: ActionPress, Devices: []Device{keyDevice(KeySpace)}}

	count := 0
	_, _ = a.AddPressAction(action, NoOwner, func(Context) error { count++; return nil })
	action.Devices[0] = keyDevice(KeyZ)

	s.HandleKey(KeySpace, RawPress)
	a.Resolve(s)
	if count != 1 {
		t.Fatal("registered action should not see caller edits")
	}
}

func TestClearOwnerActions(t *testing.T) {
	s := NewState()
	a := quietActions()
	plugin := NewOwner("plugin")
	game := NewOwner("game")
	action := Action{Name: "Jump", Type: ActionPress, Devices: []Device{keyDevice(KeySpace)}}

	pluginCalls, gameCalls := 0, 0
	_, _ = a.AddPressAction(action, plugin, func(Context) error { pluginCalls++; return nil })
	_, _ = a.AddPressAction(action, game, func(Context) error { gameCalls++; return nil })
	_, _ = a.AddPressAction(action, plugin, func(Context) error { pluginCalls++; return nil })

	if n := a.ClearOwnerActions(plugin); n != 2 {
		t.Fatalf("cleared %d, want 2", n)
	}
	if n := a.ClearOwnerActions(plugin); n != 0 {
		t.Fatalf("second clear removed %d, want 0", n)
	}

	for i := 0; i < 2; i++ {
		s.HandleKey(KeySpace, RawPress)
		a.Resolve(s)
		s.UpdateState()
		s.HandleKey(KeySpace, RawRelease)
		s.UpdateState()
	}
	if pluginCalls != 0 {
		t.Fatalf("cleared owner fired %d times", pluginCalls)
	}
	if gameCalls != 2 {
		t.Fatalf("other owner fired %d times, want 2", gameCalls)
	}
}

func TestCallbackIsolation(t *testing.T) {
	s := NewState()
	var failures []*CallbackError
	var logs bytes.Buffer
	a := NewActions(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithErrorHandler(func(e *CallbackError) { failures = append(failures, e) }),
	)

	boom := Action{Name: "Boom", Type: ActionPress, Devices: []Device{keyDevice(KeyB)}}
	fail := Action{Name: "Fail", Type: ActionPress, Devices: []Device{keyDevice(KeyB)}}
	ok := Action{Name: "Ok", Type: ActionPress, Devices: []Device{keyDevice(KeyB)}}

	errBad := errors.New("bad")
	_, _ = a.AddPressAction(boom, NoOwner, func(Context) error { panic("kaboom") })
	_, _ = a.AddPressAction(fail, NoOwner, func(Context) error { return errBad })
	okCalls := 0
	_, _ = a.AddPressAction(ok, NoOwner, func(Context) error { okCalls++; return nil })

	s.HandleKey(KeyB, RawPress)
	a.Resolve(s)

	if okCalls != 1 {
		t.Fatalf("healthy callback fired %d times, want 1", okCalls)
	}
	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(failures))
	}
	var pe *PanicError
	if !errors.As(failures[0], &pe) || pe.Value != "kaboom" {
		t.Fatalf("first failure = %v, want recovered panic", failures[0])
	}
	if failures[0].Kind != CallbackFailure || failures[0].Action != "Boom" {
		t.Fatalf("failure metadata = %+v", failures[0])
	}
	if !errors.Is(failures[1], errBad) {
		t.Fatalf("second failure = %v, want errBad", failures[1])
	}
	if !strings.Contains(logs.String(), "Input callback failed") {
		t.Fatalf("failure not logged: %q", logs.String())
	}
}

func TestRegistrationChangesDuringResolve(t *testing.T) {
	s := NewState()
	a := quietActions()
	action := Action{Name: "Jump", Type: ActionPress, Devices: []Device{keyDevice(KeySpace), keyDevice(KeySpace)}}

	selfCalls, addedCalls, victimCalls := 0, 0, 0
	var self, victim Handle
	self, _ = a.AddPressAction(action, NoOwner, func(Context) error {
		selfCalls++
		a.ClearAction(self)
		a.ClearAction(victim)
		_, _ = a.AddPressAction(action, NoOwner, func(Context) error { addedCalls++; return nil })
		return nil
	})
	victim, _ = a.AddPressAction(action, NoOwner, func(Context) error { victimCalls++; return nil })

	s.HandleKey(KeySpace, RawPress)
	a.Resolve(s)

	if selfCalls != 1 {
		t.Fatalf("self-clearing callback fired %d times, want 1", selfCalls)
	}
	if victimCalls != 0 {
		t.Fatalf("cleared callback fired %d times", victimCalls)
	}
	if addedCalls != 0 {
		t.Fatalf("callback added mid-resolve fired %d times this tick", addedCalls)
	}

	s.UpdateState()
	s.HandleKey(KeySpace, RawRelease)
	s.UpdateState()
	s.HandleKey(KeySpace, RawPress)
	a.Resolve(s)
	if addedCalls != 2 {
		t.Fatalf("added callback fired %d times next tick, want 2", addedCalls)
	}
}

func TestOwnerString(t *testing.T) {
	if NoOwner.String() != "none" {
		t.Fatalf("NoOwner = %q", NoOwner.String())
	}
	o := NewOwner("scene")
	if !strings.HasPrefix(o.String(), "scene/") {
		t.Fatalf("owner = %q", o.String())
	}
	if o == NewOwner("scene") {
		t.Fatal("owners with the same label must differ")
	}
}
