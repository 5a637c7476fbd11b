package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yohamta/donburi/features/math"
)

// ActionType selects how an action's devices are evaluated each tick.
type ActionType int

const (
	// ActionPress fires on the tick a bound input is first pressed.
	ActionPress ActionType = iota
	// ActionContinousPress fires every tick a bound input is held.
	ActionContinousPress
	// ActionAxis fires with a scalar value whenever it is non-zero.
	ActionAxis
	// ActionDualAxis fires with a vector whenever it is non-zero.
	ActionDualAxis
	actionTypeCount
)

var actionTypeNames = [actionTypeCount]string{"Press", "ContinousPress", "Axis", "DualAxis"}

func (t ActionType) String() string { return enumString(actionTypeNames[:], int(t), "ActionType") }

func (t ActionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ActionType) UnmarshalText(text []byte) error {
	v, err := parseEnum(actionTypeNames[:], "action type", string(text))
	*t = ActionType(v)
	return err
}

// KeyBinding holds keyboard parameters. FirstPositive doubles as the key for
// press actions; the second pair is only read by dual axis actions.
type KeyBinding struct {
	FirstPositive  KeyCode  `yaml:"firstPositive" json:"firstPositive"`
	FirstNegative  KeyCode  `yaml:"firstNegative,omitempty" json:"firstNegative,omitempty"`
	SecondPositive *KeyCode `yaml:"secondPositive,omitempty" json:"secondPositive,omitempty"`
	SecondNegative *KeyCode `yaml:"secondNegative,omitempty" json:"secondNegative,omitempty"`
}

// Key is the key checked by press actions.
func (k KeyBinding) Key() KeyCode { return k.FirstPositive }

// GamepadBinding holds gamepad parameters.
type GamepadBinding struct {
	Button     GamepadButton `yaml:"button" json:"button"`
	FirstAxis  GamepadAxis   `yaml:"firstAxis" json:"firstAxis"`
	SecondAxis GamepadAxis   `yaml:"secondAxis" json:"secondAxis"`
}

// MouseBinding holds mouse parameters. For axis actions Scroll wins over
// Horizontal, which wins over Vertical.
type MouseBinding struct {
	Button     MouseButton `yaml:"button" json:"button"`
	Scroll     bool        `yaml:"scroll,omitempty" json:"scroll,omitempty"`
	Horizontal bool        `yaml:"horizontal,omitempty" json:"horizontal,omitempty"`
	Vertical   bool        `yaml:"vertical,omitempty" json:"vertical,omitempty"`
}

// Rect is a screen region in pixels.
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Contains reports whether the pixel position p lies in r. Right and Bottom
// are exclusive.
func (r Rect) Contains(p math.Vec2) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// TouchBinding holds touch parameters. Touch axes are not resolved; the
// fields are carried so action maps round-trip unchanged.
type TouchBinding struct {
	Horizontal bool `yaml:"horizontal,omitempty" json:"horizontal,omitempty"`
	Vertical   bool `yaml:"vertical,omitempty" json:"vertical,omitempty"`
	Area       Rect `yaml:"area" json:"area"`
}

// Device binds one device to an action. Index is the gamepad index for
// gamepads and the finger slot (see State.PointerID) for touch. Keyboard
// and mouse ignore it.
type Device struct {
	Kind    DeviceKind      `yaml:"device" json:"device"`
	Index   int             `yaml:"index,omitempty" json:"index,omitempty"`
	Keys    *KeyBinding     `yaml:"keys,omitempty" json:"keys,omitempty"`
	Gamepad *GamepadBinding `yaml:"gamepad,omitempty" json:"gamepad,omitempty"`
	Mouse   *MouseBinding   `yaml:"mouse,omitempty" json:"mouse,omitempty"`
	Touch   *TouchBinding   `yaml:"touch,omitempty" json:"touch,omitempty"`
}

// IsValid reports whether the parameter block for Kind is present.
func (d Device) IsValid() bool {
	switch d.Kind {
	case DeviceKeyboard:
		return d.Keys != nil
	case DeviceMouse:
		return d.Mouse != nil
	case DeviceGamepad:
		return d.Gamepad != nil
	case DeviceTouch:
		return d.Touch != nil
	}
	return false
}

// unnamed lists the enum values in d's parameter blocks that have no name.
func (d Device) unnamed() []string {
	var bad []string
	check := func(ok bool, v fmt.Stringer) {
		if !ok {
			bad = append(bad, v.String())
		}
	}
	if k := d.Keys; k != nil {
		check(inRange(k.FirstPositive, keyCount), k.FirstPositive)
		check(inRange(k.FirstNegative, keyCount), k.FirstNegative)
		if k.SecondPositive != nil {
			check(inRange(*k.SecondPositive, keyCount), *k.SecondPositive)
		}
		if k.SecondNegative != nil {
			check(inRange(*k.SecondNegative, keyCount), *k.SecondNegative)
		}
	}
	if g := d.Gamepad; g != nil {
		check(inRange(g.Button, gamepadButtonCount), g.Button)
		check(inRange(g.FirstAxis, gamepadAxisCount), g.FirstAxis)
		check(inRange(g.SecondAxis, gamepadAxisCount), g.SecondAxis)
	}
	if m := d.Mouse; m != nil {
		check(inRange(m.Button, mouseButtonCount), m.Button)
	}
	return bad
}

// Action is a named, device agnostic input intent.
type Action struct {
	Name    string     `yaml:"name" json:"name"`
	Type    ActionType `yaml:"type" json:"type"`
	Devices []Device   `yaml:"devices" json:"devices"`
}

var (
	ErrDuplicateAction = errors.New("duplicate action name")
	ErrInvalidBinding  = errors.New("invalid device binding")
)

// ActionSet is a collection of actions as stored in an action map file.
type ActionSet struct {
	Actions []Action `yaml:"actions" json:"actions"`
}

// Find returns the action with the given name.
func (s *ActionSet) Find(name string) (Action, bool) {
	for _, a := range s.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// Merge replaces actions in s with same-named actions from other and
// appends the rest.
func (s *ActionSet) Merge(other ActionSet) {
	for _, o := range other.Actions {
		replaced := false
		for i := range s.Actions {
			if s.Actions[i].Name == o.Name {
				s.Actions[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			s.Actions = append(s.Actions, o)
		}
	}
}

// Validate reports duplicate names and bindings missing their parameter
// block. Resolution never needs this; it is for loaders and tooling.
func (s *ActionSet) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Actions))
	for _, a := range s.Actions {
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name))
		}
		seen[a.Name] = true
		if !inRange(a.Type, actionTypeCount) {
			errs = append(errs, fmt.Errorf("%w: action %q has %s", ErrInvalidBinding, a.Name, a.Type))
		}
		for i, d := range a.Devices {
			if !d.IsValid() {
				errs = append(errs, fmt.Errorf("%w: action %q device %d (%s)", ErrInvalidBinding, a.Name, i, d.Kind))
				continue
			}
			if bad := d.unnamed(); len(bad) > 0 {
				errs = append(errs, fmt.Errorf("%w: action %q device %d uses %s",
					ErrInvalidBinding, a.Name, i, strings.Join(bad, ", ")))
			}
		}
	}
	return errors.Join(errs...)
}
