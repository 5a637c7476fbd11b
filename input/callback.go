package input

import "github.com/yohamta/donburi/features/math"

// Context describes which action fired and which device satisfied it.
type Context struct {
	Name        string
	Device      DeviceKind
	DeviceIndex int
}

type (
	PressFunc    func(ctx Context) error
	AxisFunc     func(ctx Context, value float64) error
	DualAxisFunc func(ctx Context, value math.Vec2) error
)

// CallbackKind tags which function shape a Callback carries.
type CallbackKind int

const (
	CallbackPress CallbackKind = iota
	CallbackAxis
	CallbackDualAxis
)

func (k CallbackKind) String() string {
	switch k {
	case CallbackPress:
		return "press"
	case CallbackAxis:
		return "axis"
	case CallbackDualAxis:
		return "dual-axis"
	}
	return "unknown"
}

// Callback holds exactly one of the three callback shapes. Build it with
// OnPress, OnAxis or OnDualAxis.
type Callback struct {
	kind     CallbackKind
	press    PressFunc
	axis     AxisFunc
	dualAxis DualAxisFunc
}

func OnPress(fn PressFunc) Callback { return Callback{kind: CallbackPress, press: fn} }

func OnAxis(fn AxisFunc) Callback { return Callback{kind: CallbackAxis, axis: fn} }

func OnDualAxis(fn DualAxisFunc) Callback { return Callback{kind: CallbackDualAxis, dualAxis: fn} }

func (c Callback) Kind() CallbackKind { return c.kind }

func (c Callback) isNil() bool {
	switch c.kind {
	case CallbackPress:
		return c.press == nil
	case CallbackAxis:
		return c.axis == nil
	case CallbackDualAxis:
		return c.dualAxis == nil
	}
	return true
}

// accepts reports whether this callback shape can serve actions of type t.
func (c Callback) accepts(t ActionType) bool {
	switch t {
	case ActionPress, ActionContinousPress:
		return c.kind == CallbackPress
	case ActionAxis:
		return c.kind == CallbackAxis
	case ActionDualAxis:
		return c.kind == CallbackDualAxis
	}
	return false
}
