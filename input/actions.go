package input

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/yohamta/donburi/features/math"
)

// Handle identifies a registration. Handles start at 1 and are never reused.
type Handle int

type registration struct {
	handle   Handle
	action   Action
	callback Callback
	owner    Owner
}

// Actions is the action registry and per-tick resolver.
type Actions struct {
	guard
	records map[Handle]*registration
	order   []Handle
	next    Handle
}

// NewActions returns an empty registry.
func NewActions(opts ...Option) *Actions {
	a := &Actions{
		guard:   newGuard(opts),
		records: make(map[Handle]*registration),
		next:    1,
	}
	return a
}

// AddAction registers cb for action on behalf of owner. The action is copied;
// later edits to the caller's value have no effect.
func (a *Actions) AddAction(action Action, owner Owner, cb Callback) (Handle, error) {
	if cb.isNil() {
		return 0, fmt.Errorf("add action %q: %w", action.Name, ErrNilCallback)
	}
	if !cb.accepts(action.Type) {
		return 0, fmt.Errorf("add action %q: %s callback for %s action: %w",
			action.Name, cb.Kind(), action.Type, ErrCallbackMismatch)
	}

	action.Devices = slices.Clone(action.Devices)
	h := a.next
	a.next++
	a.records[h] = &registration{handle: h, action: action, callback: cb, owner: owner}
	a.order = append(a.order, h)

	a.log.Debug("Input action registered", "action", action.Name, "type", action.Type, "handle", h, "owner", owner)
	return h, nil
}

func (a *Actions) AddPressAction(action Action, owner Owner, fn PressFunc) (Handle, error) {
	return a.AddAction(action, owner, OnPress(fn))
}

func (a *Actions) AddAxisAction(action Action, owner Owner, fn AxisFunc) (Handle, error) {
	return a.AddAction(action, owner, OnAxis(fn))
}

func (a *Actions) AddDualAxisAction(action Action, owner Owner, fn DualAxisFunc) (Handle, error) {
	return a.AddAction(action, owner, OnDualAxis(fn))
}

// ClearAction removes one registration. Unknown handles are ignored.
func (a *Actions) ClearAction(h Handle) {
	if _, ok := a.records[h]; !ok {
		return
	}
	delete(a.records, h)
	a.order = slices.DeleteFunc(a.order, func(x Handle) bool { return x == h })
}

// ClearOwnerActions removes every registration made by owner and returns how
// many were removed.
func (a *Actions) ClearOwnerActions(owner Owner) int {
	removed := 0
	a.order = slices.DeleteFunc(a.order, func(h Handle) bool {
		if a.records[h].owner != owner {
			return false
		}
		delete(a.records, h)
		removed++
		return true
	})
	if removed > 0 {
		a.log.Debug("Input actions cleared", "owner", owner, "count", removed)
	}
	return removed
}

func (a *Actions) Has(h Handle) bool {
	_, ok := a.records[h]
	return ok
}

func (a *Actions) Len() int { return len(a.order) }

// Resolve evaluates every registration against s and invokes callbacks whose
// trigger holds. Registrations are visited in registration order and devices
// in binding order; every satisfying device fires separately.
//
// Registrations added during Resolve wait for the next call. Registrations
// cleared during Resolve stop firing immediately.
func (a *Actions) Resolve(s *State) {
	for _, h := range slices.Clone(a.order) {
		r, ok := a.records[h]
		if !ok {
			continue
		}
		a.resolve(s, r)
	}
}

func (a *Actions) resolve(s *State, r *registration) {
	action := &r.action
	for _, d := range action.Devices {
		if !d.IsValid() {
			continue
		}
		if !a.Has(r.handle) {
			return
		}

		switch action.Type {
		case ActionPress, ActionContinousPress:
			index, ok := pressed(s, d, action.Type == ActionContinousPress)
			if !ok {
				continue
			}
			ctx := Context{Name: action.Name, Device: d.Kind, DeviceIndex: index}
			a.invoke(r, d, func() error { return r.callback.press(ctx) })

		case ActionAxis:
			value := axisValue(s, d)
			if value == 0 {
				continue
			}
			ctx := Context{Name: action.Name, Device: d.Kind, DeviceIndex: d.Index}
			a.invoke(r, d, func() error { return r.callback.axis(ctx, value) })

		case ActionDualAxis:
			value := dualAxisValue(s, d)
			if value.X == 0 && value.Y == 0 {
				continue
			}
			ctx := Context{Name: action.Name, Device: d.Kind, DeviceIndex: d.Index}
			a.invoke(r, d, func() error { return r.callback.dualAxis(ctx, value) })
		}
	}
}

func (a *Actions) invoke(r *registration, d Device, fn func() error) {
	a.call(fn, CallbackError{
		Kind:   CallbackFailure,
		Handle: r.handle,
		Owner:  r.owner,
		Action: r.action.Name,
		Device: d.Kind,
	})
}

// pressed tests a press binding. With continuous set it checks "held",
// otherwise "just pressed". The returned index is the device index reported
// to the callback.
func pressed(s *State, d Device, continuous bool) (int, bool) {
	switch d.Kind {
	case DeviceKeyboard:
		key := d.Keys.Key()
		if continuous {
			return d.Index, s.Key(key)
		}
		return d.Index, s.KeyDown(key)

	case DeviceMouse:
		if continuous {
			return d.Index, s.MouseButton(d.Mouse.Button)
		}
		return d.Index, s.MouseButtonDown(d.Mouse.Button)

	case DeviceGamepad:
		if continuous {
			return d.Index, s.GamepadButton(d.Index, d.Gamepad.Button)
		}
		return d.Index, s.GamepadButtonDown(d.Index, d.Gamepad.Button)

	case DeviceTouch:
		// Index is the finger slot
		if d.Index < 0 || d.Index >= s.TouchCount() {
			return d.Index, false
		}
		id := s.PointerID(d.Index)
		if continuous {
			return d.Index, s.Touch(id)
		}
		return d.Index, s.TouchDown(id)
	}
	return 0, false
}

func keyAxis(s *State, positive, negative KeyCode) float64 {
	var v float64
	if s.Key(positive) {
		v++
	}
	if s.Key(negative) {
		v--
	}
	return v
}

func optionalKeyAxis(s *State, positive, negative *KeyCode) float64 {
	var v float64
	if positive != nil && s.Key(*positive) {
		v++
	}
	if negative != nil && s.Key(*negative) {
		v--
	}
	return v
}

func axisValue(s *State, d Device) float64 {
	switch d.Kind {
	case DeviceGamepad:
		return s.GamepadAxis(d.Index, d.Gamepad.FirstAxis)

	case DeviceKeyboard:
		return keyAxis(s, d.Keys.FirstPositive, d.Keys.FirstNegative)

	case DeviceMouse:
		switch {
		case d.Mouse.Scroll:
			return s.MouseDelta().Y
		case d.Mouse.Horizontal:
			return s.MouseRelativePosition().X
		case d.Mouse.Vertical:
			return -s.MouseRelativePosition().Y
		}
	}
	return 0
}

func dualAxisValue(s *State, d Device) math.Vec2 {
	var v math.Vec2
	switch d.Kind {
	case DeviceGamepad:
		v.X = s.GamepadAxis(d.Index, d.Gamepad.FirstAxis)
		v.Y = s.GamepadAxis(d.Index, d.Gamepad.SecondAxis)

	case DeviceKeyboard:
		v.X = keyAxis(s, d.Keys.FirstPositive, d.Keys.FirstNegative)
		v.Y = optionalKeyAxis(s, d.Keys.SecondPositive, d.Keys.SecondNegative)

	case DeviceMouse:
		if d.Mouse.Scroll {
			v = s.MouseDelta()
			break
		}
		rel := s.MouseRelativePosition()
		if d.Mouse.Horizontal {
			v.X = rel.X
		}
		if d.Mouse.Vertical {
			v.Y = -rel.Y
		}
	}
	return v
}

// Option configures Actions and Observers.
type Option func(*guard)

// WithLogger sets the logger used for registration and failure logs.
func WithLogger(l *slog.Logger) Option {
	return func(g *guard) { g.log = l }
}

// WithErrorHandler receives every contained callback failure after it is logged.
func WithErrorHandler(fn func(*CallbackError)) Option {
	return func(g *guard) { g.onError = fn }
}

// guard runs user code with panics and errors contained.
type guard struct {
	log     *slog.Logger
	onError func(*CallbackError)
}

func newGuard(opts []Option) guard {
	g := guard{log: slog.Default()}
	for _, opt := range opts {
		opt(&g)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g
}

func (g *guard) call(fn func() error, failure CallbackError) {
	err := safeCall(fn)
	if err == nil {
		return
	}
	failure.Err = err
	g.log.Error("Input callback failed",
		"kind", failure.Kind,
		"action", failure.Action,
		"device", failure.Device,
		"handle", failure.Handle,
		"owner", failure.Owner,
		"err", err)
	if g.onError != nil {
		g.onError(&failure)
	}
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
