package input

import (
	"maps"
	"slices"

	"github.com/yohamta/donburi/features/math"
)

// Observer receives device state pushed once per tick, before the state is
// rolled over.
type Observer interface {
	OnKeyPressed(key KeyCode)
	OnKeyJustPressed(key KeyCode)
	OnKeyReleased(key KeyCode)
	OnMouseButtonPressed(button MouseButton)
	OnMouseButtonJustPressed(button MouseButton)
	OnMouseButtonReleased(button MouseButton)
	OnMouseMove(position math.Vec2)
	OnMouseWheel(delta math.Vec2)
	OnCharacter(r rune)
}

// BaseObserver implements Observer with no-ops; embed it and override what
// you need.
type BaseObserver struct{}

func (BaseObserver) OnKeyPressed(KeyCode)                 {}
func (BaseObserver) OnKeyJustPressed(KeyCode)             {}
func (BaseObserver) OnKeyReleased(KeyCode)                {}
func (BaseObserver) OnMouseButtonPressed(MouseButton)     {}
func (BaseObserver) OnMouseButtonJustPressed(MouseButton) {}
func (BaseObserver) OnMouseButtonReleased(MouseButton)    {}
func (BaseObserver) OnMouseMove(math.Vec2)                {}
func (BaseObserver) OnMouseWheel(math.Vec2)               {}
func (BaseObserver) OnCharacter(rune)                     {}

type observerEntry struct {
	handle   Handle
	observer Observer
	owner    Owner
}

// Observers is the observer registry.
type Observers struct {
	guard
	entries []observerEntry
	next    Handle
}

func NewObservers(opts ...Option) *Observers {
	return &Observers{guard: newGuard(opts), next: 1}
}

func (o *Observers) Register(owner Owner, obs Observer) (Handle, error) {
	if obs == nil {
		return 0, ErrNilObserver
	}
	h := o.next
	o.next++
	o.entries = append(o.entries, observerEntry{handle: h, observer: obs, owner: owner})
	return h, nil
}

// Unregister removes one observer. Unknown handles are ignored.
func (o *Observers) Unregister(h Handle) {
	o.entries = slices.DeleteFunc(o.entries, func(e observerEntry) bool { return e.handle == h })
}

// ClearOwner removes every observer registered by owner.
func (o *Observers) ClearOwner(owner Owner) int {
	before := len(o.entries)
	o.entries = slices.DeleteFunc(o.entries, func(e observerEntry) bool { return e.owner == owner })
	return before - len(o.entries)
}

func (o *Observers) Has(h Handle) bool {
	return slices.ContainsFunc(o.entries, func(e observerEntry) bool { return e.handle == h })
}

func (o *Observers) Len() int { return len(o.entries) }

// Notify pushes the current tick's key, mouse and text state to every
// observer. Keys and buttons are reported in ascending order. Steady
// releases are not reported.
func (o *Observers) Notify(s *State) {
	if len(o.entries) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(s.keys))
	buttons := slices.Sorted(maps.Keys(s.mouseButtons))
	moved := s.mouseRelative.X != 0 || s.mouseRelative.Y != 0
	scrolled := s.mouseDelta.X != 0 || s.mouseDelta.Y != 0

	for _, e := range slices.Clone(o.entries) {
		if !o.Has(e.handle) {
			continue
		}
		obs := e.observer
		o.call(func() error {
			for _, k := range keys {
				switch s.keys[k] {
				case Press:
					obs.OnKeyPressed(k)
				case FirstPress:
					obs.OnKeyJustPressed(k)
				case FirstRelease:
					obs.OnKeyReleased(k)
				}
			}
			for _, b := range buttons {
				switch s.mouseButtons[b] {
				case Press:
					obs.OnMouseButtonPressed(b)
				case FirstPress:
					obs.OnMouseButtonJustPressed(b)
				case FirstRelease:
					obs.OnMouseButtonReleased(b)
				}
			}
			if moved {
				obs.OnMouseMove(s.mousePosition)
			}
			if scrolled {
				obs.OnMouseWheel(s.mouseDelta)
			}
			if s.character != 0 {
				obs.OnCharacter(s.character)
			}
			return nil
		}, CallbackError{Kind: ObserverFailure, Handle: e.handle, Owner: e.owner})
	}
}
