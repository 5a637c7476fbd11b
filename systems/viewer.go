package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/actionmap/archetypes"
	"github.com/automoto/actionmap/components"
	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/input"
	"github.com/automoto/actionmap/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

const typedLength = 32

// Viewer hotkeys. They are read straight from the state store so they keep
// working whatever the loaded action map binds.
const (
	keyReload     = input.KeyF5
	keySave       = input.KeyF6
	keyClearSaved = input.KeyF7
	keyCursorLock = input.KeyF9
	keyDebug      = input.KeyF3
)

// SetupViewer creates the viewer singletons, registers set and attaches the
// typing observer.
func SetupViewer(e *ecs.ECS, set input.ActionSet) error {
	entry := archetypes.Viewer.Spawn(e)
	owner := input.NewOwner("viewer")
	components.Viewer.SetValue(entry, components.ViewerData{Owner: owner})
	components.ActionLog.SetValue(entry, components.NewActionLogData(cfg.C.HUD.LogLength))

	in := GetOrCreateInput(e)
	if _, err := in.Observers.Register(owner, &viewerObserver{world: e.World}); err != nil {
		return err
	}
	return RegisterViewerActions(e, set)
}

// RegisterViewerActions replaces every action the viewer owns with set.
// Actions that fail to register are skipped and reported together.
func RegisterViewerActions(e *ecs.ECS, set input.ActionSet) error {
	entry, ok := components.Viewer.First(e.World)
	if !ok {
		return errors.New("viewer not set up")
	}
	v := components.Viewer.Get(entry)
	in := GetOrCreateInput(e)

	removed := in.Actions.ClearOwnerActions(v.Owner)
	v.Handles = v.Handles[:0]
	v.Bindings = set

	var errs []error
	for _, action := range set.Actions {
		h, err := in.Actions.AddAction(action, v.Owner, logCallback(e.World, action))
		if err != nil {
			errs = append(errs, fmt.Errorf("action %q: %w", action.Name, err))
			continue
		}
		v.Handles = append(v.Handles, h)
	}

	logger.L().Info("Viewer actions registered",
		"registered", len(v.Handles),
		"replaced", removed,
		"owner", v.Owner)
	return errors.Join(errs...)
}

// logCallback builds a callback matching action's type that records each
// invocation in the action log.
func logCallback(w donburi.World, action input.Action) input.Callback {
	switch action.Type {
	case input.ActionAxis:
		return input.OnAxis(func(ctx input.Context, v float64) error {
			return pushActionEvent(w, ctx, fmt.Sprintf("%+.2f", v))
		})
	case input.ActionDualAxis:
		return input.OnDualAxis(func(ctx input.Context, v math.Vec2) error {
			return pushActionEvent(w, ctx, fmt.Sprintf("%+.2f, %+.2f", v.X, v.Y))
		})
	default:
		return input.OnPress(func(ctx input.Context) error {
			return pushActionEvent(w, ctx, "")
		})
	}
}

func pushActionEvent(w donburi.World, ctx input.Context, value string) error {
	entry, ok := components.ActionLog.First(w)
	if !ok {
		return errors.New("action log missing")
	}
	tick := 0
	if in, ok := components.Input.First(w); ok {
		tick = components.Input.Get(in).Tick
	}
	components.ActionLog.Get(entry).Push(components.ActionEvent{
		Tick:        tick,
		Name:        ctx.Name,
		Device:      ctx.Device,
		DeviceIndex: ctx.DeviceIndex,
		Value:       value,
	})
	return nil
}

// viewerObserver keeps the typed text line and last pressed key current.
type viewerObserver struct {
	input.BaseObserver
	world donburi.World
}

func (o *viewerObserver) viewer() *components.ViewerData {
	entry, ok := components.Viewer.First(o.world)
	if !ok {
		return nil
	}
	return components.Viewer.Get(entry)
}

func (o *viewerObserver) OnKeyJustPressed(k input.KeyCode) {
	if v := o.viewer(); v != nil {
		v.LastKey = k
	}
}

func (o *viewerObserver) OnCharacter(r rune) {
	v := o.viewer()
	if v == nil {
		return
	}
	v.Typed = append(v.Typed, r)
	if len(v.Typed) > typedLength {
		v.Typed = v.Typed[len(v.Typed)-typedLength:]
	}
}

// NewUpdateViewer snapshots the per-tick mouse values for the HUD and
// handles the viewer hotkeys. load supplies the action map used on reload.
// It must run before EndInputTick.
func NewUpdateViewer(load func() (input.ActionSet, error)) ecs.System {
	return func(e *ecs.ECS) {
		entry, ok := components.Viewer.First(e.World)
		if !ok {
			return
		}
		v := components.Viewer.Get(entry)
		s := GetOrCreateInput(e).State

		v.MouseRelative = s.MouseRelativePosition()
		v.Scroll = s.MouseDelta()

		switch {
		case s.KeyDown(keyReload):
			set, err := load()
			if err == nil {
				err = RegisterViewerActions(e, set)
			}
			v.Status = statusLine("reloaded", err)

		case s.KeyDown(keySave), s.KeyDown(keyClearSaved):
			switch {
			case !PersistenceEnabled():
				v.Status = "persistence disabled"
			case s.KeyDown(keySave):
				v.Status = statusLine("bindings saved", SaveBindings(v.Bindings))
			default:
				v.Status = statusLine("saved bindings cleared", ClearBindings())
			}

		case s.KeyDown(keyDebug):
			v.Debug = !v.Debug

		case s.KeyDown(keyCursorLock):
			locked := !s.CursorLocked()
			s.SetCursorLocked(locked)
			if locked {
				ebiten.SetCursorMode(ebiten.CursorModeCaptured)
				v.Status = "cursor locked"
			} else {
				ebiten.SetCursorMode(ebiten.CursorModeVisible)
				v.Status = "cursor released"
			}
		}
	}
}

func statusLine(ok string, err error) string {
	if err != nil {
		logger.L().Warn("Viewer command failed", "err", err)
		return "error: " + err.Error()
	}
	return ok
}

// LoadViewerActions builds the action map: the actions file when configured,
// otherwise the built-in map, with saved overrides merged on top.
func LoadViewerActions() (input.ActionSet, error) {
	set := cfg.DefaultActions()
	if path := cfg.C.Input.ActionsFile; path != "" {
		loaded, err := cfg.LoadActions(path)
		if err != nil {
			return input.ActionSet{}, err
		}
		set = loaded
	}

	saved, err := LoadBindings()
	if err != nil {
		// A bad save shouldn't block startup
		logger.L().Warn("Ignoring saved bindings", "err", err)
		return set, nil
	}
	if saved != nil {
		set.Merge(*saved)
	}
	return set, nil
}
