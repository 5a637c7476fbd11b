package systems

import (
	"github.com/automoto/actionmap/archetypes"
	"github.com/automoto/actionmap/components"
	"github.com/automoto/actionmap/input"
	"github.com/automoto/actionmap/logger"
	"github.com/yohamta/donburi/ecs"
)

// DeviceSource feeds one tick of raw device events into the state store.
type DeviceSource interface {
	Poll(s *input.State)
}

// NewUpdateInput polls src, fires registered actions and notifies observers.
// Must run BEFORE any system reading input, and EndInputTick must run last.
func NewUpdateInput(src DeviceSource) ecs.System {
	return func(e *ecs.ECS) {
		in := GetOrCreateInput(e)
		if src != nil {
			src.Poll(in.State)
		}
		in.Actions.Resolve(in.State)
		in.Observers.Notify(in.State)
	}
}

// EndInputTick advances edge states and clears per-tick values.
func EndInputTick(e *ecs.ECS) {
	in := GetOrCreateInput(e)
	in.State.UpdateState()
	in.Tick++
}

// GetOrCreateInput returns the singleton Input component, creating if needed
func GetOrCreateInput(e *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(e.World)
	if !ok {
		entry = archetypes.Input.Spawn(e)
		log := logger.L().With("system", "input")
		countFailure := input.WithErrorHandler(func(*input.CallbackError) {
			if entry, ok := components.Input.First(e.World); ok {
				components.Input.Get(entry).Failures++
			}
		})
		components.Input.SetValue(entry, components.InputData{
			State:     input.NewState(),
			Actions:   input.NewActions(input.WithLogger(log), countFailure),
			Observers: input.NewObservers(input.WithLogger(log), countFailure),
		})
	}
	return components.Input.Get(entry)
}
