package components

import (
	"github.com/automoto/actionmap/input"
	"github.com/yohamta/donburi"
)

// InputData is the singleton holding the device state store, the action
// resolver and the observer registry for one world.
type InputData struct {
	State     *input.State
	Actions   *input.Actions
	Observers *input.Observers
	Tick      int // completed input ticks
	Failures  int // callback and observer failures caught so far
}

var Input = donburi.NewComponentType[InputData]()
