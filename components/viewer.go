package components

import (
	"github.com/automoto/actionmap/input"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ViewerData tracks what the input viewer registered and its status line
type ViewerData struct {
	Owner    input.Owner
	Bindings input.ActionSet
	Handles  []input.Handle
	Status   string
	Typed    []rune // recent text input, oldest first
	LastKey  input.KeyCode
	Debug    bool // pointer and touch area overlay

	// Per-tick mouse values copied before the tick ends, since the state
	// store zeroes them before Draw runs.
	MouseRelative math.Vec2
	Scroll        math.Vec2
}

var Viewer = donburi.NewComponentType[ViewerData]()
