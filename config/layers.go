package config

import "github.com/yohamta/donburi/ecs"

// Render layers, drawn in ascending order
const (
	LayerDefault ecs.LayerID = iota
	LayerHUD
)
