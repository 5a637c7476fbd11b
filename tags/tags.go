package tags

import "github.com/yohamta/donburi"

var (
	Input  = donburi.NewTag().SetName("Input")
	Viewer = donburi.NewTag().SetName("Viewer")
)
