package scenes

import (
	"sync"

	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/logger"
	"github.com/automoto/actionmap/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ViewerScene shows live device state and every action the loaded map fires
type ViewerScene struct {
	ecs    *ecs.ECS
	source systems.DeviceSource
	once   sync.Once
}

// NewViewerScene creates a viewer reading devices from src
func NewViewerScene(src systems.DeviceSource) *ViewerScene {
	return &ViewerScene{source: src}
}

func (vs *ViewerScene) Update() {
	vs.once.Do(vs.configure)
	vs.ecs.Update()
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.C.HUD.Background)

	if vs.ecs == nil {
		return
	}
	vs.ecs.Draw(screen)
}

func (vs *ViewerScene) configure() {
	vs.ecs = ecs.NewECS(donburi.NewWorld())

	// Input first, tick end last; everything reading input sits between
	vs.ecs.AddSystem(systems.NewUpdateInput(vs.source))
	vs.ecs.AddSystem(systems.NewUpdateViewer(systems.LoadViewerActions))
	vs.ecs.AddSystem(systems.EndInputTick)

	vs.ecs.AddRenderer(cfg.LayerHUD, systems.DrawInputHUD)
	vs.ecs.AddRenderer(cfg.LayerHUD, systems.DrawDebug)

	set, err := systems.LoadViewerActions()
	if err != nil {
		logger.L().Error("Could not load action map, using built-in actions", "err", err)
		set = cfg.DefaultActions()
	}
	if err := systems.SetupViewer(vs.ecs, set); err != nil {
		logger.L().Error("Some actions failed to register", "err", err)
	}
}
