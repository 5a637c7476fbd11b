package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/fonts"
	"github.com/automoto/actionmap/logger"
	"github.com/automoto/actionmap/scenes"
	"github.com/automoto/actionmap/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame() *Game {
	source := systems.NewEbitenSource(config.C.Input.AnalogDeadzone)
	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewViewerScene(source),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Window.Width, config.C.Window.Height)
	return config.C.Window.Width, config.C.Window.Height
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	actionsPath := flag.String("actions", "", "YAML action map, overrides input.actionsFile")
	flag.Parse()

	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		config.C = c
	}
	if *actionsPath != "" {
		config.C.Input.ActionsFile = *actionsPath
	}

	lg := logger.Init(logger.Config{
		Level:  config.C.Logging.Level,
		Format: config.C.Logging.Format,
	})

	if config.C.Persistence.Enabled {
		if err := systems.InitPersistence(config.C.Persistence.AppName); err != nil {
			lg.Warn("Could not initialize persistence", "err", err)
		}
	}

	if err := fonts.LoadDefaults(config.C.HUD.FontSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Window.Width, config.C.Window.Height)
	ebiten.SetWindowTitle(config.C.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
