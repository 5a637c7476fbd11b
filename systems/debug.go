package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/actionmap/components"
	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/fonts"
	"github.com/automoto/actionmap/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const markerSize = 12

var (
	areaColor    = color.RGBA{0, 255, 255, 255} // Cyan
	touchedColor = color.RGBA{255, 0, 255, 255} // Magenta
	heldColor    = color.RGBA{0, 220, 0, 255}   // Green
	liftedColor  = color.RGBA{255, 60, 60, 255} // Red
	pointerColor = color.RGBA{255, 255, 0, 255} // Yellow
)

// debugBox is an outline to draw, in screen coordinates
type debugBox struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// DrawDebug outlines bound touch areas and marks every pointer. Toggled
// with F3.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Viewer.First(e.World)
	if !ok {
		return
	}
	v := components.Viewer.Get(entry)
	if !v.Debug {
		return
	}
	in := GetOrCreateInput(e)

	for _, b := range debugBoxes(v.Bindings, in.State) {
		x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
		vector.FillRect(screen, x, y, w, 1, b.Color, false)     // Top
		vector.FillRect(screen, x, y+h-1, w, 1, b.Color, false) // Bottom
		vector.FillRect(screen, x, y, 1, h, b.Color, false)     // Left
		vector.FillRect(screen, x+w-1, y, 1, h, b.Color, false) // Right
	}

	stats := fmt.Sprintf("TPS %.0f  FPS %.0f  tick %d  actions %d  observers %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), in.Tick, in.Actions.Len(), in.Observers.Len())
	text.Draw(screen, stats, fonts.Mono.Get(), cfg.C.HUD.Margin,
		screen.Bounds().Dy()-cfg.C.HUD.Margin-3*cfg.C.HUD.LineHeight, pointerColor)
}

// debugBoxes lists touch binding areas, then a marker per touch, then the
// mouse pointer. Areas and positions share pixel coordinates; an area with
// a held touch inside is highlighted.
func debugBoxes(set input.ActionSet, s *input.State) []debugBox {
	var boxes []debugBox
	for _, a := range set.Actions {
		for _, d := range a.Devices {
			if d.Kind != input.DeviceTouch || d.Touch == nil {
				continue
			}
			r := d.Touch.Area
			if r.Empty() {
				continue
			}
			c := areaColor
			if touched(r, s) {
				c = touchedColor
			}
			boxes = append(boxes, debugBox{r.Left, r.Top, r.Right - r.Left, r.Bottom - r.Top, c})
		}
	}

	for i := 0; i < s.TouchCount(); i++ {
		id := s.PointerID(i)
		c := heldColor
		if !s.Touch(id) {
			c = liftedColor
		}
		boxes = append(boxes, marker(s.TouchPosition(id).X, s.TouchPosition(id).Y, c))
	}

	p := s.MousePosition()
	return append(boxes, marker(p.X, p.Y, pointerColor))
}

func touched(r input.Rect, s *input.State) bool {
	for i := 0; i < s.TouchCount(); i++ {
		id := s.PointerID(i)
		if s.Touch(id) && r.Contains(s.TouchPosition(id)) {
			return true
		}
	}
	return false
}

func marker(x, y float64, c color.RGBA) debugBox {
	return debugBox{x - markerSize/2, y - markerSize/2, markerSize, markerSize, c}
}
