package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/actionmap/components"
	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/fonts"
	"github.com/automoto/actionmap/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const hudHints = "F3 debug  F5 reload  F6 save  F7 clear saved  F9 cursor lock"

var panelColor = color.RGBA{24, 26, 34, 230}

// DrawInputHUD renders live device state on the left and the action log on
// the right.
func DrawInputHUD(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Viewer.First(e.World)
	if !ok {
		return
	}
	v := components.Viewer.Get(entry)
	l := components.ActionLog.Get(entry)
	in := GetOrCreateInput(e)

	hud := cfg.C.HUD
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	half := w / 2

	// Panels
	vector.FillRect(screen,
		float32(hud.Margin/2), float32(hud.Margin/2),
		float32(half-hud.Margin), float32(h-hud.Margin),
		panelColor, false)
	vector.FillRect(screen,
		float32(half+hud.Margin/2), float32(hud.Margin/2),
		float32(half-hud.Margin), float32(h-hud.Margin),
		panelColor, false)

	titleFace := fonts.Title.Get()
	face := fonts.Regular.Get()
	mono := fonts.Mono.Get()

	y := hud.Margin + hud.LineHeight
	text.Draw(screen, "Devices", titleFace, hud.Margin, y, hud.TextColor)
	y += hud.LineHeight + hud.LineHeight/2
	for _, line := range deviceLines(in.State, v) {
		text.Draw(screen, line, mono, hud.Margin, y, hud.TextColor)
		y += hud.LineHeight
	}

	y = hud.Margin + hud.LineHeight
	text.Draw(screen, "Actions", titleFace, half+hud.Margin, y, hud.TextColor)
	y += hud.LineHeight + hud.LineHeight/2
	for i, line := range logLines(l.Recent()) {
		c := hud.TextColor
		if i > 0 {
			c = hud.DimColor
		}
		text.Draw(screen, line, mono, half+hud.Margin, y, c)
		y += hud.LineHeight
	}

	footer := h - hud.Margin - hud.LineHeight
	text.Draw(screen, statusText(v, in), face, hud.Margin, footer, hud.TextColor)
	text.Draw(screen, hudHints, face, hud.Margin, footer+hud.LineHeight, hud.DimColor)
}

// deviceLines describes the current state of every device. Mouse motion and
// scroll come from the viewer's snapshot of the last tick.
func deviceLines(s *input.State, v *components.ViewerData) []string {
	var lines []string

	keys := s.HeldKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	lines = append(lines, "keys     "+orNone(strings.Join(names, " ")))

	buttons := s.HeldMouseButtons()
	names = names[:0]
	for _, b := range buttons {
		names = append(names, b.String())
	}
	pos, rel, scroll := s.MousePosition(), v.MouseRelative, v.Scroll
	lines = append(lines,
		fmt.Sprintf("mouse    %.0f,%.0f  rel %+.0f,%+.0f  scroll %+.0f,%+.0f",
			pos.X, pos.Y, rel.X, rel.Y, scroll.X, scroll.Y),
		"buttons  "+orNone(strings.Join(names, " ")),
	)
	if s.CursorLocked() {
		lines = append(lines, "cursor   locked")
	}

	for i := 0; i < s.TouchCount(); i++ {
		id := s.PointerID(i)
		p := s.TouchPosition(id)
		state := "held"
		if !s.Touch(id) {
			state = "lifted"
		}
		lines = append(lines, fmt.Sprintf("touch %d  id %d at %.0f,%.0f %s", i, id, p.X, p.Y, state))
	}

	for _, index := range s.Gamepads() {
		if !s.IsGamepadAvailable(index) {
			lines = append(lines, fmt.Sprintf("pad %d    disconnected", index))
			continue
		}
		left, right := s.GamepadLeftAxis(index), s.GamepadRightAxis(index)
		lines = append(lines, fmt.Sprintf("pad %d    L %+.2f,%+.2f  R %+.2f,%+.2f  T %.2f/%.2f",
			index, left.X, left.Y, right.X, right.Y,
			s.GamepadAxis(index, input.GamepadAxisLeftTrigger),
			s.GamepadAxis(index, input.GamepadAxisRightTrigger)))

		names = names[:0]
		for b := input.GamepadSouth; b <= input.GamepadDpadRight; b++ {
			if s.GamepadButton(index, b) {
				names = append(names, b.String())
			}
		}
		lines = append(lines, "         "+orNone(strings.Join(names, " ")))
	}
	return lines
}

// logLines formats action events newest first.
func logLines(events []components.ActionEvent) []string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		var b strings.Builder
		fmt.Fprintf(&b, "%5d  %-8s %s", ev.Tick, ev.Name, ev.Device)
		if ev.Device == input.DeviceGamepad || ev.Device == input.DeviceTouch {
			fmt.Fprintf(&b, "#%d", ev.DeviceIndex)
		}
		if ev.Value != "" {
			b.WriteString("  " + ev.Value)
		}
		if ev.Count > 1 {
			fmt.Fprintf(&b, "  x%d", ev.Count)
		}
		lines = append(lines, b.String())
	}
	return lines
}

func statusText(v *components.ViewerData, in *components.InputData) string {
	parts := []string{fmt.Sprintf("%d actions", len(v.Handles))}
	if in.Failures > 0 {
		parts = append(parts, fmt.Sprintf("%d callback failures", in.Failures))
	}
	if v.LastKey != input.KeyUnknown {
		parts = append(parts, "last key "+v.LastKey.String())
	}
	if len(v.Typed) > 0 {
		parts = append(parts, fmt.Sprintf("typed %q", string(v.Typed)))
	}
	if v.Status != "" {
		parts = append(parts, v.Status)
	}
	return strings.Join(parts, "  |  ")
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
