package systems

import (
	"errors"
	"testing"

	"github.com/automoto/actionmap/components"
	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/input"
	"github.com/yohamta/donburi/ecs"
)

func viewerData(t *testing.T, e *ecs.ECS) *components.ViewerData {
	t.Helper()
	entry, ok := components.Viewer.First(e.World)
	if !ok {
		t.Fatal("viewer not created")
	}
	return components.Viewer.Get(entry)
}

func actionLog(t *testing.T, e *ecs.ECS) *components.ActionLogData {
	t.Helper()
	entry, ok := components.ActionLog.First(e.World)
	if !ok {
		t.Fatal("action log not created")
	}
	return components.ActionLog.Get(entry)
}

func TestViewerLogsResolvedActions(t *testing.T) {
	src := &scriptedSource{ticks: []func(*input.State){
		func(s *input.State) {
			s.HandleKey(input.KeySpace, input.RawPress)
			s.HandleKey(input.KeyD, input.RawPress)
		},
		func(s *input.State) { s.HandleMouseScroll(0, -1) },
	}}
	e := newInputECS(src)
	if err := SetupViewer(e, cfg.DefaultActions()); err != nil {
		t.Fatalf("SetupViewer: %v", err)
	}

	e.Update()
	e.Update()

	got := actionLog(t, e).Recent()
	want := []struct {
		name  string
		value string
	}{
		{cfg.ActionZoom, "-1.00"},
		{cfg.ActionMove, "+1.00, +0.00"},
		{cfg.ActionJump, ""},
	}
	if len(got) != len(want) {
		t.Fatalf("log = %+v, want %d entries", got, len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Value != w.value {
			t.Errorf("entry %d = %s %q, want %s %q", i, got[i].Name, got[i].Value, w.name, w.value)
		}
	}
	// Move is still held on tick two but the log collapsed it into one entry
	// before Zoom arrived.
	if got[1].Count != 2 {
		t.Errorf("Move count = %d, want 2", got[1].Count)
	}
}

func TestViewerObserverTracksTyping(t *testing.T) {
	src := &scriptedSource{ticks: []func(*input.State){
		func(s *input.State) {
			s.HandleKey(input.KeyH, input.RawPress)
			s.HandleText('h')
		},
		func(s *input.State) { s.HandleText('i') },
	}}
	e := newInputECS(src)
	if err := SetupViewer(e, input.ActionSet{}); err != nil {
		t.Fatal(err)
	}

	e.Update()
	e.Update()

	v := viewerData(t, e)
	if string(v.Typed) != "hi" {
		t.Errorf("Typed = %q, want %q", string(v.Typed), "hi")
	}
	if v.LastKey != input.KeyH {
		t.Errorf("LastKey = %v, want H", v.LastKey)
	}
}

func TestRegisterViewerActionsReplacesPrevious(t *testing.T) {
	e := newInputECS(nil)
	if err := SetupViewer(e, cfg.DefaultActions()); err != nil {
		t.Fatal(err)
	}
	in := GetOrCreateInput(e)
	if in.Actions.Len() != len(cfg.DefaultActions().Actions) {
		t.Fatalf("registered %d, want %d", in.Actions.Len(), len(cfg.DefaultActions().Actions))
	}

	// Another owner's registrations survive a viewer reload
	other := input.NewOwner("other")
	if _, err := in.Actions.AddPressAction(input.Action{Name: "Other", Type: input.ActionPress}, other,
		func(input.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}

	one := input.ActionSet{Actions: cfg.DefaultActions().Actions[:1]}
	if err := RegisterViewerActions(e, one); err != nil {
		t.Fatal(err)
	}
	if in.Actions.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Actions.Len())
	}
	v := viewerData(t, e)
	if len(v.Handles) != 1 || len(v.Bindings.Actions) != 1 {
		t.Errorf("viewer tracks %d handles and %d bindings", len(v.Handles), len(v.Bindings.Actions))
	}
}

func TestViewerReloadHotkey(t *testing.T) {
	src := &scriptedSource{ticks: []func(*input.State){
		func(s *input.State) { s.HandleKey(input.KeyF5, input.RawPress) },
		func(s *input.State) {
			s.HandleKey(input.KeyF5, input.RawRelease)
		},
		func(s *input.State) { s.HandleKey(input.KeyF5, input.RawPress) },
	}}

	loads := 0
	load := func() (input.ActionSet, error) {
		loads++
		if loads > 1 {
			return input.ActionSet{}, errors.New("disk on fire")
		}
		return input.ActionSet{Actions: cfg.DefaultActions().Actions[:2]}, nil
	}
	e := newInputECS(src, NewUpdateViewer(load))
	if err := SetupViewer(e, cfg.DefaultActions()); err != nil {
		t.Fatal(err)
	}

	e.Update()
	v := viewerData(t, e)
	if v.Status != "reloaded" || len(v.Handles) != 2 {
		t.Errorf("after reload: status %q, %d handles", v.Status, len(v.Handles))
	}

	e.Update()
	e.Update()
	if v := viewerData(t, e); v.Status != "error: disk on fire" || len(v.Handles) != 2 {
		t.Errorf("after failed reload: status %q, %d handles", v.Status, len(v.Handles))
	}
	if loads != 2 {
		t.Errorf("load called %d times, want 2", loads)
	}
}

func TestViewerSaveHotkeyWithoutStore(t *testing.T) {
	gdataManager = nil
	src := &scriptedSource{ticks: []func(*input.State){
		func(s *input.State) { s.HandleKey(input.KeyF6, input.RawPress) },
	}}
	e := newInputECS(src, NewUpdateViewer(LoadViewerActions))
	if err := SetupViewer(e, cfg.DefaultActions()); err != nil {
		t.Fatal(err)
	}
	e.Update()
	if v := viewerData(t, e); v.Status != "persistence disabled" {
		t.Errorf("status = %q", v.Status)
	}
}

func TestViewerKeepsMouseMotionForDrawing(t *testing.T) {
	src := &scriptedSource{ticks: []func(*input.State){
		func(s *input.State) { s.HandleCursorPosition(10, 10) },
		func(s *input.State) {
			s.HandleCursorPosition(50, 30)
			s.HandleMouseScroll(0, -2)
		},
		func(s *input.State) {},
	}}
	e := newInputECS(src, NewUpdateViewer(LoadViewerActions))
	if err := SetupViewer(e, cfg.DefaultActions()); err != nil {
		t.Fatal(err)
	}
	in := GetOrCreateInput(e)

	e.Update()
	e.Update()
	// The tick has ended, as it has whenever Draw runs
	if rel := in.State.MouseRelativePosition(); rel.X != 0 || rel.Y != 0 {
		t.Fatalf("state still holds rel %v after the tick", rel)
	}
	v := viewerData(t, e)
	if v.MouseRelative.X != 40 || v.MouseRelative.Y != 20 {
		t.Errorf("MouseRelative = %v, want (40, 20)", v.MouseRelative)
	}
	if v.Scroll.Y != -2 {
		t.Errorf("Scroll = %v, want (0, -2)", v.Scroll)
	}
	if got := deviceLines(in.State, v)[1]; got != "mouse    50,30  rel +40,+20  scroll +0,-2" {
		t.Errorf("mouse line = %q", got)
	}

	e.Update()
	if v := viewerData(t, e); v.MouseRelative.X != 0 || v.MouseRelative.Y != 0 {
		t.Errorf("MouseRelative = %v after a still tick, want zero", v.MouseRelative)
	}
}

func TestLoadViewerActionsDefaults(t *testing.T) {
	gdataManager = nil
	set, err := LoadViewerActions()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := set.Find(cfg.ActionLook); !ok {
		t.Error("default map missing Look")
	}
}
