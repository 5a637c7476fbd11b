package archetypes

import (
	"slices"

	"github.com/automoto/actionmap/components"
	cfg "github.com/automoto/actionmap/config"
	"github.com/automoto/actionmap/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Input = newArchetype(
		tags.Input,
		components.Input,
	)
	Viewer = newArchetype(
		tags.Viewer,
		components.Viewer,
		components.ActionLog,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.LayerDefault,
		slices.Concat(a.components, cs)...,
	))
	return e
}
