package objects

import (
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/game"
)

// Zone is a trigger area that tracks which objects are inside it and
// highlights itself while occupied.
type Zone struct {
	Sprite

	occupants []game.GameObject
	contacts  map[game.GameObject]int
	entries   int
}

func (z *Zone) OnInitialize() {
	z.contacts = make(map[game.GameObject]int)
}

func (z *Zone) OnTriggerEnter(other game.GameObject) {
	if z.contacts[other] == 0 {
		z.occupants = append(z.occupants, other)
		z.entries++
		z.playCue()
		z.Logger().Debug("zone entered", zap.String("other", other.Base().Name()))
	}
	z.contacts[other]++
}

func (z *Zone) OnTriggerExit(other game.GameObject) {
	if z.contacts[other] == 0 {
		return
	}
	z.contacts[other]--
	if z.contacts[other] == 0 {
		z.forget(other)
	}
}

// BeforeUpdate drops occupants that left the scene without an exit.
func (z *Zone) BeforeUpdate() {
	e := z.Engine()
	if e == nil || len(z.occupants) == 0 {
		return
	}
	scene := e.CurrentScene()
	if scene == nil {
		return
	}
	for _, o := range slices.Clone(z.occupants) {
		if scene.ObjectIndex(o) == -1 {
			z.forget(o)
		}
	}
}

func (z *Zone) forget(other game.GameObject) {
	delete(z.contacts, other)
	z.occupants = slices.DeleteFunc(z.occupants, func(o game.GameObject) bool { return o == other })
}

// Occupants returns the objects inside the zone in order of arrival.
func (z *Zone) Occupants() []game.GameObject { return slices.Clone(z.occupants) }

// Entries counts arrivals since the zone was spawned.
func (z *Zone) Entries() int { return z.entries }

// Render fills the zone, more opaque while occupied.
func (z *Zone) Render(surface game.Surface) {
	if z.Fill == nil {
		return
	}
	fill := z.Fill
	if len(z.occupants) > 0 {
		fill = withAlpha(fill, 0xc0)
	}
	surface.FillRect(z.Rect(), fill)
}
