package objects

import "github.com/decker502/engine2d/pkg/game"

// Pickup disappears from the current scene when a player touches it.
type Pickup struct {
	Sprite

	collected bool
}

func (p *Pickup) OnTriggerEnter(other game.GameObject) {
	if p.collected || !other.Base().HasTag(TagPlayer) {
		return
	}
	p.collected = true
	if player, ok := other.(*Player); ok {
		player.Collect(p)
	}
	p.playCue()

	if e := p.Engine(); e != nil {
		if scene := e.CurrentScene(); scene != nil {
			scene.RemoveObject(p)
		}
	}
	p.Logger().Info("pickup collected")
}

// Collected reports whether a player has taken the pickup.
func (p *Pickup) Collected() bool { return p.collected }
