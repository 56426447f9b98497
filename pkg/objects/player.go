package objects

import (
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

// DefaultPlayerSpeed is used when the configuration sets none.
const DefaultPlayerSpeed = 120.0

var playerDirections = []struct {
	keys   []string
	dx, dy float64
}{
	{[]string{"ArrowLeft", "A"}, -1, 0},
	{[]string{"ArrowRight", "D"}, 1, 0},
	{[]string{"ArrowUp", "W"}, 0, -1},
	{[]string{"ArrowDown", "S"}, 0, 1},
}

// Player moves while an arrow or WASD key is held, stays on the surface and
// steps back out of solid objects.
type Player struct {
	Sprite

	Speed float64

	previous geom.Position
	score    int
	blocked  int
}

// OnInitialize tags the object as a player so pickups accept it.
func (p *Player) OnInitialize() {
	p.AddTag(TagPlayer)
	if p.Speed <= 0 {
		p.Speed = DefaultPlayerSpeed
	}
}

func (p *Player) Update(deltaTime float64) {
	e := p.Engine()
	if e == nil {
		return
	}

	var v geom.Velocity
	for _, d := range playerDirections {
		for _, key := range d.keys {
			if e.KeyDown(key) {
				v.X += d.dx * p.Speed
				v.Y += d.dy * p.Speed
				break
			}
		}
	}
	p.SetVelocity(v)

	p.previous = p.Position()
	p.Move(v.Scale(deltaTime))
	p.clamp(e.Surface().Bounds())
}

func (p *Player) clamp(bounds geom.Dimension) {
	pos, dim := p.Position(), p.Dimension()
	pos.X = min(max(pos.X, 0), max(bounds.Width-dim.Width, 0))
	pos.Y = min(max(pos.Y, 0), max(bounds.Height-dim.Height, 0))
	p.SetPosition(pos)
}

func (p *Player) OnCollisionEnter(other game.GameObject) { p.stepBack(other) }

func (p *Player) OnCollisionStay(other game.GameObject) { p.stepBack(other) }

// stepBack undoes the last move when other is solid.
func (p *Player) stepBack(other game.GameObject) {
	if !other.Base().HasTag(TagSolid) {
		return
	}
	p.SetPosition(p.previous)
	p.blocked++
}

// Collect credits the player with a pickup.
func (p *Player) Collect(*Pickup) { p.score++ }

// Score is the number of pickups collected.
func (p *Player) Score() int { return p.score }

// Blocked counts how often a solid object stopped the player.
func (p *Player) Blocked() int { return p.blocked }
