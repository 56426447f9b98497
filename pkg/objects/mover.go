package objects

import (
	"math"

	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

// Mover travels at its velocity, bounces off the surface edges and turns
// around when it starts touching a solid collider of another object.
// Trigger colliders of other objects are pass-through.
type Mover struct {
	Sprite

	bounces  int
	touching map[game.GameObject]bool
}

// Update integrates the velocity over deltaTime milliseconds.
func (m *Mover) Update(deltaTime float64) {
	m.Move(m.Velocity().Scale(deltaTime))
	if e := m.Engine(); e != nil {
		m.keepInside(e.Surface().Bounds())
	}
}

func (m *Mover) keepInside(bounds geom.Dimension) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	pos, v, dim := m.Position(), m.Velocity(), m.Dimension()

	switch {
	case pos.X < 0:
		pos.X, v.X = 0, math.Abs(v.X)
	case pos.X+dim.Width > bounds.Width:
		pos.X, v.X = bounds.Width-dim.Width, -math.Abs(v.X)
	}
	switch {
	case pos.Y < 0:
		pos.Y, v.Y = 0, math.Abs(v.Y)
	case pos.Y+dim.Height > bounds.Height:
		pos.Y, v.Y = bounds.Height-dim.Height, -math.Abs(v.Y)
	}

	m.SetPosition(pos)
	m.SetVelocity(v)
}

// OnCollisionEnter reverses the velocity component along the axis of the
// shallower overlap, pointing away from other. Entering more colliders of
// an object already being touched does not bounce again.
func (m *Mover) OnCollisionEnter(other game.GameObject) {
	b, ok := m.solidContact(other)
	if !ok || m.touching[other] {
		return
	}
	if m.touching == nil {
		m.touching = make(map[game.GameObject]bool)
	}
	m.touching[other] = true

	a := m.Rect()
	dx := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	dy := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)

	v := m.Velocity()
	if dx < dy {
		v.X = away(a.X, b.X, v.X)
	} else {
		v.Y = away(a.Y, b.Y, v.Y)
	}
	m.SetVelocity(v)
	m.bounces++
	m.playCue()
}

func (m *Mover) OnCollisionExit(other game.GameObject) {
	if _, ok := m.solidContact(other); !ok {
		delete(m.touching, other)
	}
}

// BeforeUpdate forgets objects that left the scene while touching.
func (m *Mover) BeforeUpdate() {
	e := m.Engine()
	if e == nil || len(m.touching) == 0 {
		return
	}
	scene := e.CurrentScene()
	if scene == nil {
		return
	}
	for o := range m.touching {
		if scene.ObjectIndex(o) == -1 {
			delete(m.touching, o)
		}
	}
}

// solidContact returns the box of a non-trigger collider of other that
// overlaps one of the mover's own non-trigger colliders.
func (m *Mover) solidContact(other game.GameObject) (geom.Rect, bool) {
	for _, oc := range other.Base().Colliders() {
		if oc.Trigger() {
			continue
		}
		r, ok := oc.Rect()
		if !ok {
			continue
		}
		for _, c := range m.Colliders() {
			if c.Trigger() {
				continue
			}
			if own, ok := c.Rect(); ok && geom.Overlaps(own, r) {
				return r, true
			}
		}
	}
	return geom.Rect{}, false
}

// away returns speed signed to move from self toward the side opposite
// other.
func away(self, other, speed float64) float64 {
	if self < other {
		return -math.Abs(speed)
	}
	return math.Abs(speed)
}

// Bounces counts collisions with solid colliders of other objects.
func (m *Mover) Bounces() int { return m.bounces }
