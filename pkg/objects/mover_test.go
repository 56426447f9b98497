package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

func TestMoverIntegratesVelocity(t *testing.T) {
	f := newFixture(t, 0)
	m := f.add(t, config.ObjectConfig{
		Kind:      "mover",
		Position:  at(10, 10),
		Dimension: dim(5, 5),
		Velocity:  geom.Velocity{X: 100, Y: -50},
	}, Deps{}).(*Mover)

	f.tick(100)
	assert.Equal(t, at(20, 5), m.Position())
}

func TestMoverBouncesOffSurfaceEdges(t *testing.T) {
	tests := []struct {
		name    string
		start   geom.Position
		v       geom.Velocity
		wantPos geom.Position
		wantV   geom.Velocity
	}{
		{"right", at(85, 10), geom.Velocity{X: 100}, at(90, 10), geom.Velocity{X: -100}},
		{"left", at(5, 10), geom.Velocity{X: -100}, at(0, 10), geom.Velocity{X: 100}},
		{"bottom", at(10, 85), geom.Velocity{Y: 100}, at(10, 90), geom.Velocity{Y: -100}},
		{"top", at(10, 5), geom.Velocity{Y: -100}, at(10, 0), geom.Velocity{Y: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0)
			m := f.add(t, config.ObjectConfig{
				Kind:      "mover",
				Position:  tt.start,
				Dimension: dim(10, 10),
				Velocity:  tt.v,
			}, Deps{}).(*Mover)

			f.tick(100)
			assert.Equal(t, tt.wantPos, m.Position())
			assert.Equal(t, tt.wantV, m.Velocity())
		})
	}
}

func TestMoverTurnsAroundOnCollision(t *testing.T) {
	f := newFixture(t, 0)
	m := f.add(t, config.ObjectConfig{
		Kind:      "mover",
		Position:  at(0, 0),
		Dimension: dim(10, 10),
		Velocity:  geom.Velocity{X: 50, Y: 5},
		Cue:       "bounce",
		Colliders: oneCollider,
	}, Deps{}).(*Mover)
	f.add(t, config.ObjectConfig{
		Kind:      "block",
		Position:  at(8, 0),
		Dimension: dim(10, 10),
		Colliders: oneCollider,
	}, Deps{})

	f.scene.BeforeUpdate()
	assert.Equal(t, geom.Velocity{X: -50, Y: 5}, m.Velocity(), "horizontal contact flips X only")
	assert.Equal(t, 1, m.Bounces())
	assert.Equal(t, []string{"bounce"}, f.sound.played)

	f.scene.BeforeUpdate()
	assert.Equal(t, 1, m.Bounces(), "staying in contact does not bounce again")
}

func TestMoverVerticalContact(t *testing.T) {
	f := newFixture(t, 0)
	m := f.add(t, config.ObjectConfig{
		Kind:      "mover",
		Position:  at(0, 20),
		Dimension: dim(10, 10),
		Velocity:  geom.Velocity{X: 5, Y: -30},
		Colliders: oneCollider,
	}, Deps{}).(*Mover)
	f.add(t, config.ObjectConfig{
		Kind:      "block",
		Position:  at(0, 12),
		Dimension: dim(10, 10),
		Colliders: oneCollider,
	}, Deps{})

	f.scene.BeforeUpdate()
	assert.Equal(t, geom.Velocity{X: 5, Y: 30}, m.Velocity())
}

func TestMoverPassesThroughTriggerZone(t *testing.T) {
	f := newFixture(t, 0)
	m := f.add(t, config.ObjectConfig{
		Kind:      "mover",
		Position:  at(30, 10),
		Dimension: dim(5, 5),
		Velocity:  geom.Velocity{X: 100},
		Colliders: oneCollider,
	}, Deps{}).(*Mover)
	z := f.add(t, config.ObjectConfig{
		Kind:      "zone",
		Position:  at(40, 0),
		Dimension: dim(50, 50),
		Colliders: []config.ColliderConfig{{Trigger: true}},
	}, Deps{}).(*Zone)

	f.tick(100)
	assert.Equal(t, at(40, 10), m.Position())

	f.tick(100)
	assert.Equal(t, geom.Velocity{X: 100}, m.Velocity())
	assert.Zero(t, m.Bounces())
	assert.Equal(t, []game.GameObject{m}, z.Occupants())

	f.tick(100)
	assert.Equal(t, at(60, 10), m.Position())
	assert.Equal(t, []game.GameObject{m}, z.Occupants(), "the mover stays inside")
}

func TestMoverBouncesOnceOffMixedColliders(t *testing.T) {
	f := newFixture(t, 0)
	m := f.add(t, config.ObjectConfig{
		Kind:      "mover",
		Position:  at(0, 0),
		Dimension: dim(10, 10),
		Velocity:  geom.Velocity{X: 50},
		Colliders: oneCollider,
	}, Deps{}).(*Mover)
	sensor := dim(4, 10)
	f.add(t, config.ObjectConfig{
		Kind:      "block",
		Position:  at(12, 0),
		Dimension: dim(10, 10),
		Colliders: []config.ColliderConfig{{}, {Offset: at(-4, 0), Dimension: &sensor, Trigger: true}},
	}, Deps{})

	f.scene.BeforeUpdate()
	assert.Zero(t, m.Bounces(), "touching only the trigger collider")

	m.SetPosition(at(3, 0))
	f.scene.BeforeUpdate()
	assert.Equal(t, 1, m.Bounces())
	assert.Equal(t, geom.Velocity{X: -50}, m.Velocity())

	// Leaving the solid collider while still inside the trigger one.
	m.SetPosition(at(1, 0))
	f.scene.BeforeUpdate()
	m.SetPosition(at(3, 0))
	f.scene.BeforeUpdate()
	assert.Equal(t, 2, m.Bounces())
}
