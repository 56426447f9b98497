package objects

import (
	"image/color"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

func TestRegistryKinds(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"block", "controls", "mover", "pickup", "player", "zone"}, r.Kinds())
	assert.True(t, r.Has("mover"))
	assert.False(t, r.Has("dragon"))
}

func TestRegistryBuildAppliesSharedFields(t *testing.T) {
	r := NewRegistry()
	own := geom.Dimension{Width: 4, Height: 4}
	obj, err := r.Build(nil, config.ObjectConfig{
		Kind:      "block",
		Name:      "wall",
		Tags:      []string{"terrain"},
		Position:  at(10, 20),
		Dimension: dim(30, 40),
		Color:     "#102030",
		Colliders: []config.ColliderConfig{
			{},
			{Offset: at(1, 1), Dimension: &own, Trigger: true, Visible: true},
		},
	}, Deps{})
	require.NoError(t, err)

	block, ok := obj.(*Block)
	require.True(t, ok)
	assert.Equal(t, "wall", block.Name())
	assert.Equal(t, []string{"terrain", TagSolid}, block.Tags())
	assert.Equal(t, geom.Rect{X: 10, Y: 20, Width: 30, Height: 40}, block.Rect())
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, block.Fill)
	assert.NotEqual(t, uuid.Nil, block.ID())

	require.Len(t, block.Colliders(), 2)
	r0, _ := block.Colliders()[0].Rect()
	assert.Equal(t, block.Rect(), r0)
	r1, _ := block.Colliders()[1].Rect()
	assert.Equal(t, geom.Rect{X: 11, Y: 21, Width: 4, Height: 4}, r1)
	assert.True(t, block.Colliders()[1].Trigger())
}

func TestRegistryBuildErrors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build(nil, config.ObjectConfig{Kind: "dragon"}, Deps{})
	assert.ErrorContains(t, err, `unknown object kind "dragon"`)

	_, err = r.Build(nil, config.ObjectConfig{Kind: "mover", Name: "m", Color: "blue"}, Deps{})
	assert.ErrorContains(t, err, `failed to create mover "m"`)
}

func TestRegistryCustomKind(t *testing.T) {
	r := NewRegistry()
	r.Register("ghost", func(cfg config.ObjectConfig, _ Deps) (game.GameObject, error) {
		return &Sprite{}, nil
	})

	obj, err := r.Build(nil, config.ObjectConfig{Kind: "ghost"}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "gameObject", obj.Base().Name())
	assert.Contains(t, r.Kinds(), "ghost")
}

func TestRegistryDefaultsPlayerSpeed(t *testing.T) {
	obj, err := NewRegistry().Build(nil, config.ObjectConfig{Kind: "player"}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPlayerSpeed, obj.(*Player).Speed)
	assert.True(t, obj.Base().HasTag(TagPlayer))
}
