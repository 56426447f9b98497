package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

func TestKeyInputRecord(t *testing.T) {
	k := &keyInput{}
	_, ok := k.LastEvent()
	assert.False(t, ok)

	k.record([]ebiten.Key{ebiten.KeyArrowLeft}, nil)
	ev, ok := k.LastEvent()
	assert.True(t, ok)
	assert.Equal(t, game.KeyEvent{Type: game.KeyDown, Key: "ArrowLeft", Seq: 1}, ev)

	k.record(nil, nil)
	ev, _ = k.LastEvent()
	assert.Equal(t, uint64(1), ev.Seq, "quiet frames keep the last event")

	k.record([]ebiten.Key{ebiten.KeyF3}, []ebiten.Key{ebiten.KeyArrowLeft})
	ev, _ = k.LastEvent()
	assert.Equal(t, game.KeyEvent{Type: game.KeyDown, Key: "F3", Seq: 3}, ev, "presses win over releases")

	k.record(nil, []ebiten.Key{ebiten.KeyF3})
	ev, _ = k.LastEvent()
	assert.Equal(t, game.KeyUp, ev.Type)
}

func TestKeyNamesMatchObjectBindings(t *testing.T) {
	for key, want := range map[ebiten.Key]string{
		ebiten.KeyA:          "A",
		ebiten.KeyArrowRight: "ArrowRight",
		ebiten.KeyTab:        "Tab",
		ebiten.KeyEqual:      "Equal",
		ebiten.KeyMinus:      "Minus",
		ebiten.KeyF3:         "F3",
	} {
		assert.Equal(t, want, key.String())
	}
}

func TestPixelRect(t *testing.T) {
	r := pixelRect(geom.Rect{X: 10.8, Y: -0.5, Width: 2.4, Height: 3})
	assert.Equal(t, 10, r.Min.X)
	assert.Equal(t, -1, r.Min.Y)
	assert.Equal(t, 14, r.Max.X)
	assert.Equal(t, 3, r.Max.Y)
}

func TestNewAppRequiresConfig(t *testing.T) {
	_, err := NewApp(Config{})
	assert.ErrorIs(t, err, ErrNoConfig)
}
