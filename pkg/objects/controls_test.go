package objects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
)

type memoryPrefs struct {
	captured []bool // ShowFPS at each capture
	fps      []float64
	saves    int
	err      error
}

func (m *memoryPrefs) Capture(e *game.Engine) {
	m.captured = append(m.captured, e.ShowFPS())
	m.fps = append(m.fps, e.FPS())
}

func (m *memoryPrefs) Save() error {
	m.saves++
	return m.err
}

func TestControlsToggleFPSOverlay(t *testing.T) {
	f := newFixture(t, 0)
	prefs := &memoryPrefs{}
	f.add(t, config.ObjectConfig{Kind: "controls"}, Deps{Prefs: prefs})

	f.keys.press("F3")
	f.tick(16)
	assert.True(t, f.engine.ShowFPS())

	f.tick(16)
	assert.True(t, f.engine.ShowFPS(), "holding the key toggles once")

	f.keys.press("F3")
	f.tick(16)
	assert.False(t, f.engine.ShowFPS())

	assert.Equal(t, []bool{true, false}, prefs.captured)
	assert.Equal(t, 2, prefs.saves)
}

func TestControlsAdjustFPS(t *testing.T) {
	f := newFixture(t, 0)
	prefs := &memoryPrefs{}
	f.add(t, config.ObjectConfig{Kind: "controls"}, Deps{Prefs: prefs})

	f.keys.press("Minus")
	f.tick(16)
	assert.Equal(t, float64(fpsMax), f.engine.FPS(), "lowering an uncapped rate starts at the top")

	f.engine.SetFPS(60)
	f.keys.press("Equal")
	f.tick(100)
	assert.Equal(t, 70.0, f.engine.FPS())

	f.keys.press("NumpadSubtract")
	f.tick(100)
	assert.Equal(t, 60.0, f.engine.FPS())
	assert.Equal(t, []float64{fpsMax, 70, 60}, prefs.fps)
}

func TestFPSSteps(t *testing.T) {
	assert.Equal(t, 0.0, raiseFPS(0))
	assert.Equal(t, 70.0, raiseFPS(60))
	assert.Equal(t, 0.0, raiseFPS(fpsMax))
	assert.Equal(t, float64(fpsMax), lowerFPS(0))
	assert.Equal(t, 50.0, lowerFPS(60))
	assert.Equal(t, float64(fpsMin), lowerFPS(fpsMin))
	assert.Equal(t, float64(fpsMin), lowerFPS(15))
}

func TestControlsCycleScenes(t *testing.T) {
	f := newFixture(t, 0)
	prefs := &memoryPrefs{}
	f.add(t, config.ObjectConfig{Kind: "controls"}, Deps{Prefs: prefs})

	other := game.NewScene("other")
	otherControls, err := f.reg.Build(f.engine, config.ObjectConfig{Kind: "controls"}, Deps{})
	assert.NoError(t, err)
	other.AddObject(otherControls)
	f.engine.AddScene(other)

	f.keys.press("Tab")
	f.tick(16)
	assert.Same(t, other, f.engine.CurrentScene())

	f.tick(16)
	assert.Same(t, other, f.engine.CurrentScene(), "one press switches once")

	f.keys.press("Tab")
	f.tick(16)
	assert.Same(t, f.scene, f.engine.CurrentScene())
	assert.Zero(t, prefs.saves, "scene changes are not persisted")
}

func TestControlsMuteAndSaveFailure(t *testing.T) {
	f := newFixture(t, 0)
	prefs := &memoryPrefs{err: errors.New("disk full")}
	f.add(t, config.ObjectConfig{Kind: "controls"}, Deps{Prefs: prefs})

	f.keys.press("M")
	assert.NotPanics(t, func() { f.tick(16) })
	assert.True(t, f.engine.Muted())
	assert.Equal(t, 1, prefs.saves)
}

func TestControlsWithoutPrefs(t *testing.T) {
	f := newFixture(t, 0)
	f.add(t, config.ObjectConfig{Kind: "controls"}, Deps{})

	f.keys.press("F3")
	assert.NotPanics(t, func() { f.tick(16) })
	assert.True(t, f.engine.ShowFPS())
}
