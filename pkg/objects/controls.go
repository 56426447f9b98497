package objects

import (
	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/game"
)

const (
	fpsStep = 10
	fpsMin  = 10
	fpsMax  = 240
)

// Preferences persists engine settings after a control changes them.
// *game.SettingsManager implements it.
type Preferences interface {
	Capture(e *game.Engine)
	Save() error
}

// Controls maps function keys to engine settings. It has no geometry.
//
//	F3         toggle the FPS overlay
//	Tab        switch to the next scene
//	+ / -      raise or lower the FPS cap (0 = uncapped)
//	M          mute or unmute cues
type Controls struct {
	Sprite

	Prefs Preferences
}

func (c *Controls) Update(float64) {
	e := c.Engine()
	if e == nil {
		return
	}

	changed := true
	switch {
	case e.KeyPressed("F3"):
		e.SetShowFPS(!e.ShowFPS())
	case e.KeyPressed("Equal"), e.KeyPressed("NumpadAdd"):
		e.SetFPS(raiseFPS(e.FPS()))
		c.Logger().Info("fps cap changed", zap.Float64("fps", e.FPS()))
	case e.KeyPressed("Minus"), e.KeyPressed("NumpadSubtract"):
		e.SetFPS(lowerFPS(e.FPS()))
		c.Logger().Info("fps cap changed", zap.Float64("fps", e.FPS()))
	case e.KeyPressed("M"):
		e.SetMuted(!e.Muted())
	case e.KeyPressed("Tab"):
		changed = false
		nextScene(e)
	default:
		changed = false
	}

	if changed && c.Prefs != nil {
		c.Prefs.Capture(e)
		if err := c.Prefs.Save(); err != nil {
			c.Logger().Warn("failed to save settings", zap.Error(err))
		}
	}
}

func nextScene(e *game.Engine) {
	n := len(e.Scenes())
	if n < 2 {
		return
	}
	e.SetCurrentSceneIndex((e.CurrentSceneIndex() + 1) % n)
}

// raiseFPS steps the cap up; past fpsMax the cap is lifted.
func raiseFPS(fps float64) float64 {
	if fps == 0 {
		return 0
	}
	fps += fpsStep
	if fps > fpsMax {
		return 0
	}
	return fps
}

// lowerFPS steps the cap down, starting from fpsMax when uncapped.
func lowerFPS(fps float64) float64 {
	if fps == 0 {
		return fpsMax
	}
	return max(fps-fpsStep, fpsMin)
}
