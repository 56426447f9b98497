// Package objects provides the concrete game object kinds that scene
// configuration files can instantiate.
package objects

import (
	"image/color"

	"github.com/decker502/engine2d/pkg/game"
)

// Tags with a meaning to the built-in kinds.
const (
	TagSolid  = "solid"  // blocks players
	TagPlayer = "player" // can collect pickups
)

// Sprite is a filled box with an optional sound cue. The other kinds embed
// it for their drawing.
type Sprite struct {
	game.Object

	Fill color.Color
	Cue  string
}

func (s *Sprite) Update(float64) {}

// Render fills the object's box. A nil Fill draws nothing.
func (s *Sprite) Render(surface game.Surface) {
	if s.Fill == nil {
		return
	}
	surface.FillRect(s.Rect(), s.Fill)
}

func (s *Sprite) playCue() {
	if s.Cue == "" || s.Engine() == nil {
		return
	}
	s.Engine().Sound().Play(s.Cue)
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}
