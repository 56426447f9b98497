package app

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

// canvas is the engine's drawing surface: an offscreen image the app
// copies to the screen every frame.
type canvas struct {
	img  *ebiten.Image
	face *text.GoXFace
	size geom.Dimension
}

func newCanvas(width, height int) *canvas {
	return &canvas{
		img:  ebiten.NewImage(width, height),
		face: text.NewGoXFace(basicfont.Face7x13),
		size: geom.Dimension{Width: float64(width), Height: float64(height)},
	}
}

func (c *canvas) Bounds() geom.Dimension { return c.size }

func (c *canvas) Clear(r geom.Rect) {
	if r.Empty() {
		return
	}
	sub := c.img.SubImage(pixelRect(r)).(*ebiten.Image)
	sub.Clear()
}

func (c *canvas) StrokeRect(r geom.Rect, clr color.Color) {
	vector.StrokeRect(c.img, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, clr, false)
}

func (c *canvas) FillRect(r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(c.img, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

// FillText draws s with its baseline at y.
func (c *canvas) FillText(s string, x, y float64, style game.TextStyle) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-c.face.Metrics().HAscent)
	if style.Color != nil {
		op.ColorScale.ScaleWithColor(style.Color)
	}
	text.Draw(c.img, s, c.face, op)
}

// pixelRect rounds r outward to whole pixels.
func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}
