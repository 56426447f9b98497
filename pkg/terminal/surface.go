package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

// Cell glyphs. Translucent fills use the light shade.
const (
	runeSolid = '█'
	runeShade = '░'
)

// cellSurface draws world-space boxes onto terminal cells. One cell covers
// cellWidth x cellHeight world units.
type cellSurface struct {
	screen     tcell.Screen
	cellWidth  float64
	cellHeight float64
	cols, rows int
}

func newCellSurface(screen tcell.Screen, cellWidth, cellHeight float64) *cellSurface {
	s := &cellSurface{screen: screen, cellWidth: cellWidth, cellHeight: cellHeight}
	s.resize()
	return s
}

// resize picks up the current terminal size.
func (s *cellSurface) resize() {
	s.cols, s.rows = s.screen.Size()
}

func (s *cellSurface) Bounds() geom.Dimension {
	return geom.Dimension{
		Width:  float64(s.cols) * s.cellWidth,
		Height: float64(s.rows) * s.cellHeight,
	}
}

// cells returns the half-open cell range covered by r, clipped to the
// screen.
func (s *cellSurface) cells(r geom.Rect) (x0, y0, x1, y1 int) {
	x0 = max(int(math.Floor(r.X/s.cellWidth)), 0)
	y0 = max(int(math.Floor(r.Y/s.cellHeight)), 0)
	x1 = min(int(math.Ceil(r.Right()/s.cellWidth)), s.cols)
	y1 = min(int(math.Ceil(r.Bottom()/s.cellHeight)), s.rows)
	return x0, y0, x1, y1
}

func (s *cellSurface) Clear(r geom.Rect) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := s.cells(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (s *cellSurface) FillRect(r geom.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	glyph := runeSolid
	if _, _, _, a := c.RGBA(); a < 0x8000 {
		glyph = runeShade
	}
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(c))

	x0, y0, x1, y1 := s.cells(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// StrokeRect outlines r with box-drawing characters. Boxes narrower than
// two cells collapse to a single line.
func (s *cellSurface) StrokeRect(r geom.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(c))
	x0, y0, x1, y1 := s.cells(r)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	right, bottom := x1-1, y1-1

	for x := x0; x <= right; x++ {
		s.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		s.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := y0; y <= bottom; y++ {
		s.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		s.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	if right > x0 && bottom > y0 {
		s.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
		s.screen.SetContent(right, y0, tcell.RuneURCorner, nil, style)
		s.screen.SetContent(x0, bottom, tcell.RuneLLCorner, nil, style)
		s.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
	}
}

// FillText writes text starting in the cell that contains (x, y).
func (s *cellSurface) FillText(text string, x, y float64, style game.TextStyle) {
	st := tcell.StyleDefault
	if style.Color != nil {
		st = st.Foreground(tcell.FromImageColor(style.Color))
	}
	col := int(math.Floor(x / s.cellWidth))
	row := int(math.Floor(y / s.cellHeight))
	if row < 0 || row >= s.rows {
		return
	}
	for i, r := range []rune(text) {
		if c := col + i; c >= 0 && c < s.cols {
			s.screen.SetContent(c, row, r, nil, st)
		}
	}
}
