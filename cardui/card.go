package cardui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// Card is a screen-space overlay element. The board core repositions it
// every frame through SetScreenPosition; it never computes its own
// placement.
type Card struct {
	Title  string
	Width  float64
	Height float64

	bg   color.Color
	face ebtext.Face

	pos      cp.Vector
	selected bool
	removed  bool
}

var (
	cardBorder    = color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff}
	cardHighlight = color.NRGBA{R: 0xff, G: 0xd7, B: 0x5e, A: 0xff}
	cardText      = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
)

// NewCard creates a card overlay with the given footprint.
func NewCard(title string, width, height float64, bg color.Color, face ebtext.Face) *Card {
	if bg == nil {
		bg = color.NRGBA{R: 0x3a, G: 0x3f, B: 0x58, A: 0xff}
	}
	return &Card{Title: title, Width: width, Height: height, bg: bg, face: face}
}

// SetScreenPosition moves the card's top-left corner, in screen space.
func (c *Card) SetScreenPosition(pt cp.Vector) {
	c.pos = pt
}

// ScreenPosition returns the card's current top-left corner.
func (c *Card) ScreenPosition() cp.Vector {
	return c.pos
}

// SetSelected toggles the selection highlight.
func (c *Card) SetSelected(sel bool) {
	c.selected = sel
}

// Remove takes the card out of the draw pass permanently.
func (c *Card) Remove() {
	c.removed = true
}

// Draw renders the card at its current screen placement.
func (c *Card) Draw(dst *ebiten.Image) {
	if c.removed {
		return
	}
	x := float32(c.pos.X)
	y := float32(c.pos.Y)
	w := float32(c.Width)
	h := float32(c.Height)

	vector.DrawFilledRect(dst, x, y, w, h, c.bg, false)
	border := color.Color(cardBorder)
	if c.selected {
		border = cardHighlight
	}
	vector.StrokeRect(dst, x, y, w, h, 2, border, false)

	if c.face != nil && c.Title != "" {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(c.pos.X+8, c.pos.Y+6)
		op.ColorScale.ScaleWithColor(cardText)
		ebtext.Draw(dst, c.Title, c.face, op)
	}
}
