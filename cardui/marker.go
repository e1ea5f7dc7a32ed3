package cardui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/ORO42/nodeboard/board"
)

// Marker is the world-space visual for an anchor: a small dot drawn at
// the anchor's world position through the surface's current transform.
// It follows the stored position immediately, so it moves during a drag
// even before the next overlay refresh.
type Marker struct {
	surface *board.Surface

	world   cp.Vector
	col     color.Color
	removed bool
}

// NewMarker creates a marker drawn through the given surface.
func NewMarker(s *board.Surface, col color.Color) *Marker {
	if col == nil {
		col = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	}
	return &Marker{surface: s, col: col}
}

// SetWorldPosition moves the marker in world space.
func (m *Marker) SetWorldPosition(pt cp.Vector) {
	m.world = pt
}

// WorldPosition returns the marker's world-space position.
func (m *Marker) WorldPosition() cp.Vector {
	return m.world
}

// Remove takes the marker out of the draw pass permanently.
func (m *Marker) Remove() {
	m.removed = true
}

// Draw renders the marker at its projected screen position.
func (m *Marker) Draw(dst *ebiten.Image) {
	if m.removed {
		return
	}
	sp := m.surface.ToGlobal(m.world)
	vector.DrawFilledCircle(dst, float32(sp.X), float32(sp.Y), 3, m.col, true)
	vector.StrokeCircle(dst, float32(sp.X), float32(sp.Y), 6, 1, m.col, true)
}
