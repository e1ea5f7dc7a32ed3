package board

import (
	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(pt cp.Vector) bool {
	return pt.X >= r.X && pt.X < r.X+r.Width &&
		pt.Y >= r.Y && pt.Y < r.Y+r.Height
}

// Surface owns the pannable coordinate frame nested inside a fixed
// viewport. World points map to screen points by a pure translation:
// screen = world + offset. There is no scale or rotation.
type Surface struct {
	offset   cp.Vector
	viewport Rect

	panning bool
	last    cp.Vector
	sub     *Subscription
}

// NewSurface creates a surface with a zero pan offset.
func NewSurface(viewport Rect) *Surface {
	return &Surface{viewport: viewport}
}

// Offset returns the current pan offset.
func (s *Surface) Offset() cp.Vector {
	return s.offset
}

// Viewport returns the fixed display bounds in screen coordinates.
func (s *Surface) Viewport() Rect {
	return s.viewport
}

// SetViewport replaces the viewport bounds, e.g. after a window resize.
func (s *Surface) SetViewport(r Rect) {
	s.viewport = r
}

// PanBy translates the frame offset unconditionally. The frame itself is
// never clamped; only individual anchors are bounds-checked.
func (s *Surface) PanBy(dx, dy float64) {
	s.offset = s.offset.Add(cp.Vector{X: dx, Y: dy})
}

// ToLocal converts a screen-space point into world space.
func (s *Surface) ToLocal(screen cp.Vector) cp.Vector {
	return screen.Sub(s.offset)
}

// ToGlobal converts a world-space point into screen space.
func (s *Surface) ToGlobal(world cp.Vector) cp.Vector {
	return world.Add(s.offset)
}

// Panning reports whether a pan gesture is active.
func (s *Surface) Panning() bool {
	return s.panning
}

// HandlePress starts a pan gesture when the press lands inside the
// viewport while the modifier condition holds. While the gesture is
// active the surface listens for global pointer events through d and
// pans by the pointer delta since the previous move, re-anchoring the
// reference point each time. Returns whether the gesture started.
func (s *Surface) HandlePress(pt cp.Vector, modifier bool, d *Dispatcher) bool {
	if s.panning || !modifier || !s.viewport.Contains(pt) {
		return false
	}
	s.panning = true
	s.last = pt
	s.sub = d.Subscribe(Subscriber{
		Move: func(pt cp.Vector) {
			delta := pt.Sub(s.last)
			s.PanBy(delta.X, delta.Y)
			s.last = pt
		},
		Up:    func(cp.Vector) { s.endPan() },
		Leave: s.endPan,
	})
	return true
}

func (s *Surface) endPan() {
	if !s.panning {
		return
	}
	s.panning = false
	if s.sub != nil {
		s.sub.Release()
		s.sub = nil
	}
}
