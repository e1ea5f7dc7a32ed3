package board

import (
	"github.com/jakecoffman/cp"
)

// Marker is the world-space visual bound to an anchor. It moves the
// moment the anchor's world position changes.
type Marker interface {
	SetWorldPosition(pt cp.Vector)
	Remove()
}

// Overlay is the externally positioned screen-space element bound to an
// anchor. Its placement is recomputed every frame from the anchor's
// world position and the surface's current pan offset.
type Overlay interface {
	SetScreenPosition(pt cp.Vector)
	Remove()
}

// Anchor binds one persistent world-space position to a marker and an
// overlay. Panning the surface never mutates the stored position; only
// a drag does, and a drag commit is always clamped to the viewport.
type Anchor struct {
	surface   *Surface
	world     cp.Vector
	footprint cp.Vector

	marker  Marker
	overlay Overlay

	dragging   bool
	dragOffset cp.Vector
	sub        *Subscription
	tick       *FrameCallback
}

// NewAnchor creates an anchor, clamps the requested world position into
// the viewport and registers its per-frame refresh with sched. The
// anchor owns marker and overlay until Destroy.
func NewAnchor(s *Surface, sched *Scheduler, world, footprint cp.Vector, marker Marker, overlay Overlay) *Anchor {
	a := &Anchor{
		surface:   s,
		footprint: footprint,
		marker:    marker,
		overlay:   overlay,
	}
	a.setWorld(a.clampWorld(world))
	a.tick = sched.RegisterFrameCallback(a.Refresh)
	a.Refresh()
	return a
}

// World returns the anchor's world-space position.
func (a *Anchor) World() cp.Vector {
	return a.world
}

// Footprint returns the element's width and height.
func (a *Anchor) Footprint() cp.Vector {
	return a.footprint
}

// Dragging reports whether a drag gesture is active.
func (a *Anchor) Dragging() bool {
	return a.dragging
}

// ScreenRect returns the overlay's current screen placement.
func (a *Anchor) ScreenRect() Rect {
	pt := a.surface.ToGlobal(a.world)
	return Rect{X: pt.X, Y: pt.Y, Width: a.footprint.X, Height: a.footprint.Y}
}

// HitTest reports whether a screen point lands on the element.
func (a *Anchor) HitTest(pt cp.Vector) bool {
	return a.ScreenRect().Contains(pt)
}

// BeginDrag enters the Dragging state and records the pointer's offset
// within the element, in world space. While dragging the anchor listens
// for global pointer events through d so the gesture survives the
// pointer leaving the element. A press that reaches BeginDrag must not
// also start a surface pan; the host is responsible for routing.
func (a *Anchor) BeginDrag(pointerScreen cp.Vector, d *Dispatcher) {
	if a.dragging {
		return
	}
	a.dragging = true
	a.dragOffset = a.surface.ToLocal(pointerScreen).Sub(a.world)
	a.sub = d.Subscribe(Subscriber{
		Move:  a.DragMove,
		Up:    func(cp.Vector) { a.EndDrag() },
		Leave: a.EndDrag,
	})
}

// DragMove recomputes the world position from the pointer, clamped so
// the element's screen projection stays inside the viewport. No-op
// unless a drag is active.
func (a *Anchor) DragMove(pointerScreen cp.Vector) {
	if !a.dragging {
		return
	}
	proposed := a.surface.ToLocal(pointerScreen).Sub(a.dragOffset)
	a.setWorld(a.clampWorld(proposed))
}

// EndDrag exits the Dragging state and discards the drag offset.
// Idempotent; called on pointer-up and pointer-leave.
func (a *Anchor) EndDrag() {
	if !a.dragging {
		return
	}
	a.dragging = false
	a.dragOffset = cp.Vector{}
	if a.sub != nil {
		a.sub.Release()
		a.sub = nil
	}
}

// Refresh recomputes the overlay's screen placement from the world
// position and the current pan offset. No clamping here: panning may
// move an element out of view visually, it never rewrites the stored
// position.
func (a *Anchor) Refresh() {
	a.overlay.SetScreenPosition(a.surface.ToGlobal(a.world))
}

// Destroy ends any active drag, unregisters the per-frame refresh and
// releases both visual handles.
func (a *Anchor) Destroy() {
	a.EndDrag()
	if a.tick != nil {
		a.tick.Cancel()
		a.tick = nil
	}
	if a.marker != nil {
		a.marker.Remove()
		a.marker = nil
	}
	if a.overlay != nil {
		a.overlay.Remove()
		a.overlay = nil
	}
}

func (a *Anchor) setWorld(pt cp.Vector) {
	a.world = pt
	if a.marker != nil {
		a.marker.SetWorldPosition(pt)
	}
}

// clampWorld converts the proposed world position to screen space,
// clamps each axis to the viewport minus the element footprint, and
// converts back. Clamping has to happen in the frame the bounds are
// defined in; the committed value has to stay in world space so it
// remains correct under later panning.
func (a *Anchor) clampWorld(world cp.Vector) cp.Vector {
	sp := a.surface.ToGlobal(world)
	vp := a.surface.Viewport()
	sp.X = clampAxis(sp.X, vp.X, vp.X+vp.Width-a.footprint.X)
	sp.Y = clampAxis(sp.Y, vp.Y, vp.Y+vp.Height-a.footprint.Y)
	return a.surface.ToLocal(sp)
}

// clampAxis clamps v to [lo, hi]. When the element footprint exceeds
// the viewport on an axis the bounds invert; anchor to the lower bound
// so the result stays deterministic.
func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
