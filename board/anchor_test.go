package board

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeMarker struct {
	pos     cp.Vector
	sets    int
	removed bool
}

func (m *fakeMarker) SetWorldPosition(pt cp.Vector) {
	m.pos = pt
	m.sets++
}

func (m *fakeMarker) Remove() { m.removed = true }

type fakeOverlay struct {
	pos     cp.Vector
	sets    int
	removed bool
}

func (o *fakeOverlay) SetScreenPosition(pt cp.Vector) {
	o.pos = pt
	o.sets++
}

func (o *fakeOverlay) Remove() { o.removed = true }

type fixture struct {
	surface *Surface
	sched   *Scheduler
	disp    *Dispatcher
}

func newFixture(vp Rect) *fixture {
	return &fixture{
		surface: NewSurface(vp),
		sched:   NewScheduler(),
		disp:    NewDispatcher(),
	}
}

func (f *fixture) anchor(world, footprint cp.Vector) (*Anchor, *fakeMarker, *fakeOverlay) {
	m := &fakeMarker{}
	o := &fakeOverlay{}
	a := NewAnchor(f.surface, f.sched, world, footprint, m, o)
	return a, m, o
}

func TestRefreshFollowsPan(t *testing.T) {
	// viewport 600x700, footprint 100x40, world (100,75)
	f := newFixture(Rect{Width: 600, Height: 700})
	a, _, o := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})

	if !almostEqual(o.pos, cp.Vector{X: 100, Y: 75}) {
		t.Fatalf("expected initial placement (100,75), got %v", o.pos)
	}

	f.surface.PanBy(50, 20)
	f.sched.Tick()
	if !almostEqual(o.pos, cp.Vector{X: 150, Y: 95}) {
		t.Fatalf("expected placement (150,95) after pan, got %v", o.pos)
	}
	if !almostEqual(a.World(), cp.Vector{X: 100, Y: 75}) {
		t.Fatalf("pan mutated the world position: %v", a.World())
	}
}

func TestPanNeverMutatesWorldPositions(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a1, _, _ := f.anchor(cp.Vector{X: 10, Y: 20}, cp.Vector{X: 50, Y: 30})
	a2, _, _ := f.anchor(cp.Vector{X: 400, Y: 600}, cp.Vector{X: 50, Y: 30})

	pans := [][2]float64{{100, 0}, {-2000, 35}, {0.5, -0.25}}
	for _, p := range pans {
		f.surface.PanBy(p[0], p[1])
		f.sched.Tick()
	}
	if !almostEqual(a1.World(), cp.Vector{X: 10, Y: 20}) {
		t.Fatalf("a1 world position changed under pan: %v", a1.World())
	}
	if !almostEqual(a2.World(), cp.Vector{X: 400, Y: 600}) {
		t.Fatalf("a2 world position changed under pan: %v", a2.World())
	}
}

func TestRefreshIdempotent(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	_, _, o := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})

	o.sets = 0
	f.sched.Tick()
	first := o.pos
	f.sched.Tick()
	if !almostEqual(o.pos, first) {
		t.Fatalf("refresh with no state change moved the overlay: %v -> %v", first, o.pos)
	}
	if o.sets != 2 {
		t.Fatalf("expected one placement per tick, got %d", o.sets)
	}
}

func TestDragCommitStaysInsideViewport(t *testing.T) {
	cases := []struct {
		name      string
		viewport  Rect
		start     cp.Vector
		footprint cp.Vector
		pan       [2]float64
		pointer   cp.Vector
		wantProj  cp.Vector // expected screen projection after the move
	}{
		{
			name:      "right_edge",
			viewport:  Rect{Width: 600, Height: 700},
			start:     cp.Vector{X: 100, Y: 75},
			footprint: cp.Vector{X: 100, Y: 40},
			pointer:   cp.Vector{X: 2000, Y: 75},
			wantProj:  cp.Vector{X: 500, Y: 75}, // 600 - 100
		},
		{
			name:      "bottom_edge",
			viewport:  Rect{Width: 600, Height: 700},
			start:     cp.Vector{X: 100, Y: 75},
			footprint: cp.Vector{X: 100, Y: 40},
			pointer:   cp.Vector{X: 100, Y: 5000},
			wantProj:  cp.Vector{X: 100, Y: 660}, // 700 - 40
		},
		{
			name:      "top_left_negative",
			viewport:  Rect{Width: 600, Height: 700},
			start:     cp.Vector{X: 100, Y: 75},
			footprint: cp.Vector{X: 100, Y: 40},
			pointer:   cp.Vector{X: -500, Y: -500},
			wantProj:  cp.Vector{X: 0, Y: 0},
		},
		{
			name:      "nonzero_viewport_origin",
			viewport:  Rect{X: 0, Y: 40, Width: 600, Height: 660},
			start:     cp.Vector{X: 100, Y: 100},
			footprint: cp.Vector{X: 100, Y: 40},
			pointer:   cp.Vector{X: 100, Y: 0},
			wantProj:  cp.Vector{X: 100, Y: 40}, // clamped to the viewport origin
		},
		{
			name:      "clamp_under_pan",
			viewport:  Rect{Width: 600, Height: 700},
			start:     cp.Vector{X: 100, Y: 75},
			footprint: cp.Vector{X: 100, Y: 40},
			pan:       [2]float64{-300, 0},
			pointer:   cp.Vector{X: 2000, Y: 75},
			wantProj:  cp.Vector{X: 500, Y: 75},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(c.viewport)
			a, _, _ := f.anchor(c.start, c.footprint)
			f.surface.PanBy(c.pan[0], c.pan[1])

			grab := f.surface.ToGlobal(a.World())
			a.BeginDrag(grab, f.disp)
			f.disp.PointerMove(c.pointer)
			f.disp.PointerUp(c.pointer)

			proj := f.surface.ToGlobal(a.World())
			if !almostEqual(proj, c.wantProj) {
				t.Fatalf("expected screen projection %v, got %v", c.wantProj, proj)
			}
			if a.Dragging() {
				t.Fatalf("anchor still dragging after pointer up")
			}
		})
	}
}

func TestDragPreservesGrabPoint(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a, m, _ := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})

	// grab the element 30,10 inside its top-left corner
	a.BeginDrag(cp.Vector{X: 130, Y: 85}, f.disp)
	f.disp.PointerMove(cp.Vector{X: 230, Y: 185})
	want := cp.Vector{X: 200, Y: 175}
	if !almostEqual(a.World(), want) {
		t.Fatalf("expected world %v, got %v", want, a.World())
	}
	// marker tracks the committed position immediately
	if !almostEqual(m.pos, want) {
		t.Fatalf("marker not updated during drag: %v", m.pos)
	}
	f.disp.PointerUp(cp.Vector{X: 230, Y: 185})
}

func TestDragMoveIgnoredWhenIdle(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a, _, _ := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})
	a.DragMove(cp.Vector{X: 300, Y: 300})
	if !almostEqual(a.World(), cp.Vector{X: 100, Y: 75}) {
		t.Fatalf("DragMove outside a drag mutated the position: %v", a.World())
	}
}

func TestTwoAnchorsDragIndependently(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a1, _, _ := f.anchor(cp.Vector{X: 100, Y: 100}, cp.Vector{X: 50, Y: 30})
	a2, _, _ := f.anchor(cp.Vector{X: 300, Y: 300}, cp.Vector{X: 50, Y: 30})

	a1.BeginDrag(cp.Vector{X: 110, Y: 110}, f.disp)
	a2.BeginDrag(cp.Vector{X: 320, Y: 310}, f.disp)

	// both receive the same global moves but keep their own drag offsets
	f.disp.PointerMove(cp.Vector{X: 150, Y: 150})
	if !almostEqual(a1.World(), cp.Vector{X: 140, Y: 140}) {
		t.Fatalf("a1 expected (140,140), got %v", a1.World())
	}
	if !almostEqual(a2.World(), cp.Vector{X: 130, Y: 140}) {
		t.Fatalf("a2 expected (130,140), got %v", a2.World())
	}
	f.disp.PointerUp(cp.Vector{X: 150, Y: 150})
	if a1.Dragging() || a2.Dragging() {
		t.Fatalf("both drags should end on pointer up")
	}
	if f.disp.Active() != 0 {
		t.Fatalf("subscriptions leaked: %d", f.disp.Active())
	}
}

func TestInvertedClampBoundsAnchorToLowerBound(t *testing.T) {
	// footprint wider than the viewport: bounds invert, fall back to
	// the viewport origin instead of producing a swapped range
	f := newFixture(Rect{X: 5, Y: 10, Width: 600, Height: 700})
	a, _, _ := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 800, Y: 40})

	proj := f.surface.ToGlobal(a.World())
	if proj.X != 5 {
		t.Fatalf("expected x anchored to viewport origin 5, got %v", proj.X)
	}

	a.BeginDrag(f.surface.ToGlobal(a.World()), f.disp)
	f.disp.PointerMove(cp.Vector{X: 400, Y: 75})
	f.disp.PointerUp(cp.Vector{X: 400, Y: 75})
	proj = f.surface.ToGlobal(a.World())
	if proj.X != 5 {
		t.Fatalf("expected x to stay anchored at 5 after drag, got %v", proj.X)
	}
}

func TestDegenerateViewportClampsToSinglePoint(t *testing.T) {
	f := newFixture(Rect{X: 50, Y: 60, Width: 0, Height: 0})
	a, _, _ := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 10, Y: 10})

	proj := f.surface.ToGlobal(a.World())
	if !almostEqual(proj, cp.Vector{X: 50, Y: 60}) {
		t.Fatalf("expected projection pinned to (50,60), got %v", proj)
	}
}

func TestEndDragReleasesOnEveryExitPath(t *testing.T) {
	exits := []struct {
		name string
		exit func(f *fixture)
	}{
		{"pointer_up", func(f *fixture) { f.disp.PointerUp(cp.Vector{X: 0, Y: 0}) }},
		{"pointer_leave", func(f *fixture) { f.disp.PointerLeave() }},
	}

	for _, e := range exits {
		t.Run(e.name, func(t *testing.T) {
			f := newFixture(Rect{Width: 600, Height: 700})
			a, _, _ := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})
			a.BeginDrag(cp.Vector{X: 110, Y: 85}, f.disp)
			if f.disp.Active() != 1 {
				t.Fatalf("expected 1 subscription during drag, got %d", f.disp.Active())
			}
			e.exit(f)
			if a.Dragging() {
				t.Fatalf("anchor still dragging after %s", e.name)
			}
			if f.disp.Active() != 0 {
				t.Fatalf("subscription leaked after %s: %d", e.name, f.disp.Active())
			}
			// EndDrag is idempotent
			a.EndDrag()
		})
	}
}

func TestNewAnchorClampsInitialPosition(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a, _, _ := f.anchor(cp.Vector{X: 5000, Y: -300}, cp.Vector{X: 100, Y: 40})
	proj := f.surface.ToGlobal(a.World())
	want := cp.Vector{X: 500, Y: 0}
	if !almostEqual(proj, want) {
		t.Fatalf("expected initial projection clamped to %v, got %v", want, proj)
	}
}

func TestDestroyReleasesEverything(t *testing.T) {
	f := newFixture(Rect{Width: 600, Height: 700})
	a, m, o := f.anchor(cp.Vector{X: 100, Y: 75}, cp.Vector{X: 100, Y: 40})
	a.BeginDrag(cp.Vector{X: 110, Y: 85}, f.disp)

	a.Destroy()
	if !m.removed || !o.removed {
		t.Fatalf("expected both handles removed, marker=%v overlay=%v", m.removed, o.removed)
	}
	if f.disp.Active() != 0 {
		t.Fatalf("drag subscription leaked through Destroy: %d", f.disp.Active())
	}
	sets := o.sets
	f.sched.Tick()
	if o.sets != sets {
		t.Fatalf("destroyed anchor still refreshed its overlay")
	}
}
