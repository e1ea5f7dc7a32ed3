package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/ORO42/nodeboard/board"
	"github.com/ORO42/nodeboard/boardspec"
	"github.com/ORO42/nodeboard/cardui"
)

const (
	hudHeight = 40
	gridStep  = 80
)

var (
	colBG   = color.NRGBA{R: 0x1c, G: 0x1e, B: 0x26, A: 0xff}
	colGrid = color.NRGBA{R: 0x2a, G: 0x2d, B: 0x3a, A: 0xff}
)

type cardEntry struct {
	name   string
	anchor *board.Anchor
	card   *cardui.Card
	marker *cardui.Marker
}

// Game wires the board core to Ebiten: it polls pointer/keyboard state,
// feeds the gesture dispatcher, ticks the frame scheduler and draws
// markers, cards and the HUD.
type Game struct {
	logger    *log.Logger
	boardPath string
	spec      *boardspec.Board

	surface *board.Surface
	sched   *board.Scheduler
	disp    *board.Dispatcher

	ui   *ebitenui.UI
	face ebtext.Face

	entries  []*cardEntry
	selected *cardEntry

	watcher     *boardspec.Watcher
	clipboardOK bool

	prevLeft bool
	cursorIn bool
	lastPt   cp.Vector

	winW, winH int
}

// NewGame builds a game for the given board. watcher may be nil when no
// on-disk board file is being watched.
func NewGame(spec *boardspec.Board, boardPath string, watcher *boardspec.Watcher, clipboardOK bool, logger *log.Logger) *Game {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	g := &Game{
		logger:      logger,
		boardPath:   boardPath,
		spec:        spec,
		sched:       board.NewScheduler(),
		disp:        board.NewDispatcher(),
		face:        face,
		watcher:     watcher,
		clipboardOK: clipboardOK,
		winW:        spec.Viewport.Width,
		winH:        spec.Viewport.Height + hudHeight,
	}
	g.surface = board.NewSurface(board.Rect{
		X:      0,
		Y:      hudHeight,
		Width:  float64(spec.Viewport.Width),
		Height: float64(spec.Viewport.Height),
	})
	g.buildCards()
	g.ui = buildHUD(g)
	return g
}

func (g *Game) buildCards() {
	for _, e := range g.entries {
		e.anchor.Destroy()
	}
	g.entries = nil
	g.selected = nil

	vp := g.surface.Viewport()
	for _, c := range g.spec.Cards {
		var col color.Color
		if c.Color != nil {
			col = c.Color.Color
		}
		card := cardui.NewCard(c.Name, c.Width, c.Height, col, g.face)
		marker := cardui.NewMarker(g.surface, col)
		// board files give card positions relative to the viewport
		// origin; the viewport itself sits below the HUD bar
		world := g.surface.ToLocal(cp.Vector{X: vp.X + c.X, Y: vp.Y + c.Y})
		anchor := board.NewAnchor(g.surface, g.sched,
			world,
			cp.Vector{X: c.Width, Y: c.Height},
			marker, card)
		g.entries = append(g.entries, &cardEntry{name: c.Name, anchor: anchor, card: card, marker: marker})
	}
	g.logger.Debug("built cards", "count", len(g.entries))
}

func (g *Game) modifierHeld() bool {
	switch g.spec.PanModifier {
	case "shift":
		return ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	case "alt":
		return ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)
	default:
		return ebiten.IsKeyPressed(ebiten.KeySpace)
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.ui.Update()

	mx, my := ebiten.CursorPosition()
	pt := cp.Vector{X: float64(mx), Y: float64(my)}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	in := mx >= 0 && my >= 0 && mx < g.winW && my < g.winH
	if !in && g.cursorIn {
		g.disp.PointerLeave()
	}
	g.cursorIn = in

	if in && pt != g.lastPt {
		g.disp.PointerMove(pt)
		g.lastPt = pt
	}
	if !left && g.prevLeft {
		g.disp.PointerUp(pt)
	}
	if left && !g.prevLeft && my >= hudHeight {
		g.handlePress(pt)
	}
	g.prevLeft = left

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySelected()
	}

	g.sched.Tick()
	return nil
}

// handlePress routes a fresh press: the topmost card wins, and a press
// on a card never reaches the surface's pan handler.
func (g *Game) handlePress(pt cp.Vector) {
	for i := len(g.entries) - 1; i >= 0; i-- {
		e := g.entries[i]
		if e.anchor.HitTest(pt) {
			g.selectEntry(e)
			e.anchor.BeginDrag(pt, g.disp)
			g.logger.Debug("drag start", "card", e.name)
			return
		}
	}
	if g.surface.HandlePress(pt, g.modifierHeld(), g.disp) {
		g.logger.Debug("pan start")
		return
	}
	g.selectEntry(nil)
}

func (g *Game) selectEntry(e *cardEntry) {
	if g.selected == e {
		return
	}
	if g.selected != nil {
		g.selected.card.SetSelected(false)
	}
	g.selected = e
	if e != nil {
		e.card.SetSelected(true)
	}
}

func (g *Game) resetView() {
	off := g.surface.Offset()
	g.surface.PanBy(-off.X, -off.Y)
	g.logger.Debug("view reset")
}

func (g *Game) copySelected() {
	if g.selected == nil || !g.clipboardOK {
		return
	}
	w := g.selected.anchor.World()
	text := fmt.Sprintf("%s: (%.1f, %.1f)", g.selected.name, w.X, w.Y)
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.logger.Info("copied card position", "card", g.selected.name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Info("board file changed", "file", name)
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Error("watcher error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload() {
	spec, err := boardspec.Load(g.boardPath)
	if err != nil {
		g.logger.Error("reload failed, keeping current board", "err", err)
		return
	}
	if err := spec.ApplyLayout(); err != nil {
		g.logger.Error("layout script failed, using file positions", "err", err)
	}
	// end any in-flight gesture before tearing the anchors down
	g.disp.PointerLeave()
	g.spec = spec
	g.buildCards()
	g.ui = buildHUD(g)
	g.logger.Info("board reloaded", "board", spec.Name, "cards", len(spec.Cards))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)

	boardImg := screen.SubImage(image.Rect(0, hudHeight, g.winW, g.winH)).(*ebiten.Image)
	g.drawGrid(boardImg)
	for _, e := range g.entries {
		e.marker.Draw(boardImg)
	}
	for _, e := range g.entries {
		e.card.Draw(boardImg)
	}

	g.ui.Draw(screen)

	off := g.surface.Offset()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("offset: (%.0f, %.0f)    cards: %d    FPS: %.1f", off.X, off.Y, len(g.entries), ebiten.ActualFPS()),
		8, g.winH-18)
}

// drawGrid draws world-space grid lines so panning is visible.
func (g *Game) drawGrid(dst *ebiten.Image) {
	vp := g.surface.Viewport()
	topLeft := g.surface.ToLocal(cp.Vector{X: vp.X, Y: vp.Y})

	startX := float64(int(topLeft.X/gridStep)-1) * gridStep
	for wx := startX; ; wx += gridStep {
		sx := g.surface.ToGlobal(cp.Vector{X: wx}).X
		if sx > vp.X+vp.Width {
			break
		}
		vector.StrokeLine(dst, float32(sx), float32(vp.Y), float32(sx), float32(vp.Y+vp.Height), 1, colGrid, false)
	}
	startY := float64(int(topLeft.Y/gridStep)-1) * gridStep
	for wy := startY; ; wy += gridStep {
		sy := g.surface.ToGlobal(cp.Vector{Y: wy}).Y
		if sy > vp.Y+vp.Height {
			break
		}
		vector.StrokeLine(dst, float32(vp.X), float32(sy), float32(vp.X+vp.Width), float32(sy), 1, colGrid, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.winW, g.winH = outsideWidth, outsideHeight
	boardH := outsideHeight - hudHeight
	if boardH < 0 {
		boardH = 0
	}
	g.surface.SetViewport(board.Rect{
		X:      0,
		Y:      hudHeight,
		Width:  float64(outsideWidth),
		Height: float64(boardH),
	})
	return outsideWidth, outsideHeight
}
