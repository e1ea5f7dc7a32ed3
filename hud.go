package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// buildHUD assembles the top bar: board name, card count, a Reset View
// button and the interaction hints. Rebuilt whenever the board reloads.
func buildHUD(g *Game) *ebitenui.UI {
	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x12, G: 0x13, B: 0x1a, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x36, B: 0x44, A: 0xff})

	textColor := color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	hintColor := color.NRGBA{R: 0x8a, G: 0x8d, B: 0x9a, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	title := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("%s  (%d cards)", g.spec.Name, len(g.spec.Cards)), &g.face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resetBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Reset View", &g.face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.resetView()
		}),
	)

	modifier := g.spec.PanModifier
	if modifier == "" {
		modifier = "space"
	}
	hints := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("%s+drag: pan   drag: move card   C: copy pos   R: reset", modifier), &g.face, hintColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(24),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.winW, hudHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)
	bar.AddChild(title)
	bar.AddChild(resetBtn)
	bar.AddChild(hints)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	return &ebitenui.UI{Container: root}
}
