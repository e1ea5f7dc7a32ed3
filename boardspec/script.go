package boardspec

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ApplyLayout runs the board's tengo layout script, if any, and writes
// the resulting positions back onto the cards. The script sees the
// board size as __board, the card list as __cards, and calls
// place(name, x, y) for every card it wants to move. Cards the script
// does not place keep their file positions.
func (b *Board) ApplyLayout() error {
	src := strings.TrimSpace(b.Layout)
	if src == "" {
		return nil
	}

	placements := map[string][2]float64{}
	place := &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		x, okX := objectAsFloat(args[1])
		y, okY := objectAsFloat(args[2])
		if name == "" || !okX || !okY {
			return tengo.FalseValue, nil
		}
		placements[name] = [2]float64{x, y}
		return tengo.TrueValue, nil
	}}

	cards := make([]any, 0, len(b.Cards))
	for _, c := range b.Cards {
		cards = append(cards, map[string]any{
			"name":   c.Name,
			"x":      c.X,
			"y":      c.Y,
			"width":  c.Width,
			"height": c.Height,
		})
	}

	script := tengo.NewScript([]byte(src))
	_ = script.Add("place", place)
	_ = script.Add("__board", map[string]any{
		"width":  b.Viewport.Width,
		"height": b.Viewport.Height,
	})
	_ = script.Add("__cards", cards)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("boardspec: compile layout script: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("boardspec: run layout script: %w", err)
	}

	for i := range b.Cards {
		if p, ok := placements[b.Cards[i].Name]; ok {
			b.Cards[i].X = p[0]
			b.Cards[i].Y = p[1]
		}
	}
	return nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
