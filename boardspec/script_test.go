package boardspec

import (
	"strings"
	"testing"
)

func testBoard() *Board {
	return &Board{
		Name:     "script-test",
		Viewport: ViewportSpec{Width: 600, Height: 700},
		Cards: []CardSpec{
			{Name: "a", X: 1, Y: 2, Width: 100, Height: 40},
			{Name: "b", X: 3, Y: 4, Width: 100, Height: 40},
		},
	}
}

func TestApplyLayout(t *testing.T) {
	t.Run("empty_layout_is_noop", func(t *testing.T) {
		b := testBoard()
		if err := b.ApplyLayout(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Cards[0].X != 1 || b.Cards[0].Y != 2 {
			t.Fatalf("positions changed without a script: %+v", b.Cards[0])
		}
	})

	t.Run("places_named_cards", func(t *testing.T) {
		b := testBoard()
		b.Layout = `
place("a", 10, 20.5)
place("b", __board.width / 2, 40)
`
		if err := b.ApplyLayout(); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if b.Cards[0].X != 10 || b.Cards[0].Y != 20.5 {
			t.Fatalf("card a expected (10,20.5), got (%v,%v)", b.Cards[0].X, b.Cards[0].Y)
		}
		if b.Cards[1].X != 300 || b.Cards[1].Y != 40 {
			t.Fatalf("card b expected (300,40), got (%v,%v)", b.Cards[1].X, b.Cards[1].Y)
		}
	})

	t.Run("unplaced_cards_keep_file_positions", func(t *testing.T) {
		b := testBoard()
		b.Layout = `place("a", 50, 50)`
		if err := b.ApplyLayout(); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if b.Cards[1].X != 3 || b.Cards[1].Y != 4 {
			t.Fatalf("card b should keep its file position, got (%v,%v)", b.Cards[1].X, b.Cards[1].Y)
		}
	})

	t.Run("script_sees_card_list", func(t *testing.T) {
		b := testBoard()
		b.Layout = `
for i, c in __cards {
  place(c.name, c.width * (i + 1), c.height)
}
`
		if err := b.ApplyLayout(); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if b.Cards[0].X != 100 || b.Cards[1].X != 200 {
			t.Fatalf("expected x positions 100 and 200, got %v and %v", b.Cards[0].X, b.Cards[1].X)
		}
	})

	t.Run("unknown_names_ignored", func(t *testing.T) {
		b := testBoard()
		b.Layout = `place("missing", 9, 9)`
		if err := b.ApplyLayout(); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if b.Cards[0].X != 1 {
			t.Fatalf("card a should be untouched, got x=%v", b.Cards[0].X)
		}
	})

	t.Run("compile_error_reported", func(t *testing.T) {
		b := testBoard()
		b.Layout = `place("a", `
		err := b.ApplyLayout()
		if err == nil || !strings.Contains(err.Error(), "compile layout script") {
			t.Fatalf("expected compile error, got %v", err)
		}
	})
}
