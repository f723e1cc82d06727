package board

import "testing"

func TestBoard_PlaceRejectsOutOfBounds(t *testing.T) {
	b := New()

	cases := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}}
	for _, c := range cases {
		if b.Place(c[0], c[1], X) {
			t.Errorf("Place(%d,%d) should be rejected", c[0], c[1])
		}
	}
}

func TestBoard_CellsAreWriteOnce(t *testing.T) {
	b := New()

	if !b.Place(1, 1, X) {
		t.Fatal("first placement should succeed")
	}
	if b.Place(1, 1, O) {
		t.Fatal("placing on a taken cell should be rejected")
	}
	if b.At(1, 1) != X {
		t.Fatalf("cell was overwritten: got %q", b.At(1, 1))
	}
}

func TestBoard_WinnerRows(t *testing.T) {
	for row := 0; row < 3; row++ {
		b := New()
		for col := 0; col < 3; col++ {
			b.Place(row, col, X)
		}
		if b.Winner() != X {
			t.Errorf("row %d: expected X winner, got %q", row, b.Winner())
		}
	}
}

func TestBoard_WinnerColumns(t *testing.T) {
	for col := 0; col < 3; col++ {
		b := New()
		for row := 0; row < 3; row++ {
			b.Place(row, col, O)
		}
		if b.Winner() != O {
			t.Errorf("col %d: expected O winner, got %q", col, b.Winner())
		}
	}
}

func TestBoard_WinnerDiagonals(t *testing.T) {
	b := New()
	b.Place(0, 0, X)
	b.Place(1, 1, X)
	b.Place(2, 2, X)
	if b.Winner() != X {
		t.Errorf("main diagonal: expected X winner, got %q", b.Winner())
	}

	b = New()
	b.Place(0, 2, O)
	b.Place(1, 1, O)
	b.Place(2, 0, O)
	if b.Winner() != O {
		t.Errorf("anti diagonal: expected O winner, got %q", b.Winner())
	}
}

func TestBoard_NoWinnerOnMixedLine(t *testing.T) {
	b := New()
	b.Place(0, 0, X)
	b.Place(0, 1, O)
	b.Place(0, 2, X)
	if b.Winner() != Empty {
		t.Errorf("expected no winner, got %q", b.Winner())
	}
}

func TestBoard_FullDraw(t *testing.T) {
	b := New()
	// X O X / X O O / O X X: full board, no line.
	layout := [3][3]Mark{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.Place(r, c, layout[r][c])
		}
	}

	if !b.Full() {
		t.Fatal("board should be full")
	}
	if b.Winner() != Empty {
		t.Fatalf("expected draw, got winner %q", b.Winner())
	}
}

func TestMark_Other(t *testing.T) {
	if X.Other() != O || O.Other() != X {
		t.Fatal("Other should flip between X and O")
	}
}
