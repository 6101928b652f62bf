package grid

import "testing"

func TestHeightGrid_NeverNegative(t *testing.T) {
	g := NewHeightGrid(4, 4)
	c := Cell{X: 1, Z: 1}

	if g.Lower(c) {
		t.Fatalf("Lower on empty cell should fail")
	}
	if got := g.At(c); got != 0 {
		t.Fatalf("height after failed Lower = %d, want 0", got)
	}

	g.Set(c, -3)
	if got := g.At(c); got != 0 {
		t.Fatalf("Set with negative value gave %d, want 0", got)
	}

	if !g.Raise(c) || !g.Lower(c) {
		t.Fatalf("Raise/Lower round trip failed")
	}
	if got := g.At(c); got != 0 {
		t.Fatalf("height after round trip = %d, want 0", got)
	}
}

func TestHeightGrid_OutOfBounds(t *testing.T) {
	g := NewHeightGrid(3, 3)
	out := Cell{X: 5, Z: 1}

	if g.InBounds(out) {
		t.Fatalf("(5,1) should be out of bounds on 3x3")
	}
	if g.At(out) != 0 {
		t.Fatalf("out-of-bounds At should be 0")
	}
	if g.Raise(out) {
		t.Fatalf("out-of-bounds Raise should fail")
	}
	if g.Lower(out) {
		t.Fatalf("out-of-bounds Lower should fail")
	}
}

func TestHeightGrid_CloneIsIndependent(t *testing.T) {
	g := NewHeightGrid(4, 4)
	g.Set(Cell{X: 2, Z: 2}, 3)

	c := g.Clone()
	c.Raise(Cell{X: 2, Z: 2})
	c.Set(Cell{X: 0, Z: 0}, 7)

	if got := g.At(Cell{X: 2, Z: 2}); got != 3 {
		t.Fatalf("original mutated through clone: %d", got)
	}
	if got := g.At(Cell{X: 0, Z: 0}); got != 0 {
		t.Fatalf("original mutated through clone: %d", got)
	}
	if got := c.Sum(); got != 11 {
		t.Fatalf("clone sum = %d, want 11", got)
	}
	if got := g.Sum(); got != 3 {
		t.Fatalf("original sum = %d, want 3", got)
	}
}

func TestUnits_CellMapping(t *testing.T) {
	u := DefaultUnits()

	top := u.CellTop(Cell{X: 3, Z: 5}, 2)
	if top.X != 3.5 || top.Y != 2.0 || top.Z != 5.5 {
		t.Fatalf("CellTop = %+v", top)
	}
	if got := u.CellOf(top); got != (Cell{X: 3, Z: 5}) {
		t.Fatalf("CellOf(CellTop) = %+v", got)
	}
	if got := u.LevelOf(top); got != 2 {
		t.Fatalf("LevelOf = %d, want 2", got)
	}
	if got := u.LevelOf(Vec3{Y: 1.9}); got != 1 {
		t.Fatalf("LevelOf(1.9) = %d, want 1", got)
	}
}

func TestCell_Neighbors4Order(t *testing.T) {
	n := Cell{X: 2, Z: 3}.Neighbors4()
	want := [4]Cell{{X: 3, Z: 3}, {X: 1, Z: 3}, {X: 2, Z: 4}, {X: 2, Z: 2}}
	if n != want {
		t.Fatalf("neighbor order = %v, want %v", n, want)
	}
}
