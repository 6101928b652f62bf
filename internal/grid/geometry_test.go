package grid

import (
	"reflect"
	"testing"
)

func TestBuildGeometry_SurfacesCoverEveryCell(t *testing.T) {
	g := NewHeightGrid(3, 2)
	g.Set(Cell{X: 1, Z: 0}, 2)

	geo := BuildGeometry(g, DefaultUnits())
	if len(geo.Surfaces) != 6 {
		t.Fatalf("surfaces = %d, want 6", len(geo.Surfaces))
	}
	for _, s := range geo.Surfaces {
		want := g.At(s.Cell)
		if s.Height != want {
			t.Fatalf("surface %+v height %d, want %d", s.Cell, s.Height, want)
		}
		if s.Top.Y != float64(want) {
			t.Fatalf("surface %+v top y %f", s.Cell, s.Top.Y)
		}
	}
}

func TestBuildGeometry_MeshOnlyForStacks(t *testing.T) {
	g := NewHeightGrid(2, 2)
	geo := BuildGeometry(g, DefaultUnits())
	if len(geo.Vertices) != 0 || len(geo.Indices) != 0 {
		t.Fatalf("flat grid should have no mesh, got %d verts", len(geo.Vertices))
	}

	g.Set(Cell{X: 0, Z: 1}, 1)
	geo = BuildGeometry(g, DefaultUnits())
	if len(geo.Vertices) != 8 {
		t.Fatalf("one box should have 8 vertices, got %d", len(geo.Vertices))
	}
	if len(geo.Indices) != 36 {
		t.Fatalf("one box should have 36 indices, got %d", len(geo.Indices))
	}
}

func TestBuildGeometry_PureFunctionOfGrid(t *testing.T) {
	g := NewHeightGrid(4, 4)
	g.Set(Cell{X: 1, Z: 2}, 3)
	g.Set(Cell{X: 3, Z: 0}, 1)

	a := BuildGeometry(g, DefaultUnits())
	b := BuildGeometry(g.Clone(), DefaultUnits())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("geometry differs across calls on equal grids")
	}
}
