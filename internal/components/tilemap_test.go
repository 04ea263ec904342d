package components

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func gridFrom(rows []string) ([]bool, int, int) {
	h := len(rows)
	w := len(rows[0])
	solid := make([]bool, w*h)
	for y, row := range rows {
		for x, c := range row {
			solid[y*w+x] = c == '#'
		}
	}
	return solid, w, h
}

func rectArea(rects []TileRect) int {
	total := 0
	for _, r := range rects {
		total += r.W * r.H
	}
	return total
}

func triangleArea(tris [][3]rl.Vector2) float32 {
	var total float32
	for _, tri := range tris {
		ab := rl.Vector2Subtract(tri[1], tri[0])
		ac := rl.Vector2Subtract(tri[2], tri[0])
		total += math32.Abs(ab.X*ac.Y-ab.Y*ac.X) / 2
	}
	return total
}

func TestMergeRectsFullBlock(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"##",
		"##",
	})

	rects := mergeRects(solid, w, h)
	if len(rects) != 1 {
		t.Fatalf("Expected 1 merged rect, got %d: %v", len(rects), rects)
	}
	if rects[0] != (TileRect{X: 0, Y: 0, W: 2, H: 2}) {
		t.Errorf("Unexpected rect %v", rects[0])
	}
}

func TestMergeRectsLShape(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"#..",
		"#..",
		"###",
	})

	rects := mergeRects(solid, w, h)
	if rectArea(rects) != 5 {
		t.Errorf("Merged rects should cover 5 cells, got %d from %v", rectArea(rects), rects)
	}

	// No overlaps: mark covered cells and ensure each is hit once
	covered := make([]int, w*h)
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				covered[y*w+x]++
			}
		}
	}
	for i, c := range covered {
		if solid[i] && c != 1 {
			t.Errorf("Cell %d covered %d times", i, c)
		}
		if !solid[i] && c != 0 {
			t.Errorf("Empty cell %d covered by a rect", i)
		}
	}
}

func TestMergeRectsEmpty(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"...",
		"...",
	})
	if rects := mergeRects(solid, w, h); len(rects) != 0 {
		t.Errorf("Empty grid should merge to no rects, got %v", rects)
	}
}

func TestTriangulateFullBlock(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"##",
		"##",
	})

	tris := triangulateGrid(solid, w, h, 10, 10)
	if len(tris) == 0 {
		t.Fatal("Expected triangles for a solid block")
	}
	if area := triangleArea(tris); math32.Abs(area-400) > 0.01 {
		t.Errorf("Expected total triangle area 400, got %f", area)
	}
}

func TestTriangulateConcaveShape(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"#.#",
		"###",
	})

	tris := triangulateGrid(solid, w, h, 1, 1)
	if area := triangleArea(tris); math32.Abs(area-4) > 0.001 {
		t.Errorf("Expected total triangle area 4, got %f", area)
	}
}

func TestTriangulateDropsHoles(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"###",
		"#.#",
		"###",
	})

	loops := traceContours(solid, w, h)
	if len(loops) != 2 {
		t.Fatalf("Expected outer loop plus hole, got %d loops", len(loops))
	}
	positives, negatives := 0, 0
	for _, loop := range loops {
		if signedArea(loop) > 0 {
			positives++
		} else {
			negatives++
		}
	}
	if positives != 1 || negatives != 1 {
		t.Errorf("Expected 1 outer and 1 hole loop, got %d/%d", positives, negatives)
	}

	// Holes are covered over: the outer contour triangulates to the
	// full 3x3 extent.
	tris := triangulateGrid(solid, w, h, 1, 1)
	if area := triangleArea(tris); math32.Abs(area-9) > 0.001 {
		t.Errorf("Expected hole to be filled, area 9, got %f", area)
	}
}

func TestTriangulateSeparateBlobs(t *testing.T) {
	solid, w, h := gridFrom([]string{
		"#.#",
		"#.#",
	})

	loops := traceContours(solid, w, h)
	if len(loops) != 2 {
		t.Fatalf("Expected 2 contours for 2 blobs, got %d", len(loops))
	}
	tris := triangulateGrid(solid, w, h, 1, 1)
	if area := triangleArea(tris); math32.Abs(area-4) > 0.001 {
		t.Errorf("Expected total area 4, got %f", area)
	}
}

func TestColliderCachesRebuildOnSetCell(t *testing.T) {
	col := NewTilemapCollider(4, 4, 16, 16)
	if len(col.Rects()) != 0 {
		t.Fatal("Fresh tilemap should have no rects")
	}

	col.SetCell(1, 1, true)
	rects := col.Rects()
	if len(rects) != 1 || rects[0] != (TileRect{X: 1, Y: 1, W: 1, H: 1}) {
		t.Errorf("Expected single cell rect, got %v", rects)
	}

	col.SetCell(2, 1, true)
	rects = col.Rects()
	if len(rects) != 1 || rects[0].W != 2 {
		t.Errorf("Expected merged 2-wide rect after SetCell, got %v", rects)
	}

	// Out-of-range writes are ignored
	col.SetCell(-1, 0, true)
	col.SetCell(99, 0, true)
	if col.Cell(-1, 0) || col.Cell(99, 0) {
		t.Error("Out-of-range cells should read as empty")
	}
}
