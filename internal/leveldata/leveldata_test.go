package leveldata

import (
	"os"
	"path/filepath"
	"testing"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="tiles.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="solid" width="3" height="2">
  <data encoding="csv">
0,0,0,
1,1,0
</data>
 </layer>
</map>`

func writeTMX(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "level.tmx"), []byte(testTMX), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, "level.tmx"
}

func TestLoadGrid(t *testing.T) {
	dir, name := writeTMX(t)

	grid, err := LoadGrid(os.DirFS(dir), name, "solid")
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}

	if grid.Cols != 3 || grid.Rows != 2 {
		t.Errorf("Expected 3x2 grid, got %dx%d", grid.Cols, grid.Rows)
	}
	if grid.CellW != 16 || grid.CellH != 16 {
		t.Errorf("Expected 16x16 cells, got %fx%f", grid.CellW, grid.CellH)
	}

	wantSolid := []bool{false, false, false, true, true, false}
	for i, want := range wantSolid {
		if grid.Solid[i] != want {
			t.Errorf("Cell %d: expected solid=%v", i, want)
		}
	}

	if grid.At(0, 0) || !grid.At(0, 1) {
		t.Error("At() disagrees with the raw grid")
	}
	if grid.At(-1, 0) || grid.At(5, 5) {
		t.Error("At() out of range should be empty")
	}
}

func TestLoadGridMissingLayer(t *testing.T) {
	dir, name := writeTMX(t)

	if _, err := LoadGrid(os.DirFS(dir), name, "nope"); err == nil {
		t.Error("Missing layer name should return an error")
	}
}

func TestLoadGridMissingFile(t *testing.T) {
	if _, err := LoadGrid(os.DirFS(t.TempDir()), "nope.tmx", "solid"); err == nil {
		t.Error("Missing file should return an error")
	}
}
