// Package leveldata loads TMX tilemaps into the boolean solidity grids
// the tilemap collider consumes.
package leveldata

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Grid is the solidity grid of one tile layer.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float32
	Solid        []bool
}

func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return false
	}
	return g.Solid[y*g.Cols+x]
}

// LoadGrid parses a TMX file and returns the solidity grid of the named
// tile layer: any non-empty tile counts as solid. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadGrid(fsys fs.FS, tmxPath, layerName string) (*Grid, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != layerName {
			continue
		}
		grid := &Grid{
			Cols:  levelMap.Width,
			Rows:  levelMap.Height,
			CellW: float32(levelMap.TileWidth),
			CellH: float32(levelMap.TileHeight),
			Solid: make([]bool, levelMap.Width*levelMap.Height),
		}
		for i, tile := range layer.Tiles {
			if i >= len(grid.Solid) {
				break
			}
			grid.Solid[i] = !tile.IsNil()
		}
		return grid, nil
	}
	return nil, fmt.Errorf("load TMX %s: layer %q not found", tmxPath, layerName)
}
