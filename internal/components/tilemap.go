package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// mergeRects greedily merges solid cells into maximal rectangles: grow each
// run rightward first, then extend the run downward while every row below
// matches. Cells are consumed so rects never overlap.
func mergeRects(solid []bool, cols, rows int) []TileRect {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	used := make([]bool, len(solid))
	var rects []TileRect

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			if !solid[idx] || used[idx] {
				continue
			}

			w := 1
			for x+w < cols && solid[y*cols+x+w] && !used[y*cols+x+w] {
				w++
			}

			h := 1
		grow:
			for y+h < rows {
				for i := 0; i < w; i++ {
					j := (y+h)*cols + x + i
					if !solid[j] || used[j] {
						break grow
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					used[(y+dy)*cols+x+dx] = true
				}
			}
			rects = append(rects, TileRect{X: x, Y: y, W: w, H: h})
		}
	}
	return rects
}

type gridPoint struct {
	x, y int
}

// triangulateGrid extracts the boundary contours of the solid region,
// drops hole loops, and ear-clips each outer loop into triangles in
// tilemap-local space.
func triangulateGrid(solid []bool, cols, rows int, cellW, cellH float32) [][3]rl.Vector2 {
	loops := traceContours(solid, cols, rows)
	var tris [][3]rl.Vector2
	for _, loop := range loops {
		if signedArea(loop) <= 0 {
			continue // hole
		}
		pts := make([]rl.Vector2, len(loop))
		for i, p := range loop {
			pts[i] = rl.Vector2{X: float32(p.x) * cellW, Y: float32(p.y) * cellH}
		}
		tris = append(tris, earClip(pts)...)
	}
	return tris
}

// traceContours collects the directed boundary edges of the solid region
// (solid kept on the right of travel) and chains them into closed loops.
// Collinear points are removed so each loop holds corners only.
func traceContours(solid []bool, cols, rows int) [][]gridPoint {
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return false
		}
		return solid[y*cols+x]
	}

	type edge struct {
		from, to gridPoint
	}
	outgoing := map[gridPoint][]edge{}
	add := func(fx, fy, tx, ty int) {
		f := gridPoint{fx, fy}
		outgoing[f] = append(outgoing[f], edge{f, gridPoint{tx, ty}})
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !at(x, y) {
				continue
			}
			if !at(x, y-1) {
				add(x, y, x+1, y) // top
			}
			if !at(x+1, y) {
				add(x+1, y, x+1, y+1) // right
			}
			if !at(x, y+1) {
				add(x+1, y+1, x, y+1) // bottom
			}
			if !at(x-1, y) {
				add(x, y+1, x, y) // left
			}
		}
	}

	takeNext := func(from gridPoint, inDir gridPoint) (edge, bool) {
		cands := outgoing[from]
		if len(cands) == 0 {
			return edge{}, false
		}
		// At corners where two blobs touch diagonally, several edges
		// leave the same point. Take the sharpest turn toward the
		// solid side so each blob keeps its own contour.
		best := -1
		var bestCross int
		for i, e := range cands {
			out := gridPoint{e.to.x - e.from.x, e.to.y - e.from.y}
			if out.x == -inDir.x && out.y == -inDir.y {
				continue // never double back
			}
			cross := inDir.x*out.y - inDir.y*out.x
			if best == -1 || cross > bestCross {
				best = i
				bestCross = cross
			}
		}
		if best == -1 {
			best = 0
		}
		e := cands[best]
		outgoing[from] = append(cands[:best], cands[best+1:]...)
		return e, true
	}

	var loops [][]gridPoint
	for {
		var start edge
		found := false
		for _, es := range outgoing {
			if len(es) > 0 {
				start = es[0]
				found = true
				break
			}
		}
		if !found {
			break
		}

		var loop []gridPoint
		cur := start
		outgoing[start.from] = outgoing[start.from][1:]
		for {
			loop = append(loop, cur.from)
			inDir := gridPoint{cur.to.x - cur.from.x, cur.to.y - cur.from.y}
			if cur.to == start.from {
				break
			}
			next, ok := takeNext(cur.to, inDir)
			if !ok {
				break // open chain, malformed grid; drop it
			}
			cur = next
		}
		if len(loop) >= 3 {
			loops = append(loops, dropCollinear(loop))
		}
	}
	return loops
}

func dropCollinear(loop []gridPoint) []gridPoint {
	out := loop[:0]
	n := len(loop)
	for i := 0; i < n; i++ {
		a := loop[(i+n-1)%n]
		b := loop[i]
		c := loop[(i+1)%n]
		cross := (b.x-a.x)*(c.y-b.y) - (b.y-a.y)*(c.x-b.x)
		if cross != 0 {
			out = append(out, b)
		}
	}
	return out
}

func signedArea(loop []gridPoint) int {
	sum := 0
	n := len(loop)
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		sum += a.x*b.y - b.x*a.y
	}
	return sum
}

// earClip triangulates a simple polygon whose winding gives positive
// signed area in screen coordinates.
func earClip(pts []rl.Vector2) [][3]rl.Vector2 {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]rl.Vector2
	guard := 0
	for len(idx) > 3 && guard < n*n {
		guard++
		clipped := false
		for i := 0; i < len(idx); i++ {
			ia := idx[(i+len(idx)-1)%len(idx)]
			ib := idx[i]
			ic := idx[(i+1)%len(idx)]
			a, b, c := pts[ia], pts[ib], pts[ic]

			if cross2(sub(b, a), sub(c, b)) <= 0 {
				continue // reflex vertex
			}
			ear := true
			for _, j := range idx {
				if j == ia || j == ib || j == ic {
					continue
				}
				if pointInTriangle(pts[j], a, b, c) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			tris = append(tris, [3]rl.Vector2{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break // degenerate loop, bail with what we have
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]rl.Vector2{pts[idx[0]], pts[idx[1]], pts[idx[2]]})
	}
	return tris
}

func sub(a, b rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

func cross2(a, b rl.Vector2) float32 {
	return a.X*b.Y - a.Y*b.X
}

func pointInTriangle(p, a, b, c rl.Vector2) bool {
	d1 := cross2(sub(b, a), sub(p, a))
	d2 := cross2(sub(c, b), sub(p, b))
	d3 := cross2(sub(a, c), sub(p, c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
