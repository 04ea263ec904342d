package components

import (
	"sim2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Collider", func() engine.Serializable {
		return &Collider{}
	})
}

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
	ShapePolygon
	ShapeTilemap
	ShapeLine
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCapsule:
		return "capsule"
	case ShapePolygon:
		return "polygon"
	case ShapeTilemap:
		return "tilemap"
	case ShapeLine:
		return "line"
	default:
		return "box"
	}
}

func ShapeKindFromString(s string) ShapeKind {
	switch s {
	case "capsule":
		return ShapeCapsule
	case "polygon":
		return ShapePolygon
	case "tilemap":
		return ShapeTilemap
	case "line":
		return ShapeLine
	default:
		return ShapeBox
	}
}

// TileRect is a merged run of solid cells in tilemap-local cell space.
type TileRect struct {
	X, Y, W, H int
}

// Collider is the single collision shape component. Shape selects which
// fields are meaningful; the physics world dispatches on it.
type Collider struct {
	engine.BaseComponent
	Shape     ShapeKind
	IsTrigger bool
	Offset    rl.Vector2 // local offset from the transform position

	// Box
	Size rl.Vector2

	// Capsule
	Radius     float32
	Length     float32 // distance between the two circle centers
	Horizontal bool    // capsule axis along local X instead of local Y

	// Polygon and line chain share Points (local space). Polygons are
	// treated as closed and must be convex; line chains are open.
	Points    []rl.Vector2
	Thickness float32 // line chain only; 0 means use the configured default

	// Tilemap
	Cols, Rows   int
	CellW, CellH float32
	Solid        []bool
	// Contours selects contour-triangle collision geometry instead of
	// merged rectangles.
	Contours bool

	dirty bool
	rects []TileRect
	tris  [][3]rl.Vector2
}

func NewBoxCollider(width, height float32) *Collider {
	return &Collider{Shape: ShapeBox, Size: rl.Vector2{X: width, Y: height}}
}

func NewCapsuleCollider(radius, length float32, horizontal bool) *Collider {
	return &Collider{Shape: ShapeCapsule, Radius: radius, Length: length, Horizontal: horizontal}
}

func NewPolygonCollider(points []rl.Vector2) *Collider {
	return &Collider{Shape: ShapePolygon, Points: points}
}

func NewLineCollider(points []rl.Vector2, thickness float32) *Collider {
	return &Collider{Shape: ShapeLine, Points: points, Thickness: thickness}
}

func NewTilemapCollider(cols, rows int, cellW, cellH float32) *Collider {
	return &Collider{
		Shape: ShapeTilemap,
		Cols:  cols, Rows: rows,
		CellW: cellW, CellH: cellH,
		Solid: make([]bool, cols*rows),
		dirty: true,
	}
}

func (c *Collider) Cell(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows {
		return false
	}
	return c.Solid[y*c.Cols+x]
}

// SetCell toggles a tilemap cell and invalidates the cached geometry.
func (c *Collider) SetCell(x, y int, solid bool) {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows {
		return
	}
	idx := y*c.Cols + x
	if c.Solid[idx] == solid {
		return
	}
	c.Solid[idx] = solid
	c.dirty = true
}

// SetCells replaces the whole grid. len(solid) must be Cols*Rows.
func (c *Collider) SetCells(solid []bool) {
	c.Solid = solid
	c.dirty = true
}

// Rects returns the merged solid rectangles, rebuilding the cache if the
// grid changed since the last call.
func (c *Collider) Rects() []TileRect {
	if c.dirty {
		c.rebuild()
	}
	return c.rects
}

// Triangles returns the contour triangulation of the solid region in
// tilemap-local space, rebuilding the cache if the grid changed.
func (c *Collider) Triangles() [][3]rl.Vector2 {
	if c.dirty {
		c.rebuild()
	}
	return c.tris
}

func (c *Collider) rebuild() {
	c.rects = mergeRects(c.Solid, c.Cols, c.Rows)
	c.tris = triangulateGrid(c.Solid, c.Cols, c.Rows, c.CellW, c.CellH)
	c.dirty = false
}

// TypeName implements engine.Serializable
func (c *Collider) TypeName() string {
	return "Collider"
}

// Serialize implements engine.Serializable
func (c *Collider) Serialize() map[string]any {
	data := map[string]any{
		"type":      "Collider",
		"shape":     c.Shape.String(),
		"isTrigger": c.IsTrigger,
		"offset":    []float32{c.Offset.X, c.Offset.Y},
	}
	switch c.Shape {
	case ShapeBox:
		data["size"] = []float32{c.Size.X, c.Size.Y}
	case ShapeCapsule:
		data["radius"] = c.Radius
		data["length"] = c.Length
		data["horizontal"] = c.Horizontal
	case ShapePolygon, ShapeLine:
		pts := make([][]float32, len(c.Points))
		for i, p := range c.Points {
			pts[i] = []float32{p.X, p.Y}
		}
		data["points"] = pts
		if c.Shape == ShapeLine {
			data["thickness"] = c.Thickness
		}
	case ShapeTilemap:
		data["cols"] = c.Cols
		data["rows"] = c.Rows
		data["cellW"] = c.CellW
		data["cellH"] = c.CellH
		data["contours"] = c.Contours
		solid := make([]int, len(c.Solid))
		for i, s := range c.Solid {
			if s {
				solid[i] = 1
			}
		}
		data["solid"] = solid
	}
	return data
}

// Deserialize implements engine.Serializable
func (c *Collider) Deserialize(data map[string]any) {
	if s, ok := data["shape"].(string); ok {
		c.Shape = ShapeKindFromString(s)
	}
	if t, ok := data["isTrigger"].(bool); ok {
		c.IsTrigger = t
	}
	c.Offset = vec2FromAny(data["offset"])
	switch c.Shape {
	case ShapeBox:
		c.Size = vec2FromAny(data["size"])
	case ShapeCapsule:
		c.Radius = floatFromAny(data["radius"])
		c.Length = floatFromAny(data["length"])
		if h, ok := data["horizontal"].(bool); ok {
			c.Horizontal = h
		}
	case ShapePolygon, ShapeLine:
		if pts, ok := data["points"].([]any); ok {
			c.Points = make([]rl.Vector2, len(pts))
			for i, p := range pts {
				c.Points[i] = vec2FromAny(p)
			}
		}
		c.Thickness = floatFromAny(data["thickness"])
	case ShapeTilemap:
		c.Cols = intFromAny(data["cols"])
		c.Rows = intFromAny(data["rows"])
		c.CellW = floatFromAny(data["cellW"])
		c.CellH = floatFromAny(data["cellH"])
		if b, ok := data["contours"].(bool); ok {
			c.Contours = b
		}
		c.Solid = make([]bool, c.Cols*c.Rows)
		if cells, ok := data["solid"].([]any); ok {
			for i, v := range cells {
				if i < len(c.Solid) {
					c.Solid[i] = floatFromAny(v) != 0
				}
			}
		}
		c.dirty = true
	}
}

func vec2FromAny(v any) rl.Vector2 {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return rl.Vector2{}
	}
	return rl.Vector2{X: floatFromAny(arr[0]), Y: floatFromAny(arr[1])}
}

func floatFromAny(v any) float32 {
	switch n := v.(type) {
	case float64:
		return float32(n)
	case float32:
		return n
	case int:
		return float32(n)
	}
	return 0
}

func intFromAny(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
