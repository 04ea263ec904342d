package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/engine"
)

type AABB struct {
	Min, Max rl.Vector2
}

func AABBFromCenter(center rl.Vector2, halfW, halfH float32) AABB {
	return AABB{
		Min: rl.Vector2{X: center.X - halfW, Y: center.Y - halfH},
		Max: rl.Vector2{X: center.X + halfW, Y: center.Y + halfH},
	}
}

func aabbFromPoints(pts []rl.Vector2) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	box := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box = box.extend(p)
	}
	return box
}

func (a AABB) extend(p rl.Vector2) AABB {
	if p.X < a.Min.X {
		a.Min.X = p.X
	}
	if p.Y < a.Min.Y {
		a.Min.Y = p.Y
	}
	if p.X > a.Max.X {
		a.Max.X = p.X
	}
	if p.Y > a.Max.Y {
		a.Max.Y = p.Y
	}
	return a
}

func (a AABB) inflate(r float32) AABB {
	a.Min.X -= r
	a.Min.Y -= r
	a.Max.X += r
	a.Max.Y += r
	return a
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

func (a AABB) Center() rl.Vector2 {
	return rl.Vector2{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2}
}

// ColliderAABB computes the world-space bounding box of any collider
// shape, used by the broad phase and the fluid coupling.
func ColliderAABB(g *engine.GameObject, c *components.Collider) AABB {
	switch c.Shape {
	case components.ShapeBox, components.ShapePolygon:
		return aabbFromPoints(WorldVertices(g, c))
	case components.ShapeCapsule:
		a, b, r := CapsuleSegment(g, c)
		return aabbFromPoints([]rl.Vector2{a, b}).inflate(r)
	case components.ShapeLine:
		pos := g.WorldPosition()
		rot := g.WorldRotation()
		scale := g.WorldScale()
		pts := make([]rl.Vector2, len(c.Points))
		for i, p := range c.Points {
			pts[i] = TransformPoint(rl.Vector2Add(p, c.Offset), pos, rot, scale, g.Transform.FlipX, g.Transform.FlipY)
		}
		box := aabbFromPoints(pts)
		t := c.Thickness
		if t <= 0 {
			t = 2
		}
		return box.inflate(t / 2)
	case components.ShapeTilemap:
		pos := g.WorldPosition()
		scale := g.WorldScale()
		origin := rl.Vector2Add(pos, c.Offset)
		w := float32(c.Cols) * c.CellW * scale.X
		h := float32(c.Rows) * c.CellH * scale.Y
		return aabbFromPoints([]rl.Vector2{origin, {X: origin.X + w, Y: origin.Y + h}})
	}
	return AABB{}
}
