package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/engine"
)

// TransformPoint maps a shape-local point to world space. Order is
// flip, scale, rotate, translate; rotation is in degrees.
func TransformPoint(local rl.Vector2, pos rl.Vector2, rotDeg float32, scale rl.Vector2, flipX, flipY bool) rl.Vector2 {
	p := local
	if flipX {
		p.X = -p.X
	}
	if flipY {
		p.Y = -p.Y
	}
	p.X *= scale.X
	p.Y *= scale.Y
	p = rl.Vector2Rotate(p, rotDeg*rl.Deg2rad)
	return rl.Vector2Add(p, pos)
}

// WorldVertices returns the world-space vertex loop of a box or polygon
// collider. Other shapes return nil.
func WorldVertices(g *engine.GameObject, c *components.Collider) []rl.Vector2 {
	var local []rl.Vector2
	switch c.Shape {
	case components.ShapeBox:
		hw := c.Size.X / 2
		hh := c.Size.Y / 2
		local = []rl.Vector2{
			{X: -hw, Y: -hh},
			{X: hw, Y: -hh},
			{X: hw, Y: hh},
			{X: -hw, Y: hh},
		}
	case components.ShapePolygon:
		local = c.Points
	default:
		return nil
	}

	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()
	out := make([]rl.Vector2, len(local))
	for i, p := range local {
		out[i] = TransformPoint(rl.Vector2Add(p, c.Offset), pos, rot, scale, g.Transform.FlipX, g.Transform.FlipY)
	}
	return out
}

// CapsuleSegment returns the world-space core segment of a capsule
// collider and its scaled radius.
func CapsuleSegment(g *engine.GameObject, c *components.Collider) (a, b rl.Vector2, radius float32) {
	half := c.Length / 2
	var la, lb rl.Vector2
	if c.Horizontal {
		la = rl.Vector2{X: -half}
		lb = rl.Vector2{X: half}
	} else {
		la = rl.Vector2{Y: -half}
		lb = rl.Vector2{Y: half}
	}
	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()
	a = TransformPoint(rl.Vector2Add(la, c.Offset), pos, rot, scale, g.Transform.FlipX, g.Transform.FlipY)
	b = TransformPoint(rl.Vector2Add(lb, c.Offset), pos, rot, scale, g.Transform.FlipX, g.Transform.FlipY)

	sx := math32.Abs(scale.X)
	sy := math32.Abs(scale.Y)
	s := sx
	if sy > s {
		s = sy
	}
	return a, b, c.Radius * s
}

// Axes returns the unit outward edge normals of a vertex loop.
func Axes(verts []rl.Vector2) []rl.Vector2 {
	axes := make([]rl.Vector2, 0, len(verts))
	n := len(verts)
	for i := 0; i < n; i++ {
		edge := rl.Vector2Subtract(verts[(i+1)%n], verts[i])
		if rl.Vector2LengthSqr(edge) == 0 {
			continue
		}
		normal := rl.Vector2Normalize(rl.Vector2{X: -edge.Y, Y: edge.X})
		axes = append(axes, normal)
	}
	return axes
}

// Project returns the min and max extent of a vertex loop on an axis.
func Project(verts []rl.Vector2, axis rl.Vector2) (min, max float32) {
	min = rl.Vector2DotProduct(verts[0], axis)
	max = min
	for _, v := range verts[1:] {
		d := rl.Vector2DotProduct(v, axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// ProjectSegment projects a capsule core segment inflated by radius.
func ProjectSegment(a, b rl.Vector2, radius float32, axis rl.Vector2) (min, max float32) {
	da := rl.Vector2DotProduct(a, axis)
	db := rl.Vector2DotProduct(b, axis)
	if da > db {
		da, db = db, da
	}
	return da - radius, db + radius
}

// ClosestPointOnSegment returns the point on segment ab closest to p.
func ClosestPointOnSegment(p, a, b rl.Vector2) rl.Vector2 {
	ab := rl.Vector2Subtract(b, a)
	denom := rl.Vector2LengthSqr(ab)
	if denom == 0 {
		return a // degenerate segment
	}
	t := rl.Vector2DotProduct(rl.Vector2Subtract(p, a), ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return rl.Vector2Add(a, rl.Vector2Scale(ab, t))
}

// ClosestPointsOnSegments returns the closest pair of points between
// segments p1q1 and p2q2.
func ClosestPointsOnSegments(p1, q1, p2, q2 rl.Vector2) (c1, c2 rl.Vector2) {
	d1 := rl.Vector2Subtract(q1, p1)
	d2 := rl.Vector2Subtract(q2, p2)
	r := rl.Vector2Subtract(p1, p2)
	a := rl.Vector2LengthSqr(d1)
	e := rl.Vector2LengthSqr(d2)
	f := rl.Vector2DotProduct(d2, r)

	var s, t float32
	const eps = 1e-8

	switch {
	case a <= eps && e <= eps:
		return p1, p2
	case a <= eps:
		s = 0
		t = clamp01(f / e)
	default:
		c := rl.Vector2DotProduct(d1, r)
		if e <= eps {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := rl.Vector2DotProduct(d1, d2)
			denom := a*e - b*b
			if denom > eps {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	c1 = rl.Vector2Add(p1, rl.Vector2Scale(d1, s))
	c2 = rl.Vector2Add(p2, rl.Vector2Scale(d2, t))
	return c1, c2
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PointInPolygon reports whether p lies inside a convex vertex loop of
// either winding.
func PointInPolygon(p rl.Vector2, verts []rl.Vector2) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	sign := float32(0)
	for i := 0; i < n; i++ {
		edge := rl.Vector2Subtract(verts[(i+1)%n], verts[i])
		toP := rl.Vector2Subtract(p, verts[i])
		c := Cross2(edge, toP)
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
		} else if sign*c < 0 {
			return false
		}
	}
	return true
}

func polygonCenter(verts []rl.Vector2) rl.Vector2 {
	var sum rl.Vector2
	for _, v := range verts {
		sum = rl.Vector2Add(sum, v)
	}
	if len(verts) == 0 {
		return sum
	}
	return rl.Vector2Scale(sum, 1/float32(len(verts)))
}

// Cross2 is the z component of the 3D cross product of two 2D vectors.
func Cross2(a, b rl.Vector2) float32 {
	return a.X*b.Y - a.Y*b.X
}
