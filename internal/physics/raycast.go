package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/engine"
)

// Raycast finds the closest hit in front of origin within maxDistance,
// optionally filtered by tag. Box, capsule and polygon colliders are
// raycast targets; tilemap and line-chain geometry is not. The capsule
// is treated as a circle at its effective center, which is inexact for
// elongated capsules but kept for behavioral stability.
func (w *PhysicsWorld) Raycast(origin, direction rl.Vector2, maxDistance float32, tagFilter string) (engine.RaycastResult, bool) {
	if rl.Vector2LengthSqr(direction) == 0 {
		return engine.RaycastResult{}, false
	}
	dir := rl.Vector2Normalize(direction)

	var best engine.RaycastResult
	found := false
	for _, g := range w.scene.ActiveObjects() {
		if tagFilter != "" && !g.HasTag(tagFilter) {
			continue
		}
		col := engine.GetComponent[*components.Collider](g)
		if col == nil {
			continue
		}

		var t float32
		var normal rl.Vector2
		hit := false
		switch col.Shape {
		case components.ShapeBox:
			t, normal, hit = raycastBox(origin, dir, g, col)
		case components.ShapePolygon:
			t, normal, hit = raycastPolygon(origin, dir, WorldVertices(g, col))
		case components.ShapeCapsule:
			a, b, r := CapsuleSegment(g, col)
			center := rl.Vector2Lerp(a, b, 0.5)
			t, normal, hit = raycastCircle(origin, dir, center, r)
		}
		if !hit || t < 0 || t > maxDistance {
			continue
		}
		if !found || t < best.Distance {
			best = engine.RaycastResult{
				GameObject: g,
				Point:      rl.Vector2Add(origin, rl.Vector2Scale(dir, t)),
				Normal:     normal,
				Distance:   t,
			}
			found = true
		}
	}
	return best, found
}

// raycastBox runs a slab test in the box's local unrotated frame.
func raycastBox(origin, dir rl.Vector2, g *engine.GameObject, col *components.Collider) (float32, rl.Vector2, bool) {
	verts := WorldVertices(g, col)
	center := polygonCenter(verts)
	rot := g.WorldRotation() * rl.Deg2rad
	scale := g.WorldScale()
	hw := col.Size.X / 2 * math32.Abs(scale.X)
	hh := col.Size.Y / 2 * math32.Abs(scale.Y)
	if hw == 0 || hh == 0 {
		return 0, rl.Vector2{}, false
	}

	localOrigin := rl.Vector2Rotate(rl.Vector2Subtract(origin, center), -rot)
	localDir := rl.Vector2Rotate(dir, -rot)

	tMin := float32(-math32.MaxFloat32)
	tMax := float32(math32.MaxFloat32)
	var nMin rl.Vector2

	for axis := 0; axis < 2; axis++ {
		var o, d, half float32
		var axisNormal rl.Vector2
		if axis == 0 {
			o, d, half = localOrigin.X, localDir.X, hw
			axisNormal = rl.Vector2{X: 1}
		} else {
			o, d, half = localOrigin.Y, localDir.Y, hh
			axisNormal = rl.Vector2{Y: 1}
		}
		if math32.Abs(d) < 1e-8 {
			if o < -half || o > half {
				return 0, rl.Vector2{}, false
			}
			continue
		}
		t1 := (-half - o) / d
		t2 := (half - o) / d
		n := rl.Vector2Negate(axisNormal)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = axisNormal
		}
		if t1 > tMin {
			tMin = t1
			nMin = n
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, rl.Vector2{}, false
		}
	}
	if tMin < 0 {
		return 0, rl.Vector2{}, false
	}
	return tMin, rl.Vector2Rotate(nMin, rot), true
}

// raycastPolygon intersects the ray with each edge and keeps the
// nearest crossing, with the edge normal flipped to face the ray.
func raycastPolygon(origin, dir rl.Vector2, verts []rl.Vector2) (float32, rl.Vector2, bool) {
	n := len(verts)
	if n < 3 {
		return 0, rl.Vector2{}, false
	}
	bestT := float32(math32.MaxFloat32)
	var bestNormal rl.Vector2
	found := false

	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		seg := rl.Vector2Subtract(b, a)
		denom := Cross2(dir, seg)
		if math32.Abs(denom) < 1e-8 {
			continue
		}
		toA := rl.Vector2Subtract(a, origin)
		t := Cross2(toA, seg) / denom
		u := Cross2(toA, dir) / denom
		if t < 0 || u < 0 || u > 1 {
			continue
		}
		if t < bestT {
			bestT = t
			normal := rl.Vector2Normalize(rl.Vector2{X: -seg.Y, Y: seg.X})
			if rl.Vector2DotProduct(normal, dir) > 0 {
				normal = rl.Vector2Negate(normal)
			}
			bestNormal = normal
			found = true
		}
	}
	return bestT, bestNormal, found
}

func raycastCircle(origin, dir, center rl.Vector2, radius float32) (float32, rl.Vector2, bool) {
	toCenter := rl.Vector2Subtract(center, origin)
	proj := rl.Vector2DotProduct(toCenter, dir)
	d2 := rl.Vector2LengthSqr(toCenter) - proj*proj
	r2 := radius * radius
	if d2 > r2 {
		return 0, rl.Vector2{}, false
	}
	offset := math32.Sqrt(r2 - d2)
	t := proj - offset
	if t < 0 {
		return 0, rl.Vector2{}, false
	}
	hit := rl.Vector2Add(origin, rl.Vector2Scale(dir, t))
	normal := rl.Vector2Scale(rl.Vector2Subtract(hit, center), 1/radius)
	return t, normal, true
}
