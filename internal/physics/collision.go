package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/engine"
)

// MTV is the minimum translation vector of an overlapping pair. Normal
// is a unit vector pointing from B toward A; moving A by
// Normal*Magnitude separates the shapes.
type MTV struct {
	Normal    rl.Vector2
	Magnitude float32
	Contact   rl.Vector2
}

func (m *MTV) negated() *MTV {
	if m == nil {
		return nil
	}
	return &MTV{Normal: rl.Vector2Negate(m.Normal), Magnitude: m.Magnitude, Contact: m.Contact}
}

// fallbackAxis keeps degenerate tests (coincident centers, zero-length
// segments) from dividing by zero.
var fallbackAxis = rl.Vector2{X: 0, Y: -1}

// TestCollision dispatches on the shape pair and returns the MTV with
// the normal pointing from B toward A, or nil when the shapes are
// separated. Tilemap and line shapes decompose through a world-owned
// scratch body, so this method is not re-entrant.
func (w *PhysicsWorld) TestCollision(ga *engine.GameObject, ca *components.Collider, gb *engine.GameObject, cb *components.Collider) *MTV {
	sa, sb := ca.Shape, cb.Shape

	// Composite shapes first. Composite-vs-composite pairs are not
	// supported; both are static world geometry in practice.
	if sa == components.ShapeTilemap || sa == components.ShapeLine {
		if sb == components.ShapeTilemap || sb == components.ShapeLine {
			return nil
		}
		return w.collideComposite(ga, ca, gb, cb).negated()
	}
	if sb == components.ShapeTilemap || sb == components.ShapeLine {
		return w.collideComposite(gb, cb, ga, ca)
	}

	switch {
	case sa != components.ShapeCapsule && sb != components.ShapeCapsule:
		return collidePolyPoly(WorldVertices(ga, ca), WorldVertices(gb, cb))
	case sa == components.ShapeCapsule && sb == components.ShapeCapsule:
		a1, b1, r1 := CapsuleSegment(ga, ca)
		a2, b2, r2 := CapsuleSegment(gb, cb)
		return collideCapsuleCapsule(a1, b1, r1, a2, b2, r2)
	case sa == components.ShapeBox:
		return collideBoxCapsule(ga, ca, gb, cb)
	case sb == components.ShapeBox:
		return collideBoxCapsule(gb, cb, ga, ca).negated()
	case sa == components.ShapePolygon:
		a, b, r := CapsuleSegment(gb, cb)
		return collidePolygonCapsule(WorldVertices(ga, ca), a, b, r)
	default:
		a, b, r := CapsuleSegment(ga, ca)
		return collidePolygonCapsule(WorldVertices(gb, cb), a, b, r).negated()
	}
}

// collidePolyPoly runs SAT over the union of both shapes' edge normals.
// Boxes come through here as 4-vertex polygons.
func collidePolyPoly(vertsA, vertsB []rl.Vector2) *MTV {
	if len(vertsA) < 3 || len(vertsB) < 3 {
		return nil
	}

	best := float32(math32.MaxFloat32)
	var bestAxis rl.Vector2

	for _, axis := range append(Axes(vertsA), Axes(vertsB)...) {
		minA, maxA := Project(vertsA, axis)
		minB, maxB := Project(vertsB, axis)
		overlap := math32.Min(maxA, maxB) - math32.Max(minA, minB)
		if overlap <= 0 {
			return nil
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}

	centerA := polygonCenter(vertsA)
	centerB := polygonCenter(vertsB)
	if rl.Vector2DotProduct(bestAxis, rl.Vector2Subtract(centerA, centerB)) < 0 {
		bestAxis = rl.Vector2Negate(bestAxis)
	}

	return &MTV{
		Normal:    bestAxis,
		Magnitude: best,
		Contact:   polyContact(vertsA, vertsB, bestAxis),
	}
}

// polyContact averages the vertices of either polygon lying inside the
// other; when no vertex manifold exists it falls back to A's deepest
// vertex along the separation axis.
func polyContact(vertsA, vertsB []rl.Vector2, normal rl.Vector2) rl.Vector2 {
	var sum rl.Vector2
	count := 0
	for _, v := range vertsA {
		if PointInPolygon(v, vertsB) {
			sum = rl.Vector2Add(sum, v)
			count++
		}
	}
	for _, v := range vertsB {
		if PointInPolygon(v, vertsA) {
			sum = rl.Vector2Add(sum, v)
			count++
		}
	}
	if count > 0 {
		return rl.Vector2Scale(sum, 1/float32(count))
	}

	deepest := vertsA[0]
	minDot := rl.Vector2DotProduct(deepest, normal)
	for _, v := range vertsA[1:] {
		if d := rl.Vector2DotProduct(v, normal); d < minDot {
			minDot = d
			deepest = v
		}
	}
	return deepest
}

func collideCapsuleCapsule(a1, b1 rl.Vector2, r1 float32, a2, b2 rl.Vector2, r2 float32) *MTV {
	c1, c2 := ClosestPointsOnSegments(a1, b1, a2, b2)
	delta := rl.Vector2Subtract(c1, c2)
	dist := rl.Vector2Length(delta)
	if dist >= r1+r2 {
		return nil
	}
	normal := fallbackAxis
	if dist > 0 {
		normal = rl.Vector2Scale(delta, 1/dist)
	}
	return &MTV{
		Normal:    normal,
		Magnitude: r1 + r2 - dist,
		Contact:   rl.Vector2Lerp(c1, c2, 0.5),
	}
}

// collideBoxCapsule clamps the capsule's nearest segment point into the
// box's local unrotated frame. Normal points from the capsule (B)
// toward the box (A).
func collideBoxCapsule(gBox *engine.GameObject, cBox *components.Collider, gCaps *engine.GameObject, cCaps *components.Collider) *MTV {
	segA, segB, r := CapsuleSegment(gCaps, cCaps)

	verts := WorldVertices(gBox, cBox)
	center := polygonCenter(verts)
	rot := gBox.WorldRotation() * rl.Deg2rad
	scale := gBox.WorldScale()
	hw := cBox.Size.X / 2 * math32.Abs(scale.X)
	hh := cBox.Size.Y / 2 * math32.Abs(scale.Y)
	if hw == 0 || hh == 0 {
		return nil
	}

	segPt := ClosestPointOnSegment(center, segA, segB)
	local := rl.Vector2Rotate(rl.Vector2Subtract(segPt, center), -rot)

	inside := local.X > -hw && local.X < hw && local.Y > -hh && local.Y < hh
	if inside {
		// Segment point inside the box: push out through the
		// nearest face.
		dxLeft := local.X + hw
		dxRight := hw - local.X
		dyUp := local.Y + hh
		dyDown := hh - local.Y

		depth := dxLeft
		outLocal := rl.Vector2{X: -1}
		if dxRight < depth {
			depth = dxRight
			outLocal = rl.Vector2{X: 1}
		}
		if dyUp < depth {
			depth = dyUp
			outLocal = rl.Vector2{X: 0, Y: -1}
		}
		if dyDown < depth {
			depth = dyDown
			outLocal = rl.Vector2{X: 0, Y: 1}
		}
		out := rl.Vector2Rotate(outLocal, rot)
		return &MTV{
			Normal:    rl.Vector2Negate(out),
			Magnitude: depth + r,
			Contact:   segPt,
		}
	}

	clamped := rl.Vector2{
		X: math32.Min(math32.Max(local.X, -hw), hw),
		Y: math32.Min(math32.Max(local.Y, -hh), hh),
	}
	boxPt := rl.Vector2Add(center, rl.Vector2Rotate(clamped, rot))
	delta := rl.Vector2Subtract(boxPt, segPt)
	dist := rl.Vector2Length(delta)
	if dist >= r {
		return nil
	}
	normal := fallbackAxis
	if dist > 0 {
		normal = rl.Vector2Scale(delta, 1/dist)
	}
	return &MTV{Normal: normal, Magnitude: r - dist, Contact: boxPt}
}

// collidePolygonCapsule reduces the capsule to a circle at the segment
// point nearest the polygon centroid, then runs circle SAT over the
// polygon edge normals plus the center-to-closest-vertex axis. Normal
// points from the capsule (B) toward the polygon (A).
func collidePolygonCapsule(verts []rl.Vector2, segA, segB rl.Vector2, r float32) *MTV {
	if len(verts) < 3 {
		return nil
	}
	centroid := polygonCenter(verts)
	circle := ClosestPointOnSegment(centroid, segA, segB)

	axes := Axes(verts)
	closest := verts[0]
	bestD := rl.Vector2LengthSqr(rl.Vector2Subtract(verts[0], circle))
	for _, v := range verts[1:] {
		if d := rl.Vector2LengthSqr(rl.Vector2Subtract(v, circle)); d < bestD {
			bestD = d
			closest = v
		}
	}
	if toVert := rl.Vector2Subtract(closest, circle); rl.Vector2LengthSqr(toVert) > 0 {
		axes = append(axes, rl.Vector2Normalize(toVert))
	}

	best := float32(math32.MaxFloat32)
	var bestAxis rl.Vector2
	for _, axis := range axes {
		minP, maxP := Project(verts, axis)
		minC, maxC := ProjectSegment(circle, circle, r, axis)
		overlap := math32.Min(maxP, maxC) - math32.Max(minP, minC)
		if overlap <= 0 {
			return nil
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}

	if rl.Vector2DotProduct(bestAxis, rl.Vector2Subtract(centroid, circle)) < 0 {
		bestAxis = rl.Vector2Negate(bestAxis)
	}
	return &MTV{
		Normal:    bestAxis,
		Magnitude: best,
		Contact:   rl.Vector2Add(circle, rl.Vector2Scale(bestAxis, r-best/2)),
	}
}

// collideComposite tests every sub-shape of a tilemap or line-chain
// collider against the other body and keeps the deepest penetration.
// The returned MTV points from the sub-shape side toward the other
// body, i.e. composite as B.
func (w *PhysicsWorld) collideComposite(gComp *engine.GameObject, cComp *components.Collider, gOther *engine.GameObject, cOther *components.Collider) *MTV {
	var deepest *MTV
	keep := func(m *MTV) {
		if m != nil && (deepest == nil || m.Magnitude > deepest.Magnitude) {
			deepest = m
		}
	}

	switch cComp.Shape {
	case components.ShapeLine:
		thickness := cComp.Thickness
		if thickness <= 0 {
			thickness = w.cfg.LineThickness
		}
		pos := gComp.WorldPosition()
		rot := gComp.WorldRotation()
		scale := gComp.WorldScale()
		for i := 0; i+1 < len(cComp.Points); i++ {
			a := TransformPoint(rl.Vector2Add(cComp.Points[i], cComp.Offset), pos, rot, scale, gComp.Transform.FlipX, gComp.Transform.FlipY)
			b := TransformPoint(rl.Vector2Add(cComp.Points[i+1], cComp.Offset), pos, rot, scale, gComp.Transform.FlipX, gComp.Transform.FlipY)
			seg := rl.Vector2Subtract(b, a)
			segLen := rl.Vector2Length(seg)
			if segLen == 0 {
				continue
			}
			mid := rl.Vector2Lerp(a, b, 0.5)
			angle := math32.Atan2(seg.Y, seg.X) * rl.Rad2deg
			w.setScratchBox(mid, angle, segLen, thickness)
			keep(w.TestCollision(gOther, cOther, w.scratch, w.scratchCol))
		}

	case components.ShapeTilemap:
		pos := rl.Vector2Add(gComp.WorldPosition(), cComp.Offset)
		scale := gComp.WorldScale()
		if cComp.Contours {
			for _, tri := range cComp.Triangles() {
				pts := make([]rl.Vector2, 3)
				for i, p := range tri {
					pts[i] = rl.Vector2{X: pos.X + p.X*scale.X, Y: pos.Y + p.Y*scale.Y}
				}
				w.setScratchPolygon(pts)
				keep(w.TestCollision(gOther, cOther, w.scratch, w.scratchCol))
			}
		} else {
			cw := cComp.CellW * scale.X
			ch := cComp.CellH * scale.Y
			for _, r := range cComp.Rects() {
				cx := pos.X + (float32(r.X)+float32(r.W)/2)*cw
				cy := pos.Y + (float32(r.Y)+float32(r.H)/2)*ch
				w.setScratchBox(rl.Vector2{X: cx, Y: cy}, 0, float32(r.W)*cw, float32(r.H)*ch)
				keep(w.TestCollision(gOther, cOther, w.scratch, w.scratchCol))
			}
		}
	}
	return deepest
}

func (w *PhysicsWorld) setScratchBox(center rl.Vector2, rotDeg, width, height float32) {
	w.scratch.Transform.Position = center
	w.scratch.Transform.Rotation = rotDeg
	w.scratch.Transform.Scale = rl.Vector2{X: 1, Y: 1}
	w.scratchCol.Shape = components.ShapeBox
	w.scratchCol.Size = rl.Vector2{X: width, Y: height}
	w.scratchCol.Offset = rl.Vector2{}
	w.scratchCol.Points = nil
}

func (w *PhysicsWorld) setScratchPolygon(worldPts []rl.Vector2) {
	w.scratch.Transform.Position = rl.Vector2{}
	w.scratch.Transform.Rotation = 0
	w.scratch.Transform.Scale = rl.Vector2{X: 1, Y: 1}
	w.scratchCol.Shape = components.ShapePolygon
	w.scratchCol.Points = worldPts
	w.scratchCol.Offset = rl.Vector2{}
}
