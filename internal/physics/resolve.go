package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
)

// boundingSize returns the collider's local bounding extents, used for
// the box-approximated moment of inertia.
func boundingSize(c *components.Collider) (width, height float32) {
	switch c.Shape {
	case components.ShapeBox:
		return c.Size.X, c.Size.Y
	case components.ShapeCapsule:
		if c.Horizontal {
			return c.Length + 2*c.Radius, 2 * c.Radius
		}
		return 2 * c.Radius, c.Length + 2*c.Radius
	case components.ShapePolygon, components.ShapeLine:
		if len(c.Points) == 0 {
			return 1, 1
		}
		minX, maxX := c.Points[0].X, c.Points[0].X
		minY, maxY := c.Points[0].Y, c.Points[0].Y
		for _, p := range c.Points[1:] {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		return maxX - minX, maxY - minY
	case components.ShapeTilemap:
		return float32(c.Cols) * c.CellW, float32(c.Rows) * c.CellH
	}
	return 1, 1
}

func (b *bodyRef) isDynamic() bool {
	return b.RB != nil && b.RB.Kind == components.Dynamic
}

func (b *bodyRef) invMass() float32 {
	if !b.isDynamic() {
		return 0
	}
	return 1 / b.RB.EffectiveMass()
}

// invInertia approximates the body as a solid box over the collider's
// bounding size: I = m(w^2 + h^2)/12.
func (b *bodyRef) invInertia() float32 {
	if !b.isDynamic() || b.RB.FreezeRotation {
		return 0
	}
	w, h := boundingSize(b.Col)
	i := b.RB.EffectiveMass() * (w*w + h*h) / 12
	if i <= 0 {
		return 0
	}
	return 1 / i
}

// velocityAt returns the body's velocity at a world point including the
// angular contribution.
func (b *bodyRef) velocityAt(point rl.Vector2) rl.Vector2 {
	if b.RB == nil {
		return rl.Vector2{}
	}
	v := b.RB.Velocity
	omega := b.RB.AngularVelocity * rl.Deg2rad
	r := rl.Vector2Subtract(point, b.G.WorldPosition())
	return rl.Vector2Add(v, rl.Vector2{X: -omega * r.Y, Y: omega * r.X})
}

// resolveCollision separates an overlapping non-trigger pair and applies
// a restitution impulse at the contact point. The MTV normal points
// from b toward a.
func (w *PhysicsWorld) resolveCollision(a, b *bodyRef, mtv *MTV) {
	dynA := a.isDynamic()
	dynB := b.isDynamic()
	if !dynA && !dynB {
		return
	}

	// Leave a small overlap so resting pairs keep reporting contact
	// instead of flickering between enter and exit.
	correction := mtv.Magnitude - w.cfg.PenetrationSlop
	if correction > 0 {
		move := rl.Vector2Scale(mtv.Normal, correction)
		switch {
		case dynA && dynB:
			half := rl.Vector2Scale(move, 0.5)
			a.G.Transform.Position = rl.Vector2Add(a.G.Transform.Position, half)
			b.G.Transform.Position = rl.Vector2Subtract(b.G.Transform.Position, half)
		case dynA:
			a.G.Transform.Position = rl.Vector2Add(a.G.Transform.Position, move)
		default:
			b.G.Transform.Position = rl.Vector2Subtract(b.G.Transform.Position, move)
		}
	}

	relVel := rl.Vector2Subtract(a.velocityAt(mtv.Contact), b.velocityAt(mtv.Contact))
	vn := rl.Vector2DotProduct(relVel, mtv.Normal)
	if vn > 0 {
		return // already separating
	}

	if vn < -components.SleepVelocityThreshold {
		if a.RB != nil {
			a.RB.Wake()
		}
		if b.RB != nil {
			b.RB.Wake()
		}
	}

	var e float32
	if a.RB != nil {
		e = a.RB.Restitution
	}
	if b.RB != nil && b.RB.Restitution > e {
		e = b.RB.Restitution
	}

	invMassA := a.invMass()
	invMassB := b.invMass()
	invIA := a.invInertia()
	invIB := b.invInertia()

	rA := rl.Vector2Subtract(mtv.Contact, a.G.WorldPosition())
	rB := rl.Vector2Subtract(mtv.Contact, b.G.WorldPosition())
	rnA := Cross2(rA, mtv.Normal)
	rnB := Cross2(rB, mtv.Normal)

	denom := invMassA + invMassB + rnA*rnA*invIA + rnB*rnB*invIB
	if denom == 0 {
		return
	}
	j := -(1 + e) * vn / denom
	impulse := rl.Vector2Scale(mtv.Normal, j)

	if dynA {
		a.RB.Velocity = rl.Vector2Add(a.RB.Velocity, rl.Vector2Scale(impulse, invMassA))
		a.RB.AngularVelocity += Cross2(rA, impulse) * invIA * rl.Rad2deg
	}
	if dynB {
		b.RB.Velocity = rl.Vector2Subtract(b.RB.Velocity, rl.Vector2Scale(impulse, invMassB))
		b.RB.AngularVelocity -= Cross2(rB, impulse) * invIB * rl.Rad2deg
	}
}
