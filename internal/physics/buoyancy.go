package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/fluid"
)

// applyBuoyancy couples a dynamic body to every overlapping water
// volume. Immersion is estimated by probing sample points down the
// body's bounding box against the water's particle hash; the factor
// drives either a sinking force or lift plus a surface pull, and a
// strong velocity damping stands in for fluid drag.
func (w *PhysicsWorld) applyBuoyancy(b *bodyRef, dt float32) {
	if len(w.waters) == 0 || b.Col == nil {
		return
	}
	rb := b.RB
	wc := w.cfg.Water
	samples := wc.ImmersionSamples
	if samples < 1 {
		samples = 1
	}

	box := ColliderAABB(b.G, b.Col)
	cx := (box.Min.X + box.Max.X) / 2

	for _, water := range w.waters {
		minX, minY, maxX, maxY := water.Bounds()
		h := water.SmoothingRadius()
		if box.Max.X < minX-h || box.Min.X > maxX+h ||
			box.Max.Y < minY-h || box.Min.Y > maxY+h {
			continue
		}

		wet := 0
		var sumY float32
		var wetCount int
		h2 := h * h
		for s := 0; s < samples; s++ {
			t := (float32(s) + 0.5) / float32(samples)
			py := box.Min.Y + t*(box.Max.Y-box.Min.Y)
			found := false
			water.ForNeighbors(cx, py, func(i int) {
				p := &water.Particles[i]
				dx := p.X - cx
				dy := p.Y - py
				if dx*dx+dy*dy < h2 {
					found = true
					sumY += p.Y
					wetCount++
				}
			})
			if found {
				wet++
			}
		}
		if wet == 0 {
			continue
		}
		immersion := float32(wet) / float32(samples)

		if rb.BuoyancyWeight > rb.SinkThreshold {
			rb.Velocity.Y += wc.SinkForce * immersion * dt
		} else {
			rb.Velocity.Y -= wc.Lift * immersion * dt
			if wetCount > 0 {
				surfaceY := sumY / float32(wetCount)
				rb.Velocity.Y += (surfaceY - b.G.Transform.Position.Y) * wc.SurfacePull * dt
			}
		}

		k := 1 - wc.FluidDrag*immersion*dt
		if k < 0 {
			k = 0
		}
		rb.Velocity = rl.Vector2Scale(rb.Velocity, k)
		rb.AngularVelocity *= k
	}
}

// fluidObstacles collects the world geometry particles collide with:
// non-dynamic box colliders (as their AABB) and tilemap rectangles.
func (w *PhysicsWorld) fluidObstacles() []fluid.Obstacle {
	if len(w.waters) == 0 {
		return nil
	}
	var out []fluid.Obstacle
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Col == nil || b.Col.IsTrigger || b.isDynamic() {
			continue
		}
		switch b.Col.Shape {
		case components.ShapeBox:
			box := ColliderAABB(b.G, b.Col)
			out = append(out, fluid.Obstacle{
				MinX: box.Min.X, MinY: box.Min.Y,
				MaxX: box.Max.X, MaxY: box.Max.Y,
			})
		case components.ShapeTilemap:
			pos := rl.Vector2Add(b.G.WorldPosition(), b.Col.Offset)
			scale := b.G.WorldScale()
			cw := b.Col.CellW * scale.X
			ch := b.Col.CellH * scale.Y
			for _, r := range b.Col.Rects() {
				out = append(out, fluid.Obstacle{
					MinX: pos.X + float32(r.X)*cw,
					MinY: pos.Y + float32(r.Y)*ch,
					MaxX: pos.X + float32(r.X+r.W)*cw,
					MaxY: pos.Y + float32(r.Y+r.H)*ch,
				})
			}
		}
	}
	return out
}

// fluidPushers collects moving dynamic bodies near any water volume so
// the particle step can shove particles out of their way.
func (w *PhysicsWorld) fluidPushers() []fluid.Pusher {
	if len(w.waters) == 0 {
		return nil
	}
	r := w.cfg.Water.PushRadius
	var out []fluid.Pusher
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.isDynamic() || b.RB.IsSleeping {
			continue
		}
		pos := b.G.WorldPosition()
		for _, water := range w.waters {
			minX, minY, maxX, maxY := water.Bounds()
			if pos.X < minX-r || pos.X > maxX+r || pos.Y < minY-r || pos.Y > maxY+r {
				continue
			}
			out = append(out, fluid.Pusher{
				X: pos.X, Y: pos.Y,
				VX: b.RB.Velocity.X, VY: b.RB.Velocity.Y,
			})
			break
		}
	}
	return out
}
