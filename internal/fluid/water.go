// Package fluid implements a position-based particle water simulation.
// Pressure is solved by relaxing particle positions directly and
// reconstructing velocity from the displacement, so the tuning constants
// in config.Water are coupled to this exact pipeline order.
package fluid

import (
	"github.com/chewxy/math32"

	"sim2d/internal/config"
)

// Particle state is plain data; identity is the slice index.
type Particle struct {
	X, Y         float32
	VX, VY       float32
	PrevX, PrevY float32
	Rho          float32
}

// Obstacle is an axis-aligned solid region particles collide with.
type Obstacle struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Pusher is a moving body that shoves nearby particles and transfers
// some of its velocity into them.
type Pusher struct {
	X, Y   float32
	VX, VY float32
}

type Water struct {
	cfg config.Water

	Particles []Particle

	// Declared extent of the particle grid. Changing it regenerates
	// the particle set wholesale.
	Width, Height float32

	Gravity   float32
	TideTime  float32
	activated bool

	cellSize float32
	hash     map[int64][]int

	aabbDirty              bool
	minX, minY, maxX, maxY float32
}

func NewWater(cfg config.Water, width, height float32) *Water {
	w := &Water{
		cfg:      cfg,
		Width:    width,
		Height:   height,
		cellSize: cfg.Spacing * 1.5,
		hash:     make(map[int64][]int),
	}
	w.generate()
	return w
}

// generate lays particles on a grid at the configured spacing, in local
// space with the origin at the top-left of the declared extent.
func (w *Water) generate() {
	w.Particles = w.Particles[:0]
	s := w.cfg.Spacing
	if s <= 0 {
		s = 8
	}
	for y := s / 2; y < w.Height; y += s {
		for x := s / 2; x < w.Width; x += s {
			w.Particles = append(w.Particles, Particle{X: x, Y: y, PrevX: x, PrevY: y})
		}
	}
	w.aabbDirty = true
	w.activated = false
}

// Resize changes the declared extent and regenerates the particle set.
func (w *Water) Resize(width, height float32) {
	if width == w.Width && height == w.Height {
		return
	}
	w.Width = width
	w.Height = height
	w.generate()
}

// Activate transfers the particle grid from local to world space once.
// Subsequent calls are no-ops; particles live in world space after this.
func (w *Water) Activate(worldX, worldY float32) {
	if w.activated {
		return
	}
	for i := range w.Particles {
		p := &w.Particles[i]
		p.X += worldX
		p.Y += worldY
		p.PrevX = p.X
		p.PrevY = p.Y
	}
	w.activated = true
	w.aabbDirty = true
}

func (w *Water) Activated() bool {
	return w.activated
}

func packKey(cx, cy int32) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

func (w *Water) cellOf(x, y float32) (int32, int32) {
	return int32(math32.Floor(x / w.cellSize)), int32(math32.Floor(y / w.cellSize))
}

func (w *Water) rebuildHash() {
	for k := range w.hash {
		delete(w.hash, k)
	}
	for i := range w.Particles {
		cx, cy := w.cellOf(w.Particles[i].X, w.Particles[i].Y)
		key := packKey(cx, cy)
		w.hash[key] = append(w.hash[key], i)
	}
}

// ForNeighbors calls fn with the index of every particle whose hash cell
// is within one cell of (x, y). Callers filter by actual distance.
func (w *Water) ForNeighbors(x, y float32, fn func(i int)) {
	cx, cy := w.cellOf(x, y)
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			for _, i := range w.hash[packKey(cx+dx, cy+dy)] {
				fn(i)
			}
		}
	}
}

// Bounds returns the AABB over all particles, recomputing it lazily.
func (w *Water) Bounds() (minX, minY, maxX, maxY float32) {
	if w.aabbDirty {
		w.recomputeBounds()
	}
	return w.minX, w.minY, w.maxX, w.maxY
}

func (w *Water) recomputeBounds() {
	if len(w.Particles) == 0 {
		w.minX, w.minY, w.maxX, w.maxY = 0, 0, 0, 0
		w.aabbDirty = false
		return
	}
	w.minX, w.maxX = w.Particles[0].X, w.Particles[0].X
	w.minY, w.maxY = w.Particles[0].Y, w.Particles[0].Y
	for i := 1; i < len(w.Particles); i++ {
		p := &w.Particles[i]
		if p.X < w.minX {
			w.minX = p.X
		}
		if p.X > w.maxX {
			w.maxX = p.X
		}
		if p.Y < w.minY {
			w.minY = p.Y
		}
		if p.Y > w.maxY {
			w.maxY = p.Y
		}
	}
	w.aabbDirty = false
}

// RestDensity exposes the configured rest density for coupling code.
func (w *Water) RestDensity() float32 {
	return w.cfg.RestDensity
}

// SmoothingRadius is the neighbor interaction radius, 1.5x the particle
// spacing. The hash cell size matches it.
func (w *Water) SmoothingRadius() float32 {
	return w.cellSize
}

// Step advances the simulation. Order matters: positions are relaxed
// after the collision pass and velocity is rebuilt from the final
// displacement, so reordering stages changes the meaning of the
// stiffness and rest density constants.
func (w *Water) Step(dt float32, obstacles []Obstacle, pushers []Pusher) {
	if dt <= 0 || len(w.Particles) == 0 {
		return
	}
	h := w.cellSize
	drag := 1 - w.cfg.FluidDrag*w.cfg.Viscosity*dt
	if drag < 0 {
		drag = 0
	}

	for i := range w.Particles {
		p := &w.Particles[i]
		p.VY += w.Gravity * dt
		p.VX *= drag
		p.VY *= drag
	}

	w.applyPushers(pushers, dt)

	for i := range w.Particles {
		p := &w.Particles[i]
		p.PrevX = p.X
		p.PrevY = p.Y
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}

	w.collideObstacles(obstacles)
	w.rebuildHash()
	w.estimateDensity(h)
	w.relaxPressure(h)
	w.applyTide(dt)

	for i := range w.Particles {
		p := &w.Particles[i]
		p.VX = (p.X - p.PrevX) / dt
		p.VY = (p.Y - p.PrevY) / dt
	}
	w.aabbDirty = true
}

func (w *Water) applyPushers(pushers []Pusher, dt float32) {
	r := w.cfg.PushRadius
	if r <= 0 || len(pushers) == 0 {
		return
	}
	r2 := r * r
	for _, b := range pushers {
		for i := range w.Particles {
			p := &w.Particles[i]
			dx := p.X - b.X
			dy := p.Y - b.Y
			d2 := dx*dx + dy*dy
			if d2 >= r2 || d2 == 0 {
				continue
			}
			d := math32.Sqrt(d2)
			falloff := 1 - d/r
			push := w.cfg.PushStrength * falloff / dt
			p.VX += dx / d * push
			p.VY += dy / d * push
			p.VX += b.VX * falloff * 0.5
			p.VY += b.VY * falloff * 0.5
		}
	}
}

// collideObstacles resolves each particle out of overlapping rectangles
// along the axis of least overlap, killing most of the velocity on that
// axis. Inelastic on purpose; water does not bounce.
func (w *Water) collideObstacles(obstacles []Obstacle) {
	const damp = 0.05
	for i := range w.Particles {
		p := &w.Particles[i]
		for _, o := range obstacles {
			if p.X <= o.MinX || p.X >= o.MaxX || p.Y <= o.MinY || p.Y >= o.MaxY {
				continue
			}
			left := p.X - o.MinX
			right := o.MaxX - p.X
			up := p.Y - o.MinY
			down := o.MaxY - p.Y

			minX := left
			if right < minX {
				minX = right
			}
			minY := up
			if down < minY {
				minY = down
			}

			if minX < minY {
				if left < right {
					p.X = o.MinX
				} else {
					p.X = o.MaxX
				}
				p.VX *= -damp
			} else {
				if up < down {
					p.Y = o.MinY
				} else {
					p.Y = o.MaxY
				}
				p.VY *= -damp
			}
		}
	}
}

func (w *Water) estimateDensity(h float32) {
	h2 := h * h
	for i := range w.Particles {
		p := &w.Particles[i]
		rho := float32(0)
		w.ForNeighbors(p.X, p.Y, func(j int) {
			q := &w.Particles[j]
			dx := q.X - p.X
			dy := q.Y - p.Y
			d2 := dx*dx + dy*dy
			if d2 >= h2 {
				return
			}
			t := 1 - math32.Sqrt(d2)/h
			rho += t * t
		})
		p.Rho = rho
	}
}

// relaxPressure displaces particle pairs apart proportional to their
// shared density excess over rest. Position based; no forces involved.
func (w *Water) relaxPressure(h float32) {
	rest := w.cfg.RestDensity
	k := w.cfg.Stiffness
	h2 := h * h
	for i := range w.Particles {
		p := &w.Particles[i]
		excessP := p.Rho - rest
		if excessP <= 0 {
			continue
		}
		w.ForNeighbors(p.X, p.Y, func(j int) {
			if j == i {
				return
			}
			q := &w.Particles[j]
			dx := q.X - p.X
			dy := q.Y - p.Y
			d2 := dx*dx + dy*dy
			if d2 >= h2 || d2 == 0 {
				return
			}
			d := math32.Sqrt(d2)
			shared := excessP
			if excessQ := q.Rho - rest; excessQ > 0 {
				shared += excessQ
			}
			push := k * shared * (1 - d/h) * 0.5
			nx := dx / d
			ny := dy / d
			p.X -= nx * push
			p.Y -= ny * push
			q.X += nx * push
			q.Y += ny * push
		})
	}
}

// applyTide nudges near-surface particles sideways on a sine wave.
// Surface particles are the ones with low density, nothing above them.
func (w *Water) applyTide(dt float32) {
	if w.cfg.TideAmplitude == 0 {
		return
	}
	w.TideTime += dt * w.cfg.TideSpeed
	offset := math32.Sin(w.TideTime) * w.cfg.TideAmplitude * dt
	threshold := w.cfg.RestDensity * 0.8
	for i := range w.Particles {
		p := &w.Particles[i]
		if p.Rho < threshold {
			p.X += offset
		}
	}
}
