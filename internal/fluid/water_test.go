package fluid

import (
	"testing"

	"sim2d/internal/config"
)

func testSettings() config.Water {
	return config.Default().Water
}

func TestGenerateFillsDeclaredExtent(t *testing.T) {
	w := NewWater(testSettings(), 64, 32)

	// spacing 8 over 64x32 lays an 8x4 grid
	if len(w.Particles) != 32 {
		t.Errorf("Expected 32 particles, got %d", len(w.Particles))
	}
	for i, p := range w.Particles {
		if p.X < 0 || p.X > 64 || p.Y < 0 || p.Y > 32 {
			t.Fatalf("Particle %d outside declared extent: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestResizeRegenerates(t *testing.T) {
	w := NewWater(testSettings(), 64, 32)
	before := len(w.Particles)

	w.Resize(64, 64)
	if len(w.Particles) != before*2 {
		t.Errorf("Expected %d particles after doubling height, got %d", before*2, len(w.Particles))
	}

	// Same size is a no-op and keeps particle state
	w.Particles[0].X = -999
	w.Resize(64, 64)
	if w.Particles[0].X != -999 {
		t.Error("Resize to the same extent should not regenerate")
	}
}

func TestActivateIsOneShot(t *testing.T) {
	w := NewWater(testSettings(), 32, 32)
	firstX := w.Particles[0].X

	w.Activate(100, 200)
	if !w.Activated() {
		t.Fatal("Water should report activated")
	}
	if w.Particles[0].X != firstX+100 {
		t.Errorf("Expected world offset applied, got %f", w.Particles[0].X)
	}

	// Second activation must not shift again
	w.Activate(100, 200)
	if w.Particles[0].X != firstX+100 {
		t.Error("Activate must only transfer to world space once")
	}
}

func TestStepAppliesGravity(t *testing.T) {
	w := NewWater(testSettings(), 32, 32)
	w.Activate(0, 0)
	w.Gravity = 980

	startY := w.Particles[0].Y
	for i := 0; i < 10; i++ {
		w.Step(1.0/60, nil, nil)
	}

	if w.Particles[0].Y <= startY {
		t.Error("Unsupported particles should fall under gravity")
	}
	if w.Particles[0].VY <= 0 {
		t.Error("Reconstructed velocity should point down while falling")
	}
}

func TestObstacleStopsParticles(t *testing.T) {
	w := NewWater(testSettings(), 64, 32)
	w.Activate(0, 0)
	w.Gravity = 980

	floor := Obstacle{MinX: -100, MinY: 100, MaxX: 200, MaxY: 160}
	for i := 0; i < 240; i++ {
		w.Step(1.0/60, []Obstacle{floor}, nil)
	}

	for i, p := range w.Particles {
		if p.Y > floor.MinY+1 {
			t.Fatalf("Particle %d sank into the floor: y=%f", i, p.Y)
		}
	}
}

func TestSettlingConservesMassAndDensity(t *testing.T) {
	cfg := testSettings()
	cfg.TideAmplitude = 0
	w := NewWater(cfg, 64, 64)
	w.Activate(0, 0)
	w.Gravity = 980

	// Closed basin
	obstacles := []Obstacle{
		{MinX: -20, MinY: 200, MaxX: 100, MaxY: 260}, // floor
		{MinX: -40, MinY: -100, MaxX: -10, MaxY: 260},
		{MinX: 74, MinY: -100, MaxX: 104, MaxY: 260},
	}

	count := len(w.Particles)
	for i := 0; i < 600; i++ {
		w.Step(1.0/60, obstacles, nil)
		if len(w.Particles) != count {
			t.Fatalf("Particle count changed at step %d: %d -> %d", i, count, len(w.Particles))
		}
	}

	rest := w.RestDensity()
	var sum float32
	for _, p := range w.Particles {
		sum += p.Rho
	}
	mean := sum / float32(count)
	if mean < rest*0.4 || mean > rest*2.0 {
		t.Errorf("Mean settled density %f far from rest %f", mean, rest)
	}

	// Everything stays inside the basin
	for i, p := range w.Particles {
		if p.Y > 201 || p.X < -11 || p.X > 75 {
			t.Errorf("Particle %d escaped the basin: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestForNeighborsFindsSelf(t *testing.T) {
	w := NewWater(testSettings(), 32, 32)
	w.Activate(0, 0)
	w.Step(1.0/60, nil, nil) // builds the hash

	p := w.Particles[0]
	found := false
	w.ForNeighbors(p.X, p.Y, func(i int) {
		if i == 0 {
			found = true
		}
	})
	if !found {
		t.Error("ForNeighbors should include the particle's own cell")
	}
}

func TestBoundsTracksParticles(t *testing.T) {
	w := NewWater(testSettings(), 32, 32)
	w.Activate(50, 60)

	minX, minY, maxX, maxY := w.Bounds()
	if minX < 50 || minY < 60 || maxX > 82 || maxY > 92 {
		t.Errorf("Bounds (%f,%f)-(%f,%f) outside expected region", minX, minY, maxX, maxY)
	}
}
