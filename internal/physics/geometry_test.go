package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func approxVec(t *testing.T, got, want rl.Vector2, tol float32, msg string) {
	t.Helper()
	if math32.Abs(got.X-want.X) > tol || math32.Abs(got.Y-want.Y) > tol {
		t.Errorf("%s: expected (%f, %f), got (%f, %f)", msg, want.X, want.Y, got.X, got.Y)
	}
}

func TestTransformPointOrder(t *testing.T) {
	// scale then rotate then translate
	got := TransformPoint(rl.Vector2{X: 1, Y: 0}, rl.Vector2{X: 10, Y: 10}, 90, rl.Vector2{X: 2, Y: 1}, false, false)
	approxVec(t, got, rl.Vector2{X: 10, Y: 12}, 0.001, "scale+rotate+translate")

	// flip applies before scale
	got = TransformPoint(rl.Vector2{X: 3, Y: 0}, rl.Vector2{}, 0, rl.Vector2{X: 2, Y: 2}, true, false)
	approxVec(t, got, rl.Vector2{X: -6, Y: 0}, 0.001, "flipX")
}

func TestAxesUnitNormals(t *testing.T) {
	square := []rl.Vector2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	axes := Axes(square)
	if len(axes) != 4 {
		t.Fatalf("Expected 4 axes, got %d", len(axes))
	}
	for i, a := range axes {
		if math32.Abs(rl.Vector2Length(a)-1) > 0.001 {
			t.Errorf("Axis %d not unit length: %v", i, a)
		}
	}
}

func TestProjectRange(t *testing.T) {
	square := []rl.Vector2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	min, max := Project(square, rl.Vector2{X: 1, Y: 0})
	if min != -1 || max != 1 {
		t.Errorf("Expected [-1, 1], got [%f, %f]", min, max)
	}

	min, max = ProjectSegment(rl.Vector2{X: 0, Y: 0}, rl.Vector2{X: 4, Y: 0}, 1, rl.Vector2{X: 1, Y: 0})
	if min != -1 || max != 5 {
		t.Errorf("Expected inflated [-1, 5], got [%f, %f]", min, max)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := rl.Vector2{X: 0, Y: 0}
	b := rl.Vector2{X: 10, Y: 0}

	approxVec(t, ClosestPointOnSegment(rl.Vector2{X: 5, Y: 3}, a, b), rl.Vector2{X: 5, Y: 0}, 0.001, "interior")
	approxVec(t, ClosestPointOnSegment(rl.Vector2{X: -5, Y: 3}, a, b), a, 0.001, "clamp to a")
	approxVec(t, ClosestPointOnSegment(rl.Vector2{X: 15, Y: 3}, a, b), b, 0.001, "clamp to b")

	// Degenerate segment falls back to the endpoint
	approxVec(t, ClosestPointOnSegment(rl.Vector2{X: 3, Y: 3}, a, a), a, 0.001, "degenerate")
}

func TestClosestPointsOnSegments(t *testing.T) {
	// Crossing segments meet at the intersection
	c1, c2 := ClosestPointsOnSegments(
		rl.Vector2{X: -5, Y: 0}, rl.Vector2{X: 5, Y: 0},
		rl.Vector2{X: 0, Y: -5}, rl.Vector2{X: 0, Y: 5})
	approxVec(t, c1, rl.Vector2{}, 0.001, "crossing c1")
	approxVec(t, c2, rl.Vector2{}, 0.001, "crossing c2")

	// Parallel segments keep their separation
	c1, c2 = ClosestPointsOnSegments(
		rl.Vector2{X: 0, Y: 0}, rl.Vector2{X: 10, Y: 0},
		rl.Vector2{X: 0, Y: 4}, rl.Vector2{X: 10, Y: 4})
	if d := rl.Vector2Distance(c1, c2); math32.Abs(d-4) > 0.001 {
		t.Errorf("Expected distance 4 between parallel segments, got %f", d)
	}

	// Disjoint endpoint case
	c1, c2 = ClosestPointsOnSegments(
		rl.Vector2{X: 0, Y: 0}, rl.Vector2{X: 1, Y: 0},
		rl.Vector2{X: 5, Y: 0}, rl.Vector2{X: 6, Y: 0})
	approxVec(t, c1, rl.Vector2{X: 1, Y: 0}, 0.001, "endpoint c1")
	approxVec(t, c2, rl.Vector2{X: 5, Y: 0}, 0.001, "endpoint c2")
}

func TestPointInPolygonBothWindings(t *testing.T) {
	ccw := []rl.Vector2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	cw := []rl.Vector2{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}

	inside := rl.Vector2{X: 2, Y: 2}
	outside := rl.Vector2{X: 5, Y: 2}

	if !PointInPolygon(inside, ccw) || !PointInPolygon(inside, cw) {
		t.Error("Interior point should be inside for both windings")
	}
	if PointInPolygon(outside, ccw) || PointInPolygon(outside, cw) {
		t.Error("Exterior point should be outside for both windings")
	}
}
