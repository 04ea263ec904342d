package world

import (
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/engine"
)

func TestSceneFileRoundTrip(t *testing.T) {
	scene := engine.NewScene("level1")

	ground := engine.NewGameObject("ground")
	ground.Tags = []string{"ground"}
	ground.Transform.Position = rl.Vector2{X: 0, Y: 300}
	ground.AddComponent(components.NewBoxCollider(900, 40))
	groundRB := components.NewRigidbody()
	groundRB.Kind = components.Static
	ground.AddComponent(groundRB)
	scene.AddGameObject(ground)

	crate := engine.NewGameObject("crate")
	crate.Transform.Position = rl.Vector2{X: 10, Y: -50}
	crate.Transform.Rotation = 15
	crate.AddComponent(components.NewBoxCollider(30, 30))
	crateRB := components.NewRigidbody()
	crateRB.Mass = 2.5
	crateRB.Restitution = 0.4
	crateRB.BuoyancyWeight = 0.7
	crate.AddComponent(crateRB)

	marker := engine.NewGameObject("marker")
	marker.Transform.Position = rl.Vector2{X: 0, Y: -20}
	sensor := components.NewBoxCollider(5, 5)
	sensor.IsTrigger = true
	marker.AddComponent(sensor)
	crate.AddChild(marker)
	scene.AddGameObject(crate)
	scene.AddGameObject(marker)

	path := filepath.Join(t.TempDir(), "level1.json")
	if err := SaveScene(scene, path); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	if loaded.Name != "level1" {
		t.Errorf("Expected scene name 'level1', got %q", loaded.Name)
	}
	if len(loaded.GameObjects) != 3 {
		t.Fatalf("Expected 3 objects (marker included), got %d", len(loaded.GameObjects))
	}

	g := loaded.FindByName("ground")
	if g == nil {
		t.Fatal("Ground missing after round trip")
	}
	if !g.HasTag("ground") {
		t.Error("Tags lost in round trip")
	}
	if rb := engine.GetComponent[*components.Rigidbody](g); rb == nil || rb.Kind != components.Static {
		t.Error("Static rigidbody lost in round trip")
	}

	c := loaded.FindByName("crate")
	if c == nil {
		t.Fatal("Crate missing after round trip")
	}
	if c.Transform.Rotation != 15 {
		t.Errorf("Expected rotation 15, got %f", c.Transform.Rotation)
	}
	rb := engine.GetComponent[*components.Rigidbody](c)
	if rb == nil {
		t.Fatal("Crate rigidbody missing")
	}
	if rb.Mass != 2.5 || rb.Restitution != 0.4 || rb.BuoyancyWeight != 0.7 {
		t.Errorf("Rigidbody fields lost: mass=%f e=%f buoyancy=%f", rb.Mass, rb.Restitution, rb.BuoyancyWeight)
	}
	col := engine.GetComponent[*components.Collider](c)
	if col == nil || col.Shape != components.ShapeBox || col.Size.X != 30 {
		t.Error("Crate collider lost in round trip")
	}

	if len(c.Children) != 1 || c.Children[0].Name != "marker" {
		t.Fatal("Child hierarchy lost in round trip")
	}
	child := c.Children[0]
	if child.Parent != c {
		t.Error("Child parent reference not restored")
	}
	childCol := engine.GetComponent[*components.Collider](child)
	if childCol == nil || !childCol.IsTrigger {
		t.Error("Trigger flag lost in round trip")
	}
	if loaded.FindByName("marker") == nil {
		t.Error("Child should be registered with the scene")
	}
}

func TestLoadSceneUnknownComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, path, `{"name":"bad","objects":[{"name":"x","scale":[1,1],"components":[{"type":"Nope"}]}]}`)

	if _, err := LoadScene(path); err == nil {
		t.Error("Unknown component types should fail the load")
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Missing files should return an error")
	}
}

func TestLoadSceneTilemapRoundTrip(t *testing.T) {
	scene := engine.NewScene("tiles")

	terrain := engine.NewGameObject("terrain")
	tiles := components.NewTilemapCollider(3, 2, 16, 16)
	tiles.SetCell(0, 1, true)
	tiles.SetCell(1, 1, true)
	terrain.AddComponent(tiles)
	scene.AddGameObject(terrain)

	path := filepath.Join(t.TempDir(), "tiles.json")
	if err := SaveScene(scene, path); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}
	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	col := engine.GetComponent[*components.Collider](loaded.FindByName("terrain"))
	if col == nil || col.Shape != components.ShapeTilemap {
		t.Fatal("Tilemap collider lost in round trip")
	}
	if col.Cols != 3 || col.Rows != 2 || col.CellW != 16 {
		t.Errorf("Grid dimensions lost: %dx%d cell %f", col.Cols, col.Rows, col.CellW)
	}
	if !col.Cell(0, 1) || !col.Cell(1, 1) || col.Cell(2, 1) {
		t.Error("Solid cells lost in round trip")
	}
	if len(col.Rects()) != 1 {
		t.Errorf("Expected 1 merged rect after reload, got %d", len(col.Rects()))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
