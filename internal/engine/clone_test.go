package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type statsComponent struct {
	BaseComponent
	Health int
	Loot   []string
}

func TestCloneBasics(t *testing.T) {
	src := NewGameObject("Prefab")
	src.Tags = []string{"enemy"}
	src.Transform.Position = rl.Vector2{X: 5, Y: 7}
	src.AddComponent(&statsComponent{Health: 80, Loot: []string{"coin"}})

	dst := src.Clone()

	if dst.UID == src.UID {
		t.Error("Clone should get a fresh UID")
	}
	if dst.Name != "Prefab" {
		t.Errorf("Expected name 'Prefab', got %q", dst.Name)
	}
	if dst.Transform.Position.X != 5 || dst.Transform.Position.Y != 7 {
		t.Error("Transform not copied")
	}
	if dst.Scene != nil || dst.Parent != nil {
		t.Error("Clone should not belong to a scene or parent")
	}
}

func TestCloneDeepCopiesComponents(t *testing.T) {
	src := NewGameObject("Prefab")
	stats := &statsComponent{Health: 80, Loot: []string{"coin"}}
	src.AddComponent(stats)

	dst := src.Clone()

	copied := GetComponent[*statsComponent](dst)
	if copied == nil {
		t.Fatal("Component missing on clone")
	}
	if copied == stats {
		t.Fatal("Clone should not share component pointers")
	}
	if copied.GetGameObject() != dst {
		t.Error("Cloned component back-reference not rewired")
	}

	copied.Health = 1
	copied.Loot[0] = "gem"
	if stats.Health != 80 {
		t.Error("Mutating the clone changed the source")
	}
	if stats.Loot[0] != "coin" {
		t.Error("Slices should be deep-copied, not shared")
	}
}

func TestCloneRecursesChildren(t *testing.T) {
	src := NewGameObject("Parent")
	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector2{X: 1, Y: 2}
	src.AddChild(child)

	dst := src.Clone()

	if len(dst.Children) != 1 {
		t.Fatalf("Expected 1 cloned child, got %d", len(dst.Children))
	}
	clonedChild := dst.Children[0]
	if clonedChild == child {
		t.Error("Children should be cloned, not shared")
	}
	if clonedChild.Parent != dst {
		t.Error("Cloned child should be parented to the cloned root")
	}
	if clonedChild.UID == child.UID {
		t.Error("Cloned child should get a fresh UID")
	}
}
