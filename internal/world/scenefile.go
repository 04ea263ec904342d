// Package world loads and saves scenes as JSON files. Physics
// components round-trip through the component registry; gameplay
// scripts go through the script registry.
package world

import (
	"encoding/json"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/engine"
)

type SceneFile struct {
	Name    string      `json:"name"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string           `json:"name"`
	Tags       []string         `json:"tags,omitempty"`
	Active     *bool            `json:"active,omitempty"`
	Position   [2]float32       `json:"position"`
	Rotation   float32          `json:"rotation,omitempty"`
	Scale      [2]float32       `json:"scale"`
	FlipX      bool             `json:"flipX,omitempty"`
	FlipY      bool             `json:"flipY,omitempty"`
	Components []map[string]any `json:"components,omitempty"`
	Scripts    []ScriptDef      `json:"scripts,omitempty"`
	Children   []ObjectDef      `json:"children,omitempty"`
}

type ScriptDef struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// LoadScene reads a scene JSON file and instantiates every object in it.
func LoadScene(path string) (*engine.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}

	scene := engine.NewScene(file.Name)
	for _, def := range file.Objects {
		g, err := buildObject(def)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", path, err)
		}
		addTree(scene, g)
	}
	return scene, nil
}

// addTree registers an object and its descendants with the scene, so
// parented objects are visible to physics and update passes.
func addTree(scene *engine.Scene, g *engine.GameObject) {
	scene.AddGameObject(g)
	for _, child := range g.Children {
		addTree(scene, child)
	}
}

func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = rl.Vector2{X: def.Position[0], Y: def.Position[1]}
	g.Transform.Rotation = def.Rotation
	g.Transform.Scale = rl.Vector2{X: def.Scale[0], Y: def.Scale[1]}
	if def.Scale == [2]float32{} {
		g.Transform.Scale = rl.Vector2{X: 1, Y: 1}
	}
	g.Transform.FlipX = def.FlipX
	g.Transform.FlipY = def.FlipY

	for _, raw := range def.Components {
		typeName, _ := raw["type"].(string)
		s := engine.CreateComponent(typeName)
		if s == nil {
			return nil, fmt.Errorf("object %q: unknown component type %q", def.Name, typeName)
		}
		s.Deserialize(raw)
		c, ok := s.(engine.Component)
		if !ok {
			return nil, fmt.Errorf("object %q: component %q is not attachable", def.Name, typeName)
		}
		g.AddComponent(c)
	}

	for _, sd := range def.Scripts {
		c := engine.CreateScript(sd.Name, sd.Props)
		if c == nil {
			return nil, fmt.Errorf("object %q: unknown script %q", def.Name, sd.Name)
		}
		g.AddComponent(c)
	}

	for _, childDef := range def.Children {
		child, err := buildObject(childDef)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

// SaveScene writes the scene's top-level objects back to a JSON file.
// Components that do not implement Serializable and scripts without a
// registered serializer are skipped.
func SaveScene(scene *engine.Scene, path string) error {
	file := SceneFile{Name: scene.Name}
	for _, g := range scene.GameObjects {
		if g.Parent != nil {
			continue
		}
		file.Objects = append(file.Objects, objectDef(g))
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("save scene %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save scene %s: %w", path, err)
	}
	return nil
}

func objectDef(g *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Position: [2]float32{g.Transform.Position.X, g.Transform.Position.Y},
		Rotation: g.Transform.Rotation,
		Scale:    [2]float32{g.Transform.Scale.X, g.Transform.Scale.Y},
		FlipX:    g.Transform.FlipX,
		FlipY:    g.Transform.FlipY,
	}
	if !g.Active {
		active := false
		def.Active = &active
	}
	for _, c := range g.Components() {
		if s, ok := c.(engine.Serializable); ok {
			def.Components = append(def.Components, s.Serialize())
			continue
		}
		if name, props, ok := engine.SerializeScript(c); ok {
			def.Scripts = append(def.Scripts, ScriptDef{Name: name, Props: props})
		}
	}
	for _, child := range g.Children {
		def.Children = append(def.Children, objectDef(child))
	}
	return def
}
