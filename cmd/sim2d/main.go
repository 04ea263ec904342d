// Interactive demo: boxes, a capsule and water dropped onto static
// geometry. Left click spawns a crate at the cursor, right click casts
// a ray from the origin toward the cursor.
package main

import (
	"flag"
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/config"
	"sim2d/internal/engine"
	"sim2d/internal/physics"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Physics: %v", err)
		}
		cfg = loaded
	}

	scene := buildScene(&cfg)
	world := physics.NewPhysicsWorld(&cfg, scene)
	scene.Start()

	rl.InitWindow(screenWidth, screenHeight, "sim2d")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera2D{
		Offset: rl.Vector2{X: screenWidth / 2, Y: screenHeight / 2},
		Zoom:   1,
	}

	spawned := 0
	var lastHit *engine.RaycastResult

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		if dt > 1.0/30 {
			dt = 1.0 / 30 // clamp frame spikes
		}

		mouse := rl.GetScreenToWorld2D(rl.GetMousePosition(), camera)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			spawned++
			world.SpawnObject(makeCrate(fmt.Sprintf("crate-%d", spawned), mouse))
		}
		if rl.IsMouseButtonPressed(rl.MouseRightButton) {
			if hit, ok := world.Raycast(rl.Vector2{}, mouse, 2000, ""); ok {
				lastHit = &hit
			} else {
				lastHit = nil
			}
		}

		world.Step(dt)
		scene.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 33, 255))
		rl.BeginMode2D(camera)
		drawScene(scene, &cfg)
		if lastHit != nil {
			rl.DrawLineV(rl.Vector2{}, lastHit.Point, rl.Yellow)
			rl.DrawCircleV(lastHit.Point, 4, rl.Red)
		}
		rl.EndMode2D()
		rl.DrawFPS(10, 10)
		rl.DrawText("LMB: spawn crate   RMB: raycast from origin", 10, screenHeight-28, 18, rl.Gray)
		rl.EndDrawing()
	}
}

func buildScene(cfg *config.Config) *engine.Scene {
	scene := engine.NewScene("demo")

	ground := engine.NewGameObject("ground")
	ground.Tags = []string{"ground"}
	ground.Transform.Position = rl.Vector2{X: 0, Y: 300}
	ground.AddComponent(components.NewBoxCollider(900, 40))
	groundRB := components.NewRigidbody()
	groundRB.Kind = components.Static
	ground.AddComponent(groundRB)
	scene.AddGameObject(ground)

	// Stepped terrain built from a tile grid
	terrain := engine.NewGameObject("terrain")
	terrain.Transform.Position = rl.Vector2{X: 200, Y: 120}
	tiles := components.NewTilemapCollider(10, 5, 32, 32)
	for x := 0; x < 10; x++ {
		for y := 4 - x/2; y < 5; y++ {
			tiles.SetCell(x, y, true)
		}
	}
	terrain.AddComponent(tiles)
	terrainRB := components.NewRigidbody()
	terrainRB.Kind = components.Static
	terrain.AddComponent(terrainRB)
	scene.AddGameObject(terrain)

	slope := engine.NewGameObject("slope")
	slope.Transform.Position = rl.Vector2{X: -420, Y: 160}
	slope.AddComponent(components.NewLineCollider([]rl.Vector2{
		{X: 0, Y: 0}, {X: 120, Y: 60}, {X: 260, Y: 90}, {X: 400, Y: 120},
	}, cfg.LineThickness))
	slopeRB := components.NewRigidbody()
	slopeRB.Kind = components.Static
	slope.AddComponent(slopeRB)
	scene.AddGameObject(slope)

	capsule := engine.NewGameObject("pill")
	capsule.Transform.Position = rl.Vector2{X: -300, Y: -200}
	capsule.AddComponent(components.NewCapsuleCollider(14, 40, false))
	capsuleRB := components.NewRigidbody()
	capsuleRB.Restitution = 0.4
	capsule.AddComponent(capsuleRB)
	scene.AddGameObject(capsule)

	pool := engine.NewGameObject("pool")
	pool.Transform.Position = rl.Vector2{X: -160, Y: 120}
	wb := components.NewWaterBody(240, 120, cfg.Water)
	wb.Gravity = cfg.Gravity.Y
	pool.AddComponent(wb)
	scene.AddGameObject(pool)

	floater := makeCrate("floater", rl.Vector2{X: -60, Y: 0})
	if rb := engine.GetComponent[*components.Rigidbody](floater); rb != nil {
		rb.BuoyancyWeight = 0.2 // floats
	}
	scene.AddGameObject(floater)

	return scene
}

func makeCrate(name string, pos rl.Vector2) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Tags = []string{"crate"}
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(30, 30))
	rb := components.NewRigidbody()
	rb.Restitution = 0.15
	g.AddComponent(rb)
	return g
}

func drawScene(scene *engine.Scene, cfg *config.Config) {
	for _, g := range scene.ActiveObjects() {
		col := engine.GetComponent[*components.Collider](g)
		if col == nil {
			if wb := engine.GetComponent[*components.WaterBody](g); wb != nil {
				drawWater(wb)
			}
			continue
		}
		if wb := engine.GetComponent[*components.WaterBody](g); wb != nil {
			drawWater(wb)
		}
		drawCollider(g, col, cfg)
	}
}

func drawCollider(g *engine.GameObject, col *components.Collider, cfg *config.Config) {
	color := rl.SkyBlue
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		switch {
		case rb.Kind == components.Static:
			color = rl.DarkGray
		case rb.IsSleeping:
			color = rl.Blue
		}
	}

	switch col.Shape {
	case components.ShapeBox:
		pos := g.WorldPosition()
		scale := g.WorldScale()
		w := col.Size.X * scale.X
		h := col.Size.Y * scale.Y
		rl.DrawRectanglePro(
			rl.Rectangle{X: pos.X + col.Offset.X, Y: pos.Y + col.Offset.Y, Width: w, Height: h},
			rl.Vector2{X: w / 2, Y: h / 2},
			g.WorldRotation(), color)

	case components.ShapeCapsule:
		a, b, r := physics.CapsuleSegment(g, col)
		rl.DrawCircleV(a, r, color)
		rl.DrawCircleV(b, r, color)
		rl.DrawLineEx(a, b, r*2, color)

	case components.ShapePolygon:
		verts := physics.WorldVertices(g, col)
		for i := range verts {
			rl.DrawLineV(verts[i], verts[(i+1)%len(verts)], color)
		}

	case components.ShapeLine:
		pos := g.WorldPosition()
		for i := 0; i+1 < len(col.Points); i++ {
			a := rl.Vector2Add(pos, col.Points[i])
			b := rl.Vector2Add(pos, col.Points[i+1])
			rl.DrawLineEx(a, b, cfg.LineThickness, color)
		}

	case components.ShapeTilemap:
		pos := rl.Vector2Add(g.WorldPosition(), col.Offset)
		scale := g.WorldScale()
		for _, r := range col.Rects() {
			rl.DrawRectangleV(
				rl.Vector2{X: pos.X + float32(r.X)*col.CellW*scale.X, Y: pos.Y + float32(r.Y)*col.CellH*scale.Y},
				rl.Vector2{X: float32(r.W) * col.CellW * scale.X, Y: float32(r.H) * col.CellH * scale.Y},
				rl.Brown)
		}
	}
}

func drawWater(wb *components.WaterBody) {
	sim := wb.Sim()
	for i := range sim.Particles {
		p := &sim.Particles[i]
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, 3, rl.NewColor(60, 140, 255, 200))
	}
}
