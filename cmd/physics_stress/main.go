// Headless stress test for the physics step: boxes raining into a
// container at increasing counts, reporting time per step.
package main

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/config"
	"sim2d/internal/engine"
	"sim2d/internal/physics"
)

func main() {
	testCounts := []int{50, 100, 250, 500, 1000, 2000}
	for _, count := range testCounts {
		stepScene(count)
	}
}

func stepScene(count int) {
	cfg := config.Default()
	scene := engine.NewScene("stress")

	addStaticBox(scene, "floor", 0, 400, 2000, 40)
	addStaticBox(scene, "left-wall", -1000, 0, 40, 800)
	addStaticBox(scene, "right-wall", 1000, 0, 40, 800)

	rng := rand.New(rand.NewSource(42)) // consistent runs
	for i := 0; i < count; i++ {
		g := engine.NewGameObject(fmt.Sprintf("box-%d", i))
		g.Transform.Position = rl.Vector2{
			X: rng.Float32()*1800 - 900,
			Y: -rng.Float32() * 2000,
		}
		g.AddComponent(components.NewBoxCollider(20, 20))
		rb := components.NewRigidbody()
		rb.Restitution = 0.2
		g.AddComponent(rb)
		scene.AddGameObject(g)
	}

	world := physics.NewPhysicsWorld(&cfg, scene)
	scene.Start()

	const steps = 120
	const dt = float32(1) / 60

	// Warm up the broad-phase grid and caches
	world.Step(dt)

	start := time.Now()
	for i := 0; i < steps; i++ {
		world.Step(dt)
	}
	perStep := time.Since(start) / steps

	sleeping := 0
	for _, g := range scene.GameObjects {
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && rb.IsSleeping {
			sleeping++
		}
	}
	fmt.Printf("%5d bodies: %10v per step | %4d asleep after %d steps\n",
		count, perStep, sleeping, steps)
}

func addStaticBox(scene *engine.Scene, name string, x, y, w, h float32) {
	g := engine.NewGameObject(name)
	g.Transform.Position = rl.Vector2{X: x, Y: y}
	g.AddComponent(components.NewBoxCollider(w, h))
	rb := components.NewRigidbody()
	rb.Kind = components.Static
	g.AddComponent(rb)
	scene.AddGameObject(g)
}
