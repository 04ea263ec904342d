// Package physics runs the rigid-body and fluid simulation over a
// scene: broad-phase pair finding, SAT narrow phase, impulse
// resolution, collision-state tracking with event dispatch, raycasts
// and the water coupling.
package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"sim2d/internal/components"
	"sim2d/internal/config"
	"sim2d/internal/engine"
	"sim2d/internal/fluid"
)

type PairState int

const (
	StateEnter PairState = iota
	StateStay
	StateExit
)

func (s PairState) String() string {
	switch s {
	case StateEnter:
		return "enter"
	case StateStay:
		return "stay"
	default:
		return "exit"
	}
}

// PairKey identifies a collision pair. A is always the lower UID.
type PairKey struct {
	A, B uint64
}

func makePairKey(a, b uint64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

type bodyRef struct {
	G   *engine.GameObject
	RB  *components.Rigidbody
	Col *components.Collider
	box AABB
}

// pairRecord carries one pair's state across frames. Geometry fields
// are stored with A as the lower-UID participant.
type pairRecord struct {
	state   PairState
	frame   uint64
	trigger bool
	gA, gB  *engine.GameObject
	cA, cB  *components.Collider
	normal  rl.Vector2 // points from B toward A
	relVel  rl.Vector2 // velocity of A relative to B
}

// WorldEvents are scene-level multicast hooks mirroring the per-script
// collision callbacks.
type WorldEvents struct {
	CollisionEnter engine.EventWithArg[engine.CollisionInfo]
	CollisionStay  engine.EventWithArg[engine.CollisionInfo]
	CollisionExit  engine.EventWithArg[engine.CollisionInfo]
	TriggerEnter   engine.EventWithArg[engine.CollisionInfo]
	TriggerStay    engine.EventWithArg[engine.CollisionInfo]
	TriggerExit    engine.EventWithArg[engine.CollisionInfo]
}

type PhysicsWorld struct {
	cfg   *config.Config
	scene *engine.Scene

	pairs map[PairKey]*pairRecord
	frame uint64

	Events WorldEvents

	// Scratch body for composite shape decomposition. One at a time;
	// TestCollision is not re-entrant.
	scratch    *engine.GameObject
	scratchCol *components.Collider

	// Reused per step.
	bodies   []bodyRef
	overlaps map[PairKey]*MTV
	grid     map[[2]int32][]int
	waters   []*fluid.Water
}

func NewPhysicsWorld(cfg *config.Config, scene *engine.Scene) *PhysicsWorld {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	scratch := engine.NewGameObject("physics-scratch")
	scratchCol := &components.Collider{Shape: components.ShapeBox}
	scratchCol.SetGameObject(scratch)
	return &PhysicsWorld{
		cfg:        cfg,
		scene:      scene,
		pairs:      make(map[PairKey]*pairRecord),
		scratch:    scratch,
		scratchCol: scratchCol,
		overlaps:   make(map[PairKey]*MTV),
		grid:       make(map[[2]int32][]int),
	}
}

func (w *PhysicsWorld) Scene() *engine.Scene {
	return w.scene
}

// Step advances the simulation by dt. Integration, narrow phase and
// resolution run once per sub-step; enter/stay/exit classification and
// event dispatch run once per full step on the final sub-step's overlap
// set, so sub-stepping never double-fires events.
func (w *PhysicsWorld) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.frame++
	w.gather()

	subSteps := w.cfg.SubSteps
	if subSteps < 1 {
		subSteps = 1
	}
	subDt := dt / float32(subSteps)

	obstacles := w.fluidObstacles()
	pushers := w.fluidPushers()

	for s := 0; s < subSteps; s++ {
		for i := range w.bodies {
			w.integrate(&w.bodies[i], subDt)
		}
		w.refreshAABBs()
		w.findOverlaps()
		for key, mtv := range w.overlaps {
			a, b := w.bodyByUID(key.A), w.bodyByUID(key.B)
			if a == nil || b == nil {
				continue
			}
			if !a.Col.IsTrigger && !b.Col.IsTrigger {
				w.resolveCollision(a, b, mtv)
			}
		}
		for i := range w.bodies {
			if rb := w.bodies[i].RB; rb != nil {
				rb.TrySleep(subDt)
			}
		}
	}

	for _, water := range w.waters {
		water.Step(dt, obstacles, pushers)
	}

	w.classifyAndDispatch()
}

// gather snapshots the scene's active bodies and water volumes.
func (w *PhysicsWorld) gather() {
	w.bodies = w.bodies[:0]
	w.waters = w.waters[:0]
	for _, g := range w.scene.ActiveObjects() {
		col := engine.GetComponent[*components.Collider](g)
		rb := engine.GetComponent[*components.Rigidbody](g)
		if col != nil {
			if col.Shape == components.ShapeLine && col.Thickness <= 0 {
				col.Thickness = w.cfg.LineThickness
			}
			w.bodies = append(w.bodies, bodyRef{G: g, RB: rb, Col: col})
		} else if rb != nil {
			w.bodies = append(w.bodies, bodyRef{G: g, RB: rb})
		}
		if wb := engine.GetComponent[*components.WaterBody](g); wb != nil {
			sim := wb.Sim()
			if !sim.Activated() {
				pos := g.WorldPosition()
				sim.Activate(pos.X, pos.Y)
			}
			sim.Gravity = w.cfg.Gravity.Y
			w.waters = append(w.waters, sim)
		}
	}
}

func (w *PhysicsWorld) bodyByUID(uid uint64) *bodyRef {
	for i := range w.bodies {
		if w.bodies[i].G.UID == uid {
			return &w.bodies[i]
		}
	}
	return nil
}

func (w *PhysicsWorld) integrate(b *bodyRef, dt float32) {
	rb := b.RB
	if rb == nil || rb.Kind == components.Static {
		return
	}
	if rb.IsSleeping {
		// Sleeping skips integration only. The narrow phase still
		// sees the body, so resting contacts keep reporting stay.
		return
	}

	if rb.Kind == components.Dynamic {
		rb.Velocity.X += w.cfg.Gravity.X * rb.GravityScale * dt
		rb.Velocity.Y += w.cfg.Gravity.Y * rb.GravityScale * dt
		w.applyBuoyancy(b, dt)

		if rb.LinearDrag > 0 {
			k := 1 - rb.LinearDrag*dt
			if k < 0 {
				k = 0
			}
			rb.Velocity = rl.Vector2Scale(rb.Velocity, k)
		}
		if rb.AngularDrag > 0 {
			k := 1 - rb.AngularDrag*dt
			if k < 0 {
				k = 0
			}
			rb.AngularVelocity *= k
		}
	}

	// Kinematic bodies move by their velocity untouched by forces.
	b.G.Transform.Position.X += rb.Velocity.X * dt
	b.G.Transform.Position.Y += rb.Velocity.Y * dt
	if !rb.FreezeRotation {
		b.G.Transform.Rotation += rb.AngularVelocity * dt
	}
}

func (w *PhysicsWorld) refreshAABBs() {
	for i := range w.bodies {
		if w.bodies[i].Col != nil {
			w.bodies[i].box = ColliderAABB(w.bodies[i].G, w.bodies[i].Col)
		}
	}
}

// findOverlaps rebuilds the broad-phase grid and narrow-tests candidate
// pairs, leaving the result in w.overlaps. Static-static pairs are
// skipped unless one side is a trigger.
func (w *PhysicsWorld) findOverlaps() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for k := range w.overlaps {
		delete(w.overlaps, k)
	}

	cell := w.cfg.CellSize
	if cell <= 0 {
		cell = 64
	}
	for i := range w.bodies {
		if w.bodies[i].Col == nil {
			continue
		}
		box := w.bodies[i].box
		minX := int32(box.Min.X / cell)
		maxX := int32(box.Max.X / cell)
		minY := int32(box.Min.Y / cell)
		maxY := int32(box.Max.Y / cell)
		for cy := minY; cy <= maxY; cy++ {
			for cx := minX; cx <= maxX; cx++ {
				k := [2]int32{cx, cy}
				w.grid[k] = append(w.grid[k], i)
			}
		}
	}

	tested := make(map[PairKey]bool)
	for _, cellBodies := range w.grid {
		for x := 0; x < len(cellBodies); x++ {
			for y := x + 1; y < len(cellBodies); y++ {
				a := &w.bodies[cellBodies[x]]
				b := &w.bodies[cellBodies[y]]
				key := makePairKey(a.G.UID, b.G.UID)
				if tested[key] {
					continue
				}
				tested[key] = true

				isTrigger := a.Col.IsTrigger || b.Col.IsTrigger
				if !isTrigger && !a.isDynamic() && !b.isDynamic() &&
					(a.RB == nil || a.RB.Kind != components.Kinematic) &&
					(b.RB == nil || b.RB.Kind != components.Kinematic) {
					continue
				}
				if !a.box.Intersects(b.box) {
					continue
				}

				// Keep MTV orientation tied to key order.
				first, second := a, b
				if key.A != a.G.UID {
					first, second = b, a
				}
				if mtv := w.TestCollision(first.G, first.Col, second.G, second.Col); mtv != nil {
					w.overlaps[key] = mtv
				}
			}
		}
	}
}

// classifyAndDispatch diffs the final sub-step's overlap set against
// the prior frame's pair table and fires enter/stay/exit exactly once
// per pair per step. Exit records are purged one frame after being
// reported.
func (w *PhysicsWorld) classifyAndDispatch() {
	for key, mtv := range w.overlaps {
		a, b := w.bodyByUID(key.A), w.bodyByUID(key.B)
		if a == nil || b == nil {
			continue
		}
		rec, known := w.pairs[key]
		state := StateEnter
		if known && rec.state != StateExit {
			state = StateStay
		}
		if !known {
			rec = &pairRecord{}
			w.pairs[key] = rec
		}
		rec.state = state
		rec.frame = w.frame
		rec.trigger = a.Col.IsTrigger || b.Col.IsTrigger
		rec.gA, rec.gB = a.G, b.G
		rec.cA, rec.cB = a.Col, b.Col
		rec.normal = mtv.Normal
		rec.relVel = relativeVelocity(a, b)

		w.dispatch(rec, state)
	}

	for key, rec := range w.pairs {
		if _, stillOverlapping := w.overlaps[key]; stillOverlapping {
			continue
		}
		switch {
		case rec.state == StateExit && rec.frame < w.frame:
			delete(w.pairs, key)
		case rec.state != StateExit:
			rec.state = StateExit
			rec.frame = w.frame
			w.dispatch(rec, StateExit)
		}
	}
}

func relativeVelocity(a, b *bodyRef) rl.Vector2 {
	var va, vb rl.Vector2
	if a.RB != nil {
		va = a.RB.Velocity
	}
	if b.RB != nil {
		vb = b.RB.Velocity
	}
	return rl.Vector2Subtract(va, vb)
}

// dispatch notifies both participants. The stored normal points from B
// toward A, so the second participant sees it inverted.
func (w *PhysicsWorld) dispatch(rec *pairRecord, state PairState) {
	infoA := engine.CollisionInfo{
		Other:            rec.gB,
		OtherTransform:   &rec.gB.Transform,
		OtherCollider:    rec.cB,
		Normal:           rec.normal,
		RelativeVelocity: rec.relVel,
	}
	infoB := engine.CollisionInfo{
		Other:            rec.gA,
		OtherTransform:   &rec.gA.Transform,
		OtherCollider:    rec.cA,
		Normal:           rl.Vector2Negate(rec.normal),
		RelativeVelocity: rl.Vector2Negate(rec.relVel),
	}
	w.notify(rec.gA, rec.trigger, state, infoA)
	w.notify(rec.gB, rec.trigger, state, infoB)
	w.fireEvent(rec.trigger, state, infoA)
}

func (w *PhysicsWorld) notify(g *engine.GameObject, trigger bool, state PairState, info engine.CollisionInfo) {
	for _, c := range g.Components() {
		w.callHandler(g, c, trigger, state, info)
	}
}

// callHandler isolates listener panics so one broken script cannot
// abort the remaining dispatches or the step.
func (w *PhysicsWorld) callHandler(g *engine.GameObject, c engine.Component, trigger bool, state PairState, info engine.CollisionInfo) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Physics: %s handler panic on %q: %v", state, g.Name, r)
		}
	}()

	if trigger {
		h, ok := c.(engine.TriggerHandler)
		if !ok {
			return
		}
		switch state {
		case StateEnter:
			h.OnTriggerEnter(info)
		case StateStay:
			h.OnTriggerStay(info)
		case StateExit:
			h.OnTriggerExit(info)
		}
		return
	}

	h, ok := c.(engine.CollisionHandler)
	if !ok {
		return
	}
	switch state {
	case StateEnter:
		h.OnCollisionEnter(info)
	case StateStay:
		h.OnCollisionStay(info)
	case StateExit:
		h.OnCollisionExit(info)
	}
}

func (w *PhysicsWorld) fireEvent(trigger bool, state PairState, info engine.CollisionInfo) {
	switch {
	case trigger && state == StateEnter:
		w.Events.TriggerEnter.Invoke(info)
	case trigger && state == StateStay:
		w.Events.TriggerStay.Invoke(info)
	case trigger:
		w.Events.TriggerExit.Invoke(info)
	case state == StateEnter:
		w.Events.CollisionEnter.Invoke(info)
	case state == StateStay:
		w.Events.CollisionStay.Invoke(info)
	default:
		w.Events.CollisionExit.Invoke(info)
	}
}

// Contacts returns collision records matching the filters. A nil body
// matches every pair; an empty tag matches every tag. The returned
// info is from the perspective of the queried body where one is given,
// otherwise from the lower-UID participant.
func (w *PhysicsWorld) Contacts(g *engine.GameObject, state PairState, trigger bool, tagFilter string) []engine.CollisionInfo {
	var out []engine.CollisionInfo
	for _, rec := range w.pairs {
		if rec.state != state || rec.trigger != trigger {
			continue
		}
		// Participants may have been destroyed since the pair was
		// recorded; skip those silently.
		if w.scene.FindByUID(rec.gA.UID) == nil || w.scene.FindByUID(rec.gB.UID) == nil {
			continue
		}

		var info engine.CollisionInfo
		switch {
		case g == nil || g.UID == rec.gA.UID:
			info = engine.CollisionInfo{
				Other: rec.gB, OtherTransform: &rec.gB.Transform, OtherCollider: rec.cB,
				Normal: rec.normal, RelativeVelocity: rec.relVel,
			}
		case g.UID == rec.gB.UID:
			info = engine.CollisionInfo{
				Other: rec.gA, OtherTransform: &rec.gA.Transform, OtherCollider: rec.cA,
				Normal: rl.Vector2Negate(rec.normal), RelativeVelocity: rl.Vector2Negate(rec.relVel),
			}
		default:
			continue
		}
		if tagFilter != "" && !info.Other.HasTag(tagFilter) {
			continue
		}
		out = append(out, info)
	}
	return out
}

// GetCollidableObjects implements engine.WorldAccess.
func (w *PhysicsWorld) GetCollidableObjects() []*engine.GameObject {
	var out []*engine.GameObject
	for _, g := range w.scene.ActiveObjects() {
		if engine.GetComponent[*components.Collider](g) != nil {
			out = append(out, g)
		}
	}
	return out
}

// SpawnObject implements engine.WorldAccess.
func (w *PhysicsWorld) SpawnObject(g *engine.GameObject) {
	w.scene.AddGameObject(g)
	g.Start()
}

// Destroy implements engine.WorldAccess.
func (w *PhysicsWorld) Destroy(g *engine.GameObject) {
	w.scene.RemoveGameObject(g)
}
