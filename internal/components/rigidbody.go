package components

import (
	"sim2d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

type BodyKind int

const (
	Dynamic BodyKind = iota
	Kinematic
	Static
)

func (k BodyKind) String() string {
	switch k {
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return "dynamic"
	}
}

func BodyKindFromString(s string) BodyKind {
	switch s {
	case "kinematic":
		return Kinematic
	case "static":
		return Static
	default:
		return Dynamic
	}
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping

	// MinMass is the floor used when dividing by mass for force application.
	MinMass = 0.1
)

type Rigidbody struct {
	engine.BaseComponent
	Kind            BodyKind
	Mass            float32
	Velocity        rl.Vector2
	AngularVelocity float32 // degrees per second
	GravityScale    float32
	LinearDrag      float32
	AngularDrag     float32
	Restitution     float32 // 0 = no bounce, 1 = perfect bounce
	FreezeRotation  bool
	// Per-axis position freezes are declared for completeness but not
	// enforced; only FreezeRotation affects resolution.
	FreezeX bool
	FreezeY bool

	// Buoyancy: weight above SinkThreshold sinks, below floats.
	BuoyancyWeight float32
	SinkThreshold  float32

	// Sleep state - sleeping objects skip integration but keep colliding,
	// so resting contacts continue to report Stay.
	IsSleeping bool
	sleepTimer float32
	CanSleep   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Kind:          Dynamic,
		Mass:          1.0,
		GravityScale:  1.0,
		Restitution:   0.0,
		SinkThreshold: 0.5,
		CanSleep:      true,
	}
}

// EffectiveMass clamps mass to the minimum used for force application.
func (r *Rigidbody) EffectiveMass() float32 {
	if r.Mass < MinMass {
		return MinMass
	}
	return r.Mass
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping || r.Kind != Dynamic {
		return
	}

	speed := rl.Vector2Length(r.Velocity)
	angSpeed := math32.Abs(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping near rest to reduce jitter
		r.Velocity = rl.Vector2Scale(r.Velocity, 0.9)
		r.AngularVelocity *= 0.9

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector2{}
			r.AngularVelocity = 0
		}
	} else {
		r.sleepTimer = 0
	}
}

// TypeName implements engine.Serializable
func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

// Serialize implements engine.Serializable
func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"type":           "Rigidbody",
		"kind":           r.Kind.String(),
		"mass":           r.Mass,
		"gravityScale":   r.GravityScale,
		"linearDrag":     r.LinearDrag,
		"angularDrag":    r.AngularDrag,
		"restitution":    r.Restitution,
		"freezeRotation": r.FreezeRotation,
		"buoyancyWeight": r.BuoyancyWeight,
		"sinkThreshold":  r.SinkThreshold,
	}
}

// Deserialize implements engine.Serializable
func (r *Rigidbody) Deserialize(data map[string]any) {
	if k, ok := data["kind"].(string); ok {
		r.Kind = BodyKindFromString(k)
	}
	if m, ok := data["mass"].(float64); ok {
		r.Mass = float32(m)
	}
	if g, ok := data["gravityScale"].(float64); ok {
		r.GravityScale = float32(g)
	}
	if d, ok := data["linearDrag"].(float64); ok {
		r.LinearDrag = float32(d)
	}
	if d, ok := data["angularDrag"].(float64); ok {
		r.AngularDrag = float32(d)
	}
	if e, ok := data["restitution"].(float64); ok {
		r.Restitution = float32(e)
	}
	if f, ok := data["freezeRotation"].(bool); ok {
		r.FreezeRotation = f
	}
	if b, ok := data["buoyancyWeight"].(float64); ok {
		r.BuoyancyWeight = float32(b)
	}
	if s, ok := data["sinkThreshold"].(float64); ok {
		r.SinkThreshold = float32(s)
	}
}
