package components

import (
	"sim2d/internal/config"
	"sim2d/internal/engine"
	"sim2d/internal/fluid"
)

func init() {
	engine.RegisterComponent("WaterBody", func() engine.Serializable {
		return &WaterBody{Settings: config.Default().Water}
	})
}

// WaterBody attaches a particle water volume to a game object. The
// particle grid spans Width x Height from the object's world position
// and moves to world space the first frame the component updates.
type WaterBody struct {
	engine.BaseComponent
	Width, Height float32
	Settings      config.Water
	Gravity       float32

	sim *fluid.Water
}

func NewWaterBody(width, height float32, settings config.Water) *WaterBody {
	return &WaterBody{Width: width, Height: height, Settings: settings}
}

func (w *WaterBody) Start() {
	if w.sim == nil {
		w.sim = fluid.NewWater(w.Settings, w.Width, w.Height)
	}
	w.sim.Gravity = w.Gravity
}

func (w *WaterBody) Update(deltaTime float32) {
	if w.sim == nil {
		return
	}
	if !w.sim.Activated() {
		pos := w.GetGameObject().WorldPosition()
		w.sim.Activate(pos.X, pos.Y)
	}
}

// Sim returns the underlying particle simulation, creating it on first
// use so physics can step water before the scene's Start pass runs.
func (w *WaterBody) Sim() *fluid.Water {
	if w.sim == nil {
		w.sim = fluid.NewWater(w.Settings, w.Width, w.Height)
		w.sim.Gravity = w.Gravity
	}
	return w.sim
}

// SetSize resizes the declared extent, regenerating particles.
func (w *WaterBody) SetSize(width, height float32) {
	w.Width = width
	w.Height = height
	if w.sim != nil {
		w.sim.Resize(width, height)
	}
}

// TypeName implements engine.Serializable
func (w *WaterBody) TypeName() string {
	return "WaterBody"
}

// Serialize implements engine.Serializable
func (w *WaterBody) Serialize() map[string]any {
	return map[string]any{
		"type":   "WaterBody",
		"width":  w.Width,
		"height": w.Height,
	}
}

// Deserialize implements engine.Serializable
func (w *WaterBody) Deserialize(data map[string]any) {
	w.Width = floatFromAny(data["width"])
	w.Height = floatFromAny(data["height"])
}
