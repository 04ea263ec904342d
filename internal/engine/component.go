package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// CollisionInfo is passed to collision and trigger callbacks. Normal points
// from the other body toward the receiving body.
type CollisionInfo struct {
	Other            *GameObject
	OtherTransform   *Transform
	OtherCollider    Component
	Normal           rl.Vector2
	RelativeVelocity rl.Vector2
}

// CollisionHandler is implemented by components that want to receive solid
// collision callbacks. Scripts can implement these methods to react to contacts.
type CollisionHandler interface {
	OnCollisionEnter(info CollisionInfo)
	OnCollisionStay(info CollisionInfo)
	OnCollisionExit(info CollisionInfo)
}

// TriggerHandler is implemented by components that want to receive overlap
// callbacks from trigger colliders. Triggers never resolve physically.
type TriggerHandler interface {
	OnTriggerEnter(info CollisionInfo)
	OnTriggerStay(info CollisionInfo)
	OnTriggerExit(info CollisionInfo)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
