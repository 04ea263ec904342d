package engine

import "fmt"

// Serializable is implemented by components that round-trip through scene files.
type Serializable interface {
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any)
}

var componentRegistry = map[string]func() Serializable{}

// RegisterComponent registers a named component constructor used when loading
// scene files. Typically called from an init() in the components package.
func RegisterComponent(name string, factory func() Serializable) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent instantiates a registered component by type name.
func CreateComponent(name string) Serializable {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil
	}
	return factory()
}
