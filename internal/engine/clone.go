package engine

import (
	"reflect"
	"sync/atomic"

	"github.com/jinzhu/copier"
)

// Clone makes a prefab-style deep copy of the object and its components.
// The copy gets a fresh UID, no scene, and no parent; children are cloned
// recursively. Component back-references are rewired to the copy.
func (g *GameObject) Clone() *GameObject {
	dst := &GameObject{
		UID:       atomic.AddUint64(&nextUID, 1),
		Name:      g.Name,
		Active:    g.Active,
		Transform: g.Transform,
	}
	dst.Tags = append([]string(nil), g.Tags...)

	for _, c := range g.components {
		copied := cloneComponent(c)
		if copied == nil {
			continue
		}
		dst.AddComponent(copied)
	}

	for _, child := range g.Children {
		dst.AddChild(child.Clone())
	}
	return dst
}

// cloneComponent deep-copies a component. Unexported fields (including the
// BaseComponent back-reference) are left zero; AddComponent rewires them.
func cloneComponent(c Component) Component {
	t := reflect.TypeOf(c)
	if t.Kind() != reflect.Pointer {
		return nil
	}
	dst := reflect.New(t.Elem()).Interface()
	if err := copier.CopyWithOption(dst, c, copier.Option{DeepCopy: true}); err != nil {
		return nil
	}
	out, _ := dst.(Component)
	return out
}
