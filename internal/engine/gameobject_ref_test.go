package engine

import "testing"

func TestGameObjectRefGet(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Target")
	scene.AddGameObject(obj)

	ref := GameObjectRef{UID: obj.UID}

	found := ref.Get(scene)
	if found != obj {
		t.Errorf("Get() failed: expected %v, got %v", obj, found)
	}
}

func TestGameObjectRefGetNil(t *testing.T) {
	scene := NewScene("Test")
	ref := GameObjectRef{UID: 0}

	if ref.Get(scene) != nil {
		t.Error("Get() with UID=0 should return nil")
	}

	ref2 := GameObjectRef{UID: 99999}
	if ref2.Get(scene) != nil {
		t.Error("Get() with non-existent UID should return nil")
	}

	ref3 := GameObjectRef{UID: 123}
	if ref3.Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
}

func TestGameObjectRefIsValid(t *testing.T) {
	validRef := GameObjectRef{UID: 123}
	if !validRef.IsValid() {
		t.Error("GameObjectRef with UID > 0 should be valid")
	}

	invalidRef := GameObjectRef{UID: 0}
	if invalidRef.IsValid() {
		t.Error("GameObjectRef with UID = 0 should be invalid")
	}
}

func TestGameObjectRefSetAndClear(t *testing.T) {
	obj := NewGameObject("Target")

	var ref GameObjectRef
	ref.Set(obj)
	if ref.UID != obj.UID {
		t.Errorf("Set should store UID %d, got %d", obj.UID, ref.UID)
	}

	ref.Clear()
	if ref.UID != 0 {
		t.Error("Clear should zero the UID")
	}

	ref.Set(obj)
	ref.Set(nil)
	if ref.UID != 0 {
		t.Error("Set(nil) should clear the reference")
	}
}

func TestGameObjectRefStaleAfterRemoval(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Target")
	scene.AddGameObject(obj)

	var ref GameObjectRef
	ref.Set(obj)

	scene.RemoveGameObject(obj)

	if ref.Get(scene) != nil {
		t.Error("Get() should return nil after the object is removed")
	}
	if !ref.IsValid() {
		t.Error("IsValid() only checks the UID, not scene membership")
	}
}
