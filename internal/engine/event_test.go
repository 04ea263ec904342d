package engine

import "testing"

func TestEventInvoke(t *testing.T) {
	var e Event
	count := 0

	e.AddListener(func() { count++ })
	e.AddListener(func() { count += 10 })
	e.AddListener(nil) // ignored

	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}

	e.Invoke()
	if count != 11 {
		t.Errorf("Expected count 11, got %d", count)
	}

	e.RemoveAllListeners()
	e.Invoke()
	if count != 11 {
		t.Error("Invoke after RemoveAllListeners should do nothing")
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[CollisionInfo]
	var got []string

	other := NewGameObject("Other")
	e.AddListener(func(info CollisionInfo) {
		got = append(got, info.Other.Name)
	})

	e.Invoke(CollisionInfo{Other: other})
	e.Invoke(CollisionInfo{Other: other})

	if len(got) != 2 || got[0] != "Other" {
		t.Errorf("Listener not invoked with the argument: %v", got)
	}
}
