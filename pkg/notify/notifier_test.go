package notify

import "testing"

// --- Notifier tests ---

func TestNotifier_SubscriptionOrder(t *testing.T) {
	n := NewNotifier()
	var order []int
	n.AddListener(func() { order = append(order, 1) })
	n.AddListener(func() { order = append(order, 2) })
	n.AddListener(func() { order = append(order, 3) })

	n.Notify()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected listeners in subscription order [1 2 3], got %v", order)
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()
	calls := 0
	unsub := n.AddListener(func() { calls++ })

	n.Notify()
	unsub()
	n.Notify()

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}
	if n.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", n.ListenerCount())
	}
}

func TestNotifier_UnsubscribeTwiceIsNoop(t *testing.T) {
	n := NewNotifier()
	n.AddListener(func() {})
	unsub := n.AddListener(func() {})

	unsub()
	unsub()

	if n.ListenerCount() != 1 {
		t.Errorf("expected 1 listener after double unsubscribe, got %d", n.ListenerCount())
	}
}

func TestNotifier_NilListener(t *testing.T) {
	n := NewNotifier()
	unsub := n.AddListener(nil)
	unsub() // must not panic

	if n.ListenerCount() != 0 {
		t.Errorf("nil listener should not be registered, got %d listeners", n.ListenerCount())
	}
	n.Notify()
}

func TestNotifier_RemoveDuringNotify(t *testing.T) {
	n := NewNotifier()
	var unsubSecond func()
	secondCalled := false

	n.AddListener(func() { unsubSecond() })
	unsubSecond = n.AddListener(func() { secondCalled = true })

	n.Notify()

	if secondCalled {
		t.Error("listener removed mid-pass by an earlier listener should be skipped")
	}
}

func TestNotifier_AddDuringNotify(t *testing.T) {
	n := NewNotifier()
	addedCalls := 0
	n.AddListener(func() {
		if n.ListenerCount() == 1 {
			n.AddListener(func() { addedCalls++ })
		}
	})

	n.Notify()
	if addedCalls != 0 {
		t.Errorf("listener added mid-pass must not fire in the same pass, got %d calls", addedCalls)
	}

	n.Notify()
	if addedCalls != 1 {
		t.Errorf("listener added in a previous pass should fire once, got %d calls", addedCalls)
	}
}

func TestNotifier_ReentrantNotify(t *testing.T) {
	n := NewNotifier()
	calls := 0
	n.AddListener(func() {
		calls++
		if calls == 1 {
			n.Notify()
		}
	})

	n.Notify()

	if calls != 2 {
		t.Errorf("expected 2 calls from re-entrant notify, got %d", calls)
	}
	if n.Revision() != 2 {
		t.Errorf("expected revision 2, got %d", n.Revision())
	}
}

func TestNotifier_Revision(t *testing.T) {
	n := NewNotifier()
	if n.Revision() != 0 {
		t.Errorf("expected initial revision 0, got %d", n.Revision())
	}

	n.Notify()
	n.Notify()

	if n.Revision() != 2 {
		t.Errorf("expected revision 2 after two notifications, got %d", n.Revision())
	}
}

func TestNotifier_NotifyWithoutListeners(t *testing.T) {
	n := NewNotifier()
	n.Notify() // must not panic
	if n.Revision() != 1 {
		t.Errorf("revision should advance even with no listeners, got %d", n.Revision())
	}
}
