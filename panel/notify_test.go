package panel

import "testing"

func TestNotificationsLifecycle(t *testing.T) {
	var n Notifications
	a := n.Push(MsgSelectOK, NotifySuccess)
	b := n.Push(MsgSaveFail, NotifyError)
	if n.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", n.Len())
	}
	if a == b {
		t.Fatal("notifications share an id")
	}

	if !n.Hide(a) {
		t.Fatal("Hide(a) = false")
	}
	items := n.Items()
	if !items[0].Leaving || items[1].Leaving {
		t.Fatalf("leaving flags = %v, %v", items[0].Leaving, items[1].Leaving)
	}

	if !n.Remove(a) {
		t.Fatal("Remove(a) = false")
	}
	if n.Remove(a) {
		t.Fatal("Remove(a) twice = true")
	}
	last, ok := n.Last()
	if !ok || last.ID != b || last.Kind != NotifyError {
		t.Fatalf("Last() = %+v, %v", last, ok)
	}
}
