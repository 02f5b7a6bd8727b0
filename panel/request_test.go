package panel

import "testing"

func TestGuardBlocksSecondRequest(t *testing.T) {
	var g Guard
	if !g.Begin() {
		t.Fatal("first Begin() = false")
	}
	if g.Begin() {
		t.Fatal("second Begin() = true while in flight")
	}
	if g.State() != InFlight {
		t.Fatalf("state = %v, want in-flight", g.State())
	}
	g.End()
	if !g.Begin() {
		t.Fatal("Begin() after End() = false")
	}
}

func TestSelectQueueCoalescesToLatest(t *testing.T) {
	var q SelectQueue
	if !q.Choose(3) {
		t.Fatal("first choice not sent")
	}
	if q.Choose(5) || q.Choose(9) {
		t.Fatal("choice sent while another in flight")
	}
	next, ok := q.Done()
	if !ok || next != 9 {
		t.Fatalf("Done() = %d, %v, want 9, true", next, ok)
	}
	if q.State() != InFlight {
		t.Fatal("queue went idle while sending pending choice")
	}
	if _, ok := q.Done(); ok {
		t.Fatal("Done() returned a second pending choice")
	}
	if q.State() != Idle {
		t.Fatalf("state = %v, want idle", q.State())
	}
}
