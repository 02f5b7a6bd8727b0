package panel

// RequestState tracks one kind of outbound request
type RequestState int

const (
	Idle RequestState = iota
	InFlight
)

func (s RequestState) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Guard allows one request at a time
type Guard struct {
	state RequestState
}

// Begin marks the guard in flight. It returns false if a request is already
// outstanding.
func (g *Guard) Begin() bool {
	if g.state == InFlight {
		return false
	}
	g.state = InFlight
	return true
}

// End returns the guard to idle
func (g *Guard) End() {
	g.state = Idle
}

// State returns the current request state
func (g *Guard) State() RequestState {
	return g.state
}

// SelectQueue serializes pattern selections. A choice made while another is
// in flight replaces any earlier pending choice and is sent when the current
// request completes.
type SelectQueue struct {
	guard      Guard
	pending    int
	hasPending bool
}

// Choose records a choice. It returns true if the caller should send it now.
func (q *SelectQueue) Choose(index int) bool {
	if q.guard.Begin() {
		return true
	}
	q.pending = index
	q.hasPending = true
	return false
}

// Done is called when the in-flight request completes. If a choice is
// pending it is returned and stays in flight; otherwise the queue goes idle.
func (q *SelectQueue) Done() (next int, ok bool) {
	if q.hasPending {
		q.hasPending = false
		return q.pending, true
	}
	q.guard.End()
	return 0, false
}

// State returns the queue's request state
func (q *SelectQueue) State() RequestState {
	return q.guard.State()
}

// Pending returns the queued choice, if any
func (q *SelectQueue) Pending() (int, bool) {
	return q.pending, q.hasPending
}
