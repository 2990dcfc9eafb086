package lifecycle

// Transition defines a valid state change on the live board
type Transition struct {
	From Status
	To   Status
}

// validTransitions is the authoritative state machine definition:
// preparing → ready → completed, with cancellation possible until an
// order reaches a terminal state.
var validTransitions = []Transition{
	{From: StatusPreparing, To: StatusReady},
	{From: StatusPreparing, To: StatusCancelled},
	{From: StatusReady, To: StatusCompleted},
	{From: StatusReady, To: StatusCancelled},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// CanTransition reports whether moving from one state to another is allowed.
// Terminal states accept nothing; the engine treats a rejected transition as
// a silent no-op rather than an error.
func CanTransition(from, to Status) bool {
	return transitionMap[Transition{From: from, To: to}]
}

// IsTerminal reports whether a state accepts no further transitions
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status Status) []Status {
	var nexts []Status
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// AllTransitions returns the full state machine for documentation endpoints
func AllTransitions() []Transition {
	return validTransitions
}
