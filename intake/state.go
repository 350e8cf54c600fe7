package intake

// Phase is the lifecycle position of a submission attempt
type Phase uint8

const (
	// PhaseIdle is the state before any submit
	PhaseIdle Phase = iota
	// PhasePending means a request is in flight
	PhasePending
	// PhaseSucceeded is terminal; no further attempt may start
	PhaseSucceeded
	// PhaseFailed carries a user-facing message; a new attempt may start
	PhaseFailed
)

// String returns the string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanTransitionTo returns true if the attempt can move to the target phase
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseIdle, PhaseFailed:
		return target == PhasePending || target == PhaseFailed
	case PhasePending:
		return target == PhaseSucceeded || target == PhaseFailed
	default:
		return false
	}
}

// State is the tagged submission state. Only Failed carries a message.
type State struct {
	phase   Phase
	message string
}

// Idle is the state before any submit
func Idle() State {
	return State{phase: PhaseIdle}
}

// Pending is the state while a request is in flight
func Pending() State {
	return State{phase: PhasePending}
}

// Succeeded is the terminal state after the server accepted the profile
func Succeeded() State {
	return State{phase: PhaseSucceeded}
}

// Failed carries the message shown to the user
func Failed(message string) State {
	return State{phase: PhaseFailed, message: message}
}

// Phase returns the lifecycle position of the state
func (s State) Phase() Phase {
	return s.phase
}

// Message returns the failure message, empty for any other phase
func (s State) Message() string {
	return s.message
}

// CanSubmit returns true if a submit trigger would be acted upon
func (s State) CanSubmit() bool {
	return s.phase == PhaseIdle || s.phase == PhaseFailed
}

// IsPending returns true while a request is in flight
func (s State) IsPending() bool {
	return s.phase == PhasePending
}

// IsSucceeded returns true once the profile was accepted
func (s State) IsSucceeded() bool {
	return s.phase == PhaseSucceeded
}

// IsFailed returns true if the last attempt failed
func (s State) IsFailed() bool {
	return s.phase == PhaseFailed
}

// String returns the phase, followed by the message when Failed
func (s State) String() string {
	if s.phase == PhaseFailed {
		return s.phase.String() + ": " + s.message
	}
	return s.phase.String()
}
