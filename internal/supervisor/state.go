package supervisor

// State tracks a managed dev server through its lifecycle. Transitions are
// one-way: Starting goes to Ready or Failed, Ready and Starting can go to
// Stopped. There is no path out of Failed or Stopped.
type State int32

const (
	StateStarting State = iota
	StateReady
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FailureReason classifies why a launch ended Failed.
type FailureReason string

const (
	ReasonDiedEarly FailureReason = "died_early"
	ReasonTimeout   FailureReason = "readiness_timeout"
	ReasonProbe     FailureReason = "probe_error"
)
