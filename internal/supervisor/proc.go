package supervisor

import (
	"time"

	"github.com/launchkit/launchkit/internal/process"
)

// Proc is the slice of a process handle the supervisor needs. Production
// code uses *process.Handle; tests substitute fakes to assert signalling
// behavior without real children.
type Proc interface {
	PID() int
	StartedAt() time.Time
	Alive() bool
	Terminate() error
	Kill() error
	WaitExit(d time.Duration) bool
	Tail() string
	ExitErr() error
}

var _ Proc = (*process.Handle)(nil)

func startHandle(spec process.Spec, env []string, capture process.Capture) (Proc, error) {
	h := process.NewHandle()
	if err := h.Start(spec, env, capture); err != nil {
		return nil, err
	}
	return h, nil
}
