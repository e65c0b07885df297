package supervisor

import (
	"sync"
	"time"

	"github.com/launchkit/launchkit/internal/process"
)

// Role keys registry entries. Today only the dev server role exists, but
// the registry is role-keyed so future service kinds slot in without a
// schema change.
type Role string

const RoleDevServer Role = "dev_server"

// ManagedProcess ties a live process handle to the spec that produced it
// and the lifecycle state the monitor maintains.
type ManagedProcess struct {
	Proc    Proc
	Spec    process.Spec
	Project string
	Stack   string

	mu          sync.Mutex
	state       State
	failure     FailureReason
	failureMsg  string
	readyAt     time.Time
	monitorDone chan struct{}
}

func (mp *ManagedProcess) State() State {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.state
}

func (mp *ManagedProcess) setState(s State) {
	mp.mu.Lock()
	mp.state = s
	if s == StateReady {
		mp.readyAt = time.Now()
	}
	mp.mu.Unlock()
}

// setFailed records the failure unless an explicit Stop already made the
// state terminal; Stopped is never overwritten.
func (mp *ManagedProcess) setFailed(reason FailureReason, msg string) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if mp.state == StateStopped {
		return
	}
	mp.state = StateFailed
	mp.failure = reason
	mp.failureMsg = msg
}

// Failure returns the reason and message once the state is Failed.
func (mp *ManagedProcess) Failure() (FailureReason, string) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.failure, mp.failureMsg
}

// ReadyAt returns when the readiness probe first succeeded.
func (mp *ManagedProcess) ReadyAt() time.Time {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.readyAt
}

// WaitMonitor blocks until the readiness monitor finished, for callers
// that need the launch outcome rather than fire-and-forget.
func (mp *ManagedProcess) WaitMonitor(d time.Duration) bool {
	if mp.monitorDone == nil {
		return true
	}
	if d < 0 {
		<-mp.monitorDone
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-mp.monitorDone:
		return true
	case <-timer.C:
		return false
	}
}

// Registry holds at most one entry per role. It is injectable so embedders
// and tests can share or isolate supervision scopes.
type Registry struct {
	mu      sync.Mutex
	entries map[Role]*ManagedProcess
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Role]*ManagedProcess)}
}

func (r *Registry) Get(role Role) (*ManagedProcess, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mp, ok := r.entries[role]
	return mp, ok
}

func (r *Registry) Put(role Role, mp *ManagedProcess) {
	r.mu.Lock()
	r.entries[role] = mp
	r.mu.Unlock()
}

// Remove drops the entry only when it still is mp, so a concurrent
// replacement is never clobbered.
func (r *Registry) Remove(role Role, mp *ManagedProcess) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.entries[role]; ok && cur == mp {
		delete(r.entries, role)
		return true
	}
	return false
}

// Drain empties the registry and returns what was in it.
func (r *Registry) Drain() []*ManagedProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ManagedProcess, 0, len(r.entries))
	for _, mp := range r.entries {
		out = append(out, mp)
	}
	r.entries = make(map[Role]*ManagedProcess)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
