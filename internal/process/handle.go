package process

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// Capture configures where the child's combined output goes. The in-memory
// tail is always on; a rotating file is optional.
type Capture struct {
	TailBytes int            // 0 means DefaultTailBytes
	File      io.WriteCloser // optional log file, closed when the child exits
}

// Handle owns one running dev-server process: the exec.Cmd, the combined
// output tail and the exit state. The goroutine started by Start is the
// only caller of cmd.Wait; everyone else observes the exit through
// waitDone, so Stop paths never race the reaper.
type Handle struct {
	mu        sync.Mutex
	pid       int
	startedAt time.Time
	stoppedAt time.Time
	exitErr   error
	exited    bool
	tail      *Tail
	file      io.WriteCloser
	waitDone  chan struct{}
}

func NewHandle() *Handle { return &Handle{} }

var ErrAlreadyStarted = errors.New("handle already started")

// Start launches the spec's command. env, when non-empty, is the child's
// full environment. stderr is folded into stdout and the single stream is
// drained into the tail so the pipe can never fill and stall the child.
func (h *Handle) Start(spec Spec, env []string, capture Capture) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.waitDone != nil {
		return ErrAlreadyStarted
	}
	cmd, err := spec.BuildCommand()
	if err != nil {
		return err
	}
	if len(env) > 0 {
		cmd.Env = env
	}
	configureSysProcAttr(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	h.pid = cmd.Process.Pid
	h.startedAt = time.Now()
	h.tail = NewTail(capture.TailBytes)
	h.file = capture.File
	h.waitDone = make(chan struct{})
	go h.drainAndWait(cmd, stdout)
	return nil
}

func (h *Handle) drainAndWait(cmd *exec.Cmd, r io.Reader) {
	var w io.Writer = h.tail
	if h.file != nil {
		w = io.MultiWriter(h.tail, h.file)
	}
	_, _ = io.Copy(w, r)
	err := cmd.Wait()
	h.mu.Lock()
	h.exited = true
	h.exitErr = err
	h.stoppedAt = time.Now()
	if h.file != nil {
		_ = h.file.Close()
	}
	done := h.waitDone
	h.mu.Unlock()
	close(done)
}

func (h *Handle) PID() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pid
}

func (h *Handle) StartedAt() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.startedAt
}

// ExitErr returns the child's wait error once it has exited, nil before.
func (h *Handle) ExitErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.exited {
		return nil
	}
	return h.exitErr
}

// Tail returns the captured combined output so far.
func (h *Handle) Tail() string {
	h.mu.Lock()
	t := h.tail
	h.mu.Unlock()
	if t == nil {
		return ""
	}
	return t.String()
}

// Alive reports whether the child is still running. The waitDone check
// catches exits we have reaped; the signal-0 probe catches everything else.
func (h *Handle) Alive() bool {
	h.mu.Lock()
	done, pid := h.waitDone, h.pid
	h.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
	}
	return processExists(pid)
}

// WaitExit blocks until the child exits or d elapses; d < 0 waits forever.
// Returns true when the child has exited.
func (h *Handle) WaitExit(d time.Duration) bool {
	h.mu.Lock()
	done := h.waitDone
	h.mu.Unlock()
	if done == nil {
		return true
	}
	if d < 0 {
		<-done
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// Terminate asks the child's process group to exit.
func (h *Handle) Terminate() error { return terminate(h.PID()) }

// Kill forcibly ends the child's process group.
func (h *Handle) Kill() error { return kill(h.PID()) }
