package supervisor

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/metrics"
)

// monitor polls the spec's URL until the server answers, the process dies,
// or the attempt budget runs out. It owns the Starting→Ready/Failed
// transition for its entry.
func (s *Supervisor) monitor(mp *ManagedProcess) {
	defer close(mp.monitorDone)
	start := time.Now()

	for attempt := 0; attempt < s.cfg.ReadinessAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.cfg.ReadinessInterval)
		}
		if mp.State() == StateStopped {
			// Stopped out from under us; nothing left to decide.
			return
		}
		if !mp.Proc.Alive() {
			s.fail(mp, ReasonDiedEarly, s.diedEarlyMessage(mp))
			return
		}
		ok, err := s.probe(mp.Spec.URL)
		if err != nil {
			if transientProbeError(err) {
				continue
			}
			s.fail(mp, ReasonProbe, fmt.Sprintf("readiness probe failed: %v", err))
			return
		}
		if ok {
			s.ready(mp, time.Since(start))
			return
		}
		// Server answered with a non-success status; it is up but not
		// healthy yet, so the attempt budget keeps ticking.
	}
	s.fail(mp, ReasonTimeout, fmt.Sprintf(
		"no successful response from %s after %d attempts", mp.Spec.URL, s.cfg.ReadinessAttempts))
}

// probe does one readiness GET. Success is any status below 400.
func (s *Supervisor) probe(url string) (bool, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 400, nil
}

// transientProbeError reports whether the probe failure just means the
// server is not listening yet. Connection refused/reset and timeouts are
// the normal sounds of a dev server booting; anything else (bad URL, DNS)
// will not fix itself by waiting.
func transientProbeError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}

func (s *Supervisor) ready(mp *ManagedProcess, waited time.Duration) {
	mp.setState(StateReady)
	metrics.ObserveReadinessWait(mp.Stack, waited.Seconds())
	s.emit(history.EventReady, mp, "")
	s.rep.Success(fmt.Sprintf("Development server ready at %s (pid %d)", mp.Spec.URL, mp.Proc.PID()))
	s.offerBrowser(mp.Spec.URL)
}

func (s *Supervisor) offerBrowser(url string) {
	if s.prompt == nil {
		return
	}
	if !s.prompt.Confirm(fmt.Sprintf("Open %s in your browser?", url), true) {
		return
	}
	if err := s.openURL(url); err != nil {
		s.rep.Warn(fmt.Sprintf("Could not open browser: %v", err))
	}
}

// fail ends a launch. Whatever output the child produced is attached as
// diagnostic context, and the child, if still alive, is terminated before
// the registry entry goes away so a failed launch never leaves an orphan.
func (s *Supervisor) fail(mp *ManagedProcess, reason FailureReason, msg string) {
	if mp.State() == StateStopped {
		// An explicit Stop won the race; this is not a failure.
		return
	}
	if tail := strings.TrimSpace(mp.Proc.Tail()); tail != "" {
		msg += "\nrecent output:\n" + tail
	}
	if mp.Proc.Alive() {
		_ = mp.Proc.Terminate()
		if !mp.Proc.WaitExit(s.cfg.CleanupGrace) {
			_ = mp.Proc.Kill()
			mp.Proc.WaitExit(s.cfg.CleanupGrace)
		}
	}
	mp.setFailed(reason, msg)
	s.reg.Remove(RoleDevServer, mp)
	metrics.IncLaunchFailure(mp.Stack, string(reason))
	metrics.SetRunning(false)
	s.emit(history.EventFailed, mp, msg)
	s.rep.Warn("Development server failed to start: " + msg)
}

// diedEarlyMessage describes the exit; fail attaches the output tail.
func (s *Supervisor) diedEarlyMessage(mp *ManagedProcess) string {
	msg := "process exited before becoming ready"
	if err := mp.Proc.ExitErr(); err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, err)
	}
	return msg
}
