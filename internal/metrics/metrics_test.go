package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestHelpersAfterRegister(t *testing.T) {
	_ = Register(prometheus.NewRegistry())
	// Must not panic.
	IncLaunch("Flask (Python)")
	IncLaunchFailure("Flask (Python)", "died_early")
	IncStop("Flask (Python)", true)
	IncStop("Flask (Python)", false)
	ObserveReadinessWait("Flask (Python)", 1.5)
	SetRunning(true)
	SetRunning(false)
}

func TestHandlerNonNil(t *testing.T) {
	if Handler() == nil {
		t.Fatal("nil metrics handler")
	}
}
