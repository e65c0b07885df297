package history

import (
	"context"
	"log/slog"
	"time"
)

// EventType defines the kind of dev-server lifecycle event.
type EventType string

const (
	EventLaunched EventType = "launched"
	EventReady    EventType = "ready"
	EventFailed   EventType = "failed"
	EventStopped  EventType = "stopped"
)

// Record captures the dev-server facts carried with every event.
type Record struct {
	Project string `json:"project"`
	Stack   string `json:"stack"`
	PID     int    `json:"pid"`
	URL     string `json:"url"`
	Detail  string `json:"detail,omitempty"` // failure reason or stop mode
}

// Event represents one lifecycle transition exported to external systems.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Record     Record    `json:"record"`
}

// Sink is a destination for history events (analytics/statistics systems).
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}

// SendAll delivers e to every sink. Sink failures are logged, never
// propagated; history must not interfere with supervision.
func SendAll(ctx context.Context, sinks []Sink, e Event) {
	for _, s := range sinks {
		if err := s.Send(ctx, e); err != nil {
			slog.Warn("history sink send failed", "type", string(e.Type), "error", err)
		}
	}
}

// CloseAll closes every sink, logging failures.
func CloseAll(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			slog.Warn("history sink close failed", "error", err)
		}
	}
}
