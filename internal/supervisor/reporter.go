package supervisor

import "log/slog"

// slogReporter is the default Reporter for library embedders who never
// wire a terminal UI.
type slogReporter struct{}

func (slogReporter) Info(msg string)    { slog.Info(msg) }
func (slogReporter) Success(msg string) { slog.Info(msg) }
func (slogReporter) Warn(msg string)    { slog.Warn(msg) }
