package env

import (
	"os"
	"sort"
	"strings"
)

// Env layers environment sources for launched dev servers: the OS
// environment at the bottom, session-wide globals above it, then the
// per-launch overrides from the stack table. Later layers win.
type Env struct {
	base   []string
	global map[string]string
}

// FromOS snapshots the current process environment as the base layer.
func FromOS() *Env {
	return &Env{base: os.Environ(), global: map[string]string{}}
}

// New builds an Env over an explicit base, for tests.
func New(base []string) *Env {
	return &Env{base: append([]string(nil), base...), global: map[string]string{}}
}

// SetGlobal sets a session-wide variable applied to every launch.
func (e *Env) SetGlobal(key, value string) {
	e.global[key] = value
}

// Merge flattens the layers plus the given per-launch overrides into a
// KEY=VALUE slice suitable for exec.Cmd.Env. Override values may reference
// lower-layer variables with ${VAR} or $VAR.
func (e *Env) Merge(overrides map[string]string) []string {
	merged := make(map[string]string, len(e.base)+len(e.global)+len(overrides))
	for _, kv := range e.base {
		if i := strings.IndexByte(kv, '='); i > 0 {
			merged[kv[:i]] = kv[i+1:]
		}
	}
	lookup := func(k string) string { return merged[k] }
	for k, v := range e.global {
		merged[k] = os.Expand(v, lookup)
	}
	for k, v := range overrides {
		merged[k] = os.Expand(v, lookup)
	}
	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
