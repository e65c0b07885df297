package process

import "sync"

// DefaultTailBytes bounds the in-memory capture of combined child output.
const DefaultTailBytes = 64 * 1024

// Tail is a bounded byte buffer that keeps only the most recent writes.
// The child's combined stdout+stderr is always drained through a Tail so
// the pipe never fills up and stalls the child.
type Tail struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func NewTail(maxBytes int) *Tail {
	if maxBytes <= 0 {
		maxBytes = DefaultTailBytes
	}
	return &Tail{max: maxBytes}
}

func (t *Tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

// String returns a copy of the buffered tail.
func (t *Tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

func (t *Tail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}
