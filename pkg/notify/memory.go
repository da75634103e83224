package notify

import (
	"context"
	"sync"
)

// MemorySink records notifications in memory. Used in tests and as the
// fallback when no broker is configured.
type MemorySink struct {
	mu      sync.Mutex
	toasts  []Toast
	tabs    []string
	project string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Toast(_ context.Context, projectID string, toast Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = projectID
	s.toasts = append(s.toasts, toast)
}

func (s *MemorySink) SwitchTab(_ context.Context, projectID, tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = projectID
	s.tabs = append(s.tabs, tab)
}

// Toasts returns a copy of the recorded toasts.
func (s *MemorySink) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Tabs returns a copy of the recorded tab switches.
func (s *MemorySink) Tabs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.tabs))
	copy(out, s.tabs)
	return out
}
