package viewer

import "sync"

// OpenState records explicit open/close toggles by node path. Nodes without
// a toggle follow the depth limit.
type OpenState struct {
	mu        sync.RWMutex
	overrides map[string]bool
}

func NewOpenState() *OpenState {
	return &OpenState{overrides: make(map[string]bool)}
}

func defaultOpen(depth, limit int) bool {
	return limit == Unlimited || depth < limit
}

func (s *OpenState) IsOpen(path string, depth, limit int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if open, ok := s.overrides[path]; ok {
		return open
	}
	return defaultOpen(depth, limit)
}

// Toggle flips the node at path and returns its new state.
func (s *OpenState) Toggle(path string, depth, limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	open, ok := s.overrides[path]
	if !ok {
		open = defaultOpen(depth, limit)
	}
	s.overrides[path] = !open
	return !open
}

func (s *OpenState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]bool)
}

// ToggleLine flips a rendered container row.
func (s *OpenState) ToggleLine(l Line, limit int) bool {
	return s.Toggle(l.Path, l.Depth, limit)
}
