package dashboard

import "sync"

// sequencer hands out increasing tokens per view target so that a response
// arriving after a newer request for the same target can be dropped.
type sequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newSequencer() *sequencer {
	return &sequencer{latest: make(map[string]uint64)}
}

func (s *sequencer) next(target string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[target]++
	return s.latest[target]
}

func (s *sequencer) isLatest(target string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[target] == token
}
