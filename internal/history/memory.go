package history

import "sync"

// MemoryStore keeps history in process memory. It backs tests and the
// --ephemeral flag, where a run should leave no trace on disk.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	points  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{entry}, s.entries...)
	s.points += entry.Points
	return nil
}

func (s *MemoryStore) Entries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) TotalPoints() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points, nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.points = 0
	return nil
}

func (s *MemoryStore) Close() error { return nil }
