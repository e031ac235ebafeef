package history

import (
	"sync"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// MemoryStore is the process-lifetime record list, newest first. It is safe
// for concurrent use; restart clears it.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*analysis.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append inserts the record at the head.
func (s *MemoryStore) Append(rec *analysis.Record) {
	s.mu.Lock()
	s.records = append([]*analysis.Record{rec}, s.records...)
	s.mu.Unlock()
}

// List returns a copy of the full ordered sequence, newest first.
func (s *MemoryStore) List() []*analysis.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*analysis.Record, len(s.records))
	copy(out, s.records)
	return out
}
