package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

type object struct {
	data        []byte
	contentType string
}

// MemoryStore keeps uploads in process memory for the lifetime of the
// request flow. No retention guarantee; restart clears everything.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]object),
		baseURL: baseURL,
	}
}

// Save buffers the file and returns a /uploads URL the router serves back.
func (s *MemoryStore) Save(_ context.Context, filename, contentType string, data []byte) (*analysis.StoredFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	key := uuid.New().String()

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = object{data: buf, contentType: contentType}
	s.mu.Unlock()

	return &analysis.StoredFile{
		URL:         fmt.Sprintf("%s/uploads/%s", s.baseURL, key),
		Filename:    filename,
		ContentType: contentType,
	}, nil
}

func (s *MemoryStore) Open(key string) ([]byte, string, bool) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}
