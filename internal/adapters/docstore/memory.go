package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

var _ domain.DocumentStore = (*InMemoryStore)(nil)

// InMemoryStore keeps documents in process memory. It backs tests and the
// API when no database is configured.
type InMemoryStore struct {
	collections map[string]map[string]*domain.Document

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		collections: make(map[string]map[string]*domain.Document),
	}
}

func cloneDocument(d *domain.Document) *domain.Document {
	data := make(json.RawMessage, len(d.Data))
	copy(data, d.Data)
	return &domain.Document{ID: d.ID, Version: d.Version, Data: data, UpdatedAt: d.UpdatedAt}
}

func (s *InMemoryStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return cloneDocument(doc), nil
}

func (s *InMemoryStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*domain.Document, 0, len(s.collections[collection]))
	for _, d := range s.collections[collection] {
		docs = append(docs, cloneDocument(d))
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

func (s *InMemoryStore) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := NewDocumentID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(collection, id, data, 1)
	return id, nil
}

func (s *InMemoryStore) Set(ctx context.Context, collection, id string, data json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var version int64 = 1
	if existing, ok := s.collections[collection][id]; ok {
		version = existing.Version + 1
	}
	s.put(collection, id, data, version)
	return nil
}

func (s *InMemoryStore) SetIfVersion(ctx context.Context, collection, id string, version int64, data json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if existing.Version != version {
		return domain.ErrDocumentConflict
	}

	s.put(collection, id, data, version+1)
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrDocumentNotFound
	}

	delete(s.collections[collection], id)
	return nil
}

// put must be called with mu held.
func (s *InMemoryStore) put(collection, id string, data json.RawMessage, version int64) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*domain.Document)
		s.collections[collection] = docs
	}

	docs[id] = cloneDocument(&domain.Document{
		ID:        id,
		Version:   version,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	})
}
