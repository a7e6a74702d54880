// Package storage provides object storage implementations for export artifacts.
package storage

import (
	"context"
	"errors"
	"sync"

	appreport "github.com/lendledger/backend/internal/application/report"
)

// Ensure InMemoryArtifactStorage implements ArtifactStore
var _ appreport.ArtifactStore = (*InMemoryArtifactStorage)(nil)

// storedArtifact is an archived artifact held in memory
type storedArtifact struct {
	data        []byte
	contentType string
}

// InMemoryArtifactStorage keeps artifacts in a map. Use it for
// development and tests when no S3-compatible backend is configured;
// archived exports are lost on restart.
type InMemoryArtifactStorage struct {
	mu        sync.RWMutex
	artifacts map[string]storedArtifact
}

// NewInMemoryArtifactStorage creates a new InMemoryArtifactStorage
func NewInMemoryArtifactStorage() *InMemoryArtifactStorage {
	return &InMemoryArtifactStorage{
		artifacts: make(map[string]storedArtifact),
	}
}

// Upload stores an artifact under the given key
func (s *InMemoryArtifactStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[storageKey] = storedArtifact{data: stored, contentType: contentType}
	return nil
}

// Get returns the stored artifact and whether it exists
func (s *InMemoryArtifactStorage) Get(storageKey string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.artifacts[storageKey]
	if !ok {
		return nil, "", false
	}
	return artifact.data, artifact.contentType, true
}

// ObjectExists checks if an artifact exists
func (s *InMemoryArtifactStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.artifacts[storageKey]
	return ok, nil
}

// DeleteObject removes an artifact
func (s *InMemoryArtifactStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, storageKey)
	return nil
}

// Size returns the number of stored artifacts (for testing/monitoring)
func (s *InMemoryArtifactStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.artifacts)
}
