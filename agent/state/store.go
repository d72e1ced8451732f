package state

import (
	"context"
	"sync"
)

// Store is the persistence contract for template snapshots, keyed by
// workspace. Save must install the snapshot as a whole replacement value.
type Store interface {
	Load(ctx context.Context, workspaceID string) (*TemplateSnapshot, error)
	Save(ctx context.Context, workspaceID string, snapshot *TemplateSnapshot) error
	Delete(ctx context.Context, workspaceID string) error
}

// MemoryStore keeps snapshots in process memory. Values are stored by
// pointer and never mutated after Save, so readers holding a snapshot keep a
// consistent view across concurrent re-analyses.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*TemplateSnapshot
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]*TemplateSnapshot)}
}

func (s *MemoryStore) Load(ctx context.Context, workspaceID string) (*TemplateSnapshot, error) {
	if workspaceID == "" {
		return nil, ErrInvalidWorkspace
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[workspaceID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *MemoryStore) Save(ctx context.Context, workspaceID string, snapshot *TemplateSnapshot) error {
	if workspaceID == "" {
		return ErrInvalidWorkspace
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[workspaceID] = snapshot
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, workspaceID string) error {
	if workspaceID == "" {
		return ErrInvalidWorkspace
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, workspaceID)
	return nil
}
