package state

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-style/layering"
)

// MemoryStore is an in-memory Store keyed by Ref.Identifier. Snapshots are
// deep-copied on the way in and out, so callers may keep mutating theirs.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]memoryRecord[T]
	now     func() time.Time
}

type memoryRecord[T any] struct {
	ref      Ref
	snapshot T
	meta     Meta
}

// NewMemoryStore returns an empty store.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]memoryRecord[T]{}, now: time.Now}
}

// Load returns the snapshot stored for ref. The boolean is false when
// nothing is stored.
func (s *MemoryStore[T]) Load(_ context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	key, err := ref.Identifier()
	if err != nil {
		return zero, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return zero, Meta{}, false, nil
	}
	return layering.Clone(record.snapshot), cloneMeta(record.meta), true, nil
}

// Save replaces the snapshot for ref. An empty SnapshotID defaults to the
// ref identifier and a zero UpdatedAt to the current time.
func (s *MemoryStore[T]) Save(_ context.Context, ref Ref, snapshot T, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}
	ref.Theme = strings.TrimSpace(ref.Theme)
	meta = cloneMeta(meta)
	if meta.SnapshotID == "" {
		meta.SnapshotID = key
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = s.now()
	}

	s.mu.Lock()
	s.records[key] = memoryRecord[T]{ref: ref, snapshot: layering.Clone(snapshot), meta: meta}
	s.mu.Unlock()
	return cloneMeta(meta), nil
}

// Delete removes the snapshot for ref and reports whether one existed.
func (s *MemoryStore[T]) Delete(_ context.Context, ref Ref) (bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	delete(s.records, key)
	return ok, nil
}

// Themes lists the distinct theme names with at least one stored namespace.
func (s *MemoryStore[T]) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, record := range s.records {
		seen[record.ref.Theme] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

func cloneMeta(meta Meta) Meta {
	meta.Extra = maps.Clone(meta.Extra)
	return meta
}
