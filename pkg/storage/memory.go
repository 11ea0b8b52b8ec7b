package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/dd0wney/hydronet/pkg/network"
)

// MemoryStore keeps everything in process memory. Ids are monotonic per
// entity kind and never reused.
type MemoryStore struct {
	elements map[int64]*network.Element
	nodes    map[int64]*network.SystemNode
	dams     map[int64]*network.Dam

	nextElementID int64
	nextNodeID    int64
	nextDamID     int64

	closed bool
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		elements: make(map[int64]*network.Element),
		nodes:    make(map[int64]*network.SystemNode),
		dams:     make(map[int64]*network.Dam),
	}
}

func (s *MemoryStore) ListElements(ctx context.Context) ([]*network.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	out := make([]*network.Element, 0, len(s.elements))
	for _, e := range s.elements {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateElement(ctx context.Context, e *network.Element) (*network.Element, error) {
	if e == nil {
		return nil, &StorageError{Op: "create", Entity: "element", Cause: ErrInvalidID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	s.nextElementID++
	stored := e.Clone()
	stored.ID = s.nextElementID
	s.elements[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *MemoryStore) DeleteElement(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStorageClosed
	}

	if _, ok := s.elements[id]; !ok {
		return NotFoundError("delete", "element", id)
	}
	delete(s.elements, id)
	return nil
}

func (s *MemoryStore) ListNodes(ctx context.Context) ([]*network.SystemNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	out := make([]*network.SystemNode, 0, len(s.nodes))
	for _, n := range s.nodes {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateNode(ctx context.Context, n *network.SystemNode) (*network.SystemNode, error) {
	if n == nil {
		return nil, &StorageError{Op: "create", Entity: "node", Cause: ErrInvalidID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	s.nextNodeID++
	stored := *n
	stored.ID = s.nextNodeID
	s.nodes[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *MemoryStore) ListDams(ctx context.Context) ([]*network.Dam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	out := make([]*network.Dam, 0, len(s.dams))
	for _, d := range s.dams {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateDam(ctx context.Context, d *network.Dam) (*network.Dam, error) {
	if d == nil {
		return nil, &StorageError{Op: "create", Entity: "dam", Cause: ErrInvalidID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStorageClosed
	}

	s.nextDamID++
	stored := *d
	stored.ID = s.nextDamID
	if stored.Status == "" {
		stored.Status = network.DamNormal
	}
	s.dams[stored.ID] = &stored
	out := stored
	return &out, nil
}

// Ping always succeeds until the store is closed
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStorageClosed
	}
	return nil
}

// Close marks the store closed; later calls fail with ErrStorageClosed
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
