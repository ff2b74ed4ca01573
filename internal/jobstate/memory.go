package jobstate

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu       sync.Mutex
	saved    map[uint]map[string]struct{}
	searches map[uint][]string
	counts   map[uint]TabCounts
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		saved:    map[uint]map[string]struct{}{},
		searches: map[uint][]string{},
		counts:   map[uint]TabCounts{},
	}
}

// ====================================================
// Saved jobs
// ====================================================

func (m *MemoryStore) SavedJobs(_ context.Context, userID uint) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.saved[userID]))
	for id := range m.saved[userID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) InitSavedJobs(_ context.Context, userID uint, jobIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	m.saved[userID] = set
	return nil
}

func (m *MemoryStore) SaveJob(_ context.Context, userID uint, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saved[userID] == nil {
		m.saved[userID] = map[string]struct{}{}
	}
	m.saved[userID][jobID] = struct{}{}
	return nil
}

func (m *MemoryStore) UnsaveJob(_ context.Context, userID uint, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.saved[userID], jobID)
	return nil
}

func (m *MemoryStore) ResetSavedJobs(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.saved, userID)
	return nil
}

// ====================================================
// Recent searches
// ====================================================

func (m *MemoryStore) RecentSearches(_ context.Context, userID uint) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string{}, m.searches[userID]...), nil
}

func (m *MemoryStore) PushSearch(_ context.Context, userID uint, query string) error {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.searches[userID] = pushFront(m.searches[userID], q)
	return nil
}

func (m *MemoryStore) ClearSearches(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.searches, userID)
	return nil
}

// ====================================================
// Tab counts
// ====================================================

func (m *MemoryStore) TabCounts(_ context.Context, userID uint) (TabCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counts[userID], nil
}

func (m *MemoryStore) SetTabCounts(_ context.Context, userID uint, c TabCounts) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[userID] = c
	return nil
}

func (m *MemoryStore) ResetTabCounts(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.counts, userID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
