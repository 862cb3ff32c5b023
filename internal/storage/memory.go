package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"snpgen/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	runOrder    []string
	fixtures    map[string][]model.FixtureRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.runOrder = nil
	s.fixtures = make(map[string][]model.FixtureRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if _, ok := s.runs[run.ID]; !ok {
		s.runOrder = append(s.runOrder, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.RunRecord{}, false, errNotInitialized
	}
	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	type indexedRun struct {
		run model.RunRecord
		idx int
	}
	indexed := make([]indexedRun, 0, len(s.runOrder))
	for i, id := range s.runOrder {
		indexed = append(indexed, indexedRun{run: s.runs[id], idx: i})
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].run.StartedAtUTC == indexed[j].run.StartedAtUTC {
			// Prefer later saved runs for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].run.StartedAtUTC > indexed[j].run.StartedAtUTC
	})

	runs := make([]model.RunRecord, 0, len(indexed))
	for _, item := range indexed {
		runs = append(runs, item.run)
	}
	return runs, nil
}

func (s *MemoryStore) SaveFixture(_ context.Context, fixture model.FixtureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if fixture.RunID == "" {
		return errors.New("run id is required")
	}
	existing := s.fixtures[fixture.RunID]
	for i := range existing {
		if existing[i].Path == fixture.Path {
			existing[i] = fixture
			return nil
		}
	}
	s.fixtures[fixture.RunID] = append(existing, fixture)
	return nil
}

func (s *MemoryStore) ListFixtures(_ context.Context, runID string) ([]model.FixtureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	copied := make([]model.FixtureRecord, len(s.fixtures[runID]))
	copy(copied, s.fixtures[runID])
	return copied, nil
}
