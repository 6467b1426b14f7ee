package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// InMemoryPatternStore is a process-local PatternStore for tests and
// single-session use. It mirrors the upsert semantics of the Neo4j store,
// including the common-filter capture window during the first uses of a
// pattern.
type InMemoryPatternStore struct {
	mu    sync.Mutex
	byID  map[string]*QueryPattern
	bySig map[string]*QueryPattern
}

// NewInMemoryPatternStore creates an empty in-memory pattern store.
func NewInMemoryPatternStore() *InMemoryPatternStore {
	return &InMemoryPatternStore{
		byID:  make(map[string]*QueryPattern),
		bySig: make(map[string]*QueryPattern),
	}
}

func (s *InMemoryPatternStore) RecordPattern(_ context.Context, queryType planning.QueryType, entities []planning.EntityType, filters map[string]any, success bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	signature := PatternSignature(queryType, entities)
	now := time.Now()

	pattern, ok := s.bySig[signature]
	if !ok {
		names := make([]string, len(entities))
		for i, e := range entities {
			names[i] = string(e)
		}
		pattern = &QueryPattern{
			ID:            uuid.NewString(),
			Signature:     signature,
			QueryType:     queryType,
			Entities:      names,
			CommonFilters: copyFilters(filters),
			CreatedAt:     now,
		}
		s.bySig[signature] = pattern
		s.byID[pattern.ID] = pattern
	} else if pattern.Frequency < 3 {
		// Filters are still settling during the first uses of a pattern.
		pattern.CommonFilters = copyFilters(filters)
	}

	pattern.Frequency++
	pattern.TotalCount++
	if success {
		pattern.SuccessCount++
	}
	pattern.SuccessRate = float64(pattern.SuccessCount) / float64(pattern.TotalCount)
	pattern.LastUsed = now

	return pattern.ID, nil
}

func (s *InMemoryPatternStore) GetCommonFilters(_ context.Context, queryType planning.QueryType, minFrequency int) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *QueryPattern
	for _, pattern := range s.bySig {
		if pattern.QueryType != queryType || pattern.Frequency < minFrequency {
			continue
		}
		if best == nil || pattern.Frequency > best.Frequency {
			best = pattern
		}
	}
	if best == nil {
		return map[string]any{}, nil
	}
	return copyFilters(best.CommonFilters), nil
}

func (s *InMemoryPatternStore) GetPattern(_ context.Context, patternID string) (*QueryPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern, ok := s.byID[patternID]
	if !ok {
		return nil, nil
	}
	out := *pattern
	out.Entities = append([]string(nil), pattern.Entities...)
	out.CommonFilters = copyFilters(pattern.CommonFilters)
	return &out, nil
}

func (s *InMemoryPatternStore) DeletePattern(_ context.Context, patternID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern, ok := s.byID[patternID]
	if !ok {
		return false, nil
	}
	delete(s.byID, patternID)
	delete(s.bySig, pattern.Signature)
	return true, nil
}

func (s *InMemoryPatternStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*QueryPattern)
	s.bySig = make(map[string]*QueryPattern)
	return nil
}

func copyFilters(filters map[string]any) map[string]any {
	out := make(map[string]any, len(filters))
	for k, v := range filters {
		out[k] = v
	}
	return out
}
