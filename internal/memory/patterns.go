package memory

//go:generate mockgen -destination=mocks/mock_patterns.go -package=memory_mocks github.com/gcakvpt/neo4j-orchestration-framework/internal/memory PatternStore,HistoryStore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// StoreUnavailableError reports that the durable pattern or history store
// could not be reached. It wraps the database connectivity error; callers
// have no local fallback beyond their in-session state.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("pattern store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// wrapStoreError converts connectivity failures into StoreUnavailableError
// and passes query errors through.
func wrapStoreError(err error) error {
	var connErr *database.ConnectivityError
	if errors.As(err, &connErr) {
		return &StoreUnavailableError{Err: err}
	}
	return err
}

// QueryPattern is one aggregated usage record, keyed by its signature
// (query_type::sorted-entity-names).
type QueryPattern struct {
	ID            string
	Signature     string
	QueryType     planning.QueryType
	Entities      []string
	CommonFilters map[string]any
	Frequency     int
	SuccessCount  int
	TotalCount    int
	SuccessRate   float64
	CreatedAt     time.Time
	LastUsed      time.Time
}

// PatternStore persists learned query patterns.
type PatternStore interface {
	// RecordPattern upserts the pattern for (queryType, entities) and
	// returns its pattern ID.
	RecordPattern(ctx context.Context, queryType planning.QueryType, entities []planning.EntityType, filters map[string]any, success bool) (string, error)

	// GetCommonFilters returns the common filter map of the most frequent
	// pattern for queryType at or above minFrequency, or an empty map.
	GetCommonFilters(ctx context.Context, queryType planning.QueryType, minFrequency int) (map[string]any, error)

	// GetPattern fetches one pattern by ID, or nil when absent.
	GetPattern(ctx context.Context, patternID string) (*QueryPattern, error)

	// DeletePattern removes one pattern, reporting whether it existed.
	DeletePattern(ctx context.Context, patternID string) (bool, error)

	// Clear removes all patterns.
	Clear(ctx context.Context) error
}

// PatternSignature computes the signature under which usage of a
// (query type, entity set) pair is aggregated.
func PatternSignature(queryType planning.QueryType, entities []planning.EntityType) string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = string(e)
	}
	sort.Strings(names)
	return string(queryType) + "::" + strings.Join(names, ",")
}

// Common filter maps are persisted as a JSON string property: Neo4j node
// properties cannot hold nested maps.
const recordPatternQuery = `
MERGE (p:QueryPattern {pattern_signature: $pattern_sig})
ON CREATE SET
    p.pattern_id = randomUUID(),
    p.query_type = $query_type,
    p.entities = $entities,
    p.common_filters = $filters,
    p.frequency = 1,
    p.success_count = CASE WHEN $success THEN 1 ELSE 0 END,
    p.total_count = 1,
    p.success_rate = CASE WHEN $success THEN 1.0 ELSE 0.0 END,
    p.created_at = datetime(),
    p.last_used = datetime()
ON MATCH SET
    p.frequency = p.frequency + 1,
    p.success_count = p.success_count + CASE WHEN $success THEN 1 ELSE 0 END,
    p.total_count = p.total_count + 1,
    p.success_rate = toFloat(p.success_count) / toFloat(p.total_count),
    p.last_used = datetime(),
    p.common_filters = CASE
        WHEN p.frequency < 3 THEN $filters
        ELSE p.common_filters
    END
RETURN p.pattern_id AS pattern_id`

const commonFiltersQuery = `
MATCH (p:QueryPattern)
WHERE p.query_type = $query_type
AND p.frequency >= $min_frequency
RETURN p.common_filters AS filters
ORDER BY p.frequency DESC
LIMIT 1`

const getPatternQuery = `
MATCH (p:QueryPattern {pattern_id: $pattern_id})
RETURN p.pattern_id AS pattern_id, p.pattern_signature AS pattern_signature,
       p.query_type AS query_type, p.entities AS entities,
       p.common_filters AS common_filters, p.frequency AS frequency,
       p.success_count AS success_count, p.total_count AS total_count,
       p.success_rate AS success_rate`

const deletePatternQuery = `
MATCH (p:QueryPattern {pattern_id: $pattern_id})
DELETE p
RETURN count(p) AS deleted`

const clearPatternsQuery = `MATCH (p:QueryPattern) DELETE p`

// neo4jPatternStore persists query patterns as (:QueryPattern) nodes.
type neo4jPatternStore struct {
	db database.Service
}

// NewPatternStore creates a Neo4j-backed pattern store.
func NewPatternStore(db database.Service) PatternStore {
	return &neo4jPatternStore{db: db}
}

func (s *neo4jPatternStore) RecordPattern(ctx context.Context, queryType planning.QueryType, entities []planning.EntityType, filters map[string]any, success bool) (string, error) {
	if filters == nil {
		filters = map[string]any{}
	}
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}

	entityNames := make([]string, len(entities))
	for i, e := range entities {
		entityNames[i] = string(e)
	}

	records, err := s.db.ExecuteWriteQuery(ctx, recordPatternQuery, map[string]any{
		"pattern_sig": PatternSignature(queryType, entities),
		"query_type":  string(queryType),
		"entities":    entityNames,
		"filters":     string(filtersJSON),
		"success":     success,
	})
	if err != nil {
		return "", wrapStoreError(err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("pattern upsert returned no record")
	}
	id, _ := records[0].Get("pattern_id")
	patternID, ok := id.(string)
	if !ok {
		return "", fmt.Errorf("pattern upsert returned unexpected id type %T", id)
	}
	return patternID, nil
}

func (s *neo4jPatternStore) GetCommonFilters(ctx context.Context, queryType planning.QueryType, minFrequency int) (map[string]any, error) {
	records, err := s.db.ExecuteReadQuery(ctx, commonFiltersQuery, map[string]any{
		"query_type":    string(queryType),
		"min_frequency": minFrequency,
	})
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if len(records) == 0 {
		return map[string]any{}, nil
	}
	raw, _ := records[0].Get("filters")
	return decodeFilters(raw)
}

func (s *neo4jPatternStore) GetPattern(ctx context.Context, patternID string) (*QueryPattern, error) {
	records, err := s.db.ExecuteReadQuery(ctx, getPatternQuery, map[string]any{
		"pattern_id": patternID,
	})
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	record := records[0]
	pattern := &QueryPattern{}
	if v, ok := record.Get("pattern_id"); ok {
		pattern.ID, _ = v.(string)
	}
	if v, ok := record.Get("pattern_signature"); ok {
		pattern.Signature, _ = v.(string)
	}
	if v, ok := record.Get("query_type"); ok {
		if s, ok := v.(string); ok {
			pattern.QueryType = planning.QueryType(s)
		}
	}
	if v, ok := record.Get("entities"); ok {
		if items, ok := v.([]any); ok {
			for _, item := range items {
				if name, ok := item.(string); ok {
					pattern.Entities = append(pattern.Entities, name)
				}
			}
		}
	}
	if v, ok := record.Get("common_filters"); ok {
		pattern.CommonFilters, _ = decodeFilters(v)
	}
	pattern.Frequency = intProp(record.Get("frequency"))
	pattern.SuccessCount = intProp(record.Get("success_count"))
	pattern.TotalCount = intProp(record.Get("total_count"))
	if v, ok := record.Get("success_rate"); ok {
		pattern.SuccessRate, _ = v.(float64)
	}
	return pattern, nil
}

func (s *neo4jPatternStore) DeletePattern(ctx context.Context, patternID string) (bool, error) {
	records, err := s.db.ExecuteWriteQuery(ctx, deletePatternQuery, map[string]any{
		"pattern_id": patternID,
	})
	if err != nil {
		return false, wrapStoreError(err)
	}
	if len(records) == 0 {
		return false, nil
	}
	deleted, _ := records[0].Get("deleted")
	return intValue(deleted) > 0, nil
}

func (s *neo4jPatternStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecuteWriteQuery(ctx, clearPatternsQuery, nil)
	if err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func decodeFilters(raw any) (map[string]any, error) {
	encoded, ok := raw.(string)
	if !ok || encoded == "" {
		return map[string]any{}, nil
	}
	filters := map[string]any{}
	if err := json.Unmarshal([]byte(encoded), &filters); err != nil {
		return nil, fmt.Errorf("failed to decode stored filters: %w", err)
	}
	return filters, nil
}

func intProp(v any, ok bool) int {
	if !ok {
		return 0
	}
	return intValue(v)
}

func intValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
