package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
)

// QueryRecord is one executed (or failed) query in the durable history.
type QueryRecord struct {
	ID              string
	NaturalLanguage string
	Intent          map[string]any
	Entities        []string
	Cypher          string
	Parameters      map[string]any
	ResultCount     int
	ExecutionTime   time.Duration
	Timestamp       time.Time
	Success         bool
	ErrorMessage    string
}

// HistoryStore persists query history, append-only.
type HistoryStore interface {
	// Append stores a record.
	Append(ctx context.Context, record QueryRecord) error

	// Recent returns up to limit records, most recent first.
	Recent(ctx context.Context, limit int) ([]QueryRecord, error)

	// Successful returns up to limit successful records, most recent first.
	Successful(ctx context.Context, limit int) ([]QueryRecord, error)

	// ByEntity returns up to limit records whose intent involved the given
	// entity label, most recent first.
	ByEntity(ctx context.Context, entity string, limit int) ([]QueryRecord, error)

	// Last returns the most recent record, or nil when the history is empty.
	Last(ctx context.Context) (*QueryRecord, error)
}

const appendHistoryQuery = `
CREATE (r:QueryRecord {
    record_id: $record_id,
    natural_language: $natural_language,
    intent: $intent,
    entities: $entities,
    cypher: $cypher,
    parameters: $parameters,
    result_count: $result_count,
    execution_time_ms: $execution_time_ms,
    timestamp: datetime($timestamp),
    success: $success,
    error_message: $error_message
})`

const recentHistoryQuery = `
MATCH (r:QueryRecord)
%s
RETURN r.record_id AS record_id, r.natural_language AS natural_language,
       r.intent AS intent, r.entities AS entities, r.cypher AS cypher,
       r.parameters AS parameters, r.result_count AS result_count,
       r.execution_time_ms AS execution_time_ms, r.success AS success,
       r.error_message AS error_message
ORDER BY r.timestamp DESC
LIMIT $limit`

// neo4jHistoryStore persists history as append-only (:QueryRecord) nodes.
type neo4jHistoryStore struct {
	db database.Service
}

// NewHistoryStore creates a Neo4j-backed history store.
func NewHistoryStore(db database.Service) HistoryStore {
	return &neo4jHistoryStore{db: db}
}

func (s *neo4jHistoryStore) Append(ctx context.Context, record QueryRecord) error {
	intentJSON, err := json.Marshal(record.Intent)
	if err != nil {
		return fmt.Errorf("failed to encode intent: %w", err)
	}
	paramsJSON, err := json.Marshal(record.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	entities := record.Entities
	if entities == nil {
		entities = []string{}
	}

	_, err = s.db.ExecuteWriteQuery(ctx, appendHistoryQuery, map[string]any{
		"record_id":         record.ID,
		"natural_language":  record.NaturalLanguage,
		"intent":            string(intentJSON),
		"entities":          entities,
		"cypher":            record.Cypher,
		"parameters":        string(paramsJSON),
		"result_count":      record.ResultCount,
		"execution_time_ms": record.ExecutionTime.Milliseconds(),
		"timestamp":         record.Timestamp.UTC().Format(time.RFC3339Nano),
		"success":           record.Success,
		"error_message":     record.ErrorMessage,
	})
	if err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func (s *neo4jHistoryStore) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	return s.query(ctx, "", nil, limit)
}

func (s *neo4jHistoryStore) Successful(ctx context.Context, limit int) ([]QueryRecord, error) {
	return s.query(ctx, "WHERE r.success = true", nil, limit)
}

func (s *neo4jHistoryStore) ByEntity(ctx context.Context, entity string, limit int) ([]QueryRecord, error) {
	return s.query(ctx, "WHERE $entity IN r.entities", map[string]any{"entity": entity}, limit)
}

func (s *neo4jHistoryStore) Last(ctx context.Context) (*QueryRecord, error) {
	records, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *neo4jHistoryStore) query(ctx context.Context, where string, extra map[string]any, limit int) ([]QueryRecord, error) {
	params := map[string]any{"limit": limit}
	for k, v := range extra {
		params[k] = v
	}

	rows, err := s.db.ExecuteReadQuery(ctx, fmt.Sprintf(recentHistoryQuery, where), params)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	records := make([]QueryRecord, 0, len(rows))
	for _, row := range rows {
		record := QueryRecord{}
		if v, ok := row.Get("record_id"); ok {
			record.ID, _ = v.(string)
		}
		if v, ok := row.Get("natural_language"); ok {
			record.NaturalLanguage, _ = v.(string)
		}
		if v, ok := row.Get("intent"); ok {
			if encoded, ok := v.(string); ok && encoded != "" {
				_ = json.Unmarshal([]byte(encoded), &record.Intent)
			}
		}
		if v, ok := row.Get("entities"); ok {
			if items, ok := v.([]any); ok {
				for _, item := range items {
					if name, ok := item.(string); ok {
						record.Entities = append(record.Entities, name)
					}
				}
			}
		}
		if v, ok := row.Get("cypher"); ok {
			record.Cypher, _ = v.(string)
		}
		if v, ok := row.Get("parameters"); ok {
			if encoded, ok := v.(string); ok && encoded != "" {
				_ = json.Unmarshal([]byte(encoded), &record.Parameters)
			}
		}
		record.ResultCount = intProp(row.Get("result_count"))
		record.ExecutionTime = time.Duration(intProp(row.Get("execution_time_ms"))) * time.Millisecond
		if v, ok := row.Get("success"); ok {
			record.Success, _ = v.(bool)
		}
		if v, ok := row.Get("error_message"); ok {
			record.ErrorMessage, _ = v.(string)
		}
		records = append(records, record)
	}
	return records, nil
}

// InMemoryHistoryStore is an in-process HistoryStore used by tests and by
// deployments that do not want history written back into the graph.
type InMemoryHistoryStore struct {
	mu      sync.Mutex
	records []QueryRecord
	maxSize int
}

// NewInMemoryHistoryStore creates an in-memory history bounded to maxSize
// records (oldest dropped first); maxSize <= 0 means unbounded.
func NewInMemoryHistoryStore(maxSize int) *InMemoryHistoryStore {
	return &InMemoryHistoryStore{maxSize: maxSize}
}

func (s *InMemoryHistoryStore) Append(_ context.Context, record QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	if s.maxSize > 0 && len(s.records) > s.maxSize {
		s.records = s.records[len(s.records)-s.maxSize:]
	}
	return nil
}

func (s *InMemoryHistoryStore) Recent(_ context.Context, limit int) ([]QueryRecord, error) {
	return s.filter(limit, func(QueryRecord) bool { return true }), nil
}

func (s *InMemoryHistoryStore) Successful(_ context.Context, limit int) ([]QueryRecord, error) {
	return s.filter(limit, func(r QueryRecord) bool { return r.Success }), nil
}

func (s *InMemoryHistoryStore) ByEntity(_ context.Context, entity string, limit int) ([]QueryRecord, error) {
	return s.filter(limit, func(r QueryRecord) bool {
		for _, e := range r.Entities {
			if e == entity {
				return true
			}
		}
		return false
	}), nil
}

func (s *InMemoryHistoryStore) Last(_ context.Context) (*QueryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return nil, nil
	}
	record := s.records[len(s.records)-1]
	return &record, nil
}

func (s *InMemoryHistoryStore) filter(limit int, keep func(QueryRecord) bool) []QueryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]QueryRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}
