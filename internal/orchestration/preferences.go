package orchestration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// Suggestion is a proposed enhancement to a query derived from learned
// usage patterns.
type Suggestion struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Reason string `json:"reason"`
}

// SessionStats summarizes preference activity for one session.
type SessionStats struct {
	SessionID         string   `json:"session_id"`
	TotalEntitiesUsed int      `json:"total_entities_used"`
	UniqueEntities    int      `json:"unique_entities"`
	MostUsedEntity    string   `json:"most_used_entity,omitempty"`
	QueryTypesTracked []string `json:"query_types_tracked"`
}

// PreferenceTracker learns per-session query preferences: which entity
// types a user reaches for and which filter combinations recur for each
// query type. Filter patterns persist in the pattern store across sessions;
// entity counters are session-local.
type PreferenceTracker struct {
	store     memory.PatternStore
	sessionID string

	mu          sync.Mutex
	entityUsage map[planning.EntityType]int
	typesSeen   map[planning.QueryType]bool
}

// NewPreferenceTracker creates a tracker for sessionID backed by store.
func NewPreferenceTracker(store memory.PatternStore, sessionID string) *PreferenceTracker {
	return &PreferenceTracker{
		store:       store,
		sessionID:   sessionID,
		entityUsage: make(map[planning.EntityType]int),
		typesSeen:   make(map[planning.QueryType]bool),
	}
}

// RecordQueryPreference records one executed intent: entity usage counters
// are bumped and the (query type, entities, filters) pattern is upserted in
// the store. satisfied marks whether the user accepted the result.
func (t *PreferenceTracker) RecordQueryPreference(ctx context.Context, intent planning.QueryIntent, satisfied bool) error {
	t.mu.Lock()
	for _, entity := range intent.Entities {
		t.entityUsage[entity]++
	}
	if intent.HasFilters() {
		t.typesSeen[intent.QueryType] = true
	}
	t.mu.Unlock()

	filters := make(map[string]any, len(intent.Filters))
	for _, f := range intent.Filters {
		filters[f.Field] = f.Value
	}

	_, err := t.store.RecordPattern(ctx, intent.QueryType, intent.Entities, filters, satisfied)
	return err
}

// PreferredFilters returns the common filter map learned for queryType, or
// an empty map when nothing has recurred at least minFrequency times.
func (t *PreferenceTracker) PreferredFilters(ctx context.Context, queryType planning.QueryType, minFrequency int) (map[string]any, error) {
	return t.store.GetCommonFilters(ctx, queryType, minFrequency)
}

// PreferredEntities returns up to limit entity types ordered by usage,
// most used first. Ties break alphabetically so the ordering is stable.
func (t *PreferenceTracker) PreferredEntities(limit int) []planning.EntityType {
	t.mu.Lock()
	entities := make([]planning.EntityType, 0, len(t.entityUsage))
	for entity := range t.entityUsage {
		entities = append(entities, entity)
	}
	usage := make(map[planning.EntityType]int, len(t.entityUsage))
	for entity, count := range t.entityUsage {
		usage[entity] = count
	}
	t.mu.Unlock()

	sort.Slice(entities, func(i, j int) bool {
		if usage[entities[i]] != usage[entities[j]] {
			return usage[entities[i]] > usage[entities[j]]
		}
		return entities[i] < entities[j]
	})
	if limit > 0 && len(entities) > limit {
		entities = entities[:limit]
	}
	return entities
}

// SuggestEnhancements proposes filters for intent based on learned
// patterns, skipping fields the intent already constrains. Suggestions are
// ordered by field name so repeat calls are deterministic.
func (t *PreferenceTracker) SuggestEnhancements(ctx context.Context, intent planning.QueryIntent) ([]Suggestion, error) {
	existing := make(map[string]bool, len(intent.Filters))
	for _, f := range intent.Filters {
		existing[f.Field] = true
	}

	common, err := t.PreferredFilters(ctx, intent.QueryType, 2)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(common))
	for field := range common {
		if !existing[field] {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	suggestions := make([]Suggestion, 0, len(fields))
	for _, field := range fields {
		suggestions = append(suggestions, Suggestion{
			Type:   "add_filter",
			Key:    field,
			Value:  common[field],
			Reason: fmt.Sprintf("You often use this filter for %s queries", intent.QueryType),
		})
	}
	return suggestions, nil
}

// Stats returns a snapshot of this session's preference activity.
func (t *PreferenceTracker) Stats() SessionStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := SessionStats{
		SessionID:      t.sessionID,
		UniqueEntities: len(t.entityUsage),
	}
	best := 0
	for entity, count := range t.entityUsage {
		stats.TotalEntitiesUsed += count
		if count > best || (count == best && (stats.MostUsedEntity == "" || string(entity) < stats.MostUsedEntity)) {
			best = count
			stats.MostUsedEntity = string(entity)
		}
	}
	for queryType := range t.typesSeen {
		stats.QueryTypesTracked = append(stats.QueryTypesTracked, string(queryType))
	}
	sort.Strings(stats.QueryTypesTracked)
	return stats
}
