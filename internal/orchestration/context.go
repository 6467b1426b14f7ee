// Package orchestration coordinates the natural language query pipeline:
// classification, context and pattern enhancement, Cypher generation,
// execution, and the memory systems that learn from each turn.
package orchestration

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

const (
	defaultContextTTL        = time.Hour
	defaultContextMaxHistory = 5
)

// IntentSnapshot is the slice of a classified intent that conversation
// tracking needs. The full intent is transient and never stored here.
type IntentSnapshot struct {
	QueryType       planning.QueryType
	Entities        []string
	Confidence      float64
	HasFilters      bool
	HasAggregations bool
}

// ResultSummary captures the shape of a query result without retaining the
// records themselves.
type ResultSummary struct {
	RecordCount int
	HasData     bool
}

// HistoryEntry is one conversation turn.
type HistoryEntry struct {
	Query     string
	Intent    IntentSnapshot
	Timestamp time.Time
	Result    *ResultSummary
}

// ConversationContext tracks recent queries and their intents for a single
// session so that follow-up queries ("only critical ones", "which of them")
// can be resolved against what came before. Entries live in working memory
// under a per-session key and expire with it.
type ConversationContext struct {
	working    *memory.WorkingMemory[[]HistoryEntry]
	sessionID  string
	maxHistory int
	historyKey string
	logger     *slog.Logger
}

// NewConversationContext creates a context for sessionID backed by the given
// working memory. maxHistory bounds how many turns are retained; values
// below 1 fall back to the default of 5.
func NewConversationContext(working *memory.WorkingMemory[[]HistoryEntry], sessionID string, maxHistory int) *ConversationContext {
	if maxHistory < 1 {
		maxHistory = defaultContextMaxHistory
	}
	return &ConversationContext{
		working:    working,
		sessionID:  sessionID,
		maxHistory: maxHistory,
		historyKey: fmt.Sprintf("conversation:%s:history", sessionID),
		logger:     slog.Default().With("component", "conversation_context", "session", sessionID),
	}
}

// AddQuery appends a turn to the session history, evicting the oldest entry
// once maxHistory is exceeded.
func (c *ConversationContext) AddQuery(query string, intent planning.QueryIntent, result *ResultSummary) {
	history, _ := c.working.Get(c.historyKey)

	entities := make([]string, len(intent.Entities))
	for i, e := range intent.Entities {
		entities[i] = string(e)
	}
	entry := HistoryEntry{
		Query: query,
		Intent: IntentSnapshot{
			QueryType:       intent.QueryType,
			Entities:        entities,
			Confidence:      intent.Confidence,
			HasFilters:      intent.HasFilters(),
			HasAggregations: intent.HasAggregations(),
		},
		Timestamp: time.Now(),
		Result:    result,
	}

	history = append(history, entry)
	if len(history) > c.maxHistory {
		history = history[len(history)-c.maxHistory:]
	}
	c.working.Set(c.historyKey, history, defaultContextTTL)

	c.logger.Debug("added query to context", "query", query, "history_len", len(history))
}

// LastEntities returns the entity types mentioned in the last n turns, most
// recent first, deduplicated. Entries that no longer parse as entity types
// are skipped with a warning.
func (c *ConversationContext) LastEntities(n int) []planning.EntityType {
	history, ok := c.working.Get(c.historyKey)
	if !ok || len(history) == 0 {
		return nil
	}
	if n < len(history) {
		history = history[len(history)-n:]
	}

	var entities []planning.EntityType
	seen := make(map[planning.EntityType]bool)
	for i := len(history) - 1; i >= 0; i-- {
		for _, name := range history[i].Intent.Entities {
			entity, err := planning.ParseEntityType(name)
			if err != nil {
				c.logger.Warn("skipping unknown entity type in context", "entity", name)
				continue
			}
			if !seen[entity] {
				seen[entity] = true
				entities = append(entities, entity)
			}
		}
	}
	return entities
}

// LastQueryType returns the query type of the most recent turn, or false
// when the session has no history.
func (c *ConversationContext) LastQueryType() (planning.QueryType, bool) {
	history, ok := c.working.Get(c.historyKey)
	if !ok || len(history) == 0 {
		return "", false
	}
	return history[len(history)-1].Intent.QueryType, true
}

// LastQuery returns the most recent query string, or false when the session
// has no history.
func (c *ConversationContext) LastQuery() (string, bool) {
	history, ok := c.working.Get(c.historyKey)
	if !ok || len(history) == 0 {
		return "", false
	}
	return history[len(history)-1].Query, true
}

// Len reports the number of turns currently tracked.
func (c *ConversationContext) Len() int {
	history, _ := c.working.Get(c.historyKey)
	return len(history)
}

// Clear removes the session history.
func (c *ConversationContext) Clear() {
	c.working.Delete(c.historyKey)
	c.logger.Info("cleared conversation context")
}

// SessionID returns the session this context tracks.
func (c *ConversationContext) SessionID() string { return c.sessionID }
