package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/database"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/metric"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// UnclassifiableQueryError reports a query the classifier could not place
// into any known query type, so no Cypher can be generated for it.
type UnclassifiableQueryError struct {
	Query string
}

func (e *UnclassifiableQueryError) Error() string {
	return fmt.Sprintf("cannot understand this query: %q", e.Query)
}

// Result is the outcome of one orchestrated query.
type Result struct {
	Records       []map[string]any `json:"records"`
	Summary       ResultSummary    `json:"summary"`
	Cypher        string           `json:"cypher"`
	Parameters    map[string]any   `json:"parameters"`
	Intent        planning.QueryIntent
	Cached        bool          `json:"cached"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// Dependencies are the collaborators an Orchestrator needs. DB is required;
// nil stores fall back to defaults (a Neo4j-backed pattern store and a
// bounded in-memory history store), and a nil Metrics disables
// instrumentation.
type Dependencies struct {
	DB           database.Service
	PatternStore memory.PatternStore
	HistoryStore memory.HistoryStore
	Metrics      *metric.Metrics
}

// Orchestrator runs the full natural language query pipeline: context-aware
// classification, pattern enhancement, Cypher generation, execution against
// Neo4j, then history, pattern, and context updates. Store failures after
// execution never fail the query; they are logged and counted.
type Orchestrator struct {
	config    Config
	db        database.Service
	generator *planning.Generator

	contextClassifier *ContextAwareClassifier
	patternClassifier *PatternEnhancedClassifier
	tracker           *PreferenceTracker

	conversation *ConversationContext
	contextMem   *memory.WorkingMemory[[]HistoryEntry]
	cache        *memory.WorkingMemory[Result]
	history      memory.HistoryStore

	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewOrchestrator builds an orchestrator from deps and cfg. The classifier
// may be extended with pattern packs before being passed in.
func NewOrchestrator(classifier *planning.Classifier, deps Dependencies, cfg Config) (*Orchestrator, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database service is required")
	}
	cfg = cfg.withDefaults()
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if classifier == nil {
		classifier = planning.NewClassifier()
	}

	patternStore := deps.PatternStore
	if patternStore == nil {
		patternStore = memory.NewPatternStore(deps.DB)
	}
	historyStore := deps.HistoryStore
	if historyStore == nil {
		historyStore = memory.NewInMemoryHistoryStore(cfg.MaxHistorySize)
	}

	tracker := NewPreferenceTracker(patternStore, cfg.SessionID)

	o := &Orchestrator{
		config:            cfg,
		db:                deps.DB,
		generator:         planning.NewGenerator(),
		contextClassifier: NewContextAwareClassifier(classifier),
		patternClassifier: NewPatternEnhancedClassifier(classifier, tracker),
		tracker:           tracker,
		history:           historyStore,
		metrics:           deps.Metrics,
		logger:            slog.Default().With("component", "orchestrator", "session", cfg.SessionID),
	}

	if cfg.EnableContext {
		o.contextMem = memory.NewWorkingMemory[[]HistoryEntry](cfg.ContextMaxHistory*4, defaultContextTTL, time.Minute)
		o.conversation = NewConversationContext(o.contextMem, cfg.SessionID, cfg.ContextMaxHistory)
	}
	if cfg.EnableCaching {
		o.cache = memory.NewWorkingMemory[Result](256, cfg.CacheTTL, time.Minute)
	}

	return o, nil
}

// Query runs naturalLanguage through the pipeline and returns its result.
// Unknown queries and execution failures return an error; failures after
// execution (history, pattern, context bookkeeping) do not.
func (o *Orchestrator) Query(ctx context.Context, naturalLanguage string) (*Result, error) {
	queryID := uuid.NewString()
	start := time.Now()

	if o.cache != nil {
		if cached, ok := o.cache.Get(o.cacheKey(naturalLanguage)); ok {
			o.observeCacheHit(cached.Intent.QueryType)
			cached.Cached = true
			o.logger.Debug("cache hit", "query_id", queryID, "query", naturalLanguage)
			return &cached, nil
		}
		if o.metrics != nil {
			o.metrics.CacheMisses.Inc()
		}
	}

	intent := o.classify(ctx, naturalLanguage)

	if intent.QueryType == planning.QueryTypeUnknown {
		err := &UnclassifiableQueryError{Query: naturalLanguage}
		o.recordFailure(ctx, queryID, naturalLanguage, intent, "", nil, time.Since(start), err)
		return nil, err
	}

	cypher, params, err := o.generator.Generate(intent)
	if err != nil {
		o.recordFailure(ctx, queryID, naturalLanguage, intent, "", nil, time.Since(start), err)
		return nil, fmt.Errorf("generating cypher: %w", err)
	}

	records, err := o.db.ExecuteReadQuery(ctx, cypher, params)
	if err != nil {
		o.recordFailure(ctx, queryID, naturalLanguage, intent, cypher, params, time.Since(start), err)
		return nil, fmt.Errorf("executing query: %w", err)
	}

	elapsed := time.Since(start)
	result := Result{
		Records:       database.RecordsToMaps(records),
		Cypher:        cypher,
		Parameters:    params,
		Intent:        intent,
		ExecutionTime: elapsed,
	}
	result.Summary = ResultSummary{
		RecordCount: len(result.Records),
		HasData:     len(result.Records) > 0,
	}

	o.observeSuccess(intent, elapsed)
	o.recordSuccess(ctx, queryID, naturalLanguage, intent, &result)

	if o.cache != nil {
		o.cache.Set(o.cacheKey(naturalLanguage), result, o.config.CacheTTL)
	}

	o.logger.Info("query completed",
		"query_id", queryID,
		"query_type", intent.QueryType,
		"records", result.Summary.RecordCount,
		"duration", elapsed)
	return &result, nil
}

// Suggest classifies naturalLanguage without executing it and returns the
// filter enhancements learned patterns would apply. Classification here
// skips the enhancement step, otherwise the suggested filters would already
// be present on the intent and nothing would ever be suggested.
func (o *Orchestrator) Suggest(ctx context.Context, naturalLanguage string) ([]Suggestion, error) {
	intent := o.contextClassifier.ClassifyWithContext(naturalLanguage, o.conversation)
	if intent.QueryType == planning.QueryTypeUnknown {
		return nil, &UnclassifiableQueryError{Query: naturalLanguage}
	}
	return o.tracker.SuggestEnhancements(ctx, intent)
}

// Plan classifies naturalLanguage and generates its Cypher without
// executing it.
func (o *Orchestrator) Plan(ctx context.Context, naturalLanguage string) (planning.QueryIntent, string, map[string]any, error) {
	intent := o.classify(ctx, naturalLanguage)
	if intent.QueryType == planning.QueryTypeUnknown {
		return intent, "", nil, &UnclassifiableQueryError{Query: naturalLanguage}
	}
	cypher, params, err := o.generator.Generate(intent)
	if err != nil {
		return intent, "", nil, fmt.Errorf("generating cypher: %w", err)
	}
	return intent, cypher, params, nil
}

// History returns up to limit records, most recent first.
func (o *Orchestrator) History(ctx context.Context, limit int) ([]memory.QueryRecord, error) {
	return o.history.Recent(ctx, limit)
}

// SuccessfulHistory returns up to limit successful records, most recent
// first.
func (o *Orchestrator) SuccessfulHistory(ctx context.Context, limit int) ([]memory.QueryRecord, error) {
	return o.history.Successful(ctx, limit)
}

// HistoryByEntity returns up to limit records that involved the given
// entity label.
func (o *Orchestrator) HistoryByEntity(ctx context.Context, entity string, limit int) ([]memory.QueryRecord, error) {
	return o.history.ByEntity(ctx, entity, limit)
}

// LastQuery returns the most recent record, or nil when history is empty.
func (o *Orchestrator) LastQuery(ctx context.Context) (*memory.QueryRecord, error) {
	return o.history.Last(ctx)
}

// ClearContext drops the conversation history for this session.
func (o *Orchestrator) ClearContext() {
	if o.conversation != nil {
		o.conversation.Clear()
	}
}

// SessionID returns the session this orchestrator serves.
func (o *Orchestrator) SessionID() string { return o.config.SessionID }

// SessionStats returns preference statistics for this session.
func (o *Orchestrator) SessionStats() SessionStats { return o.tracker.Stats() }

// Close releases the working memory janitors. The database service is owned
// by the caller and is not closed here.
func (o *Orchestrator) Close() {
	if o.cache != nil {
		o.cache.Close()
	}
	if o.contextMem != nil {
		o.contextMem.Close()
	}
}

// classify runs context-aware classification followed by pattern
// enhancement. Pattern store failures degrade to the unenhanced intent.
func (o *Orchestrator) classify(ctx context.Context, naturalLanguage string) planning.QueryIntent {
	intent := o.contextClassifier.ClassifyWithContext(naturalLanguage, o.conversation)

	if o.metrics != nil {
		o.metrics.ClassificationConfidence.Observe(intent.Confidence)
	}

	if o.config.EnablePatternLearning && intent.QueryType != planning.QueryTypeUnknown {
		enhanced, err := o.patternClassifier.Enhance(ctx, intent)
		if err != nil {
			o.logger.Warn("pattern enhancement failed, using base intent", "error", err)
			if o.metrics != nil {
				o.metrics.StoreErrors.WithLabelValues("pattern").Inc()
			}
			return intent
		}
		if o.metrics != nil && len(enhanced.Filters) > len(intent.Filters) {
			o.metrics.PatternEnhancements.Add(float64(len(enhanced.Filters) - len(intent.Filters)))
		}
		intent = enhanced
	}
	return intent
}

func (o *Orchestrator) recordSuccess(ctx context.Context, queryID, naturalLanguage string, intent planning.QueryIntent, result *Result) {
	if o.config.EnableHistory {
		entities := make([]string, len(intent.Entities))
		for i, e := range intent.Entities {
			entities[i] = string(e)
		}
		record := memory.QueryRecord{
			ID:              queryID,
			NaturalLanguage: naturalLanguage,
			Intent:          intent.ToMap(),
			Entities:        entities,
			Cypher:          result.Cypher,
			Parameters:      result.Parameters,
			ResultCount:     result.Summary.RecordCount,
			ExecutionTime:   result.ExecutionTime,
			Timestamp:       time.Now(),
			Success:         true,
		}
		if err := o.history.Append(ctx, record); err != nil {
			o.logger.Warn("failed to append query history", "query_id", queryID, "error", err)
			if o.metrics != nil {
				o.metrics.StoreErrors.WithLabelValues("history").Inc()
			}
		}
	}

	if o.config.EnablePatternLearning {
		if err := o.tracker.RecordQueryPreference(ctx, intent, true); err != nil {
			o.logger.Warn("failed to record query pattern", "query_id", queryID, "error", err)
			if o.metrics != nil {
				o.metrics.StoreErrors.WithLabelValues("pattern").Inc()
			}
		}
	}

	if o.conversation != nil {
		summary := result.Summary
		o.conversation.AddQuery(naturalLanguage, intent, &summary)
	}
}

func (o *Orchestrator) recordFailure(ctx context.Context, queryID, naturalLanguage string, intent planning.QueryIntent, cypher string, params map[string]any, elapsed time.Duration, cause error) {
	if o.metrics != nil {
		o.metrics.QueriesTotal.WithLabelValues(string(intent.QueryType), "error").Inc()
	}
	if !o.config.EnableHistory {
		return
	}
	entities := make([]string, len(intent.Entities))
	for i, e := range intent.Entities {
		entities[i] = string(e)
	}
	record := memory.QueryRecord{
		ID:              queryID,
		NaturalLanguage: naturalLanguage,
		Intent:          intent.ToMap(),
		Entities:        entities,
		Cypher:          cypher,
		Parameters:      params,
		ExecutionTime:   elapsed,
		Timestamp:       time.Now(),
		Success:         false,
		ErrorMessage:    cause.Error(),
	}
	if err := o.history.Append(ctx, record); err != nil {
		o.logger.Warn("failed to append query history", "query_id", queryID, "error", err)
		if o.metrics != nil {
			o.metrics.StoreErrors.WithLabelValues("history").Inc()
		}
	}
}

func (o *Orchestrator) observeSuccess(intent planning.QueryIntent, elapsed time.Duration) {
	if o.metrics == nil {
		return
	}
	o.metrics.QueriesTotal.WithLabelValues(string(intent.QueryType), "success").Inc()
	o.metrics.QueryDuration.WithLabelValues(string(intent.QueryType)).Observe(elapsed.Seconds())
}

func (o *Orchestrator) observeCacheHit(queryType planning.QueryType) {
	if o.metrics == nil {
		return
	}
	o.metrics.CacheHits.Inc()
	o.metrics.QueriesTotal.WithLabelValues(string(queryType), "cached").Inc()
}

func (o *Orchestrator) cacheKey(naturalLanguage string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(naturalLanguage)), " ")
	return fmt.Sprintf("result:%s:%s", o.config.SessionID, normalized)
}
