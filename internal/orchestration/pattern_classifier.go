package orchestration

import (
	"context"
	"log/slog"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// PatternEnhancedClassifier layers learned filter patterns on top of the
// base classifier: filters the user applies repeatedly for a query type get
// added automatically, with the reasons recorded in intent metadata.
type PatternEnhancedClassifier struct {
	base    *planning.Classifier
	tracker *PreferenceTracker
	logger  *slog.Logger
}

// NewPatternEnhancedClassifier wraps base. tracker may be nil, in which
// case classification passes through unenhanced.
func NewPatternEnhancedClassifier(base *planning.Classifier, tracker *PreferenceTracker) *PatternEnhancedClassifier {
	return &PatternEnhancedClassifier{
		base:    base,
		tracker: tracker,
		logger:  slog.Default().With("component", "pattern_classifier"),
	}
}

// Classify classifies query and, when applyEnhancements is set, applies
// learned filter suggestions.
func (c *PatternEnhancedClassifier) Classify(ctx context.Context, query string, applyEnhancements bool) (planning.QueryIntent, error) {
	intent := c.base.Classify(query)
	if !applyEnhancements || c.tracker == nil {
		return intent, nil
	}
	return c.Enhance(ctx, intent)
}

// Enhance applies learned filter suggestions to a clone of intent. Fields
// the intent already filters on are never overridden, so enhancing an
// already-enhanced intent is a no-op.
func (c *PatternEnhancedClassifier) Enhance(ctx context.Context, intent planning.QueryIntent) (planning.QueryIntent, error) {
	suggestions, err := c.tracker.SuggestEnhancements(ctx, intent)
	if err != nil {
		return intent, err
	}
	if len(suggestions) == 0 {
		return intent, nil
	}

	out := intent.Clone()
	applied := make(map[string]bool, len(out.Filters))
	for _, f := range out.Filters {
		applied[f.Field] = true
	}

	var reasons []string
	if existing, ok := out.Metadata["pattern_enhancements"].([]string); ok {
		reasons = append(reasons, existing...)
	}

	for _, suggestion := range suggestions {
		if suggestion.Type != "add_filter" || applied[suggestion.Key] {
			continue
		}
		filter, err := planning.NewFilterCondition(suggestion.Key, planning.OpEquals, suggestion.Value)
		if err != nil {
			c.logger.Warn("skipping invalid suggested filter", "field", suggestion.Key, "error", err)
			continue
		}
		out.Filters = append(out.Filters, filter)
		applied[suggestion.Key] = true
		reasons = append(reasons, suggestion.Reason)
		c.logger.Debug("applied pattern enhancement", "field", suggestion.Key, "value", suggestion.Value)
	}

	if len(reasons) > 0 {
		out.Metadata["pattern_enhancements"] = reasons
	}
	return out, nil
}
