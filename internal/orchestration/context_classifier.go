package orchestration

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

// Pronouns and phrasings that suggest the query refers back to an earlier
// turn rather than standing on its own.
var contextPronouns = map[string]bool{
	"it": true, "them": true, "those": true, "these": true,
	"that": true, "this": true, "they": true,
	"which": true, "what": true, "who": true,
}

var followupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(which|what|how many)\b`),
	regexp.MustCompile(`\b(show|find|get|list)\s+(me\s+)?(the\s+)?ones?\b`),
	regexp.MustCompile(`\b(only|just|filter|narrow)\b`),
	regexp.MustCompile(`\b(also|additionally|and)\b`),
}

// Simple follow-ups are pure refinements of the previous query, so the
// previous query type carries over when classification comes back unknown.
var simpleFollowupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(only|just|filter|show)\b`),
	regexp.MustCompile(`^(which|what)\s+(ones?|about)\b`),
	regexp.MustCompile(`^(in|with|for|by)\b`),
}

const maxInheritedEntities = 3

// ContextAwareClassifier wraps the intent classifier with conversation
// awareness: follow-up queries inherit entities, and simple refinements
// inherit the previous query type when classification alone cannot place
// them.
type ContextAwareClassifier struct {
	base   *planning.Classifier
	logger *slog.Logger
}

// NewContextAwareClassifier wraps base with context resolution.
func NewContextAwareClassifier(base *planning.Classifier) *ContextAwareClassifier {
	return &ContextAwareClassifier{
		base:   base,
		logger: slog.Default().With("component", "context_classifier"),
	}
}

// ClassifyWithContext classifies query, then, if it looks like a follow-up
// and ctx is non-nil, enhances the intent from conversation history. The
// returned intent is always a fresh value.
func (c *ContextAwareClassifier) ClassifyWithContext(query string, ctx *ConversationContext) planning.QueryIntent {
	intent := c.base.Classify(query)
	if ctx == nil {
		return intent
	}
	if !isFollowupQuery(query) {
		return intent
	}
	c.logger.Debug("detected follow-up query", "query", query)
	return c.enhanceWithContext(intent, query, ctx)
}

// enhanceWithContext applies conversation history to a clone of intent.
// Enhancement is idempotent: applying it to an already-enhanced intent
// changes nothing, because only empty entities and unknown query types are
// ever filled in.
func (c *ContextAwareClassifier) enhanceWithContext(intent planning.QueryIntent, query string, ctx *ConversationContext) planning.QueryIntent {
	out := intent.Clone()

	if len(out.Entities) == 0 {
		if inherited := ctx.LastEntities(2); len(inherited) > 0 {
			if len(inherited) > maxInheritedEntities {
				inherited = inherited[:maxInheritedEntities]
			}
			out.Entities = inherited
			c.logger.Info("inherited entities from context", "entities", inherited)
		}
	}

	if out.QueryType == planning.QueryTypeUnknown && isSimpleFollowup(query) {
		if lastType, ok := ctx.LastQueryType(); ok && lastType != planning.QueryTypeUnknown {
			out.QueryType = lastType
			c.logger.Info("inferred query type from context", "query_type", lastType)
		}
	}

	return out
}

func isFollowupQuery(query string) bool {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, word := range strings.Fields(strings.Map(stripPunct, lower)) {
		if contextPronouns[word] {
			return true
		}
	}
	for _, pattern := range followupPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func isSimpleFollowup(query string) bool {
	lower := strings.ToLower(strings.TrimSpace(query))
	for _, pattern := range simpleFollowupPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func stripPunct(r rune) rune {
	switch r {
	case '?', '!', '.', ',', ';', ':':
		return ' '
	}
	return r
}
