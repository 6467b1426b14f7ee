package planning

import (
	"log/slog"
	"strings"
)

// Classifier maps natural language queries to structured QueryIntents using
// ordered pattern tables and keyword heuristics. Classification is total: any
// input, including empty or nonsense text, yields a well-formed intent.
// Unclassifiable queries come back as QueryTypeUnknown at low confidence.
type Classifier struct {
	queryPatterns  []queryTypePatterns
	entityKeywords []entityKeywords
	filterPatterns []filterPattern
	aggKeywords    []aggregationKeywords
}

// NewClassifier builds a classifier with the built-in pattern tables.
// Additional tables can be layered on with ApplyPack.
func NewClassifier() *Classifier {
	return &Classifier{
		queryPatterns:  defaultQueryTypePatterns(),
		entityKeywords: defaultEntityKeywords(),
		filterPatterns: defaultFilterPatterns(),
		aggKeywords:    defaultAggregationKeywords(),
	}
}

// unknownConfidence is both the confidence assigned to unclassified queries
// and the floor a pattern match must strictly exceed to win.
const unknownConfidence = 0.5

// Classify analyzes a natural language query and returns its structured
// intent. It never fails.
func (c *Classifier) Classify(query string) QueryIntent {
	lower := strings.ToLower(strings.TrimSpace(query))

	queryType, confidence := c.classifyQueryType(lower)
	entities := c.extractEntities(lower)
	filters := c.extractFilters(lower)
	aggregations := c.extractAggregations(lower)
	sortBy, sortOrder := extractSorting(lower)
	limit := extractLimit(lower)

	intent := QueryIntent{
		QueryType:            queryType,
		Entities:             entities,
		Filters:              filters,
		Aggregations:         aggregations,
		SortBy:               sortBy,
		SortOrder:            sortOrder,
		Limit:                limit,
		IncludeRelationships: wantsRelationships(lower),
		Confidence:           confidence,
		Metadata:             map[string]any{"original_query": query},
	}

	slog.Debug("classified query",
		"query_type", intent.QueryType,
		"entities", len(intent.Entities),
		"filters", len(intent.Filters),
		"confidence", intent.Confidence)

	return intent
}

// classifyQueryType scans every pattern table entry and keeps the single
// highest-confidence match strictly above the floor. Ties do not override:
// the first maximum encountered in table order wins.
func (c *Classifier) classifyQueryType(query string) (QueryType, float64) {
	best := QueryTypeUnknown
	bestConfidence := unknownConfidence

	for _, entry := range c.queryPatterns {
		for _, p := range entry.patterns {
			if p.re.MatchString(query) && p.confidence > bestConfidence {
				best = entry.queryType
				bestConfidence = p.confidence
			}
		}
	}
	return best, bestConfidence
}

// extractEntities returns entity types whose keywords appear in the query,
// in first-seen table order, each at most once.
func (c *Classifier) extractEntities(query string) []EntityType {
	var entities []EntityType
	seen := make(map[EntityType]bool)

	for _, entry := range c.entityKeywords {
		for _, re := range entry.keywords {
			if re.MatchString(query) && !seen[entry.entityType] {
				entities = append(entities, entry.entityType)
				seen[entry.entityType] = true
			}
		}
	}
	return entities
}

// extractFilters appends one condition per matching filter-value pattern.
// Values are the canonical literals from the table, never substrings of the
// query. Distinct patterns may produce filters on the same field; nothing is
// deduplicated here (the generator logs collisions).
func (c *Classifier) extractFilters(query string) []FilterCondition {
	var filters []FilterCondition

	for _, fp := range c.filterPatterns {
		for _, vp := range fp.patterns {
			if vp.re.MatchString(query) {
				filters = append(filters, FilterCondition{
					Field:      fp.field,
					Operator:   fp.operator,
					Value:      vp.value,
					EntityType: fp.entityType,
				})
			}
		}
	}
	return filters
}

// extractAggregations appends one aggregation per matching keyword. The
// target field for non-COUNT aggregations is guessed from a small fixed
// vocabulary; no guess leaves the field empty. Returns nil when nothing
// matched.
func (c *Classifier) extractAggregations(query string) []Aggregation {
	var aggregations []Aggregation

	for _, entry := range c.aggKeywords {
		for _, re := range entry.keywords {
			if re.MatchString(query) {
				field := ""
				if entry.aggType != AggCount {
					field = guessAggregationField(query)
				}
				aggregations = append(aggregations, Aggregation{
					Type:  entry.aggType,
					Field: field,
					Alias: string(entry.aggType) + "_result",
				})
			}
		}
	}
	return aggregations
}

func guessAggregationField(query string) string {
	for _, field := range aggregationFieldVocabulary {
		if strings.Contains(query, field) {
			return field
		}
	}
	return ""
}

// extractSorting detects a sort field and a direction independently: a query
// can set DESC via cue words without naming a sort field.
func extractSorting(query string) (string, string) {
	sortBy := ""
	sortOrder := SortAsc

	if sortCueRe.MatchString(query) {
		if m := sortFieldRe.FindStringSubmatch(query); m != nil {
			sortBy = m[1]
		}
	}
	if descCueRe.MatchString(query) {
		sortOrder = SortDesc
	}
	return sortBy, sortOrder
}

func extractLimit(query string) int {
	m := limitRe.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n := 0
	for _, ch := range m[1] {
		n = n*10 + int(ch-'0')
	}
	return n
}

func wantsRelationships(query string) bool {
	for _, keyword := range relationshipKeywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}
