package planning

import (
	"fmt"
	"log/slog"
	"strings"
)

// InvalidIntentError reports a generator precondition failure: callers must
// only generate from intents with a known query type and at least one entity.
type InvalidIntentError struct {
	Reason string
}

func (e *InvalidIntentError) Error() string {
	return "invalid query intent: " + e.Reason
}

// UnsupportedOperatorError reports a filter operator missing from the
// rendering table. This is a programmer error, not a user input condition.
type UnsupportedOperatorError struct {
	Operator FilterOperator
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported filter operator %q", string(e.Operator))
}

// Generator renders a QueryIntent into a parameterized Cypher query. All
// filter values travel as bound parameters; the query text never embeds user
// values.
type Generator struct {
	expander *relationshipExpander
}

// NewGenerator builds a query generator.
func NewGenerator() *Generator {
	return &Generator{expander: newRelationshipExpander()}
}

// Generate renders the intent into a Cypher query and its parameter map.
// Clauses are assembled in fixed order (MATCH, WHERE, RETURN, ORDER BY,
// LIMIT) joined by newlines; absent clauses contribute nothing.
func (g *Generator) Generate(intent QueryIntent) (string, map[string]any, error) {
	if intent.QueryType == QueryTypeUnknown {
		return "", nil, &InvalidIntentError{Reason: "cannot generate query for unknown intent type"}
	}
	primary, ok := intent.PrimaryEntity()
	if !ok {
		return "", nil, &InvalidIntentError{Reason: "query intent must have at least one entity"}
	}

	variable := primary.Variable()

	matchClause, relatedVars := g.buildMatchClause(primary, intent)

	whereClause, err := buildWhereClause(variable, intent)
	if err != nil {
		return "", nil, err
	}

	returnClause := buildReturnClause(variable, relatedVars, intent)

	parts := []string{matchClause}
	if whereClause != "" {
		parts = append(parts, whereClause)
	}
	parts = append(parts, returnClause)
	if intent.SortBy != "" {
		parts = append(parts, fmt.Sprintf("ORDER BY %s.%s %s", variable, intent.SortBy, intent.SortOrder))
	}
	if intent.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", intent.Limit))
	}

	return strings.Join(parts, "\n"), extractParameters(intent), nil
}

// buildMatchClause renders the MATCH for the primary entity and, when the
// intent asks for relationships and carries secondary entities, OPTIONAL
// MATCH expansions for each of them. It returns the clause text and the
// variables bound for related entities.
func (g *Generator) buildMatchClause(primary EntityType, intent QueryIntent) (string, []string) {
	match := fmt.Sprintf("MATCH (%s:%s)", primary.Variable(), primary.Label())

	if !intent.IncludeRelationships || len(intent.Entities) < 2 {
		return match, nil
	}

	expansion, vars := g.expander.expand(primary, intent.Entities[1:])
	if expansion == "" {
		return match, nil
	}
	return match + "\n" + expansion, vars
}

func buildWhereClause(variable string, intent QueryIntent) (string, error) {
	if !intent.HasFilters() {
		return "", nil
	}

	seen := make(map[string]bool, len(intent.Filters))
	conditions := make([]string, 0, len(intent.Filters))
	for _, f := range intent.Filters {
		if seen[f.Field] {
			// Later filters on the same field silently win in both the
			// rendered condition set and the parameter map. Inherited
			// behavior, kept for compatibility; surfaced here so it is
			// visible in logs.
			slog.Warn("filter field collision, later value wins",
				"field", f.Field, "operator", string(f.Operator))
		}
		seen[f.Field] = true

		condition, err := renderFilterCondition(variable, f)
		if err != nil {
			return "", err
		}
		conditions = append(conditions, condition)
	}
	return "WHERE " + strings.Join(conditions, " AND "), nil
}

// renderFilterCondition renders one condition using the fixed operator token
// table. NOT IN is the single special case: it renders as a negated field
// expression rather than an infix token.
func renderFilterCondition(variable string, f FilterCondition) (string, error) {
	field := variable + "." + f.Field
	param := "$" + f.Field

	switch f.Operator {
	case OpEquals:
		return field + " = " + param, nil
	case OpNotEquals:
		return field + " <> " + param, nil
	case OpGreaterThan:
		return field + " > " + param, nil
	case OpLessThan:
		return field + " < " + param, nil
	case OpGreaterEqual:
		return field + " >= " + param, nil
	case OpLessEqual:
		return field + " <= " + param, nil
	case OpContains:
		return field + " CONTAINS " + param, nil
	case OpStartsWith:
		return field + " STARTS WITH " + param, nil
	case OpEndsWith:
		return field + " ENDS WITH " + param, nil
	case OpIn:
		return field + " IN " + param, nil
	case OpNotIn:
		return "NOT " + field + " IN " + param, nil
	default:
		return "", &UnsupportedOperatorError{Operator: f.Operator}
	}
}

func buildReturnClause(variable string, relatedVars []string, intent QueryIntent) string {
	if intent.HasAggregations() {
		return buildAggregationReturn(variable, intent.Aggregations)
	}
	if len(relatedVars) > 0 {
		return "RETURN " + variable + ", " + strings.Join(relatedVars, ", ")
	}
	return "RETURN " + variable
}

func buildAggregationReturn(variable string, aggregations []Aggregation) string {
	parts := make([]string, 0, len(aggregations))
	for _, agg := range aggregations {
		var part string
		switch agg.Type {
		case AggCount:
			part = fmt.Sprintf("count(%s)", variable)
		case AggSum, AggAvg, AggMax, AggMin:
			part = fmt.Sprintf("%s(%s.%s)", string(agg.Type), variable, agg.Field)
		default:
			// GROUP_BY has no function rendering; grouping in Cypher is
			// implicit in the non-aggregated return terms.
			continue
		}
		if agg.Alias != "" {
			part += " AS " + agg.Alias
		}
		parts = append(parts, part)
	}
	return "RETURN " + strings.Join(parts, ", ")
}

// extractParameters builds the flat parameter map from the filter list. The
// same last-write-wins collision semantics as the WHERE renderer apply.
func extractParameters(intent QueryIntent) map[string]any {
	parameters := make(map[string]any, len(intent.Filters))
	for _, f := range intent.Filters {
		parameters[f.Field] = f.Value
	}
	return parameters
}
