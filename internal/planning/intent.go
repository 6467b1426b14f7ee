// Package planning turns natural language analyst questions into executable
// Cypher. It contains the intent vocabulary, the pattern-based intent
// classifier, and the template-driven query generator.
package planning

import (
	"fmt"
)

// QueryType identifies the analytical intent of a query.
type QueryType string

const (
	// Vendor queries
	QueryTypeVendorRisk          QueryType = "vendor_risk"
	QueryTypeVendorList          QueryType = "vendor_list"
	QueryTypeVendorDetails       QueryType = "vendor_details"
	QueryTypeVendorControls      QueryType = "vendor_controls"
	QueryTypeVendorConcentration QueryType = "vendor_concentration"

	// Compliance queries
	QueryTypeComplianceStatus  QueryType = "compliance_status"
	QueryTypeRegulationDetails QueryType = "regulation_details"
	QueryTypeComplianceGaps    QueryType = "compliance_gaps"

	// Control queries
	QueryTypeControlEffectiveness QueryType = "control_effectiveness"
	QueryTypeControlCoverage      QueryType = "control_coverage"
	QueryTypeControlBlastRadius   QueryType = "control_blast_radius"

	// Risk queries
	QueryTypeRiskAssessment QueryType = "risk_assessment"
	QueryTypeRiskTrends     QueryType = "risk_trends"
	QueryTypeIssueTracking  QueryType = "issue_tracking"

	// Relationship queries
	QueryTypeDependencyAnalysis QueryType = "dependency_analysis"
	QueryTypeImpactAnalysis     QueryType = "impact_analysis"

	// Sentinel for unclassifiable queries
	QueryTypeUnknown QueryType = "unknown"
)

var queryTypes = map[QueryType]bool{
	QueryTypeVendorRisk:           true,
	QueryTypeVendorList:           true,
	QueryTypeVendorDetails:        true,
	QueryTypeVendorControls:       true,
	QueryTypeVendorConcentration:  true,
	QueryTypeComplianceStatus:     true,
	QueryTypeRegulationDetails:    true,
	QueryTypeComplianceGaps:       true,
	QueryTypeControlEffectiveness: true,
	QueryTypeControlCoverage:      true,
	QueryTypeControlBlastRadius:   true,
	QueryTypeRiskAssessment:       true,
	QueryTypeRiskTrends:           true,
	QueryTypeIssueTracking:        true,
	QueryTypeDependencyAnalysis:   true,
	QueryTypeImpactAnalysis:       true,
	QueryTypeUnknown:              true,
}

// ParseQueryType validates a string against the closed query type set.
func ParseQueryType(s string) (QueryType, error) {
	qt := QueryType(s)
	if !queryTypes[qt] {
		return QueryTypeUnknown, fmt.Errorf("unknown query type %q", s)
	}
	return qt, nil
}

func (q QueryType) String() string { return string(q) }

// EntityType identifies a node category in the knowledge graph. The value is
// the Neo4j node label.
type EntityType string

const (
	EntityVendor       EntityType = "Vendor"
	EntityControl      EntityType = "Control"
	EntityRegulation   EntityType = "Regulation"
	EntityRisk         EntityType = "Risk"
	EntityIssue        EntityType = "Issue"
	EntityAssessment   EntityType = "Assessment"
	EntityBusinessUnit EntityType = "BusinessUnit"
	EntityTechnology   EntityType = "Technology"
)

var entityTypes = map[EntityType]bool{
	EntityVendor:       true,
	EntityControl:      true,
	EntityRegulation:   true,
	EntityRisk:         true,
	EntityIssue:        true,
	EntityAssessment:   true,
	EntityBusinessUnit: true,
	EntityTechnology:   true,
}

// ParseEntityType validates a string against the closed entity type set.
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	if !entityTypes[et] {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return et, nil
}

// Label returns the Neo4j node label for this entity type.
func (e EntityType) Label() string { return string(e) }

// Variable returns the Cypher variable used for this entity type in
// generated queries: the first letter of the label, lower-cased.
func (e EntityType) Variable() string {
	if e == "" {
		return ""
	}
	return string(e[0] | 0x20)
}

func (e EntityType) String() string { return string(e) }

// FilterOperator is a comparison or string operator in a filter condition.
type FilterOperator string

const (
	OpEquals       FilterOperator = "="
	OpNotEquals    FilterOperator = "!="
	OpGreaterThan  FilterOperator = ">"
	OpLessThan     FilterOperator = "<"
	OpGreaterEqual FilterOperator = ">="
	OpLessEqual    FilterOperator = "<="
	OpContains     FilterOperator = "CONTAINS"
	OpStartsWith   FilterOperator = "STARTS WITH"
	OpEndsWith     FilterOperator = "ENDS WITH"
	OpIn           FilterOperator = "IN"
	OpNotIn        FilterOperator = "NOT IN"
)

var filterOperators = map[FilterOperator]bool{
	OpEquals:       true,
	OpNotEquals:    true,
	OpGreaterThan:  true,
	OpLessThan:     true,
	OpGreaterEqual: true,
	OpLessEqual:    true,
	OpContains:     true,
	OpStartsWith:   true,
	OpEndsWith:     true,
	OpIn:           true,
	OpNotIn:        true,
}

// ParseFilterOperator validates a string against the closed operator set.
func ParseFilterOperator(s string) (FilterOperator, error) {
	op := FilterOperator(s)
	if !filterOperators[op] {
		return "", fmt.Errorf("unknown filter operator %q", s)
	}
	return op, nil
}

func (o FilterOperator) String() string { return string(o) }

// AggregationType identifies an aggregation function.
type AggregationType string

const (
	AggCount   AggregationType = "count"
	AggSum     AggregationType = "sum"
	AggAvg     AggregationType = "avg"
	AggMin     AggregationType = "min"
	AggMax     AggregationType = "max"
	AggGroupBy AggregationType = "group_by"
)

func (a AggregationType) String() string { return string(a) }

// FilterCondition is a single property filter on a query.
//
// Value is passed through verbatim as a bound query parameter; no escaping
// happens at this layer. Parameter binding in the execution layer is the
// injection safety mechanism.
type FilterCondition struct {
	Field      string
	Operator   FilterOperator
	Value      any
	EntityType EntityType // optional; empty means unscoped
}

// NewFilterCondition builds a filter condition, rejecting empty fields.
func NewFilterCondition(field string, op FilterOperator, value any) (FilterCondition, error) {
	if field == "" {
		return FilterCondition{}, fmt.Errorf("filter field cannot be empty")
	}
	return FilterCondition{Field: field, Operator: op, Value: value}, nil
}

// Aggregation is a single aggregation operation on a query.
type Aggregation struct {
	Type    AggregationType
	Field   string // required for every type except COUNT
	Alias   string
	GroupBy []string
}

// NewAggregation builds an aggregation, enforcing that every type except
// COUNT names a field.
func NewAggregation(typ AggregationType, field, alias string) (Aggregation, error) {
	if typ != AggCount && field == "" {
		return Aggregation{}, fmt.Errorf("aggregation type %s requires a field", typ)
	}
	return Aggregation{Type: typ, Field: field, Alias: alias}, nil
}

// SortOrder values accepted by QueryIntent.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// QueryIntent is the structured representation of a classified query. It is
// a transient plan: produced by the classifier, optionally rewritten by the
// enhancement layers (each returning a fresh value), and consumed once by the
// generator. It is never persisted as-is.
type QueryIntent struct {
	QueryType            QueryType
	Entities             []EntityType // first element is the primary entity
	Filters              []FilterCondition
	Aggregations         []Aggregation // nil and empty both mean "none"
	SortBy               string
	SortOrder            string
	Limit                int // 0 means no limit
	IncludeRelationships bool
	Confidence           float64
	Metadata             map[string]any
}

// NewQueryIntent builds a validated intent. Confidence must be in [0,1] and
// sortOrder must be ASC or DESC (empty defaults to ASC).
func NewQueryIntent(queryType QueryType, entities []EntityType, confidence float64, sortOrder string) (QueryIntent, error) {
	if _, err := ParseQueryType(string(queryType)); err != nil {
		return QueryIntent{}, err
	}
	for _, e := range entities {
		if _, err := ParseEntityType(string(e)); err != nil {
			return QueryIntent{}, err
		}
	}
	if confidence < 0 || confidence > 1 {
		return QueryIntent{}, fmt.Errorf("confidence must be between 0 and 1, got %v", confidence)
	}
	if sortOrder == "" {
		sortOrder = SortAsc
	}
	if sortOrder != SortAsc && sortOrder != SortDesc {
		return QueryIntent{}, fmt.Errorf("sort order must be %q or %q, got %q", SortAsc, SortDesc, sortOrder)
	}
	return QueryIntent{
		QueryType:  queryType,
		Entities:   entities,
		SortOrder:  sortOrder,
		Confidence: confidence,
		Metadata:   map[string]any{},
	}, nil
}

// PrimaryEntity returns the first entity, or false when the intent has none.
func (qi QueryIntent) PrimaryEntity() (EntityType, bool) {
	if len(qi.Entities) == 0 {
		return "", false
	}
	return qi.Entities[0], true
}

// HasFilters reports whether any filter conditions are present.
func (qi QueryIntent) HasFilters() bool { return len(qi.Filters) > 0 }

// HasAggregations reports whether any aggregations are present. A nil slice
// and an empty slice are equivalent.
func (qi QueryIntent) HasAggregations() bool { return len(qi.Aggregations) > 0 }

// Clone returns a deep copy. Enhancement stages operate on clones so the
// incoming intent is never aliased or mutated.
func (qi QueryIntent) Clone() QueryIntent {
	out := qi
	out.Entities = append([]EntityType(nil), qi.Entities...)
	out.Filters = append([]FilterCondition(nil), qi.Filters...)
	if qi.Aggregations != nil {
		out.Aggregations = append([]Aggregation(nil), qi.Aggregations...)
	}
	out.Metadata = make(map[string]any, len(qi.Metadata))
	for k, v := range qi.Metadata {
		out.Metadata[k] = v
	}
	return out
}

// ToMap converts the intent to a plain map for serialization into history
// records and logs.
func (qi QueryIntent) ToMap() map[string]any {
	entities := make([]string, len(qi.Entities))
	for i, e := range qi.Entities {
		entities[i] = string(e)
	}
	filters := make([]map[string]any, len(qi.Filters))
	for i, f := range qi.Filters {
		filters[i] = map[string]any{
			"field":    f.Field,
			"operator": string(f.Operator),
			"value":    f.Value,
		}
		if f.EntityType != "" {
			filters[i]["entity_type"] = string(f.EntityType)
		}
	}
	m := map[string]any{
		"query_type":            string(qi.QueryType),
		"entities":              entities,
		"filters":               filters,
		"sort_by":               qi.SortBy,
		"sort_order":            qi.SortOrder,
		"limit":                 qi.Limit,
		"include_relationships": qi.IncludeRelationships,
		"confidence":            qi.Confidence,
		"metadata":              qi.Metadata,
	}
	if qi.HasAggregations() {
		aggs := make([]map[string]any, len(qi.Aggregations))
		for i, a := range qi.Aggregations {
			aggs[i] = map[string]any{
				"type":  string(a.Type),
				"field": a.Field,
				"alias": a.Alias,
			}
		}
		m["aggregations"] = aggs
	}
	return m
}
