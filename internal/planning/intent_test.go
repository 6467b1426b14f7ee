package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryIntent(t *testing.T) {
	intent, err := NewQueryIntent(QueryTypeVendorRisk, []EntityType{EntityVendor}, 0.95, "")
	require.NoError(t, err)

	assert.Equal(t, QueryTypeVendorRisk, intent.QueryType)
	assert.Equal(t, []EntityType{EntityVendor}, intent.Entities)
	assert.Equal(t, SortAsc, intent.SortOrder, "empty sort order defaults to ASC")
	assert.InDelta(t, 0.95, intent.Confidence, 1e-9)
	assert.NotNil(t, intent.Metadata)
}

func TestNewQueryIntentValidation(t *testing.T) {
	tests := []struct {
		name       string
		queryType  QueryType
		entities   []EntityType
		confidence float64
		sortOrder  string
	}{
		{"invalid query type", QueryType("bogus"), nil, 0.9, ""},
		{"invalid entity", QueryTypeVendorList, []EntityType{EntityType("Widget")}, 0.9, ""},
		{"confidence below zero", QueryTypeVendorList, nil, -0.1, ""},
		{"confidence above one", QueryTypeVendorList, nil, 1.1, ""},
		{"bad sort order", QueryTypeVendorList, nil, 0.9, "sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQueryIntent(tt.queryType, tt.entities, tt.confidence, tt.sortOrder)
			assert.Error(t, err)
		})
	}
}

func TestParseQueryType(t *testing.T) {
	qt, err := ParseQueryType("vendor_risk")
	require.NoError(t, err)
	assert.Equal(t, QueryTypeVendorRisk, qt)

	qt, err = ParseQueryType("vendor_trust")
	assert.Error(t, err)
	assert.Equal(t, QueryTypeUnknown, qt)
}

func TestParseEntityType(t *testing.T) {
	et, err := ParseEntityType("BusinessUnit")
	require.NoError(t, err)
	assert.Equal(t, EntityBusinessUnit, et)

	_, err = ParseEntityType("vendor")
	assert.Error(t, err, "entity types are case sensitive node labels")
}

func TestParseFilterOperator(t *testing.T) {
	op, err := ParseFilterOperator("STARTS WITH")
	require.NoError(t, err)
	assert.Equal(t, OpStartsWith, op)

	_, err = ParseFilterOperator("LIKE")
	assert.Error(t, err)
}

func TestEntityVariable(t *testing.T) {
	assert.Equal(t, "v", EntityVendor.Variable())
	assert.Equal(t, "c", EntityControl.Variable())
	assert.Equal(t, "b", EntityBusinessUnit.Variable())
	assert.Equal(t, "", EntityType("").Variable())
}

func TestNewFilterCondition(t *testing.T) {
	f, err := NewFilterCondition("riskLevel", OpEquals, "High")
	require.NoError(t, err)
	assert.Equal(t, "riskLevel", f.Field)

	_, err = NewFilterCondition("", OpEquals, "High")
	assert.Error(t, err)
}

func TestNewAggregationRequiresFieldExceptCount(t *testing.T) {
	_, err := NewAggregation(AggCount, "", "count_result")
	assert.NoError(t, err)

	_, err = NewAggregation(AggAvg, "", "avg_result")
	assert.Error(t, err)

	agg, err := NewAggregation(AggAvg, "riskScore", "avg_result")
	require.NoError(t, err)
	assert.Equal(t, "riskScore", agg.Field)
}

func TestPrimaryEntity(t *testing.T) {
	intent := QueryIntent{Entities: []EntityType{EntityControl, EntityVendor}}
	primary, ok := intent.PrimaryEntity()
	assert.True(t, ok)
	assert.Equal(t, EntityControl, primary)

	_, ok = QueryIntent{}.PrimaryEntity()
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	original := QueryIntent{
		QueryType: QueryTypeVendorRisk,
		Entities:  []EntityType{EntityVendor},
		Filters: []FilterCondition{
			{Field: "riskLevel", Operator: OpEquals, Value: "High"},
		},
		Aggregations: []Aggregation{{Type: AggCount, Alias: "count_result"}},
		SortOrder:    SortAsc,
		Confidence:   0.95,
		Metadata:     map[string]any{"original_query": "show high risk vendors"},
	}

	clone := original.Clone()
	clone.Entities[0] = EntityControl
	clone.Filters[0].Value = "Low"
	clone.Aggregations[0].Alias = "other"
	clone.Metadata["extra"] = true

	assert.Equal(t, EntityVendor, original.Entities[0])
	assert.Equal(t, "High", original.Filters[0].Value)
	assert.Equal(t, "count_result", original.Aggregations[0].Alias)
	assert.NotContains(t, original.Metadata, "extra")
}

func TestCloneKeepsNilAggregationsNil(t *testing.T) {
	original := QueryIntent{QueryType: QueryTypeVendorList, Entities: []EntityType{EntityVendor}}
	assert.Nil(t, original.Clone().Aggregations)
}

func TestToMap(t *testing.T) {
	intent := QueryIntent{
		QueryType: QueryTypeVendorRisk,
		Entities:  []EntityType{EntityVendor, EntityRisk},
		Filters: []FilterCondition{
			{Field: "riskLevel", Operator: OpEquals, Value: "Critical", EntityType: EntityVendor},
		},
		SortBy:     "name",
		SortOrder:  SortDesc,
		Limit:      5,
		Confidence: 0.95,
		Metadata:   map[string]any{},
	}

	m := intent.ToMap()

	assert.Equal(t, "vendor_risk", m["query_type"])
	assert.Equal(t, []string{"Vendor", "Risk"}, m["entities"])
	assert.Equal(t, "name", m["sort_by"])
	assert.Equal(t, "DESC", m["sort_order"])
	assert.Equal(t, 5, m["limit"])
	assert.NotContains(t, m, "aggregations")

	filters, ok := m["filters"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, filters, 1)
	assert.Equal(t, "riskLevel", filters[0]["field"])
	assert.Equal(t, "=", filters[0]["operator"])
	assert.Equal(t, "Vendor", filters[0]["entity_type"])
}

func TestToMapIncludesAggregations(t *testing.T) {
	intent := QueryIntent{
		QueryType:    QueryTypeVendorList,
		Entities:     []EntityType{EntityVendor},
		Aggregations: []Aggregation{{Type: AggCount, Alias: "count_result"}},
		SortOrder:    SortAsc,
		Confidence:   0.9,
		Metadata:     map[string]any{},
	}

	m := intent.ToMap()
	aggs, ok := m["aggregations"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, aggs, 1)
	assert.Equal(t, "count", aggs[0]["type"])
	assert.Equal(t, "count_result", aggs[0]["alias"])
}
