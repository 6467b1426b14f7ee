package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

func TestIsFollowupQuery(t *testing.T) {
	followups := []string{
		"which of them are critical?",
		"only the active ones",
		"show me the ones with issues",
		"just the high risk",
		"what about it?",
	}
	for _, query := range followups {
		assert.True(t, isFollowupQuery(query), query)
	}

	standalone := []string{
		"show all vendors",
		"count vendors",
		"compliance status for BSA",
	}
	for _, query := range standalone {
		assert.False(t, isFollowupQuery(query), query)
	}
}

func TestIsSimpleFollowup(t *testing.T) {
	assert.True(t, isSimpleFollowup("only critical ones"))
	assert.True(t, isSimpleFollowup("which ones failed"))
	assert.True(t, isSimpleFollowup("with high risk"))
	assert.False(t, isSimpleFollowup("tell me which ones failed"), "anchored at the start")
	assert.False(t, isSimpleFollowup("count all vendors"))
}

func TestClassifyWithContextStandaloneQueryUntouched(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("previous", intentWith(planning.QueryTypeControlCoverage, planning.EntityControl), nil)

	intent := c.ClassifyWithContext("show all vendors", ctx)

	assert.Equal(t, planning.QueryTypeVendorList, intent.QueryType)
	assert.Equal(t, []planning.EntityType{planning.EntityVendor}, intent.Entities,
		"no inheritance when the query names its own entities")
}

func TestClassifyWithContextInheritsEntities(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("show all vendors", intentWith(planning.QueryTypeVendorList, planning.EntityVendor), nil)

	intent := c.ClassifyWithContext("only the critical ones", ctx)

	assert.Equal(t, []planning.EntityType{planning.EntityVendor}, intent.Entities)
}

func TestClassifyWithContextInheritsQueryTypeForSimpleFollowup(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("show all vendors", intentWith(planning.QueryTypeVendorList, planning.EntityVendor), nil)

	intent := c.ClassifyWithContext("only the critical ones", ctx)

	assert.Equal(t, planning.QueryTypeVendorList, intent.QueryType)
}

func TestClassifyWithContextNoTypeInheritanceWhenClassified(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("show all vendors", intentWith(planning.QueryTypeVendorList, planning.EntityVendor), nil)

	// "which vendors with critical risk" is a follow-up by phrasing but
	// classifies on its own; the classified type stays.
	intent := c.ClassifyWithContext("which vendors with critical risk", ctx)

	assert.Equal(t, planning.QueryTypeVendorRisk, intent.QueryType)
}

func TestClassifyWithContextNilContext(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())

	intent := c.ClassifyWithContext("only the critical ones", nil)

	assert.Equal(t, planning.QueryTypeUnknown, intent.QueryType)
	assert.Empty(t, intent.Entities)
}

func TestClassifyWithContextEmptyHistory(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)

	intent := c.ClassifyWithContext("only the critical ones", ctx)

	assert.Equal(t, planning.QueryTypeUnknown, intent.QueryType)
	assert.Empty(t, intent.Entities)
}

func TestClassifyWithContextCapsInheritedEntities(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("q1", intentWith(planning.QueryTypeVendorList,
		planning.EntityVendor, planning.EntityControl), nil)
	ctx.AddQuery("q2", intentWith(planning.QueryTypeRiskAssessment,
		planning.EntityRisk, planning.EntityRegulation), nil)

	intent := c.ClassifyWithContext("only the recent ones", ctx)

	assert.LessOrEqual(t, len(intent.Entities), maxInheritedEntities)
	assert.Equal(t, []planning.EntityType{planning.EntityRisk, planning.EntityRegulation, planning.EntityVendor},
		intent.Entities)
}

func TestEnhanceWithContextDoesNotMutateInput(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("show all vendors", intentWith(planning.QueryTypeVendorList, planning.EntityVendor), nil)

	original := planning.QueryIntent{
		QueryType:  planning.QueryTypeUnknown,
		SortOrder:  planning.SortAsc,
		Confidence: 0.5,
		Metadata:   map[string]any{},
	}

	enhanced := c.enhanceWithContext(original, "only the critical ones", ctx)

	assert.Empty(t, original.Entities)
	assert.Equal(t, planning.QueryTypeUnknown, original.QueryType)
	assert.NotEmpty(t, enhanced.Entities)
}

func TestEnhanceWithContextIsIdempotent(t *testing.T) {
	c := NewContextAwareClassifier(planning.NewClassifier())
	ctx := newTestContext(t, 5)
	ctx.AddQuery("show all vendors", intentWith(planning.QueryTypeVendorList, planning.EntityVendor), nil)

	once := c.ClassifyWithContext("only the critical ones", ctx)
	twice := c.enhanceWithContext(once, "only the critical ones", ctx)

	assert.Equal(t, once.QueryType, twice.QueryType)
	assert.Equal(t, once.Entities, twice.Entities)
}
