package orchestration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcakvpt/neo4j-orchestration-framework/internal/memory"
	"github.com/gcakvpt/neo4j-orchestration-framework/internal/planning"
)

func newTrainedTracker(t *testing.T) *PreferenceTracker {
	t.Helper()
	tracker := NewPreferenceTracker(memory.NewInMemoryPatternStore(), "test-session")
	for i := 0; i < 3; i++ {
		require.NoError(t, tracker.RecordQueryPreference(context.Background(), criticalVendorIntent(), true))
	}
	return tracker
}

func TestPatternClassifierAppliesLearnedFilters(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), newTrainedTracker(t))

	intent, err := c.Classify(context.Background(), "show all vendors with risk", true)
	require.NoError(t, err)

	require.Len(t, intent.Filters, 1)
	assert.Equal(t, "riskLevel", intent.Filters[0].Field)
	assert.Equal(t, planning.OpEquals, intent.Filters[0].Operator)
	assert.Equal(t, "Critical", intent.Filters[0].Value)

	reasons, ok := intent.Metadata["pattern_enhancements"].([]string)
	require.True(t, ok)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "vendor_risk")
}

func TestPatternClassifierWithoutEnhancements(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), newTrainedTracker(t))

	intent, err := c.Classify(context.Background(), "show all vendors with risk", false)
	require.NoError(t, err)

	assert.Empty(t, intent.Filters)
	assert.NotContains(t, intent.Metadata, "pattern_enhancements")
}

func TestPatternClassifierNilTrackerPassesThrough(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), nil)

	intent, err := c.Classify(context.Background(), "show all vendors with risk", true)
	require.NoError(t, err)

	assert.Empty(t, intent.Filters)
}

func TestEnhanceNeverOverridesExplicitFilters(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), newTrainedTracker(t))

	intent, err := c.Classify(context.Background(), "show vendors with low risk", true)
	require.NoError(t, err)

	require.Len(t, intent.Filters, 1)
	assert.Equal(t, "Low", intent.Filters[0].Value, "the explicit filter wins over the learned one")
}

func TestEnhanceIsIdempotent(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), newTrainedTracker(t))

	once, err := c.Classify(context.Background(), "show all vendors with risk", true)
	require.NoError(t, err)

	twice, err := c.Enhance(context.Background(), once)
	require.NoError(t, err)

	assert.Equal(t, once.Filters, twice.Filters)
	assert.Equal(t, once.Metadata["pattern_enhancements"], twice.Metadata["pattern_enhancements"])
}

func TestEnhanceDoesNotMutateInput(t *testing.T) {
	c := NewPatternEnhancedClassifier(planning.NewClassifier(), newTrainedTracker(t))

	original := planning.QueryIntent{
		QueryType:  planning.QueryTypeVendorRisk,
		Entities:   []planning.EntityType{planning.EntityVendor},
		SortOrder:  planning.SortAsc,
		Confidence: 0.9,
		Metadata:   map[string]any{},
	}

	enhanced, err := c.Enhance(context.Background(), original)
	require.NoError(t, err)

	assert.Empty(t, original.Filters)
	assert.NotContains(t, original.Metadata, "pattern_enhancements")
	assert.Len(t, enhanced.Filters, 1)
}
