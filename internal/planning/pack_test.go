package planning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPackYAML = `
name: test-pack
description: phrasings used by the tests
query_patterns:
  - query_type: vendor_list
    pattern: 'enumerate.*suppliers'
    confidence: 0.85
entity_keywords:
  - entity_type: Vendor
    keywords:
      - supplier
      - suppliers
filter_patterns:
  - field: tier
    operator: "="
    entity_type: Vendor
    patterns:
      - pattern: 'tier one'
        value: 1
`

func TestParsePack(t *testing.T) {
	pack, err := parsePack([]byte(validPackYAML), "test-pack.yaml")
	require.NoError(t, err)

	assert.Equal(t, "test-pack", pack.Name)
	require.Len(t, pack.QueryPatterns, 1)
	assert.Equal(t, "vendor_list", pack.QueryPatterns[0].QueryType)
	require.Len(t, pack.EntityKeywords, 1)
	require.Len(t, pack.FilterPatterns, 1)
	assert.Equal(t, 1, pack.FilterPatterns[0].Patterns[0].Value)
}

func TestParsePackValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: no name here",
			wantErr: "pack name is required",
		},
		{
			name: "unknown query type",
			yaml: "name: p\nquery_patterns:\n  - query_type: vendor_trust\n    pattern: x\n    confidence: 0.5",
			wantErr: "unknown query type",
		},
		{
			name: "bad pattern regex",
			yaml: "name: p\nquery_patterns:\n  - query_type: vendor_list\n    pattern: '('\n    confidence: 0.5",
			wantErr: "query_patterns[0]",
		},
		{
			name: "confidence out of range",
			yaml: "name: p\nquery_patterns:\n  - query_type: vendor_list\n    pattern: x\n    confidence: 1.5",
			wantErr: "confidence must be in (0,1]",
		},
		{
			name: "unknown entity type",
			yaml: "name: p\nentity_keywords:\n  - entity_type: Widget\n    keywords: [w]",
			wantErr: "unknown entity type",
		},
		{
			name: "empty keywords",
			yaml: "name: p\nentity_keywords:\n  - entity_type: Vendor\n    keywords: []",
			wantErr: "keywords are required",
		},
		{
			name: "missing filter field",
			yaml: "name: p\nfilter_patterns:\n  - operator: '='\n    patterns:\n      - pattern: x\n        value: y",
			wantErr: "field is required",
		},
		{
			name: "unknown operator",
			yaml: "name: p\nfilter_patterns:\n  - field: f\n    operator: LIKE\n    patterns:\n      - pattern: x\n        value: y",
			wantErr: "unknown filter operator",
		},
		{
			name: "empty filter patterns",
			yaml: "name: p\nfilter_patterns:\n  - field: f\n    operator: '='\n    patterns: []",
			wantErr: "patterns are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePack([]byte(tt.yaml), tt.name+".yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyPackExtendsBuiltins(t *testing.T) {
	c := NewClassifier()
	pack, err := parsePack([]byte(validPackYAML), "test-pack.yaml")
	require.NoError(t, err)

	// The pack phrasing is unknown before the pack is applied.
	before := c.Classify("enumerate the tier one suppliers")
	assert.Equal(t, QueryTypeUnknown, before.QueryType)

	c.ApplyPack(pack)

	after := c.Classify("enumerate the tier one suppliers")
	assert.Equal(t, QueryTypeVendorList, after.QueryType)
	assert.InDelta(t, 0.85, after.Confidence, 1e-9)
	assert.Contains(t, after.Entities, EntityVendor)
	require.Len(t, after.Filters, 1)
	assert.Equal(t, "tier", after.Filters[0].Field)
	assert.Equal(t, 1, after.Filters[0].Value)

	// Built-in phrasings still classify exactly as before.
	builtin := c.Classify("Show vendors with critical risk")
	assert.Equal(t, QueryTypeVendorRisk, builtin.QueryType)
	assert.InDelta(t, 0.95, builtin.Confidence, 1e-9)
}

func TestApplyPackNewQueryTypeEntry(t *testing.T) {
	c := NewClassifier()
	pack := &PatternPack{
		Name: "trend-pack",
		QueryPatterns: []QueryPatternConfig{
			{QueryType: "risk_trends", Pattern: `risk.*over time`, Confidence: 0.8},
		},
		EntityKeywords: []EntityKeywordConfig{
			{EntityType: "Risk", Keywords: []string{"exposure"}},
		},
	}

	c.ApplyPack(pack)

	intent := c.Classify("how has exposure risk changed over time")
	assert.Equal(t, QueryTypeRiskTrends, intent.QueryType)
	assert.Contains(t, intent.Entities, EntityRisk)
}

func TestLoadPacksFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.yaml"), []byte(validPackYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	packs, err := loadPacksFromDir(dir)
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, "test-pack", packs[0].Name)
}

func TestLoadPacksFromMissingDirIsEmpty(t *testing.T) {
	packs, err := loadPacksFromDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, packs)
}

func TestLoadPacksFromDirRejectsBrokenPack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("description: nameless"), 0o600))

	_, err := loadPacksFromDir(dir)
	assert.Error(t, err)
}
