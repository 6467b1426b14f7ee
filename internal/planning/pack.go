package planning

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// PatternPack is a YAML-defined extension to the classifier's built-in
// tables. Packs let deployments teach the classifier new phrasings and
// filter vocabulary without a code change; the built-in tables always apply
// first and packs only append.
type PatternPack struct {
	// Name is the unique pack identifier (e.g. "grc-extensions")
	Name string `yaml:"name"`

	// Description explains what phrasings the pack covers
	Description string `yaml:"description,omitempty"`

	// QueryPatterns add query-type classification patterns
	QueryPatterns []QueryPatternConfig `yaml:"query_patterns,omitempty"`

	// EntityKeywords add entity detection keywords
	EntityKeywords []EntityKeywordConfig `yaml:"entity_keywords,omitempty"`

	// FilterPatterns add filter extraction patterns
	FilterPatterns []FilterPatternConfig `yaml:"filter_patterns,omitempty"`
}

// QueryPatternConfig is one query-type pattern in a pack.
type QueryPatternConfig struct {
	QueryType  string  `yaml:"query_type"`
	Pattern    string  `yaml:"pattern"`
	Confidence float64 `yaml:"confidence"`
}

// EntityKeywordConfig is one entity keyword set in a pack. Keywords are
// regex fragments; the loader anchors them on word boundaries.
type EntityKeywordConfig struct {
	EntityType string   `yaml:"entity_type"`
	Keywords   []string `yaml:"keywords"`
}

// FilterPatternConfig is one filter extraction rule in a pack.
type FilterPatternConfig struct {
	Field      string              `yaml:"field"`
	Operator   string              `yaml:"operator"`
	EntityType string              `yaml:"entity_type,omitempty"`
	Patterns   []FilterValueConfig `yaml:"patterns"`
}

// FilterValueConfig maps a pattern to the canonical literal it extracts.
type FilterValueConfig struct {
	Pattern string `yaml:"pattern"`
	Value   any    `yaml:"value"`
}

// EmbeddedPacks can be set with an embedded filesystem of pack YAML files.
var EmbeddedPacks embed.FS

// LoadPacks loads pattern packs, preferring the embedded filesystem and
// falling back to the OS filesystem directory (for development and testing).
func LoadPacks(packDir string) ([]*PatternPack, error) {
	packs, err := loadEmbeddedPacks()
	if err == nil && len(packs) > 0 {
		slog.Info("loaded pattern packs from embedded filesystem", "count", len(packs))
		return packs, nil
	}
	return loadPacksFromDir(packDir)
}

func loadEmbeddedPacks() ([]*PatternPack, error) {
	if _, err := fs.Stat(EmbeddedPacks, "."); err != nil {
		return nil, fmt.Errorf("embedded FS not available")
	}

	var packs []*PatternPack
	err := fs.WalkDir(EmbeddedPacks, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(d.Name()) {
			return nil
		}
		data, err := EmbeddedPacks.ReadFile(path)
		if err != nil {
			slog.Error("failed to read embedded pattern pack", "path", path, "error", err)
			return err
		}
		pack, err := parsePack(data, path)
		if err != nil {
			slog.Error("failed to parse embedded pattern pack", "path", path, "error", err)
			return err
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded packs: %w", err)
	}
	return packs, nil
}

func loadPacksFromDir(packDir string) ([]*PatternPack, error) {
	var packs []*PatternPack

	if _, err := os.Stat(packDir); os.IsNotExist(err) {
		slog.Warn("pattern pack directory does not exist", "dir", packDir)
		return packs, nil
	}

	err := filepath.Walk(packDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isYAML(info.Name()) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read pattern pack", "path", path, "error", err)
			return err
		}
		pack, err := parsePack(data, path)
		if err != nil {
			slog.Error("failed to parse pattern pack", "path", path, "error", err)
			return err
		}
		packs = append(packs, pack)
		slog.Info("loaded pattern pack", "pack", pack.Name, "path", path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk pack directory: %w", err)
	}
	return packs, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// parsePack parses and validates a pack definition. Every referenced query
// type, entity type, and operator must be in the closed vocabularies and
// every pattern must compile.
func parsePack(data []byte, path string) (*PatternPack, error) {
	var pack PatternPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if pack.Name == "" {
		return nil, fmt.Errorf("pack name is required in %s", path)
	}
	for i, qp := range pack.QueryPatterns {
		if _, err := ParseQueryType(qp.QueryType); err != nil {
			return nil, fmt.Errorf("query_patterns[%d] in %s: %w", i, path, err)
		}
		if _, err := regexp.Compile(`(?i)` + qp.Pattern); err != nil {
			return nil, fmt.Errorf("query_patterns[%d] in %s: %w", i, path, err)
		}
		if qp.Confidence <= 0 || qp.Confidence > 1 {
			return nil, fmt.Errorf("query_patterns[%d] in %s: confidence must be in (0,1]", i, path)
		}
	}
	for i, ek := range pack.EntityKeywords {
		if _, err := ParseEntityType(ek.EntityType); err != nil {
			return nil, fmt.Errorf("entity_keywords[%d] in %s: %w", i, path, err)
		}
		if len(ek.Keywords) == 0 {
			return nil, fmt.Errorf("entity_keywords[%d] in %s: keywords are required", i, path)
		}
		for _, keyword := range ek.Keywords {
			if _, err := regexp.Compile(`(?i)\b` + keyword + `\b`); err != nil {
				return nil, fmt.Errorf("entity_keywords[%d] in %s: %w", i, path, err)
			}
		}
	}
	for i, fp := range pack.FilterPatterns {
		if fp.Field == "" {
			return nil, fmt.Errorf("filter_patterns[%d] in %s: field is required", i, path)
		}
		if _, err := ParseFilterOperator(fp.Operator); err != nil {
			return nil, fmt.Errorf("filter_patterns[%d] in %s: %w", i, path, err)
		}
		if fp.EntityType != "" {
			if _, err := ParseEntityType(fp.EntityType); err != nil {
				return nil, fmt.Errorf("filter_patterns[%d] in %s: %w", i, path, err)
			}
		}
		if len(fp.Patterns) == 0 {
			return nil, fmt.Errorf("filter_patterns[%d] in %s: patterns are required", i, path)
		}
		for _, vp := range fp.Patterns {
			if _, err := regexp.Compile(`(?i)` + vp.Pattern); err != nil {
				return nil, fmt.Errorf("filter_patterns[%d] in %s: %w", i, path, err)
			}
		}
	}
	return &pack, nil
}

// ApplyPack appends a pack's patterns to the classifier tables. Patterns for
// a query type already in the tables extend that type's list; new query
// types get their own entry. Pack entries never replace built-ins.
func (c *Classifier) ApplyPack(pack *PatternPack) {
	for _, qpc := range pack.QueryPatterns {
		queryType := QueryType(qpc.QueryType)
		compiled := qp(qpc.Pattern, qpc.Confidence)

		appended := false
		for i := range c.queryPatterns {
			if c.queryPatterns[i].queryType == queryType {
				c.queryPatterns[i].patterns = append(c.queryPatterns[i].patterns, compiled)
				appended = true
				break
			}
		}
		if !appended {
			c.queryPatterns = append(c.queryPatterns, queryTypePatterns{
				queryType: queryType,
				patterns:  []queryPattern{compiled},
			})
		}
	}

	for _, ekc := range pack.EntityKeywords {
		entityType := EntityType(ekc.EntityType)
		compiled := make([]*regexp.Regexp, len(ekc.Keywords))
		for i, keyword := range ekc.Keywords {
			compiled[i] = kw(keyword)
		}

		appended := false
		for i := range c.entityKeywords {
			if c.entityKeywords[i].entityType == entityType {
				c.entityKeywords[i].keywords = append(c.entityKeywords[i].keywords, compiled...)
				appended = true
				break
			}
		}
		if !appended {
			c.entityKeywords = append(c.entityKeywords, entityKeywords{
				entityType: entityType,
				keywords:   compiled,
			})
		}
	}

	for _, fpc := range pack.FilterPatterns {
		patterns := make([]filterValuePattern, len(fpc.Patterns))
		for i, vp := range fpc.Patterns {
			patterns[i] = fv(vp.Pattern, vp.Value)
		}
		c.filterPatterns = append(c.filterPatterns, filterPattern{
			field:      fpc.Field,
			operator:   FilterOperator(fpc.Operator),
			patterns:   patterns,
			entityType: EntityType(fpc.EntityType),
		})
	}

	slog.Debug("applied pattern pack", "pack", pack.Name,
		"query_patterns", len(pack.QueryPatterns),
		"entity_keywords", len(pack.EntityKeywords),
		"filter_patterns", len(pack.FilterPatterns))
}
