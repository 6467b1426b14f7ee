package planning

import "regexp"

// The classification tables below drive the classifier. Each table is an
// ordered slice because match resolution is order-dependent within a
// category: for query types the first highest-confidence match wins, and for
// entities first-seen order is preserved in the result.

type queryPattern struct {
	re         *regexp.Regexp
	confidence float64
}

type queryTypePatterns struct {
	queryType QueryType
	patterns  []queryPattern
}

type entityKeywords struct {
	entityType EntityType
	keywords   []*regexp.Regexp
}

type filterValuePattern struct {
	re    *regexp.Regexp
	value any
}

type filterPattern struct {
	field      string
	operator   FilterOperator
	patterns   []filterValuePattern
	entityType EntityType // optional scope hint carried onto the condition
}

type aggregationKeywords struct {
	aggType  AggregationType
	keywords []*regexp.Regexp
}

func qp(pattern string, confidence float64) queryPattern {
	return queryPattern{re: regexp.MustCompile(`(?i)` + pattern), confidence: confidence}
}

// kw wraps a keyword fragment in word boundaries, case-insensitively.
func kw(fragment string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + fragment + `\b`)
}

func fv(pattern string, value any) filterValuePattern {
	return filterValuePattern{re: regexp.MustCompile(`(?i)` + pattern), value: value}
}

func defaultQueryTypePatterns() []queryTypePatterns {
	return []queryTypePatterns{
		{QueryTypeVendorRisk, []queryPattern{
			qp(`\b(vendor|supplier)s?\s+(with|having)\s+(critical|high|medium|low)?\s*risk`, 0.95),
			qp(`\brisk\w*\s+(vendor|supplier)`, 0.9),
			qp(`\b(vendor|supplier)\s+risk`, 0.9),
		}},
		{QueryTypeVendorList, []queryPattern{
			qp(`\b(list|show|display|get|count)\s+(all\s+)?(vendor|supplier)s?`, 0.9),
			qp(`\b(vendor|supplier)s?\s+(list|directory)`, 0.85),
		}},
		{QueryTypeVendorDetails, []queryPattern{
			qp(`\b(details?|information|info)\s+(about|for|on)\s+(vendor|supplier)`, 0.95),
			qp(`\b(vendor|supplier)\s+(details?|profile)`, 0.9),
		}},
		{QueryTypeVendorControls, []queryPattern{
			qp(`\b(vendor|supplier)\s+control`, 0.95),
			qp(`\bcontrol\w*\s+(for|of)\s+(vendor|supplier)`, 0.9),
		}},
		{QueryTypeVendorConcentration, []queryPattern{
			qp(`\b(vendor|supplier)\s+concentration`, 0.95),
			qp(`\bconcentration\s+(risk|analysis)`, 0.9),
		}},
		{QueryTypeComplianceStatus, []queryPattern{
			qp(`\bcompliance\s+status`, 0.95),
			qp(`\b(compliant|non-compliant)`, 0.85),
		}},
		{QueryTypeRegulationDetails, []queryPattern{
			qp(`\bregulation\s+(details?|information)`, 0.95),
			qp(`\b(bsa|aml|fcra|ecoa)\s+(requirement|rule)`, 0.9),
		}},
		{QueryTypeComplianceGaps, []queryPattern{
			qp(`\bcompliance\s+gap`, 0.95),
			qp(`\b(gap|deficienc)`, 0.85),
		}},
		{QueryTypeControlEffectiveness, []queryPattern{
			qp(`\bcontrol\s+effectiveness`, 0.95),
			qp(`\beffective\s+control`, 0.85),
		}},
		{QueryTypeControlCoverage, []queryPattern{
			qp(`\bcontrol\s+coverage`, 0.95),
			qp(`\bcoverage\s+analysis`, 0.85),
		}},
		{QueryTypeControlBlastRadius, []queryPattern{
			qp(`\bblast\s+radius`, 0.95),
			qp(`\bimpact\s+analysis`, 0.8),
		}},
		{QueryTypeRiskAssessment, []queryPattern{
			qp(`\brisk\s+assessment`, 0.95),
			qp(`\bassess\w*\s+risk`, 0.85),
		}},
		{QueryTypeIssueTracking, []queryPattern{
			qp(`\b(issue|finding|exception)`, 0.9),
			qp(`\b(track|monitor)\s+(issue|finding)`, 0.85),
		}},
	}
}

func defaultEntityKeywords() []entityKeywords {
	return []entityKeywords{
		{EntityVendor, []*regexp.Regexp{
			kw(`vendors?`), kw(`suppliers?`), kw(`third part(y|ies)`), kw(`providers?`),
		}},
		{EntityControl, []*regexp.Regexp{
			kw(`controls?`), kw(`safeguards?`), kw(`measures?`),
		}},
		{EntityRegulation, []*regexp.Regexp{
			kw(`regulations?`), kw(`rules?`), kw(`requirements?`), kw(`laws?`),
			kw(`bsa`), kw(`aml`), kw(`fcra`), kw(`ecoa`), kw(`fair lending`),
		}},
		{EntityRisk, []*regexp.Regexp{
			kw(`risks?`), kw(`threats?`), kw(`exposures?`), kw(`vulnerabilit(y|ies)`),
		}},
		{EntityIssue, []*regexp.Regexp{
			kw(`issues?`), kw(`findings?`), kw(`exceptions?`), kw(`deficienc(y|ies)`),
		}},
		{EntityAssessment, []*regexp.Regexp{
			kw(`assessments?`), kw(`evaluations?`), kw(`reviews?`),
		}},
	}
}

func defaultFilterPatterns() []filterPattern {
	return []filterPattern{
		{
			field:    "riskLevel",
			operator: OpEquals,
			patterns: []filterValuePattern{
				fv(`\bcritical\s+risk`, "Critical"),
				fv(`\bhigh\s+risk`, "High"),
				fv(`\bmedium\s+risk`, "Medium"),
				fv(`\blow\s+risk`, "Low"),
			},
			entityType: EntityVendor,
		},
		{
			field:    "status",
			operator: OpEquals,
			patterns: []filterValuePattern{
				fv(`\bactive`, "Active"),
				fv(`\binactive`, "Inactive"),
				fv(`\bpending`, "Pending"),
			},
		},
		{
			field:    "compliant",
			operator: OpEquals,
			patterns: []filterValuePattern{
				fv(`\bcompliant\b`, true),
				fv(`\bnon-compliant`, false),
			},
		},
		{
			field:    "effectiveness",
			operator: OpEquals,
			patterns: []filterValuePattern{
				fv(`\beffective`, "Effective"),
				fv(`\bineffective`, "Ineffective"),
			},
			entityType: EntityControl,
		},
	}
}

func defaultAggregationKeywords() []aggregationKeywords {
	return []aggregationKeywords{
		{AggCount, []*regexp.Regexp{kw(`count`), kw(`number of`), kw(`how many`), kw(`total`)}},
		{AggSum, []*regexp.Regexp{kw(`sum`), kw(`total amount`), kw(`add up`)}},
		{AggAvg, []*regexp.Regexp{kw(`average`), kw(`mean`), kw(`avg`)}},
		{AggMax, []*regexp.Regexp{kw(`maximum`), kw(`max`), kw(`highest`), kw(`most`)}},
		{AggMin, []*regexp.Regexp{kw(`minimum`), kw(`min`), kw(`lowest`), kw(`least`)}},
		{AggGroupBy, []*regexp.Regexp{kw(`group by`), kw(`grouped by`), kw(`by category`)}},
	}
}

// aggregationFieldVocabulary is the fixed vocabulary scanned to guess the
// target field of a non-COUNT aggregation; first match wins.
var aggregationFieldVocabulary = []string{"risk", "score", "count", "amount", "value", "rating"}

// relationshipKeywords flag queries that want relationship traversal.
// Matched as substrings, same as the sort and limit cues are matched on the
// lower-cased query.
var relationshipKeywords = []string{
	"relationship", "connection", "dependency", "impact",
	"related", "connected", "linked",
}

var (
	sortCueRe   = regexp.MustCompile(`(?i)\b(sort(ed)?|order(ed)?)\s+(by|on)\b`)
	sortFieldRe = regexp.MustCompile(`(?i)\b(?:sort(?:ed)?|order(?:ed)?)\s+(?:by|on)\s+(\w+)`)
	descCueRe   = regexp.MustCompile(`(?i)\b(descending|desc|highest|most)\b`)
	limitRe     = regexp.MustCompile(`(?i)\b(?:top|first|limit)\s+(\d+)\b`)
)
