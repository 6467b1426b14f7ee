package suggest

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// SuggestFiltersInput defines the input parameters for the suggest-filters tool
type SuggestFiltersInput struct {
	// Query is the natural language question to suggest enhancements for (required)
	Query string `json:"query" jsonschema:"description=Natural language question to suggest filter enhancements for (required)"`
}

// Spec returns the MCP tool specification for suggest-filters
func Spec() mcp.Tool {
	return mcp.NewTool("suggest-filters",
		mcp.WithDescription(`Suggests filters for a natural language question based on learned usage patterns.

The question is classified but NOT executed. Filters the user has applied repeatedly for the same query type (at least twice) are returned as suggestions, skipping any field the question already constrains.

**EXAMPLE:**
After asking "Show critical vendors" several times, asking for suggestions on "Show all vendors" returns:
[{"type": "add_filter", "key": "riskLevel", "value": "Critical", "reason": "You often use this filter for vendor_list queries"}]

Suggestions are ordered by field name, so repeat calls return the same order. An empty array means no pattern has recurred often enough yet.`),
		mcp.WithInputSchema[SuggestFiltersInput](),
		mcp.WithTitleAnnotation("Suggest Filters"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
