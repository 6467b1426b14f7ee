package history

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// GetHistoryInput defines the input parameters for the get-query-history tool
type GetHistoryInput struct {
	// Limit is the maximum number of records to return (default 10)
	Limit int `json:"limit,omitempty" jsonschema:"description=Maximum number of history records to return (default 10)"`

	// SuccessfulOnly restricts results to queries that executed without error
	SuccessfulOnly bool `json:"successfulOnly,omitempty" jsonschema:"description=When true, only return queries that executed successfully"`

	// Entity filters history to queries that involved the given entity label (e.g. Vendor, Control)
	Entity string `json:"entity,omitempty" jsonschema:"description=Only return queries that involved this entity label (e.g. Vendor, Control, Regulation)"`
}

// Spec returns the MCP tool specification for get-query-history
func Spec() mcp.Tool {
	return mcp.NewTool("get-query-history",
		mcp.WithDescription(`Returns the recent natural language query history, most recent first.

Each record includes the original question, the classified intent, the generated Cypher and its parameters, the result count, execution time, and whether the query succeeded. Failed queries carry their error message.

**FILTERS:**
- successfulOnly: skip queries that failed
- entity: only queries that involved a given entity label (e.g. "Vendor")

Useful for reviewing what was asked in a session, debugging misclassified questions, and re-running earlier queries.`),
		mcp.WithInputSchema[GetHistoryInput](),
		mcp.WithTitleAnnotation("Get Query History"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
