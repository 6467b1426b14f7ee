package ask

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// AskGraphInput defines the input parameters for the ask-graph tool
type AskGraphInput struct {
	// Query is the natural language question to run against the graph (required)
	Query string `json:"query" jsonschema:"description=Natural language question to run against the graph (required)"`

	// Explain returns the generated Cypher and parameters without executing
	Explain bool `json:"explain,omitempty" jsonschema:"description=When true, return the classified intent and generated Cypher without executing the query"`
}

// Spec returns the MCP tool specification for ask-graph
func Spec() mcp.Tool {
	return mcp.NewTool("ask-graph",
		mcp.WithDescription(`Answers a natural language question by translating it into a Cypher query and executing it against the Neo4j graph.

**HOW IT WORKS:**
1. The question is classified into a structured intent (query type, entities, filters, aggregations, sorting, limit)
2. Conversation context resolves follow-up questions ("only critical ones", "which of them have controls?")
3. Learned usage patterns may add filters you apply frequently for this query type
4. A parameterized Cypher query is generated and executed read-only

**SUPPORTED QUESTION SHAPES:**
- Listing: "Show all vendors", "List active regulations"
- Filtering: "Show vendors with critical risk", "Find ineffective controls"
- Aggregation: "Count all vendors", "Average risk score by vendor"
- Sorting and limits: "Top 10 vendors sorted by name"
- Relationships: "Show vendors and their controls"
- Follow-ups: after "Show all vendors", asking "only critical ones" narrows the previous question

**EXPLAIN MODE:**
Set explain=true to see the classified intent, the generated Cypher, and its parameters without touching the database. Useful for verifying how a question will be interpreted.

**OUTPUT:**
JSON with the matched records, the executed Cypher, its parameters, a result summary, and whether the result came from cache.

**ERROR BEHAVIOR:**
Questions that cannot be classified return an error asking for rephrasing; nothing is executed. All queries are parameterized, so filter values never appear in query text.`),
		mcp.WithInputSchema[AskGraphInput](),
		mcp.WithTitleAnnotation("Ask Graph"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
