package clear

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ClearContextInput defines the input parameters for the clear-context tool
type ClearContextInput struct{}

// Spec returns the MCP tool specification for clear-context
func Spec() mcp.Tool {
	return mcp.NewTool("clear-context",
		mcp.WithDescription(`Clears the conversation context for the current session.

After clearing, follow-up questions ("only critical ones", "which of them") no longer resolve against earlier questions; the next question starts a fresh conversation. Query history and learned filter patterns are NOT affected.

Use this when switching topics so pronouns do not resolve against stale entities.`),
		mcp.WithInputSchema[ClearContextInput](),
		mcp.WithTitleAnnotation("Clear Conversation Context"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
