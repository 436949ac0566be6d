package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/refscope/refscope/internal/results"
	"github.com/refscope/refscope/pkg/types"
)

// DiscardUnsavedBufferTool handles discard-unsaved-buffer requests
type DiscardUnsavedBufferTool struct {
	index  types.Index
	config types.Config
}

// NewDiscardUnsavedBufferTool creates a new discard-unsaved-buffer tool
func NewDiscardUnsavedBufferTool(index types.Index, config types.Config) *DiscardUnsavedBufferTool {
	return &DiscardUnsavedBufferTool{
		index:  index,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *DiscardUnsavedBufferTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("discard_unsaved_buffer",
		mcp.WithDescription("Drop the in-memory content registered for a file, falling back to the on-disk content"),
		mcp.WithString("document_path", mcp.Required(), mcp.Description("Path to the source file, absolute or relative to the workspace root")),
	)
	return tool
}

// Handle processes the tool request
func (t *DiscardUnsavedBufferTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentPath := mcp.ParseString(req, "document_path", "")
	if documentPath == "" {
		slog.Debug("MCP tool called with missing document_path parameter", "tool", "discard_unsaved_buffer")
		return mcp.NewToolResultError("document_path parameter is required"), nil
	}

	path := ResolveAliasedPath(documentPath, t.config.WorkspaceRoot)
	removed := t.index.RemoveUnsaved(path)

	slog.Debug("MCP tool completed successfully",
		"tool", "discard_unsaved_buffer",
		"path", path,
		"removed", removed)

	toolResult := results.DiscardUnsavedBufferToolResult{
		DocumentPath: documentPath,
		Removed:      removed,
	}
	if removed {
		toolResult.Message = fmt.Sprintf("Discarded the unsaved content of %s.", documentPath)
	} else {
		toolResult.Message = fmt.Sprintf("No unsaved content was registered for %s.", documentPath)
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
