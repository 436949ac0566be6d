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

// UpdateUnsavedBufferTool handles update-unsaved-buffer requests
type UpdateUnsavedBufferTool struct {
	index  types.Index
	config types.Config
}

// NewUpdateUnsavedBufferTool creates a new update-unsaved-buffer tool
func NewUpdateUnsavedBufferTool(index types.Index, config types.Config) *UpdateUnsavedBufferTool {
	return &UpdateUnsavedBufferTool{
		index:  index,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *UpdateUnsavedBufferTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("update_unsaved_buffer",
		mcp.WithDescription("Register in-memory content for a file; searches and context rendering prefer it over the on-disk content"),
		mcp.WithString("document_path", mcp.Required(), mcp.Description("Path to the source file, absolute or relative to the workspace root")),
		mcp.WithString("content", mcp.Required(), mcp.Description("The full unsaved content of the file")),
	)
	return tool
}

// Handle processes the tool request
func (t *UpdateUnsavedBufferTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentPath := mcp.ParseString(req, "document_path", "")
	if documentPath == "" {
		slog.Debug("MCP tool called with missing document_path parameter", "tool", "update_unsaved_buffer")
		return mcp.NewToolResultError("document_path parameter is required"), nil
	}
	content := mcp.ParseString(req, "content", "")

	path := ResolveAliasedPath(documentPath, t.config.WorkspaceRoot)
	t.index.UpdateUnsaved(path, content)

	slog.Debug("MCP tool completed successfully",
		"tool", "update_unsaved_buffer",
		"path", path,
		"bytes", len(content))

	toolResult := results.UpdateUnsavedBufferToolResult{
		DocumentPath: documentPath,
		Bytes:        len(content),
		Message:      fmt.Sprintf("Registered %d bytes of unsaved content for %s.", len(content), documentPath),
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
