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

// ListUnsavedFilesTool handles list-unsaved-files requests
type ListUnsavedFilesTool struct {
	index  types.Index
	config types.Config
}

// NewListUnsavedFilesTool creates a new list-unsaved-files tool
func NewListUnsavedFilesTool(index types.Index, config types.Config) *ListUnsavedFilesTool {
	return &ListUnsavedFilesTool{
		index:  index,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *ListUnsavedFilesTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("list_unsaved_files",
		mcp.WithDescription("List the files that currently have unsaved in-memory content registered"),
	)
	return tool
}

// Handle processes the tool request
func (t *ListUnsavedFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files := t.index.UnsavedFiles()

	toolResult := results.ListUnsavedFilesToolResult{
		Files: make([]string, 0, len(files)),
	}
	for _, f := range files {
		toolResult.Files = append(toolResult.Files, GetRelativePath(f.Path, t.config.WorkspaceRoot))
	}

	if len(toolResult.Files) == 0 {
		toolResult.Message = "No unsaved files are registered."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d unsaved file(s).", len(toolResult.Files))
	}

	slog.Debug("MCP tool completed successfully",
		"tool", "list_unsaved_files",
		"file_count", len(toolResult.Files))

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
