package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/refscope/refscope/internal/markers"
	"github.com/refscope/refscope/internal/refs"
	"github.com/refscope/refscope/internal/results"
	"github.com/refscope/refscope/pkg/types"
)

// FindUsagesTool handles find-usages requests
type FindUsagesTool struct {
	index  types.Index
	config types.Config
}

// NewFindUsagesTool creates a new find-usages tool
func NewFindUsagesTool(index types.Index, config types.Config) *FindUsagesTool {
	return &FindUsagesTool{
		index:  index,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *FindUsagesTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("find_usages",
		mcp.WithDescription("Find every usage of the symbol at a source location, within the file's translation unit"),
		mcp.WithString("document_path", mcp.Required(), mcp.Description("Path to the source file, absolute or relative to the workspace root")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Line number (1-based)")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Column number (1-based)")),
	)
	return tool
}

// Handle processes the tool request
func (t *FindUsagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentPath := mcp.ParseString(req, "document_path", "")
	if documentPath == "" {
		slog.Debug("MCP tool called with missing document_path parameter", "tool", "find_usages")
		return mcp.NewToolResultError("document_path parameter is required"), nil
	}

	line, column := getPosition(req)
	if line < 1 || column < 1 {
		slog.Debug("MCP tool called with invalid position",
			"tool", "find_usages",
			"line", line,
			"column", column)
		return mcp.NewToolResultError("line and column must be 1-based positive numbers"), nil
	}

	path := ResolveAliasedPath(documentPath, t.config.WorkspaceRoot)
	location := types.SourceLocation{FilePath: path, Line: line, Column: column}

	slog.Debug("MCP tool called",
		"tool", "find_usages",
		"document_path", documentPath,
		"path", path,
		"line", line,
		"column", column)

	resolver := refs.NewResolver(t.index, t.config.ForceReparse)
	locations, err := resolver.FindReferences(location)
	if err != nil {
		slog.Error("Failed to find usages",
			"tool", "find_usages",
			"path", path,
			"error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find usages: %v", err)), nil
	}

	// the generator's file contents cache lives for this call only
	generator := markers.NewGenerator(t.index)

	toolResult := results.FindUsagesToolResult{
		Arguments: results.FindUsagesToolArgs{
			DocumentPath: documentPath,
			Line:         line,
			Column:       column,
		},
		MarkerSet: results.SourceMarkerSet{
			Label:   "Find Usages",
			Markers: generator.MarkersFor(locations),
		},
	}

	if len(toolResult.MarkerSet.Markers) == 0 {
		toolResult.Message = "No usages found. " +
			"The location may not refer to a searchable symbol, or the symbol may have no usages in its translation unit."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d usage(s).", len(toolResult.MarkerSet.Markers))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal tool result", "tool", "find_usages", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	slog.Debug("MCP tool completed successfully",
		"tool", "find_usages",
		"path", path,
		"usage_count", len(toolResult.MarkerSet.Markers))

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
