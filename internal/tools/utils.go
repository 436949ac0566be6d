package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ResolveAliasedPath expands caller-side aliasing in a document path:
// "~" expands to the home directory, and relative paths are resolved
// against the workspace root.
func ResolveAliasedPath(path, workspaceRoot string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}
	return filepath.Clean(path)
}

// GetRelativePath converts an absolute path to a path relative to the
// workspace root.
func GetRelativePath(absolutePath, workspaceRoot string) string {
	if rel, err := filepath.Rel(workspaceRoot, absolutePath); err == nil {
		return rel
	}
	return filepath.Base(absolutePath)
}

// getPosition extracts 1-based line and column from an MCP request.
func getPosition(req mcp.CallToolRequest) (line, column int) {
	line = int(mcp.ParseFloat64(req, "line", 0))
	column = int(mcp.ParseFloat64(req, "column", 0))
	return line, column
}
