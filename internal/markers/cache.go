package markers

import (
	"log/slog"
	"os"
	"strings"

	"github.com/refscope/refscope/pkg/types"
)

// UnsavedLister exposes the unsaved buffer overlay of an index.
type UnsavedLister interface {
	UnsavedFiles() []types.UnsavedFile
}

// FileContentsCache memoizes the line-split text of source files as
// currently visible to the caller: unsaved buffer content wins over
// disk content. A cache is scoped to a single find-usages invocation
// and is not safe for concurrent use.
type FileContentsCache struct {
	unsaved UnsavedLister
	lines   map[string][]string
}

// NewFileContentsCache creates an empty cache backed by the overlay.
func NewFileContentsCache(unsaved UnsavedLister) *FileContentsCache {
	return &FileContentsCache{
		unsaved: unsaved,
		lines:   make(map[string][]string),
	}
}

// LinesOf returns the lines of path. Once resolved, the same content is
// returned for the lifetime of the cache, even if the file changes.
func (c *FileContentsCache) LinesOf(path string) []string {
	if lines, ok := c.lines[path]; ok {
		return lines
	}

	for _, uf := range c.unsaved.UnsavedFiles() {
		if uf.Path == path {
			lines := strings.Split(uf.Content, "\n")
			c.lines[path] = lines
			return lines
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// cache the miss so later lookups degrade to "no context"
		// instead of re-attempting the read
		slog.Error("Failed to read source file for marker context", "path", path, "error", err)
		c.lines[path] = nil
		return nil
	}

	lines := strings.Split(string(data), "\n")
	c.lines[path] = lines
	return lines
}
