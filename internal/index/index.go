// Package index implements the AST capability over Go source: it
// parses translation units on demand, caches them, and tracks unsaved
// buffer contents that take precedence over files on disk.
package index

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/refscope/refscope/pkg/types"
)

// GoIndex owns parsed translation units and the unsaved buffer overlay.
// Safe for concurrent use.
type GoIndex struct {
	mu      sync.RWMutex
	unsaved map[string]string
	units   *lru.Cache[string, *translationUnit]
	watcher *workspaceWatcher
}

var _ types.Index = (*GoIndex)(nil)

// New creates an index whose translation unit cache holds up to
// cacheSize parsed units.
func New(cacheSize int) (*GoIndex, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	units, err := lru.New[string, *translationUnit](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation unit cache: %w", err)
	}
	return &GoIndex{
		unsaved: make(map[string]string),
		units:   units,
	}, nil
}

// ResolveDeclarationCursor returns the declaration cursor referenced at
// the given location. The cursor is invalid when the location points at
// whitespace, a literal, or an unresolvable identifier.
func (ix *GoIndex) ResolveDeclarationCursor(loc types.SourceLocation) (types.Cursor, error) {
	tu, err := ix.translationUnit(loc.FilePath, false)
	if err != nil {
		return cursor{}, err
	}
	id := tu.identAt(loc.Line, loc.Column)
	if id == nil {
		return cursor{}, nil
	}
	return cursor{tu: tu, node: id}.Referenced(), nil
}

// TranslationUnit returns the unit containing path, reparsing the
// buffer when forceReparse is set so unsaved edits are reflected.
func (ix *GoIndex) TranslationUnit(path string, forceReparse bool) (types.TranslationUnit, error) {
	tu, err := ix.translationUnit(path, forceReparse)
	if err != nil {
		return nil, err
	}
	return tu, nil
}

func (ix *GoIndex) translationUnit(path string, forceReparse bool) (*translationUnit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if !forceReparse {
		if tu, ok := ix.units.Get(abs); ok {
			slog.Debug("Translation unit cache hit", "path", abs)
			return tu, nil
		}
	}
	tu, err := parseTranslationUnit(abs, ix.overlaySnapshot())
	if err != nil {
		return nil, err
	}
	ix.units.Add(abs, tu)
	slog.Debug("Parsed translation unit", "path", abs, "files", len(tu.files), "empty", tu.Empty())
	return tu, nil
}

// UpdateUnsaved registers in-memory content for path. Cached units
// parsed from the old content become stale and are dropped.
func (ix *GoIndex) UpdateUnsaved(path, content string) {
	abs := absOrSame(path)
	ix.mu.Lock()
	ix.unsaved[abs] = content
	ix.mu.Unlock()
	ix.invalidateDir(filepath.Dir(abs))
	slog.Debug("Updated unsaved buffer", "path", abs, "bytes", len(content))
}

// RemoveUnsaved drops the unsaved content for path, reporting whether
// an entry existed.
func (ix *GoIndex) RemoveUnsaved(path string) bool {
	abs := absOrSame(path)
	ix.mu.Lock()
	_, ok := ix.unsaved[abs]
	delete(ix.unsaved, abs)
	ix.mu.Unlock()
	if ok {
		ix.invalidateDir(filepath.Dir(abs))
		slog.Debug("Removed unsaved buffer", "path", abs)
	}
	return ok
}

// UnsavedFiles returns the current set of unsaved buffers, ordered by
// path.
func (ix *GoIndex) UnsavedFiles() []types.UnsavedFile {
	ix.mu.RLock()
	files := make([]types.UnsavedFile, 0, len(ix.unsaved))
	for path, content := range ix.unsaved {
		files = append(files, types.UnsavedFile{Path: path, Content: content})
	}
	ix.mu.RUnlock()
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Close stops the workspace watcher, if one was started.
func (ix *GoIndex) Close() error {
	if ix.watcher != nil {
		return ix.watcher.close()
	}
	return nil
}

// invalidateDir drops every cached unit parsed from dir. Units include
// sibling files, so a change to any file in dir stales all of them.
func (ix *GoIndex) invalidateDir(dir string) {
	for _, key := range ix.units.Keys() {
		if filepath.Dir(key) == dir {
			ix.units.Remove(key)
			slog.Debug("Invalidated translation unit", "path", key)
		}
	}
}

func (ix *GoIndex) overlaySnapshot() map[string]string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	overlay := make(map[string]string, len(ix.unsaved))
	for path, content := range ix.unsaved {
		overlay[path] = content
	}
	return overlay
}

func absOrSame(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
