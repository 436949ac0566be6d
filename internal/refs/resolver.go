// Package refs resolves the declaration referenced at a source location
// and finds every other location in the same translation unit that
// refers to the same declaration.
package refs

import (
	"fmt"
	"log/slog"

	"github.com/refscope/refscope/pkg/types"
)

// Resolver orchestrates a reference search: resolve the declaration at
// a location, derive its USR, and collect matching cursors across the
// owning translation unit.
type Resolver struct {
	index        types.Index
	forceReparse bool
}

// NewResolver creates a resolver on top of an index. When forceReparse
// is set, the translation unit is reparsed for every search so unsaved
// edits are reflected.
func NewResolver(index types.Index, forceReparse bool) *Resolver {
	return &Resolver{
		index:        index,
		forceReparse: forceReparse,
	}
}

// FindReferences returns the locations of every reference to the symbol
// at loc, in pre-order traversal order, restricted to loc's file.
//
// "Nothing to search for" is not an error: an invalid or
// non-declaration cursor, a declaration without a stable identifier,
// and an unavailable translation unit all yield an empty result. Errors
// are reserved for failures in the underlying index.
func (r *Resolver) FindReferences(loc types.SourceLocation) ([]types.CursorLocation, error) {
	decl, err := r.index.ResolveDeclarationCursor(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve declaration cursor: %w", err)
	}
	if !decl.IsValid() || !decl.IsDeclaration() {
		slog.Debug("No declaration at location", "file", loc.FilePath, "line", loc.Line, "column", loc.Column)
		return nil, nil
	}

	usr := decl.USR()
	if usr == "" {
		slog.Debug("Declaration has no stable identifier", "file", loc.FilePath, "line", loc.Line, "column", loc.Column)
		return nil, nil
	}

	tu, err := r.index.TranslationUnit(loc.FilePath, r.forceReparse)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain translation unit for %s: %w", loc.FilePath, err)
	}
	if tu == nil || tu.Empty() {
		return nil, nil
	}

	query := newReferenceQuery(usr)
	query.collect(tu.RootCursor(), tu.MainFile())

	refs := query.references()
	slog.Debug("Collected references", "usr", usr, "count", len(refs))
	return refs, nil
}
