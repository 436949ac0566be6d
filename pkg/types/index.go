package types

// VisitResult controls how a cursor traversal proceeds after visiting
// one cursor.
type VisitResult int

const (
	// VisitContinue moves on to the next sibling without descending.
	VisitContinue VisitResult = iota
	// VisitRecurse descends into the children of the visited cursor.
	VisitRecurse
	// VisitStop aborts the traversal entirely.
	VisitStop
)

// Cursor is a handle to one AST node: a declaration, a reference, or
// any other construct reachable from a translation unit root.
type Cursor interface {
	// IsValid reports whether the cursor points at an actual node.
	IsValid() bool

	// IsDeclaration reports whether the cursor is a declaration node.
	IsDeclaration() bool

	// Referenced returns the declaration cursor this cursor refers to.
	// A declaration cursor references itself. The result may be invalid
	// when the cursor does not denote a resolvable symbol.
	Referenced() Cursor

	// USR returns the unique symbol identifier of the declaration the
	// cursor denotes. Two cursors refer to the same symbol iff their
	// resolved declarations yield equal USRs. Empty means the
	// declaration is not indexable and cannot be searched for.
	USR() string

	// Location returns the cursor's own position and token extent.
	Location() CursorLocation

	// VisitChildren walks the cursors below this one in pre-order. The
	// visitor's result decides whether to descend into each visited
	// cursor's children, skip to its sibling, or stop the walk.
	VisitChildren(visit func(Cursor) VisitResult)
}

// TranslationUnit is one parsed compilation unit.
type TranslationUnit interface {
	// Empty reports whether the unit failed to parse into anything usable.
	Empty() bool

	// MainFile returns the absolute path of the file the unit was
	// requested for, as opposed to files reached only via the package.
	MainFile() string

	// RootCursor returns the cursor spanning the whole unit.
	RootCursor() Cursor
}

// Index owns parsed translation units and tracks unsaved buffer contents.
type Index interface {
	// ResolveDeclarationCursor returns the declaration cursor referenced
	// at the given location. The cursor may be invalid when the location
	// points at whitespace, a literal, or an unresolvable identifier.
	ResolveDeclarationCursor(loc SourceLocation) (Cursor, error)

	// TranslationUnit returns the unit containing path, reparsing the
	// buffer when forceReparse is set so unsaved edits are reflected.
	TranslationUnit(path string, forceReparse bool) (TranslationUnit, error)

	// UpdateUnsaved registers in-memory content for path.
	UpdateUnsaved(path, content string)

	// RemoveUnsaved drops the unsaved content for path, reporting
	// whether an entry existed.
	RemoveUnsaved(path string) bool

	// UnsavedFiles returns the current set of unsaved buffers.
	UnsavedFiles() []UnsavedFile
}
