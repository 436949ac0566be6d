package types

// SourceLocation identifies a position within a source file.
// Line and Column are 1-based.
type SourceLocation struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// CursorLocation is one concrete occurrence of a symbol use: a source
// location plus the length of the referenced token in characters.
type CursorLocation struct {
	SourceLocation
	Extent int `json:"extent"`
}

// UnsavedFile is an in-memory buffer whose content may differ from what
// is on disk.
type UnsavedFile struct {
	Path    string
	Content string
}
