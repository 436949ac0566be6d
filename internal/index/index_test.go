package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refscope/refscope/pkg/types"
)

func examplePath(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("..", "..", "testdata", "example", name))
	require.NoError(t, err)
	return abs
}

func newTestIndex(t *testing.T) *GoIndex {
	t.Helper()
	idx, err := New(4)
	require.NoError(t, err)
	return idx
}

func TestTranslationUnitIsCached(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	first, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)
	second, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)
	assert.Same(t, first, second)

	forced, err := idx.TranslationUnit(path, true)
	require.NoError(t, err)
	assert.NotSame(t, first, forced)
}

func TestTranslationUnitIncludesSiblings(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	tu, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)
	require.False(t, tu.Empty())
	assert.Equal(t, path, tu.MainFile())

	unit, ok := tu.(*translationUnit)
	require.True(t, ok)
	assert.Len(t, unit.files, 2)
}

func TestTranslationUnitMissingFileIsEmpty(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "missing.go")

	tu, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)
	assert.True(t, tu.Empty())
	assert.False(t, tu.RootCursor().IsValid())
}

func TestTranslationUnitMissingDirectoryIsError(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.TranslationUnit("/does/not/exist/missing.go", false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read package directory")
}

func TestUpdateUnsavedInvalidatesCachedUnit(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	first, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)

	idx.UpdateUnsaved(path, "package calc\n\nvar replaced = 1\n")
	second, err := idx.TranslationUnit(path, false)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestUnsavedOverlayTakesPrecedence(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	idx.UpdateUnsaved(path, "package calc\n\nvar replaced = 1\n")

	tu, err := idx.TranslationUnit(path, true)
	require.NoError(t, err)
	require.False(t, tu.Empty())

	unit := tu.(*translationUnit)
	assert.NotNil(t, unit.identAt(3, 5), "overlay content should be parsed")
	assert.Nil(t, unit.identAt(4, 6), "disk content should be shadowed")
}

func TestResolveDeclarationCursorFromUseSite(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	// &Calculator{} on line 10 resolves to the type declaration on line 4
	decl, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 10, Column: 10})
	require.NoError(t, err)
	require.True(t, decl.IsValid())
	assert.True(t, decl.IsDeclaration())

	loc := decl.Location()
	assert.Equal(t, path, loc.FilePath)
	assert.Equal(t, 4, loc.Line)
	assert.Equal(t, 6, loc.Column)
	assert.Equal(t, len("Calculator"), loc.Extent)
}

func TestResolveDeclarationCursorSelfReference(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	decl, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 4, Column: 6})
	require.NoError(t, err)
	require.True(t, decl.IsValid())
	assert.True(t, decl.IsDeclaration())
	assert.Equal(t, 4, decl.Location().Line)
}

func TestResolveDeclarationCursorOnWhitespace(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	decl, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 2, Column: 1})
	require.NoError(t, err)
	assert.False(t, decl.IsValid())
}

func TestUSRFormats(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")
	dir := filepath.ToSlash(filepath.Dir(path))

	tests := []struct {
		name     string
		line     int
		column   int
		expected string
	}{
		{"Package-level type", 4, 6, "go:" + dir + "#Calculator"},
		{"Package-level function", 9, 6, "go:" + dir + "#NewCalculator"},
		{"Method", 14, 22, "go:" + dir + "#Calculator.Add"},
		{"Struct field", 5, 2, "go:" + dir + "#total@calculator.go:5:2"},
		{"Receiver variable", 14, 7, "go:" + dir + "#c@calculator.go:14:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: tt.line, Column: tt.column})
			require.NoError(t, err)
			require.True(t, decl.IsValid())
			assert.Equal(t, tt.expected, decl.USR())
		})
	}
}

func TestUSRUnsearchableSymbols(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "helpers.go")

	// universe-scope builtin
	decl, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 5, Column: 5})
	require.NoError(t, err)
	assert.Empty(t, decl.USR())

	// blank identifier
	decl, err = idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 9, Column: 6})
	require.NoError(t, err)
	assert.Empty(t, decl.USR())
}

func TestUSRStableAcrossReparse(t *testing.T) {
	idx := newTestIndex(t)
	path := examplePath(t, "calculator.go")

	first, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 4, Column: 6})
	require.NoError(t, err)

	_, err = idx.TranslationUnit(path, true)
	require.NoError(t, err)

	second, err := idx.ResolveDeclarationCursor(types.SourceLocation{FilePath: path, Line: 9, Column: 23})
	require.NoError(t, err)
	assert.Equal(t, first.USR(), second.USR())
}

func TestUnsavedFilesSortedByPath(t *testing.T) {
	idx := newTestIndex(t)

	idx.UpdateUnsaved("/ws/zebra.go", "package b")
	idx.UpdateUnsaved("/ws/alpha.go", "package a")

	files := idx.UnsavedFiles()
	require.Len(t, files, 2)
	assert.Equal(t, "/ws/alpha.go", files[0].Path)
	assert.Equal(t, "/ws/zebra.go", files[1].Path)
}

func TestRemoveUnsavedReportsPresence(t *testing.T) {
	idx := newTestIndex(t)

	idx.UpdateUnsaved("/ws/a.go", "package a")
	assert.True(t, idx.RemoveUnsaved("/ws/a.go"))
	assert.False(t, idx.RemoveUnsaved("/ws/a.go"))
	assert.Empty(t, idx.UnsavedFiles())
}
