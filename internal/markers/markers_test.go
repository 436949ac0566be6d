package markers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refscope/refscope/pkg/types"
)

// fakeOverlay implements UnsavedLister for tests.
type fakeOverlay struct {
	files []types.UnsavedFile
}

func (f *fakeOverlay) UnsavedFiles() []types.UnsavedFile {
	return f.files
}

func TestHtmlMessage(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		column   int
		extent   int
		expected string
	}{
		{
			name:     "Highlights the referenced token",
			line:     "int foo = 1;",
			column:   5,
			extent:   3,
			expected: "int <strong>foo</strong> = 1;",
		},
		{
			name:     "Zero extent highlights the whole line",
			line:     "int foo = 1;",
			column:   5,
			extent:   0,
			expected: "<strong>int foo = 1;</strong>",
		},
		{
			name:     "Extent overrunning the line disables highlighting",
			line:     "int foo = 1;",
			column:   5,
			extent:   40,
			expected: "int foo = 1;",
		},
		{
			name:     "Token at the end of the line disables highlighting",
			line:     "return c.total",
			column:   10,
			extent:   5,
			expected: "return c.total",
		},
		{
			name:     "Escapes HTML around the highlighted span",
			line:     `x := "<b>" + tag + y`,
			column:   14,
			extent:   3,
			expected: "x := &#34;&lt;b&gt;&#34; + <strong>tag</strong> + y",
		},
		{
			name:     "Column past the end of the line disables highlighting",
			line:     "short",
			column:   40,
			extent:   2,
			expected: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := types.CursorLocation{
				SourceLocation: types.SourceLocation{Line: 1, Column: tt.column},
				Extent:         tt.extent,
			}
			assert.Equal(t, tt.expected, htmlMessage(loc, tt.line))
		})
	}
}

func TestMarkersFor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	content := "package sample\n\nvar foo = 1\nvar bar = foo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g := NewGenerator(&fakeOverlay{})

	locations := []types.CursorLocation{
		{SourceLocation: types.SourceLocation{FilePath: path, Line: 3, Column: 5}, Extent: 3},
		{SourceLocation: types.SourceLocation{FilePath: path, Line: 4, Column: 11}, Extent: 3},
	}

	markers := g.MarkersFor(locations)
	require.Len(t, markers, 2)

	assert.Equal(t, "usage", markers[0].Kind)
	assert.Equal(t, path, markers[0].File)
	assert.Equal(t, 3, markers[0].Line)
	assert.Equal(t, 5, markers[0].Column)
	assert.True(t, markers[0].IsHTML)
	assert.Equal(t, "var <strong>foo</strong> = 1", markers[0].Message)

	// the token ends the line, so the fallback rendering applies
	assert.Equal(t, "var bar = foo", markers[1].Message)
}

func TestMarkersForLineOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte("one line\n"), 0644))

	g := NewGenerator(&fakeOverlay{})

	markers := g.MarkersFor([]types.CursorLocation{
		{SourceLocation: types.SourceLocation{FilePath: path, Line: 99, Column: 1}, Extent: 3},
	})
	require.Len(t, markers, 1)
	assert.Empty(t, markers[0].Message)
}

func TestMarkersForUnreadableFile(t *testing.T) {
	g := NewGenerator(&fakeOverlay{})

	markers := g.MarkersFor([]types.CursorLocation{
		{SourceLocation: types.SourceLocation{FilePath: "/does/not/exist.go", Line: 1, Column: 1}, Extent: 3},
	})
	require.Len(t, markers, 1)
	assert.Empty(t, markers[0].Message)
}

func TestMarkersForPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte("aaa bbb\nccc ddd\n"), 0644))

	g := NewGenerator(&fakeOverlay{})

	locations := []types.CursorLocation{
		{SourceLocation: types.SourceLocation{FilePath: path, Line: 2, Column: 1}, Extent: 3},
		{SourceLocation: types.SourceLocation{FilePath: path, Line: 1, Column: 5}, Extent: 3},
	}

	markers := g.MarkersFor(locations)
	require.Len(t, markers, 2)
	assert.Equal(t, 2, markers[0].Line)
	assert.Equal(t, 1, markers[1].Line)
}
