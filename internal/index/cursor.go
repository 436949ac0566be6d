package index

import (
	"go/ast"
	"go/token"
	gotypes "go/types"

	"github.com/refscope/refscope/pkg/types"
)

// cursor implements types.Cursor over one AST node of a translation
// unit. The zero value is the invalid cursor.
type cursor struct {
	tu   *translationUnit
	node ast.Node
	// obj stands in for declarations that have no node in the unit,
	// e.g. symbols imported from another package.
	obj  gotypes.Object
	root bool
}

var _ types.Cursor = cursor{}

// IsValid reports whether the cursor points at an actual node.
func (c cursor) IsValid() bool {
	return c.tu != nil && (c.root || c.node != nil || c.obj != nil)
}

// IsDeclaration reports whether the cursor is a declaration node.
func (c cursor) IsDeclaration() bool {
	if !c.IsValid() || c.root {
		return false
	}
	if c.node == nil {
		return true
	}
	id, ok := c.node.(*ast.Ident)
	return ok && c.tu.info.Defs[id] != nil
}

// Referenced returns the declaration cursor this cursor refers to. A
// declaration cursor references itself.
func (c cursor) Referenced() types.Cursor {
	obj := c.object()
	if obj == nil {
		return cursor{}
	}
	if id, ok := c.tu.defs[obj]; ok {
		return cursor{tu: c.tu, node: id}
	}
	return cursor{tu: c.tu, obj: obj}
}

// USR returns the unique symbol identifier of the declaration the
// cursor denotes, or the empty string when it has none.
func (c cursor) USR() string {
	if !c.IsValid() || c.root {
		return ""
	}
	return c.tu.usr(c.object())
}

// Location returns the cursor's own position and token extent.
func (c cursor) Location() types.CursorLocation {
	if !c.IsValid() {
		return types.CursorLocation{}
	}
	var pos token.Position
	extent := 0
	switch {
	case c.root:
		pos = c.tu.fset.Position(c.tu.file.Pos())
	case c.node != nil:
		pos = c.tu.fset.Position(c.node.Pos())
		if id, ok := c.node.(*ast.Ident); ok {
			extent = len(id.Name)
		}
	default:
		pos = c.tu.fset.Position(c.obj.Pos())
		extent = len(c.obj.Name())
	}
	return types.CursorLocation{
		SourceLocation: types.SourceLocation{
			FilePath: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		},
		Extent: extent,
	}
}

// VisitChildren walks the cursors below this one in pre-order.
func (c cursor) VisitChildren(visit func(types.Cursor) types.VisitResult) {
	if c.IsValid() {
		c.visitSubtree(visit)
	}
}

// visitSubtree reports whether the traversal was stopped by the visitor.
func (c cursor) visitSubtree(visit func(types.Cursor) types.VisitResult) bool {
	if c.root {
		for _, f := range c.tu.files {
			child := cursor{tu: c.tu, node: f}
			switch visit(child) {
			case types.VisitStop:
				return true
			case types.VisitRecurse:
				if child.visitSubtree(visit) {
					return true
				}
			}
		}
		return false
	}
	if c.node == nil {
		return false
	}
	stopped := false
	ast.Inspect(c.node, func(n ast.Node) bool {
		if stopped || n == nil {
			return false
		}
		if n == c.node {
			return true
		}
		switch visit(cursor{tu: c.tu, node: n}) {
		case types.VisitStop:
			stopped = true
			return false
		case types.VisitContinue:
			return false
		default:
			return true
		}
	})
	return stopped
}

// object resolves the types object the cursor denotes, if any.
func (c cursor) object() gotypes.Object {
	if c.obj != nil {
		return c.obj
	}
	id, ok := c.node.(*ast.Ident)
	if !ok || c.tu == nil || c.tu.info == nil {
		return nil
	}
	if obj := c.tu.info.Defs[id]; obj != nil {
		return obj
	}
	return c.tu.info.Uses[id]
}
