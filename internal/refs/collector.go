package refs

import (
	"github.com/refscope/refscope/pkg/types"
)

// referenceQuery accumulates the locations of cursors whose referenced
// declaration matches a target USR. It is owned by a single traversal
// and must not be shared across goroutines.
type referenceQuery struct {
	usr  string
	refs []types.CursorLocation
}

func newReferenceQuery(usr string) *referenceQuery {
	return &referenceQuery{usr: usr}
}

// collect walks every cursor reachable from root. Cursors outside
// mainFile are never recorded but are still descended into: nested
// cursors can land back in the searched file. The traversal never
// terminates early; matches accumulate in pre-order.
func (q *referenceQuery) collect(root types.Cursor, mainFile string) {
	if !root.IsValid() {
		return
	}
	root.VisitChildren(func(c types.Cursor) types.VisitResult {
		loc := c.Location()
		if loc.FilePath != mainFile {
			return types.VisitRecurse
		}
		if ref := c.Referenced(); ref.IsValid() && ref.IsDeclaration() && ref.USR() == q.usr {
			q.refs = append(q.refs, loc)
		}
		return types.VisitRecurse
	})
}

// references returns a copy of the accumulated locations.
func (q *referenceQuery) references() []types.CursorLocation {
	if len(q.refs) == 0 {
		return nil
	}
	out := make([]types.CursorLocation, len(q.refs))
	copy(out, q.refs)
	return out
}
