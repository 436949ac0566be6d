package index

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/refscope/refscope/pkg/types"
)

// translationUnit is one parsed compilation unit: the requested file
// plus its same-package siblings, type-checked together. Immutable once
// parsed; edits are picked up by parsing a fresh unit.
type translationUnit struct {
	mainFile  string
	fset      *token.FileSet
	file      *ast.File   // main file AST, nil when the unit is empty
	files     []*ast.File // all package files, main file included
	info      *gotypes.Info
	pkg       *gotypes.Package
	defs      map[gotypes.Object]*ast.Ident
	usrPrefix string
}

var _ types.TranslationUnit = (*translationUnit)(nil)

// parseTranslationUnit parses the package directory containing path.
// Overlay content takes precedence over disk content. A missing or
// unparseable main file yields an empty unit, not an error; only I/O
// failures on the directory itself are hard errors.
func parseTranslationUnit(path string, overlay map[string]string) (*translationUnit, error) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	var mainAST *ast.File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		name := filepath.Join(dir, entry.Name())
		isMain := name == path
		// test files join the unit only when they are the file searched
		if strings.HasSuffix(entry.Name(), "_test.go") && !isMain {
			continue
		}
		var src any
		if content, ok := overlay[name]; ok {
			src = content
		}
		f, perr := parser.ParseFile(fset, name, src, parser.ParseComments)
		if f == nil {
			// a broken sibling does not block the unit
			slog.Debug("Skipping unparseable file", "path", name, "error", perr)
			continue
		}
		files = append(files, f)
		if isMain {
			mainAST = f
		}
	}

	tu := &translationUnit{
		mainFile:  path,
		fset:      fset,
		usrPrefix: "go:" + filepath.ToSlash(dir),
	}
	if mainAST == nil {
		return tu, nil
	}

	// siblings from other packages in the same directory are excluded
	pkgFiles := files[:0]
	for _, f := range files {
		if f.Name.Name == mainAST.Name.Name {
			pkgFiles = append(pkgFiles, f)
		}
	}

	info := &gotypes.Info{
		Defs: make(map[*ast.Ident]gotypes.Object),
		Uses: make(map[*ast.Ident]gotypes.Object),
	}
	conf := gotypes.Config{
		Importer: importer.ForCompiler(fset, "gc", nil),
		// type errors leave partial information behind, which is enough
		// for resolving references in the parts that did check
		Error: func(error) {},
	}
	pkg, _ := conf.Check(mainAST.Name.Name, fset, pkgFiles, info)

	defs := make(map[gotypes.Object]*ast.Ident, len(info.Defs))
	for id, obj := range info.Defs {
		if obj != nil {
			defs[obj] = id
		}
	}

	tu.file = mainAST
	tu.files = pkgFiles
	tu.info = info
	tu.pkg = pkg
	tu.defs = defs
	return tu, nil
}

// Empty reports whether the unit failed to parse into anything usable.
func (tu *translationUnit) Empty() bool {
	return tu.file == nil
}

// MainFile returns the absolute path of the file the unit was
// requested for.
func (tu *translationUnit) MainFile() string {
	return tu.mainFile
}

// RootCursor returns the cursor spanning the whole unit.
func (tu *translationUnit) RootCursor() types.Cursor {
	if tu.Empty() {
		return cursor{}
	}
	return cursor{tu: tu, root: true}
}

// identAt finds the identifier covering the 1-based line and column in
// the unit's main file.
func (tu *translationUnit) identAt(line, column int) *ast.Ident {
	if tu.Empty() {
		return nil
	}
	var found *ast.Ident
	ast.Inspect(tu.file, func(n ast.Node) bool {
		if found != nil || n == nil {
			return false
		}
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		pos := tu.fset.Position(id.Pos())
		if pos.Line == line && column >= pos.Column && column < pos.Column+len(id.Name) {
			found = id
		}
		return found == nil
	})
	return found
}

// usr derives the unique symbol identifier for an object. Objects with
// no stable identity, blank identifiers, and universe-scope builtins
// yield the empty string, which marks them as unsearchable.
func (tu *translationUnit) usr(obj gotypes.Object) string {
	if obj == nil || obj.Name() == "" || obj.Name() == "_" {
		return ""
	}
	pkg := obj.Pkg()
	if pkg == nil {
		return ""
	}
	prefix := "go:" + pkg.Path()
	if tu.pkg != nil && pkg == tu.pkg {
		// the local package path is unknown without module resolution,
		// so qualify by directory instead
		prefix = tu.usrPrefix
	}
	if obj.Parent() == pkg.Scope() {
		return prefix + "#" + obj.Name()
	}
	if fn, ok := obj.(*gotypes.Func); ok {
		if sig, ok := fn.Type().(*gotypes.Signature); ok && sig.Recv() != nil {
			if name := receiverTypeName(sig.Recv().Type()); name != "" {
				return prefix + "#" + name + "." + fn.Name()
			}
		}
	}
	// fields, locals, and parameters are qualified by declaration position
	pos := tu.fset.Position(obj.Pos())
	if !pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s#%s@%s:%d:%d", prefix, obj.Name(), filepath.Base(pos.Filename), pos.Line, pos.Column)
}

func receiverTypeName(t gotypes.Type) string {
	if ptr, ok := t.(*gotypes.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*gotypes.Named); ok {
		return named.Obj().Name()
	}
	return ""
}
