// Package srctest checks that generated Go source is something the
// compiler would accept. Substring assertions alone let well-formed
// fragments hide an unbuildable whole, most easily through an import
// nothing in the file refers to.
package srctest

import (
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"
)

// Check fails the test when src does not parse, carries an import no
// identifier refers to, or is rejected by go/format.
func Check(t *testing.T, src []byte) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v", err)
	}
	if _, err := format.Source(src); err != nil {
		t.Fatalf("generated source does not format: %v", err)
	}

	used := make(map[string]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = true
			}
		}
		return true
	})
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			t.Fatalf("malformed import path %s: %v", imp.Path.Value, err)
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if !used[name] {
			t.Errorf("import %q is never used", path)
		}
	}
}
