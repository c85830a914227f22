package arch_test

import (
	"go/ast"
	"go/token"
	"strings"
	"testing"
)

// sharedGlobals are package-level vars accepted by name or prefix.
var sharedGlobals = map[string][]string{
	// The validator caches struct metadata and is safe for concurrent use.
	"config": {"validate"},
	// lipgloss colors and styles are fixed after init.
	"tui": {"color", "style"},
}

// mutableGlobals returns the package-level vars in f that are neither
// error sentinels, blank interface assertions, literal tables nor listed
// in allowed.
func mutableGlobals(f *ast.File, allowed []string) []*ast.Ident {
	var found []*ast.Ident
	for _, decl := range f.Decls {
		d, ok := decl.(*ast.GenDecl)
		if !ok || d.Tok != token.VAR {
			continue
		}
		for _, spec := range d.Specs {
			vs := spec.(*ast.ValueSpec)
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				if name.Name == "_" || isSentinel(val) || isLiteralTable(val) || allowedName(name.Name, allowed) {
					continue
				}
				found = append(found, name)
			}
		}
	}
	return found
}

func isSentinel(val ast.Expr) bool {
	call, ok := val.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "errors" && sel.Sel.Name == "New"
}

func isLiteralTable(val ast.Expr) bool {
	switch val.(type) {
	case *ast.CompositeLit, *ast.BasicLit:
		return true
	}
	return false
}

func allowedName(name string, allowed []string) bool {
	for _, a := range allowed {
		if name == a || strings.HasPrefix(name, a) {
			return true
		}
	}
	return false
}

func TestNoMutableGlobals(t *testing.T) {
	t.Parallel()
	tr := mustTree(t)

	for _, name := range tr.internal() {
		for _, f := range tr.pkgs[name].files {
			for _, id := range mutableGlobals(f, sharedGlobals[name]) {
				t.Errorf("%s: package-level var %s holds mutable state; pass it in instead", tr.rel(id), id.Name)
			}
		}
	}
}

func TestMutableGlobalDetection(t *testing.T) {
	t.Parallel()

	src := `package p

import "errors"

var ErrGone = errors.New("gone")

var table = [...]int{1, 2, 3}

var _ error = (*myErr)(nil)

var (
	cache   = make(map[string]int)
	counter int
	styleX  = newStyle()
)
`
	var got []string
	for _, id := range mutableGlobals(parseSource(t, src), []string{"style"}) {
		got = append(got, id.Name)
	}
	if strings.Join(got, " ") != "cache counter" {
		t.Errorf("mutableGlobals = %v, want [cache counter]", got)
	}
}
