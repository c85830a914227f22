package arch_test

import (
	"go/ast"
	"testing"
)

const (
	maxFileLines    = 400
	maxPackageFiles = 20
)

func TestFileSize(t *testing.T) {
	t.Parallel()
	tr := mustTree(t)

	for name, p := range tr.pkgs {
		if n := len(p.files); n > maxPackageFiles {
			t.Errorf("%s has %d source files (limit %d); split it", name, n, maxPackageFiles)
		}
		for _, f := range append(append([]*ast.File{}, p.files...), p.tests...) {
			tf := tr.fset.File(f.Pos())
			if n := tf.LineCount(); n > maxFileLines {
				t.Errorf("%s has %d lines (limit %d); decompose it", tr.rel(f), n, maxFileLines)
			}
		}
	}
}
