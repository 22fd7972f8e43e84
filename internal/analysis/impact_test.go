package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"guidelint/internal/diagnostic"
	"guidelint/internal/git"
	"guidelint/internal/syntax"
)

func at(path string, start, end int) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Rule: "T001",
		Location: syntax.Location{
			Path:  path,
			Start: syntax.Position{Line: start, Column: 1},
			End:   syntax.Position{Line: end, Column: 1},
		},
	}
}

func TestAffected(t *testing.T) {
	dir := t.TempDir()
	changed := filepath.Join(dir, "A.cs")

	diags := []diagnostic.Diagnostic{
		at(changed, 3, 3),
		at(changed, 8, 12),
		at(changed, 20, 20),
		at(filepath.Join(dir, "B.cs"), 3, 3),
		at(changed, 5, 0),
	}
	changes := []git.ChangedFile{{Path: changed, ChangedLines: []int{3, 10}}}

	kept := Affected(diags, changes)

	assert.Equal(t, []diagnostic.Diagnostic{diags[0], diags[1]}, kept)
	assert.Empty(t, Affected(diags, nil))
}
