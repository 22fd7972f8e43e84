package analysis

import (
	"path/filepath"

	"guidelint/internal/diagnostic"
	"guidelint/internal/git"
)

// Affected keeps the diagnostics whose lines overlap a change. Paths are
// compared in absolute form.
func Affected(diags []diagnostic.Diagnostic, changes []git.ChangedFile) []diagnostic.Diagnostic {
	byPath := make(map[string]git.ChangedFile, len(changes))
	for _, change := range changes {
		byPath[absPath(change.Path)] = change
	}

	kept := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		change, ok := byPath[absPath(d.Location.Path)]
		if !ok {
			continue
		}

		end := d.Location.End.Line
		if end < d.Location.Start.Line {
			end = d.Location.Start.Line
		}
		if change.Contains(d.Location.Start.Line, end) {
			kept = append(kept, d)
		}
	}

	return kept
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
