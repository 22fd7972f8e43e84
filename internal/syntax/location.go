package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a span of source text in one file.
type Location struct {
	Path      string   `json:"path"`
	StartByte uint32   `json:"start_byte"`
	EndByte   uint32   `json:"end_byte"`
	Start     Position `json:"start"`
	End       Position `json:"end"`
}

// IsValid reports whether the location refers to a file.
func (l Location) IsValid() bool {
	return l.Path != "" && l.EndByte >= l.StartByte
}

// Text returns the covered text of src.
func (l Location) Text(src []byte) string {
	if int(l.EndByte) > len(src) || l.StartByte > l.EndByte {
		return ""
	}

	return string(src[l.StartByte:l.EndByte])
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Start.Line, l.Start.Column)
}

// NodeLocation returns the location of n within t.
func NodeLocation(t *Tree, n *sitter.Node) Location {
	return SpanLocation(t, n, n)
}

// SpanLocation returns a location from the start of from through the end of to.
func SpanLocation(t *Tree, from, to *sitter.Node) Location {
	return Location{
		Path:      t.Path,
		StartByte: from.StartByte(),
		EndByte:   to.EndByte(),
		Start:     position(from.StartPoint()),
		End:       position(to.EndPoint()),
	}
}

func position(p sitter.Point) Position {
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
