package diagnostic

import (
	"fmt"
	"strings"
)

// Category groups rules by the guideline chapter they come from.
type Category uint8

const (
	ClassDesign Category = iota
	MemberDesign
	MiscellaneousDesign
	Maintainability
	Naming
	Framework
	Documentation
)

const guidelinesBase = "https://github.com/dennisdoomen/CSharpGuidelines/blob/master/Guidelines/"

var categories = [...]struct {
	name     string
	document string
}{
	ClassDesign:         {"Class Design", "1000_ClassDesignGuidelines.md"},
	MemberDesign:        {"Member Design", "1100_MemberDesignGuidelines.md"},
	MiscellaneousDesign: {"Miscellaneous Design", "1200_MiscellaneousDesignGuidelines.md"},
	Maintainability:     {"Maintainability", "1500_MaintainabilityGuidelines.md"},
	Naming:              {"Naming", "1700_NamingGuidelines.md"},
	Framework:           {"Framework", "2200_FrameworkGuidelines.md"},
	Documentation:       {"Documentation", "2300_DocumentationGuidelines.md"},
}

func (c Category) String() string {
	if int(c) < len(categories) {
		return categories[c].name
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory accepts a category name as returned by String.
func ParseCategory(s string) (Category, error) {
	for i, c := range categories {
		if strings.EqualFold(c.name, strings.TrimSpace(s)) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// HelpLink returns the chapter URL anchored at rule id, "AV1000" becoming
// "#av1000". An unknown category has no link.
func (c Category) HelpLink(id string) string {
	if int(c) >= len(categories) {
		return ""
	}

	link := guidelinesBase + categories[c].document
	if id != "" {
		link += "#" + strings.ToLower(id)
	}
	return link
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
