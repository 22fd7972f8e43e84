// Package diagnostic defines rule descriptors and the findings rules report.
package diagnostic

import (
	"fmt"
	"strings"

	"guidelint/internal/syntax"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity accepts the names returned by String, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Descriptor describes a rule and the diagnostics it reports.
type Descriptor struct {
	ID    string
	Title string
	// MessageFormat is a fmt format string filled with the arguments given to New.
	MessageFormat string
	Category      Category
	Severity      Severity
	Description   string
}

// HelpLink returns the guideline document section for the rule.
func (d Descriptor) HelpLink() string {
	return d.Category.HelpLink(d.ID)
}

// New creates a diagnostic at loc with the descriptor's default severity.
func (d Descriptor) New(loc syntax.Location, args ...any) Diagnostic {
	return Diagnostic{
		Rule:     d.ID,
		Category: d.Category,
		Severity: d.Severity,
		Message:  fmt.Sprintf(d.MessageFormat, args...),
		Location: loc,
	}
}

// Diagnostic is a reported rule violation.
type Diagnostic struct {
	Rule     string          `json:"rule"`
	Category Category        `json:"category"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Location syntax.Location `json:"location"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %s: %s", d.Location, d.Severity, d.Rule, d.Message)
}
