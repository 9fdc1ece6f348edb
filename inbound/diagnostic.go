package inbound

import (
	"fmt"
	"strings"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a problem found in a declaration file. Expected and Found
// are set for syntax errors.
type Diagnostic struct {
	Span     Span
	Severity Severity
	Message  string
	Expected string
	Found    string
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Span.Start, d.Severity, d.Message)
	if d.Found != "" {
		fmt.Fprintf(&sb, ", found %s", d.Found)
	}
	return sb.String()
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
