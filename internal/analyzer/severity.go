package analyzer

import (
	"fmt"
	"strings"
)

// Severity represents the danger level of a finding.
type Severity int

const (
	// Safe indicates no danger detected.
	Safe Severity = iota
	// Low indicates a minor concern.
	Low
	// Medium indicates the statement runs but does not do what it appears to.
	Medium
	// High indicates the statement fails or escapes the savepoint envelope.
	High
	// Critical indicates data loss.
	Critical
)

// String returns the uppercase label for the severity level.
func (s Severity) String() string {
	switch s {
	case Safe:
		return "SAFE"
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a label such as "high" back to a Severity.
func ParseSeverity(label string) (Severity, error) {
	for s := Safe; s <= Critical; s++ {
		if strings.EqualFold(label, s.String()) {
			return s, nil
		}
	}

	return Safe, fmt.Errorf("unknown severity %q", label)
}
