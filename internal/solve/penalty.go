// Package solve defines solve times, penalties and their ordering.
package solve

import (
	"fmt"
	"strings"
)

// Penalty annotates a solve with a competition penalty.
type Penalty int

const (
	// PenaltyNone marks a clean solve.
	PenaltyNone Penalty = iota
	// PenaltyPlus2 adds two seconds to the recorded time.
	PenaltyPlus2
	// PenaltyDNF marks a solve without a ranked time.
	PenaltyDNF
)

// Penalties lists every penalty in selector order.
var Penalties = []Penalty{PenaltyNone, PenaltyPlus2, PenaltyDNF}

// String returns the short label used in selectors and exports.
func (p Penalty) String() string {
	switch p {
	case PenaltyNone:
		return "OK"
	case PenaltyPlus2:
		return "+2"
	case PenaltyDNF:
		return "DNF"
	default:
		return fmt.Sprintf("Penalty(%d)", int(p))
	}
}

// ParsePenalty converts a label back into a Penalty.
func ParsePenalty(s string) (Penalty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ok", "none":
		return PenaltyNone, nil
	case "+2", "plus2":
		return PenaltyPlus2, nil
	case "dnf":
		return PenaltyDNF, nil
	default:
		return PenaltyNone, fmt.Errorf("unknown penalty %q", s)
	}
}
