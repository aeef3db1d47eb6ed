package domain

import (
	"fmt"
	"strings"
)

// OutcomeKind classifies a gateway status report.
type OutcomeKind int

const (
	OutcomeIndeterminate OutcomeKind = iota
	OutcomeApproved
	OutcomeDeclined
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeApproved:
		return "APPROVED"
	case OutcomeDeclined:
		return "DECLINED"
	default:
		return "INDETERMINATE"
	}
}

// GatewayOutcome is the interpreted result of a callback. Raw keeps the status
// exactly as the gateway sent it (after sanitization) for audit notes.
type GatewayOutcome struct {
	Kind OutcomeKind
	Raw  string
}

func Approved(raw string) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeApproved, Raw: raw}
}

func Declined(raw string) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeDeclined, Raw: raw}
}

func Indeterminate(raw string) GatewayOutcome {
	return GatewayOutcome{Kind: OutcomeIndeterminate, Raw: raw}
}

func (o GatewayOutcome) String() string {
	if o.Kind == OutcomeIndeterminate {
		return fmt.Sprintf("%s(%q)", o.Kind, o.Raw)
	}
	return o.Kind.String()
}

// Interpret maps the gateway status vocabulary onto an outcome. The vocabulary
// is open-ended upstream, so anything unrecognized (including the empty string)
// is Indeterminate rather than an error.
func Interpret(status string) GatewayOutcome {
	switch strings.ToLower(status) {
	case "approved":
		return Approved(status)
	case "declined":
		return Declined(status)
	default:
		return Indeterminate(status)
	}
}
