package autotag

import "fmt"

// Recommendation is a qualitative confidence level for a ranked candidate
// list. Higher values mean the top candidate is safer to apply unattended.
type Recommendation int

const (
	RecNone Recommendation = iota
	RecLow
	RecMedium
	RecStrong
)

func (r Recommendation) String() string {
	switch r {
	case RecNone:
		return "none"
	case RecLow:
		return "low"
	case RecMedium:
		return "medium"
	case RecStrong:
		return "strong"
	default:
		return fmt.Sprintf("Recommendation(%d)", int(r))
	}
}

// ParseRecommendation converts a configuration string into a Recommendation.
func ParseRecommendation(value string) (Recommendation, error) {
	switch value {
	case "none":
		return RecNone, nil
	case "low":
		return RecLow, nil
	case "medium":
		return RecMedium, nil
	case "strong":
		return RecStrong, nil
	default:
		return RecNone, fmt.Errorf("unknown recommendation %q", value)
	}
}

// Proposal is the final output of a reconciliation: candidates sorted best
// first plus one Recommendation for the set.
type Proposal struct {
	Candidates     []Match
	Recommendation Recommendation
}
