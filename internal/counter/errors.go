package counter

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// UnhandledActionError is returned by Reduce for a tag outside KnownActions.
// It signals a programming defect, not a transient failure.
type UnhandledActionError struct {
	Tag ActionType
}

func (e *UnhandledActionError) Error() string {
	return fmt.Sprintf("unhandled action type: %s", e.Tag)
}

// Suggestion returns the closest known tag, or "" when nothing is near
// enough to be a plausible typo.
func (e *UnhandledActionError) Suggestion() ActionType {
	var best ActionType
	bestDist := -1
	for _, known := range KnownActions {
		d := levenshtein.ComputeDistance(string(e.Tag), string(known))
		if bestDist < 0 || d < bestDist {
			best, bestDist = known, d
		}
	}
	if bestDist < 0 || bestDist > len(best)/2 {
		return ""
	}
	return best
}
