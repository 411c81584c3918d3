package contradict

import "github.com/ppiankov/credence/internal/model"

// resolutionFor derives the suggested resolution deterministically from the
// contradiction's type and score.
func resolutionFor(ctype model.ContradictionType, score float64) model.Resolution {
	var action string
	switch ctype {
	case model.ContradictionSelf:
		action = "remove_conflicting_claim"
	case model.ContradictionCross, model.ContradictionFactual:
		action = "verify_against_source"
	case model.ContradictionTemporal:
		action = "check_time_references"
	case model.ContradictionLogical:
		action = "resolve_logical_conflict"
	case model.ContradictionContextual:
		action = "align_with_user_context"
	default:
		action = "review_manually"
	}
	return model.Resolution{
		Action:        action,
		Priority:      model.Clamp01(score),
		RequiresHuman: score >= 0.7,
	}
}
