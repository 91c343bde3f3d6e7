package verdict

import (
	"github.com/findmymarket/screening-agent/internal/models"
)

// Derive maps a relevance score and a red flag count to a recommendation.
// The rule is ordered and total; the reject check runs first, so a score of
// exactly 0.7 with one red flag falls through to the review branch via the
// flag-count condition.
//
//	reject:  score < 0.5 OR flags >= 2
//	review:  score < 0.7 OR flags == 1
//	approve: score >= 0.7 AND flags == 0
func Derive(score float64, redFlagCount int) models.Recommendation {
	switch {
	case score < 0.5 || redFlagCount >= 2:
		return models.RecommendReject
	case score < 0.7 || redFlagCount == 1:
		return models.RecommendReview
	default:
		return models.RecommendApprove
	}
}

// Reconcile re-derives the recommendation from the verdict's own score and
// red flags. The model is instructed to apply the same rule, but its stated
// recommendation is not trusted when it disagrees with its own numbers.
// Returns the authoritative recommendation and whether it replaced the
// model's.
func Reconcile(v models.Verdict) (models.Recommendation, bool) {
	derived := Derive(v.RelevanceScore, len(v.RedFlags))
	return derived, derived != v.Recommendation
}
