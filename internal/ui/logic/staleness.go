package logic

import "searchline/internal/domain"

// ShouldAccept reports whether a fetch result is for the term the prompt is
// currently waiting on. Results for any other term are stale.
func ShouldAccept(result domain.SuggestionSet, expectedTerm string) bool {
	return result.Term == expectedTerm
}
