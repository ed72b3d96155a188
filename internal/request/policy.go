package request

import "github.com/askarr/askarr/internal/overseerr"

// CandidateSelector picks one candidate from a search result sequence.
// Returning false means no candidate was usable.
type CandidateSelector func(results []overseerr.SearchResult) (overseerr.SearchResult, bool)

// FirstResult trusts the service's own ordering and takes the first
// element. This is a product decision, not a ranking.
func FirstResult(results []overseerr.SearchResult) (overseerr.SearchResult, bool) {
	if len(results) == 0 {
		return overseerr.SearchResult{}, false
	}
	return results[0], true
}

// SeasonSelector picks a single season from a non-empty list of non-special
// season numbers.
type SeasonSelector func(seasons []int) int

// LatestSeason picks the highest season number.
func LatestSeason(seasons []int) int {
	latest := seasons[0]
	for _, n := range seasons[1:] {
		if n > latest {
			latest = n
		}
	}
	return latest
}
