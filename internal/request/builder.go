package request

import "github.com/askarr/askarr/internal/overseerr"

// BuildPayload constructs the submission payload from media detail and the
// caller's season intent. Pure function; always succeeds.
//
// For TV series the seasons field is asymmetric on purpose: a list of
// season numbers when season metadata exists, the "all" sentinel string
// when it does not. Movies never carry a seasons field.
func BuildPayload(detail *overseerr.MediaDetail, requestAllSeasons bool, selectSeason SeasonSelector) overseerr.RequestPayload {
	payload := overseerr.RequestPayload{
		MediaType: detail.MediaType,
		MediaID:   detail.ID,
		ImdbID:    detail.ExternalIDs.ImdbID,
	}

	// tvdbId is included only when the service returned a numeric value.
	// JSON numbers decode as float64; anything else (string, null, absent)
	// is silently dropped.
	switch v := detail.ExternalIDs.TvdbID.(type) {
	case float64:
		id := int(v)
		payload.TvdbID = &id
	}

	if detail.MediaType != overseerr.MediaTypeTV {
		return payload
	}

	// Season 0 is specials and never requested.
	nonSpecial := make([]int, 0, len(detail.Seasons))
	for _, s := range detail.Seasons {
		if s.SeasonNumber != 0 {
			nonSpecial = append(nonSpecial, s.SeasonNumber)
		}
	}

	if len(nonSpecial) == 0 {
		// No usable season metadata: fall back to the sentinel so the
		// service decides what "everything" means.
		payload.Seasons = overseerr.AllSeasons
		return payload
	}

	if requestAllSeasons {
		payload.Seasons = nonSpecial
	} else {
		payload.Seasons = []int{selectSeason(nonSpecial)}
	}

	return payload
}
