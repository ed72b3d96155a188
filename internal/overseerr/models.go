package overseerr

// Media types used by the Overseerr API.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// AllSeasons is the sentinel value Overseerr accepts in place of an
// explicit season list when no season metadata is available.
const AllSeasons = "all"

// SearchResult is a single entry from the search endpoint. Movies carry
// their title in "title", TV series in "name".
type SearchResult struct {
	ID        int    `json:"id"`
	MediaType string `json:"mediaType"`
	Title     string `json:"title,omitempty"`
	Name      string `json:"name,omitempty"`
}

// DisplayTitle returns the title field appropriate for the media type.
func (r SearchResult) DisplayTitle() string {
	if r.MediaType == MediaTypeTV {
		return r.Name
	}
	return r.Title
}

// SearchResponse is the response from the search endpoint.
type SearchResponse struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"totalResults"`
	Results      []SearchResult `json:"results"`
}

// ExternalIDs holds cross-referenced identifiers from the detail endpoint.
// TvdbID is decoded loosely: Overseerr is known to return it as a number,
// a string, or not at all, and only numeric values are usable downstream.
type ExternalIDs struct {
	ImdbID string `json:"imdbId,omitempty"`
	TvdbID any    `json:"tvdbId,omitempty"`
}

// Season is a single season entry from the detail endpoint. Season 0
// denotes specials.
type Season struct {
	SeasonNumber int `json:"seasonNumber"`
}

// MediaDetail is the full metadata for a movie or TV series. MediaType is
// not part of the wire response for the type-specific detail endpoints; the
// client fills it in from the request.
type MediaDetail struct {
	ID          int         `json:"id"`
	MediaType   string      `json:"-"`
	Title       string      `json:"title,omitempty"`
	Name        string      `json:"name,omitempty"`
	ExternalIDs ExternalIDs `json:"externalIds"`
	Seasons     []Season    `json:"seasons"`
}

// DisplayTitle returns the title field appropriate for the media type.
func (d *MediaDetail) DisplayTitle() string {
	if d.MediaType == MediaTypeTV {
		return d.Name
	}
	return d.Title
}

// RequestPayload is the body of the request submission endpoint. Seasons is
// either a []int of season numbers or the AllSeasons sentinel string, and
// is never present for movies.
type RequestPayload struct {
	MediaType string `json:"mediaType"`
	MediaID   int    `json:"mediaId"`
	ImdbID    string `json:"imdbId,omitempty"`
	TvdbID    *int   `json:"tvdbId,omitempty"`
	Seasons   any    `json:"seasons,omitempty"`
}

// ErrorResponse is the error body returned by the Overseerr API.
type ErrorResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the response from the status endpoint, used for
// connectivity checks.
type StatusResponse struct {
	Version string `json:"version"`
}
