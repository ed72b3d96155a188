package request

// Scope describes how much of a TV series a submitted request covered.
type Scope string

const (
	// ScopeNone is used for movies, which have no season scoping.
	ScopeNone Scope = ""
	// ScopeAllSeasons covers every non-special season.
	ScopeAllSeasons Scope = "all seasons"
	// ScopeLatestSeason covers only the most recent non-special season.
	ScopeLatestSeason Scope = "latest season"
)

// OutcomeKind classifies the result of a pipeline invocation.
type OutcomeKind int

const (
	// OutcomeNotFound means the search returned no candidates.
	OutcomeNotFound OutcomeKind = iota
	// OutcomeSubmitted means the request was accepted (HTTP 201).
	OutcomeSubmitted
	// OutcomeRejected means the service answered with a successful status
	// other than 201. User-facing failure, not a fault.
	OutcomeRejected
	// OutcomeTransportError means a network or HTTP failure stopped the
	// pipeline at some stage.
	OutcomeTransportError
)

// Outcome is the terminal state of one pipeline invocation.
type Outcome struct {
	Kind  OutcomeKind
	Title string
	Scope Scope

	// Err and UpstreamBody are set only for OutcomeTransportError.
	// UpstreamBody holds the upstream response body when one was available.
	Err          error
	UpstreamBody string
}
