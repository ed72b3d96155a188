// Package request implements the title-resolution and request-construction
// pipeline: search, detail fetch, payload build, submission, and the
// mapping of the result to a spoken sentence.
package request

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/askarr/askarr/internal/overseerr"
)

// Service runs the pipeline. Each invocation is independent; the service
// holds only the shared client, logger, and selection policies, all of
// which are read-only after construction.
type Service struct {
	client          *overseerr.Client
	selectCandidate CandidateSelector
	selectSeason    SeasonSelector
	logger          zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCandidateSelector replaces the candidate selection policy.
func WithCandidateSelector(sel CandidateSelector) Option {
	return func(s *Service) { s.selectCandidate = sel }
}

// WithSeasonSelector replaces the single-season selection policy.
func WithSeasonSelector(sel SeasonSelector) Option {
	return func(s *Service) { s.selectSeason = sel }
}

// NewService creates a pipeline service with first-result and
// latest-season policies unless overridden.
func NewService(client *overseerr.Client, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		client:          client,
		selectCandidate: FirstResult,
		selectSeason:    LatestSeason,
		logger:          logger.With().Str("component", "pipeline").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle resolves a spoken title to a media item and submits a request for
// it. The returned Outcome is always well-formed; errors at any stage are
// folded into OutcomeTransportError rather than propagated.
func (s *Service) Handle(ctx context.Context, title string, requestAllSeasons bool) Outcome {
	log := s.logger.With().
		Str("invocation", uuid.NewString()).
		Str("title", title).
		Bool("allSeasons", requestAllSeasons).
		Logger()

	search, err := s.client.Search(ctx, title)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return transportOutcome(err)
	}

	candidate, ok := s.selectCandidate(search.Results)
	if !ok {
		log.Info().Msg("no media matched")
		return Outcome{Kind: OutcomeNotFound, Title: title}
	}

	log.Debug().
		Str("mediaType", candidate.MediaType).
		Int("id", candidate.ID).
		Str("selected", candidate.DisplayTitle()).
		Msg("selected candidate")

	detail, err := s.client.GetDetail(ctx, candidate.MediaType, candidate.ID)
	if err != nil {
		log.Error().Err(err).Msg("detail fetch failed")
		return transportOutcome(err)
	}

	payload := BuildPayload(detail, requestAllSeasons, s.selectSeason)

	status, err := s.client.SubmitRequest(ctx, payload)
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg("submission failed")
		return transportOutcome(err)
	}

	if status != http.StatusCreated {
		log.Warn().Int("status", status).Msg("request not accepted")
		return Outcome{Kind: OutcomeRejected, Title: detail.DisplayTitle()}
	}

	scope := ScopeNone
	if detail.MediaType == overseerr.MediaTypeTV {
		if requestAllSeasons {
			scope = ScopeAllSeasons
		} else {
			scope = ScopeLatestSeason
		}
	}

	log.Info().
		Str("scope", string(scope)).
		Msg("request submitted")

	return Outcome{Kind: OutcomeSubmitted, Title: detail.DisplayTitle(), Scope: scope}
}

// transportOutcome folds a pipeline-stage error into an Outcome, keeping
// the upstream response body when one was captured.
func transportOutcome(err error) Outcome {
	o := Outcome{Kind: OutcomeTransportError, Err: err}

	var apiErr *overseerr.APIError
	if errors.As(err, &apiErr) {
		o.UpstreamBody = apiErr.Body
	}
	return o
}
