// Package voice adapts the voice-platform request envelope to the
// request pipeline.
package voice

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/askarr/askarr/internal/request"
)

// Handlers serves the voice intent endpoint.
type Handlers struct {
	pipeline  *request.Service
	formatter request.Formatter
	logger    zerolog.Logger
}

// NewHandlers creates voice handlers around the pipeline.
func NewHandlers(pipeline *request.Service, formatter request.Formatter, logger zerolog.Logger) *Handlers {
	return &Handlers{
		pipeline:  pipeline,
		formatter: formatter,
		logger:    logger.With().Str("component", "voice").Logger(),
	}
}

// RegisterRoutes registers the voice routes on the given group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.POST("/voice", h.HandleIntent)
}

// HandleIntent runs one pipeline invocation for an inbound intent.
// POST /api/v1/voice
//
// The response is always 200 with a spoken envelope; pipeline failures are
// spoken, never surfaced as HTTP errors.
func (h *Handlers) HandleIntent(c echo.Context) error {
	var env RequestEnvelope
	if err := c.Bind(&env); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request envelope")
	}

	title := strings.TrimSpace(env.Request.Intent.SlotValue(SlotMediaTitle))
	allSeasons := strings.EqualFold(env.Request.Intent.SlotValue(SlotAllSeasons), "true")

	h.logger.Info().
		Str("session", env.Session.SessionID).
		Str("user", env.Session.User.UserID).
		Str("intent", env.Request.Intent.Name).
		Msg("voice intent received")

	if title == "" {
		return c.JSON(http.StatusOK, NewSpeechResponse(h.formatter.EmptyQuery()))
	}

	outcome := h.pipeline.Handle(c.Request().Context(), title, allSeasons)
	return c.JSON(http.StatusOK, NewSpeechResponse(h.formatter.Speak(outcome)))
}
