package request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askarr/askarr/internal/overseerr"
)

// mockOverseerr is a scripted Overseerr API for end-to-end pipeline tests.
type mockOverseerr struct {
	searchResults []overseerr.SearchResult
	detail        map[string]any
	submitStatus  int
	submitBody    string

	mu       sync.Mutex
	payloads []map[string]any
}

func (m *mockOverseerr) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/search":
			json.NewEncoder(w).Encode(overseerr.SearchResponse{
				Page:         1,
				TotalResults: len(m.searchResults),
				Results:      m.searchResults,
			})
		case r.URL.Path == "/api/v1/request":
			var payload map[string]any
			json.NewDecoder(r.Body).Decode(&payload)
			m.mu.Lock()
			m.payloads = append(m.payloads, payload)
			m.mu.Unlock()
			w.WriteHeader(m.submitStatus)
			if m.submitBody != "" {
				w.Write([]byte(m.submitBody))
			}
		default:
			json.NewEncoder(w).Encode(m.detail)
		}
	}))
}

func newTestService(server *httptest.Server) *Service {
	client := overseerr.NewClient(overseerr.Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5,
	}, zerolog.Nop())
	return NewService(client, zerolog.Nop())
}

func TestService_Handle_LatestSeason(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 99, MediaType: overseerr.MediaTypeTV, Name: "The Wire"},
		},
		detail: map[string]any{
			"id":   99,
			"name": "The Wire",
			"externalIds": map[string]any{
				"imdbId": "tt0306414",
				"tvdbId": 79126,
			},
			"seasons": []map[string]int{
				{"seasonNumber": 0}, {"seasonNumber": 1}, {"seasonNumber": 2},
				{"seasonNumber": 3}, {"seasonNumber": 4}, {"seasonNumber": 5},
			},
		},
		submitStatus: http.StatusCreated,
	}
	server := mock.server(t)
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "The Wire", false)

	assert.Equal(t, OutcomeSubmitted, outcome.Kind)
	assert.Equal(t, "The Wire", outcome.Title)
	assert.Equal(t, ScopeLatestSeason, outcome.Scope)

	require.Len(t, mock.payloads, 1)
	payload := mock.payloads[0]
	assert.Equal(t, "tv", payload["mediaType"])
	assert.Equal(t, float64(99), payload["mediaId"])
	assert.Equal(t, "tt0306414", payload["imdbId"])
	assert.Equal(t, float64(79126), payload["tvdbId"])
	assert.Equal(t, []any{float64(5)}, payload["seasons"])
}

func TestService_Handle_AllSeasons(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 99, MediaType: overseerr.MediaTypeTV, Name: "The Wire"},
		},
		detail: map[string]any{
			"id":   99,
			"name": "The Wire",
			"seasons": []map[string]int{
				{"seasonNumber": 0}, {"seasonNumber": 1}, {"seasonNumber": 2},
			},
		},
		submitStatus: http.StatusCreated,
	}
	server := mock.server(t)
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "The Wire", true)

	assert.Equal(t, OutcomeSubmitted, outcome.Kind)
	assert.Equal(t, ScopeAllSeasons, outcome.Scope)

	require.Len(t, mock.payloads, 1)
	assert.ElementsMatch(t, []any{float64(1), float64(2)}, mock.payloads[0]["seasons"])
}

func TestService_Handle_Movie(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 603, MediaType: overseerr.MediaTypeMovie, Title: "The Matrix"},
		},
		detail: map[string]any{
			"id":    603,
			"title": "The Matrix",
			"externalIds": map[string]any{
				"imdbId": "tt0133093",
			},
		},
		submitStatus: http.StatusCreated,
	}
	server := mock.server(t)
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "The Matrix", false)

	assert.Equal(t, OutcomeSubmitted, outcome.Kind)
	assert.Equal(t, "The Matrix", outcome.Title)
	assert.Equal(t, ScopeNone, outcome.Scope)

	require.Len(t, mock.payloads, 1)
	_, hasSeasons := mock.payloads[0]["seasons"]
	assert.False(t, hasSeasons, "movie payload must not carry a seasons field")
}

func TestService_Handle_NotFound(t *testing.T) {
	mock := &mockOverseerr{submitStatus: http.StatusCreated}
	server := mock.server(t)
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "Unknown Movie XYZ", false)

	assert.Equal(t, OutcomeNotFound, outcome.Kind)
	assert.Equal(t, "Unknown Movie XYZ", outcome.Title)
	assert.Empty(t, mock.payloads)
}

func TestService_Handle_Rejected(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 603, MediaType: overseerr.MediaTypeMovie, Title: "The Matrix"},
		},
		detail: map[string]any{
			"id":    603,
			"title": "The Matrix",
		},
		// 200 is a success but not 201: the service declined to create
		submitStatus: http.StatusOK,
		submitBody:   `{"message":"internal detail that must not be spoken"}`,
	}
	server := mock.server(t)
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "The Matrix", false)

	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Empty(t, outcome.UpstreamBody)
}

func TestService_Handle_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream unavailable"}`))
	}))
	defer server.Close()

	outcome := newTestService(server).Handle(context.Background(), "The Wire", false)

	assert.Equal(t, OutcomeTransportError, outcome.Kind)
	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.UpstreamBody, "upstream unavailable")
}

func TestService_Handle_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	outcome := newTestService(server).Handle(context.Background(), "The Wire", false)

	assert.Equal(t, OutcomeTransportError, outcome.Kind)
	require.Error(t, outcome.Err)
	assert.Empty(t, outcome.UpstreamBody)
}

// Invocations share only the read-only client and policies; running them
// concurrently must not bleed state between calls.
func TestService_Handle_ConcurrentInvocations(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 99, MediaType: overseerr.MediaTypeTV, Name: "The Wire"},
		},
		detail: map[string]any{
			"id":   99,
			"name": "The Wire",
			"seasons": []map[string]int{
				{"seasonNumber": 1}, {"seasonNumber": 2},
			},
		},
		submitStatus: http.StatusCreated,
	}
	server := mock.server(t)
	defer server.Close()

	svc := newTestService(server)

	const n = 16
	outcomes := make([]Outcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = svc.Handle(context.Background(), "The Wire", false)
		}(i)
	}
	wg.Wait()

	for i, outcome := range outcomes {
		assert.Equal(t, OutcomeSubmitted, outcome.Kind, "invocation %d", i)
		assert.Equal(t, "The Wire", outcome.Title, "invocation %d", i)
	}
	assert.Len(t, mock.payloads, n)
}

func TestService_CustomCandidateSelector(t *testing.T) {
	mock := &mockOverseerr{
		searchResults: []overseerr.SearchResult{
			{ID: 1, MediaType: overseerr.MediaTypeMovie, Title: "First"},
			{ID: 2, MediaType: overseerr.MediaTypeMovie, Title: "Second"},
		},
		detail: map[string]any{
			"id":    2,
			"title": "Second",
		},
		submitStatus: http.StatusCreated,
	}
	server := mock.server(t)
	defer server.Close()

	client := overseerr.NewClient(overseerr.Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5,
	}, zerolog.Nop())

	lastResult := func(results []overseerr.SearchResult) (overseerr.SearchResult, bool) {
		if len(results) == 0 {
			return overseerr.SearchResult{}, false
		}
		return results[len(results)-1], true
	}

	svc := NewService(client, zerolog.Nop(), WithCandidateSelector(lastResult))
	outcome := svc.Handle(context.Background(), "anything", false)

	assert.Equal(t, OutcomeSubmitted, outcome.Kind)
	assert.Equal(t, "Second", outcome.Title)
}
