package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chronoworld/showtimes/internal/log"
	"github.com/chronoworld/showtimes/internal/observability"
	"github.com/chronoworld/showtimes/internal/search"
)

// Searcher runs one search invocation.
type Searcher interface {
	Handle(ctx context.Context, req search.Request) (search.Response, error)
}

// SearchHandler handles POST /v1/search requests.
// The HTTP status mirrors the invocation response's statusCode.
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(s Searcher) *SearchHandler {
	return &SearchHandler{searcher: s}
}

// ServeHTTP handles the search HTTP request.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", requestID)
		return
	}

	// An empty body is an invocation with no fields.
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), requestID)
		return
	}

	resp, err := h.searcher.Handle(r.Context(), req)
	if err != nil {
		log.Logger().Error().Err(err).Str("request_id", requestID).Msg("search failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("search failed: %v", err), requestID)
		return
	}

	writeJSON(w, resp.StatusCode, resp)
}

// StatsResponse is the body of GET /v1/stats.
type StatsResponse struct {
	Outcomes map[observability.Outcome]int64 `json:"outcomes"`
	TopTerms []observability.TermStats       `json:"top_terms"`
}

// StatsHandler handles GET /v1/stats requests.
type StatsHandler struct {
	stats *observability.SearchStats
	limit int
}

// NewStatsHandler creates a stats handler reporting the top limit terms.
func NewStatsHandler(stats *observability.SearchStats, limit int) *StatsHandler {
	return &StatsHandler{stats: stats, limit: limit}
}

// ServeHTTP handles the stats HTTP request.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", GetRequestID(r.Context()))
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Outcomes: h.stats.Outcomes(),
		TopTerms: h.stats.TopTerms(h.limit),
	})
}

// NewRouter builds the local HTTP surface.
func NewRouter(s Searcher, stats *observability.SearchStats) http.Handler {
	mw := DefaultMiddleware()

	mux := http.NewServeMux()
	mux.Handle("/v1/search", mw(NewSearchHandler(s)))
	mux.Handle("/v1/stats", mw(NewStatsHandler(stats, 10)))
	mux.HandleFunc("/health", healthHandler)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"showtimes"}`))
}
