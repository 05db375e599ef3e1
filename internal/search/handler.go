// Package search implements the showtimes search handler, matching records
// whose eventName contains the search term.
package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chronoworld/showtimes/internal/log"
	"github.com/chronoworld/showtimes/internal/observability"
	"github.com/chronoworld/showtimes/internal/storage"
	"github.com/chronoworld/showtimes/pkg/types"
)

// MissingTermMessage is the 400 response body.
const MissingTermMessage = "Missing 'eventName' in request."

// Request is the invocation input.
type Request struct {
	EventName string `json:"eventName"`
}

// Response is the invocation output. Body is a message string for 400/404
// and a []types.Record for 200.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Body       interface{} `json:"body"`
}

// Recorder receives the outcome of each completed search.
type Recorder interface {
	RecordSearch(term string, outcome observability.Outcome)
}

// QueryHandler answers search requests against a Table.
type QueryHandler struct {
	table    storage.Table
	recorder Recorder
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithRecorder records search outcomes into r.
func WithRecorder(r Recorder) Option {
	return func(h *QueryHandler) {
		h.recorder = r
	}
}

// NewQueryHandler creates a handler reading from table.
func NewQueryHandler(table storage.Table, opts ...Option) *QueryHandler {
	h := &QueryHandler{table: table}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle runs one search. A table scan failure is returned as an error and no
// response is produced for it.
func (h *QueryHandler) Handle(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	term := Normalize(req.EventName)
	if term == "" {
		h.record("", observability.OutcomeBadRequest)
		return Response{StatusCode: http.StatusBadRequest, Body: MissingTermMessage}, nil
	}

	records, err := h.table.Scan(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("search %q: %w", term, err)
	}

	matches := Filter(records, term)

	log.Logger().Debug().
		Str("term", term).
		Int("scanned", len(records)).
		Int("matched", len(matches)).
		Dur("elapsed", time.Since(start)).
		Msg("search completed")

	if len(matches) == 0 {
		h.record(term, observability.OutcomeNotFound)
		return Response{StatusCode: http.StatusNotFound, Body: NotFoundMessage(term)}, nil
	}

	h.record(term, observability.OutcomeOK)
	return Response{StatusCode: http.StatusOK, Body: matches}, nil
}

func (h *QueryHandler) record(term string, outcome observability.Outcome) {
	if h.recorder != nil {
		h.recorder.RecordSearch(term, outcome)
	}
}

// NotFoundMessage is the 404 response body for term.
func NotFoundMessage(term string) string {
	return fmt.Sprintf("No events found for '%s'.", term)
}

// Normalize trims and lower-cases a raw search term.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Filter keeps records whose lower-cased eventName contains term, preserving
// scan order. term must already be normalized.
func Filter(records []types.Record, term string) []types.Record {
	var matches []types.Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.EventName()), term) {
			matches = append(matches, r)
		}
	}
	return matches
}
