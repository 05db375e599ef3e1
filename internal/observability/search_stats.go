// Package observability tracks search term frequency and outcomes for the showtimes service.
package observability

import (
	"sort"
	"sync"
	"time"
)

// Outcome classifies a completed search.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeBadRequest Outcome = "bad_request"
)

// SearchStats tracks how often each search term is requested and how searches end.
type SearchStats struct {
	mu       sync.RWMutex
	terms    map[string]*TermStats
	outcomes map[Outcome]int64
	window   time.Duration
}

// TermStats holds statistics for one normalized search term.
type TermStats struct {
	Term      string            `json:"term"`
	Frequency int64             `json:"frequency"`
	LastSeen  time.Time         `json:"last_seen"`
	Outcomes  map[Outcome]int64 `json:"outcomes"`
}

// NewSearchStats creates a new search statistics tracker.
// window: age after which Prune drops a term
func NewSearchStats(window time.Duration) *SearchStats {
	return &SearchStats{
		terms:    make(map[string]*TermStats),
		outcomes: make(map[Outcome]int64),
		window:   window,
	}
}

// RecordSearch records one completed search. Bad requests carry no term and
// only count towards the outcome totals.
func (s *SearchStats) RecordSearch(term string, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes[outcome]++
	if term == "" {
		return
	}

	stats, exists := s.terms[term]
	if !exists {
		stats = &TermStats{
			Term:     term,
			Outcomes: make(map[Outcome]int64),
		}
		s.terms[term] = stats
	}

	stats.Frequency++
	stats.LastSeen = time.Now()
	stats.Outcomes[outcome]++
}

// TopTerms returns the top N terms by frequency, most frequent first.
// Ties are ordered by term. The result is a copy.
func (s *SearchStats) TopTerms(n int) []TermStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.terms) == 0 {
		return []TermStats{}
	}

	stats := make([]TermStats, 0, len(s.terms))
	for _, t := range s.terms {
		cp := TermStats{
			Term:      t.Term,
			Frequency: t.Frequency,
			LastSeen:  t.LastSeen,
			Outcomes:  make(map[Outcome]int64, len(t.Outcomes)),
		}
		for o, c := range t.Outcomes {
			cp.Outcomes[o] = c
		}
		stats = append(stats, cp)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].Term < stats[j].Term
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// Outcomes returns a copy of the outcome totals.
func (s *SearchStats) Outcomes() map[Outcome]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Outcome]int64, len(s.outcomes))
	for o, c := range s.outcomes {
		out[o] = c
	}
	return out
}

// Prune removes terms not seen within the window.
func (s *SearchStats) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := time.Now().Add(-s.window)
	for term, stats := range s.terms {
		if stats.LastSeen.Before(threshold) {
			delete(s.terms, term)
		}
	}
}
