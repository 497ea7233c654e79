package matching

import (
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
)

// InstrumentedRanker records ranking metrics for one roster and delegates the
// computation unchanged.
type InstrumentedRanker struct {
	next matching.Ranker
	kind matching.RosterKind
}

func NewInstrumentedRanker(next matching.Ranker, kind matching.RosterKind) matching.Ranker {
	return &InstrumentedRanker{next: next, kind: kind}
}

// Rank implements matching.Ranker.
func (r *InstrumentedRanker) Rank(target matching.Target, candidates []matching.Candidate) []matching.MatchResult {
	start := time.Now()
	results := r.next.Rank(target, candidates)
	r.observe(start)
	return results
}

// Suggest implements matching.Ranker.
func (r *InstrumentedRanker) Suggest(target matching.Target, candidates []matching.Candidate, onlyMatching bool) matching.Suggestion {
	start := time.Now()
	suggestion := r.next.Suggest(target, candidates, onlyMatching)
	r.observe(start)
	if suggestion.Best != nil {
		metrics.SuggestionsTotal.WithLabelValues(string(r.kind)).Inc()
	}
	return suggestion
}

func (r *InstrumentedRanker) observe(start time.Time) {
	roster := string(r.kind)
	metrics.RankTotal.WithLabelValues(roster).Inc()
	metrics.RankDuration.WithLabelValues(roster).Observe(time.Since(start).Seconds())
}
