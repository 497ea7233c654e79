package matching

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

// Matcher scores candidates by counting overlapping subject labels. Two labels
// overlap when either one, lowercased, contains the other as a whole.
type Matcher struct {
	mode matching.ScoringMode
}

func NewMatcher(mode matching.ScoringMode) *Matcher {
	if !mode.IsValid() {
		mode = matching.ScoringPairs
	}
	return &Matcher{mode: mode}
}

// Mode returns the scoring mode in effect.
func (m *Matcher) Mode() matching.ScoringMode {
	return m.mode
}

// Score returns the match score of a single candidate against the target.
func (m *Matcher) Score(target matching.Target, candidate matching.Candidate) int {
	targetLabels := lowerLabels(target.Subjects)
	score := 0
	for _, subject := range candidate.Subjects {
		if isBlank(subject) {
			continue
		}
		label := strings.ToLower(subject)
		for _, t := range targetLabels {
			if !overlaps(label, t) {
				continue
			}
			score++
			if m.mode == matching.ScoringDistinct {
				break
			}
		}
	}
	return score
}

// Rank orders candidates by score descending, then load ascending. Candidates
// equal on both keys keep their input order.
func (m *Matcher) Rank(target matching.Target, candidates []matching.Candidate) []matching.MatchResult {
	results := make([]matching.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		c.Subjects = slices.Clone(c.Subjects)
		results = append(results, matching.MatchResult{
			Candidate: c,
			Score:     m.Score(target, c),
		})
	}

	slices.SortStableFunc(results, func(a, b matching.MatchResult) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Candidate.Load, b.Candidate.Load)
	})

	return results
}

// Suggest ranks the roster and picks the best match. With onlyMatching set,
// candidates scoring zero are dropped from the ranked list.
func (m *Matcher) Suggest(target matching.Target, candidates []matching.Candidate, onlyMatching bool) matching.Suggestion {
	ranked := m.Rank(target, candidates)
	if onlyMatching {
		ranked = OnlyMatching(ranked)
	}

	suggestion := matching.Suggestion{Ranked: ranked}
	if best, ok := Best(ranked); ok {
		suggestion.Best = &best
		suggestion.MatchedSubjects = MatchedSubjects(target, best.Candidate)
	}
	return suggestion
}

// Best returns the first result when it has a positive score.
func Best(ranked []matching.MatchResult) (matching.MatchResult, bool) {
	if len(ranked) == 0 || ranked[0].Score <= 0 {
		return matching.MatchResult{}, false
	}
	return ranked[0], true
}

// OnlyMatching keeps results with a positive score, preserving order.
func OnlyMatching(ranked []matching.MatchResult) []matching.MatchResult {
	out := make([]matching.MatchResult, 0, len(ranked))
	for _, r := range ranked {
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	return out
}

// MatchedSubjects lists the candidate's labels that overlap any target label,
// in the candidate's order.
func MatchedSubjects(target matching.Target, candidate matching.Candidate) []string {
	targetLabels := lowerLabels(target.Subjects)
	var matched []string
	for _, subject := range candidate.Subjects {
		if isBlank(subject) {
			continue
		}
		label := strings.ToLower(subject)
		for _, t := range targetLabels {
			if overlaps(label, t) {
				matched = append(matched, subject)
				break
			}
		}
	}
	return matched
}

func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// lowerLabels lowercases labels and drops blank ones; a blank label would
// otherwise be contained in every other label.
func lowerLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if isBlank(l) {
			continue
		}
		out = append(out, strings.ToLower(l))
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
