package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

func candidate(id string, load int, subjects ...string) matching.Candidate {
	return matching.Candidate{ID: id, Name: id, Subjects: subjects, Load: load}
}

func ids(results []matching.MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Candidate.ID)
	}
	return out
}

func TestMatcher_Score(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)

	cases := []struct {
		name      string
		target    []string
		candidate []string
		want      int
	}{
		{"empty target", nil, []string{"Marketing Management"}, 0},
		{"empty candidate", []string{"Marketing Management"}, nil, 0},
		{"exact match", []string{"Marketing Management"}, []string{"Marketing Management"}, 1},
		{"case insensitive", []string{"marketing management"}, []string{"Marketing Management"}, 1},
		{"target contains candidate", []string{"Supply Chain Management"}, []string{"Supply Chain"}, 1},
		{"candidate contains target", []string{"Supply Chain"}, []string{"Supply Chain Management"}, 1},
		{"whole label only", []string{"Marketing Management"}, []string{"Marketing Management", "Digital Marketing"}, 1},
		{"pairs double count", []string{"Marketing", "Marketing Management"}, []string{"Marketing Management"}, 2},
		{"no overlap", []string{"Operations Management"}, []string{"Brand Management"}, 0},
		{"blank labels ignored", []string{"", "  "}, []string{"Marketing Management"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Score(matching.Target{Subjects: tc.target}, matching.Candidate{Subjects: tc.candidate})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatcher_Score_Distinct(t *testing.T) {
	m := NewMatcher(matching.ScoringDistinct)

	target := matching.Target{Subjects: []string{"Marketing", "Marketing Management"}}
	assert.Equal(t, 1, m.Score(target, candidate("A", 0, "Marketing Management")))
	assert.Equal(t, 2, m.Score(target, candidate("B", 0, "Marketing Management", "Digital Marketing")))
}

func TestNewMatcher_InvalidModeFallsBackToPairs(t *testing.T) {
	assert.Equal(t, matching.ScoringPairs, NewMatcher("weighted").Mode())
	assert.Equal(t, matching.ScoringDistinct, NewMatcher(matching.ScoringDistinct).Mode())
}

func TestMatcher_Rank_MarketingScenario(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)
	target := matching.Target{Subjects: []string{"Marketing Management", "Brand Management"}}
	a := candidate("A", 2, "Marketing Management", "Consumer Behavior", "Brand Management")
	b := candidate("B", 1, "Operations Management")

	results := m.Rank(target, []matching.Candidate{b, a})

	require.Len(t, results, 2)
	assert.Equal(t, []string{"A", "B"}, ids(results))
	assert.Equal(t, 2, results[0].Score)
	assert.Equal(t, 0, results[1].Score)
	assert.Equal(t, 2, results[0].Candidate.Load)
	assert.Equal(t, 1, results[1].Candidate.Load)
}

func TestMatcher_Rank_TieBreaksByLoadThenInputOrder(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)
	target := matching.Target{Subjects: []string{"Marketing Management"}}

	roster := []matching.Candidate{
		candidate("SUB003", 3, "Marketing Management", "Digital Marketing"),
		candidate("SUB001", 2, "Marketing Management", "Consumer Behavior"),
		candidate("SUB005", 2, "Marketing Management"),
		candidate("SUB002", 1, "Operations Management"),
		candidate("SUB004", 1, "Human Resource Management"),
	}

	results := m.Rank(target, roster)

	assert.Equal(t, []string{"SUB001", "SUB005", "SUB003", "SUB002", "SUB004"}, ids(results))
}

func TestMatcher_Rank_EmptyInputs(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)

	assert.Empty(t, m.Rank(matching.Target{Subjects: []string{"Marketing Management"}}, nil))

	results := m.Rank(matching.Target{}, []matching.Candidate{
		candidate("M001", 2, "Marketing Management"),
		candidate("M003", 1, "Strategic Management"),
	})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 0, r.Score)
	}
	// all scores tie, so lower load ranks first
	assert.Equal(t, []string{"M003", "M001"}, ids(results))
}

func TestMatcher_Rank_DoesNotMutateCandidates(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)
	roster := []matching.Candidate{
		candidate("M002", 3, "Operations Management"),
		candidate("M001", 2, "Marketing Management"),
	}
	target := matching.Target{Subjects: []string{"Marketing Management"}}

	results := m.Rank(target, roster)
	results[0].Candidate.Subjects[0] = "changed"

	assert.Equal(t, "M002", roster[0].ID)
	assert.Equal(t, "Marketing Management", roster[1].Subjects[0])
	assert.Equal(t, 3, roster[0].Load)
}

func TestMatcher_Rank_Deterministic(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)
	target := matching.Target{Subjects: []string{"Operations Management", "Quality Management"}}
	roster := []matching.Candidate{
		candidate("M001", 2, "Marketing Management", "Consumer Behavior", "Brand Management"),
		candidate("M002", 3, "Operations Management", "Supply Chain Management", "Quality Management"),
		candidate("M003", 1, "Human Resource Management", "Organizational Behavior", "Strategic Management"),
		candidate("M004", 2, "Marketing Management", "Digital Marketing", "E-Commerce"),
	}

	first := m.Rank(target, roster)
	second := m.Rank(target, roster)

	assert.Equal(t, first, second)
	assert.Equal(t, "M002", first[0].Candidate.ID)
	assert.Equal(t, 2, first[0].Score)
}

func TestMatcher_Suggest(t *testing.T) {
	m := NewMatcher(matching.ScoringPairs)
	roster := []matching.Candidate{
		candidate("SUB001", 2, "Marketing Management", "Consumer Behavior", "Brand Management"),
		candidate("SUB002", 1, "Operations Management", "Supply Chain Management"),
		candidate("SUB003", 3, "Marketing Management", "Digital Marketing"),
	}

	t.Run("best match with matched subjects", func(t *testing.T) {
		target := matching.Target{Subjects: []string{"Marketing Management", "Brand Management", "Consumer Behavior"}}

		s := m.Suggest(target, roster, false)

		require.NotNil(t, s.Best)
		assert.Equal(t, "SUB001", s.Best.Candidate.ID)
		assert.Equal(t, 3, s.Best.Score)
		assert.Equal(t, []string{"Marketing Management", "Consumer Behavior", "Brand Management"}, s.MatchedSubjects)
		assert.Len(t, s.Ranked, 3)
	})

	t.Run("only matching drops zero scores", func(t *testing.T) {
		target := matching.Target{Subjects: []string{"Marketing Management"}}

		s := m.Suggest(target, roster, true)

		assert.Equal(t, []string{"SUB001", "SUB003"}, ids(s.Ranked))
	})

	t.Run("no overlap means no suggestion", func(t *testing.T) {
		target := matching.Target{Subjects: []string{"Business Analytics"}}

		s := m.Suggest(target, roster, false)

		assert.Nil(t, s.Best)
		assert.Empty(t, s.MatchedSubjects)
		assert.Len(t, s.Ranked, 3)
	})

	t.Run("empty target never suggests", func(t *testing.T) {
		s := m.Suggest(matching.Target{}, roster, false)
		assert.Nil(t, s.Best)
	})
}

func TestBest(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)

	_, ok = Best([]matching.MatchResult{{Candidate: candidate("A", 0), Score: 0}})
	assert.False(t, ok)

	best, ok := Best([]matching.MatchResult{{Candidate: candidate("A", 0), Score: 1}})
	assert.True(t, ok)
	assert.Equal(t, "A", best.Candidate.ID)
}

func TestInstrumentedRanker_DelegatesUnchanged(t *testing.T) {
	inner := NewMatcher(matching.ScoringPairs)
	ranker := NewInstrumentedRanker(inner, matching.RosterMentors)
	target := matching.Target{Subjects: []string{"Marketing Management"}}
	roster := []matching.Candidate{
		candidate("M002", 3, "Operations Management"),
		candidate("M004", 2, "Marketing Management", "Digital Marketing"),
	}

	assert.Equal(t, inner.Rank(target, roster), ranker.Rank(target, roster))
	assert.Equal(t, inner.Suggest(target, roster, false), ranker.Suggest(target, roster, false))
}
