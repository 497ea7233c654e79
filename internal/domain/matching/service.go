package matching

// Ranker ranks a roster of candidates against a target's preferences.
type Ranker interface {
	Rank(target Target, candidates []Candidate) []MatchResult
	Suggest(target Target, candidates []Candidate, onlyMatching bool) Suggestion
}
