package matching

// ScoringMode selects how overlapping subject labels are counted.
type ScoringMode string

const (
	// ScoringPairs counts every (candidate subject, target subject) pair whose
	// labels contain one another, so one label may match several on the other side.
	ScoringPairs ScoringMode = "pairs"
	// ScoringDistinct counts each candidate subject at most once.
	ScoringDistinct ScoringMode = "distinct"
)

// IsValid reports whether the mode is one of the known modes.
func (m ScoringMode) IsValid() bool {
	return m == ScoringPairs || m == ScoringDistinct
}

// RosterKind names the roster a ranking was computed over.
type RosterKind string

const (
	RosterMentors     RosterKind = "mentors"
	RosterSubstitutes RosterKind = "substitutes"
)

// Candidate is a mentor or substitute staff member eligible for assignment.
type Candidate struct {
	ID       string
	Name     string
	Subjects []string
	Load     int // current number of active assignments or classes
}

// Target is the staff member whose preferred subjects drive the search.
type Target struct {
	ID       string
	Name     string
	Subjects []string
}

// MatchResult is a candidate annotated with its match score.
type MatchResult struct {
	Candidate Candidate
	Score     int
}

// Suggestion is the ranked roster together with the best match, if one exists.
type Suggestion struct {
	Ranked          []MatchResult
	Best            *MatchResult
	MatchedSubjects []string
}
