package matching

type CandidateResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Subjects   []string `json:"subjects"`
	Load       int      `json:"load"`
	MatchScore int      `json:"match_score"`
}

type SuggestionResponse struct {
	TargetID        string              `json:"target_id"`
	TargetName      string              `json:"target_name"`
	TargetSubjects  []string            `json:"target_subjects"`
	Candidates      []CandidateResponse `json:"candidates"`
	BestMatch       *CandidateResponse  `json:"best_match,omitempty"`
	MatchedSubjects []string            `json:"matched_subjects,omitempty"`
}

func NewCandidateResponse(r MatchResult) CandidateResponse {
	subjects := r.Candidate.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return CandidateResponse{
		ID:         r.Candidate.ID,
		Name:       r.Candidate.Name,
		Subjects:   subjects,
		Load:       r.Candidate.Load,
		MatchScore: r.Score,
	}
}

func NewSuggestionResponse(target Target, s Suggestion) SuggestionResponse {
	resp := SuggestionResponse{
		TargetID:        target.ID,
		TargetName:      target.Name,
		TargetSubjects:  target.Subjects,
		Candidates:      make([]CandidateResponse, 0, len(s.Ranked)),
		MatchedSubjects: s.MatchedSubjects,
	}
	if resp.TargetSubjects == nil {
		resp.TargetSubjects = []string{}
	}
	for _, r := range s.Ranked {
		resp.Candidates = append(resp.Candidates, NewCandidateResponse(r))
	}
	if s.Best != nil {
		best := NewCandidateResponse(*s.Best)
		resp.BestMatch = &best
	}
	return resp
}
