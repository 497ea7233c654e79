package interview

import (
	"math"
	"slices"
	"time"
)

type InterviewStatus string

const (
	InterviewStatusUpcoming InterviewStatus = "upcoming"
	InterviewStatusEnded    InterviewStatus = "ended"
)

func (s InterviewStatus) IsValid() bool {
	return s == InterviewStatusUpcoming || s == InterviewStatusEnded
}

type ShortlistStatus string

const (
	ShortlistStatusPending  ShortlistStatus = "pending"
	ShortlistStatusApproved ShortlistStatus = "approved"
	ShortlistStatusRejected ShortlistStatus = "rejected"
)

// Criterion is one part of a marking scheme.
type Criterion struct {
	Name     string
	MaxMarks int
}

// DefaultMarkingScheme is used until a coordinator sets one.
func DefaultMarkingScheme() []Criterion {
	return []Criterion{
		{Name: "Part 1", MaxMarks: 30},
		{Name: "Part 2", MaxMarks: 30},
		{Name: "Part 3", MaxMarks: 40},
	}
}

// Marks holds one score per criterion of the interview's marking scheme.
type Marks struct {
	Scores   []int
	Total    int
	Comments *string
	MarkedBy string
	MarkedAt time.Time
}

type Candidate struct {
	ID    string
	Name  string
	Email string
	Phone *string
	Marks *Marks
}

// Shortlist is the set of candidates a coordinator sends to the HOD.
type Shortlist struct {
	CandidateIDs []string
	Status       ShortlistStatus
	SubmittedBy  string
	SubmittedAt  time.Time
	DecidedBy    *string
	DecidedAt    *time.Time
	Remarks      *string
}

// Interview is a scheduled selection interview for temporary staff
// candidates. Number is assigned in scheduling order starting at 1.
type Interview struct {
	ID            string
	Number        int
	Title         string
	Subject       *string
	ScheduledAt   time.Time
	Venue         *string
	Status        InterviewStatus
	MarkingScheme []Criterion
	Candidates    []Candidate
	Shortlist     *Shortlist
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StatusAt is the interview status as of now; an upcoming interview whose
// start time has passed counts as ended.
func (i Interview) StatusAt(now time.Time) InterviewStatus {
	if i.Status == InterviewStatusUpcoming && !i.ScheduledAt.After(now) {
		return InterviewStatusEnded
	}
	return i.Status
}

func (i Interview) TotalMarks() int {
	total := 0
	for _, c := range i.MarkingScheme {
		total += c.MaxMarks
	}
	return total
}

// PassMark is half of the scheme total, rounded up.
func (i Interview) PassMark() int {
	return (i.TotalMarks() + 1) / 2
}

func (i Interview) HasMarks() bool {
	for _, c := range i.Candidates {
		if c.Marks != nil {
			return true
		}
	}
	return false
}

// FindCandidate returns the index of the candidate with id, or -1.
func (i Interview) FindCandidate(id string) int {
	return slices.IndexFunc(i.Candidates, func(c Candidate) bool { return c.ID == id })
}

// ShortlistLocked reports whether a shortlist is awaiting or has received
// HOD approval. Marks and shortlists are frozen while it holds.
func (i Interview) ShortlistLocked() bool {
	return i.Shortlist != nil && i.Shortlist.Status != ShortlistStatusRejected
}

// RankedCandidates orders marked candidates by total, highest first, and
// lists unmarked candidates after them. Ties keep their original order.
func (i Interview) RankedCandidates() []Candidate {
	ranked := slices.Clone(i.Candidates)
	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		switch {
		case a.Marks == nil && b.Marks == nil:
			return 0
		case a.Marks == nil:
			return 1
		case b.Marks == nil:
			return -1
		}
		return b.Marks.Total - a.Marks.Total
	})
	return ranked
}

// Results summarizes marking progress.
type Results struct {
	Marked       int
	Unmarked     int
	AverageTotal float64
	HighestTotal int
	PassMark     int
	Passed       int
}

func (i Interview) Results() Results {
	r := Results{PassMark: i.PassMark()}
	sum := 0
	for _, c := range i.Candidates {
		if c.Marks == nil {
			r.Unmarked++
			continue
		}
		r.Marked++
		sum += c.Marks.Total
		r.HighestTotal = max(r.HighestTotal, c.Marks.Total)
		if c.Marks.Total >= r.PassMark {
			r.Passed++
		}
	}
	if r.Marked > 0 {
		r.AverageTotal = math.Round(float64(sum)/float64(r.Marked)*10) / 10
	}
	return r
}
