package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterview_RankedCandidates_KeepsTieOrder(t *testing.T) {
	i := Interview{Candidates: []Candidate{
		{ID: "C001"},
		{ID: "C002", Marks: &Marks{Total: 70}},
		{ID: "C003", Marks: &Marks{Total: 85}},
		{ID: "C004", Marks: &Marks{Total: 70}},
	}}

	var ids []string
	for _, c := range i.RankedCandidates() {
		ids = append(ids, c.ID)
	}

	assert.Equal(t, []string{"C003", "C002", "C004", "C001"}, ids)
	assert.Equal(t, "C001", i.Candidates[0].ID)
}

func TestInterview_PassMarkRoundsUp(t *testing.T) {
	i := Interview{MarkingScheme: []Criterion{{Name: "Demo", MaxMarks: 25}, {Name: "Viva", MaxMarks: 20}}}

	assert.Equal(t, 45, i.TotalMarks())
	assert.Equal(t, 23, i.PassMark())
}

func TestInterview_StatusAt(t *testing.T) {
	start := time.Date(2025, time.November, 5, 9, 0, 0, 0, time.UTC)
	i := Interview{ScheduledAt: start, Status: InterviewStatusUpcoming}

	assert.Equal(t, InterviewStatusUpcoming, i.StatusAt(start.Add(-time.Minute)))
	assert.Equal(t, InterviewStatusEnded, i.StatusAt(start))
}
