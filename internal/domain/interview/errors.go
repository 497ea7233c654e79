package interview

import "errors"

var (
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrInterviewNotEnded   = errors.New("interview has not ended yet")
	ErrMarkingSchemeLocked = errors.New("marking scheme cannot change once candidates are marked")
	ErrShortlistSubmitted  = errors.New("shortlist already submitted")
	ErrShortlistNotPending = errors.New("no shortlist awaiting approval")
	ErrCandidateNotMarked  = errors.New("shortlisted candidates must be marked")
)
