package leave

import "errors"

var (
	ErrLeaveApplicationNotFound         = errors.New("leave application not found")
	ErrLeaveApplicationAlreadyProcessed = errors.New("leave application already processed")
	ErrSubstituteIsApplicant            = errors.New("substitute cannot be the applicant")
)
