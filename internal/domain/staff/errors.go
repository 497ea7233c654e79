package staff

import "errors"

var (
	ErrStaffNotFound                = errors.New("staff member not found")
	ErrMentorNotFound               = errors.New("mentor not found")
	ErrSubstituteNotFound           = errors.New("substitute staff not found")
	ErrRegistrationNotFound         = errors.New("registration request not found")
	ErrRegistrationAlreadyProcessed = errors.New("registration request already processed")
	ErrStaffEmailExists             = errors.New("email already registered")
	ErrJobDescriptionNotFound       = errors.New("job description not found")
)
