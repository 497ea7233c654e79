package user

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUserEmailExists           = errors.New("email already registered")
	ErrInsufficientPermissions   = errors.New("insufficient permissions")
	ErrCoordinatorAccessRequired = errors.New("coordinator access required")
	ErrStaffProfileRequired      = errors.New("staff profile required")
)
