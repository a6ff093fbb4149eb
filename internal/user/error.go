package user

import "laundry-be/internal/apperr"

var (
	ErrUserNotFound        = apperr.NotFound("User not found")
	ErrCredentialsRequired = apperr.Validation("Username and password are required")
)
