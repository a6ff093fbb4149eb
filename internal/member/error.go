package member

import "laundry-be/internal/apperr"

var (
	ErrMemberNotFound  = apperr.NotFound("Member not found")
	ErrPhoneTaken      = apperr.New(apperr.KindConflict, "Phone number already registered")
	ErrNegativePoints  = apperr.Validation("Points cannot go below zero")
	ErrInvalidDateSpan = apperr.Validation("expiryDate must not be before joinDate")
)
