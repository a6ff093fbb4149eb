package catalog

import "laundry-be/internal/apperr"

var (
	ErrServiceNotFound = apperr.NotFound("Service not found")
	ErrServiceExists   = apperr.New(apperr.KindConflict, "Service already exists")
)
