package stats

import "laundry-be/internal/apperr"

var (
	ErrDateRangeRequired = apperr.Validation("startDate and endDate are required")
	ErrInvalidDate       = apperr.Validation("dates must be formatted YYYY-MM-DD")
	ErrInvalidRange      = apperr.Validation("startDate must not be after endDate")
)
