package notification

import (
	"errors"

	"laundry-be/internal/apperr"
)

var (
	ErrNotificationNotFound = apperr.NotFound("Notification not found")
	ErrUnknownEventKind     = errors.New("unknown order event kind")
)
