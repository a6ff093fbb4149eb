package order

import "laundry-be/internal/apperr"

var (
	ErrOrderNotFound     = apperr.NotFound("Order not found")
	ErrMemberNotFound    = apperr.NotFound("Member not found")
	ErrOrderExists       = apperr.New(apperr.KindConflict, "Order already exists")
	ErrNoItems           = apperr.Validation("Order must contain at least one item")
	ErrTotalMismatch     = apperr.Validation("Order total does not match its items")
	ErrPaymentMethod     = apperr.Validation("paymentMethod must be one of: tunai qris debit")
	ErrInitialStatus     = apperr.Validation("New orders must start as pending")
	ErrUnknownStatus     = apperr.Validation("Invalid status")
	ErrInvalidTransition = apperr.New(apperr.KindInvalidTransition, "Invalid status transition")
)
