package inventory

import "laundry-be/internal/apperr"

var (
	ErrItemNotFound      = apperr.NotFound("Inventory item not found")
	ErrCodeTaken         = apperr.New(apperr.KindConflict, "Inventory code already exists")
	ErrInsufficientStock = apperr.New(apperr.KindInsufficientStock, "Insufficient stock")
	ErrInvalidQuantity   = apperr.Validation("quantity must be greater than 0")

	ErrMaterialNotFound = apperr.NotFound("Service material not found")
	ErrMaterialExists   = apperr.New(apperr.KindConflict, "Service material mapping already exists")
	ErrUnknownReference = apperr.Validation("serviceId or inventoryId does not exist")
)
