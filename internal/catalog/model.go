package catalog

const (
	CategoryKiloan  = "kiloan"
	CategorySatuan  = "satuan"
	CategoryExpress = "express"
)

// Service is a priced laundry offering.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
}

type ServiceInput struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Unit        string `json:"unit" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=kiloan satuan express"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}
