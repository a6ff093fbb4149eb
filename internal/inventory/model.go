package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Clients send and read material quantities as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
)

// Item is a consumable in the shop's stock room.
type Item struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Stock           int64   `json:"stock"`
	Unit            string  `json:"unit"`
	MinStock        int64   `json:"minStock"`
	Supplier        *string `json:"supplier"`
	SupplierContact *string `json:"supplierContact"`
	Price           int64   `json:"price"`
	Category        string  `json:"category"`
	LastRestockDate *string `json:"lastRestockDate"`
	IsActive        bool    `json:"isActive"`
}

func (i *Item) IsLow() bool {
	return i.Stock < i.MinStock
}

type ItemInput struct {
	ID              string `json:"id"`
	Code            string `json:"code" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Stock           int64  `json:"stock" validate:"gte=0"`
	Unit            string `json:"unit" validate:"required"`
	MinStock        int64  `json:"minStock" validate:"gte=0"`
	Supplier        string `json:"supplier"`
	SupplierContact string `json:"supplierContact"`
	Price           int64  `json:"price" validate:"gte=0"`
	Category        string `json:"category" validate:"required"`
	IsActive        *bool  `json:"isActive"`
}

type StockInput struct {
	Quantity  int64  `json:"quantity" validate:"gt=0"`
	Operation string `json:"operation" validate:"required,oneof=add subtract"`
}

// ServiceMaterial says how much of an inventory item one unit of a service
// consumes.
type ServiceMaterial struct {
	ID            string          `json:"id"`
	ServiceID     string          `json:"serviceId"`
	InventoryID   string          `json:"inventoryId"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	ServiceName   string          `json:"serviceName,omitempty"`
	InventoryName string          `json:"inventoryName,omitempty"`
	InventoryUnit string          `json:"inventoryUnit,omitempty"`
	CurrentStock  int64           `json:"currentStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type MaterialInput struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"serviceId" validate:"required"`
	InventoryID string          `json:"inventoryId" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required"`
}
