package order

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusWashing  Status = "washing"
	StatusReady    Status = "ready"
	StatusPickedUp Status = "picked_up"
)

const (
	PaymentCash  = "tunai"
	PaymentQRIS  = "qris"
	PaymentDebit = "debit"
)

// pointsPerRupiah is the spend that earns one loyalty point.
const pointsPerRupiah = 10000

type Order struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerID    *string   `json:"customerId"`
	OwnerID       *string   `json:"ownerId"`
	Total         int64     `json:"total"`
	Status        Status    `json:"status"`
	Date          string    `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedBy     *string   `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Items         []Item    `json:"items"`
}

type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

var maxTotal = decimal.NewFromInt(math.MaxInt64)

// ItemsTotal sums price × quantity over the items. ok is false when the sum
// does not fit in an int64.
func (o *Order) ItemsTotal() (total int64, ok bool) {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(decimal.NewFromInt(it.Price).Mul(decimal.NewFromInt(it.Quantity)))
	}
	if sum.IsNegative() || sum.GreaterThan(maxTotal) {
		return 0, false
	}
	return sum.IntPart(), true
}

type ItemInput struct {
	ServiceID   string `json:"serviceId" validate:"required"`
	ServiceName string `json:"serviceName" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gt=0,max=100000"`
	Price       int64  `json:"price" validate:"gte=0,max=1000000000"`
}

type OrderInput struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName" validate:"required"`
	CustomerID    string      `json:"customerId"`
	Items         []ItemInput `json:"items" validate:"required,min=1,dive"`
	Total         int64       `json:"total" validate:"gte=0"`
	Status        string      `json:"status" validate:"omitempty,oneof=pending washing ready picked_up"`
	Date          string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string      `json:"paymentMethod" validate:"required,oneof=tunai qris debit"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// MaterialEstimate is the projected consumption of one inventory item.
type MaterialEstimate struct {
	InventoryID  string          `json:"inventoryId"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Required     decimal.Decimal `json:"required"`
	CurrentStock int64           `json:"currentStock"`
	Sufficient   bool            `json:"sufficient"`
}
