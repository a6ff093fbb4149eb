package notification

import (
	"encoding/json"
	"time"

	"laundry-be/internal/utils"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TypeOrder     = "order"
	TypeInventory = "inventory"

	EventOrderCreated  = "order_created"
	EventStatusChanged = "status_changed"

	// MaxAttempts bounds how often the scheduler retries one outbox event.
	MaxAttempts = 5

	listLimit = 100
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderEvent is an outbox row written in the same transaction as the order
// change it describes.
type OrderEvent struct {
	ID           string
	OrderID      string
	Kind         string
	Status       string
	Payload      string
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	DispatchedAt *time.Time
}

// OrderPayload is the JSON body of an OrderEvent.
type OrderPayload struct {
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
	Total        int64  `json:"total"`
	Status       string `json:"status"`
	RecipientID  string `json:"recipientId,omitempty"`
}

func NewOrderEvent(kind string, p OrderPayload, now time.Time) (*OrderEvent, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &OrderEvent{
		ID:        utils.NewID("EVT"),
		OrderID:   p.OrderID,
		Kind:      kind,
		Status:    p.Status,
		Payload:   string(body),
		CreatedAt: now,
	}, nil
}
