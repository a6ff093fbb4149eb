package stats

type Dashboard struct {
	Revenue       int64        `json:"revenue"`
	NewMembers    int64        `json:"newMembers"`
	ActiveOrders  int64        `json:"activeOrders"`
	LowStock      int64        `json:"lowStock"`
	WeeklyRevenue []DayRevenue `json:"weeklyRevenue"`
}

// DayRevenue is revenue for one weekday; DayOfWeek 0 is Sunday.
type DayRevenue struct {
	DayOfWeek int   `json:"dayOfWeek"`
	Total     int64 `json:"total"`
}

type DateRevenue struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// OrderRow is one line of the orders CSV export.
type OrderRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	CustomerName  string `csv:"customer_name"`
	CustomerID    string `csv:"customer_id"`
	Status        string `csv:"status"`
	PaymentMethod string `csv:"payment_method"`
	Items         int64  `csv:"items"`
	Total         int64  `csv:"total"`
	CreatedAt     string `csv:"created_at"`
}
