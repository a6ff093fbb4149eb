package member

// Member is a loyalty-program customer. A member need not have a login.
type Member struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Avatar     *string `json:"avatar"`
	JoinDate   string  `json:"joinDate"`
	ExpiryDate string  `json:"expiryDate"`
	Points     int64   `json:"points"`
	TotalSpend int64   `json:"totalSpend"`
	IsActive   bool    `json:"isActive"`
}

type MemberInput struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Avatar     string `json:"avatar"`
	JoinDate   string `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	Points     int64  `json:"points" validate:"gte=0"`
	TotalSpend int64  `json:"totalSpend" validate:"gte=0"`
	IsActive   *bool  `json:"isActive"`
}

type PointsInput struct {
	Points int64 `json:"points"`
}
