package user

import "time"

// User is an account row. Password holds the bcrypt hash and never leaves
// the server.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`
	FullName  string     `json:"fullName"`
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// LoginInput accepts either username+password or a customer phone number.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginResult struct {
	Token string
	User  *User
}

type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}
