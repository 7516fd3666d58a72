package domain

import "time"

// UserRole distinguishes regular requesters from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the domain model for account holders who submit service requests.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	Address      *string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
