package entity

import "time"

// User is an authenticated account belonging to a company.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "user"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
