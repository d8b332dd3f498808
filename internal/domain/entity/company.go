package entity

import "time"

// Company is a tenant. LogoData holds the already-resized logo image bytes
// (resizing happens upstream); empty means no logo.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	LogoData  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
