package entity

import "time"

// Category groups catalog items. Name is unique per company (enforced by the
// storage layer); categories are created lazily on first reference.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultCategoryName is assigned when an imported row carries no category.
const DefaultCategoryName = "Uncategorized"
