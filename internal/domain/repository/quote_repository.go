package repository

import (
	"time"

	"github.com/quoteflow/quoteflow/internal/domain/entity"
)

// QuoteRepository is the persistence port for quotes and their line items.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Quote, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	Delete(id string) error
}
