package repository

import "github.com/quoteflow/quoteflow/internal/domain/entity"

// CatalogItemRepository is the persistence port for catalog items.
type CatalogItemRepository interface {
	Create(item *entity.CatalogItem) error
	GetByID(id string) (*entity.CatalogItem, error)
	Update(item *entity.CatalogItem) error
	ListByCompany(companyID string, onlyActive bool) ([]*entity.CatalogItem, error)
	Search(companyID, query, categoryID string) ([]*entity.CatalogItem, error)
}
