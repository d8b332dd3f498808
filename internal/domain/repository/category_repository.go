package repository

import "github.com/quoteflow/quoteflow/internal/domain/entity"

// CategoryRepository is the persistence port for categories. Create must
// return domain.ErrDuplicate when (company, name) already exists so callers
// can re-fetch instead of creating a second category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	Update(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByCompanyAndName(companyID, name string) (*entity.Category, error)
	ListByCompany(companyID string) ([]*entity.Category, error)
}
