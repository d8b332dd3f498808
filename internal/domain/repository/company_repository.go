package repository

import "github.com/quoteflow/quoteflow/internal/domain/entity"

// CompanyRepository is the persistence port for companies.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
}
