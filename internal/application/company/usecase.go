// Package company exposes the tenant profile as plain field persistence.
// The stored logo bytes feed document rendering; resizing the image happens
// upstream, before the bytes ever reach this service.
package company

import (
	"time"

	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// CompanyUseCase profile read/update for the caller's own company.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase builds the use case. now is injectable for tests; nil
// means time.Now.
func NewCompanyUseCase(repo repository.CompanyRepository, now func() time.Time) *CompanyUseCase {
	if now == nil {
		now = time.Now
	}
	return &CompanyUseCase{repo: repo, now: now}
}

// Get returns the caller's company profile.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CompanyResponse{
		ID:       company.ID,
		Name:     company.Name,
		Address:  company.Address,
		Phone:    company.Phone,
		Email:    company.Email,
		LogoData: company.LogoData,
	}, nil
}

// Update applies profile changes, including replacing or clearing the logo.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.LogoData != nil {
		company.LogoData = in.LogoData
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return uc.Get(companyID)
}
