package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quoteflow/quoteflow/internal/application/company"
	"github.com/quoteflow/quoteflow/internal/application/dto"
)

// CompanyHandler handles the caller's own company profile (protected).
type CompanyHandler struct {
	uc *company.CompanyUseCase
}

// NewCompanyHandler builds the handler.
func NewCompanyHandler(uc *company.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get returns the authenticated company's profile.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	out, err := h.uc.Get(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update applies profile changes, logo included.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
