package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quoteflow/quoteflow/internal/application/auth"
	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/company"
	"github.com/quoteflow/quoteflow/internal/application/quoting"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CompanyUC *company.CompanyUseCase
	CatalogUC *catalog.CatalogUseCase
	QuoteUC   *quoting.QuoteUseCase
	ExportUC  *quoting.ExportUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Company profile
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", companyHandler.Update)

	// Catalog
	catalogGroup := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup.Post("/categories", catalogHandler.CreateCategory)
	catalogGroup.Get("/categories", catalogHandler.ListCategories)
	catalogGroup.Post("/items", catalogHandler.CreateItem)
	catalogGroup.Get("/items", catalogHandler.ListItems)
	catalogGroup.Get("/items/search", catalogHandler.SearchItems)
	catalogGroup.Put("/items/:id", catalogHandler.UpdateItem)
	catalogGroup.Post("/bulk-import", catalogHandler.BulkImport)
	catalogGroup.Post("/import/csv", catalogHandler.ImportCSV)
	catalogGroup.Post("/import/xlsx", catalogHandler.ImportXLSX)
	catalogGroup.Get("/export/csv", catalogHandler.ExportCSV)
	catalogGroup.Get("/export/xlsx", catalogHandler.ExportXLSX)

	// Quotes
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ExportUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Get("/:id/export/pdf", quoteHandler.ExportPDF)
	quotes.Get("/:id/export/docx", quoteHandler.ExportDOCX)
}
