package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/quoteflow/quoteflow/internal/application/auth"
	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/company"
	"github.com/quoteflow/quoteflow/internal/application/quoting"
	"github.com/quoteflow/quoteflow/internal/infrastructure/document"
	"github.com/quoteflow/quoteflow/internal/infrastructure/postgres"
	"github.com/quoteflow/quoteflow/internal/infrastructure/tabular"
	httpRouter "github.com/quoteflow/quoteflow/internal/interfaces/http"
	"github.com/quoteflow/quoteflow/pkg/config"
	"github.com/quoteflow/quoteflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	catalogItemRepo := postgres.NewCatalogItemRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := company.NewCompanyUseCase(companyRepo, nil)

	reconciler := catalog.NewCategoryReconciler(categoryRepo, nil)
	importer := catalog.NewBulkImporter(reconciler, catalogItemRepo, nil)
	catalogUC := catalog.NewCatalogUseCase(
		catalogItemRepo, categoryRepo, reconciler, importer,
		tabular.NewCSVCodec(), tabular.NewXLSXCodec(), nil,
	)

	allocator := quoting.NewQuoteNumberAllocator(nil)
	quoteUC := quoting.NewQuoteUseCase(txRunner, quoteRepo, catalogItemRepo, allocator, nil)
	exportUC := quoting.NewExportUseCase(
		quoteRepo, catalogItemRepo, companyRepo,
		document.NewPDFRenderer(cfg.Render.FontPath, nil),
		document.NewDocxRenderer(nil),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // document rendering can be slow on big quotes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		CatalogUC: catalogUC,
		QuoteUC:   quoteUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
