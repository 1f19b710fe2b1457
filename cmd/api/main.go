package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain/repository"
	"github.com/jhoicas/taff-facture/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/taff-facture/internal/infrastructure/pdf"
	"github.com/jhoicas/taff-facture/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/taff-facture/internal/interfaces/http"
	"github.com/jhoicas/taff-facture/pkg/config"
	"github.com/jhoicas/taff-facture/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("export_mode", cfg.Export.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Origen de facturas: fixtures YAML en memoria o PostgreSQL.
	var invoiceRepo repository.InvoiceRepository
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		invoiceRepo = postgres.NewInvoiceRepository(pool)
	default:
		repo, err := memory.LoadFile(cfg.Store.Fixtures)
		if err != nil {
			log.Fatal().Err(err).Str("fixtures", cfg.Store.Fixtures).Msg("cargar fixtures")
		}
		invoiceRepo = repo
	}

	// PDF: raster (captura + A4) o vector (Maroto)
	renderer, err := infrapdf.NewRenderer(cfg.Export, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("renderer PDF")
	}

	formatter := view.NewFormatter(cfg.Display.Locale, cfg.Display.Currency)
	hooks := export.NewLogHooks(log)
	exporter := export.NewExporter(renderer, formatter,
		export.WithCelebrator(hooks),
		export.WithObserver(hooks),
		export.WithTimeout(cfg.Export.Timeout),
	)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, exporter, formatter)

	pages, err := view.NewPages()
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas HTML")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		UnescapePath: true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Export.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TaffFacture API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC: invoiceUC,
		Pages:     pages,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
