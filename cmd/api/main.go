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

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/export"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/nfe"
	infrapdf "github.com/jhoicas/notas-pagar/internal/infrastructure/pdf"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/notas-pagar/internal/interfaces/http"
	"github.com/jhoicas/notas-pagar/pkg/config"
	"github.com/jhoicas/notas-pagar/pkg/logger"
)

// refreshInterval cada cuánto se recalculan estados por cambio de día.
const refreshInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer closeStore()

	repo := payables.NewInvoiceRepository(store, nil, log)
	if err := repo.Open(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar registro")
	}
	importer := payables.NewImporter(nfe.NewParser(), repo, log)
	dashboardUC := analytics.NewDashboardUseCase(repo)
	reportUC := analytics.NewReportUseCase(repo)
	exporter := export.NewExporter(infrapdf.NewMarotoReportGenerator("Relatório de Notas a Pagar"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); cfg.HTTP.SwaggerFile != "" && err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Notas a Pagar API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Repo:      repo,
		Importer:  importer,
		Dashboard: dashboardUC,
		Report:    reportUC,
		Exporter:  exporter,
	})

	go refreshLoop(ctx, repo, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// refreshLoop recalcula los estados (Em aberto -> Vencida) al cambiar el día.
func refreshLoop(ctx context.Context, repo *payables.InvoiceRepository, log *logger.Logger) {
	t := time.NewTicker(refreshInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := repo.Refresh(ctx)
			if err != nil {
				log.Error().Err(err).Msg("recalcular estados")
				continue
			}
			if n > 0 {
				log.Info().Int("changed", n).Msg("estados recalculados")
			}
		}
	}
}
