package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner catalog.TxRunner
		db       httpRouter.Pinger
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		txRunner = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		db = pool
	}

	if cfg.Storage.SeedDemo {
		n, err := catalog.NewSeeder(txRunner).SeedDemo(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo de demostración")
		}
		log.Info().Int("categories", n).Msg("catálogo de demostración cargado")
	}

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: las escrituras no requieren autenticación")
	}

	app := httpRouter.NewApp(cfg.App.Name, cfg.HTTP.CORSOrigins, log.Zerolog())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  catalog.NewCategoryUseCase(txRunner),
		AttributeUC: catalog.NewAttributeUseCase(txRunner),
		ProductUC:   catalog.NewProductUseCase(txRunner),
		ValueUC:     catalog.NewAttributeValueUseCase(txRunner),
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		StorageName: cfg.Storage.Driver,
		DB:          db,
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
