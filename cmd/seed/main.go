// seed carga el catálogo de demostración (Smartphones y Watches) en PostgreSQL.
// Las categorías que ya existen se omiten.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := catalog.NewSeeder(postgres.NewTxRunner(pool)).SeedDemo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("categories", n).Msg("seed completado")
}
