package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica con goose las migraciones embebidas que aún no figuran en goose_db_version.
// Cada script corre en su propia transacción. Devuelve las rutas aplicadas, también en fallo parcial.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(database.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("preparar migraciones: %w", err)
	}
	results, err := provider.Up(ctx)
	var applied []string
	for _, r := range results {
		if r != nil && r.Error == nil {
			applied = append(applied, r.Source.Path)
		}
	}
	if err != nil {
		return applied, fmt.Errorf("migrar: %w", err)
	}
	return applied, nil
}
