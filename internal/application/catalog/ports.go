// Package catalog implementa los casos de uso del catálogo EAV: categorías, esquema de atributos
// por categoría, productos y valores tipados de atributos. Cada operación corre en una transacción.
package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback y nada de lo escrito queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		attrRepo repository.AttributeRepository,
		productRepo repository.ProductRepository,
		valueRepo repository.AttributeValueRepository,
	) error) error
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
