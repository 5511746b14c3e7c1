package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// AttributeRepository define el puerto de persistencia para AttributeDefinition.
// Todas las lecturas por ID van acotadas a la categoría dueña; (nil, nil) si no existe en ella.
type AttributeRepository interface {
	Create(ctx context.Context, attr *entity.AttributeDefinition) error
	GetByID(ctx context.Context, categoryID, id string) (*entity.AttributeDefinition, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.AttributeDefinition, error) // por nombre ascendente
	Update(ctx context.Context, attr *entity.AttributeDefinition) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}
