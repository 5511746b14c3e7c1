package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// AttributeValueRepository define el puerto de persistencia para los valores dispersos
// (producto, atributo) → valor tipado.
type AttributeValueRepository interface {
	// Upsert crea la fila si no existe para (ProductID, AttributeDefinitionID) o la sobrescribe
	// completa. Actualiza value.ID y value.CreatedAt con los de la fila persistida.
	Upsert(ctx context.Context, value *entity.AttributeValue) error
	// ListByProduct devuelve los valores del producto con el nombre de su definición, por nombre.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ResolvedAttributeValue, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
	DeleteByAttribute(ctx context.Context, attributeID string) (int64, error)
	// DeleteByCategory borra los valores de todas las definiciones de la categoría.
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}
