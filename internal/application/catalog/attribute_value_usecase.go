package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/domain/schema"
)

// AttributeValueUseCase escribe los valores tipados de atributos de un producto.
type AttributeValueUseCase struct {
	tx TxRunner
}

// NewAttributeValueUseCase construye el caso de uso.
func NewAttributeValueUseCase(tx TxRunner) *AttributeValueUseCase {
	return &AttributeValueUseCase{tx: tx}
}

// SetAttributes resuelve cada nombre (exacto salvo normalización NFC) contra el esquema de la
// categoría del producto, aplica la coerción del tipo declarado y hace upsert de una fila por
// atributo. Todo o nada: un nombre desconocido, dos claves para el mismo atributo o un valor
// inválido hacen Rollback de la transacción completa.
// Retorna el producto resuelto tras la escritura.
func (uc *AttributeValueUseCase) SetAttributes(ctx context.Context, productID string, values map[string]any) (*dto.ProductDetailResponse, error) {
	var out *dto.ProductDetailResponse
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, attrRepo repository.AttributeRepository, productRepo repository.ProductRepository, valueRepo repository.AttributeValueRepository) error {
		// Bloquea el producto: escrituras concurrentes sobre el mismo producto se serializan.
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound("producto", productID)
		}
		defs, err := attrRepo.ListByCategory(ctx, product.CategoryID)
		if err != nil {
			return err
		}
		byName := make(map[string]*entity.AttributeDefinition, len(defs))
		for _, d := range defs {
			byName[d.Name] = d
		}

		// Orden estable para que el primer error reportado sea determinista.
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		now := time.Now().UTC()
		staged := make([]*entity.AttributeValue, 0, len(names))
		seen := make(map[string]string, len(names))
		for _, name := range names {
			def, ok := byName[schema.LookupKey(name)]
			if !ok {
				return domain.NewValidationError(fmt.Sprintf("atributo desconocido para esta categoría: %s", name))
			}
			if prev, dup := seen[def.ID]; dup {
				return domain.NewValidationError(fmt.Sprintf("las claves %q y %q designan el mismo atributo %s", prev, name, def.Name))
			}
			seen[def.ID] = name
			v, err := schema.Coerce(def, values[name])
			if err != nil {
				return err
			}
			staged = append(staged, &entity.AttributeValue{
				ID:                    uuid.New().String(),
				ProductID:             product.ID,
				AttributeDefinitionID: def.ID,
				Value:                 v,
				CreatedAt:             now,
				UpdatedAt:             now,
			})
		}
		for _, av := range staged {
			if err := valueRepo.Upsert(ctx, av); err != nil {
				return fmt.Errorf("guardar valor de atributo: %w", err)
			}
		}
		out, err = productDetail(ctx, valueRepo, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("product_id", productID).Int("attributes", len(values)).Msg("atributos asignados")
	return out, nil
}
