package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/domain/schema"
)

// AttributeUseCase administra el esquema dinámico de una categoría (definiciones de atributos).
type AttributeUseCase struct {
	tx TxRunner
}

// NewAttributeUseCase construye el caso de uso.
func NewAttributeUseCase(tx TxRunner) *AttributeUseCase {
	return &AttributeUseCase{tx: tx}
}

// Create declara un atributo en la categoría. Para enum exige options no vacío; en otros tipos
// las options se ignoran.
func (uc *AttributeUseCase) Create(ctx context.Context, categoryID string, in dto.CreateAttributeRequest) (*dto.AttributeResponse, error) {
	name := schema.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("el nombre del atributo es requerido")
	}
	in.Name = name
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var attr *entity.AttributeDefinition
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		if _, err := getCategory(ctx, categoryRepo, categoryID); err != nil {
			return err
		}
		dataType, err := schema.ParseType(in.DataType)
		if err != nil {
			return err
		}
		var options []string
		if dataType == entity.AttributeTypeEnum {
			if options, err = schema.NormalizeOptions(in.Options); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		attr = &entity.AttributeDefinition{
			ID:         uuid.New().String(),
			CategoryID: categoryID,
			Name:       name,
			Type:       dataType,
			IsRequired: in.IsRequired,
			IsUnique:   in.IsUnique,
			Unit:       in.Unit,
			Options:    options,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := attrRepo.Create(ctx, attr); err != nil {
			return fmt.Errorf("atributo %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("category_id", categoryID).Str("attribute_id", attr.ID).Str("type", string(attr.Type)).Msg("atributo creado")
	return toAttributeResponse(attr), nil
}

// List lista las definiciones de la categoría por nombre.
func (uc *AttributeUseCase) List(ctx context.Context, categoryID string) (*dto.AttributeListResponse, error) {
	var list []*entity.AttributeDefinition
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		if _, err := getCategory(ctx, categoryRepo, categoryID); err != nil {
			return err
		}
		var err error
		list, err = attrRepo.ListByCategory(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttributeResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAttributeResponse(a))
	}
	return &dto.AttributeListResponse{Items: items}, nil
}

// GetByID obtiene una definición acotada a su categoría.
func (uc *AttributeUseCase) GetByID(ctx context.Context, categoryID, id string) (*dto.AttributeResponse, error) {
	var attr *entity.AttributeDefinition
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		attr, err = getAttribute(ctx, categoryRepo, attrRepo, categoryID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAttributeResponse(attr), nil
}

// Update aplica un parche parcial. Las options se validan contra el tipo resultante: un enum
// siempre queda con opciones y cualquier otro tipo queda sin ellas. Los valores ya guardados
// no se revalidan si cambia el tipo.
func (uc *AttributeUseCase) Update(ctx context.Context, categoryID, id string, in dto.UpdateAttributeRequest) (*dto.AttributeResponse, error) {
	if in.Name != nil {
		name := schema.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("el nombre del atributo no puede estar vacío")
		}
		in.Name = &name
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var attr *entity.AttributeDefinition
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		attr, err = getAttribute(ctx, categoryRepo, attrRepo, categoryID, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			attr.Name = *in.Name
		}
		if in.DataType != nil {
			if attr.Type, err = schema.ParseType(*in.DataType); err != nil {
				return err
			}
		}
		if in.IsRequired != nil {
			attr.IsRequired = *in.IsRequired
		}
		if in.IsUnique != nil {
			attr.IsUnique = *in.IsUnique
		}
		if in.Unit.Set {
			attr.Unit = in.Unit.Value
		}
		if attr.Type == entity.AttributeTypeEnum {
			if in.Options != nil {
				if attr.Options, err = schema.NormalizeOptions(*in.Options); err != nil {
					return err
				}
			} else if len(attr.Options) == 0 {
				return domain.NewValidationError(`los atributos enum requieren una lista "options" no vacía`)
			}
		} else {
			attr.Options = nil
		}
		attr.UpdatedAt = time.Now().UTC()
		if err := attrRepo.Update(ctx, attr); err != nil {
			return fmt.Errorf("atributo %q: %w", attr.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAttributeResponse(attr), nil
}

// Delete elimina la definición y, antes, todos los valores que la referencian.
func (uc *AttributeUseCase) Delete(ctx context.Context, categoryID, id string) error {
	return uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, _ repository.ProductRepository, valueRepo repository.AttributeValueRepository) error {
		if _, err := getAttribute(ctx, categoryRepo, attrRepo, categoryID, id); err != nil {
			return err
		}
		n, err := valueRepo.DeleteByAttribute(ctx, id)
		if err != nil {
			return err
		}
		if err := attrRepo.Delete(ctx, id); err != nil {
			return err
		}
		log.Debug().Str("attribute_id", id).Int64("values", n).Msg("atributo eliminado")
		return nil
	})
}

func getAttribute(ctx context.Context, categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, categoryID, id string) (*entity.AttributeDefinition, error) {
	if _, err := getCategory(ctx, categoryRepo, categoryID); err != nil {
		return nil, err
	}
	attr, err := attrRepo.GetByID(ctx, categoryID, id)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, notFound("atributo", id)
	}
	return attr, nil
}

func toAttributeResponse(a *entity.AttributeDefinition) *dto.AttributeResponse {
	if a == nil {
		return nil
	}
	return &dto.AttributeResponse{
		ID:         a.ID,
		CategoryID: a.CategoryID,
		Name:       a.Name,
		DataType:   string(a.Type),
		IsRequired: a.IsRequired,
		IsUnique:   a.IsUnique,
		Unit:       a.Unit,
		Options:    a.Options,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
