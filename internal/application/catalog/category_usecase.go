package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/domain/schema"
)

// CategoryUseCase casos de uso CRUD para categorías. El borrado elimina en cascada el esquema
// de atributos y sus valores, y se rechaza si la categoría todavía tiene productos.
type CategoryUseCase struct {
	tx TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx TxRunner) *CategoryUseCase {
	return &CategoryUseCase{tx: tx}
}

// Create crea una nueva categoría. El nombre es obligatorio y se recorta.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := schema.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("el nombre de la categoría es requerido")
	}
	in.Name = name
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		if err := categoryRepo.Create(ctx, category); err != nil {
			return fmt.Errorf("categoría %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("category_id", category.ID).Str("name", name).Msg("categoría creada")
	return toCategoryResponse(category), nil
}

// List lista todas las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	var list []*entity.Category
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		list, err = categoryRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var category *entity.Category
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		category, err = getCategory(ctx, categoryRepo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update aplica un parche parcial. Si viene name, no puede quedar vacío tras recortarlo.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name != nil {
		name := schema.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("el nombre de la categoría no puede estar vacío")
		}
		in.Name = &name
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var category *entity.Category
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.AttributeRepository, _ repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		category, err = getCategory(ctx, categoryRepo, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			category.Name = *in.Name
		}
		if in.Description != nil {
			category.Description = in.Description
		}
		category.UpdatedAt = time.Now().UTC()
		if err := categoryRepo.Update(ctx, category); err != nil {
			return fmt.Errorf("categoría %q: %w", category.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría. Orden: valores de sus atributos, definiciones, categoría.
// Retorna domain.ErrConflict si algún producto la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, productRepo repository.ProductRepository, valueRepo repository.AttributeValueRepository) error {
		if _, err := getCategory(ctx, categoryRepo, id); err != nil {
			return err
		}
		n, err := productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("la categoría %s tiene %d productos: %w", id, n, domain.ErrConflict)
		}
		values, err := valueRepo.DeleteByCategory(ctx, id)
		if err != nil {
			return err
		}
		attrs, err := attrRepo.DeleteByCategory(ctx, id)
		if err != nil {
			return err
		}
		if err := categoryRepo.Delete(ctx, id); err != nil {
			return err
		}
		log.Debug().Str("category_id", id).Int64("attributes", attrs).Int64("values", values).Msg("categoría eliminada")
		return nil
	})
}

func getCategory(ctx context.Context, repo repository.CategoryRepository, id string) (*entity.Category, error) {
	category, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("categoría", id)
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        slug.Make(c.Name),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
