package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los valores de atributos se escriben con
// AttributeValueUseCase.SetAttributes.
type ProductUseCase struct {
	tx TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner) *ProductUseCase {
	return &ProductUseCase{tx: tx}
}

// Create crea un producto en una categoría existente. name, sku y category_id son obligatorios.
// Un SKU repetido retorna domain.ErrDuplicate (restricción de la BD).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	categoryID := strings.TrimSpace(in.CategoryID)
	if name == "" || sku == "" || categoryID == "" {
		return nil, domain.NewValidationError("name, sku y category_id son requeridos")
	}
	in.Name, in.SKU, in.CategoryID = name, sku, categoryID
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  categoryID,
		Name:        name,
		SKU:         sku,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.AttributeRepository, productRepo repository.ProductRepository, _ repository.AttributeValueRepository) error {
		if _, err := getCategory(ctx, categoryRepo, categoryID); err != nil {
			return err
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("producto sku %q: %w", sku, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("product_id", product.ID).Str("sku", sku).Msg("producto creado")
	return toProductResponse(product), nil
}

// List lista todos los productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	var list []*entity.Product
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, _ repository.AttributeRepository, productRepo repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		list, err = productRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// GetByID obtiene el producto con sus atributos resueltos nombre → valor.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	var out *dto.ProductDetailResponse
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, _ repository.AttributeRepository, productRepo repository.ProductRepository, valueRepo repository.AttributeValueRepository) error {
		product, err := getProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		out, err = productDetail(ctx, valueRepo, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica un parche parcial sobre name, sku, description, price y currency.
// La unicidad del SKU la garantiza la BD (domain.ErrDuplicate).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("el nombre del producto no puede estar vacío")
		}
		in.Name = &name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.NewValidationError("el sku no puede estar vacío")
		}
		in.SKU = &sku
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var product *entity.Product
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, _ repository.AttributeRepository, productRepo repository.ProductRepository, _ repository.AttributeValueRepository) error {
		var err error
		product, err = getProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.SKU != nil {
			product.SKU = *in.SKU
		}
		if in.Description != nil {
			product.Description = in.Description
		}
		if in.Price != nil {
			product.Price = in.Price
		}
		if in.Currency != nil {
			product.Currency = in.Currency
		}
		product.UpdatedAt = time.Now().UTC()
		if err := productRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("producto sku %q: %w", product.SKU, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto y, antes, sus valores de atributos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(_ repository.CategoryRepository, _ repository.AttributeRepository, productRepo repository.ProductRepository, valueRepo repository.AttributeValueRepository) error {
		if _, err := getProduct(ctx, productRepo, id); err != nil {
			return err
		}
		n, err := valueRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return err
		}
		log.Debug().Str("product_id", id).Int64("values", n).Msg("producto eliminado")
		return nil
	})
}

func getProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("producto", id)
	}
	return product, nil
}

// productDetail resuelve cada fila de valor por su etiqueta de tipo.
func productDetail(ctx context.Context, valueRepo repository.AttributeValueRepository, p *entity.Product) (*dto.ProductDetailResponse, error) {
	values, err := valueRepo.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]any, len(values))
	for _, v := range values {
		attrs[v.AttributeName] = v.Value.Interface()
	}
	return &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(p),
		Attributes:      attrs,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
