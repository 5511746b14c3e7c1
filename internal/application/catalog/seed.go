package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

type seedAttribute struct {
	name     string
	dataType string
	required bool
	unit     string
	options  []any
}

type seedProduct struct {
	name   string
	sku    string
	price  string
	values map[string]any
}

type seedCategory struct {
	name       string
	attributes []seedAttribute
	products   []seedProduct
}

var demoCatalog = []seedCategory{
	{
		name: "Smartphones",
		attributes: []seedAttribute{
			{name: "OS", dataType: "enum", required: true, options: []any{"Android", "iOS"}},
			{name: "RAM_GB", dataType: "int", required: true, unit: "GB"},
			{name: "Battery_mAh", dataType: "int", unit: "mAh"},
		},
		products: []seedProduct{
			{name: "Pixel X", sku: "PX-001", price: "699", values: map[string]any{"OS": "Android", "RAM_GB": 8, "Battery_mAh": 4500}},
		},
	},
	{
		name: "Watches",
		attributes: []seedAttribute{
			{name: "Dial_Color", dataType: "string"},
			{name: "Dial_Size_mm", dataType: "int", unit: "mm"},
			{name: "Strap_Type", dataType: "enum", options: []any{"Leather", "Metal", "Silicone"}},
		},
		products: []seedProduct{
			{name: "Classic Watch", sku: "CW-001", price: "199", values: map[string]any{"Dial_Color": "Black", "Dial_Size_mm": 42, "Strap_Type": "Leather"}},
		},
	},
}

// Seeder carga el catálogo de demostración a través de los casos de uso.
type Seeder struct {
	Categories *CategoryUseCase
	Attributes *AttributeUseCase
	Products   *ProductUseCase
	Values     *AttributeValueUseCase
}

// NewSeeder construye un Seeder sobre un mismo TxRunner.
func NewSeeder(tx TxRunner) *Seeder {
	return &Seeder{
		Categories: NewCategoryUseCase(tx),
		Attributes: NewAttributeUseCase(tx),
		Products:   NewProductUseCase(tx),
		Values:     NewAttributeValueUseCase(tx),
	}
}

// SeedDemo crea Smartphones y Watches con su esquema y un producto cada una. Las categorías
// que ya existen por nombre se omiten, así que puede ejecutarse varias veces. Retorna cuántas
// categorías creó.
func (s *Seeder) SeedDemo(ctx context.Context) (int, error) {
	existing, err := s.Categories.List(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing.Items))
	for _, c := range existing.Items {
		have[c.Name] = true
	}

	created := 0
	for _, sc := range demoCatalog {
		if have[sc.name] {
			continue
		}
		if err := s.seedCategory(ctx, sc); err != nil {
			return created, fmt.Errorf("seed %s: %w", sc.name, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedCategory(ctx context.Context, sc seedCategory) error {
	category, err := s.Categories.Create(ctx, dto.CreateCategoryRequest{Name: sc.name})
	if err != nil {
		return err
	}
	for _, a := range sc.attributes {
		in := dto.CreateAttributeRequest{
			Name:       a.name,
			DataType:   a.dataType,
			IsRequired: a.required,
			Options:    a.options,
		}
		if a.unit != "" {
			unit := a.unit
			in.Unit = &unit
		}
		if _, err := s.Attributes.Create(ctx, category.ID, in); err != nil {
			return err
		}
	}
	for _, p := range sc.products {
		price := decimal.RequireFromString(p.price)
		currency := "USD"
		product, err := s.Products.Create(ctx, dto.CreateProductRequest{
			Name:       p.name,
			SKU:        p.sku,
			CategoryID: category.ID,
			Price:      &price,
			Currency:   &currency,
		})
		if err != nil {
			return err
		}
		if _, err := s.Values.SetAttributes(ctx, product.ID, p.values); err != nil {
			return err
		}
	}
	return nil
}
