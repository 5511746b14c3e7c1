package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	categories *catalog.CategoryUseCase
	attributes *catalog.AttributeUseCase
	products   *catalog.ProductUseCase
	values     *catalog.AttributeValueUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:      store,
		categories: catalog.NewCategoryUseCase(store),
		attributes: catalog.NewAttributeUseCase(store),
		products:   catalog.NewProductUseCase(store),
		values:     catalog.NewAttributeValueUseCase(store),
	}
}

func (f *fixture) category(t *testing.T, name string) string {
	t.Helper()
	c, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) attribute(t *testing.T, categoryID, name, dataType string, options ...any) string {
	t.Helper()
	a, err := f.attributes.Create(context.Background(), categoryID, dto.CreateAttributeRequest{Name: name, DataType: dataType, Options: options})
	require.NoError(t, err)
	return a.ID
}

func (f *fixture) product(t *testing.T, categoryID, name, sku string) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{Name: name, SKU: sku, CategoryID: categoryID})
	require.NoError(t, err)
	return p.ID
}

// watchFixture crea Watches con Dial_Color, Dial_Size_mm y Strap_Type, más un producto.
func watchFixture(t *testing.T, f *fixture) (categoryID, productID string) {
	t.Helper()
	categoryID = f.category(t, "Watches")
	f.attribute(t, categoryID, "Dial_Color", "string")
	f.attribute(t, categoryID, "Dial_Size_mm", "int")
	f.attribute(t, categoryID, "Strap_Type", "enum", "Leather", "Metal", "Silicone")
	productID = f.product(t, categoryID, "Classic Watch", "CW-001")
	return categoryID, productID
}

func valueRows(f *fixture) int {
	_, _, _, values := f.store.Count()
	return values
}

// ──────────────────────────────────────────────────────────────────────────────
// Esquema de atributos
// ──────────────────────────────────────────────────────────────────────────────

func TestAttribute_EnumSinOpciones_Falla(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")

	_, err := f.attributes.Create(ctx, categoryID, dto.CreateAttributeRequest{Name: "Strap_Type", DataType: "enum"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.attributes.Create(ctx, categoryID, dto.CreateAttributeRequest{Name: "Strap_Type", DataType: "enum", Options: []any{}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAttribute_EnumConservaOrdenDeOpciones(t *testing.T) {
	f := newFixture()
	categoryID := f.category(t, "Watches")

	a, err := f.attributes.Create(context.Background(), categoryID, dto.CreateAttributeRequest{
		Name: "Strap_Type", DataType: "enum", Options: []any{"Silicone", "Leather", "Metal"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Silicone", "Leather", "Metal"}, a.Options)
}

func TestAttribute_OpcionesIgnoradasEnTiposNoEnum(t *testing.T) {
	f := newFixture()
	categoryID := f.category(t, "Watches")

	a, err := f.attributes.Create(context.Background(), categoryID, dto.CreateAttributeRequest{
		Name: "Dial_Color", DataType: "string", Options: []any{"Black"},
	})
	require.NoError(t, err)
	assert.Empty(t, a.Options)
}

func TestAttribute_NombreDuplicadoPorCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	phones := f.category(t, "Smartphones")
	watches := f.category(t, "Watches")
	f.attribute(t, phones, "Color", "string")

	_, err := f.attributes.Create(ctx, phones, dto.CreateAttributeRequest{Name: " Color ", DataType: "string"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "mismo nombre en la misma categoría")

	_, err = f.attributes.Create(ctx, watches, dto.CreateAttributeRequest{Name: "Color", DataType: "string"})
	assert.NoError(t, err, "el mismo nombre en otra categoría es válido")
}

func TestAttribute_ActualizarTipo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")
	attrID := f.attribute(t, categoryID, "Strap_Type", "enum", "Leather", "Metal")

	toString := "string"
	a, err := f.attributes.Update(ctx, categoryID, attrID, dto.UpdateAttributeRequest{DataType: &toString})
	require.NoError(t, err)
	assert.Equal(t, "string", a.DataType)
	assert.Empty(t, a.Options, "un tipo no enum queda sin opciones")

	toEnum := "enum"
	_, err = f.attributes.Update(ctx, categoryID, attrID, dto.UpdateAttributeRequest{DataType: &toEnum})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "enum sin opciones tras el parche")

	opts := []any{"Leather"}
	a, err = f.attributes.Update(ctx, categoryID, attrID, dto.UpdateAttributeRequest{DataType: &toEnum, Options: &opts})
	require.NoError(t, err)
	assert.Equal(t, []string{"Leather"}, a.Options)
}

func TestAttribute_AcotadoASuCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	phones := f.category(t, "Smartphones")
	watches := f.category(t, "Watches")
	attrID := f.attribute(t, phones, "RAM_GB", "int")

	_, err := f.attributes.GetByID(ctx, watches, attrID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = f.attributes.Delete(ctx, watches, attrID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.attributes.List(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAttribute_BorrarEliminaSusValores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID, productID := watchFixture(t, f)

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Color": "Black", "Strap_Type": "Metal"})
	require.NoError(t, err)
	require.Equal(t, 2, valueRows(f))

	list, err := f.attributes.List(ctx, categoryID)
	require.NoError(t, err)
	var colorID string
	for _, a := range list.Items {
		if a.Name == "Dial_Color" {
			colorID = a.ID
		}
	}
	require.NotEmpty(t, colorID)

	require.NoError(t, f.attributes.Delete(ctx, categoryID, colorID))
	assert.Equal(t, 1, valueRows(f))

	p, err := f.products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Strap_Type": "Metal"}, p.Attributes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_ListarPorNombre(t *testing.T) {
	f := newFixture()
	f.category(t, "Watches")
	f.category(t, "Smartphones")

	list, err := f.categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Smartphones", list.Items[0].Name)
	assert.Equal(t, "smartphones", list.Items[0].Slug)
}

func TestCategory_RenombrarADuplicado(t *testing.T) {
	f := newFixture()
	f.category(t, "Watches")
	id := f.category(t, "Smartphones")

	name := "Watches"
	_, err := f.categories.Update(context.Background(), id, dto.UpdateCategoryRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCategory_BorrarEnCascadaSinProductos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")
	f.attribute(t, categoryID, "Dial_Color", "string")
	f.attribute(t, categoryID, "Strap_Type", "enum", "Leather")

	require.NoError(t, f.categories.Delete(ctx, categoryID))

	categories, attributes, _, _ := f.store.Count()
	assert.Zero(t, categories)
	assert.Zero(t, attributes, "las definiciones se eliminan con la categoría")

	_, err := f.categories.GetByID(ctx, categoryID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategory_BorrarConProductos_Prohibido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID, productID := watchFixture(t, f)
	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Color": "Black"})
	require.NoError(t, err)

	err = f.categories.Delete(ctx, categoryID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	categories, attributes, products, values := f.store.Count()
	assert.Equal(t, 1, categories)
	assert.Equal(t, 3, attributes)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, values, "nada se borra si la operación se rechaza")
}

func TestCategory_NoEncontrada(t *testing.T) {
	f := newFixture()
	err := f.categories.Delete(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CrearValidaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")

	_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Sin SKU", CategoryID: categoryID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Huérfano", SKU: "H-1", CategoryID: "no-existe"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	currency := "DEMASIADO-LARGA"
	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Caro", SKU: "C-1", CategoryID: categoryID, Currency: &currency})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProduct_SKUUnico(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")
	f.product(t, categoryID, "Classic Watch", "CW-001")
	otherID := f.product(t, categoryID, "Sport Watch", "SW-001")

	_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Copia", SKU: "CW-001", CategoryID: categoryID})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	sku := "CW-001"
	_, err = f.products.Update(ctx, otherID, dto.UpdateProductRequest{SKU: &sku})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	p, err := f.products.GetByID(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, "SW-001", p.SKU, "la actualización rechazada no deja rastro")
}

func TestProduct_ListarMasRecientesPrimero(t *testing.T) {
	f := newFixture()
	categoryID := f.category(t, "Watches")
	first := f.product(t, categoryID, "Uno", "U-1")
	second := f.product(t, categoryID, "Dos", "D-2")

	list, err := f.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second, list.Items[0].ID)
	assert.Equal(t, first, list.Items[1].ID)
}

func TestProduct_BorrarEliminaValores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)
	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Color": "Black", "Dial_Size_mm": 42})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, productID))
	assert.Zero(t, valueRows(f))

	_, err = f.products.GetByID(ctx, productID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// setAttributes
// ──────────────────────────────────────────────────────────────────────────────

func TestSetAttributes_EnumFueraDeOpciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Strap_Type": "Rubber"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Leather, Metal, Silicone")

	out, err := f.values.SetAttributes(ctx, productID, map[string]any{"Strap_Type": "Metal"})
	require.NoError(t, err)
	assert.Equal(t, "Metal", out.Attributes["Strap_Type"])
}

func TestSetAttributes_ActualizaSinDuplicarFilas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Size_mm": json.Number("40")})
	require.NoError(t, err)
	out, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Size_mm": "42"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.Attributes["Dial_Size_mm"])
	assert.Equal(t, 1, valueRows(f), "un único registro por (producto, atributo)")
}

func TestSetAttributes_Idempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)
	in := map[string]any{"Dial_Color": "Black", "Strap_Type": "Leather"}

	first, err := f.values.SetAttributes(ctx, productID, in)
	require.NoError(t, err)
	second, err := f.values.SetAttributes(ctx, productID, in)
	require.NoError(t, err)

	assert.Equal(t, first.Attributes, second.Attributes)
	assert.Equal(t, 2, valueRows(f))
}

func TestSetAttributes_TodoONada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Color": "Black", "Peso_g": 80})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Peso_g")
	assert.Zero(t, valueRows(f), "el nombre desconocido revierte también los válidos")

	_, err = f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Color": "Black", "Dial_Size_mm": "grande"})
	require.Error(t, err)
	assert.Zero(t, valueRows(f), "el valor inválido revierte también los válidos")
}

func TestSetAttributes_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.values.SetAttributes(context.Background(), "no-existe", map[string]any{"Dial_Color": "Black"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSetAttributes_AtributoDeOtraCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)
	phones := f.category(t, "Smartphones")
	f.attribute(t, phones, "RAM_GB", "int")

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"RAM_GB": 8})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sólo cuentan los atributos de la categoría del producto")
}

func TestSetAttributes_MapaVacio(t *testing.T) {
	f := newFixture()
	_, productID := watchFixture(t, f)

	out, err := f.values.SetAttributes(context.Background(), productID, map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, out.Attributes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seed
// ──────────────────────────────────────────────────────────────────────────────

func TestSeedDemo_Idempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeder := catalog.NewSeeder(f.store)

	n, err := seeder.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = seeder.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "las categorías existentes se omiten")

	list, err := f.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)

	var pixelID string
	for _, p := range list.Items {
		if p.SKU == "PX-001" {
			pixelID = p.ID
		}
	}
	require.NotEmpty(t, pixelID)
	p, err := f.products.GetByID(ctx, pixelID)
	require.NoError(t, err)
	assert.Equal(t, "Android", p.Attributes["OS"])
	assert.Equal(t, int64(8), p.Attributes["RAM_GB"])
	assert.Equal(t, int64(4500), p.Attributes["Battery_mAh"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Límites de longitud y claves de setAttributes
// ──────────────────────────────────────────────────────────────────────────────

func TestLimitesDeLongitud(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")
	attrID := f.attribute(t, categoryID, "Dial_Color", "string")
	productID := f.product(t, categoryID, "Classic Watch", "CW-001")

	long := func(n int) string { return strings.Repeat("x", n) }
	longPtr := func(n int) *string { s := long(n); return &s }

	cases := []struct {
		name  string
		field string
		run   func() error
	}{
		{"nombre de categoría", "name", func() error {
			_, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: long(150)})
			return err
		}},
		{"descripción de categoría", "description", func() error {
			_, err := f.categories.Update(ctx, categoryID, dto.UpdateCategoryRequest{Description: longPtr(256)})
			return err
		}},
		{"nombre de atributo", "name", func() error {
			_, err := f.attributes.Create(ctx, categoryID, dto.CreateAttributeRequest{Name: long(150), DataType: "string"})
			return err
		}},
		{"unidad de atributo", "unit", func() error {
			_, err := f.attributes.Update(ctx, categoryID, attrID, dto.UpdateAttributeRequest{Unit: dto.Some(long(51))})
			return err
		}},
		{"sku de producto", "sku", func() error {
			_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Largo", SKU: long(80), CategoryID: categoryID})
			return err
		}},
		{"nombre de producto en parche", "name", func() error {
			_, err := f.products.Update(ctx, productID, dto.UpdateProductRequest{Name: longPtr(101)})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: strings.Repeat("ñ", 100)})
	require.NoError(t, err, "el límite cuenta caracteres, no bytes")
	assert.Equal(t, 100, len([]rune(c.Name)))

	categories, attributes, products, _ := f.store.Count()
	assert.Equal(t, 2, categories)
	assert.Equal(t, 1, attributes)
	assert.Equal(t, 1, products)
}

func TestSetAttributes_ClavesConEspaciosSonDesconocidas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, productID := watchFixture(t, f)

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Dial_Size_mm": "40", " Dial_Size_mm ": "42"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), " Dial_Size_mm ")
	assert.Zero(t, valueRows(f))
}

func TestSetAttributes_DosClavesMismoAtributo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Cafetería")
	f.attribute(t, categoryID, "Caf\u00e9", "string")
	productID := f.product(t, categoryID, "Molino", "M-1")

	_, err := f.values.SetAttributes(ctx, productID, map[string]any{"Caf\u00e9": "tostado", "Cafe\u0301": "verde"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "mismo atributo")
	assert.Zero(t, valueRows(f))

	out, err := f.values.SetAttributes(ctx, productID, map[string]any{"Cafe\u0301": "verde"})
	require.NoError(t, err, "la forma descompuesta sola resuelve por NFC")
	assert.Equal(t, "verde", out.Attributes["Caf\u00e9"])
}

func TestAttribute_BorrarUnidadConNull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	categoryID := f.category(t, "Watches")
	unit := "mm"
	a, err := f.attributes.Create(ctx, categoryID, dto.CreateAttributeRequest{Name: "Dial_Size_mm", DataType: "int", Unit: &unit})
	require.NoError(t, err)
	require.NotNil(t, a.Unit)

	var patch dto.UpdateAttributeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"is_required": true}`), &patch))
	a, err = f.attributes.Update(ctx, categoryID, a.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, a.Unit, "sin la clave unit la unidad se conserva")
	assert.Equal(t, "mm", *a.Unit)

	patch = dto.UpdateAttributeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"unit": null}`), &patch))
	a, err = f.attributes.Update(ctx, categoryID, a.ID, patch)
	require.NoError(t, err)
	assert.Nil(t, a.Unit)
	assert.True(t, a.IsRequired)
}
