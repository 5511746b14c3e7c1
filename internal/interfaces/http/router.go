package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *catalog.CategoryUseCase
	AttributeUC *catalog.AttributeUseCase
	ProductUC   *catalog.ProductUseCase
	ValueUC     *catalog.AttributeValueUseCase
	JWTSecret   string // vacío = escrituras sin autenticación
	ServiceName string
	StorageName string
	DB          Pinger // opcional
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras pasan por WriteGuard.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.StorageName, deps.DB))

	api := app.Group("/api")
	guard := WriteGuard(deps.JWTSecret)
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)
	api.Post("/categories", write(categoryHandler.Create)...)
	api.Get("/categories/:id", categoryHandler.GetByID)
	api.Put("/categories/:id", write(categoryHandler.Update)...)
	api.Delete("/categories/:id", write(categoryHandler.Delete)...)

	attributeHandler := NewAttributeHandler(deps.AttributeUC)
	api.Get("/categories/:id/attributes", attributeHandler.List)
	api.Post("/categories/:id/attributes", write(attributeHandler.Create)...)
	api.Get("/categories/:id/attributes/:attrId", attributeHandler.GetByID)
	api.Put("/categories/:id/attributes/:attrId", write(attributeHandler.Update)...)
	api.Delete("/categories/:id/attributes/:attrId", write(attributeHandler.Delete)...)

	productHandler := NewProductHandler(deps.ProductUC, deps.ValueUC)
	api.Get("/products", productHandler.List)
	api.Post("/products", write(productHandler.Create)...)
	api.Get("/products/:id", productHandler.GetByID)
	api.Put("/products/:id", write(productHandler.Update)...)
	api.Delete("/products/:id", write(productHandler.Delete)...)
	api.Post("/products/:id/attributes", write(productHandler.SetAttributes)...)
}
