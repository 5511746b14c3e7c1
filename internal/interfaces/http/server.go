package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// NewApp crea la app Fiber con el decodificador JSON numérico, el manejador de errores común
// y los middlewares de recover, CORS, request id y log de peticiones.
// corsOrigins sigue el formato de cors.Config.AllowOrigins ("*" o lista separada por comas).
func NewApp(name, corsOrigins string, zl zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
		JSONDecoder:  DecodeJSON,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins}))
	app.Use(requestid.New())
	app.Use(RequestLogger(zl))
	return app
}
