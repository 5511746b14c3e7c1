// token emite un JWT de operador para las rutas de escritura, firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token [-sub operador] [-role admin]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "operador", "subject del token")
	role := flag.String("role", jwt.RoleAdmin, "rol del token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
