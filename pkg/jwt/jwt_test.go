package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/catalogo-api/pkg/jwt"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testSubject = "operador-catalogo"
	testIssuer  = "catalogo-api-test"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, pkgjwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
	assert.Equal(t, pkgjwt.RoleAdmin, role)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, pkgjwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, pkgjwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestSecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testSubject, pkgjwt.RoleAdmin, testIssuer, 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
