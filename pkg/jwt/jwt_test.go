package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jlvilasoler/hashrate-app/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "jv@hashrate.space", "operador", "hrs-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jv@hashrate.space", claims.Username)
	assert.Equal(t, "operador", claims.Role)
	assert.Equal(t, "hrs-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "jv", "admin_a", "hrs-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "jv", "admin_a", "hrs-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "jv", "admin_a", "hrs-test", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestParse_AlgoritmoNone(t *testing.T) {
	tok := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoidXNlci0xIiwicm9sZSI6ImFkbWluX2EifQ."
	_, err := pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestGenerate_JTIDistintoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, "user-1", "jv", "lector", "hrs-test", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, "user-1", "jv", "lector", "hrs-test", 60)
	require.NoError(t, err)

	ca, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
	assert.Equal(t, "user-1", ca.Subject)
}
