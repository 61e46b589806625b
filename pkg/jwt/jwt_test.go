package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/estoque-tarugos/pkg/jwt"
)

const secret = "segredo-de-teste"

func TestGenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u-1", Name: "Ana", Email: "ana@empresa.com", Role: "admin"}
	tok, err := pkgjwt.Generate(secret, "estoque-test", 60, id)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_SegredoErrado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "estoque-test", 60, pkgjwt.Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-segredo", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "estoque-test", -1, pkgjwt.Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SemSegredo(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", 60, pkgjwt.Identity{UserID: "u-1"})
	assert.Error(t, err)
}
