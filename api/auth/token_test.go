package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndExtractToken(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := CreateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	uid, err := ExtractTokenID(req)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)

	assert.NoError(t, TokenValid(req))
}

func TestExtractTokenFromQuery(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := CreateToken(7)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/feed?token="+token, nil)

	uid, err := ExtractTokenID(req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), uid)
}

func TestExtractTokenIDRejectsGarbage(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	_, err := ExtractTokenID(req)
	assert.Error(t, err)
}

func TestTokenSignedWithDifferentSecret(t *testing.T) {
	t.Setenv("API_SECRET", "first-secret")
	token, err := CreateToken(1)
	require.NoError(t, err)

	t.Setenv("API_SECRET", "second-secret")
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, err = ExtractTokenID(req)
	assert.Error(t, err)
}
