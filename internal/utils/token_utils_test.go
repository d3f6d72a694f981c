package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	signed, err := GenerateJWT("label-admin-1", "secret", time.Hour, "revenue-split-app")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithIssuer("revenue-split-app"))
	require.NoError(t, err)
	assert.Equal(t, "label-admin-1", claims.Subject)

	_, err = GenerateJWT("", "secret", time.Hour, "")
	assert.Error(t, err)
	_, err = GenerateJWT("a", "secret", 0, "")
	assert.Error(t, err)
}
