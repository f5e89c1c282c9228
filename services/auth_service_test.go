package services

import (
	"testing"

	"mindspace-notes/mindspace/utils/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestLoginWithCorrectPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewAuthService(hash, testJWTSecret, 72)
	assert.True(t, svc.Enabled())

	tokenString, err := svc.Login("correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, token.OwnerSubject, claims.Subject)
}

func TestLoginWithWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewAuthService(hash, testJWTSecret, 72)
	_, err = svc.Login("battery staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWhenNoHashConfigured(t *testing.T) {
	svc := NewAuthService("", testJWTSecret, 72)
	assert.False(t, svc.Enabled())

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	issuer := NewAuthService(hash, testJWTSecret, 72)
	tokenString, err := issuer.Login("correct horse")
	require.NoError(t, err)

	other := NewAuthService(hash, "different-secret", 72)
	_, err = other.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService("", testJWTSecret, 72)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
