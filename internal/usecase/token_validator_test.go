//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/pkg/jwt"
	"vehicle-care-booking/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func sign(t *testing.T, key string, claims jwt.Claims) string {
	t.Helper()
	claims.Issuer = jwt.Issuer
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(time.Hour))
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestTokenValidator_ValidateToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	v := usecase.NewTokenValidator(svc)

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		tok, err := svc.GenerateToken(id, user.RoleStaff)
		require.NoError(t, err)

		gotID, role, err := v.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, id, gotID)
		assert.Equal(t, user.RoleStaff, role)
	})

	t.Run("error: expired", func(t *testing.T) {
		tok, err := jwt.NewService(secret, -time.Minute).GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)

		_, _, err = v.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("error: signed with another key", func(t *testing.T) {
		tok, err := jwt.NewService("other", time.Hour).GenerateToken(uuid.New(), user.RoleAdmin)
		require.NoError(t, err)

		_, _, err = v.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: missing subject", func(t *testing.T) {
		tok := sign(t, secret, jwt.Claims{Role: "customer"})

		_, _, err := v.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: unknown role", func(t *testing.T) {
		tok := sign(t, secret, jwt.Claims{Role: "operator", RegisteredClaims: gojwt.RegisteredClaims{Subject: uuid.NewString()}})

		_, _, err := v.ValidateToken(tok)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("error: foreign issuer", func(t *testing.T) {
		claims := jwt.Claims{Role: "customer", RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   uuid.NewString(),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		_, _, err = v.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: garbage", func(t *testing.T) {
		_, _, err := v.ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
