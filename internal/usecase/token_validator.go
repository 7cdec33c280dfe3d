package usecase

//go:generate go run go.uber.org/mock/mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator.go -package=usecasemock

import (
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token into the caller's id and role.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	userID := claims.UserID()
	if userID == uuid.Nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}

	// Tokens minted before the role set was closed carry unknown roles; refuse them.
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}

	return userID, role, nil
}
