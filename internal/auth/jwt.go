package auth

import (
	"time"

	"freshmart-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the principal attached to every authenticated request.
// Roles are intentionally not embedded: staff role and store bindings
// are resolved from the database per request (see scope.go), so a
// revoked admin loses access without waiting for token expiry.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
