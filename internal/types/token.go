package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// SessionKey is the key of the planning session owned by the token holder.
func (c *TokenClaims) SessionKey() string {
	return c.UserID.String()
}
