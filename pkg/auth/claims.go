package auth

import (
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the account fields embedded in an access token.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	Role      enums.Role
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID    uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Avatar    string     `json:"avatar,omitempty"`
	Role      enums.Role `json:"role"`
	jwt.RegisteredClaims
}
