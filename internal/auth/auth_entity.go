package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the payload signed into both access and refresh tokens. The
// middleware reads user_id, roles and typ from the same keys.
type Claims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	Type   string   `json:"typ"`
	jwt.RegisteredClaims
}
