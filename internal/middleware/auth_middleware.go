package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-commission/internal/access"
	autherrors "go-commission/internal/auth/errors"
	"go-commission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func AuthMiddleware() gin.HandlerFunc {
	return AuthMiddlewareWithSecret(os.Getenv("JWT_SECRET"))
}

// AuthMiddlewareWithSecret validates the access token from the Authorization
// header or the access_token cookie and stores the caller as access.Actor.
func AuthMiddlewareWithSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		if typ, _ := claims["typ"].(string); typ == "refresh" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token cannot be used here", nil)
			c.Abort()
			return
		}

		userIDStr, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		roles, err := rolesFromClaims(claims)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid roles in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID.String())
		c.Set("roles", roles.Strings())
		c.Set(access.ContextActorKey, access.Actor{UserID: userID, Roles: roles})

		c.Next()
	}
}

func rolesFromClaims(claims jwt.MapClaims) (access.RoleSet, error) {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return access.NewRoleSet(), nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("role claim is not a string")
		}
		values = append(values, s)
	}
	return access.ParseRoles(values)
}

// RoleMiddleware admits callers holding at least one of allowedRoles.
func RoleMiddleware(allowedRoles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := access.ActorFromGin(c)
		if !ok || !actor.Roles.HasAny(allowedRoles...) {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
