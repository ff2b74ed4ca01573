package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/recruit-scheduler/internal/config"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies bearer tokens minted by the auth service. Tokens
// are never issued here.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok || userID <= 0 {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Authentification requise.",
	})
}

// UserID is only valid behind AuthMiddleware.
func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}
