package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yung988/eliceli-salon/internal/config"
)

const (
	contextAdminID = "adminID"
	contextRole    = "adminRole"
)

// AuthMiddleware chrání admin API. Očekává Bearer token podepsaný
// HS256 s claimy sub (admin ID) a role = "admin".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		adminID, okSub := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !okSub || role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(contextAdminID, uint(adminID))
		c.Set(contextRole, role)

		c.Next()
	}
}

// ContextAdminID vrací ID přihlášeného admina, 0 mimo chráněné routy.
func ContextAdminID(c *gin.Context) uint {
	id, _ := c.Get(contextAdminID)
	adminID, _ := id.(uint)
	return adminID
}
