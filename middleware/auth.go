package middleware

import (
	"net/http"
	"os"
	"strings"

	"editorial-management-api/config"
	"editorial-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Role names carried in token claims. Tokens are issued by the identity
// service; this API only verifies and consumes them.
const (
	RoleAuthor = "author"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the JWT token and checks that the principal
// still exists for its role.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			c.Abort()
			return
		}

		if !principalExists(claims) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account not found"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// principalExists verifies the claimed principal against the table for its
// role.
func principalExists(claims *Claims) bool {
	if config.DB == nil {
		// No datastore wired (unit tests exercise the middleware alone).
		return true
	}
	var err error
	switch claims.Role {
	case RoleAuthor:
		err = config.DB.Where("id = ? AND deleted_at IS NULL", claims.UserID).First(&models.Author{}).Error
	case RoleEditor:
		err = config.DB.Where("id = ? AND is_active = ? AND deleted_at IS NULL", claims.UserID, true).First(&models.Editor{}).Error
	case RoleAdmin:
		err = config.DB.Where("id = ? AND deleted_at IS NULL", claims.UserID).First(&models.Admin{}).Error
	default:
		return false
	}
	return err == nil
}

// RequireRole checks if the authenticated principal has one of the
// required roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Role not found"})
			c.Abort()
			return
		}

		role, _ := roleValue.(string)
		allowed := false
		for _, required := range roles {
			if role == required {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
