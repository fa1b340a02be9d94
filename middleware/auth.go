package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from the Authorization header, empty when
// the header is missing or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

func tokenBlacklisted(token string) bool {
	var entry models.BlacklistedToken
	err := config.DB.Where("token = ? AND expires_at > ?", token, time.Now()).First(&entry).Error
	return err == nil
}

// userFromToken resolves a bearer token to a user record, nil when the token
// is missing, invalid, blacklisted, or the account is blocked.
func userFromToken(c *gin.Context) *models.User {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil
	}
	if tokenBlacklisted(tokenString) {
		utils.LogDebug("Blacklisted token presented")
		return nil
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.LogDebug("Token parse failed: %v", err)
		return nil
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		utils.LogDebug("User %d from token not found: %v", uint(userID), err)
		return nil
	}
	if user.IsBlocked {
		utils.LogError("Blocked user attempted access: %d", user.ID)
		return nil
	}
	return &user
}

// AuthMiddleware requires a valid user token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := userFromToken(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		c.Set("user", *user)
		c.Set("authenticated", true)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a token is
// present but never rejects the request. Storefront pricing endpoints use it:
// the "authenticated" flag feeds the show_to visibility gate, and anonymous
// browsing must keep working.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := userFromToken(c); user != nil {
			c.Set("user", *user)
			c.Set("authenticated", true)
		} else {
			c.Set("authenticated", false)
		}
		c.Next()
	}
}

// AdminAuthMiddleware requires a valid admin token
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		if tokenBlacklisted(tokenString) {
			utils.LogError("Blacklisted admin token presented")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.LogError("Invalid admin token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		adminID, ok := claims["admin_id"].(float64)
		if !ok {
			utils.LogError("Admin ID not found in token claims")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := config.DB.First(&admin, uint(adminID)).Error; err != nil {
			utils.LogError("Admin not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			c.Abort()
			return
		}

		if !admin.IsActive {
			utils.LogError("Inactive admin attempted access: %d", admin.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin account is inactive"})
			c.Abort()
			return
		}

		c.Set("admin", admin)
		utils.LogInfo("Admin %d authenticated successfully", admin.ID)
		c.Next()
	}
}
