package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles admin authentication
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Processing login request for email: %s", req.Email)

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s: %v", req.Email, err)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", admin.Email)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	// Update last login
	admin.LastLogin = time.Now()
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Email, err)
	}

	tokenString, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.LogError("Failed to sign JWT token for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, utils.MsgLoginSuccess, gin.H{
		"token": tokenString,
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"firstName": admin.FirstName,
			"lastName":  admin.LastName,
		},
	})
}

// AdminLogout blacklists the presented token until it would have expired
func AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.Success(c, utils.MsgLogoutSuccess, nil)
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	// Parse the token to get its expiry; an unparseable token needs no
	// blacklist entry since it is already unusable.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		utils.LogDebug("Logout with invalid token: %v", err)
		utils.Success(c, utils.MsgLogoutSuccess, nil)
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			expiresAt = time.Unix(int64(exp), 0)
		}
	}

	entry := models.BlacklistedToken{Token: tokenString, ExpiresAt: expiresAt}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
	}

	utils.LogInfo("Admin logged out")
	utils.Success(c, utils.MsgLogoutSuccess, nil)
}

// CreateSampleAdmin seeds an admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// if no admin exists yet, so a fresh deployment can be configured
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" {
		email = "admin@pricerules.local"
	}
	if password == "" {
		password = "Admin@123"
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  hashed,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Seeded default admin account: %s", email)
	return nil
}
