package controllers

import (
	"strings"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the store-wide discount policy
func GetSettings(c *gin.Context) {
	utils.LogInfo("GetSettings called")

	var settings models.StoreSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to fetch settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}

	utils.Success(c, "Settings retrieved successfully", gin.H{
		"settings": gin.H{
			"apply_rule":     settings.ApplyRule,
			"show_to":        settings.ShowTo,
			"exclusive_rule": settings.ExclusiveRule,
			"from_text":      settings.FromText,
		},
	})
}

// UpdateSettingsRequest represents the settings update payload
type UpdateSettingsRequest struct {
	ApplyRule     string `json:"apply_rule" binding:"required,oneof=lowest highest"`
	ShowTo        string `json:"show_to" binding:"required,oneof=all logged_in"`
	ExclusiveRule string `json:"exclusive_rule"`
	FromText      string `json:"from_text"`
}

// UpdateSettings replaces the store-wide discount policy
func UpdateSettings(c *gin.Context) {
	utils.LogInfo("UpdateSettings called")

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid settings request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.ExclusiveRule = strings.TrimSpace(req.ExclusiveRule)

	// The exclusive rule must reference a configured rule title; an empty
	// string disables exclusivity
	if req.ExclusiveRule != "" {
		var rule models.DiscountRule
		if err := config.DB.Where("title = ?", req.ExclusiveRule).First(&rule).Error; err != nil {
			utils.LogError("Exclusive rule does not match any rule: %s", req.ExclusiveRule)
			utils.BadRequest(c, "Exclusive rule must match an existing rule title", nil)
			return
		}
	}

	var settings models.StoreSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to fetch settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}

	settings.ApplyRule = req.ApplyRule
	settings.ShowTo = req.ShowTo
	settings.ExclusiveRule = req.ExclusiveRule
	// An empty from_text resets to the default rather than keeping the old value
	settings.FromText = defaultString(strings.TrimSpace(req.FromText), "From")

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.LogError("Failed to update settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", err.Error())
		return
	}

	utils.LogInfo("Settings updated: apply_rule=%s show_to=%s exclusive_rule=%q",
		settings.ApplyRule, settings.ShowTo, settings.ExclusiveRule)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{
		"settings": gin.H{
			"apply_rule":     settings.ApplyRule,
			"show_to":        settings.ShowTo,
			"exclusive_rule": settings.ExclusiveRule,
			"from_text":      settings.FromText,
		},
	})
}
