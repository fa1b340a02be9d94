package controllers

import (
	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// GetStorefrontNotice returns the banner payload for active rules that opted
// into a storefront notice. The storefront renders these verbatim; the
// engine never interprets the styling fields.
func GetStorefrontNotice(c *gin.Context) {
	utils.LogInfo("GetStorefrontNotice called")

	var rules []models.DiscountRule
	if err := config.DB.Where("is_active = ? AND show_notice = ?", "yes", "yes").
		Order("position ASC, id ASC").Find(&rules).Error; err != nil {
		utils.LogError("Failed to fetch notice rules: %v", err)
		utils.InternalServerError(c, "Failed to fetch notices", nil)
		return
	}

	notices := make([]gin.H, 0, len(rules))
	for _, rule := range rules {
		if rule.NoticeText == "" {
			continue
		}
		notices = append(notices, gin.H{
			"text":       rule.NoticeText,
			"text_color": rule.TextColor,
			"bg_color":   rule.BgColor,
		})
	}

	utils.Success(c, "Notices retrieved successfully", gin.H{"notices": notices})
}
