package controllers

import (
	"strconv"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// ListRules returns the configured rules in evaluation order
func ListRules(c *gin.Context) {
	utils.LogInfo("ListRules called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.DiscountRule{})
	if scope := c.Query("discount_on"); scope == "product" || scope == "total" {
		query = query.Where("discount_on = ?", scope)
	}
	if active := c.Query("is_active"); active == "yes" || active == "no" {
		query = query.Where("is_active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count rules: %v", err)
		utils.InternalServerError(c, "Failed to fetch rules", nil)
		return
	}
	pagination.SetTotal(total)

	var rules []models.DiscountRule
	if err := query.Preload("ProductFilters").Preload("CategoryFilters").
		Order("position ASC, id ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&rules).Error; err != nil {
		utils.LogError("Failed to fetch rules: %v", err)
		utils.InternalServerError(c, "Failed to fetch rules", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d rules", len(rules))

	views := make([]gin.H, 0, len(rules))
	for _, rule := range rules {
		views = append(views, loadedRuleView(rule))
	}

	utils.SuccessWithPagination(c, "Rules retrieved successfully", gin.H{"rules": views},
		total, pagination.Page, pagination.Limit)
}

// GetRule returns a single rule with its filter lists
func GetRule(c *gin.Context) {
	utils.LogInfo("GetRule called")

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid rule ID", nil)
		return
	}

	var rule models.DiscountRule
	if err := config.DB.Preload("ProductFilters").Preload("CategoryFilters").
		First(&rule, uint(ruleID)).Error; err != nil {
		utils.LogError("Rule not found: %d", ruleID)
		utils.NotFound(c, "Rule not found")
		return
	}

	utils.Success(c, "Rule retrieved successfully", gin.H{"rule": loadedRuleView(rule)})
}

// DeleteRule removes a rule and its filters, and clears the exclusive-rule
// setting if it pointed at the deleted rule
func DeleteRule(c *gin.Context) {
	utils.LogInfo("DeleteRule called")

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid rule ID", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var rule models.DiscountRule
	if err := tx.First(&rule, uint(ruleID)).Error; err != nil {
		tx.Rollback()
		utils.LogError("Rule not found: %d", ruleID)
		utils.NotFound(c, "Rule not found")
		return
	}

	if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.RuleProductFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product filters for rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to delete rule", nil)
		return
	}
	if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.RuleCategoryFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete category filters for rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to delete rule", nil)
		return
	}

	if err := tx.Model(&models.StoreSettings{}).
		Where("exclusive_rule = ?", rule.Title).
		Update("exclusive_rule", "").Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear exclusive rule setting: %v", err)
		utils.InternalServerError(c, "Failed to delete rule", nil)
		return
	}

	if err := tx.Delete(&rule).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to delete rule", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully deleted rule: %s (ID: %d)", rule.Title, rule.ID)
	utils.Success(c, utils.MsgDeleteSuccess, gin.H{"id": rule.ID})
}

// ReorderRulesRequest carries the complete rule ID list in the desired
// evaluation order
type ReorderRulesRequest struct {
	RuleIDs []uint `json:"rule_ids" binding:"required,min=1"`
}

// ReorderRules rewrites rule positions. Order matters to the engine: equal
// candidate amounts tie-break by position.
func ReorderRules(c *gin.Context) {
	utils.LogInfo("ReorderRules called")

	var req ReorderRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid reorder request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var count int64
	if err := config.DB.Model(&models.DiscountRule{}).Where("id IN ?", req.RuleIDs).Count(&count).Error; err != nil {
		utils.LogError("Failed to verify rule IDs: %v", err)
		utils.InternalServerError(c, "Failed to reorder rules", nil)
		return
	}
	if count != int64(len(req.RuleIDs)) {
		utils.LogError("Reorder request references unknown rules")
		utils.BadRequest(c, "Unknown rule ID in request", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	for position, ruleID := range req.RuleIDs {
		if err := tx.Model(&models.DiscountRule{}).Where("id = ?", ruleID).
			Update("position", position+1).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update position for rule %d: %v", ruleID, err)
			utils.InternalServerError(c, "Failed to reorder rules", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully reordered %d rules", len(req.RuleIDs))
	utils.Success(c, "Rules reordered successfully", gin.H{"rule_ids": req.RuleIDs})
}
