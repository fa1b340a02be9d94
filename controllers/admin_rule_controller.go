package controllers

import (
	"strconv"
	"strings"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// ProductFilterEntry is one product in a rule's include/exclude list, in the
// shape the admin product picker submits
type ProductFilterEntry struct {
	Value    uint   `json:"value" binding:"required"`
	ParentID uint   `json:"parent_id"`
	Label    string `json:"label"`
}

// CategoryFilterEntry is one category in a rule's include/exclude list
type CategoryFilterEntry struct {
	Value uint   `json:"value" binding:"required"`
	Label string `json:"label"`
}

// RuleRequest represents the create/update payload for a discount rule
type RuleRequest struct {
	Title        string `json:"title" binding:"required"`
	DiscountOn   string `json:"discount_on" binding:"required,oneof=product total"`
	DiscountType string `json:"discount_type" binding:"required,oneof=percent flat"`
	Amount       string `json:"amount" binding:"required"`
	MinOrder     string `json:"min_order"`
	IsActive     string `json:"is_active" binding:"omitempty,oneof=yes no"`

	ShowNotice string `json:"show_notice" binding:"omitempty,oneof=yes no"`
	NoticeText string `json:"notice_text"`
	TextColor  string `json:"text_color"`
	BgColor    string `json:"bg_color"`

	IncProducts   []ProductFilterEntry  `json:"inc_products"`
	ExProducts    []ProductFilterEntry  `json:"ex_products"`
	IncCategories []CategoryFilterEntry `json:"inc_categories"`
	ExCategories  []CategoryFilterEntry `json:"ex_categories"`
}

// validateRuleAmounts checks the decimal fields the way the engine will read
// them; the engine itself tolerates bad values, but the admin API should not
// accept them silently.
func validateRuleAmounts(req *RuleRequest) *utils.AppError {
	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || amount < 0 {
		return utils.BadRequestError("Amount must be a non-negative number", err)
	}
	if req.DiscountType == "percent" && amount > 100 {
		return utils.BadRequestError("Percent amount cannot exceed 100", nil)
	}
	if req.MinOrder != "" {
		if min, err := strconv.ParseFloat(strings.TrimSpace(req.MinOrder), 64); err != nil || min < 0 {
			return utils.BadRequestError("Minimum order must be a non-negative number", err)
		}
	}
	return nil
}

// filterRows converts the request's filter lists into persistence rows
func filterRows(ruleID uint, req *RuleRequest) ([]models.RuleProductFilter, []models.RuleCategoryFilter) {
	var products []models.RuleProductFilter
	var categories []models.RuleCategoryFilter

	for _, e := range req.IncProducts {
		products = append(products, models.RuleProductFilter{
			RuleID: ruleID, Kind: models.FilterInclude, ProductID: e.Value, ParentID: e.ParentID, Label: e.Label,
		})
	}
	for _, e := range req.ExProducts {
		products = append(products, models.RuleProductFilter{
			RuleID: ruleID, Kind: models.FilterExclude, ProductID: e.Value, ParentID: e.ParentID, Label: e.Label,
		})
	}
	for _, e := range req.IncCategories {
		categories = append(categories, models.RuleCategoryFilter{
			RuleID: ruleID, Kind: models.FilterInclude, CategoryID: e.Value, Label: e.Label,
		})
	}
	for _, e := range req.ExCategories {
		categories = append(categories, models.RuleCategoryFilter{
			RuleID: ruleID, Kind: models.FilterExclude, CategoryID: e.Value, Label: e.Label,
		})
	}
	return products, categories
}

// CreateRule creates a new discount rule at the end of the evaluation order
func CreateRule(c *gin.Context) {
	utils.LogInfo("CreateRule called")

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid rule request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogDebug("Processing rule creation: %s", req.Title)

	if appErr := validateRuleAmounts(&req); appErr != nil {
		utils.LogError("Rule validation failed for %s: %v", req.Title, appErr)
		utils.RespondError(c, appErr)
		return
	}

	req.Title = strings.TrimSpace(req.Title)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Titles double as the exclusivity key, so they must be unique
	var existing models.DiscountRule
	if err := tx.Where("LOWER(title) = LOWER(?)", req.Title).First(&existing).Error; err == nil {
		tx.Rollback()
		utils.LogError("Rule title already exists: %s", req.Title)
		utils.Conflict(c, "A rule with this title already exists", nil)
		return
	}

	// New rules evaluate last
	var maxPosition int
	tx.Model(&models.DiscountRule{}).Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	rule := models.DiscountRule{
		Title:        req.Title,
		DiscountOn:   req.DiscountOn,
		DiscountType: req.DiscountType,
		Amount:       req.Amount,
		MinOrder:     req.MinOrder,
		IsActive:     defaultString(req.IsActive, "yes"),
		Position:     maxPosition + 1,
		ShowNotice:   defaultString(req.ShowNotice, "no"),
		NoticeText:   req.NoticeText,
		TextColor:    req.TextColor,
		BgColor:      req.BgColor,
	}
	if err := tx.Create(&rule).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create rule: %v", err)
		utils.InternalServerError(c, "Failed to create rule", err.Error())
		return
	}

	products, categories := filterRows(rule.ID, &req)
	if len(products) > 0 {
		if err := tx.Create(&products).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create product filters: %v", err)
			utils.InternalServerError(c, "Failed to save rule filters", nil)
			return
		}
	}
	if len(categories) > 0 {
		if err := tx.Create(&categories).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create category filters: %v", err)
			utils.InternalServerError(c, "Failed to save rule filters", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully created rule: %s (ID: %d)", rule.Title, rule.ID)
	utils.Created(c, "Rule created successfully", gin.H{"rule": ruleView(rule, products, categories)})
}

// UpdateRule replaces a rule's definition and filter lists
func UpdateRule(c *gin.Context) {
	utils.LogInfo("UpdateRule called")

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid rule ID: %s", c.Param("id"))
		utils.BadRequest(c, "Invalid rule ID", nil)
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid rule request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if appErr := validateRuleAmounts(&req); appErr != nil {
		utils.LogError("Rule validation failed for %s: %v", req.Title, appErr)
		utils.RespondError(c, appErr)
		return
	}

	req.Title = strings.TrimSpace(req.Title)

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

	var duplicate models.DiscountRule
	if err := tx.Where("LOWER(title) = LOWER(?) AND id <> ?", req.Title, rule.ID).First(&duplicate).Error; err == nil {
		tx.Rollback()
		utils.LogError("Rule title already exists: %s", req.Title)
		utils.Conflict(c, "A rule with this title already exists", nil)
		return
	}

	// Keep the exclusive-rule pointer in sync when the title changes
	if rule.Title != req.Title {
		if err := tx.Model(&models.StoreSettings{}).
			Where("exclusive_rule = ?", rule.Title).
			Update("exclusive_rule", req.Title).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update exclusive rule reference: %v", err)
			utils.InternalServerError(c, "Failed to update rule", nil)
			return
		}
	}

	rule.Title = req.Title
	rule.DiscountOn = req.DiscountOn
	rule.DiscountType = req.DiscountType
	rule.Amount = req.Amount
	rule.MinOrder = req.MinOrder
	rule.IsActive = defaultString(req.IsActive, rule.IsActive)
	rule.ShowNotice = defaultString(req.ShowNotice, rule.ShowNotice)
	rule.NoticeText = req.NoticeText
	rule.TextColor = req.TextColor
	rule.BgColor = req.BgColor

	if err := tx.Save(&rule).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to update rule", err.Error())
		return
	}

	// Replace the filter lists wholesale; the picker always submits the
	// complete selection
	if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.RuleProductFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear product filters for rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to update rule filters", nil)
		return
	}
	if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.RuleCategoryFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear category filters for rule %d: %v", rule.ID, err)
		utils.InternalServerError(c, "Failed to update rule filters", nil)
		return
	}

	products, categories := filterRows(rule.ID, &req)
	if len(products) > 0 {
		if err := tx.Create(&products).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to save product filters for rule %d: %v", rule.ID, err)
			utils.InternalServerError(c, "Failed to update rule filters", nil)
			return
		}
	}
	if len(categories) > 0 {
		if err := tx.Create(&categories).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to save category filters for rule %d: %v", rule.ID, err)
			utils.InternalServerError(c, "Failed to update rule filters", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully updated rule: %s (ID: %d)", rule.Title, rule.ID)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"rule": ruleView(rule, products, categories)})
}

// ruleView builds the API representation of a rule with its filter lists
func ruleView(rule models.DiscountRule, products []models.RuleProductFilter, categories []models.RuleCategoryFilter) gin.H {
	incProducts := []gin.H{}
	exProducts := []gin.H{}
	for _, f := range products {
		entry := gin.H{"value": f.ProductID, "parent_id": f.ParentID, "label": f.Label}
		if f.Kind == models.FilterExclude {
			exProducts = append(exProducts, entry)
		} else {
			incProducts = append(incProducts, entry)
		}
	}

	incCategories := []gin.H{}
	exCategories := []gin.H{}
	for _, f := range categories {
		entry := gin.H{"value": f.CategoryID, "label": f.Label}
		if f.Kind == models.FilterExclude {
			exCategories = append(exCategories, entry)
		} else {
			incCategories = append(incCategories, entry)
		}
	}

	return gin.H{
		"id":             rule.ID,
		"title":          rule.Title,
		"discount_on":    rule.DiscountOn,
		"discount_type":  rule.DiscountType,
		"amount":         rule.Amount,
		"min_order":      rule.MinOrder,
		"is_active":      rule.IsActive,
		"position":       rule.Position,
		"show_notice":    rule.ShowNotice,
		"notice_text":    rule.NoticeText,
		"text_color":     rule.TextColor,
		"bg_color":       rule.BgColor,
		"inc_products":   incProducts,
		"ex_products":    exProducts,
		"inc_categories": incCategories,
		"ex_categories":  exCategories,
	}
}

// loadedRuleView is ruleView for a rule fetched with preloaded filters
func loadedRuleView(rule models.DiscountRule) gin.H {
	return ruleView(rule, rule.ProductFilters, rule.CategoryFilters)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
