package controllers

import (
	"strconv"
	"strings"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// CategoryRequest represents the create/update payload for a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a new product category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Category name cannot be empty", nil)
		return
	}

	// Category names are unique case-insensitively
	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		utils.LogError("Category already exists: %s", name)
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	category := models.Category{
		Name:        name,
		Description: req.Description,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.LogInfo("Successfully created category: %s (ID: %d)", category.Name, category.ID)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"category": category})
}

// UpdateCategory updates an existing category
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, uint(categoryID)).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?) AND id != ?", name, category.ID).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	category.Name = name
	category.Description = req.Description

	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.LogInfo("Successfully updated category: %s (ID: %d)", category.Name, category.ID)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"category": category})
}

// DeleteCategory deletes a category and detaches it from products
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, uint(categoryID)).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if err := tx.Model(&category).Association("Products").Clear(); err != nil {
		tx.Rollback()
		utils.LogError("Failed to detach products from category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	// Rule filter entries referencing the deleted category would otherwise
	// linger in rule views and exports
	if err := tx.Where("category_id = ?", category.ID).Delete(&models.RuleCategoryFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to purge rule filters for category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully deleted category: %s (ID: %d)", category.Name, category.ID)
	utils.Success(c, utils.MsgDeleteSuccess, gin.H{"id": category.ID})
}

// ListCategories lists all categories
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}
