package controllers

import (
	"strconv"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// ProductRequest represents the create/update payload for a catalog product
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ParentID    uint    `json:"parent_id"`
	CategoryIDs []uint  `json:"category_ids"`
}

// loadCategories resolves category ids, failing when any id is unknown
func loadCategories(ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := config.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, utils.WrapError(err, "load categories")
	}
	if len(categories) != len(ids) {
		return nil, utils.BadRequestError("Unknown category ID", nil)
	}
	return categories, nil
}

// CreateProduct creates a catalog product or a variation of one
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogDebug("Creating product: %s", req.Name)

	// A variation must reference an existing top-level product
	if req.ParentID != 0 {
		var parent models.Product
		if err := config.DB.Where("parent_id = 0").First(&parent, req.ParentID).Error; err != nil {
			utils.LogError("Parent product not found: %d", req.ParentID)
			utils.BadRequest(c, "Parent product not found", nil)
			return
		}
	}

	categories, err := loadCategories(req.CategoryIDs)
	if err != nil {
		utils.LogError("Failed to resolve categories: %v", err)
		utils.RespondError(c, err)
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ParentID:    req.ParentID,
		Active:      true,
		Categories:  categories,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Successfully created product: %s (ID: %d)", product.Name, product.ID)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{
		"product": gin.H{
			"id":        product.ID,
			"name":      product.Name,
			"price":     product.Price,
			"parent_id": product.ParentID,
			"active":    product.Active,
		},
	})
}

// UpdateProduct updates a catalog product
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(productID)).Error; err != nil {
		utils.LogError("Product not found: %d", productID)
		utils.NotFound(c, "Product not found")
		return
	}

	categories, err := loadCategories(req.CategoryIDs)
	if err != nil {
		utils.LogError("Failed to resolve categories: %v", err)
		utils.RespondError(c, err)
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	if err := config.DB.Model(&product).Association("Categories").Replace(categories); err != nil {
		utils.LogError("Failed to update categories for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product categories", nil)
		return
	}

	utils.LogInfo("Successfully updated product: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{
		"product": gin.H{
			"id":        product.ID,
			"name":      product.Name,
			"price":     product.Price,
			"parent_id": product.ParentID,
			"active":    product.Active,
		},
	})
}

// DeleteProduct soft-deletes a product and its variations
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(productID)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var variationIDs []uint
	if err := tx.Model(&models.Product{}).Where("parent_id = ?", product.ID).
		Pluck("id", &variationIDs).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to collect variations of product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	if err := tx.Where("parent_id = ?", product.ID).Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete variations of product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}

	// Rule filter entries referencing the deleted products would otherwise
	// linger in rule views and exports
	deletedIDs := append(variationIDs, product.ID)
	if err := tx.Where("product_id IN ?", deletedIDs).Delete(&models.RuleProductFilter{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to purge rule filters for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully deleted product: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, utils.MsgDeleteSuccess, gin.H{"id": product.ID})
}

// ListAdminProducts lists all products including variations and inactive ones
func ListAdminProducts(c *gin.Context) {
	utils.LogInfo("ListAdminProducts called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := config.DB.Preload("Categories").
		Order("id ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": products},
		total, pagination.Page, pagination.Limit)
}
