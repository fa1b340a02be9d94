package controllers

import (
	"strconv"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-gonic/gin"
)

// GetProducts lists active catalog products with their discounted prices
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	pagination := utils.NewPagination(c)
	authenticated := isAuthenticated(c)

	store, err := config.LoadRuleStore()
	if err != nil {
		utils.LogError("Failed to load rule store: %v", err)
		utils.InternalServerError(c, "Failed to load pricing rules", nil)
		return
	}

	// Variations are listed under their parent, not on their own
	query := config.DB.Model(&models.Product{}).Where("active = ? AND parent_id = 0", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Preload("Categories").
		Order("products.id ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d products", len(products))

	views := make([]gin.H, 0, len(products))
	for _, product := range products {
		variations, err := loadVariations(product.ID)
		if err != nil {
			utils.LogError("Failed to load variations for product %d: %v", product.ID, err)
			utils.InternalServerError(c, "Failed to fetch products", nil)
			return
		}

		var pricing gin.H
		if len(variations) > 0 {
			pricing = rangePriceView(product, variations, store, authenticated)
		} else {
			pricing = priceView(product, store, authenticated)
		}

		views = append(views, gin.H{
			"id":          product.ID,
			"name":        product.Name,
			"description": product.Description,
			"pricing":     pricing,
		})
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": views},
		total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns one product with per-variation pricing
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Categories").
		Where("active = ?", true).First(&product, uint(productID)).Error; err != nil {
		utils.LogError("Product not found: %d", productID)
		utils.NotFound(c, "Product not found")
		return
	}

	store, err := config.LoadRuleStore()
	if err != nil {
		utils.LogError("Failed to load rule store: %v", err)
		utils.InternalServerError(c, "Failed to load pricing rules", nil)
		return
	}

	authenticated := isAuthenticated(c)

	variations, err := loadVariations(product.ID)
	if err != nil {
		utils.LogError("Failed to load variations for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to fetch product", nil)
		return
	}

	variationViews := make([]gin.H, 0, len(variations))
	for _, variation := range variations {
		variationViews = append(variationViews, gin.H{
			"id":      variation.ID,
			"name":    variation.Name,
			"pricing": priceView(variation, store, authenticated),
		})
	}

	var pricing gin.H
	if len(variations) > 0 {
		pricing = rangePriceView(product, variations, store, authenticated)
	} else {
		pricing = priceView(product, store, authenticated)
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": gin.H{
			"id":          product.ID,
			"name":        product.Name,
			"description": product.Description,
			"categories":  product.Categories,
			"pricing":     pricing,
			"variations":  variationViews,
		},
	})
}
