package controllers

import (
	"fmt"
	"math"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/discount"
	"github.com/storekart/PriceRules/models"

	"github.com/gin-gonic/gin"
)

// Round2 rounds a price to two decimal places for display
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// evaluationProduct maps a catalog product to the read-only view the engine
// matches against
func evaluationProduct(p models.Product) discount.Product {
	categoryIDs := make([]uint, 0, len(p.Categories))
	for _, category := range p.Categories {
		categoryIDs = append(categoryIDs, category.ID)
	}
	return discount.Product{
		ID:          p.ID,
		ParentID:    p.ParentID,
		CategoryIDs: categoryIDs,
	}
}

// isAuthenticated reads the flag set by the auth middleware
func isAuthenticated(c *gin.Context) bool {
	return c.GetBool("authenticated")
}

// priceView builds the pricing block for a simple product: the original
// price, the price after product-level rules, and whether a discount applies.
func priceView(product models.Product, store *discount.RuleStore, authenticated bool) gin.H {
	discounted := discount.ResolveProductPrice(product.Price, evaluationProduct(product), store, authenticated)

	view := gin.H{
		"price":      Round2(product.Price),
		"discounted": Round2(discounted),
		"on_sale":    discounted < product.Price,
	}
	return view
}

// rangePriceView builds the pricing block for a parent product with
// variations: each variation price is resolved independently, and the display
// shows "<from_text> <lowest discounted>" with the lowest original price for
// the strike-through, mirroring how variable items are quoted.
func rangePriceView(parent models.Product, variations []models.Product, store *discount.RuleStore, authenticated bool) gin.H {
	if len(variations) == 0 {
		return priceView(parent, store, authenticated)
	}

	// Each variation resolves with its own identity, so rules that target a
	// single variation id or a category only the variation carries shape the
	// range the same way they shape that variation's own price.
	lowestPrice := math.MaxFloat64
	lowestDiscounted := math.MaxFloat64
	for _, variation := range variations {
		discounted := discount.ResolveProductPrice(variation.Price, evaluationProduct(variation), store, authenticated)
		lowestPrice = math.Min(lowestPrice, variation.Price)
		lowestDiscounted = math.Min(lowestDiscounted, discounted)
	}

	view := gin.H{
		"price":      Round2(lowestPrice),
		"discounted": Round2(lowestDiscounted),
		"on_sale":    lowestDiscounted < lowestPrice,
	}
	if lowestDiscounted < lowestPrice {
		view["display"] = fmt.Sprintf("%s %.2f", store.Settings.FromText, Round2(lowestDiscounted))
	}
	return view
}

// loadVariations fetches a parent product's active variations
func loadVariations(parentID uint) ([]models.Product, error) {
	var variations []models.Product
	err := config.DB.Preload("Categories").
		Where("parent_id = ? AND active = ?", parentID, true).
		Find(&variations).Error
	return variations, err
}
