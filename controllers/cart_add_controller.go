package controllers

import (
	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/discount"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionCartLine is a guest cart line stored in the cookie session. Pricing
// is captured once at add time, like the persisted CartItem annotations.
type SessionCartLine struct {
	ProductID     uint
	Quantity      int
	UnitPrice     float64
	CustomPrice   float64
	HasDiscount   bool
	OriginalPrice float64
}

const sessionCartKey = "cart"

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// AddToCart adds a product to the caller's cart. The line's discounted unit
// price is computed once here and saved with the original price, so later
// reads display the discount without re-running the engine per view.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add-to-cart request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogDebug("Adding product %d (qty %d) to cart", req.ProductID, req.Quantity)

	var product models.Product
	if err := config.DB.Preload("Categories").
		Where("active = ?", true).First(&product, req.ProductID).Error; err != nil {
		utils.LogError("Product not found: %d", req.ProductID)
		utils.NotFound(c, "Product not found")
		return
	}

	// Parent products with variations are added per-variation
	var variationCount int64
	config.DB.Model(&models.Product{}).Where("parent_id = ? AND active = ?", product.ID, true).Count(&variationCount)
	if variationCount > 0 {
		utils.LogError("Attempt to add parent product %d directly", product.ID)
		utils.BadRequest(c, "Select a variation of this product", nil)
		return
	}

	if product.Price <= 0 {
		utils.LogError("Product %d has no price", product.ID)
		utils.BadRequest(c, "Product has no price", nil)
		return
	}

	store, err := config.LoadRuleStore()
	if err != nil {
		utils.LogError("Failed to load rule store: %v", err)
		utils.InternalServerError(c, "Failed to load pricing rules", nil)
		return
	}

	authenticated := isAuthenticated(c)
	discounted := Round2(resolveUnitPrice(product, store, authenticated))
	hasDiscount := discounted < product.Price

	if user, exists := c.Get("user"); exists {
		addToUserCart(c, user.(models.User), product, req.Quantity, discounted, hasDiscount)
		return
	}
	addToSessionCart(c, product, req.Quantity, discounted, hasDiscount)
}

// addToUserCart persists the line for a logged-in user
func addToUserCart(c *gin.Context, user models.User, product models.Product, quantity int, discounted float64, hasDiscount bool) {
	var item models.CartItem
	err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&item).Error
	if err == nil {
		item.Quantity += quantity
	} else {
		item = models.CartItem{
			UserID:    user.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
	}

	// Pricing annotations are refreshed on every add so quantity bumps pick
	// up the current rules
	if hasDiscount {
		custom := discounted
		original := product.Price
		item.CustomPrice = &custom
		item.OriginalPrice = &original
	} else {
		item.CustomPrice = nil
		item.OriginalPrice = nil
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.LogError("Failed to save cart item for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add to cart", err.Error())
		return
	}

	utils.LogInfo("Added product %d to cart for user %d", product.ID, user.ID)
	utils.Success(c, "Added to cart", gin.H{
		"item": gin.H{
			"product_id":     item.ProductID,
			"quantity":       item.Quantity,
			"unit_price":     effectiveUnitPrice(item, product),
			"original_price": product.Price,
			"discounted":     hasDiscount,
		},
	})
}

// addToSessionCart stores the line in the cookie session for guests
func addToSessionCart(c *gin.Context, product models.Product, quantity int, discounted float64, hasDiscount bool) {
	session := sessions.Default(c)
	lines := sessionCartLines(session)

	found := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += quantity
			lines[i].UnitPrice = product.Price
			lines[i].CustomPrice = discounted
			lines[i].OriginalPrice = product.Price
			lines[i].HasDiscount = hasDiscount
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, SessionCartLine{
			ProductID:     product.ID,
			Quantity:      quantity,
			UnitPrice:     product.Price,
			CustomPrice:   discounted,
			OriginalPrice: product.Price,
			HasDiscount:   hasDiscount,
		})
	}

	session.Set(sessionCartKey, lines)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session cart: %v", err)
		utils.InternalServerError(c, "Failed to add to cart", nil)
		return
	}

	utils.LogInfo("Added product %d to guest cart", product.ID)
	utils.Success(c, "Added to cart", gin.H{
		"item": gin.H{
			"product_id":     product.ID,
			"quantity":       quantity,
			"unit_price":     discounted,
			"original_price": product.Price,
			"discounted":     hasDiscount,
		},
	})
}

// resolveUnitPrice runs the product resolver for a single unit price
func resolveUnitPrice(product models.Product, store *discount.RuleStore, authenticated bool) float64 {
	return discount.ResolveProductPrice(product.Price, evaluationProduct(product), store, authenticated)
}

// sessionCartLines reads the guest cart out of the session
func sessionCartLines(session sessions.Session) []SessionCartLine {
	raw := session.Get(sessionCartKey)
	if raw == nil {
		return nil
	}
	lines, ok := raw.([]SessionCartLine)
	if !ok {
		return nil
	}
	return lines
}

// effectiveUnitPrice is the price a cart line is charged at
func effectiveUnitPrice(item models.CartItem, product models.Product) float64 {
	if item.CustomPrice != nil {
		return *item.CustomPrice
	}
	return product.Price
}
