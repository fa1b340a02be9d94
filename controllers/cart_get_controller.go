package controllers

import (
	"strconv"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/discount"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// cartTotals is the assembled cart view before the cart-level discount fee
type cartTotals struct {
	items              []gin.H
	subtotal           float64
	hasProductDiscount bool
}

// GetCart returns the caller's cart with line pricing, and the cart-level
// discount applied as a negative fee when no line already carries a
// product-level discount.
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	totals, ok := collectCart(c)
	if !ok {
		return
	}

	store, err := config.LoadRuleStore()
	if err != nil {
		utils.LogError("Failed to load rule store: %v", err)
		utils.InternalServerError(c, "Failed to load pricing rules", nil)
		return
	}

	response := gin.H{
		"items":    totals.items,
		"subtotal": Round2(totals.subtotal),
		"total":    Round2(totals.subtotal),
	}

	// Per-product and per-total discounts never stack on one order: the
	// hasProductDiscount flag makes the resolver decline
	ctx := discount.CartContext{
		Subtotal:           totals.subtotal,
		HasProductDiscount: totals.hasProductDiscount,
	}
	if fee, ok := discount.ResolveCartDiscount(ctx, store, isAuthenticated(c)); ok {
		utils.LogDebug("Cart discount applied: %s (%.2f)", fee.Title, fee.Amount)
		response["fee"] = gin.H{
			"title":  fee.Title,
			"amount": -Round2(fee.Amount),
		}
		total := totals.subtotal - fee.Amount
		if total < 0 {
			total = 0
		}
		response["total"] = Round2(total)
	}

	utils.Success(c, "Cart retrieved successfully", response)
}

// collectCart builds line views and totals from the DB cart (logged in) or
// the session cart (guest). Returns ok=false after writing an error response.
func collectCart(c *gin.Context) (cartTotals, bool) {
	var totals cartTotals
	totals.items = []gin.H{}

	if user, exists := c.Get("user"); exists {
		userID := user.(models.User).ID
		var items []models.CartItem
		if err := config.DB.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			utils.LogError("Failed to fetch cart items for user %d: %v", userID, err)
			utils.InternalServerError(c, "Failed to fetch cart", nil)
			return totals, false
		}

		for _, item := range items {
			unit := effectiveUnitPrice(item, item.Product)
			lineTotal := unit * float64(item.Quantity)
			totals.subtotal += lineTotal

			view := gin.H{
				"id":         item.ID,
				"product_id": item.ProductID,
				"name":       item.Product.Name,
				"quantity":   item.Quantity,
				"unit_price": Round2(unit),
				"line_total": Round2(lineTotal),
			}
			if item.CustomPrice != nil && item.OriginalPrice != nil {
				totals.hasProductDiscount = true
				view["original_price"] = Round2(*item.OriginalPrice)
				view["discounted"] = true
			}
			totals.items = append(totals.items, view)
		}
		return totals, true
	}

	session := sessions.Default(c)
	for _, line := range sessionCartLines(session) {
		unit := line.UnitPrice
		if line.HasDiscount {
			unit = line.CustomPrice
			totals.hasProductDiscount = true
		}
		lineTotal := unit * float64(line.Quantity)
		totals.subtotal += lineTotal

		view := gin.H{
			"product_id": line.ProductID,
			"quantity":   line.Quantity,
			"unit_price": Round2(unit),
			"line_total": Round2(lineTotal),
		}
		if line.HasDiscount {
			view["original_price"] = Round2(line.OriginalPrice)
			view["discounted"] = true
		}
		totals.items = append(totals.items, view)
	}
	return totals, true
}

// RemoveFromCart deletes one line from the caller's cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	if user, exists := c.Get("user"); exists {
		userID := user.(models.User).ID
		result := config.DB.Where("user_id = ? AND product_id = ?", userID, uint(productID)).
			Delete(&models.CartItem{})
		if result.Error != nil {
			utils.LogError("Failed to remove cart item for user %d: %v", userID, result.Error)
			utils.InternalServerError(c, "Failed to remove from cart", nil)
			return
		}
		if result.RowsAffected == 0 {
			utils.NotFound(c, "Item not in cart")
			return
		}
		utils.LogInfo("Removed product %d from cart for user %d", productID, userID)
		utils.Success(c, "Removed from cart", nil)
		return
	}

	session := sessions.Default(c)
	lines := sessionCartLines(session)
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == uint(productID) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		utils.NotFound(c, "Item not in cart")
		return
	}

	session.Set(sessionCartKey, kept)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session cart: %v", err)
		utils.InternalServerError(c, "Failed to remove from cart", nil)
		return
	}

	utils.LogInfo("Removed product %d from guest cart", productID)
	utils.Success(c, "Removed from cart", nil)
}

// ClearCart empties the caller's cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	if user, exists := c.Get("user"); exists {
		userID := user.(models.User).ID
		if err := config.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			utils.LogError("Failed to clear cart for user %d: %v", userID, err)
			utils.InternalServerError(c, "Failed to clear cart", nil)
			return
		}
		utils.LogInfo("Cleared cart for user %d", userID)
		utils.Success(c, "Cart cleared", nil)
		return
	}

	session := sessions.Default(c)
	session.Delete(sessionCartKey)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session cart: %v", err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	utils.LogInfo("Cleared guest cart")
	utils.Success(c, "Cart cleared", nil)
}
