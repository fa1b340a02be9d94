package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekart/PriceRules/models"
)

func TestDeleteCategory_PurgesRuleFilterEntries(t *testing.T) {
	db := setupTestDB(t)

	sale := models.Category{Name: "Sale"}
	require.NoError(t, db.Create(&sale).Error)
	books := models.Category{Name: "Books"}
	require.NoError(t, db.Create(&books).Error)

	product := models.Product{Name: "Novel", Price: 15, Active: true, Categories: []models.Category{sale}}
	require.NoError(t, db.Create(&product).Error)

	rule := models.DiscountRule{
		Title:        "Clearance",
		DiscountOn:   "product",
		DiscountType: "flat",
		Amount:       "5",
		IsActive:     "yes",
		Position:     1,
	}
	require.NoError(t, db.Create(&rule).Error)
	require.NoError(t, db.Create(&[]models.RuleCategoryFilter{
		{RuleID: rule.ID, Kind: models.FilterInclude, CategoryID: sale.ID},
		{RuleID: rule.ID, Kind: models.FilterExclude, CategoryID: books.ID},
	}).Error)

	c, w := testContext(t)
	setIDParam(c, "id", sale.ID)
	DeleteCategory(c)

	require.Equal(t, http.StatusOK, w.Code)

	// The category is gone and its product association cleared.
	var categoryCount int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	assert.Equal(t, int64(1), categoryCount)

	var reloaded models.Product
	require.NoError(t, db.Preload("Categories").First(&reloaded, product.ID).Error)
	assert.Empty(t, reloaded.Categories)

	// Filter rows pointing at the deleted category are purged with it.
	var filters []models.RuleCategoryFilter
	require.NoError(t, db.Find(&filters).Error)
	require.Len(t, filters, 1)
	assert.Equal(t, books.ID, filters[0].CategoryID)
}
