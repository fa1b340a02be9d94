package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekart/PriceRules/models"
)

func TestDeleteProduct_PurgesRuleFilterEntries(t *testing.T) {
	db := setupTestDB(t)

	parent := models.Product{Name: "Shirt", Price: 40, Active: true}
	require.NoError(t, db.Create(&parent).Error)
	variation := models.Product{Name: "Shirt / L", Price: 40, ParentID: parent.ID, Active: true}
	require.NoError(t, db.Create(&variation).Error)
	other := models.Product{Name: "Mug", Price: 10, Active: true}
	require.NoError(t, db.Create(&other).Error)

	rule := models.DiscountRule{
		Title:        "Apparel deal",
		DiscountOn:   "product",
		DiscountType: "percent",
		Amount:       "10",
		IsActive:     "yes",
		Position:     1,
	}
	require.NoError(t, db.Create(&rule).Error)
	require.NoError(t, db.Create(&[]models.RuleProductFilter{
		{RuleID: rule.ID, Kind: models.FilterInclude, ProductID: parent.ID},
		{RuleID: rule.ID, Kind: models.FilterInclude, ProductID: variation.ID, ParentID: parent.ID},
		{RuleID: rule.ID, Kind: models.FilterExclude, ProductID: other.ID},
	}).Error)

	c, w := testContext(t)
	setIDParam(c, "id", parent.ID)
	DeleteProduct(c)

	require.Equal(t, http.StatusOK, w.Code)

	// Parent and variation are gone; the unrelated product survives.
	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(1), productCount)

	// Filter rows pointing at the deleted products are purged with them.
	var filters []models.RuleProductFilter
	require.NoError(t, db.Find(&filters).Error)
	require.Len(t, filters, 1)
	assert.Equal(t, other.ID, filters[0].ProductID)
}
