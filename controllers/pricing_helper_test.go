package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storekart/PriceRules/discount"
	"github.com/storekart/PriceRules/models"
)

func testStore(rules ...discount.Rule) *discount.RuleStore {
	return &discount.RuleStore{
		Rules: rules,
		Settings: discount.Settings{
			ApplyRule: discount.ApplyHighest,
			ShowTo:    discount.ShowAll,
			FromText:  "From",
		},
	}
}

func catalogProduct(id, parentID uint, price float64, categoryIDs ...uint) models.Product {
	p := models.Product{
		Model:    gorm.Model{ID: id},
		Price:    price,
		ParentID: parentID,
		Active:   true,
	}
	for _, cid := range categoryIDs {
		p.Categories = append(p.Categories, models.Category{Model: gorm.Model{ID: cid}})
	}
	return p
}

func TestRangePriceView_RuleTargetingOneVariation(t *testing.T) {
	// The rule lists a single variation id. The range must resolve each
	// variation with its own identity, so the listed variation's discount
	// shapes the range exactly as it shapes that variation's own price.
	store := testStore(discount.Rule{
		Title:       "Variation deal",
		On:          discount.DiscountOnProduct,
		Type:        discount.TypePercent,
		Amount:      50,
		Active:      true,
		IncProducts: []discount.ProductRef{{ID: 11}},
	})

	parent := catalogProduct(10, 0, 100)
	small := catalogProduct(11, 10, 100)
	large := catalogProduct(12, 10, 120)

	view := rangePriceView(parent, []models.Product{small, large}, store, false)

	assert.Equal(t, 100.0, view["price"])
	assert.Equal(t, 50.0, view["discounted"])
	assert.Equal(t, true, view["on_sale"])
	assert.Equal(t, "From 50.00", view["display"])

	// The range agrees with the targeted variation's own price view.
	variationView := priceView(small, store, false)
	assert.Equal(t, view["discounted"], variationView["discounted"])
}

func TestRangePriceView_RuleTargetingVariationCategory(t *testing.T) {
	// The category is carried by one variation only, not the parent.
	store := testStore(discount.Rule{
		Title:         "Category deal",
		On:            discount.DiscountOnProduct,
		Type:          discount.TypeFlat,
		Amount:        30,
		Active:        true,
		IncCategories: []uint{7},
	})

	parent := catalogProduct(20, 0, 100)
	tagged := catalogProduct(21, 20, 100, 7)
	plain := catalogProduct(22, 20, 110)

	view := rangePriceView(parent, []models.Product{tagged, plain}, store, false)

	assert.Equal(t, 70.0, view["discounted"])
	assert.Equal(t, true, view["on_sale"])
}

func TestRangePriceView_VariationExcludedById(t *testing.T) {
	// A wildcard rule excludes one variation; the excluded variation's full
	// price still feeds the range minimum.
	store := testStore(discount.Rule{
		Title:      "Everything but one",
		On:         discount.DiscountOnProduct,
		Type:       discount.TypePercent,
		Amount:     10,
		Active:     true,
		ExProducts: []discount.ProductRef{{ID: 31}},
	})

	parent := catalogProduct(30, 0, 100)
	excluded := catalogProduct(31, 30, 80)
	included := catalogProduct(32, 30, 100)

	view := rangePriceView(parent, []models.Product{excluded, included}, store, false)

	// Lowest original is the excluded variation's 80; lowest discounted is
	// still 80 because only the other variation gets 10% off.
	assert.Equal(t, 80.0, view["price"])
	assert.Equal(t, 80.0, view["discounted"])
	assert.Equal(t, false, view["on_sale"])
}

func TestRangePriceView_NoVariationsFallsBackToParent(t *testing.T) {
	store := testStore(discount.Rule{
		Title:  "Ten off",
		On:     discount.DiscountOnProduct,
		Type:   discount.TypePercent,
		Amount: 10,
		Active: true,
	})

	parent := catalogProduct(40, 0, 50)
	view := rangePriceView(parent, nil, store, false)

	require.NotNil(t, view)
	assert.Equal(t, 45.0, view["discounted"])
}
