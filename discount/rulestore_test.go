package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleStore_PreservesRecordOrder(t *testing.T) {
	store := NewRuleStore([]RuleRecord{
		{Title: "B", DiscountOn: "product", DiscountType: "flat", Amount: "5", IsActive: "yes"},
		{Title: "A", DiscountOn: "total", DiscountType: "percent", Amount: "10", IsActive: "yes"},
	}, Settings{})

	require.Len(t, store.Rules, 2)
	assert.Equal(t, "B", store.Rules[0].Title)
	assert.Equal(t, "A", store.Rules[1].Title)
}

func TestNewRuleStore_SkipsMalformedRecords(t *testing.T) {
	store := NewRuleStore([]RuleRecord{
		{Title: "", DiscountOn: "product", DiscountType: "flat", Amount: "5", IsActive: "yes"},
		{Title: "Bad scope", DiscountOn: "shipping", DiscountType: "flat", Amount: "5", IsActive: "yes"},
		{Title: "Bad type", DiscountOn: "product", DiscountType: "bogof", Amount: "5", IsActive: "yes"},
		{Title: "Good", DiscountOn: "product", DiscountType: "percent", Amount: "5", IsActive: "yes"},
	}, Settings{})

	require.Len(t, store.Rules, 1)
	assert.Equal(t, "Good", store.Rules[0].Title)
}

func TestNewRuleStore_InvalidAmountDefaultsToZero(t *testing.T) {
	store := NewRuleStore([]RuleRecord{
		{Title: "Garbage amount", DiscountOn: "total", DiscountType: "flat", Amount: "ten", MinOrder: "abc", IsActive: "yes"},
		{Title: "Empty amount", DiscountOn: "total", DiscountType: "flat", Amount: "", IsActive: "yes"},
		{Title: "Negative amount", DiscountOn: "total", DiscountType: "flat", Amount: "-5", IsActive: "yes"},
	}, Settings{})

	require.Len(t, store.Rules, 3)
	for _, rule := range store.Rules {
		assert.Equal(t, 0.0, rule.Amount, rule.Title)
		assert.Equal(t, 0.0, rule.MinOrder, rule.Title)
	}
}

func TestNewRuleStore_ParsesDecimalAmounts(t *testing.T) {
	store := NewRuleStore([]RuleRecord{
		{Title: "Decimal", DiscountOn: "total", DiscountType: "percent", Amount: " 12.5 ", MinOrder: "99.90", IsActive: "yes"},
	}, Settings{})

	require.Len(t, store.Rules, 1)
	assert.Equal(t, 12.5, store.Rules[0].Amount)
	assert.Equal(t, 99.90, store.Rules[0].MinOrder)
}

func TestNewRuleStore_InactiveRulesKeptButMarked(t *testing.T) {
	store := NewRuleStore([]RuleRecord{
		{Title: "Paused", DiscountOn: "product", DiscountType: "flat", Amount: "5", IsActive: "no"},
	}, Settings{})

	require.Len(t, store.Rules, 1)
	assert.False(t, store.Rules[0].Active)
}

func TestNewRuleStore_NormalizesSettings(t *testing.T) {
	store := NewRuleStore(nil, Settings{ApplyRule: "median", ShowTo: "nobody", FromText: ""})

	assert.Equal(t, ApplyHighest, store.Settings.ApplyRule)
	assert.Equal(t, ShowAll, store.Settings.ShowTo)
	assert.Equal(t, "From", store.Settings.FromText)
}

func TestNewRuleStore_KeepsValidSettings(t *testing.T) {
	store := NewRuleStore(nil, Settings{
		ApplyRule:     ApplyLowest,
		ShowTo:        ShowLoggedIn,
		ExclusiveRule: "VIP",
		FromText:      "Desde",
	})

	assert.Equal(t, ApplyLowest, store.Settings.ApplyRule)
	assert.Equal(t, ShowLoggedIn, store.Settings.ShowTo)
	assert.Equal(t, "VIP", store.Settings.ExclusiveRule)
	assert.Equal(t, "Desde", store.Settings.FromText)
}

func TestNewRuleStore_CarriesFilterLists(t *testing.T) {
	store := NewRuleStore([]RuleRecord{{
		Title:         "Filtered",
		DiscountOn:    "product",
		DiscountType:  "percent",
		Amount:        "10",
		IsActive:      "yes",
		IncProducts:   []ProductRef{{ID: 1, ParentID: 0}},
		ExProducts:    []ProductRef{{ID: 2}},
		IncCategories: []uint{3},
		ExCategories:  []uint{4},
	}}, Settings{})

	require.Len(t, store.Rules, 1)
	rule := store.Rules[0]
	assert.Equal(t, []ProductRef{{ID: 1}}, rule.IncProducts)
	assert.Equal(t, []ProductRef{{ID: 2}}, rule.ExProducts)
	assert.Equal(t, []uint{3}, rule.IncCategories)
	assert.Equal(t, []uint{4}, rule.ExCategories)
}
