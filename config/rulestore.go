package config

import (
	"github.com/storekart/PriceRules/discount"
	"github.com/storekart/PriceRules/models"
)

// LoadRuleStore reads the current rules and settings and builds a fresh,
// immutable evaluation snapshot. Called once per request path that prices
// something; the snapshot is never cached across requests, so admin edits
// take effect immediately.
func LoadRuleStore() (*discount.RuleStore, error) {
	var rules []models.DiscountRule
	if err := DB.Preload("ProductFilters").Preload("CategoryFilters").
		Order("position ASC, id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}

	var settings models.StoreSettings
	if err := DB.First(&settings).Error; err != nil {
		return nil, err
	}

	records := make([]discount.RuleRecord, 0, len(rules))
	for _, rule := range rules {
		records = append(records, ruleRecord(rule))
	}

	return discount.NewRuleStore(records, discount.Settings{
		ApplyRule:     settings.ApplyRule,
		ShowTo:        settings.ShowTo,
		ExclusiveRule: settings.ExclusiveRule,
		FromText:      settings.FromText,
	}), nil
}

// ruleRecord flattens a persisted rule and its filter rows into the loose
// record form the discount package normalizes.
func ruleRecord(rule models.DiscountRule) discount.RuleRecord {
	rec := discount.RuleRecord{
		Title:        rule.Title,
		DiscountOn:   rule.DiscountOn,
		DiscountType: rule.DiscountType,
		Amount:       rule.Amount,
		MinOrder:     rule.MinOrder,
		IsActive:     rule.IsActive,
	}

	for _, f := range rule.ProductFilters {
		ref := discount.ProductRef{ID: f.ProductID, ParentID: f.ParentID}
		if f.Kind == models.FilterExclude {
			rec.ExProducts = append(rec.ExProducts, ref)
		} else {
			rec.IncProducts = append(rec.IncProducts, ref)
		}
	}
	for _, f := range rule.CategoryFilters {
		if f.Kind == models.FilterExclude {
			rec.ExCategories = append(rec.ExCategories, f.CategoryID)
		} else {
			rec.IncCategories = append(rec.IncCategories, f.CategoryID)
		}
	}

	return rec
}
