package discount

// ResolveProductPrice applies the product-scoped rules of the store to a
// single unit price and returns the discounted price. The result is never
// negative and never exceeds the input price.
//
// When the configured exclusive rule matches, its largest candidate amount is
// the final discount and every other matching rule is ignored. Otherwise the
// apply_rule policy picks the lowest or highest candidate from the remaining
// matches; no matches means full price.
func ResolveProductPrice(price float64, product Product, store *RuleStore, isAuthenticated bool) float64 {
	if store == nil {
		return price
	}
	if !store.Settings.visible(isAuthenticated) {
		return price
	}

	var (
		general        []float64
		exclusive      float64
		exclusiveFound bool
	)

	for _, rule := range store.Rules {
		if !rule.Active || rule.On != DiscountOnProduct {
			continue
		}
		if !RuleMatchesProduct(rule, product) {
			continue
		}

		amount := candidateAmount(rule, price)

		if store.Settings.ExclusiveRule != "" && rule.Title == store.Settings.ExclusiveRule {
			if !exclusiveFound || amount > exclusive {
				exclusive = amount
				exclusiveFound = true
			}
			continue
		}
		general = append(general, amount)
	}

	if exclusiveFound {
		return clampPrice(price - exclusive)
	}
	if len(general) > 0 {
		return clampPrice(price - pickAmount(general, store.Settings.ApplyRule))
	}
	return price
}

// ResolveProductPrices is the collection form of ResolveProductPrice for
// items quoted as a set of per-context prices (a variable product's price per
// variation). Each entry is resolved independently; the returned map has the
// same keys as the input.
func ResolveProductPrices(prices map[string]float64, product Product, store *RuleStore, isAuthenticated bool) map[string]float64 {
	if prices == nil {
		return nil
	}
	resolved := make(map[string]float64, len(prices))
	for key, price := range prices {
		resolved[key] = ResolveProductPrice(price, product, store, isAuthenticated)
	}
	return resolved
}
