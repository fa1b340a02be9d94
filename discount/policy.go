package discount

// candidateAmount computes the discount a rule would take off the given base.
// Percent rules scale with the base; flat rules do not and may exceed it (the
// resolvers clamp the final price at zero).
func candidateAmount(rule Rule, base float64) float64 {
	if rule.Type == TypePercent {
		return rule.Amount / 100 * base
	}
	return rule.Amount
}

// visible reports whether discounts apply to the current caller at all.
func (s Settings) visible(isAuthenticated bool) bool {
	return s.ShowTo != ShowLoggedIn || isAuthenticated
}

// pickAmount selects from non-exclusive candidates by the apply_rule policy.
// Strict comparisons keep the first occurrence of the extreme value, so ties
// resolve by rule-list order.
func pickAmount(candidates []float64, applyRule string) float64 {
	best := candidates[0]
	for _, amt := range candidates[1:] {
		if applyRule == ApplyLowest {
			if amt < best {
				best = amt
			}
		} else if amt > best {
			best = amt
		}
	}
	return best
}

// clampPrice keeps a discounted price from going negative.
func clampPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}
